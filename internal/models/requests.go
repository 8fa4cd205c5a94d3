package models

type AuthRequest struct {
	Name string `json:"name"`
}

// CreateChunkRequest is the body of POST /whiteboards/{id}.
type CreateChunkRequest struct {
	Coordinates   *Coordinates    `json:"coordinates" validate:"required"`
	Transcription string          `json:"transcription"`
	Confidence    ConfidenceLevel `json:"confidence" validate:"required,oneof=high medium low"`
	Contractor    string          `json:"contractor"`
}

// SetCompleteRequest is the body of PATCH /whiteboards/{id}.
type SetCompleteRequest struct {
	Complete   *bool  `json:"complete"`
	Contractor string `json:"contractor"`
}
