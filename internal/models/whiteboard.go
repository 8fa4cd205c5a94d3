package models

// Whiteboard is a scanned image submitted for annotation.
type Whiteboard struct {
	ID         string  `json:"id" gorm:"primaryKey;size:128"`
	ImageURL   string  `json:"image_url" gorm:"column:image_url;not null"`
	Chunks     []Chunk `json:"chunks" gorm:"foreignKey:WhiteboardID;constraint:OnDelete:CASCADE"`
	Complete   bool    `json:"complete" gorm:"not null"`
	Contractor string  `json:"contractor"`
	Position   int     `json:"-" gorm:"not null;index"`
}

func (Whiteboard) TableName() string {
	return "whiteboards"
}

// WhiteboardSummary is the list view of a whiteboard, without the chunk payload.
type WhiteboardSummary struct {
	ID         string `json:"id"`
	ImageURL   string `json:"image_url"`
	Complete   bool   `json:"complete"`
	Contractor string `json:"contractor"`
	ChunkCount int    `json:"chunkCount"`
}

func (whiteboard *Whiteboard) ToSummary() WhiteboardSummary {
	return WhiteboardSummary{
		ID:         whiteboard.ID,
		ImageURL:   whiteboard.ImageURL,
		Complete:   whiteboard.Complete,
		Contractor: whiteboard.Contractor,
		ChunkCount: len(whiteboard.Chunks),
	}
}

// Clone returns a deep copy so callers never alias stored chunk slices.
func (whiteboard *Whiteboard) Clone() Whiteboard {
	clone := *whiteboard
	clone.Chunks = make([]Chunk, len(whiteboard.Chunks))
	copy(clone.Chunks, whiteboard.Chunks)
	return clone
}
