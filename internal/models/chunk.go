package models

import "time"

type ConfidenceLevel string

const (
	ConfidenceHigh   ConfidenceLevel = "high"
	ConfidenceMedium ConfidenceLevel = "medium"
	ConfidenceLow    ConfidenceLevel = "low"
)

// Chunk is one bounding box plus transcription on a whiteboard.
// Position keeps insertion order in the relational store and is never sent to clients.
type Chunk struct {
	ID            string          `json:"id" gorm:"primaryKey;size:64"`
	WhiteboardID  string          `json:"whiteboardId" gorm:"not null;index:idx_chunks_whiteboard_position,priority:1"`
	Position      int             `json:"-" gorm:"not null;index:idx_chunks_whiteboard_position,priority:2"`
	Coordinates   Coordinates     `json:"coordinates" gorm:"type:jsonb;not null"`
	Transcription string          `json:"transcription"`
	Confidence    ConfidenceLevel `json:"confidence" gorm:"not null"`
	Contractor    string          `json:"contractor"`
	CreatedAt     time.Time       `json:"createdAt"`
}

func (Chunk) TableName() string {
	return "chunks"
}
