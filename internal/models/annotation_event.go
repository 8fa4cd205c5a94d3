package models

import "time"

// AnnotationEvent is published after every successful whiteboard mutation.
type AnnotationEvent struct {
	Event        string    `json:"event"`
	WhiteboardID string    `json:"whiteboard_id"`
	ChunkID      string    `json:"chunk_id,omitempty"`
	Contractor   string    `json:"contractor,omitempty"`
	Complete     *bool     `json:"complete,omitempty"`
	At           time.Time `json:"at"`
}
