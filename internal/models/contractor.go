package models

import "time"

// Contractor is a human labeler identified by a case-sensitive name.
type Contractor struct {
	Name          string    `json:"name" gorm:"primaryKey;size:255"`
	Processed     int       `json:"processed" gorm:"not null"`
	LastProcessed time.Time `json:"lastProcessed"`
}

func (Contractor) TableName() string {
	return "contractors"
}
