package models

import "time"

type IntakeLog struct {
	ID                  int       `json:"id"`
	TrackedSupplementID int       `json:"tracked_supplement_id"`
	Date                string    `json:"date"`
	Time                string    `json:"time"`
	DosageTaken         float64   `json:"dosage_taken"`
	Unit                string    `json:"unit"`
	Notes               string    `json:"notes,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	UpdatedAt           time.Time `json:"updated_at"`
}

type IntakeLogPatch struct {
	Time        *string  `json:"time,omitempty"`
	DosageTaken *float64 `json:"dosage_taken,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	Notes       *string  `json:"notes,omitempty"`
}
