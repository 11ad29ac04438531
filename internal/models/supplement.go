package models

import "time"

const (
	FrequencyDaily   = "daily"
	FrequencyWeekly  = "weekly"
	FrequencyMonthly = "monthly"
	FrequencyCustom  = "custom"
)

type Supplement struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Brand       string `json:"brand,omitempty"`
	Category    string `json:"category,omitempty"`
	Description string `json:"description,omitempty"`
}

type TrackedSupplement struct {
	ID             int       `json:"id"`
	SupplementID   int       `json:"supplement_id"`
	SupplementName string    `json:"supplement_name"`
	Dosage         float64   `json:"dosage"`
	Unit           string    `json:"unit"`
	Frequency      string    `json:"frequency"`
	StartDate      string    `json:"start_date"`
	EndDate        string    `json:"end_date,omitempty"`
	Notes          string    `json:"notes,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

type NewTrackedSupplement struct {
	SupplementID   int     `json:"supplement_id"`
	SupplementName string  `json:"supplement_name"`
	Dosage         float64 `json:"dosage"`
	Unit           string  `json:"unit"`
	Frequency      string  `json:"frequency"`
	StartDate      string  `json:"start_date"`
	EndDate        string  `json:"end_date,omitempty"`
	Notes          string  `json:"notes,omitempty"`
}

type TrackedSupplementPatch struct {
	Dosage    *float64 `json:"dosage,omitempty"`
	Unit      *string  `json:"unit,omitempty"`
	Frequency *string  `json:"frequency,omitempty"`
	StartDate *string  `json:"start_date,omitempty"`
	EndDate   *string  `json:"end_date,omitempty"`
	Notes     *string  `json:"notes,omitempty"`
}

type Interaction struct {
	ID             int    `json:"id"`
	SupplementID   int    `json:"supplement_id"`
	OtherID        int    `json:"other_id"`
	OtherName      string `json:"other_name"`
	Severity       string `json:"severity"`
	Effect         string `json:"effect,omitempty"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation,omitempty"`
}
