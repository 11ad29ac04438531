package models

import "time"

const (
	SeverityNone    = "none"
	SeverityMild    = "mild"
	SeverityAverage = "average"
	SeveritySevere  = "severe"
)

func IsValidSeverity(severity string) bool {
	switch severity {
	case SeverityNone, SeverityMild, SeverityAverage, SeveritySevere:
		return true
	default:
		return false
	}
}

type Symptom struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Icon         string `json:"icon,omitempty"`
	CategoryID   int    `json:"category_id,omitempty"`
	CategoryName string `json:"category_name,omitempty"`
	CategoryIcon string `json:"category_icon,omitempty"`
}

type SymptomCategory struct {
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Icon     string    `json:"icon,omitempty"`
	Symptoms []Symptom `json:"symptoms"`
}

// A SeverityNone entry means "reported as not symptomatic", not "no record".
type SymptomLog struct {
	ID          int       `json:"id"`
	SymptomID   int       `json:"symptom_id"`
	SymptomName string    `json:"symptom_name,omitempty"`
	Date        string    `json:"date"`
	Severity    string    `json:"severity"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
