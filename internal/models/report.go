package models

const (
	RangeDaily   = "daily"
	RangeWeekly  = "weekly"
	RangeMonthly = "monthly"
	RangeYearly  = "yearly"
)

func IsValidRange(value string) bool {
	switch value {
	case RangeDaily, RangeWeekly, RangeMonthly, RangeYearly:
		return true
	default:
		return false
	}
}

type Streak struct {
	TrackedSupplementID int    `json:"tracked_supplement_id"`
	SupplementName      string `json:"supplement_name"`
	CurrentStreak       int    `json:"current_streak"`
	LongestStreak       int    `json:"longest_streak"`
}

type ProgressPoint struct {
	Date    string  `json:"date"`
	Percent float64 `json:"percent"`
}

type Milestone struct {
	Title    string `json:"title"`
	Achieved bool   `json:"achieved"`
	Date     string `json:"date,omitempty"`
}

type Report struct {
	Range           string          `json:"range"`
	IntakeTotal     int             `json:"intake_total"`
	IntakeExpected  int             `json:"intake_expected"`
	AdherencePct    float64         `json:"adherence_pct"`
	SymptomTotal    int             `json:"symptom_total"`
	Correlations    []string        `json:"correlations,omitempty"`
	Progress        []ProgressPoint `json:"progress,omitempty"`
	Milestones      []Milestone     `json:"milestones,omitempty"`
	Recommendations []string        `json:"recommendations,omitempty"`
}
