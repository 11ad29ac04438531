package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/terraincognita07/vitalog/internal/models"
)

type NewSymptomLog struct {
	SymptomID int    `json:"symptom_id"`
	Date      string `json:"date"`
	Severity  string `json:"severity"`
	Notes     string `json:"notes,omitempty"`
}

type SymptomDaySummary struct {
	Date       string `json:"date"`
	Total      int    `json:"total"`
	WorstLevel string `json:"worst_level"`
}

func (client *Client) ListSymptoms(ctx context.Context) ([]models.Symptom, error) {
	var symptoms []models.Symptom
	if err := client.doJSON(ctx, http.MethodGet, "/api/symptoms", nil, nil, &symptoms); err != nil {
		return nil, err
	}
	return symptoms, nil
}

func (client *Client) CreateSymptomLog(ctx context.Context, input NewSymptomLog) (models.SymptomLog, error) {
	var created models.SymptomLog
	if err := client.doJSON(ctx, http.MethodPost, "/api/symptom-logs", nil, input, &created); err != nil {
		return models.SymptomLog{}, err
	}
	return created, nil
}

func (client *Client) SymptomLogsByDate(ctx context.Context, date string) ([]models.SymptomLog, error) {
	params := url.Values{}
	params.Set("date", date)

	var logs []models.SymptomLog
	if err := client.doJSON(ctx, http.MethodGet, "/api/symptom-logs", params, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (client *Client) SymptomSummaryByDate(ctx context.Context, date string) (SymptomDaySummary, error) {
	params := url.Values{}
	params.Set("date", date)

	var summary SymptomDaySummary
	if err := client.doJSON(ctx, http.MethodGet, "/api/symptom-logs/summary", params, nil, &summary); err != nil {
		return SymptomDaySummary{}, err
	}
	return summary, nil
}

func (client *Client) DatesWithSymptoms(ctx context.Context) ([]string, error) {
	var dates []string
	if err := client.doJSON(ctx, http.MethodGet, "/api/symptom-logs/dates", nil, nil, &dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (client *Client) DeleteSymptomLog(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/symptom-logs/%d", id)
	return client.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
