package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/terraincognita07/vitalog/internal/models"
)

type NewIntakeLog struct {
	TrackedSupplementID int     `json:"tracked_supplement_id"`
	Date                string  `json:"date"`
	Time                string  `json:"time"`
	DosageTaken         float64 `json:"dosage_taken"`
	Unit                string  `json:"unit"`
	Notes               string  `json:"notes,omitempty"`
}

func (client *Client) ListIntakeLogs(ctx context.Context, from string, to string) ([]models.IntakeLog, error) {
	params := url.Values{}
	params.Set("from", from)
	params.Set("to", to)

	var logs []models.IntakeLog
	if err := client.doJSON(ctx, http.MethodGet, "/api/intake-logs", params, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (client *Client) TodayIntakeLogs(ctx context.Context) ([]models.IntakeLog, error) {
	var logs []models.IntakeLog
	if err := client.doJSON(ctx, http.MethodGet, "/api/intake-logs/today", nil, nil, &logs); err != nil {
		return nil, err
	}
	return logs, nil
}

func (client *Client) CreateIntakeLog(ctx context.Context, input NewIntakeLog) (models.IntakeLog, error) {
	var created models.IntakeLog
	if err := client.doJSON(ctx, http.MethodPost, "/api/intake-logs", nil, input, &created); err != nil {
		return models.IntakeLog{}, err
	}
	return created, nil
}

func (client *Client) UpdateIntakeLog(ctx context.Context, id int, patch models.IntakeLogPatch) (models.IntakeLog, error) {
	var updated models.IntakeLog
	path := fmt.Sprintf("/api/intake-logs/%d", id)
	if err := client.doJSON(ctx, http.MethodPut, path, nil, patch, &updated); err != nil {
		return models.IntakeLog{}, err
	}
	return updated, nil
}

func (client *Client) DeleteIntakeLog(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/intake-logs/%d", id)
	return client.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
