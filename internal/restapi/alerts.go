package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/terraincognita07/vitalog/internal/models"
)

func (client *Client) ListAlerts(ctx context.Context) ([]models.Alert, error) {
	var alerts []models.Alert
	if err := client.doJSON(ctx, http.MethodGet, "/api/alerts", nil, nil, &alerts); err != nil {
		return nil, err
	}
	return alerts, nil
}

// MarkAlertRead is idempotent on the server side; re-marking a read
// alert answers 200 with the unchanged record.
func (client *Client) MarkAlertRead(ctx context.Context, id int) (models.Alert, error) {
	var updated models.Alert
	path := fmt.Sprintf("/api/alerts/%d/read", id)
	if err := client.doJSON(ctx, http.MethodPut, path, nil, nil, &updated); err != nil {
		return models.Alert{}, err
	}
	return updated, nil
}

func (client *Client) GenerateTestAlert(ctx context.Context) (models.Alert, error) {
	var created models.Alert
	if err := client.doJSON(ctx, http.MethodPost, "/api/alerts/test", nil, nil, &created); err != nil {
		return models.Alert{}, err
	}
	return created, nil
}
