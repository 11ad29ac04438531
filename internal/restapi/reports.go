package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/terraincognita07/vitalog/internal/models"
)

var ErrInvalidRange = fmt.Errorf("invalid report range")

func (client *Client) GetReport(ctx context.Context, rangeName string) (models.Report, error) {
	if !models.IsValidRange(rangeName) {
		return models.Report{}, fmt.Errorf("%w: %q", ErrInvalidRange, rangeName)
	}
	params := url.Values{}
	params.Set("range", rangeName)

	var report models.Report
	if err := client.doJSON(ctx, http.MethodGet, "/api/reports", params, nil, &report); err != nil {
		return models.Report{}, err
	}
	return report, nil
}

func (client *Client) GetStreaks(ctx context.Context) ([]models.Streak, error) {
	var streaks []models.Streak
	if err := client.doJSON(ctx, http.MethodGet, "/api/reports/streaks", nil, nil, &streaks); err != nil {
		return nil, err
	}
	return streaks, nil
}

func (client *Client) GetProgress(ctx context.Context, rangeName string) ([]models.ProgressPoint, error) {
	if !models.IsValidRange(rangeName) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidRange, rangeName)
	}
	params := url.Values{}
	params.Set("range", rangeName)

	var points []models.ProgressPoint
	if err := client.doJSON(ctx, http.MethodGet, "/api/reports/progress", params, nil, &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Ping is the connectivity check. It carries its own short deadline so
// a status probe never hangs on an unreachable host.
func (client *Client) Ping(ctx context.Context, timeout time.Duration) error {
	if timeout <= 0 {
		timeout = 3 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return client.doJSON(pingCtx, http.MethodGet, "/api/health", nil, nil, nil)
}
