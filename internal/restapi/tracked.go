package restapi

import (
	"context"
	"fmt"
	"net/http"

	"github.com/terraincognita07/vitalog/internal/models"
)

func (client *Client) ListTrackedSupplements(ctx context.Context) ([]models.TrackedSupplement, error) {
	var tracked []models.TrackedSupplement
	if err := client.doJSON(ctx, http.MethodGet, "/api/tracked-supplements", nil, nil, &tracked); err != nil {
		return nil, err
	}
	return tracked, nil
}

func (client *Client) CreateTrackedSupplement(ctx context.Context, input models.NewTrackedSupplement) (models.TrackedSupplement, error) {
	var created models.TrackedSupplement
	if err := client.doJSON(ctx, http.MethodPost, "/api/tracked-supplements", nil, input, &created); err != nil {
		return models.TrackedSupplement{}, err
	}
	return created, nil
}

func (client *Client) UpdateTrackedSupplement(ctx context.Context, id int, patch models.TrackedSupplementPatch) (models.TrackedSupplement, error) {
	var updated models.TrackedSupplement
	path := fmt.Sprintf("/api/tracked-supplements/%d", id)
	if err := client.doJSON(ctx, http.MethodPut, path, nil, patch, &updated); err != nil {
		return models.TrackedSupplement{}, err
	}
	return updated, nil
}

func (client *Client) DeleteTrackedSupplement(ctx context.Context, id int) error {
	path := fmt.Sprintf("/api/tracked-supplements/%d", id)
	return client.doJSON(ctx, http.MethodDelete, path, nil, nil, nil)
}
