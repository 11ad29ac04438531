package restapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/terraincognita07/vitalog/internal/models"
)

func (client *Client) SearchSupplements(ctx context.Context, query string) ([]models.Supplement, error) {
	params := url.Values{}
	params.Set("q", query)

	var supplements []models.Supplement
	if err := client.doJSON(ctx, http.MethodGet, "/api/supplements/search", params, nil, &supplements); err != nil {
		return nil, err
	}
	return supplements, nil
}

func (client *Client) AutocompleteSupplements(ctx context.Context, prefix string) ([]string, error) {
	params := url.Values{}
	params.Set("q", prefix)

	var names []string
	if err := client.doJSON(ctx, http.MethodGet, "/api/supplements/autocomplete", params, nil, &names); err != nil {
		return nil, err
	}
	return names, nil
}

func (client *Client) GetSupplement(ctx context.Context, supplementID int) (models.Supplement, error) {
	var supplement models.Supplement
	path := fmt.Sprintf("/api/supplements/%d", supplementID)
	if err := client.doJSON(ctx, http.MethodGet, path, nil, nil, &supplement); err != nil {
		return models.Supplement{}, err
	}
	return supplement, nil
}

func (client *Client) GetInteractions(ctx context.Context, supplementID int) ([]models.Interaction, error) {
	var interactions []models.Interaction
	path := fmt.Sprintf("/api/supplements/%d/interactions", supplementID)
	if err := client.doJSON(ctx, http.MethodGet, path, nil, nil, &interactions); err != nil {
		return nil, err
	}
	return interactions, nil
}
