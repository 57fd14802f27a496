// Package calorieninjas adapts the CalorieNinjas nutrition API, a simple
// provider that returns macro values directly in one call.
package calorieninjas

import (
	"context"
	"net/http"
	"net/url"

	"github.com/caloriehawk/backend/internal/domain"
	"github.com/caloriehawk/backend/internal/infrastructure/fetch"
)

// nutritionResponse is the provider's wire shape. Only the first item of
// the list is used.
type nutritionResponse struct {
	Items []nutritionItem `json:"items"`
}

type nutritionItem struct {
	Calories *float64 `json:"calories"`
	Protein  *float64 `json:"protein_g"`
	Fat      *float64 `json:"fat_total_g"`
	Carbs    *float64 `json:"carbohydrates_total_g"`
}

// Client talks to CalorieNinjas through the retrying transport layer.
// Per-attempt timeouts live in the transport client.
type Client struct {
	fetcher *fetch.Client
	apiKey  string
	baseURL string
}

func NewClient(apiKey, baseURL string, fetcher *fetch.Client) *Client {
	return &Client{
		fetcher: fetcher,
		apiKey:  apiKey,
		baseURL: baseURL,
	}
}

// Name is the source tag the simple flow reports for this provider.
func (c *Client) Name() string { return "calorieninjas" }

// Configured reports whether an API key is present; without one the
// fallback chain skips this provider entirely.
func (c *Client) Configured() bool { return c.apiKey != "" }

// Lookup resolves a food name to a macro record using the first item of
// the provider's response, or ErrNoMatch when the item list is empty.
func (c *Client) Lookup(ctx context.Context, query string) (*domain.NutrientRecord, error) {
	params := url.Values{}
	params.Set("query", query)

	headers := http.Header{}
	headers.Set("X-Api-Key", c.apiKey)

	var resp nutritionResponse
	if err := c.fetcher.GetJSON(ctx, c.baseURL+"/v1/nutrition", params, headers, &resp); err != nil {
		return nil, err
	}
	if len(resp.Items) == 0 {
		return nil, domain.ErrNoMatch
	}

	item := resp.Items[0]
	record := domain.NutrientRecord{
		Kcal:    item.Calories,
		Protein: item.Protein,
		Fat:     item.Fat,
		Carbs:   item.Carbs,
	}
	if record.Empty() {
		return nil, domain.ErrNoMatch
	}
	return &record, nil
}
