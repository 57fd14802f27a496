// Package fdc adapts the USDA FoodData Central API: search, per-item
// detail, and the quick single-hit macro lookup used by the simple flow.
package fdc

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strconv"

	"github.com/caloriehawk/backend/internal/domain"
	"github.com/caloriehawk/backend/internal/infrastructure/fetch"
	"golang.org/x/time/rate"
)

// FDC data type labels, as the API spells them.
const (
	DataTypeFoundation = "Foundation"
	DataTypeSRLegacy   = "SR Legacy"
	DataTypeBranded    = "Branded"

	// SurveyDataType is the optional extended category callers can include.
	SurveyDataType = "Survey (FNDDS)"
)

// PreferredDataTypes is the fixed search filter, in trust order. The
// ranking of candidates follows the same order.
var PreferredDataTypes = []string{DataTypeFoundation, DataTypeSRLegacy, DataTypeBranded}

const searchPageSize = 15

// Client talks to FoodData Central through the retrying transport layer.
// Per-attempt timeouts live in the transport client.
type Client struct {
	fetcher     *fetch.Client
	apiKey      string
	baseURL     string
	rateLimiter *rate.Limiter
}

func NewClient(apiKey, baseURL string, fetcher *fetch.Client) *Client {
	// FDC allows 1000 requests per hour: 1000/3600 ≈ 0.278 req/sec.
	limiter := rate.NewLimiter(rate.Limit(0.278), 10)

	return &Client{
		fetcher:     fetcher,
		apiKey:      apiKey,
		baseURL:     baseURL,
		rateLimiter: limiter,
	}
}

// Configured reports whether an API key is present. The simple flow
// skips the provider when it is not; the detailed flow fails the request.
func (c *Client) Configured() bool {
	return c.apiKey != ""
}

// Search queries /v1/foods/search filtered to the preferred data types,
// optionally extended with the survey category.
func (c *Client) Search(ctx context.Context, query string, includeSurvey bool) (*domain.FDCSearchResponse, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageSize", strconv.Itoa(searchPageSize))
	for _, dt := range PreferredDataTypes {
		params.Add("dataType", dt)
	}
	if includeSurvey {
		params.Add("dataType", SurveyDataType)
	}

	var resp domain.FDCSearchResponse
	if err := c.get(ctx, c.baseURL+"/v1/foods/search", params, &resp); err != nil {
		return nil, err
	}
	log.Printf("[FDC] search %q: %d foods", query, len(resp.Foods))
	return &resp, nil
}

// FoodDetail fetches the full /v1/food/{id} record for one candidate.
func (c *Client) FoodDetail(ctx context.Context, fdcID int64) (*domain.FDCFoodDetail, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)

	var detail domain.FDCFoodDetail
	reqURL := fmt.Sprintf("%s/v1/food/%d", c.baseURL, fdcID)
	if err := c.get(ctx, reqURL, params, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// QuickMacros is the cruder extraction path the simple flow uses: one
// single-hit search, macros read straight off the hit by nutrient code,
// no detail call and no label merge. Kept separate from the detailed
// path on purpose; it trades completeness for a single round trip.
func (c *Client) QuickMacros(ctx context.Context, query string) (*domain.NutrientRecord, error) {
	params := url.Values{}
	params.Set("api_key", c.apiKey)
	params.Set("query", query)
	params.Set("pageSize", "1")

	var resp domain.FDCSearchResponse
	if err := c.get(ctx, c.baseURL+"/v1/foods/search", params, &resp); err != nil {
		return nil, err
	}
	if len(resp.Foods) == 0 {
		return nil, domain.ErrNoMatch
	}

	record := recordFromSearchHit(resp.Foods[0])
	if record.Empty() {
		return nil, domain.ErrNoMatch
	}
	return &record, nil
}

// Name and Lookup let the client serve as a simple-flow chain step.
func (c *Client) Name() string { return "fdc" }

func (c *Client) Lookup(ctx context.Context, query string) (*domain.NutrientRecord, error) {
	return c.QuickMacros(ctx, query)
}

func (c *Client) get(ctx context.Context, reqURL string, params url.Values, out any) error {
	if err := c.rateLimiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	return c.fetcher.GetJSON(ctx, reqURL, params, nil, out)
}
