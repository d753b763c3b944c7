package worldbank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
	"github.com/olgasafonova/worldbank-mcp-server/metrics"
)

// BaseURL is the World Bank API endpoint
const BaseURL = "https://api.worldbank.org/v2"

const (
	// DefaultPerPage is the page size requested from the indicator API.
	// One page is always enough for a single country/year lookup.
	DefaultPerPage = 100

	// DefaultYear is used when a caller omits the year
	DefaultYear = 2022
)

// Client provides access to the World Bank indicator API
type Client struct {
	*base.Client
	baseURL   string
	userAgent string
}

// Option configures the Client
type Option func(*Client)

// WithBaseURL overrides the API endpoint (used in tests)
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithUserAgent sets the User-Agent header for API requests
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		c.userAgent = ua
	}
}

// NewClient creates a new World Bank client
func NewClient(baseClient *base.Client, opts ...Option) *Client {
	c := &Client{
		Client:    baseClient,
		baseURL:   BaseURL,
		userAgent: base.DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// LiveIndicator fetches one indicator value for a country and year and
// folds every outcome into the result payload: upstream rejections become
// an "Invalid request" entry, other failures carry their message, and an
// empty series becomes a null value with "No data available". It never
// returns a Go error.
func (c *Client) LiveIndicator(ctx context.Context, countryCode, indicator string, year int) LiveIndicatorResult {
	entries, err := c.fetchIndicator(ctx, countryCode, indicator, year)
	if err != nil {
		if _, ok := err.(*httpStatusError); ok {
			return LiveIndicatorResult{
				Error: fmt.Sprintf("Invalid request for %s / %s", countryCode, indicator),
			}
		}
		return LiveIndicatorResult{Error: err.Error()}
	}

	if len(entries) == 0 {
		return LiveIndicatorResult{
			Country:   countryCode,
			Indicator: indicator,
			Year:      year,
			Value:     json.RawMessage("null"),
			Error:     "No data available",
		}
	}

	// Only the first data point matters: with a single year requested the
	// series has at most one entry per country.
	entry := entries[0]
	result := LiveIndicatorResult{
		Country:       countryCode,
		CountryName:   entry.Country.Value,
		Indicator:     indicator,
		IndicatorName: entry.Indicator.Value,
		Year:          year,
		Value:         entry.Value,
	}
	if result.Value == nil {
		result.Value = json.RawMessage("null")
	}
	return result
}

// CompareCountries looks up the same indicator for several countries, one
// upstream call per country, in the order given. A failure for one country
// only affects its own entry.
func (c *Client) CompareCountries(ctx context.Context, countryCodes []string, indicator string, year int) CompareCountriesResult {
	results := make(CompareCountriesResult, 0, len(countryCodes))
	for _, code := range countryCodes {
		results = append(results, c.compareOne(ctx, code, indicator, year))
	}
	return results
}

func (c *Client) compareOne(ctx context.Context, countryCode, indicator string, year int) (result LiveIndicatorResult) {
	defer func() {
		if r := recover(); r != nil {
			result = LiveIndicatorResult{
				Country:   countryCode,
				Indicator: indicator,
				Year:      year,
				Value:     json.RawMessage("null"),
				Error:     fmt.Sprint(r),
			}
		}
	}()
	return c.LiveIndicator(ctx, countryCode, indicator, year)
}

func (c *Client) fetchIndicator(ctx context.Context, countryCode, indicator string, year int) ([]apiEntry, error) {
	dedupKey := fmt.Sprintf("indicator:%s:%s:%d", countryCode, indicator, year)
	result, _, err := c.Dedup.Do(ctx, dedupKey, func() (interface{}, error) {
		return c.doFetchIndicator(ctx, countryCode, indicator, year)
	})
	if err != nil {
		return nil, err
	}
	return result.([]apiEntry), nil
}

func (c *Client) doFetchIndicator(ctx context.Context, countryCode, indicator string, year int) ([]apiEntry, error) {
	query := url.Values{}
	query.Set("format", "json")
	query.Set("per_page", fmt.Sprintf("%d", DefaultPerPage))
	if year > 0 {
		query.Set("date", fmt.Sprintf("%d", year))
	}
	reqURL := c.baseURL + "/country/" + url.PathEscape(countryCode) +
		"/indicator/" + url.PathEscape(indicator) + "?" + query.Encode()

	start := time.Now()
	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:       reqURL,
		UserAgent: c.userAgent,
		MaxRetry:  1,
	})
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordUpstreamCall("worldbank", "indicator", duration, false, "transport")
		return nil, err
	}

	if statusCode < 200 || statusCode >= 300 {
		metrics.RecordUpstreamCall("worldbank", "indicator", duration, false, fmt.Sprintf("http_%d", statusCode))
		if statusCode >= 500 {
			c.RecordFailure()
		} else {
			c.RecordSuccess()
		}
		return nil, &httpStatusError{status: statusCode}
	}

	metrics.RecordUpstreamCall("worldbank", "indicator", duration, true, "")
	c.RecordSuccess()

	// Response is a two-element array: [pagination metadata, data points].
	// Error responses from the API come back as a one-element array.
	var envelope []json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(envelope) < 2 {
		return nil, nil
	}

	var entries []apiEntry
	if err := json.Unmarshal(envelope[1], &entries); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	return entries, nil
}
