package restcountries

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
	apierrors "github.com/olgasafonova/worldbank-mcp-server/internal/errors"
	"github.com/olgasafonova/worldbank-mcp-server/metrics"
)

// BaseURL is the REST Countries API endpoint
const BaseURL = "https://restcountries.com/v3.1"

// Client provides access to the REST Countries API
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

// NewClient creates a new REST Countries client
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

// GetCountry fetches country metadata by ISO alpha-3 code. The upstream
// returns a list of candidate matches; only the first is used. One GET, no
// retry: the contract forwards upstream failures as-is.
func (c *Client) GetCountry(ctx context.Context, countryCode string) (*CountryInfo, error) {
	result, _, err := c.Dedup.Do(ctx, "alpha:"+countryCode, func() (interface{}, error) {
		return c.fetchCountry(ctx, countryCode)
	})
	if err != nil {
		return nil, err
	}
	return result.(*CountryInfo), nil
}

func (c *Client) fetchCountry(ctx context.Context, countryCode string) (*CountryInfo, error) {
	reqURL := c.baseURL + "/alpha/" + url.PathEscape(countryCode)

	start := time.Now()
	body, statusCode, err := c.DoRequest(ctx, base.RequestConfig{
		URL:       reqURL,
		UserAgent: c.userAgent,
		MaxRetry:  1,
	})
	duration := time.Since(start).Seconds()

	if err != nil {
		metrics.RecordUpstreamCall("restcountries", "alpha", duration, false, "transport")
		return nil, err
	}

	if statusCode < 200 || statusCode >= 300 {
		metrics.RecordUpstreamCall("restcountries", "alpha", duration, false, fmt.Sprintf("http_%d", statusCode))
		if statusCode >= 500 {
			c.RecordFailure()
		} else {
			// Client errors don't indicate service issues
			c.RecordSuccess()
		}
		return nil, apierrors.NewNotFoundError("restcountries", countryCode)
	}

	metrics.RecordUpstreamCall("restcountries", "alpha", duration, true, "")
	c.RecordSuccess()

	var candidates []json.RawMessage
	if err := json.Unmarshal(body, &candidates); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("empty response for country %s", countryCode)
	}

	var country apiCountry
	if err := json.Unmarshal(candidates[0], &country); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return reshape(&country)
}

// reshape flattens the upstream structure into the caller-facing CountryInfo.
func reshape(country *apiCountry) (*CountryInfo, error) {
	info := &CountryInfo{
		Name:       country.Name.Common,
		Region:     country.Region,
		Subregion:  country.Subregion,
		Population: country.Population,
		Flag:       country.Flag,
	}

	if len(country.Capital) > 0 {
		info.Capital = &country.Capital[0]
	}

	// Language display names in source order
	_, values, err := orderedObjectEntries(country.Languages)
	if err != nil {
		return nil, fmt.Errorf("failed to parse languages: %w", err)
	}
	info.Languages = make([]string, 0, len(values))
	for _, v := range values {
		var name string
		if err := json.Unmarshal(v, &name); err != nil {
			return nil, fmt.Errorf("failed to parse languages: %w", err)
		}
		info.Languages = append(info.Languages, name)
	}

	// Currency codes in source order
	keys, _, err := orderedObjectEntries(country.Currencies)
	if err != nil {
		return nil, fmt.Errorf("failed to parse currencies: %w", err)
	}
	info.Currencies = keys
	if info.Currencies == nil {
		info.Currencies = []string{}
	}

	return info, nil
}

// orderedObjectEntries decodes a JSON object preserving key order, which a
// map round-trip would destroy. Returns parallel key and raw value slices.
// nil, "null" and absent objects yield empty results.
func orderedObjectEntries(raw json.RawMessage) ([]string, []json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []string{}, nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("expected JSON object, got %v", tok)
	}

	keys := []string{}
	values := []json.RawMessage{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("expected object key, got %v", keyTok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, nil, err
		}
		keys = append(keys, key)
		values = append(values, value)
	}

	return keys, values, nil
}
