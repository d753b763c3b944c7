package worldbank

import "encoding/json"

// GetLiveIndicatorArgs are the arguments for the get_live_indicator tool
type GetLiveIndicatorArgs struct {
	CountryCode string `json:"country_code" jsonschema:"required"`
	Indicator   string `json:"indicator" jsonschema:"required"`
	Year        int    `json:"year,omitempty"`
}

// CompareCountriesArgs are the arguments for the compare_countries tool
type CompareCountriesArgs struct {
	CountryCodes []string `json:"country_codes" jsonschema:"required"`
	Indicator    string   `json:"indicator" jsonschema:"required"`
	Year         int      `json:"year,omitempty"`
}

// LiveIndicatorResult is one indicator lookup outcome. Field presence
// varies by outcome: a rejected request carries only the error message,
// a missing data point keeps an explicit null value next to its error,
// and a successful lookup has no error at all. Value stays raw so the
// upstream number, string or null passes through untouched.
type LiveIndicatorResult struct {
	Country       string          `json:"country,omitempty"`
	CountryName   *string         `json:"country_name,omitempty"`
	Indicator     string          `json:"indicator,omitempty"`
	IndicatorName *string         `json:"indicator_name,omitempty"`
	Year          int             `json:"year,omitempty"`
	Value         json.RawMessage `json:"value,omitempty"`
	Error         string          `json:"error,omitempty"`
}

// CompareCountriesResult holds one entry per requested country, in
// request order.
type CompareCountriesResult []LiveIndicatorResult
