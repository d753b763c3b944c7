package worldbank

import "context"

// GetLiveIndicatorMCP is the MCP wrapper for LiveIndicator. An omitted
// year defaults to the most recent one with broad coverage.
func (c *Client) GetLiveIndicatorMCP(ctx context.Context, args GetLiveIndicatorArgs) (LiveIndicatorResult, error) {
	year := args.Year
	if year == 0 {
		year = DefaultYear
	}
	return c.LiveIndicator(ctx, args.CountryCode, args.Indicator, year), nil
}

// CompareCountriesMCP is the MCP wrapper for CompareCountries
func (c *Client) CompareCountriesMCP(ctx context.Context, args CompareCountriesArgs) (CompareCountriesResult, error) {
	year := args.Year
	if year == 0 {
		year = DefaultYear
	}
	return c.CompareCountries(ctx, args.CountryCodes, args.Indicator, year), nil
}
