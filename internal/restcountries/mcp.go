package restcountries

import (
	"context"
	"errors"

	apierrors "github.com/olgasafonova/worldbank-mcp-server/internal/errors"
)

// GetCountryInfoMCP is the MCP wrapper for GetCountry. Malformed codes are
// forwarded upstream verbatim; every failure comes back as an error payload,
// never a protocol-level error.
func (c *Client) GetCountryInfoMCP(ctx context.Context, args GetCountryInfoArgs) (CountryInfoResult, error) {
	info, err := c.GetCountry(ctx, args.CountryCode)
	if err != nil {
		var notFound *apierrors.NotFoundError
		if errors.As(err, &notFound) {
			return CountryInfoResult{Error: "Country not found: " + args.CountryCode}, nil
		}
		return CountryInfoResult{Error: err.Error()}, nil
	}
	return CountryInfoResult{CountryInfo: info}, nil
}
