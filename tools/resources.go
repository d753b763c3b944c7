package tools

import (
	"context"
	"log/slog"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/worldbank-mcp-server/internal/dataset"
	"github.com/olgasafonova/worldbank-mcp-server/metrics"
)

// Resource URIs exposed by the server. The indicators URI is a template:
// the final path segment selects the country.
const (
	SchemaURI          = "data://schema"
	CountriesURI       = "data://countries"
	IndicatorsTemplate = "data://indicators/{country_code}"

	indicatorsPrefix = "data://indicators/"
)

// ResourceRegistry registers the dataset-backed MCP resources.
type ResourceRegistry struct {
	loader *dataset.Loader
	logger *slog.Logger
}

// NewResourceRegistry creates a new resource registry.
func NewResourceRegistry(loader *dataset.Loader, logger *slog.Logger) *ResourceRegistry {
	return &ResourceRegistry{loader: loader, logger: logger}
}

// RegisterAll registers all resources with the MCP server.
func (r *ResourceRegistry) RegisterAll(server *mcp.Server) {
	server.AddResource(&mcp.Resource{
		URI:         SchemaURI,
		Name:        "schema",
		Description: "Column names and inferred types of the World Bank indicators dataset",
		MIMEType:    "application/json",
	}, r.readSchema)

	server.AddResource(&mcp.Resource{
		URI:         CountriesURI,
		Name:        "countries",
		Description: "Distinct country codes and names present in the dataset",
		MIMEType:    "application/json",
	}, r.readCountries)

	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: IndicatorsTemplate,
		Name:        "country_indicators",
		Description: "All dataset rows for one country, selected by exact ISO alpha-3 code",
		MIMEType:    "application/json",
	}, r.readCountryIndicators)

	r.logger.Info("Registered all resources", "count", 3)
}

// Read handlers return the payload on success and propagate dataset-level
// failures (missing or unreadable file) as protocol errors. Lookup misses
// are not failures: they come back as {"error": ...} payloads.

func (r *ResourceRegistry) readSchema(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	text, err := r.loader.SchemaJSON()
	if err != nil {
		metrics.RecordResourceRead("schema", false)
		return nil, err
	}
	metrics.RecordResourceRead("schema", true)
	return jsonResult(req.Params.URI, text), nil
}

func (r *ResourceRegistry) readCountries(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	text, err := r.loader.CountriesJSON()
	if err != nil {
		metrics.RecordResourceRead("countries", false)
		return nil, err
	}
	metrics.RecordResourceRead("countries", true)
	return jsonResult(req.Params.URI, text), nil
}

func (r *ResourceRegistry) readCountryIndicators(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	// The code is taken from the URI verbatim, no normalization: lookups
	// are case sensitive on purpose.
	code := strings.TrimPrefix(req.Params.URI, indicatorsPrefix)

	text, err := r.loader.CountryIndicatorsJSON(code)
	if err != nil {
		metrics.RecordResourceRead("indicators", false)
		return nil, err
	}
	metrics.RecordResourceRead("indicators", true)
	return jsonResult(req.Params.URI, text), nil
}

func jsonResult(uri, text string) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     text,
		}},
	}
}
