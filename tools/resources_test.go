package tools

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/worldbank-mcp-server/internal/dataset"
	apierrors "github.com/olgasafonova/worldbank-mcp-server/internal/errors"
)

const resourceTestCSV = `countryiso3code,country,indicator,indicator_name,date,value
USA,United States,NY.GDP.MKTP.CD,GDP (current US$),2022,25462700000000
USA,United States,SP.POP.TOTL,"Population, total",2022,333287557
BRA,Brazil,SP.POP.TOTL,"Population, total",2022,215313498
`

func testResourceRegistry(t *testing.T) *ResourceRegistry {
	t.Helper()
	path := filepath.Join(t.TempDir(), "indicators.csv")
	if err := os.WriteFile(path, []byte(resourceTestCSV), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	return NewResourceRegistry(dataset.NewLoader(path, dataset.WithLogger(logger)), logger)
}

func readRequest(uri string) *mcp.ReadResourceRequest {
	return &mcp.ReadResourceRequest{Params: &mcp.ReadResourceParams{URI: uri}}
}

func TestReadSchema(t *testing.T) {
	registry := testResourceRegistry(t)

	result, err := registry.readSchema(context.Background(), readRequest(SchemaURI))
	if err != nil {
		t.Fatalf("readSchema: %v", err)
	}
	if len(result.Contents) != 1 {
		t.Fatalf("len(Contents) = %d, want 1", len(result.Contents))
	}
	content := result.Contents[0]
	if content.URI != SchemaURI {
		t.Errorf("URI = %q, want %q", content.URI, SchemaURI)
	}
	if content.MIMEType != "application/json" {
		t.Errorf("MIMEType = %q", content.MIMEType)
	}

	var schema map[string]string
	if err := json.Unmarshal([]byte(content.Text), &schema); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if schema["countryiso3code"] != "String" {
		t.Errorf("countryiso3code type = %q, want String", schema["countryiso3code"])
	}
	if schema["value"] != "Int64" {
		t.Errorf("value type = %q, want Int64", schema["value"])
	}
}

func TestReadCountries(t *testing.T) {
	registry := testResourceRegistry(t)

	result, err := registry.readCountries(context.Background(), readRequest(CountriesURI))
	if err != nil {
		t.Fatalf("readCountries: %v", err)
	}

	var countries []map[string]string
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &countries); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(countries) != 2 {
		t.Fatalf("len(countries) = %d, want 2", len(countries))
	}
	// Sorted by code: BRA before USA
	if countries[0]["countryiso3code"] != "BRA" || countries[1]["countryiso3code"] != "USA" {
		t.Errorf("countries = %v", countries)
	}
}

func TestReadCountryIndicators(t *testing.T) {
	registry := testResourceRegistry(t)

	result, err := registry.readCountryIndicators(context.Background(), readRequest(indicatorsPrefix+"USA"))
	if err != nil {
		t.Fatalf("readCountryIndicators: %v", err)
	}

	var rows []map[string]any
	if err := json.Unmarshal([]byte(result.Contents[0].Text), &rows); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	for _, row := range rows {
		if row["countryiso3code"] != "USA" {
			t.Errorf("row country = %v, want USA", row["countryiso3code"])
		}
	}
}

func TestReadCountryIndicatorsNotFound(t *testing.T) {
	registry := testResourceRegistry(t)

	result, err := registry.readCountryIndicators(context.Background(), readRequest(indicatorsPrefix+"ZZZ"))
	if err != nil {
		t.Fatalf("lookup miss must be a payload, not an error: %v", err)
	}
	if got := result.Contents[0].Text; got != `{"error":"Country not found: ZZZ"}` {
		t.Errorf("Text = %s", got)
	}
}

func TestReadCountryIndicatorsCaseSensitive(t *testing.T) {
	registry := testResourceRegistry(t)

	result, err := registry.readCountryIndicators(context.Background(), readRequest(indicatorsPrefix+"usa"))
	if err != nil {
		t.Fatalf("readCountryIndicators: %v", err)
	}
	if !strings.Contains(result.Contents[0].Text, "Country not found: usa") {
		t.Errorf("lowercase code should not match, got %s", result.Contents[0].Text)
	}
}

func TestReadResourcesMissingDataset(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	registry := NewResourceRegistry(dataset.NewLoader(filepath.Join(t.TempDir(), "absent.csv")), logger)

	if _, err := registry.readSchema(context.Background(), readRequest(SchemaURI)); !apierrors.IsDataUnavailable(err) {
		t.Errorf("readSchema err = %v, want data unavailable", err)
	}
	if _, err := registry.readCountries(context.Background(), readRequest(CountriesURI)); !apierrors.IsDataUnavailable(err) {
		t.Errorf("readCountries err = %v, want data unavailable", err)
	}
	if _, err := registry.readCountryIndicators(context.Background(), readRequest(indicatorsPrefix+"USA")); !apierrors.IsDataUnavailable(err) {
		t.Errorf("readCountryIndicators err = %v, want data unavailable", err)
	}
}
