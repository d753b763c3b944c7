package tools

import (
	"log/slog"
	"os"
	"testing"

	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
	"github.com/olgasafonova/worldbank-mcp-server/internal/restcountries"
	"github.com/olgasafonova/worldbank-mcp-server/internal/worldbank"
)

func testRegistry(t *testing.T) *HandlerRegistry {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	countriesClient := restcountries.NewClient(base.NewClient(base.WithLogger(logger)))
	worldbankClient := worldbank.NewClient(base.NewClient(base.WithLogger(logger)))
	return NewHandlerRegistry(countriesClient, worldbankClient, logger)
}

func TestNewHandlerRegistry(t *testing.T) {
	registry := testRegistry(t)

	if registry == nil {
		t.Fatal("Expected non-nil registry")
	}
	if registry.countriesClient == nil {
		t.Error("Registry should hold the REST Countries client reference")
	}
	if registry.worldbankClient == nil {
		t.Error("Registry should hold the World Bank client reference")
	}
	if registry.logger == nil {
		t.Error("Registry should hold the logger reference")
	}
}

func TestBuildTool(t *testing.T) {
	registry := testRegistry(t)

	tests := []struct {
		name     string
		spec     ToolSpec
		wantName string
		wantDesc string
		wantRO   bool
		wantIdem bool
		wantOpen bool
	}{
		{
			name: "open world read-only tool",
			spec: ToolSpec{
				Name:        "get_country_info",
				Title:       "Get Country Info",
				Description: "Get general facts about a country",
				Method:      "GetCountryInfo",
				Source:      "restcountries",
				ReadOnly:    true,
				Idempotent:  true,
				OpenWorld:   true,
			},
			wantName: "get_country_info",
			wantDesc: "Get general facts about a country",
			wantRO:   true,
			wantIdem: true,
			wantOpen: true,
		},
		{
			name: "closed world tool",
			spec: ToolSpec{
				Name:        "local_lookup",
				Title:       "Local Lookup",
				Description: "Read from the bundled dataset",
				Method:      "LocalLookup",
			},
			wantName: "local_lookup",
			wantDesc: "Read from the bundled dataset",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tool := registry.buildTool(tt.spec)

			if tool.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", tool.Name, tt.wantName)
			}
			if tool.Description != tt.wantDesc {
				t.Errorf("Description = %q, want %q", tool.Description, tt.wantDesc)
			}
			if tool.Annotations == nil {
				t.Fatal("Expected annotations")
			}
			if tool.Annotations.ReadOnlyHint != tt.wantRO {
				t.Errorf("ReadOnlyHint = %v, want %v", tool.Annotations.ReadOnlyHint, tt.wantRO)
			}
			if tool.Annotations.IdempotentHint != tt.wantIdem {
				t.Errorf("IdempotentHint = %v, want %v", tool.Annotations.IdempotentHint, tt.wantIdem)
			}
			if tt.wantOpen && (tool.Annotations.OpenWorldHint == nil || !*tool.Annotations.OpenWorldHint) {
				t.Error("Expected OpenWorldHint to be true")
			}
			if !tt.wantOpen && tool.Annotations.OpenWorldHint != nil {
				t.Error("Expected OpenWorldHint to be unset")
			}
		})
	}
}

func TestRecoverPanic(t *testing.T) {
	registry := testRegistry(t)

	// recoverPanic must swallow the panic
	func() {
		defer registry.recoverPanic("test_tool")
		panic("test panic")
	}()
}

func TestLogExecution(t *testing.T) {
	registry := testRegistry(t)
	spec := ToolSpec{Name: "test_tool", Source: "worldbank"}

	registry.logExecution(spec,
		restcountries.GetCountryInfoArgs{CountryCode: "NOR"},
		restcountries.CountryInfoResult{})

	registry.logExecution(spec,
		worldbank.GetLiveIndicatorArgs{CountryCode: "USA", Indicator: "SP.POP.TOTL", Year: 2022},
		worldbank.LiveIndicatorResult{Country: "USA"})

	registry.logExecution(spec,
		worldbank.CompareCountriesArgs{CountryCodes: []string{"USA", "CHN"}, Indicator: "SP.POP.TOTL"},
		worldbank.CompareCountriesResult{{Country: "USA"}, {Country: "CHN"}})
}

func TestAllToolsNotEmpty(t *testing.T) {
	if len(AllTools) == 0 {
		t.Error("AllTools should not be empty")
	}

	for i, spec := range AllTools {
		if spec.Name == "" {
			t.Errorf("Tool %d has empty Name", i)
		}
		if spec.Method == "" {
			t.Errorf("Tool %s has empty Method", spec.Name)
		}
		if spec.Description == "" {
			t.Errorf("Tool %s has empty Description", spec.Name)
		}
		if spec.Source == "" {
			t.Errorf("Tool %s has empty Source", spec.Name)
		}
	}
}

func TestToolSpecMethods(t *testing.T) {
	knownMethods := map[string]bool{
		"GetCountryInfo":   true,
		"GetLiveIndicator": true,
		"CompareCountries": true,
	}

	for _, spec := range AllTools {
		if !knownMethods[spec.Method] {
			t.Errorf("Tool %s has unknown method: %s", spec.Name, spec.Method)
		}
	}
}

func TestToolsBySource(t *testing.T) {
	wbTools := ToolsBySource("worldbank")
	if len(wbTools) != 2 {
		t.Errorf("Expected 2 World Bank tools, got %d", len(wbTools))
	}
	for _, tool := range wbTools {
		if tool.Source != "worldbank" {
			t.Errorf("Tool %s has source %s, expected worldbank", tool.Name, tool.Source)
		}
	}

	rcTools := ToolsBySource("restcountries")
	if len(rcTools) != 1 {
		t.Errorf("Expected 1 REST Countries tool, got %d", len(rcTools))
	}

	unknown := ToolsBySource("unknown")
	if len(unknown) != 0 {
		t.Errorf("Expected 0 tools for unknown source, got %d", len(unknown))
	}
}

func TestToolsByCategory(t *testing.T) {
	indicatorTools := ToolsByCategory("indicator")
	if len(indicatorTools) != 2 {
		t.Errorf("Expected 2 indicator tools, got %d", len(indicatorTools))
	}
	for _, tool := range indicatorTools {
		if tool.Category != "indicator" {
			t.Errorf("Tool %s has category %s, expected indicator", tool.Name, tool.Category)
		}
	}
}
