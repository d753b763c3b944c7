package main

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
	"github.com/olgasafonova/worldbank-mcp-server/internal/dataset"
	"github.com/olgasafonova/worldbank-mcp-server/internal/restcountries"
	"github.com/olgasafonova/worldbank-mcp-server/internal/worldbank"
	"github.com/olgasafonova/worldbank-mcp-server/tools"
)

func TestNewServer(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	path := filepath.Join(t.TempDir(), "indicators.csv")
	csv := "countryiso3code,country,indicator,indicator_name,date,value\nUSA,United States,SP.POP.TOTL,\"Population, total\",2022,333287557\n"
	if err := os.WriteFile(path, []byte(csv), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	countriesClient := restcountries.NewClient(base.NewClient(base.WithLogger(logger)))
	worldbankClient := worldbank.NewClient(base.NewClient(base.WithLogger(logger)))
	loader := dataset.NewLoader(path, dataset.WithLogger(logger))

	server := newServer(countriesClient, worldbankClient, loader, logger)
	if server == nil {
		t.Fatal("Expected non-nil server")
	}
}

func TestServerInstructionsMentionEveryTool(t *testing.T) {
	for _, spec := range tools.AllTools {
		if !strings.Contains(serverInstructions, spec.Name) {
			t.Errorf("instructions missing tool %s", spec.Name)
		}
	}
	for _, uri := range []string{"data://schema", "data://countries", "data://indicators/"} {
		if !strings.Contains(serverInstructions, uri) {
			t.Errorf("instructions missing resource %s", uri)
		}
	}
}
