package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
	"github.com/olgasafonova/worldbank-mcp-server/internal/config"
	"github.com/olgasafonova/worldbank-mcp-server/internal/dataset"
	"github.com/olgasafonova/worldbank-mcp-server/internal/infra"
	"github.com/olgasafonova/worldbank-mcp-server/internal/worldbank"
)

// measureDatasetPerformance compares cold loads against the mtime-keyed cache
func measureDatasetPerformance(cfg *config.Config, logger *slog.Logger) {
	fmt.Println("=== Dataset Load Performance ===")
	fmt.Println()

	cold := dataset.NewLoader(cfg.DataFile, dataset.WithLogger(logger))

	start := time.Now()
	ds, err := cold.Load()
	if err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	coldTime := time.Since(start)
	fmt.Printf("1. Cold load (parse CSV):     %v (%d rows, %d columns)\n", coldTime, ds.Height(), len(ds.Columns))

	cache := infra.NewCache(16)
	defer cache.Close()
	cached := dataset.NewLoader(cfg.DataFile, dataset.WithLogger(logger), dataset.WithCache(cache))

	if _, err := cached.Load(); err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	start = time.Now()
	if _, err := cached.Load(); err != nil {
		fmt.Printf("   Error: %v\n", err)
		return
	}
	warmTime := time.Since(start)
	fmt.Printf("2. Warm load (mtime cache):   %v\n", warmTime)
	if warmTime > 0 {
		fmt.Printf("   Speedup: %.0fx faster\n", float64(coldTime)/float64(warmTime))
	}
	fmt.Println()
}

// measureUpstreamPerformance times live indicator lookups, including the
// request deduplication path
func measureUpstreamPerformance(cfg *config.Config, logger *slog.Logger) {
	fmt.Println("=== Live Indicator Performance ===")
	fmt.Println()

	client := worldbank.NewClient(
		base.NewClient(base.WithLogger(logger), base.WithTimeout(cfg.Timeout)),
		worldbank.WithUserAgent(cfg.UserAgent),
	)
	ctx := context.Background()

	start := time.Now()
	result := client.LiveIndicator(ctx, "USA", "SP.POP.TOTL", worldbank.DefaultYear)
	firstCall := time.Since(start)
	if result.Error != "" {
		fmt.Printf("   Upstream unavailable: %s\n\n", result.Error)
		return
	}
	fmt.Printf("3. Single lookup (network):   %v\n", firstCall)

	start = time.Now()
	results := client.CompareCountries(ctx, []string{"USA", "CHN", "IND", "BRA"}, "SP.POP.TOTL", worldbank.DefaultYear)
	batchTime := time.Since(start)
	fmt.Printf("4. Compare 4 countries:       %v (%v per country)\n", batchTime, batchTime/time.Duration(len(results)))
	fmt.Println()
}

func main() {
	fmt.Println("World Bank MCP Server - Performance Measurements")
	fmt.Println("=================================================")
	fmt.Println()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Config error: %v\n", err)
		os.Exit(1)
	}

	measureDatasetPerformance(cfg, logger)
	measureUpstreamPerformance(cfg, logger)

	fmt.Println("=== Summary ===")
	fmt.Println()
	fmt.Println("• Dataset cache: repeated resource reads skip CSV parsing entirely")
	fmt.Println("• Deduplication: identical in-flight lookups share one upstream call")
	fmt.Println("• Connection reuse: HTTP keep-alive cuts per-request latency")
}
