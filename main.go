// World Bank MCP Server - A Model Context Protocol server for World Bank
// development data. Exposes a bundled indicators dataset as resources and
// live country/indicator lookups as tools.
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/worldbank-mcp-server/internal/base"
	"github.com/olgasafonova/worldbank-mcp-server/internal/config"
	"github.com/olgasafonova/worldbank-mcp-server/internal/dataset"
	"github.com/olgasafonova/worldbank-mcp-server/internal/infra"
	"github.com/olgasafonova/worldbank-mcp-server/internal/restcountries"
	"github.com/olgasafonova/worldbank-mcp-server/internal/worldbank"
	"github.com/olgasafonova/worldbank-mcp-server/tools"
	"github.com/olgasafonova/worldbank-mcp-server/tracing"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const (
	ServerName    = "worldbank-mcp-server"
	ServerVersion = "1.0.0"
)

const serverInstructions = `World Bank MCP Server provides development data for countries worldwide.

Available tools:
- get_country_info: General country facts (capital, region, languages, currencies, population, flag)
- get_live_indicator: One World Bank indicator value for a country and year
- compare_countries: The same indicator across several countries for one year

Available resources:
- data://schema: Column names and types of the bundled indicators dataset
- data://countries: Countries present in the dataset
- data://indicators/{country_code}: Dataset rows for one country (ISO alpha-3, case sensitive)

Configure via environment variables:
- WORLDBANK_DATA_FILE: Path to the indicators CSV (default data/world_bank_indicators.csv)
- WORLDBANK_TRANSPORT: "http" (default) or "stdio"
- WORLDBANK_HOST / WORLDBANK_PORT: HTTP listen address (default 127.0.0.1:8765)
- WORLDBANK_METRICS_ADDR: Prometheus endpoint address (disabled when unset)`

func main() {
	// Logs go to stderr: stdout carries the MCP protocol on stdio transport
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.DefaultConfig())
	if err != nil {
		log.Fatalf("Failed to set up tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("Tracing shutdown failed", "error", err)
		}
	}()

	countriesClient := restcountries.NewClient(
		base.NewClient(base.WithLogger(logger), base.WithTimeout(cfg.Timeout)),
		restcountries.WithUserAgent(cfg.UserAgent),
	)
	worldbankClient := worldbank.NewClient(
		base.NewClient(base.WithLogger(logger), base.WithTimeout(cfg.Timeout)),
		worldbank.WithUserAgent(cfg.UserAgent),
	)

	loaderOpts := []dataset.LoaderOption{dataset.WithLogger(logger)}
	if cfg.CacheData {
		cache := infra.NewCache(16)
		defer cache.Close()
		loaderOpts = append(loaderOpts, dataset.WithCache(cache))
	}
	loader := dataset.NewLoader(cfg.DataFile, loaderOpts...)

	server := newServer(countriesClient, worldbankClient, loader, logger)

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr, logger)
	}

	logger.Info("Starting World Bank MCP Server",
		"name", ServerName,
		"version", ServerVersion,
		"transport", cfg.Transport,
		"data_file", cfg.DataFile,
	)

	switch cfg.Transport {
	case config.TransportStdio:
		if err := server.Run(ctx, &mcp.StdioTransport{}); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	default:
		if err := serveHTTP(ctx, server, cfg.Addr(), logger); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}
}

// newServer builds the MCP server with all tools and resources registered.
func newServer(countriesClient *restcountries.Client, worldbankClient *worldbank.Client, loader *dataset.Loader, logger *slog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    ServerName,
		Version: ServerVersion,
	}, &mcp.ServerOptions{
		Logger:       logger,
		Instructions: serverInstructions,
	})

	tools.NewHandlerRegistry(countriesClient, worldbankClient, logger).RegisterAll(server)
	tools.NewResourceRegistry(loader, logger).RegisterAll(server)

	return server
}

// serveHTTP runs the server over the streamable HTTP transport until the
// context is cancelled, then drains in-flight requests.
func serveHTTP(ctx context.Context, server *mcp.Server, addr string, logger *slog.Logger) error {
	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Listening", "addr", addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		logger.Info("Shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	}
}

// serveMetrics exposes Prometheus metrics on a side channel, kept off the
// MCP listener so scrapes never mix with protocol traffic.
func serveMetrics(addr string, logger *slog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	logger.Info("Metrics endpoint listening", "addr", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Error("Metrics endpoint failed", "error", err)
	}
}
