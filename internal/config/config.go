// Package config holds server configuration loaded from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	apierrors "github.com/olgasafonova/worldbank-mcp-server/internal/errors"
)

// Transport values accepted by the server.
const (
	TransportHTTP  = "http"
	TransportStdio = "stdio"
)

// Config holds World Bank MCP server settings
type Config struct {
	// DataFile is the path to the World Bank indicators CSV
	DataFile string

	// Transport selects "http" (streamable HTTP) or "stdio"
	Transport string

	// Host and Port bind the streamable HTTP transport
	Host string
	Port int

	// Timeout for upstream API requests
	Timeout time.Duration

	// UserAgent identifies the server to the upstream APIs
	UserAgent string

	// MetricsAddr serves Prometheus metrics when non-empty (e.g. ":9090")
	MetricsAddr string

	// CacheData enables the mtime-keyed dataset cache; off by default so
	// resource reads always reflect on-disk state
	CacheData bool
}

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	dataFile := os.Getenv("WORLDBANK_DATA_FILE")
	if dataFile == "" {
		dataFile = "data/world_bank_indicators.csv"
	}

	transport := os.Getenv("WORLDBANK_TRANSPORT")
	if transport == "" {
		transport = TransportHTTP
	}
	if transport != TransportHTTP && transport != TransportStdio {
		return nil, apierrors.NewValidationError("WORLDBANK_TRANSPORT", transport,
			fmt.Sprintf("must be %q or %q", TransportHTTP, TransportStdio))
	}

	host := os.Getenv("WORLDBANK_HOST")
	if host == "" {
		host = "127.0.0.1"
	}

	port := 8765
	if p := os.Getenv("WORLDBANK_PORT"); p != "" {
		n, err := strconv.Atoi(p)
		if err != nil || n <= 0 || n > 65535 {
			return nil, apierrors.NewValidationError("WORLDBANK_PORT", p, "must be a port number between 1 and 65535")
		}
		port = n
	}

	timeout := 30 * time.Second
	if t := os.Getenv("WORLDBANK_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	userAgent := os.Getenv("WORLDBANK_USER_AGENT")
	if userAgent == "" {
		userAgent = "worldbank-mcp-server/1.0 (github.com/olgasafonova/worldbank-mcp-server)"
	}

	return &Config{
		DataFile:    dataFile,
		Transport:   transport,
		Host:        host,
		Port:        port,
		Timeout:     timeout,
		UserAgent:   userAgent,
		MetricsAddr: os.Getenv("WORLDBANK_METRICS_ADDR"),
		CacheData:   os.Getenv("WORLDBANK_CACHE_DATA") == "true",
	}, nil
}

// Addr returns the host:port for the streamable HTTP transport
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
