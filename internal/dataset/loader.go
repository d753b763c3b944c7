package dataset

import (
	"encoding/csv"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	apierrors "github.com/olgasafonova/worldbank-mcp-server/internal/errors"
	"github.com/olgasafonova/worldbank-mcp-server/internal/infra"
	"github.com/olgasafonova/worldbank-mcp-server/metrics"
)

// cacheTTL is deliberately long: entries are keyed by file mtime, so a
// modified file changes the key instead of waiting out a timer.
const cacheTTL = 24 * time.Hour

// Loader reads the indicators CSV from a fixed path. By default every Load
// re-reads and re-parses the file so results always reflect on-disk state;
// an optional cache keyed by path and mtime skips the re-parse when the file
// has not changed.
type Loader struct {
	path   string
	cache  *infra.Cache
	logger *slog.Logger
}

// LoaderOption configures the Loader
type LoaderOption func(*Loader)

// WithCache enables the mtime-keyed dataset cache
func WithCache(c *infra.Cache) LoaderOption {
	return func(l *Loader) {
		l.cache = c
	}
}

// WithLogger sets a custom logger
func WithLogger(logger *slog.Logger) LoaderOption {
	return func(l *Loader) {
		l.logger = logger
	}
}

// NewLoader creates a Loader for the given CSV path
func NewLoader(path string, opts ...LoaderOption) *Loader {
	l := &Loader{
		path:   path,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Path returns the configured CSV path
func (l *Loader) Path() string {
	return l.path
}

// Load returns the full dataset. A missing file is a DataUnavailableError,
// which callers let propagate instead of converting to an error payload.
func (l *Loader) Load() (*Dataset, error) {
	info, err := os.Stat(l.path)
	if err != nil {
		return nil, apierrors.NewDataUnavailableError(l.path, err)
	}

	var cacheKey string
	if l.cache != nil {
		cacheKey = fmt.Sprintf("dataset:%s:%d", l.path, info.ModTime().UnixNano())
		if cached, ok := l.cache.Get(cacheKey); ok {
			metrics.RecordCacheAccess(true)
			return cached.(*Dataset), nil
		}
		metrics.RecordCacheAccess(false)
	}

	ds, err := l.parse()
	if err != nil {
		return nil, err
	}
	l.logger.Debug("Dataset loaded", "path", l.path, "rows", ds.Height(), "columns", len(ds.Columns))

	if l.cache != nil {
		// Drop entries for older mtimes of the same file before storing
		l.cache.DeletePrefix("dataset:" + l.path + ":")
		l.cache.Set(cacheKey, ds, cacheTTL)
		metrics.SetCacheSize(float64(l.cache.Size()))
	}

	return ds, nil
}

func (l *Loader) parse() (*Dataset, error) {
	f, err := os.Open(l.path)
	if err != nil {
		return nil, apierrors.NewDataUnavailableError(l.path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", l.path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("failed to parse %s: no header row", l.path)
	}

	columns := records[0]
	raw := records[1:]
	types := inferTypes(columns, raw)

	rows := make([][]any, 0, len(raw))
	for _, record := range raw {
		row := make([]any, len(columns))
		for i := range columns {
			row[i] = convertCell(record[i], types[i])
		}
		rows = append(rows, row)
	}

	return &Dataset{
		Columns: columns,
		Types:   types,
		Rows:    rows,
	}, nil
}

// inferTypes picks the narrowest type that fits every non-empty cell of a
// column: Int64, then Float64, then String.
func inferTypes(columns []string, records [][]string) []string {
	types := make([]string, len(columns))
	for i := range columns {
		colType := TypeInt64
		seen := false
		for _, record := range records {
			cell := record[i]
			if cell == "" {
				continue
			}
			seen = true
			switch colType {
			case TypeInt64:
				if _, err := strconv.ParseInt(cell, 10, 64); err == nil {
					continue
				}
				colType = TypeFloat64
				fallthrough
			case TypeFloat64:
				if _, err := strconv.ParseFloat(cell, 64); err == nil {
					continue
				}
				colType = TypeString
			}
			if colType == TypeString {
				break
			}
		}
		if !seen {
			// A column with no values carries no numeric evidence
			colType = TypeString
		}
		types[i] = colType
	}
	return types
}

// convertCell parses a raw cell according to its column type.
// Empty cells become nil (JSON null).
func convertCell(cell, colType string) any {
	if cell == "" {
		return nil
	}
	switch colType {
	case TypeInt64:
		n, err := strconv.ParseInt(cell, 10, 64)
		if err == nil {
			return n
		}
	case TypeFloat64:
		f, err := strconv.ParseFloat(cell, 64)
		if err == nil {
			return f
		}
	}
	return cell
}
