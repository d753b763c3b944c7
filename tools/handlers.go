package tools

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/olgasafonova/worldbank-mcp-server/internal/restcountries"
	"github.com/olgasafonova/worldbank-mcp-server/internal/worldbank"
	"github.com/olgasafonova/worldbank-mcp-server/metrics"
	"github.com/olgasafonova/worldbank-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

// HandlerRegistry provides type-safe tool registration by mapping
// tool names to their concrete handler implementations.
type HandlerRegistry struct {
	countriesClient *restcountries.Client
	worldbankClient *worldbank.Client
	logger          *slog.Logger
}

// NewHandlerRegistry creates a new handler registry.
func NewHandlerRegistry(countriesClient *restcountries.Client, worldbankClient *worldbank.Client, logger *slog.Logger) *HandlerRegistry {
	return &HandlerRegistry{
		countriesClient: countriesClient,
		worldbankClient: worldbankClient,
		logger:          logger,
	}
}

// RegisterAll registers all tools with the MCP server.
func (h *HandlerRegistry) RegisterAll(server *mcp.Server) {
	for _, spec := range AllTools {
		h.registerByName(server, spec)
	}
	h.logger.Info("Registered all tools", "count", len(AllTools))
}

// registerByName dispatches to the correct typed registration function.
func (h *HandlerRegistry) registerByName(server *mcp.Server, spec ToolSpec) {
	tool := h.buildTool(spec)

	switch spec.Method {
	case "GetCountryInfo":
		register(h, server, tool, spec, h.countriesClient.GetCountryInfoMCP)
	case "GetLiveIndicator":
		register(h, server, tool, spec, h.worldbankClient.GetLiveIndicatorMCP)
	case "CompareCountries":
		register(h, server, tool, spec, h.worldbankClient.CompareCountriesMCP)
	default:
		h.logger.Error("Unknown method, tool not registered", "method", spec.Method, "tool", spec.Name)
	}
}

// buildTool creates an mcp.Tool from a ToolSpec.
func (h *HandlerRegistry) buildTool(spec ToolSpec) *mcp.Tool {
	annotations := &mcp.ToolAnnotations{
		Title:          spec.Title,
		ReadOnlyHint:   spec.ReadOnly,
		IdempotentHint: spec.Idempotent,
	}
	if spec.OpenWorld {
		annotations.OpenWorldHint = ptr(true)
	}

	return &mcp.Tool{
		Name:        spec.Name,
		Description: spec.Description,
		Annotations: annotations,
	}
}

// register is a generic helper that registers a tool with the MCP server.
// It wraps the client method with panic recovery, metrics, tracing, and logging.
func register[Args, Result any](
	h *HandlerRegistry,
	server *mcp.Server,
	tool *mcp.Tool,
	spec ToolSpec,
	method func(context.Context, Args) (Result, error),
) {
	mcp.AddTool(server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args Args) (*mcp.CallToolResult, Result, error) {
		defer h.recoverPanic(spec.Name)

		ctx, span := tracing.StartSpan(ctx, "mcp.tool."+spec.Name)
		defer span.End()

		span.SetAttributes(
			attribute.String("mcp.tool.name", spec.Name),
			attribute.String("mcp.tool.category", spec.Category),
			attribute.String("mcp.tool.source", spec.Source),
			attribute.Bool("mcp.tool.readonly", spec.ReadOnly),
		)

		metrics.RequestInFlight.WithLabelValues(spec.Name).Inc()
		defer metrics.RequestInFlight.WithLabelValues(spec.Name).Dec()

		start := time.Now()
		result, err := method(ctx, args)
		duration := time.Since(start).Seconds()

		span.SetAttributes(attribute.Float64("mcp.tool.duration_seconds", duration))

		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			metrics.RecordRequest(spec.Name, duration, false)
			var zero Result
			return nil, zero, fmt.Errorf("%s failed: %w", spec.Name, err)
		}

		span.SetStatus(codes.Ok, "")
		metrics.RecordRequest(spec.Name, duration, true)
		h.logExecution(spec, args, result)
		return nil, result, nil
	})
}

// recoverPanic recovers from panics in tool handlers.
func (h *HandlerRegistry) recoverPanic(toolName string) {
	if rec := recover(); rec != nil {
		metrics.PanicsRecovered.WithLabelValues(toolName).Inc()
		h.logger.Error("Panic recovered",
			"tool", toolName,
			"panic", rec,
			"stack", string(debug.Stack()))
	}
}

// logExecution logs tool execution details.
func (h *HandlerRegistry) logExecution(spec ToolSpec, args, result any) {
	attrs := []any{"tool", spec.Name, "source", spec.Source}

	switch a := args.(type) {
	case restcountries.GetCountryInfoArgs:
		attrs = append(attrs, "country_code", a.CountryCode)
	case worldbank.GetLiveIndicatorArgs:
		attrs = append(attrs, "country_code", a.CountryCode, "indicator", a.Indicator, "year", a.Year)
	case worldbank.CompareCountriesArgs:
		attrs = append(attrs, "countries", len(a.CountryCodes), "indicator", a.Indicator, "year", a.Year)
	}

	switch r := result.(type) {
	case restcountries.CountryInfoResult:
		attrs = append(attrs, "found", r.Error == "")
	case worldbank.LiveIndicatorResult:
		attrs = append(attrs, "has_data", r.Error == "")
	case worldbank.CompareCountriesResult:
		attrs = append(attrs, "results_count", len(r))
	}

	h.logger.Info("Tool executed", attrs...)
}
