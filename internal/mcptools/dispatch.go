package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/chris-regnier/gdeltctl/internal/gdelt"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const scopeName = "github.com/chris-regnier/gdeltctl/internal/mcptools"

const (
	callIDAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"
	callIDLength   = 10
)

// UnknownToolError is returned for a tool name that is not registered.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("Unknown tool: %s", e.Name)
}

// Dispatcher routes tool calls through the registry and converts every
// failure into an error result.
type Dispatcher struct {
	registry *Registry
	logger   *slog.Logger
	tracer   trace.Tracer
	records  otellog.Logger
	calls    metric.Int64Counter
	duration metric.Float64Histogram
}

// NewDispatcher creates a Dispatcher. A nil logger discards output.
func NewDispatcher(reg *Registry, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	meter := otel.Meter(scopeName)
	// Instrument creation only fails on invalid names; the no-op fallbacks
	// returned alongside the error are still usable.
	calls, _ := meter.Int64Counter("gdeltctl.tool.calls",
		metric.WithDescription("Tool calls by tool and outcome"))
	duration, _ := meter.Float64Histogram("gdeltctl.tool.duration",
		metric.WithDescription("Tool call latency"), metric.WithUnit("s"))
	return &Dispatcher{
		registry: reg,
		logger:   logger,
		tracer:   otel.Tracer(scopeName),
		records:  global.GetLoggerProvider().Logger(scopeName),
		calls:    calls,
		duration: duration,
	}
}

// Registry returns the tools the dispatcher serves.
func (d *Dispatcher) Registry() *Registry {
	return d.registry
}

// Call invokes the named tool. It always returns a result; failures come
// back with IsError set and an "Error: " prefixed message.
func (d *Dispatcher) Call(ctx context.Context, name string, args json.RawMessage) (res *mcp.CallToolResult) {
	callID := newCallID()
	ctx, span := d.tracer.Start(ctx, "mcptools.call", trace.WithAttributes(
		attribute.String("mcp.tool", name),
		attribute.String("mcp.call_id", callID),
	))
	defer span.End()

	start := time.Now()
	var err error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
			res = errorResult(err)
		}
		d.finish(ctx, span, name, callID, time.Since(start), err)
	}()

	tool, ok := d.registry.Lookup(name)
	if !ok {
		err = &UnknownToolError{Name: name}
		return errorResult(err)
	}

	res, err = tool.Handle(ctx, args)
	if err != nil {
		return errorResult(err)
	}
	return res
}

func (d *Dispatcher) finish(ctx context.Context, span trace.Span, name, callID string, elapsed time.Duration, err error) {
	outcome := "ok"
	switch {
	case err == nil:
	case gdelt.IsRemote(err):
		outcome = "remote_error"
	default:
		outcome = "rejected"
	}
	set := metric.WithAttributes(attribute.String("tool", name), attribute.String("outcome", outcome))
	d.calls.Add(ctx, 1, set)
	d.duration.Record(ctx, elapsed.Seconds(), set)
	d.emit(ctx, name, callID, outcome, elapsed)

	attrs := []any{"tool", name, "call_id", callID, "duration", elapsed}
	if err == nil {
		d.logger.Info("tool call", attrs...)
		return
	}

	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	attrs = append(attrs, "error", err)
	if outcome == "remote_error" {
		d.logger.Warn("tool call failed", attrs...)
		return
	}
	d.logger.Info("tool call rejected", attrs...)
}

// emit sends one OTLP log record per call. It is a no-op unless an exporter
// is installed.
func (d *Dispatcher) emit(ctx context.Context, name, callID, outcome string, elapsed time.Duration) {
	var rec otellog.Record
	rec.SetTimestamp(time.Now())
	rec.SetSeverity(otellog.SeverityInfo)
	if outcome == "remote_error" {
		rec.SetSeverity(otellog.SeverityWarn)
	}
	rec.SetBody(otellog.StringValue("tool call"))
	rec.AddAttributes(
		otellog.String("tool.name", name),
		otellog.String("tool.call_id", callID),
		otellog.String("tool.outcome", outcome),
		otellog.Float64("tool.duration_ms", float64(elapsed.Microseconds())/1000),
	)
	d.records.Emit(ctx, rec)
}

func newCallID() string {
	id, err := gonanoid.Generate(callIDAlphabet, callIDLength)
	if err != nil {
		return "unknown"
	}
	return id
}
