// Package otelreport implements remote.Reporter over the OpenTelemetry Logs
// API, so remote reports can be shipped to any OTLP collector.
package otelreport

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/trickstertwo/xclock"
	"go.opentelemetry.io/otel/exporters/otlp/otlplog/otlploggrpc"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/trickstertwo/multilog/internal/render"
	"github.com/trickstertwo/multilog/sink/remote"
)

// ScopeName is the instrumentation scope of emitted records.
const ScopeName = "github.com/trickstertwo/multilog/sink/remote"

// Attribute keys set on error records.
const (
	AttrErrorCode = "error.code"
	AttrSessionID = "session.id"
)

// Reporter emits INFO records for Log and ERROR records for Record. Every
// record carries the reporter's session id.
type Reporter struct {
	logger   otellog.Logger
	session  string
	shutdown func(context.Context) error
}

var _ remote.Reporter = (*Reporter)(nil)

// New reports through lp. Shutdown is a no-op; the caller owns lp.
func New(lp otellog.LoggerProvider) *Reporter {
	return &Reporter{
		logger:   lp.Logger(ScopeName),
		session:  uuid.NewString(),
		shutdown: func(context.Context) error { return nil },
	}
}

// NewOTLP wires an OTLP/gRPC exporter at endpoint (host:port, plaintext)
// into a batching logger provider owned by the returned Reporter.
func NewOTLP(ctx context.Context, endpoint, service string) (*Reporter, error) {
	exp, err := otlploggrpc.New(ctx,
		otlploggrpc.WithEndpoint(endpoint),
		otlploggrpc.WithInsecure(),
	)
	if err != nil {
		return nil, err
	}
	if service == "" {
		service = "multilog"
	}
	res, err := resource.Merge(resource.Default(), resource.NewSchemaless(semconv.ServiceName(service)))
	if err != nil {
		return nil, err
	}
	lp := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exp)),
		sdklog.WithResource(res),
	)
	r := New(lp)
	r.shutdown = lp.Shutdown
	return r, nil
}

// SessionID identifies this reporter's records.
func (r *Reporter) SessionID() string { return r.session }

func (r *Reporter) Log(message string) {
	var rec otellog.Record
	rec.SetTimestamp(xclock.Now())
	rec.SetSeverity(otellog.SeverityInfo)
	rec.SetSeverityText("INFO")
	rec.SetBody(otellog.StringValue(message))
	rec.AddAttributes(otellog.String(AttrSessionID, r.session))
	r.logger.Emit(context.Background(), rec)
}

func (r *Reporter) Record(er remote.ErrorRecord) {
	var rec otellog.Record
	rec.SetTimestamp(xclock.Now())
	rec.SetSeverity(otellog.SeverityError)
	rec.SetSeverityText("ERROR")
	rec.SetBody(otellog.StringValue(er.Domain))

	kvs := make([]otellog.KeyValue, 0, 2+len(er.UserInfo))
	kvs = append(kvs,
		otellog.Int(AttrErrorCode, er.Code),
		otellog.String(AttrSessionID, r.session),
	)
	// Map order is random; sort so exports are stable.
	keys := make([]string, 0, len(er.UserInfo))
	for k := range er.UserInfo {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		kvs = append(kvs, attr(k, er.UserInfo[k]))
	}
	rec.AddAttributes(kvs...)
	r.logger.Emit(context.Background(), rec)
}

// Shutdown flushes and stops an owned provider.
func (r *Reporter) Shutdown(ctx context.Context) error { return r.shutdown(ctx) }

func (r *Reporter) Close() error { return r.Shutdown(context.Background()) }

func attr(k string, v any) otellog.KeyValue {
	switch vv := v.(type) {
	case string:
		return otellog.String(k, vv)
	case bool:
		return otellog.Bool(k, vv)
	case int64:
		return otellog.Int64(k, vv)
	case int:
		return otellog.Int(k, vv)
	case float64:
		return otellog.Float64(k, vv)
	case []byte:
		return otellog.Bytes(k, vv)
	default:
		return otellog.String(k, string(render.AppendAny(nil, v)))
	}
}
