package otelreport

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trickstertwo/xclock"
	otellog "go.opentelemetry.io/otel/log"
	sdklog "go.opentelemetry.io/otel/sdk/log"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/sink/remote"
)

// memExporter keeps exported records in memory.
type memExporter struct {
	mu      sync.Mutex
	records []sdklog.Record
}

func (e *memExporter) Export(_ context.Context, rs []sdklog.Record) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for _, r := range rs {
		e.records = append(e.records, r.Clone())
	}
	return nil
}

func (e *memExporter) Shutdown(context.Context) error   { return nil }
func (e *memExporter) ForceFlush(context.Context) error { return nil }

func newTestReporter(t *testing.T) (*Reporter, *memExporter) {
	t.Helper()
	exp := &memExporter{}
	lp := sdklog.NewLoggerProvider(sdklog.WithProcessor(sdklog.NewSimpleProcessor(exp)))
	t.Cleanup(func() { _ = lp.Shutdown(context.Background()) })
	return New(lp), exp
}

func attrs(r sdklog.Record) map[string]otellog.Value {
	out := make(map[string]otellog.Value)
	r.WalkAttributes(func(kv otellog.KeyValue) bool {
		out[kv.Key] = kv.Value
		return true
	})
	return out
}

func TestLog(t *testing.T) {
	old := xclock.Default()
	defer xclock.SetDefault(old)
	ft := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	xclock.SetDefault(xclock.NewFrozen(ft))

	r, exp := newTestReporter(t)
	r.Log("hello")

	require.Len(t, exp.records, 1)
	rec := exp.records[0]
	assert.Equal(t, otellog.SeverityInfo, rec.Severity())
	assert.Equal(t, "hello", rec.Body().AsString())
	assert.True(t, rec.Timestamp().Equal(ft))
	assert.Equal(t, r.SessionID(), attrs(rec)[AttrSessionID].AsString())
}

func TestRecord(t *testing.T) {
	r, exp := newTestReporter(t)
	r.Record(remote.ErrorRecord{
		Domain:   "[ERROR] Store->sync():21 boom",
		Code:     remote.RecordCode,
		UserInfo: map[string]any{"id": int64(102), "user": "ann", "ok": true, "wait": time.Second},
	})

	require.Len(t, exp.records, 1)
	rec := exp.records[0]
	assert.Equal(t, otellog.SeverityError, rec.Severity())
	assert.Equal(t, "[ERROR] Store->sync():21 boom", rec.Body().AsString())

	a := attrs(rec)
	assert.Equal(t, int64(-1), a[AttrErrorCode].AsInt64())
	assert.Equal(t, r.SessionID(), a[AttrSessionID].AsString())
	assert.Equal(t, int64(102), a["id"].AsInt64())
	assert.Equal(t, "ann", a["user"].AsString())
	assert.True(t, a["ok"].AsBool())
	assert.Equal(t, "1s", a["wait"].AsString())
}

func TestSessionIDsDiffer(t *testing.T) {
	a, _ := newTestReporter(t)
	b, _ := newTestReporter(t)
	assert.NotEqual(t, a.SessionID(), b.SessionID())
	assert.Len(t, a.SessionID(), 36)
}

func TestThroughRemoteSink(t *testing.T) {
	r, exp := newTestReporter(t)
	d, err := multilog.NewBuilder().
		WithMinLevel(multilog.LevelDebug).
		WithSinks(remote.New(r)).
		Build()
	require.NoError(t, err)

	d.Debug().Msg("dropped")
	d.Info().Msg("kept as text")
	d.Warning().Int("id", 1).Msg("z")

	require.Len(t, exp.records, 2)
	assert.Equal(t, otellog.SeverityInfo, exp.records[0].Severity())
	assert.Contains(t, exp.records[0].Body().AsString(), "\n\tkept as text\n")
	assert.Equal(t, otellog.SeverityError, exp.records[1].Severity())
	assert.Contains(t, exp.records[1].Body().AsString(), "[WARNING] reporter_test->TestThroughRemoteSink:")
	assert.NoError(t, d.Close())
}
