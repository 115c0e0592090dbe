package remote

import (
	"os"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/multilog"
)

type fakeReporter struct {
	logs    []string
	records []ErrorRecord
	closed  bool
}

func (f *fakeReporter) Log(m string)         { f.logs = append(f.logs, m) }
func (f *fakeReporter) Record(r ErrorRecord) { f.records = append(f.records, r) }
func (f *fakeReporter) Close() error         { f.closed = true; return nil }

var (
	at   = time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)
	site = multilog.Caller{Function: "sync()", Line: 21, File: "Store"}
)

func TestDeliver_DebugIsDropped(t *testing.T) {
	r := &fakeReporter{}
	require.NoError(t, New(r).Deliver(multilog.Entry{Time: at, Level: multilog.LevelDebug, Message: "x"}))
	assert.Empty(t, r.logs)
	assert.Empty(t, r.records)
}

func TestDeliver_InfoIsLoggedAsText(t *testing.T) {
	r := &fakeReporter{}
	require.NoError(t, New(r).Deliver(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelInfo,
		Message: "synced",
		Params:  multilog.Params{multilog.Int("items", 3)},
		Caller:  site,
	}))

	require.Len(t, r.logs, 1)
	assert.Empty(t, r.records)
	assert.Equal(t, "2025-01-02 03:04:05.000 INFO Store->sync():21 \n\tsynced\n    items: 3\n", r.logs[0])
}

func TestDeliver_WarningAndErrorAreRecorded(t *testing.T) {
	r := &fakeReporter{}
	s := New(r)
	require.NoError(t, s.Deliver(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelWarning,
		Message: "quota low",
		Params:  multilog.Params{multilog.Int("id", 102), multilog.Str("user", "ann")},
		Caller:  site,
	}))
	require.NoError(t, s.Deliver(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelError,
		Message: "boom",
		Caller:  site,
		Err:     errors.New("disk full"),
	}))

	assert.Empty(t, r.logs)
	require.Len(t, r.records, 2)
	assert.Equal(t, ErrorRecord{
		Domain:   "[WARNING] Store->sync():21 quota low",
		Code:     -1,
		UserInfo: map[string]any{"id": int64(102), "user": "ann"},
	}, r.records[0])
	assert.Equal(t, "[ERROR] Store->sync():21 boom", r.records[1].Domain)
	assert.Equal(t, map[string]any{"error": "disk full"}, r.records[1].UserInfo)
}

func TestDeliver_TypedNilErrIsRecorded(t *testing.T) {
	r := &fakeReporter{}
	require.NoError(t, New(r).Deliver(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelError,
		Message: "stat",
		Caller:  site,
		Err:     (*os.PathError)(nil),
	}))

	require.Len(t, r.records, 1)
	assert.Equal(t, map[string]any{"error": "nil"}, r.records[0].UserInfo)
}

func TestDeliver_NilReporter(t *testing.T) {
	assert.Error(t, New(nil).Deliver(multilog.Entry{Level: multilog.LevelError}))
}

func TestClose(t *testing.T) {
	r := &fakeReporter{}
	require.NoError(t, New(r).Close())
	assert.True(t, r.closed)
}
