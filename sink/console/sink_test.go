package console

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trickstertwo/multilog"
)

var at = time.Date(2025, 1, 2, 3, 4, 5, 6_000_000, time.UTC)

func TestFormat(t *testing.T) {
	s := New(WithWriter(&bytes.Buffer{}), WithColor(false))

	got := s.Format(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelWarning,
		Message: "quota low",
		Params:  multilog.Params{multilog.Int("id", 102), multilog.Str("user", "ann")},
		Caller:  multilog.Caller{Function: "check()", Line: 40, File: "Quota"},
	})

	want := "💛 2025-01-02 03:04:05.006 WARNING Quota->check():40 💛\n" +
		"\tquota low\n" +
		"    id: 102\n" +
		"    user: ann\n\n"
	assert.Equal(t, want, got)
}

func TestFormat_NoParams(t *testing.T) {
	s := New(WithWriter(&bytes.Buffer{}), WithColor(false))
	got := s.Format(multilog.Entry{
		Time:    at,
		Level:   multilog.LevelDebug,
		Message: "",
		Caller:  multilog.Caller{Function: "f", Line: 1, File: "a"},
	})
	assert.Equal(t, "💙 2025-01-02 03:04:05.006 DEBUG a->f:1 💙\n\t\n\n", got)
}

func TestSymbols(t *testing.T) {
	assert.Equal(t, "💙", Symbol(multilog.LevelDebug))
	assert.Equal(t, "💜", Symbol(multilog.LevelInfo))
	assert.Equal(t, "💛", Symbol(multilog.LevelWarning))
	assert.Equal(t, "❤️", Symbol(multilog.LevelError))
	assert.Empty(t, Symbol(multilog.Level(42)))
}

func TestDeliver_WritesOnceToWriter(t *testing.T) {
	var buf bytes.Buffer
	s := New(WithWriter(&buf), WithColor(false))

	e := multilog.Entry{Time: at, Level: multilog.LevelInfo, Message: "y"}
	require.NoError(t, s.Deliver(e))
	assert.Equal(t, s.Format(e), buf.String())
}

func TestColor(t *testing.T) {
	var plain, colored bytes.Buffer
	e := multilog.Entry{Time: at, Level: multilog.LevelError, Message: "boom"}

	require.NoError(t, New(WithWriter(&plain)).Deliver(e))
	assert.NotContains(t, plain.String(), "\x1b[", "non-terminal writers default to no colour")

	require.NoError(t, New(WithWriter(&colored), WithColor(true)).Deliver(e))
	assert.Contains(t, colored.String(), "\x1b[")
	assert.Contains(t, colored.String(), "\n\tboom\n\n")
}

type countingWriter struct {
	mu     sync.Mutex
	writes []string
}

func (w *countingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	w.writes = append(w.writes, string(p))
	w.mu.Unlock()
	return len(p), nil
}

func TestDeliver_ConcurrentBlocksDoNotInterleave(t *testing.T) {
	w := &countingWriter{}
	s := New(WithWriter(w), WithColor(false))

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_ = s.Deliver(multilog.Entry{
				Time:    at,
				Level:   multilog.LevelInfo,
				Message: "m",
				Params:  multilog.Params{multilog.Int("i", i)},
			})
		}(i)
	}
	wg.Wait()

	require.Len(t, w.writes, 16)
	for _, block := range w.writes {
		assert.True(t, strings.HasPrefix(block, "💜 "), block)
		assert.True(t, strings.HasSuffix(block, "\n\n"), block)
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestDeliver_ReturnsWriteError(t *testing.T) {
	s := New(WithWriter(failingWriter{}))
	assert.EqualError(t, s.Deliver(multilog.Entry{Level: multilog.LevelInfo}), "closed pipe")
}
