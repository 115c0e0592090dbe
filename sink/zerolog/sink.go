package zerolog

import (
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/multilog"
)

// Sink forwards multilog entries to rs/zerolog with low overhead.
//
// Optimizations:
//   - Fast pre-check against the propagated level to avoid allocating a
//     zerolog.Event when the level is disabled.
//   - Uses Logger.WithLevel(...) to avoid a level switch at call sites.
type Sink struct {
	l   zerolog.Logger
	min atomic.Int32 // zerolog.Level; updated by SetMinLevel
}

func New(l zerolog.Logger) *Sink {
	s := &Sink{l: l}
	s.min.Store(int32(l.GetLevel()))
	return s
}

// Deliver emits a single entry.
//   - Single authoritative timestamp passed as "ts".
//   - Error is never mapped to Fatal, which would exit the process.
func (s *Sink) Deliver(e multilog.Entry) error {
	zlvl := mapLevel(e.Level)

	// Fast path: drop early if below the minimum (no Event allocation).
	if zlvl < zerolog.Level(s.min.Load()) {
		return nil
	}

	ev := s.l.WithLevel(zlvl)
	if ev == nil {
		return nil
	}

	// Ensure RFC3339Nano precision regardless of zerolog.TimeFieldFormat defaults.
	// Using a string avoids global config changes and keeps output deterministic.
	ev.Str(TimestampField, e.Time.UTC().Format(time.RFC3339Nano))
	ev.Str("caller", e.Caller.File+"->"+e.Caller.Function)
	ev.Int("line", e.Caller.Line)

	for i := range e.Params {
		appendEventField(ev, &e.Params[i])
	}
	if e.Err != nil {
		ev.Err(e.Err)
	}

	ev.Msg(e.Message)
	return nil
}

// SetMinLevel propagates the dispatcher's minimum into the zerolog filter.
func (s *Sink) SetMinLevel(l multilog.Level) {
	s.min.Store(int32(mapLevel(l)))
}

// mapLevel converts multilog.Level to zerolog.Level.
func mapLevel(l multilog.Level) zerolog.Level {
	switch {
	case l <= multilog.LevelDebug:
		return zerolog.DebugLevel
	case l == multilog.LevelInfo:
		return zerolog.InfoLevel
	case l == multilog.LevelWarning:
		return zerolog.WarnLevel
	default:
		return zerolog.ErrorLevel
	}
}

// appendEventField writes a multilog.Field to a zerolog.Event.
func appendEventField(e *zerolog.Event, f *multilog.Field) {
	switch f.Kind {
	case multilog.KindString:
		e.Str(f.K, f.Str)
	case multilog.KindInt64:
		e.Int64(f.K, f.Int64)
	case multilog.KindUint64:
		e.Uint64(f.K, f.Uint64)
	case multilog.KindFloat64:
		e.Float64(f.K, f.Float64)
	case multilog.KindBool:
		e.Bool(f.K, f.Bool)
	case multilog.KindDuration:
		e.Dur(f.K, f.Dur)
	case multilog.KindTime:
		e.Time(f.K, f.Time)
	case multilog.KindError:
		if f.Err != nil {
			if f.K == "" || f.K == "error" {
				e.Err(f.Err)
			} else {
				e.AnErr(f.K, f.Err)
			}
		}
	case multilog.KindBytes:
		e.Bytes(f.K, f.Bytes)
	case multilog.KindAny:
		e.Interface(f.K, f.Any)
	default:
		// Keep a placeholder to preserve shape
		e.Interface(f.K, nil)
	}
}
