package slog

import (
	"context"
	"log/slog"

	"github.com/trickstertwo/multilog"
)

// Sink forwards multilog entries to a *slog.Logger (Adapter Strategy).
// It builds slog.Attrs directly for low overhead and uses LogAttrs.
type Sink struct {
	l     *slog.Logger
	lv    *slog.LevelVar // optional, enables SetMinLevel
	tsKey string
}

func New(l *slog.Logger) *Sink {
	return NewWithTimestampKey(l, nil, "")
}

// NewWithTimestampKey wires an optional LevelVar and overrides the
// timestamp attribute key (default "ts").
func NewWithTimestampKey(l *slog.Logger, lv *slog.LevelVar, tsKey string) *Sink {
	if l == nil {
		l = slog.Default()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Sink{l: l, lv: lv, tsKey: tsKey}
}

func (s *Sink) Deliver(e multilog.Entry) error {
	attrs := make([]slog.Attr, 0, len(e.Params)+3)

	// Single authoritative timestamp carried by the entry
	attrs = append(attrs,
		slog.Time(s.tsKey, e.Time),
		slog.Group("caller",
			slog.String("file", e.Caller.File),
			slog.String("function", e.Caller.Function),
			slog.Int("line", e.Caller.Line),
		),
	)
	for i := range e.Params {
		attrs = append(attrs, toAttr(e.Params[i]))
	}
	if e.Err != nil {
		attrs = append(attrs, slog.Any("error", e.Err))
	}

	// Use LogAttrs for minimal allocations
	s.l.LogAttrs(context.Background(), toSlog(e.Level), e.Message, attrs...)
	return nil
}

// SetMinLevel updates the LevelVar when one was supplied.
func (s *Sink) SetMinLevel(l multilog.Level) {
	if s.lv == nil {
		return
	}
	s.lv.Set(toSlog(l))
}

func toSlog(l multilog.Level) slog.Level {
	switch {
	case l <= multilog.LevelDebug:
		return slog.LevelDebug
	case l == multilog.LevelInfo:
		return slog.LevelInfo
	case l == multilog.LevelWarning:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func toAttr(f multilog.Field) slog.Attr {
	switch f.Kind {
	case multilog.KindString:
		return slog.String(f.K, f.Str)
	case multilog.KindInt64:
		return slog.Int64(f.K, f.Int64)
	case multilog.KindUint64:
		return slog.Uint64(f.K, f.Uint64)
	case multilog.KindFloat64:
		return slog.Float64(f.K, f.Float64)
	case multilog.KindBool:
		return slog.Bool(f.K, f.Bool)
	case multilog.KindDuration:
		return slog.Duration(f.K, f.Dur)
	case multilog.KindTime:
		return slog.Time(f.K, f.Time)
	case multilog.KindError:
		return slog.Any(f.K, f.Err)
	case multilog.KindBytes:
		return slog.Any(f.K, f.Bytes)
	case multilog.KindAny:
		return slog.Any(f.K, f.Any)
	default:
		return slog.Any(f.K, nil)
	}
}
