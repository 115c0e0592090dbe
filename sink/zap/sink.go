package zap

import (
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/multilog"
)

// Sink forwards multilog entries to go.uber.org/zap with low overhead.
//
// Optimizations:
//   - Uses Logger.Check(level, msg) to avoid building fields when disabled.
//   - Guarantees RFC3339Nano "ts" precision by writing it as a string field.
//
// Optional behavior:
//   - SetMinLevel leverages zap.AtomicLevel when provided at construction time
//     to keep the backend filter in line with the dispatcher's minimum. If no
//     AtomicLevel is provided, SetMinLevel is a no-op (dispatcher filtering
//     still applies).
type Sink struct {
	l     *zap.Logger
	al    *zap.AtomicLevel // optional, enables SetMinLevel
	tsKey string           // timestamp field key; default "ts"
}

// New creates a sink for the provided zap logger.
func New(l *zap.Logger) *Sink {
	return NewWithTimestampKey(l, nil, "")
}

// NewWithAtomicLevel creates a sink and wires a zap.AtomicLevel so
// SetMinLevel can dynamically adjust the backend's filter.
func NewWithAtomicLevel(l *zap.Logger, al *zap.AtomicLevel) *Sink {
	return NewWithTimestampKey(l, al, "")
}

// NewWithTimestampKey lets callers override the timestamp field key (default "ts").
func NewWithTimestampKey(l *zap.Logger, al *zap.AtomicLevel, tsKey string) *Sink {
	if l == nil {
		l = zap.NewNop()
	}
	if tsKey == "" {
		tsKey = "ts"
	}
	return &Sink{l: l, al: al, tsKey: tsKey}
}

// Deliver emits a single entry.
//   - Uses the entry's authoritative timestamp as tsKey with RFC3339Nano precision.
//   - Call-site metadata is written as caller.file, caller.function and caller.line.
func (s *Sink) Deliver(e multilog.Entry) error {
	// Fast path: skip if disabled. Avoids building fields.
	ce := s.l.Check(toZapLevel(e.Level), e.Message)
	if ce == nil {
		return nil
	}

	zfs := make([]zap.Field, 0, 5+len(e.Params))
	zfs = append(zfs,
		zap.String(s.tsKey, e.Time.UTC().Format(time.RFC3339Nano)),
		zap.String("caller.file", e.Caller.File),
		zap.String("caller.function", e.Caller.Function),
		zap.Int("caller.line", e.Caller.Line),
	)
	for i := range e.Params {
		zfs = append(zfs, toZapField(&e.Params[i]))
	}
	if e.Err != nil {
		zfs = append(zfs, zap.Error(e.Err))
	}

	ce.Write(zfs...)
	return nil
}

// SetMinLevel updates the backend filter when an AtomicLevel was supplied.
func (s *Sink) SetMinLevel(l multilog.Level) {
	if s.al == nil {
		return
	}
	s.al.SetLevel(toZapLevel(l))
}

// Sync flushes buffered zap output.
func (s *Sink) Sync() error { return s.l.Sync() }

func toZapLevel(l multilog.Level) zapcore.Level {
	switch {
	case l <= multilog.LevelDebug:
		return zapcore.DebugLevel
	case l == multilog.LevelInfo:
		return zapcore.InfoLevel
	case l == multilog.LevelWarning:
		return zapcore.WarnLevel
	default:
		// Avoid Fatal/DPanic to prevent exits in library code.
		return zapcore.ErrorLevel
	}
}

func toZapField(f *multilog.Field) zap.Field {
	switch f.Kind {
	case multilog.KindString:
		return zap.String(f.K, f.Str)
	case multilog.KindInt64:
		return zap.Int64(f.K, f.Int64)
	case multilog.KindUint64:
		return zap.Uint64(f.K, f.Uint64)
	case multilog.KindFloat64:
		return zap.Float64(f.K, f.Float64)
	case multilog.KindBool:
		return zap.Bool(f.K, f.Bool)
	case multilog.KindDuration:
		return zap.Duration(f.K, f.Dur) // encoder decides string vs numeric
	case multilog.KindTime:
		return zap.Time(f.K, f.Time)
	case multilog.KindError:
		if f.Err == nil {
			return zap.Skip()
		}
		if f.K == "" || f.K == "error" {
			return zap.Error(f.Err)
		}
		return zap.NamedError(f.K, f.Err)
	case multilog.KindBytes:
		return zap.ByteString(f.K, f.Bytes)
	case multilog.KindAny:
		return zap.Any(f.K, f.Any)
	default:
		return zap.Skip()
	}
}
