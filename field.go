package multilog

import (
	"time"

	"github.com/trickstertwo/multilog/internal/render"
)

// Kind identifies the concrete type stored in a Field.
type Kind uint8

const (
	KindString Kind = iota + 1
	KindInt64
	KindUint64
	KindFloat64
	KindBool
	KindDuration
	KindTime
	KindError
	KindBytes
	KindAny
)

// Field is a compact, reflection-free union for one structured parameter.
type Field struct {
	K       string
	Kind    Kind
	Str     string
	Int64   int64
	Uint64  uint64
	Float64 float64
	Bool    bool
	Dur     time.Duration
	Time    time.Time
	Err     error
	Bytes   []byte
	Any     any
}

func Str(k, v string) Field             { return Field{K: k, Kind: KindString, Str: v} }
func Int(k string, v int) Field         { return Field{K: k, Kind: KindInt64, Int64: int64(v)} }
func Int64(k string, v int64) Field     { return Field{K: k, Kind: KindInt64, Int64: v} }
func Uint64(k string, v uint64) Field   { return Field{K: k, Kind: KindUint64, Uint64: v} }
func Float64(k string, v float64) Field { return Field{K: k, Kind: KindFloat64, Float64: v} }
func Bool(k string, v bool) Field       { return Field{K: k, Kind: KindBool, Bool: v} }
func Dur(k string, v time.Duration) Field {
	return Field{K: k, Kind: KindDuration, Dur: v}
}
func Time(k string, v time.Time) Field { return Field{K: k, Kind: KindTime, Time: v} }
func Err(k string, e error) Field      { return Field{K: k, Kind: KindError, Err: e} }
func Bytes(k string, b []byte) Field   { return Field{K: k, Kind: KindBytes, Bytes: b} }
func Any(k string, v any) Field        { return Field{K: k, Kind: KindAny, Any: v} }

// Value returns the field's payload as an untyped value.
func (f Field) Value() any {
	switch f.Kind {
	case KindString:
		return f.Str
	case KindInt64:
		return f.Int64
	case KindUint64:
		return f.Uint64
	case KindFloat64:
		return f.Float64
	case KindBool:
		return f.Bool
	case KindDuration:
		return f.Dur
	case KindTime:
		return f.Time
	case KindError:
		return f.Err
	case KindBytes:
		return f.Bytes
	case KindAny:
		return f.Any
	default:
		return nil
	}
}

// AppendValue appends the best-effort text rendering of the field's value.
func (f Field) AppendValue(dst []byte) []byte {
	switch f.Kind {
	case KindString:
		return append(dst, f.Str...)
	case KindInt64:
		return render.AppendInt64(dst, f.Int64)
	case KindUint64:
		return render.AppendUint64(dst, f.Uint64)
	case KindFloat64:
		return render.AppendFloat64(dst, f.Float64)
	case KindBool:
		return render.AppendBool(dst, f.Bool)
	case KindDuration:
		return render.AppendDuration(dst, f.Dur)
	case KindTime:
		return render.AppendTime(dst, f.Time)
	case KindError:
		return render.AppendError(dst, f.Err)
	case KindBytes:
		return render.AppendBytes(dst, f.Bytes)
	default:
		return render.AppendAny(dst, f.Any)
	}
}

// String renders the field's value (not its key).
func (f Field) String() string { return string(f.AppendValue(nil)) }

// Params is the ordered list of structured parameters attached to an entry.
// Order is insertion order and is the order sinks render them in.
type Params []Field

// Map returns params keyed by name. Later duplicates win.
func (p Params) Map() map[string]any {
	if len(p) == 0 {
		return nil
	}
	m := make(map[string]any, len(p))
	for i := range p {
		m[p[i].K] = p[i].Value()
	}
	return m
}

// Get returns the last field named k.
func (p Params) Get(k string) (Field, bool) {
	for i := len(p) - 1; i >= 0; i-- {
		if p[i].K == k {
			return p[i], true
		}
	}
	return Field{}, false
}

func copyFields(dst, src []Field) []Field {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}
