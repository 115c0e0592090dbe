// Package render holds the formatting primitives shared by the text sinks:
// pooled line buffers, the human-readable timestamp layout, and the
// best-effort conversion of arbitrary values to text.
package render

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// TimestampLayout is the layout used by the console, file and remote sinks.
const TimestampLayout = "2006-01-02 15:04:05.000"

const nilText = "nil"

// AppendTimestamp appends t in TimestampLayout.
func AppendTimestamp(dst []byte, t time.Time) []byte {
	return t.AppendFormat(dst, TimestampLayout)
}

func AppendInt64(dst []byte, v int64) []byte   { return strconv.AppendInt(dst, v, 10) }
func AppendUint64(dst []byte, v uint64) []byte { return strconv.AppendUint(dst, v, 10) }

func AppendBool(dst []byte, v bool) []byte { return strconv.AppendBool(dst, v) }

func AppendFloat64(dst []byte, f float64) []byte {
	switch {
	case math.IsNaN(f):
		return append(dst, "NaN"...)
	case math.IsInf(f, 1):
		return append(dst, "+Inf"...)
	case math.IsInf(f, -1):
		return append(dst, "-Inf"...)
	}
	return strconv.AppendFloat(dst, f, 'g', -1, 64)
}

func AppendDuration(dst []byte, d time.Duration) []byte { return append(dst, d.String()...) }

func AppendTime(dst []byte, t time.Time) []byte { return t.AppendFormat(dst, time.RFC3339Nano) }

// AppendError appends err.Error(), or "nil". Typed nil errors whose Error
// method dereferences the receiver also render as "nil".
func AppendError(dst []byte, err error) []byte {
	if err == nil {
		return append(dst, nilText...)
	}
	return append(dst, SafeText(err.Error)...)
}

// AppendBytes renders a byte slice as its length; raw bytes are not
// guaranteed to be printable.
func AppendBytes(dst []byte, b []byte) []byte {
	dst = append(dst, "len:"...)
	return strconv.AppendInt(dst, int64(len(b)), 10)
}

// AppendAny is the best-effort conversion for values of unknown type.
// Primitives are formatted without reflection; errors and fmt.Stringer use
// their own methods; everything else falls back to fmt's %v.
func AppendAny(dst []byte, v any) []byte {
	if v == nil {
		return append(dst, nilText...)
	}
	switch vv := v.(type) {
	case string:
		return append(dst, vv...)
	case []byte:
		return AppendBytes(dst, vv)
	case bool:
		return AppendBool(dst, vv)
	case int:
		return AppendInt64(dst, int64(vv))
	case int8:
		return AppendInt64(dst, int64(vv))
	case int16:
		return AppendInt64(dst, int64(vv))
	case int32:
		return AppendInt64(dst, int64(vv))
	case int64:
		return AppendInt64(dst, vv)
	case uint:
		return AppendUint64(dst, uint64(vv))
	case uint8:
		return AppendUint64(dst, uint64(vv))
	case uint16:
		return AppendUint64(dst, uint64(vv))
	case uint32:
		return AppendUint64(dst, uint64(vv))
	case uint64:
		return AppendUint64(dst, vv)
	case float32:
		return AppendFloat64(dst, float64(vv))
	case float64:
		return AppendFloat64(dst, vv)
	case time.Time:
		return AppendTime(dst, vv)
	case time.Duration:
		return AppendDuration(dst, vv)
	case error:
		return AppendError(dst, vv)
	case fmt.Stringer:
		return append(dst, SafeText(vv.String)...)
	default:
		return fmt.Appendf(dst, "%v", vv)
	}
}

// SafeText calls an Error or String method value and returns "nil" if it
// panics, which is what nil pointer receivers usually do.
func SafeText(text func() string) (out string) {
	defer func() {
		if r := recover(); r != nil {
			out = nilText
		}
	}()
	return text()
}
