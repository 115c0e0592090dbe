package multilog

import (
	"fmt"
	"sync"
	"time"
)

// Event is a fluent builder (Builder pattern) for a single log call.
// API: d.Warning().Int("id", 1).Msg("z")
//
// Level entry points return nil when the call is filtered, and every method
// is a no-op on a nil *Event, so a suppressed call allocates nothing and
// never evaluates its message.
type Event struct {
	d         *Dispatcher
	level     Level
	fields    []Field
	err       error
	caller    Caller
	hasCaller bool
}

var eventPool = sync.Pool{
	New: func() any { return &Event{fields: make([]Field, 0, 8)} },
}

func (d *Dispatcher) newEvent(level Level) *Event {
	if !d.gate(level) {
		return nil
	}
	ev := eventPool.Get().(*Event)
	ev.d = d
	ev.level = level
	ev.fields = ev.fields[:0]
	return ev
}

func (e *Event) putBack() {
	// allow GC of large backing arrays by capping
	if cap(e.fields) > 128 {
		e.fields = make([]Field, 0, 8)
	}
	clear(e.fields[:cap(e.fields)])
	e.d = nil
	e.level = 0
	e.err = nil
	e.caller = Caller{}
	e.hasCaller = false
	eventPool.Put(e)
}

// Enabled reports whether the event will be delivered.
func (e *Event) Enabled() bool { return e != nil }

func (e *Event) add(f Field) *Event {
	if e == nil {
		return nil
	}
	e.fields = append(e.fields, f)
	return e
}

// Field builders (zerolog-style)

func (e *Event) Str(k, v string) *Event             { return e.add(Str(k, v)) }
func (e *Event) Int(k string, v int) *Event         { return e.add(Int(k, v)) }
func (e *Event) Int64(k string, v int64) *Event     { return e.add(Int64(k, v)) }
func (e *Event) Uint64(k string, v uint64) *Event   { return e.add(Uint64(k, v)) }
func (e *Event) Float64(k string, v float64) *Event { return e.add(Float64(k, v)) }
func (e *Event) Bool(k string, v bool) *Event       { return e.add(Bool(k, v)) }
func (e *Event) Dur(k string, v time.Duration) *Event {
	return e.add(Dur(k, v))
}
func (e *Event) Time(k string, v time.Time) *Event { return e.add(Time(k, v)) }
func (e *Event) Bytes(k string, v []byte) *Event   { return e.add(Bytes(k, v)) }
func (e *Event) Any(k string, v any) *Event        { return e.add(Any(k, v)) }

// Fields appends already-built fields in order.
func (e *Event) Fields(fs ...Field) *Event {
	if e == nil {
		return nil
	}
	e.fields = append(e.fields, fs...)
	return e
}

// Err attaches an auxiliary error. It is carried on Entry.Err and is not
// rendered as a param.
func (e *Event) Err(err error) *Event {
	if e == nil {
		return nil
	}
	e.err = err
	return e
}

// Caller overrides the automatically captured call site.
func (e *Event) Caller(c Caller) *Event {
	if e == nil {
		return nil
	}
	e.caller = c
	e.hasCaller = true
	return e
}

// Msg terminates the builder and emits the event.
func (e *Event) Msg(msg string) {
	if e == nil {
		return
	}
	e.send(msg, captureCaller(0))
}

// Msgf formats only when the event is delivered.
func (e *Event) Msgf(format string, args ...any) {
	if e == nil {
		return
	}
	e.send(fmt.Sprintf(format, args...), captureCaller(0))
}

// MsgFunc evaluates fn only when the event is delivered.
func (e *Event) MsgFunc(fn MessageFunc) {
	if e == nil {
		return
	}
	e.send(force(fn), captureCaller(0))
}

// Send emits the event with an empty message.
func (e *Event) Send() {
	if e == nil {
		return
	}
	e.send("", captureCaller(0))
}

func (e *Event) send(msg string, site Caller) {
	if e.hasCaller {
		site = e.caller
	}
	e.d.emit(e.level, site, msg, e.fields, e.err)
	e.putBack()
}
