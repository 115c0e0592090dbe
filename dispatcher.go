package multilog

import (
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/trickstertwo/xclock"
)

// MessageFunc produces a log message. It is only called for entries that
// pass the enabled flag and the level gate.
type MessageFunc func() string

// Dispatcher filters log calls by level and fans accepted entries out to
// every registered Sink, in registration order, on the calling goroutine.
//
// Reads of the configuration are lock-free; reconfiguration is serialized
// by mu. The expected pattern is configure once at startup, log many times.
type Dispatcher struct {
	minLevel atomic.Int64
	enabled  atomic.Bool
	clock    xclock.Clock // nil means xclock.Now()

	// Stored value is *[]Sink and MUST be treated as immutable by readers.
	sinks   atomic.Pointer[[]Sink]
	onError atomic.Pointer[ErrorHandler]
	mu      sync.Mutex

	st stats
}

// Factory: internal constructor.
func newDispatcher(cfg Config) *Dispatcher {
	d := &Dispatcher{clock: cfg.Clock}
	d.minLevel.Store(int64(cfg.MinLevel))
	d.enabled.Store(!cfg.Disabled)
	h := cfg.ErrorHandler
	if h == nil {
		h = discardErrors
	}
	d.onError.Store(&h)
	d.storeSinks(cfg.Sinks)
	d.pushLevel(cfg.MinLevel)
	return d
}

// MinLevel returns the current minimum level.
func (d *Dispatcher) MinLevel() Level { return Level(d.minLevel.Load()) }

// SetMinLevel changes the minimum level and propagates it to sinks that
// implement LevelSetter. Levels that are not Valid are ignored.
func (d *Dispatcher) SetMinLevel(l Level) {
	if !l.Valid() {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.minLevel.Store(int64(l))
	d.pushLevel(l)
}

// IsEnabled reports the global on/off switch.
func (d *Dispatcher) IsEnabled() bool { return d.enabled.Load() }

// SetEnabled turns all logging on or off.
func (d *Dispatcher) SetEnabled(on bool) { d.enabled.Store(on) }

// Allows reports whether a call at level would be delivered.
// Use to avoid building params in hot paths when they would be dropped.
func (d *Dispatcher) Allows(level Level) bool {
	return d.enabled.Load() && level.Rank() >= Level(d.minLevel.Load()).Rank()
}

// RegisterSinks replaces the registered sinks. The previous sinks are not
// closed. A nil sink rejects the whole registration.
func (d *Dispatcher) RegisterSinks(sinks ...Sink) error {
	for _, s := range sinks {
		if s == nil {
			return ErrNilSink
		}
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.storeSinks(sinks)
	d.pushLevel(Level(d.minLevel.Load()))
	return nil
}

// Sinks returns a snapshot of the registered sinks.
func (d *Dispatcher) Sinks() []Sink {
	cur := d.sinks.Load()
	if cur == nil || len(*cur) == 0 {
		return nil
	}
	out := make([]Sink, len(*cur))
	copy(out, *cur)
	return out
}

// SetErrorHandler installs the handler that receives sink failures.
// nil restores the default, which discards them.
func (d *Dispatcher) SetErrorHandler(h ErrorHandler) {
	if h == nil {
		h = discardErrors
	}
	d.onError.Store(&h)
}

// Stats returns a snapshot of the delivery counters.
func (d *Dispatcher) Stats() StatsSnapshot { return d.st.snapshot() }

// ResetStats zeroes the delivery counters.
func (d *Dispatcher) ResetStats() { d.st.reset() }

// Close closes every registered sink that implements io.Closer and returns
// the joined errors. Sinks stay registered.
func (d *Dispatcher) Close() error {
	var errs []error
	for _, s := range d.Sinks() {
		if c, ok := s.(io.Closer); ok {
			if err := c.Close(); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Level entry points returning fluent builders. A nil *Event is returned
// when the call is filtered; all Event methods are no-ops on nil.

func (d *Dispatcher) Debug() *Event   { return d.newEvent(LevelDebug) }
func (d *Dispatcher) Info() *Event    { return d.newEvent(LevelInfo) }
func (d *Dispatcher) Warning() *Event { return d.newEvent(LevelWarning) }
func (d *Dispatcher) Error() *Event   { return d.newEvent(LevelError) }

// Log is the non-fluent entry point. msg is evaluated only if the call
// passes the gate; the call site is captured automatically.
func (d *Dispatcher) Log(level Level, msg MessageFunc, params ...Field) {
	if !d.gate(level) {
		return
	}
	d.emit(level, captureCaller(0), force(msg), params, nil)
}

// LogCaller is Log with call-site metadata supplied by the host, for
// wrappers that capture it themselves.
func (d *Dispatcher) LogCaller(level Level, c Caller, msg MessageFunc, params ...Field) {
	if !d.gate(level) {
		return
	}
	d.emit(level, c, force(msg), params, nil)
}

func (d *Dispatcher) gate(level Level) bool {
	if d.Allows(level) {
		return true
	}
	d.st.filtered.Add(1)
	return false
}

func force(msg MessageFunc) string {
	if msg == nil {
		return ""
	}
	return msg()
}

func (d *Dispatcher) now() time.Time {
	if d.clock != nil {
		return d.clock.Now()
	}
	return xclock.Now()
}

func (d *Dispatcher) emit(level Level, c Caller, msg string, params []Field, err error) {
	e := Entry{
		Time:    d.now(),
		Level:   level,
		Message: msg,
		Caller:  c.normalized(),
		Err:     err,
	}
	// The caller's slice may be pooled; entries must outlive this call.
	if len(params) > 0 {
		e.Params = copyFields(make(Params, 0, len(params)), params)
	}

	cur := d.sinks.Load()
	if cur == nil {
		return
	}
	for _, s := range *cur {
		d.deliver(s, e)
	}
}

func (d *Dispatcher) deliver(s Sink, e Entry) {
	defer func() {
		if r := recover(); r != nil {
			d.fail(s, fmt.Errorf("multilog: sink %T panicked: %v", s, r))
		}
	}()
	if err := s.Deliver(e); err != nil {
		d.fail(s, err)
		return
	}
	d.st.delivered.Add(1)
}

func (d *Dispatcher) fail(s Sink, err error) {
	d.st.failed.Add(1)
	h := *d.onError.Load()
	// A misbehaving handler must not escape either.
	defer func() { _ = recover() }()
	h(s, err)
}

func (d *Dispatcher) storeSinks(sinks []Sink) {
	cp := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			cp = append(cp, s)
		}
	}
	d.sinks.Store(&cp)
}

// pushLevel must be called with mu held (or before d is shared).
func (d *Dispatcher) pushLevel(l Level) {
	cur := d.sinks.Load()
	if cur == nil {
		return
	}
	for _, s := range *cur {
		if ls, ok := s.(LevelSetter); ok {
			ls.SetMinLevel(l)
		}
	}
}
