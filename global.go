package multilog

import "sync/atomic"

// Facade: global access (Singleton + Facade).
var global atomic.Pointer[Dispatcher]

// SetGlobal sets the global Dispatcher (Singleton setter). nil resets it so
// the next L() installs a fresh default.
func SetGlobal(d *Dispatcher) { global.Store(d) }

// L returns the global Dispatcher. If none was set, a default one with no
// sinks is installed: logging through an unconfigured facade produces no
// output rather than failing the caller.
func L() *Dispatcher {
	if d := global.Load(); d != nil {
		return d
	}
	d := newDispatcher(Config{MinLevel: DefaultMinLevel})
	if global.CompareAndSwap(nil, d) {
		return d
	}
	return global.Load()
}

// New creates a dispatcher with DefaultMinLevel and the given sinks. nil
// sinks are skipped.
func New(sinks ...Sink) *Dispatcher {
	return newDispatcher(Config{MinLevel: DefaultMinLevel, Sinks: sinks})
}

// Use builds a dispatcher with min and sinks, sets it as global and returns
// it. Single line, explicit, no envs.
func Use(min Level, sinks ...Sink) *Dispatcher {
	d := newDispatcher(Config{MinLevel: min, Sinks: sinks})
	SetGlobal(d)
	return d
}
