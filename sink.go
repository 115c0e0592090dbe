package multilog

// Sink is a delivery target for accepted entries (Strategy pattern).
//
// Deliver is called synchronously on the logging goroutine, once per entry,
// in registration order. Implementations must be safe for concurrent use and
// must serialize their own writes so one entry is never interleaved with
// another. A returned error (or a panic) is contained by the Dispatcher and
// never reaches the code that logged.
type Sink interface {
	Deliver(e Entry) error
}

// SinkFunc adapts a function to Sink.
type SinkFunc func(Entry) error

func (f SinkFunc) Deliver(e Entry) error { return f(e) }

// LevelSetter is an optional interface for sinks backed by a logger with its
// own level filter. The Dispatcher pushes its minimum level into such sinks
// whenever the level or the sink registration changes.
type LevelSetter interface {
	SetMinLevel(Level)
}

// ErrorHandler receives sink failures. It must not log through the same
// Dispatcher.
type ErrorHandler func(s Sink, err error)

func discardErrors(Sink, error) {}
