package multilog

import "github.com/trickstertwo/xclock"

// Config for constructing a Dispatcher (Factory data structure).
type Config struct {
	MinLevel     Level
	Disabled     bool // zero value: logging enabled
	Sinks        []Sink
	Clock        xclock.Clock // optional; defaults to xclock.Default() at call time
	ErrorHandler ErrorHandler // optional; defaults to discarding sink failures
}

// Builder separates construction from representation (Builder pattern).
type Builder struct {
	cfg Config
}

func NewBuilder() *Builder {
	return &Builder{cfg: Config{MinLevel: DefaultMinLevel}}
}

func (b *Builder) WithMinLevel(l Level) *Builder {
	b.cfg.MinLevel = l
	return b
}

func (b *Builder) WithEnabled(on bool) *Builder {
	b.cfg.Disabled = !on
	return b
}

func (b *Builder) WithClock(c xclock.Clock) *Builder {
	b.cfg.Clock = c
	return b
}

func (b *Builder) WithErrorHandler(h ErrorHandler) *Builder {
	b.cfg.ErrorHandler = h
	return b
}

// AddSink appends s to the registration order.
func (b *Builder) AddSink(s Sink) *Builder {
	b.cfg.Sinks = append(b.cfg.Sinks, s)
	return b
}

// WithSinks replaces the sinks collected so far.
func (b *Builder) WithSinks(sinks ...Sink) *Builder {
	b.cfg.Sinks = append([]Sink(nil), sinks...)
	return b
}

// Build constructs the Dispatcher (Factory + Builder).
func (b *Builder) Build() (*Dispatcher, error) {
	return NewDispatcher(b.cfg)
}

// NewDispatcher builds a Dispatcher from cfg. Zero sinks is valid and simply
// produces no output.
func NewDispatcher(cfg Config) (*Dispatcher, error) {
	for _, s := range cfg.Sinks {
		if s == nil {
			return nil, ErrNilSink
		}
	}
	if !cfg.MinLevel.Valid() {
		return nil, &levelError{input: cfg.MinLevel.String()}
	}
	return newDispatcher(cfg), nil
}
