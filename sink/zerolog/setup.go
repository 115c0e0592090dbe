package zerolog

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"

	"github.com/trickstertwo/multilog"
)

// Config is an explicit, code-first configuration for a zerolog-backed sink.
type Config struct {
	Writer            io.Writer // default: os.Stdout
	MinLevel          multilog.Level
	Console           bool   // pretty console output instead of JSON
	ConsoleTimeFormat string // only used if Console==true; default time.RFC3339Nano
}

// NewSink builds a zerolog.Logger from cfg and wraps it in a Sink.
func NewSink(cfg Config) *Sink {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	var zl zerolog.Logger
	if cfg.Console {
		cw := zerolog.ConsoleWriter{Out: w}
		if cfg.ConsoleTimeFormat == "" {
			cw.TimeFormat = time.RFC3339Nano
		} else {
			cw.TimeFormat = cfg.ConsoleTimeFormat
		}
		zl = zerolog.New(cw)
	} else {
		zl = zerolog.New(w)
	}

	s := New(zl)
	s.SetMinLevel(cfg.MinLevel)
	return s
}

// Use builds a zerolog-backed dispatcher from cfg, sets it as global and
// returns it.
func Use(cfg Config) *multilog.Dispatcher {
	return multilog.Use(cfg.MinLevel, NewSink(cfg))
}
