package slog

import (
	"io"
	"log/slog"
	"os"

	"github.com/trickstertwo/multilog"
)

// Format selects the slog handler format.
type Format uint8

const (
	FormatJSON Format = iota + 1
	FormatText
)

// Config is an explicit, code-first configuration for a slog-backed sink.
type Config struct {
	Writer             io.Writer            // default: os.Stdout
	MinLevel           multilog.Level       // the handler's LevelVar starts here
	Format             Format               // JSON (default) or Text
	HandlerOptions     *slog.HandlerOptions // optional; Level is managed through a LevelVar
	TimestampFieldName string               // default "ts"
}

// NewSink builds a slog handler from cfg and wraps it in a Sink.
func NewSink(cfg Config) *Sink {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	var opts slog.HandlerOptions
	if cfg.HandlerOptions != nil {
		opts = *cfg.HandlerOptions
	}

	// A LevelVar allows dynamic SetMinLevel on the sink.
	lv := new(slog.LevelVar)
	lv.Set(toSlog(cfg.MinLevel))
	opts.Level = lv

	var h slog.Handler
	if cfg.Format == FormatText {
		h = slog.NewTextHandler(w, &opts)
	} else {
		h = slog.NewJSONHandler(w, &opts)
	}
	return NewWithTimestampKey(slog.New(h), lv, cfg.TimestampFieldName)
}

// Use builds a slog-backed dispatcher from cfg, sets it as global and
// returns it.
func Use(cfg Config) *multilog.Dispatcher {
	return multilog.Use(cfg.MinLevel, NewSink(cfg))
}
