package zap

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/multilog"
)

// Config is an explicit, code-first configuration for a zap-backed sink.
type Config struct {
	Writer             io.Writer // default: os.Stdout
	MinLevel           multilog.Level
	Console            bool                  // pretty console-like output via zapcore.NewConsoleEncoder
	EncoderConfig      zapcore.EncoderConfig // if zero, a sensible default is used
	TimestampFieldName string                // default "ts"
}

// NewSink builds a zap logger from cfg and wraps it in a Sink whose level
// follows the dispatcher's minimum.
func NewSink(cfg Config) *Sink {
	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}

	// Encoder config defaults: zap must not inject its own time, the entry carries "ts".
	encCfg := cfg.EncoderConfig
	if encCfg.LevelKey == "" && encCfg.MessageKey == "" && encCfg.EncodeTime == nil {
		encCfg = zapcore.EncoderConfig{
			LevelKey:       "level",
			MessageKey:     "message",
			LineEnding:     zapcore.DefaultLineEnding,
			EncodeLevel:    zapcore.LowercaseLevelEncoder,
			EncodeTime:     zapcore.RFC3339NanoTimeEncoder, // used by zap.Time fields
			EncodeDuration: zapcore.StringDurationEncoder,
		}
	}
	encCfg.TimeKey = ""

	var enc zapcore.Encoder
	if cfg.Console {
		enc = zapcore.NewConsoleEncoder(encCfg)
	} else {
		enc = zapcore.NewJSONEncoder(encCfg)
	}

	// AtomicLevel so Sink.SetMinLevel can adjust dynamically.
	al := zap.NewAtomicLevelAt(toZapLevel(cfg.MinLevel))
	core := zapcore.NewCore(enc, zapcore.AddSync(w), al)
	zl := zap.New(core, zap.AddStacktrace(zapcore.FatalLevel+1)) // effectively off

	return NewWithTimestampKey(zl, &al, cfg.TimestampFieldName)
}

// Use builds a zap-backed dispatcher from cfg, sets it as global and
// returns it.
func Use(cfg Config) *multilog.Dispatcher {
	return multilog.Use(cfg.MinLevel, NewSink(cfg))
}
