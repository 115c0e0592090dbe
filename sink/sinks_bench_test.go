package sink_test

import (
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/sink/console"
	"github.com/trickstertwo/multilog/sink/file"
	"github.com/trickstertwo/multilog/sink/remote"
	slogsink "github.com/trickstertwo/multilog/sink/slog"
	zapsink "github.com/trickstertwo/multilog/sink/zap"
	zerologsink "github.com/trickstertwo/multilog/sink/zerolog"
)

type htScenario struct {
	name    string
	newSink func(b *testing.B) multilog.Sink
}

var (
	htAt   = time.Date(2024, 12, 31, 23, 59, 59, 123_000_000, time.UTC)
	htMsg  = "bench"
	htSite = multilog.Caller{Function: "bench", Line: 1, File: "bench"}
)

type nopReporter struct{}

func (nopReporter) Log(string)                {}
func (nopReporter) Record(remote.ErrorRecord) {}

func htSinks() []htScenario {
	return []htScenario{
		{
			name: "console",
			newSink: func(*testing.B) multilog.Sink {
				return console.New(console.WithWriter(io.Discard), console.WithColor(false))
			},
		},
		{
			name: "file",
			newSink: func(b *testing.B) multilog.Sink {
				s, err := file.New("bench.log", file.WithDir(b.TempDir()))
				if err != nil {
					b.Fatal(err)
				}
				return s
			},
		},
		{
			name: "remote",
			newSink: func(*testing.B) multilog.Sink {
				return remote.New(nopReporter{})
			},
		},
		{
			name: "zerolog/JSON",
			newSink: func(*testing.B) multilog.Sink {
				return zerologsink.New(zerolog.New(io.Discard).Level(zerolog.DebugLevel))
			},
		},
		{
			name: "zap/JSON",
			newSink: func(*testing.B) multilog.Sink {
				enc := zapcore.NewJSONEncoder(zapcore.EncoderConfig{
					TimeKey:        "", // the sink injects "ts"
					LevelKey:       "level",
					MessageKey:     "message",
					EncodeLevel:    zapcore.LowercaseLevelEncoder,
					EncodeTime:     zapcore.RFC3339NanoTimeEncoder,
					EncodeDuration: zapcore.StringDurationEncoder,
				})
				core := zapcore.NewCore(enc, zapcore.AddSync(io.Discard), zapcore.DebugLevel)
				return zapsink.New(zap.New(core))
			},
		},
		{
			name: "slog/JSON",
			newSink: func(*testing.B) multilog.Sink {
				return slogsink.New(slog.New(slog.NewJSONHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})))
			},
		},
	}
}

func genFieldsN(n int) multilog.Params {
	if n <= 0 {
		return nil
	}
	fs := make(multilog.Params, 0, n)
	for i := 0; i < n; i++ {
		switch i % 5 {
		case 0:
			fs = append(fs, multilog.Str("s", "v"))
		case 1:
			fs = append(fs, multilog.Int64("i", int64(i)))
		case 2:
			fs = append(fs, multilog.Bool("b", i&1 == 0))
		case 3:
			fs = append(fs, multilog.Dur("d", time.Millisecond))
		default:
			fs = append(fs, multilog.Float64("f", 3.14159))
		}
	}
	return fs
}

func htEntry(level multilog.Level, params multilog.Params) multilog.Entry {
	return multilog.Entry{Time: htAt, Level: level, Message: htMsg, Params: params, Caller: htSite}
}

func runHTCase(b *testing.B, caseName string, level multilog.Level, params multilog.Params) {
	b.Run(caseName, func(b *testing.B) {
		for _, sc := range htSinks() {
			b.Run(sc.name, func(b *testing.B) {
				s := sc.newSink(b)
				e := htEntry(level, params)
				b.ReportAllocs()
				b.ResetTimer()
				for i := 0; i < b.N; i++ {
					_ = s.Deliver(e)
				}
			})
		}
	})
}

func runHTCaseParallel(b *testing.B, caseName string, level multilog.Level, params multilog.Params) {
	b.Run(caseName, func(b *testing.B) {
		for _, sc := range htSinks() {
			b.Run(sc.name, func(b *testing.B) {
				s := sc.newSink(b)
				e := htEntry(level, params)
				b.ReportAllocs()
				b.ResetTimer()
				b.RunParallel(func(pb *testing.PB) {
					for pb.Next() {
						_ = s.Deliver(e)
					}
				})
			})
		}
	})
}

// -------- Serial high-throughput style (tight loop) --------

func BenchmarkHT_Serial_NoFields(b *testing.B) {
	runHTCase(b, "Serial/NoFields", multilog.LevelInfo, nil)
}

func BenchmarkHT_Serial_5Fields(b *testing.B) {
	runHTCase(b, "Serial/5Fields", multilog.LevelInfo, genFieldsN(5))
}

func BenchmarkHT_Serial_10Fields_Error(b *testing.B) {
	runHTCase(b, "Serial/10Fields/Error", multilog.LevelError, genFieldsN(10))
}

// -------- Parallel (many goroutines) --------

func BenchmarkHT_Parallel_NoFields(b *testing.B) {
	runHTCaseParallel(b, "Parallel/NoFields", multilog.LevelInfo, nil)
}

func BenchmarkHT_Parallel_10Fields(b *testing.B) {
	runHTCaseParallel(b, "Parallel/10Fields", multilog.LevelInfo, genFieldsN(10))
}
