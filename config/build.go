package config

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/sink/console"
	"github.com/trickstertwo/multilog/sink/file"
	"github.com/trickstertwo/multilog/sink/remote"
	"github.com/trickstertwo/multilog/sink/remote/otelreport"
	slogsink "github.com/trickstertwo/multilog/sink/slog"
	zapsink "github.com/trickstertwo/multilog/sink/zap"
	zerologsink "github.com/trickstertwo/multilog/sink/zerolog"
)

// Build constructs every configured sink, in file order, and a dispatcher
// over them. If any sink fails, the ones already built are closed.
func Build(ctx context.Context, f File) (*multilog.Dispatcher, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	min, _ := f.MinLevel()

	sinks := make([]multilog.Sink, 0, len(f.Sinks))
	for i, sc := range f.Sinks {
		s, err := newSink(ctx, sc, min)
		if err != nil {
			closeAll(sinks)
			return nil, errors.Wrapf(err, "config: sinks[%d] (%s)", i, sc.Type)
		}
		sinks = append(sinks, s)
	}

	return multilog.NewBuilder().
		WithMinLevel(min).
		WithEnabled(f.IsEnabled()).
		WithSinks(sinks...).
		Build()
}

func newSink(ctx context.Context, sc Sink, min multilog.Level) (multilog.Sink, error) {
	switch sc.Type {
	case TypeConsole:
		opts := []console.Option{console.WithWriter(output(sc.Output))}
		if sc.Color != nil {
			opts = append(opts, console.WithColor(*sc.Color))
		}
		return console.New(opts...), nil
	case TypeFile:
		if sc.Path != "" {
			return file.NewAtPath(sc.Path)
		}
		var opts []file.Option
		if sc.Dir != "" {
			opts = append(opts, file.WithDir(sc.Dir))
		}
		return file.New(sc.Name, opts...)
	case TypeRemote:
		rep, err := otelreport.NewOTLP(ctx, sc.Endpoint, sc.Service)
		if err != nil {
			return nil, err
		}
		return remote.New(rep), nil
	case TypeZap:
		return zapsink.NewSink(zapsink.Config{
			Writer:   output(sc.Output),
			MinLevel: min,
			Console:  isConsoleFormat(sc.Format),
		}), nil
	case TypeZerolog:
		return zerologsink.NewSink(zerologsink.Config{
			Writer:   output(sc.Output),
			MinLevel: min,
			Console:  isConsoleFormat(sc.Format),
		}), nil
	case TypeSlog:
		format := slogsink.FormatJSON
		if isConsoleFormat(sc.Format) {
			format = slogsink.FormatText
		}
		return slogsink.NewSink(slogsink.Config{
			Writer:   output(sc.Output),
			MinLevel: min,
			Format:   format,
		}), nil
	}
	return nil, errors.Wrapf(multilog.ErrUnknownSinkType, "%q", sc.Type)
}

func output(name string) io.Writer {
	if name == "stderr" {
		return os.Stderr
	}
	return os.Stdout
}

func isConsoleFormat(f string) bool {
	switch strings.ToLower(f) {
	case "console", "text", "pretty":
		return true
	}
	return false
}

func closeAll(sinks []multilog.Sink) {
	for _, s := range sinks {
		if c, ok := s.(io.Closer); ok {
			_ = c.Close()
		}
	}
}
