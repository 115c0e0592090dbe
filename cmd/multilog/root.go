package main

import (
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/config"
	"github.com/trickstertwo/multilog/sink/console"
	"github.com/trickstertwo/multilog/sink/file"
	zapsink "github.com/trickstertwo/multilog/sink/zap"
	zerologsink "github.com/trickstertwo/multilog/sink/zerolog"
)

var (
	configPath string
	level      string
	fileName   string
	fileDir    string
	backend    string
	color      bool
	noColor    bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Config file (TOML or YAML), default "+config.DefaultPath())
	rootCmd.PersistentFlags().StringVarP(&level, "level", "l", "", "Minimum level: debug, info, warning or error")
	rootCmd.PersistentFlags().StringVar(&fileName, "file", "", "Also append to this file in the documents directory")
	rootCmd.PersistentFlags().StringVar(&fileDir, "dir", "", "Directory for --file instead of the documents directory")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Also forward to a structured backend: zap or zerolog")
	rootCmd.PersistentFlags().BoolVar(&color, "color", false, "Force console colours")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable console colours")
	rootCmd.MarkFlagsMutuallyExclusive("color", "no-color")

	rootCmd.AddCommand(demoCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(clearCmd)
}

var rootCmd = &cobra.Command{
	Use:           "multilog",
	Short:         "Leveled multi-sink logging playground",
	SilenceUsage:  true,
	SilenceErrors: true,
}

// resolveConfig returns the config file to use and whether one was found.
// An explicit --config must exist; the default path is optional.
func resolveConfig() (string, bool, error) {
	if configPath != "" {
		if _, err := os.Stat(configPath); err != nil {
			return "", false, errors.Wrap(err, "config")
		}
		return configPath, true, nil
	}
	p := config.DefaultPath()
	if _, err := os.Stat(p); err != nil {
		return "", false, nil
	}
	return p, true, nil
}

// setup builds the global dispatcher from the config file when there is
// one, otherwise from flags. It returns the config path ("" for flags).
func setup(cmd *cobra.Command) (*multilog.Dispatcher, string, error) {
	path, ok, err := resolveConfig()
	if err != nil {
		return nil, "", err
	}

	var d *multilog.Dispatcher
	if ok {
		f, err := config.Load(path)
		if err != nil {
			return nil, "", err
		}
		if d, err = config.Build(cmd.Context(), f); err != nil {
			return nil, "", err
		}
	} else {
		if d, err = fromFlags(); err != nil {
			return nil, "", err
		}
	}

	if level != "" {
		l, err := multilog.ParseLevel(level)
		if err != nil {
			return nil, "", err
		}
		d.SetMinLevel(l)
	}
	d.SetErrorHandler(func(s multilog.Sink, err error) {
		cmd.PrintErrf("sink %T: %v\n", s, err)
	})
	multilog.SetGlobal(d)
	return d, path, nil
}

func fromFlags() (*multilog.Dispatcher, error) {
	var copts []console.Option
	switch {
	case color:
		copts = append(copts, console.WithColor(true))
	case noColor:
		copts = append(copts, console.WithColor(false))
	}
	sinks := []multilog.Sink{console.New(copts...)}

	if fileName != "" {
		var fopts []file.Option
		if fileDir != "" {
			fopts = append(fopts, file.WithDir(fileDir))
		}
		fs, err := file.New(fileName, fopts...)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, fs)
	}

	switch backend {
	case "":
	case "zap":
		sinks = append(sinks, zapsink.NewSink(zapsink.Config{Writer: os.Stderr, MinLevel: multilog.LevelDebug}))
	case "zerolog":
		sinks = append(sinks, zerologsink.NewSink(zerologsink.Config{Writer: os.Stderr, MinLevel: multilog.LevelDebug}))
	default:
		return nil, errors.Wrapf(multilog.ErrUnknownSinkType, "backend %q", backend)
	}

	return multilog.NewBuilder().
		WithMinLevel(multilog.DefaultMinLevel).
		WithSinks(sinks...).
		Build()
}
