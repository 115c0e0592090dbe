// Package config loads dispatcher configuration from TOML or YAML files and
// builds the configured sinks.
//
//	level = "info"
//	enabled = true
//
//	[[sinks]]
//	type = "console"
//
//	[[sinks]]
//	type = "file"
//	name = "app.log"
package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"
	"github.com/pkg/errors"

	"github.com/trickstertwo/multilog"
)

// Environment overrides applied by Load after decoding.
const (
	EnvLevel   = "MULTILOG_LEVEL"
	EnvEnabled = "MULTILOG_ENABLED"
)

// Sink types.
const (
	TypeConsole = "console"
	TypeFile    = "file"
	TypeRemote  = "remote"
	TypeZap     = "zap"
	TypeZerolog = "zerolog"
	TypeSlog    = "slog"
)

// File is the decoded configuration file.
type File struct {
	Level   string `toml:"level" yaml:"level"`
	Enabled *bool  `toml:"enabled,omitempty" yaml:"enabled,omitempty"`
	Sinks   []Sink `toml:"sinks" yaml:"sinks"`
}

// Sink configures one sink. Which fields apply depends on Type.
type Sink struct {
	Type string `toml:"type" yaml:"type"`

	// console, zap, zerolog, slog
	Output string `toml:"output,omitempty" yaml:"output,omitempty"` // stdout (default) or stderr
	Color  *bool  `toml:"color,omitempty" yaml:"color,omitempty"`   // console only; default: detect terminal
	Format string `toml:"format,omitempty" yaml:"format,omitempty"` // zap, zerolog, slog: json (default), console or text

	// file
	Name string `toml:"name,omitempty" yaml:"name,omitempty"`
	Dir  string `toml:"dir,omitempty" yaml:"dir,omitempty"`
	Path string `toml:"path,omitempty" yaml:"path,omitempty"` // overrides name and dir

	// remote
	Endpoint string `toml:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Service  string `toml:"service,omitempty" yaml:"service,omitempty"`
}

// DefaultPath is where the CLI looks for a configuration file.
func DefaultPath() string {
	return filepath.Join(xdg.ConfigHome, "multilog", "config.toml")
}

// Load reads path, decoding TOML or YAML by extension, applies the
// environment overrides and validates the result.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrap(err, "config: read")
	}
	f, err := Decode(data, filepath.Ext(path))
	if err != nil {
		return File{}, errors.Wrapf(err, "config: %s", path)
	}
	if err := f.applyEnv(); err != nil {
		return File{}, err
	}
	return f, f.Validate()
}

// Decode parses data in the format named by ext (".toml", ".yaml" or
// ".yml"). Unknown keys are rejected.
func Decode(data []byte, ext string) (File, error) {
	var f File
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return File{}, errors.Wrap(err, "decode toml")
		}
	case ".yaml", ".yml":
		if err := yaml.UnmarshalWithOptions(data, &f, yaml.Strict()); err != nil {
			return File{}, errors.Wrap(err, "decode yaml")
		}
	default:
		return File{}, errors.Errorf("unsupported config format %q", ext)
	}
	return f, nil
}

func (f *File) applyEnv() error {
	if v, ok := os.LookupEnv(EnvLevel); ok && v != "" {
		f.Level = v
	}
	if v, ok := os.LookupEnv(EnvEnabled); ok && v != "" {
		on, err := strconv.ParseBool(v)
		if err != nil {
			return errors.Wrapf(err, "config: %s", EnvEnabled)
		}
		f.Enabled = &on
	}
	return nil
}

// Validate checks the level and every sink's required fields.
func (f File) Validate() error {
	if _, err := f.MinLevel(); err != nil {
		return err
	}
	for i, s := range f.Sinks {
		if err := s.validate(); err != nil {
			return errors.Wrapf(err, "config: sinks[%d]", i)
		}
	}
	return nil
}

// MinLevel parses Level. An empty level yields multilog.DefaultMinLevel.
func (f File) MinLevel() (multilog.Level, error) {
	if f.Level == "" {
		return multilog.DefaultMinLevel, nil
	}
	l, err := multilog.ParseLevel(f.Level)
	return l, errors.Wrap(err, "config: level")
}

// IsEnabled reports Enabled, defaulting to true.
func (f File) IsEnabled() bool { return f.Enabled == nil || *f.Enabled }

func (s Sink) validate() error {
	switch s.Type {
	case TypeConsole, TypeZap, TypeZerolog, TypeSlog:
		switch s.Output {
		case "", "stdout", "stderr":
		default:
			return errors.Errorf("unknown output %q", s.Output)
		}
	case TypeFile:
		if s.Path == "" && s.Name == "" {
			return errors.New("file sink needs name or path")
		}
	case TypeRemote:
		if s.Endpoint == "" {
			return errors.New("remote sink needs endpoint")
		}
	default:
		return errors.Wrapf(multilog.ErrUnknownSinkType, "%q", s.Type)
	}
	return nil
}

// Apply sets the level and enabled flag of a live dispatcher from f.
func Apply(d *multilog.Dispatcher, f File) error {
	l, err := f.MinLevel()
	if err != nil {
		return err
	}
	d.SetMinLevel(l)
	d.SetEnabled(f.IsEnabled())
	return nil
}
