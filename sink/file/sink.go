// Package file appends human-readable entries to a plain text file under the
// user's documents directory. Every construction starts a new session by
// appending Separator; the file is never truncated.
package file

import (
	"os"
	"path/filepath"
	"sync"

	"github.com/adrg/xdg"
	"github.com/pkg/errors"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/internal/render"
)

// Separator is appended once per construction.
const Separator = "\n\n---------- New session ----------\n"

type options struct {
	dir string
}

type Option func(*options)

// WithDir places the file in dir instead of the user documents directory.
func WithDir(dir string) Option { return func(o *options) { o.dir = dir } }

// Sink appends one entry per Deliver. Writes are serialized by a mutex held
// across open, write and close.
type Sink struct {
	mu   sync.Mutex
	path string
}

// New resolves <documents dir>/<name> and starts a session in it. The
// directory is created if missing. If the separator cannot be written the
// error is returned together with a usable sink.
func New(name string, opts ...Option) (*Sink, error) {
	path, err := Resolve(name, opts...)
	if err != nil {
		return nil, err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrapf(err, "file: create %s", dir)
	}
	return NewAtPath(path)
}

// Resolve returns the path New would use for name, without touching the
// file system.
func Resolve(name string, opts ...Option) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", errors.Errorf("file: invalid file name %q", name)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	dir := o.dir
	if dir == "" {
		dir = xdg.UserDirs.Documents
	}
	return filepath.Join(dir, name), nil
}

// NewAtPath starts a session in the file at path, skipping directory
// resolution.
func NewAtPath(path string) (*Sink, error) {
	s := &Sink{path: path}
	if err := s.append([]byte(Separator)); err != nil {
		return s, err
	}
	return s, nil
}

// Path returns the file the sink appends to.
func (s *Sink) Path() string { return s.path }

// Deliver formats e and appends it.
func (s *Sink) Deliver(e multilog.Entry) error {
	buf := render.GetBuffer()
	defer render.PutBuffer(buf)

	buf.B = AppendEntry(buf.B, e)
	return s.append(buf.B)
}

// Clear removes the file. The next Deliver recreates it. Removing a file
// that does not exist is not an error.
func (s *Sink) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Remove(s.path)
}

// Remove deletes the log file at path without starting a session in it.
// A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, "file: clear %s", path)
	}
	return nil
}

// AppendEntry appends the file rendering of e:
// "<timestamp> <LEVEL> <file>-><function> <line>: <message>", one
// "\n<key>: <value>" per param, and a trailing newline.
func AppendEntry(dst []byte, e multilog.Entry) []byte {
	dst = render.AppendTimestamp(dst, e.Time)
	dst = append(dst, ' ')
	dst = append(dst, e.Level.String()...)
	dst = append(dst, ' ')
	dst = append(dst, e.Caller.File...)
	dst = append(dst, "->"...)
	dst = append(dst, e.Caller.Function...)
	dst = append(dst, ' ')
	dst = render.AppendInt64(dst, int64(e.Caller.Line))
	dst = append(dst, ": "...)
	dst = append(dst, e.Message...)
	for i := range e.Params {
		dst = append(dst, '\n')
		dst = append(dst, e.Params[i].K...)
		dst = append(dst, ": "...)
		dst = e.Params[i].AppendValue(dst)
	}
	return append(dst, '\n')
}

func (s *Sink) append(p []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_APPEND, 0)
	if err != nil {
		// Missing file: create it with the content.
		f, err = os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return errors.Wrapf(err, "file: open %s", s.path)
		}
	}
	if _, err := f.Write(p); err != nil {
		_ = f.Close()
		return errors.Wrapf(err, "file: write %s", s.path)
	}
	return errors.Wrapf(f.Close(), "file: close %s", s.path)
}
