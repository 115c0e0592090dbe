// Package console renders entries as human-readable blocks on a terminal
// or any io.Writer.
//
//	💜 2025-01-01 10:00:00.000 INFO main->main:12 💜
//		server started
//	    port: 8080
package console

import (
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/internal/render"
)

// Symbols per level, printed at both ends of the header line.
var symbols = [...]string{
	multilog.LevelDebug:   "💙",
	multilog.LevelInfo:    "💜",
	multilog.LevelWarning: "💛",
	multilog.LevelError:   "❤️",
}

// LevelColors are applied to the header line when colour is on.
var LevelColors = [...]lipgloss.TerminalColor{
	multilog.LevelDebug:   lipgloss.Color("#29C6E8"),
	multilog.LevelInfo:    lipgloss.Color("#2C75FE"),
	multilog.LevelWarning: lipgloss.Color("#E7C229"),
	multilog.LevelError:   lipgloss.Color("#FF2A25"),
}

// Symbol returns the glyph for l, or "" for an undefined level.
func Symbol(l multilog.Level) string {
	if !l.Valid() {
		return ""
	}
	return symbols[l]
}

type options struct {
	w     io.Writer
	color *bool
}

type Option func(*options)

// WithWriter sends output to w instead of os.Stdout.
func WithWriter(w io.Writer) Option { return func(o *options) { o.w = w } }

// WithColor forces header colouring on or off. By default colour is used
// only when the writer is a terminal.
func WithColor(on bool) Option { return func(o *options) { o.color = &on } }

// Sink writes one block per entry. Each block reaches the writer in a single
// Write call made under the sink's mutex, so concurrent entries never
// interleave.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	color  bool
	styles [len(symbols)]lipgloss.Style
}

func New(opts ...Option) *Sink {
	o := options{w: os.Stdout}
	for _, opt := range opts {
		opt(&o)
	}
	if o.w == nil {
		o.w = os.Stdout
	}

	s := &Sink{w: o.w}
	if o.color != nil {
		s.color = *o.color
	} else {
		s.color = isTerminal(o.w)
	}
	if s.color {
		r := lipgloss.NewRenderer(o.w, termenv.WithTTY(true))
		r.SetColorProfile(termenv.ANSI256)
		for _, l := range multilog.Levels {
			s.styles[l] = r.NewStyle().Bold(true).Foreground(LevelColors[l])
		}
	}
	return s
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(interface{ Fd() uintptr })
	if !ok {
		return false
	}
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Deliver renders e and writes it.
func (s *Sink) Deliver(e multilog.Entry) error {
	buf := render.GetBuffer()
	defer render.PutBuffer(buf)

	buf.B = s.appendEntry(buf.B, e)

	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.w.Write(buf.B)
	return err
}

// Format returns the text Deliver would write for e.
func (s *Sink) Format(e multilog.Entry) string {
	return string(s.appendEntry(nil, e))
}

func (s *Sink) appendEntry(dst []byte, e multilog.Entry) []byte {
	sym := Symbol(e.Level)

	dst = append(dst, sym...)
	dst = append(dst, ' ')
	if s.color && e.Level.Valid() {
		dst = append(dst, s.styles[e.Level].Render(string(appendHeader(nil, e)))...)
	} else {
		dst = appendHeader(dst, e)
	}
	dst = append(dst, ' ')
	dst = append(dst, sym...)

	dst = append(dst, "\n\t"...)
	dst = append(dst, e.Message...)
	for i := range e.Params {
		dst = append(dst, "\n    "...)
		dst = append(dst, e.Params[i].K...)
		dst = append(dst, ": "...)
		dst = e.Params[i].AppendValue(dst)
	}
	// The block ends with an empty line.
	return append(dst, "\n\n"...)
}

// appendHeader appends "<timestamp> <LEVEL> <file>-><function>:<line>".
func appendHeader(dst []byte, e multilog.Entry) []byte {
	dst = render.AppendTimestamp(dst, e.Time)
	dst = append(dst, ' ')
	dst = append(dst, e.Level.String()...)
	dst = append(dst, ' ')
	dst = append(dst, e.Caller.File...)
	dst = append(dst, "->"...)
	dst = append(dst, e.Caller.Function...)
	dst = append(dst, ':')
	return render.AppendInt64(dst, int64(e.Caller.Line))
}
