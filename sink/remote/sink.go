// Package remote forwards entries to a crash-reporting service. The service
// is reached through Reporter; batching and retries are its business.
package remote

import (
	"github.com/pkg/errors"

	"github.com/trickstertwo/multilog"
	"github.com/trickstertwo/multilog/internal/render"
)

// RecordCode is the fixed code attached to every ErrorRecord. It carries no
// meaning.
const RecordCode = -1

// ErrorRecord is a non-fatal error report.
type ErrorRecord struct {
	Domain   string // "[<LEVEL>] <file>-><function>:<line> <message>"
	Code     int
	UserInfo map[string]any // params by key; nil when there are none
}

// Reporter is the remote service boundary.
type Reporter interface {
	// Log records free text alongside future reports.
	Log(message string)
	// Record reports a non-fatal error.
	Record(ErrorRecord)
}

// Sink routes entries by level: DEBUG is dropped, INFO goes to Reporter.Log
// as formatted text, WARNING and ERROR go to Reporter.Record.
type Sink struct {
	r Reporter
}

var errNoReporter = errors.New("remote: no reporter")

func New(r Reporter) *Sink { return &Sink{r: r} }

func (s *Sink) Deliver(e multilog.Entry) error {
	if s.r == nil {
		return errNoReporter
	}
	switch e.Level {
	case multilog.LevelDebug:
		return nil
	case multilog.LevelInfo:
		buf := render.GetBuffer()
		buf.B = AppendText(buf.B, e)
		msg := buf.String()
		render.PutBuffer(buf)
		s.r.Log(msg)
	default:
		s.r.Record(NewErrorRecord(e))
	}
	return nil
}

// Close closes the reporter when it implements io.Closer.
func (s *Sink) Close() error {
	if c, ok := s.r.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}

// AppendText appends the free-text rendering sent to Reporter.Log:
// "<timestamp> <LEVEL> <file>-><function>:<line> \n\t<message>", one
// "\n    <key>: <value>" per param, and a trailing newline.
func AppendText(dst []byte, e multilog.Entry) []byte {
	dst = render.AppendTimestamp(dst, e.Time)
	dst = append(dst, ' ')
	dst = append(dst, e.Level.String()...)
	dst = append(dst, ' ')
	dst = appendSite(dst, e.Caller)
	dst = append(dst, " \n\t"...)
	dst = append(dst, e.Message...)
	for i := range e.Params {
		dst = append(dst, "\n    "...)
		dst = append(dst, e.Params[i].K...)
		dst = append(dst, ": "...)
		dst = e.Params[i].AppendValue(dst)
	}
	return append(dst, '\n')
}

// NewErrorRecord builds the report for a WARNING or ERROR entry. An
// attached Entry.Err is added to UserInfo as "error" unless a param already
// uses that key.
func NewErrorRecord(e multilog.Entry) ErrorRecord {
	dst := make([]byte, 0, 64+len(e.Message))
	dst = append(dst, '[')
	dst = append(dst, e.Level.String()...)
	dst = append(dst, "] "...)
	dst = appendSite(dst, e.Caller)
	dst = append(dst, ' ')
	dst = append(dst, e.Message...)
	info := e.Params.Map()
	if e.Err != nil {
		if info == nil {
			info = make(map[string]any, 1)
		}
		if _, ok := info["error"]; !ok {
			info["error"] = render.SafeText(e.Err.Error)
		}
	}
	return ErrorRecord{
		Domain:   string(dst),
		Code:     RecordCode,
		UserInfo: info,
	}
}

// appendSite appends "<file>-><function>:<line>".
func appendSite(dst []byte, c multilog.Caller) []byte {
	dst = append(dst, c.File...)
	dst = append(dst, "->"...)
	dst = append(dst, c.Function...)
	dst = append(dst, ':')
	return render.AppendInt64(dst, int64(c.Line))
}
