package multilog

import (
	"runtime"
	"strings"
	"time"
)

// Caller describes the call site of a log call.
type Caller struct {
	Function string
	Line     int
	File     string // base name, no directory or extension
}

// Entry is the immutable record of one accepted log call. The dispatcher
// builds it once and hands the same value to every sink; sinks must treat
// Params as read-only.
type Entry struct {
	Time    time.Time
	Level   Level
	Message string
	Params  Params
	Caller  Caller
	Err     error // optional auxiliary error, informational only
}

// BaseName strips the directory and the final extension from a source path:
// "/src/app/main.go" becomes "main".
func BaseName(path string) string {
	if path == "" {
		return ""
	}
	// runtime paths always use '/'; host-supplied ones may use '\'.
	if i := strings.LastIndexAny(path, `/\`); i >= 0 {
		path = path[i+1:]
	}
	if i := strings.LastIndexByte(path, '.'); i > 0 {
		path = path[:i]
	}
	return path
}

// FuncName trims a fully qualified runtime function name to the part after
// the package: "github.com/x/app.(*Server).Run" becomes "(*Server).Run".
// A major-version element such as "gopkg.in/yaml.v3" stays with the package,
// so closures of a function named "v3" lose that name.
func FuncName(full string) string {
	if i := strings.LastIndexByte(full, '/'); i >= 0 {
		full = full[i+1:]
	}
	i := strings.IndexByte(full, '.')
	if i < 0 {
		return full
	}
	full = full[i+1:]
	if j := strings.IndexByte(full, '.'); j > 0 && isMajorVersion(full[:j]) {
		full = full[j+1:]
	}
	return full
}

// isMajorVersion reports whether s looks like "v2", "v3", ...
func isMajorVersion(s string) bool {
	if len(s) < 2 || s[0] != 'v' {
		return false
	}
	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func (c Caller) normalized() Caller {
	c.File = BaseName(c.File)
	if c.Line < 0 {
		c.Line = 0
	}
	return c
}

// captureCaller reports the caller of the function that calls captureCaller,
// skipping skip additional frames.
func captureCaller(skip int) Caller {
	var pcs [1]uintptr
	if runtime.Callers(skip+3, pcs[:]) == 0 {
		return Caller{}
	}
	fr, _ := runtime.CallersFrames(pcs[:]).Next()
	return Caller{
		Function: FuncName(fr.Function),
		Line:     fr.Line,
		File:     fr.File,
	}
}
