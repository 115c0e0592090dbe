package multilog

import (
	"strconv"
	"strings"
)

// Level is the severity of a log call. Levels are totally ordered by rank:
// LevelDebug < LevelInfo < LevelWarning < LevelError.
type Level int

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarning
	LevelError
)

// Levels lists every level in rank order.
var Levels = [...]Level{LevelDebug, LevelInfo, LevelWarning, LevelError}

// Rank returns the integer rank used for filtering.
func (l Level) Rank() int { return int(l) }

// String returns the stable description of the level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarning:
		return "WARNING"
	case LevelError:
		return "ERROR"
	default:
		return "Level(" + strconv.Itoa(int(l)) + ")"
	}
}

// Valid reports whether l is one of the four defined levels.
func (l Level) Valid() bool { return l >= LevelDebug && l <= LevelError }

// ParseLevel parses a level description, case-insensitively. "warn" is
// accepted as an alias for WARNING.
func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return LevelDebug, nil
	case "info":
		return LevelInfo, nil
	case "warning", "warn":
		return LevelWarning, nil
	case "error":
		return LevelError, nil
	}
	return 0, &levelError{input: s}
}

func (l Level) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, &levelError{input: l.String()}
	}
	return []byte(strings.ToLower(l.String())), nil
}

func (l *Level) UnmarshalText(text []byte) error {
	v, err := ParseLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
