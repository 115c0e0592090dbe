//go:build release

package multilog

// DefaultMinLevel is the minimum level of a dispatcher built without an
// explicit one.
const DefaultMinLevel = LevelInfo
