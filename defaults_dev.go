//go:build !release

package multilog

// DefaultMinLevel is the minimum level of a dispatcher built without an
// explicit one. Development builds log everything; build with -tags release
// to default to LevelInfo.
const DefaultMinLevel = LevelDebug
