package zerolog

import "github.com/rs/zerolog"

// TimestampField is the key Deliver writes the entry time under.
const TimestampField = "ts"

// zerolog.ConsoleWriter finds its leading timestamp column through the
// process-global zerolog.TimestampFieldName. It is set here, once, before
// any logger of this package can run; importing this package therefore
// renames the timestamp key of every zerolog logger in the process that uses
// Timestamp().
func init() {
	zerolog.TimestampFieldName = TimestampField
}
