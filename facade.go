package multilog

// Facade helpers using the global Singleton dispatcher.
// Usage: multilog.Warning().Int("id", 102).Msg("quota low")

func Debug() *Event   { return L().Debug() }
func Info() *Event    { return L().Info() }
func Warning() *Event { return L().Warning() }
func Error() *Event   { return L().Error() }

// Log logs through the global dispatcher; see Dispatcher.Log.
func Log(level Level, msg MessageFunc, params ...Field) {
	d := L()
	if !d.gate(level) {
		return
	}
	d.emit(level, captureCaller(0), force(msg), params, nil)
}

func SetMinLevel(l Level)               { L().SetMinLevel(l) }
func SetEnabled(on bool)                { L().SetEnabled(on) }
func RegisterSinks(sinks ...Sink) error { return L().RegisterSinks(sinks...) }
