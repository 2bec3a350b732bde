package log

// Level specifies the log level
type Level int

const (
	// InfoLevel indicates Info log level.
	InfoLevel Level = iota
	// WarningLevel indicates Warning log level.
	WarningLevel
	// ErrorLevel indicates Error log level.
	ErrorLevel
	// FatalLevel indicates Fatal log level.
	FatalLevel
	// PanicLevel indicates Panic log level
	PanicLevel
	// DebugLevel indicates Debug log level
	DebugLevel
	Disabled
	numLogLevels = 6
	// InvalidLevel indicates a level that could not be mapped to a known Level.
	InvalidLevel Level = -1
)

// levels is internally used to provide the default logger
var levels = [numLogLevels]string{
	InfoLevel:    "INFO",
	WarningLevel: "WARNING",
	ErrorLevel:   "ERROR",
	FatalLevel:   "FATAL",
	PanicLevel:   "PANIC",
	DebugLevel:   "DEBUG",
}

// String returns the string representation of the log level.
func (l Level) String() string {
	if l < 0 || int(l) >= len(levels) {
		return "UNKNOWN"
	}
	return levels[l]
}
