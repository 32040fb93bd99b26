package logger

import (
	"fmt"
	"io"
)

// Logger writes ANSI-colored progress lines to Sink. Both CLIs point
// Sink at stderr so stdout stays reserved for the machine-readable
// result lines.
type Logger struct {
	Sink io.Writer
}

type color int

var err color = 31     // red
var success color = 32 // green
var warn color = 33    // yellow
var info color = 34    // blue

func (l Logger) Info(message string) {
	l.logWithColor(message, info)
}

func (l Logger) Success(message string) {
	l.logWithColor(message, success)
}

func (l Logger) Warn(message string) {
	l.logWithColor(message, warn)
}

func (l Logger) Error(message string) {
	l.logWithColor(message, err)
}

func (l Logger) logWithColor(message string, c color) {
	coloredMessage := fmt.Sprintf("\033[%dm%s\033[0m\n", c, message)
	l.Sink.Write([]byte(coloredMessage))
}
