package models

import "fmt"

const (
	ExitSuccess     = 0
	ExitFailure     = 1
	ExitConfigError = 2
)

// ConfigurationError marks failures the caller can fix without talking
// to the Anvil API: a missing env var, a missing input file, or an
// invalid combination of arguments.
type ConfigurationError struct {
	Message string
}

func NewConfigurationError(format string, args ...interface{}) ConfigurationError {
	return ConfigurationError{Message: fmt.Sprintf(format, args...)}
}

func (e ConfigurationError) Error() string {
	return e.Message
}

// ExitCode maps an error to the process exit code: 0 on success, 2 for
// configuration errors, 1 for everything else (API, network, parsing,
// local I/O).
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if _, ok := err.(ConfigurationError); ok {
		return ExitConfigError
	}
	return ExitFailure
}
