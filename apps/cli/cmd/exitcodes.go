package cmd

import (
	"github.com/abdul-hamid-achik/communicator/packages/communicator"
)

// Exit codes for communicator CLI
const (
	// ExitSuccess indicates the request succeeded
	ExitSuccess = 0

	// ExitRequestFailure indicates a 4xx or 5xx response
	ExitRequestFailure = 1

	// ExitConfigError indicates a configuration error
	ExitConfigError = 3

	// ExitNetworkError indicates a network/connection error
	ExitNetworkError = 4

	// ExitUsageError indicates invalid CLI usage
	ExitUsageError = 64
)

// exitError carries the process exit code out of a command. reported is set
// when the error was already printed by a formatter.
type exitError struct {
	code     int
	err      error
	reported bool
}

func (e *exitError) Error() string {
	return e.err.Error()
}

func (e *exitError) Unwrap() error {
	return e.err
}

func exitCodeFor(err error) int {
	e, ok := communicator.AsError(err)
	if !ok {
		return ExitRequestFailure
	}
	switch e.Kind {
	case communicator.KindTransport:
		return ExitNetworkError
	case communicator.KindEncoding:
		return ExitUsageError
	default:
		return ExitRequestFailure
	}
}
