package main

import (
	"errors"
	"fmt"
	"os"
)

// Exit codes for different failure modes
const (
	ExitSuccess    = 0 // Scan finished (and, under --strict, every goal passed)
	ExitGoalFailed = 1 // --strict and at least one goal is not achieved
	ExitError      = 2 // Configuration or runtime error
)

// GoalFailureError indicates that the scan ran successfully,
// but one or more goals are not achieved.
type GoalFailureError struct {
	Message string
}

func (e *GoalFailureError) Error() string {
	return e.Message
}

func main() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var goalFailureErr *GoalFailureError
		if errors.As(err, &goalFailureErr) {
			os.Exit(ExitGoalFailed)
		}

		// All other errors are configuration/runtime errors
		os.Exit(ExitError)
	}
}
