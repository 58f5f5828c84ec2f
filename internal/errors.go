package internal

import "errors"

const (
	ExitFailure = 1

	// ExitUsage matches sysexits.h EX_USAGE.
	ExitUsage = 64
)

type ExitCodeErr interface {
	ExitCode() int
}

type exitCodeErr struct {
	err      error
	exitCode int
}

func (err *exitCodeErr) Error() string {
	return err.err.Error()
}

func (err *exitCodeErr) Unwrap() error {
	return err.err
}

func (err *exitCodeErr) ExitCode() int {
	return err.exitCode
}

func WithExitCode(exitCode int, err error) error {
	if err == nil {
		return nil
	}
	return &exitCodeErr{err, exitCode}
}

// ExitCode picks the process exit status for err: 0 for nil, the attached
// code if there is one, otherwise [ExitFailure].
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	var ece ExitCodeErr
	if errors.As(err, &ece) {
		return ece.ExitCode()
	}
	return ExitFailure
}
