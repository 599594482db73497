package redislifecycle

import "fmt"

const (
	ExitCodeInvalidConfig = 1
	ExitCodeIOFailure     = 3
	ExitCodeLaunchFailure = 4
)

type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %s", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

type LaunchError struct {
	Binary string
	Err    error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("failed to launch %s: %s", e.Binary, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func ExitCodeFromError(err error) int {
	switch err.(type) {
	case *IOError:
		return ExitCodeIOFailure
	case *LaunchError:
		return ExitCodeLaunchFailure
	default:
		return ExitCodeInvalidConfig
	}
}
