package cli

import "errors"

// ErrUsage marks errors caused by how the command was invoked.
var ErrUsage = errors.New("cli usage error")

// ErrCheckFailed is returned by check when the connection is not valid.
var ErrCheckFailed = errors.New("connection is not valid")

type usageError struct {
	msg string
}

func newUsageError(msg string) error {
	return usageError{msg: msg}
}

func (e usageError) Error() string {
	return e.msg
}

func (e usageError) Is(target error) bool {
	return target == ErrUsage
}
