package core

import (
	"errors"
	"fmt"
)

// ErrClaudeCommandErr represents an error from the claude command that includes
// the output captured before the command failed
type ErrClaudeCommandErr struct {
	Err    error  // The original command error
	Stdout string // Stream output captured before the failure (may contain JSON lines)
	Stderr string // The command's standard error text
}

func (e *ErrClaudeCommandErr) Error() string {
	return fmt.Sprintf("claude command failed: %v\nStderr: %s", e.Err, e.Stderr)
}

func (e *ErrClaudeCommandErr) Unwrap() error {
	return e.Err
}

// IsClaudeCommandErr checks if an error is a Claude command error
func IsClaudeCommandErr(err error) (*ErrClaudeCommandErr, bool) {
	var claudeErr *ErrClaudeCommandErr
	if errors.As(err, &claudeErr) {
		return claudeErr, true
	}
	return nil, false
}
