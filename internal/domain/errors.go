package domain

import (
	"errors"
	"fmt"
)

var (
	ErrSessionNotActive = errors.New("session not active")
	ErrSessionExists    = errors.New("a session is already running")
	ErrNoSession        = errors.New("no session")
	ErrAlreadyJoined    = errors.New("video must be configured before join")
	ErrEngineDestroyed  = errors.New("engine destroyed")
	ErrInvalidAppID     = errors.New("invalid application id")
)

// PermissionDeniedError is fatal: the session terminates before any engine
// resource is allocated.
type PermissionDeniedError struct {
	Capability Capability
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s", e.Capability)
}

// EngineCreateError is fatal: there is no handle to tear down.
type EngineCreateError struct {
	Cause error
}

func (e *EngineCreateError) Error() string {
	return fmt.Sprintf("engine create failed: %v", e.Cause)
}

func (e *EngineCreateError) Unwrap() error { return e.Cause }

// CommandError reports a failed fire-and-forget engine command.
// It is logged and otherwise ignored.
type CommandError struct {
	Op  string
	Err error
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("engine command %s failed: %v", e.Op, e.Err)
}

func (e *CommandError) Unwrap() error { return e.Err }
