package sapgui

import (
	"errors"
	"fmt"
)

var (
	// ErrNoSession means no live SAP GUI session could be found. It is a
	// first-class result, not an exceptional condition: the status endpoint
	// and every transaction script entry point consume it and short-circuit
	// without attempting any action.
	ErrNoSession = errors.New("no live SAP GUI session")

	// ErrElementNotFound means an element path did not resolve in the
	// current screen (wrong tab selected, screen still loading).
	ErrElementNotFound = errors.New("element not found")

	// ErrUnresponsive means the scripting interface timed out or the
	// COM call failed at the transport level.
	ErrUnresponsive = errors.New("application unresponsive")
)

func notFound(path string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrElementNotFound, path, err)
}

func unresponsive(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", ErrUnresponsive, op, err)
}
