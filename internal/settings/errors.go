package settings

import (
	"errors"
	"fmt"
)

// Error kinds. Every error returned by a Store matches exactly one of these
// with errors.Is.
var (
	ErrIO        = errors.New("settings file i/o failed")
	ErrCorrupted = errors.New("settings file corrupted")
	ErrType      = errors.New("settings value type mismatch")
	ErrNotFound  = errors.New("settings key not found")
)

var errRootNotObject = errors.New("root settings element must be a JSON object")

// Error describes a failed store operation.
type Error struct {
	Kind error
	Err  error
	Op   string
	Key  string
}

func (e *Error) Error() string {
	msg := e.Kind.Error()
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	if e.Key != "" {
		return fmt.Sprintf("%s %q: %s", e.Op, e.Key, msg)
	}
	return fmt.Sprintf("%s: %s", e.Op, msg)
}

// Unwrap exposes both the kind sentinel and the underlying cause.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func ioError(op string, err error) error {
	return &Error{Op: op, Kind: ErrIO, Err: err}
}

func corruptedError(op string, err error) error {
	return &Error{Op: op, Kind: ErrCorrupted, Err: err}
}

func typeError(op, key string, err error) error {
	return &Error{Op: op, Key: key, Kind: ErrType, Err: err}
}

func notFoundError(op, key string) error {
	return &Error{Op: op, Key: key, Kind: ErrNotFound}
}
