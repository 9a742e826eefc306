package gomap

import (
	"errors"
	"fmt"
)

var (
	ErrType     = errors.New("type mismatch")
	ErrRange    = errors.New("value out of range")
	ErrMissing  = errors.New("missing")
	ErrUnknown  = errors.New("unknown")
	ErrBadTag   = errors.New("bad ddl tag")
	ErrBadValue = errors.New("bad destination")
)

// UnmarshalError represents an error during decoding.
type UnmarshalError struct {
	FieldPath string // Field path (e.g., "Meshes[0].Arrays[1].Positions")
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}

func fail(path string, err error, format string, args ...any) error {
	return &UnmarshalError{FieldPath: path, Message: fmt.Sprintf(format, args...), Err: err}
}
