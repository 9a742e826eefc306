package ir

import "errors"

var (
	ErrBadType = errors.New("bad type")
	ErrStale   = errors.New("stale view")
)
