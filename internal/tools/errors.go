package tools

import "errors"

var (
	ErrUnknownTool      = errors.New("unknown tool")
	ErrMissingParameter = errors.New("missing required parameter")
	ErrInvalidNumber    = errors.New("invalid number format")
)
