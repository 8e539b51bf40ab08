package render

import "errors"

var (
	// ErrNotRegistered indicates a renderer key has no registered factory.
	ErrNotRegistered = errors.New("render: renderer not registered")

	// ErrRenderFailed indicates template rendering failed.
	ErrRenderFailed = errors.New("render: failed to render template")
)
