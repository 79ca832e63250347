package cookie

import "errors"

// Errors.
var (
	ErrNotFound  = errors.New("cookie: not found")
	ErrBadFlash  = errors.New("cookie: flash message is empty")
	ErrBadHeader = errors.New("cookie: malformed assignment")
)
