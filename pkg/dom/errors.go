package dom

import "errors"

// Errors.
var (
	ErrForeignNode = errors.New("dom: element belongs to another tree")
	ErrParse       = errors.New("dom: failed to parse markup")
	ErrRender      = errors.New("dom: failed to render document")
)
