package jar

import "errors"

// Errors.
var (
	ErrOpen   = errors.New("jar: failed to open store")
	ErrSchema = errors.New("jar: failed to prepare schema")
	ErrQuery  = errors.New("jar: query failed")
)
