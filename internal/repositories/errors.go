package repositories

import "errors"

// ErrNotFound is returned (wrapped with entity context) whenever an id does
// not resolve. Handlers map it to 404.
var ErrNotFound = errors.New("record not found")
