package db

import "errors"

// ErrNotFound is returned when a point lookup matches no row.
var ErrNotFound = errors.New("not found")

// IsNotFound reports whether err is ErrNotFound anywhere in its chain.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
