package passwords

import "errors"

var (
	// ErrEmptyCharset is returned when every character class is disabled.
	ErrEmptyCharset = errors.New("at least one character type must be selected")

	// ErrInvalidLength is returned for a length outside the accepted range.
	ErrInvalidLength = errors.New("invalid length")
)
