package validators

import "errors"

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")

	ErrEmptyID           = errors.New("record id is required")
	ErrDuplicateID       = errors.New("duplicate record id")
	ErrEmptyTitle        = errors.New("title is required")
	ErrEmptySecret       = errors.New("password is required")
	ErrInvalidCategory   = errors.New("invalid category")
	ErrMissingTimestamps = errors.New("createdAt and updatedAt are required")
	ErrInvalidTimestamps = errors.New("updatedAt is before createdAt")
	ErrNoFieldsToUpdate  = errors.New("at least one field must be provided for update")
)

// Master password rules.
var (
	ErrPasswordTooShort = errors.New("password must be at least 8 characters long")
	ErrPasswordTooLong  = errors.New("password must be at most 128 characters long")
	ErrPasswordNoUpper  = errors.New("password must contain at least one uppercase letter")
	ErrPasswordNoLower  = errors.New("password must contain at least one lowercase letter")
	ErrPasswordNoDigit  = errors.New("password must contain at least one number")
)
