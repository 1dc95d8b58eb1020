// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"unicode"
	"unicode/utf8"
)

const (
	MinMasterPasswordLength = 8
	MaxMasterPasswordLength = 128
)

// ValidateMasterPassword enforces the strength rules for a new master
// password. All violations are reported together.
func ValidateMasterPassword(password string) error {
	var errs []error

	n := utf8.RuneCountInString(password)
	if n < MinMasterPasswordLength {
		errs = append(errs, ErrPasswordTooShort)
	}
	if n > MaxMasterPasswordLength {
		errs = append(errs, ErrPasswordTooLong)
	}

	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper {
		errs = append(errs, ErrPasswordNoUpper)
	}
	if !lower {
		errs = append(errs, ErrPasswordNoLower)
	}
	if !digit {
		errs = append(errs, ErrPasswordNoDigit)
	}

	return errors.Join(errs...)
}
