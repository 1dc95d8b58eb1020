package validators

import (
	"context"
	"fmt"
	"strings"

	"github.com/MKhiriev/onelock/models"
)

const (
	FieldID         = "id"
	FieldTitle      = "title"
	FieldSecret     = "password"
	FieldCategory   = "category"
	FieldTimestamps = "timestamps"
)

// CredentialValidator validates vault records, user input and patches.
// Both value and pointer forms are accepted, and validation can be scoped
// to a subset of fields.
type CredentialValidator struct{}

// NewCredentialValidator constructs a CredentialValidator and returns it
// as the Validator interface.
func NewCredentialValidator() Validator {
	return &CredentialValidator{}
}

// Validate dispatches on the dynamic type of obj.
//
// Supported types:
//   - models.Credential / *models.Credential
//   - models.CredentialInput / *models.CredentialInput
//   - models.CredentialPatch / *models.CredentialPatch
//   - []models.Credential
func (v *CredentialValidator) Validate(ctx context.Context, obj any, fields ...string) error {
	switch value := obj.(type) {
	case models.Credential:
		return v.validateCredential(ctx, value, fields...)
	case *models.Credential:
		return v.validateCredential(ctx, *value, fields...)

	case models.CredentialInput:
		return v.validateInput(ctx, value, fields...)
	case *models.CredentialInput:
		return v.validateInput(ctx, *value, fields...)

	case models.CredentialPatch:
		return v.validatePatch(ctx, value)
	case *models.CredentialPatch:
		return v.validatePatch(ctx, *value)

	case []models.Credential:
		return v.validateCredentials(ctx, value, fields...)

	default:
		return ErrUnsupportedType
	}
}

// validateCredential checks a persisted record.
//
// Default fields: id, title, password, category, timestamps.
func (v *CredentialValidator) validateCredential(_ context.Context, c models.Credential, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldID, FieldTitle, FieldSecret, FieldCategory, FieldTimestamps}
	}

	for _, f := range fields {
		switch f {
		case FieldID:
			if strings.TrimSpace(c.ID) == "" {
				return ErrEmptyID
			}
		case FieldTitle:
			if strings.TrimSpace(c.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldSecret:
			if c.Secret == "" {
				return ErrEmptySecret
			}
		case FieldCategory:
			if !c.Category.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidCategory, c.Category)
			}
		case FieldTimestamps:
			if c.CreatedAt.IsZero() || c.UpdatedAt.IsZero() {
				return ErrMissingTimestamps
			}
			if c.UpdatedAt.Before(c.CreatedAt) {
				return ErrInvalidTimestamps
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validateInput checks user-supplied data for a new record. An empty
// category is allowed and later defaults to Other.
func (v *CredentialValidator) validateInput(_ context.Context, in models.CredentialInput, fields ...string) error {
	if len(fields) == 0 {
		fields = []string{FieldTitle, FieldSecret, FieldCategory}
	}

	for _, f := range fields {
		switch f {
		case FieldTitle:
			if strings.TrimSpace(in.Title) == "" {
				return ErrEmptyTitle
			}
		case FieldSecret:
			if in.Secret == "" {
				return ErrEmptySecret
			}
		case FieldCategory:
			if in.Category != "" && !in.Category.Valid() {
				return fmt.Errorf("%w: %q", ErrInvalidCategory, in.Category)
			}
		default:
			return ErrUnknownField
		}
	}

	return nil
}

// validatePatch rejects empty patches and patches that would blank a
// required field.
func (v *CredentialValidator) validatePatch(_ context.Context, p models.CredentialPatch) error {
	if p.IsEmpty() {
		return ErrNoFieldsToUpdate
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return ErrEmptyTitle
	}
	if p.Secret != nil && *p.Secret == "" {
		return ErrEmptySecret
	}
	if p.Category != nil && !p.Category.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidCategory, *p.Category)
	}
	return nil
}

// validateCredentials validates every record and enforces id uniqueness
// across the slice.
func (v *CredentialValidator) validateCredentials(ctx context.Context, list []models.Credential, fields ...string) error {
	seen := make(map[string]struct{}, len(list))
	for i, c := range list {
		if err := v.validateCredential(ctx, c, fields...); err != nil {
			return fmt.Errorf("record %d: %w", i, err)
		}
		if _, dup := seen[c.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = struct{}{}
	}
	return nil
}
