// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/onelock/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func ptr[T any](v T) *T { return &v }

func validCredential() models.Credential {
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	return models.Credential{
		ID:        "id-1",
		Title:     "Gmail",
		Secret:    "hunter2",
		Category:  models.CategoryWork,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestNewCredentialValidator(t *testing.T) {
	require.NotNil(t, NewCredentialValidator())
}

func TestValidate_Dispatch(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	c := validCredential()
	in := models.CredentialInput{Title: "x", Secret: "y"}
	patch := models.CredentialPatch{Title: ptr("new")}

	assert.NoError(t, v.Validate(ctx, c))
	assert.NoError(t, v.Validate(ctx, &c))
	assert.NoError(t, v.Validate(ctx, in))
	assert.NoError(t, v.Validate(ctx, &in))
	assert.NoError(t, v.Validate(ctx, patch))
	assert.NoError(t, v.Validate(ctx, &patch))
	assert.NoError(t, v.Validate(ctx, []models.Credential{c}))

	assert.ErrorIs(t, v.Validate(ctx, 42), ErrUnsupportedType)
	assert.ErrorIs(t, v.Validate(ctx, "credential"), ErrUnsupportedType)
}

func TestValidate_Credential(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *models.Credential)
		fields  []string
		wantErr error
	}{
		{name: "valid", mutate: func(c *models.Credential) {}},
		{name: "empty id", mutate: func(c *models.Credential) { c.ID = " " }, wantErr: ErrEmptyID},
		{name: "empty title", mutate: func(c *models.Credential) { c.Title = "" }, wantErr: ErrEmptyTitle},
		{name: "empty secret", mutate: func(c *models.Credential) { c.Secret = "" }, wantErr: ErrEmptySecret},
		{name: "bad category", mutate: func(c *models.Credential) { c.Category = "Games" }, wantErr: ErrInvalidCategory},
		{name: "zero created", mutate: func(c *models.Credential) { c.CreatedAt = time.Time{} }, wantErr: ErrMissingTimestamps},
		{
			name:    "updated before created",
			mutate:  func(c *models.Credential) { c.UpdatedAt = c.CreatedAt.Add(-time.Second) },
			wantErr: ErrInvalidTimestamps,
		},
		{
			name:   "scoped fields skip the rest",
			mutate: func(c *models.Credential) { c.Secret = "" },
			fields: []string{FieldID, FieldTitle},
		},
		{name: "unknown field", mutate: func(c *models.Credential) {}, fields: []string{"colour"}, wantErr: ErrUnknownField},
	}

	v := NewCredentialValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validCredential()
			tt.mutate(&c)
			err := v.Validate(context.Background(), c, tt.fields...)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestValidate_Input(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	assert.NoError(t, v.Validate(ctx, models.CredentialInput{Title: "t", Secret: "s"}), "empty category defaults later")
	assert.ErrorIs(t, v.Validate(ctx, models.CredentialInput{Secret: "s"}), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, models.CredentialInput{Title: "t"}), ErrEmptySecret)
	assert.ErrorIs(t, v.Validate(ctx, models.CredentialInput{Title: "t", Secret: "s", Category: "x"}), ErrInvalidCategory)
	assert.NoError(t, v.Validate(ctx, models.CredentialInput{Title: "t"}, FieldTitle))
}

func TestValidate_Patch(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	assert.ErrorIs(t, v.Validate(ctx, models.CredentialPatch{}), ErrNoFieldsToUpdate)
	assert.ErrorIs(t, v.Validate(ctx, models.CredentialPatch{Title: ptr("  ")}), ErrEmptyTitle)
	assert.ErrorIs(t, v.Validate(ctx, models.CredentialPatch{Secret: ptr("")}), ErrEmptySecret)
	assert.ErrorIs(t, v.Validate(ctx, models.CredentialPatch{Category: ptr(models.Category("x"))}), ErrInvalidCategory)
	assert.NoError(t, v.Validate(ctx, models.CredentialPatch{IsFavorite: ptr(false)}))
	assert.NoError(t, v.Validate(ctx, models.CredentialPatch{Notes: ptr("")}))
}

func TestValidate_List(t *testing.T) {
	v := NewCredentialValidator()
	ctx := context.Background()

	a := validCredential()
	b := validCredential()
	b.ID = "id-2"

	assert.NoError(t, v.Validate(ctx, []models.Credential{}))
	assert.NoError(t, v.Validate(ctx, []models.Credential{a, b}))
	assert.ErrorIs(t, v.Validate(ctx, []models.Credential{a, a}), ErrDuplicateID)

	b.Title = ""
	err := v.Validate(ctx, []models.Credential{a, b})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEmptyTitle)
	assert.Contains(t, err.Error(), "record 1")
}
