// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package models holds the data types shared by the vault, the
// authentication manager and the outer surfaces (CLI, HTTP API).
package models

import "time"

// Credential is a single vault record. The secret is serialised under the
// "password" key so that datasets exported by older clients stay readable.
type Credential struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Username   string    `json:"username,omitempty"`
	Email      string    `json:"email,omitempty"`
	URL        string    `json:"url,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	Secret     string    `json:"password"`
	Category   Category  `json:"category"`
	IsFavorite bool      `json:"isFavorite"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// CredentialInput is a record as supplied by the user, before the vault
// assigns an id and timestamps.
type CredentialInput struct {
	Title      string   `json:"title"`
	Username   string   `json:"username,omitempty"`
	Email      string   `json:"email,omitempty"`
	URL        string   `json:"url,omitempty"`
	Notes      string   `json:"notes,omitempty"`
	Secret     string   `json:"password"`
	Category   Category `json:"category"`
	IsFavorite bool     `json:"isFavorite"`
}

// CredentialPatch describes a partial update. Nil fields are left unchanged.
type CredentialPatch struct {
	Title      *string   `json:"title,omitempty"`
	Username   *string   `json:"username,omitempty"`
	Email      *string   `json:"email,omitempty"`
	URL        *string   `json:"url,omitempty"`
	Notes      *string   `json:"notes,omitempty"`
	Secret     *string   `json:"password,omitempty"`
	Category   *Category `json:"category,omitempty"`
	IsFavorite *bool     `json:"isFavorite,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p CredentialPatch) IsEmpty() bool {
	return p.Title == nil && p.Username == nil && p.Email == nil && p.URL == nil &&
		p.Notes == nil && p.Secret == nil && p.Category == nil && p.IsFavorite == nil
}

// Apply copies every non-nil field of p onto c. Timestamps are not touched.
func (p CredentialPatch) Apply(c *Credential) {
	if p.Title != nil {
		c.Title = *p.Title
	}
	if p.Username != nil {
		c.Username = *p.Username
	}
	if p.Email != nil {
		c.Email = *p.Email
	}
	if p.URL != nil {
		c.URL = *p.URL
	}
	if p.Notes != nil {
		c.Notes = *p.Notes
	}
	if p.Secret != nil {
		c.Secret = *p.Secret
	}
	if p.Category != nil {
		c.Category = *p.Category
	}
	if p.IsFavorite != nil {
		c.IsFavorite = *p.IsFavorite
	}
}

// NewCredential builds a record from in with the given id and creation time.
func NewCredential(id string, in CredentialInput, now time.Time) Credential {
	category := in.Category
	if category == "" {
		category = CategoryOther
	}
	return Credential{
		ID:         id,
		Title:      in.Title,
		Username:   in.Username,
		Email:      in.Email,
		URL:        in.URL,
		Notes:      in.Notes,
		Secret:     in.Secret,
		Category:   category,
		IsFavorite: in.IsFavorite,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// Redacted returns a copy of c with the secret blanked, for listings.
func (c Credential) Redacted() Credential {
	c.Secret = ""
	return c
}
