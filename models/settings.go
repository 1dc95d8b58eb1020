// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "fmt"

// Theme is the UI colour scheme preference.
type Theme string

const (
	ThemeLight  Theme = "light"
	ThemeDark   Theme = "dark"
	ThemeSystem Theme = "system"
)

// Valid reports whether t is a known theme.
func (t Theme) Valid() bool {
	switch t {
	case ThemeLight, ThemeDark, ThemeSystem:
		return true
	}
	return false
}

// UserType distinguishes a regular local profile from the configured master
// profile that may replace its vault from a remote dataset.
type UserType string

const (
	UserTypeLocal  UserType = "local"
	UserTypeMaster UserType = "master"
)

// NeverLock disables the inactivity timeout.
const NeverLock = -1

// Default settings written at setup and returned when stored values cannot
// be read.
const (
	DefaultAutoLockMinutes = 5
	DefaultTheme           = ThemeLight
)

// UserSettings are the persisted user preferences.
type UserSettings struct {
	Username         string   `json:"username"`
	BiometricEnabled bool     `json:"biometricEnabled"`
	AutoLockMinutes  int      `json:"autoLockMinutes"`
	Theme            Theme    `json:"theme"`
	UserType         UserType `json:"userType,omitempty"`
}

// DefaultSettings returns the settings applied to a freshly set up profile.
func DefaultSettings() UserSettings {
	return UserSettings{
		BiometricEnabled: false,
		AutoLockMinutes:  DefaultAutoLockMinutes,
		Theme:            DefaultTheme,
		UserType:         UserTypeLocal,
	}
}

// SettingsPatch updates settings field by field. Nil fields are kept.
type SettingsPatch struct {
	Username         *string `json:"username,omitempty"`
	BiometricEnabled *bool   `json:"biometricEnabled,omitempty"`
	AutoLockMinutes  *int    `json:"autoLockMinutes,omitempty"`
	Theme            *Theme  `json:"theme,omitempty"`
}

// Validate checks value ranges of the non-nil fields.
func (p SettingsPatch) Validate() error {
	if p.AutoLockMinutes != nil && *p.AutoLockMinutes != NeverLock && *p.AutoLockMinutes <= 0 {
		return fmt.Errorf("auto-lock minutes must be positive or %d, got %d", NeverLock, *p.AutoLockMinutes)
	}
	if p.Theme != nil && !p.Theme.Valid() {
		return fmt.Errorf("unknown theme %q", *p.Theme)
	}
	return nil
}
