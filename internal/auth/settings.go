package auth

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/onelock/internal/kv"
	"github.com/MKhiriev/onelock/models"
)

// GetSettings reads the persisted preferences. Missing or unreadable
// values fall back to their defaults.
func (m *Manager) GetSettings(ctx context.Context) models.UserSettings {
	settings := models.DefaultSettings()

	if v, ok := m.kv.Lookup(ctx, kv.KeyUsername); ok {
		settings.Username = v
	}
	if v, ok := m.kv.Lookup(ctx, kv.KeyBiometricEnabled); ok {
		settings.BiometricEnabled = v == "true"
	}
	if v, ok := m.kv.Lookup(ctx, kv.KeyAutoLockMinutes); ok {
		if n, err := strconv.Atoi(v); err == nil && (n > 0 || n == models.NeverLock) {
			settings.AutoLockMinutes = n
		}
	}
	if v, ok := m.kv.Lookup(ctx, kv.KeyTheme); ok && models.Theme(v).Valid() {
		settings.Theme = models.Theme(v)
	}
	if v, ok := m.kv.Lookup(ctx, kv.KeyUserType); ok && models.UserType(v) == models.UserTypeMaster {
		settings.UserType = models.UserTypeMaster
	}

	return settings
}

// UpdateSettings validates patch and writes the changed fields in one
// batch. Enabling biometrics on a host without a sensor fails with
// [ErrBiometricUnavailable].
func (m *Manager) UpdateSettings(ctx context.Context, patch models.SettingsPatch) (models.UserSettings, error) {
	if err := patch.Validate(); err != nil {
		return models.UserSettings{}, fmt.Errorf("%w: %w", ErrInvalidSettings, err)
	}
	if patch.BiometricEnabled != nil && *patch.BiometricEnabled && !m.bio.Available(ctx) {
		return models.UserSettings{}, ErrBiometricUnavailable
	}

	entries := make(map[string]string)
	if patch.Username != nil {
		entries[kv.KeyUsername] = *patch.Username
	}
	if patch.BiometricEnabled != nil {
		entries[kv.KeyBiometricEnabled] = strconv.FormatBool(*patch.BiometricEnabled)
	}
	if patch.AutoLockMinutes != nil {
		entries[kv.KeyAutoLockMinutes] = strconv.Itoa(*patch.AutoLockMinutes)
	}
	if patch.Theme != nil {
		entries[kv.KeyTheme] = string(*patch.Theme)
	}

	if len(entries) > 0 {
		if err := m.kv.SetMany(ctx, entries); err != nil {
			return models.UserSettings{}, err
		}
	}

	return m.GetSettings(ctx), nil
}

// settingsEntries renders settings as key-value pairs.
func settingsEntries(s models.UserSettings) map[string]string {
	return map[string]string{
		kv.KeyUsername:         s.Username,
		kv.KeyBiometricEnabled: strconv.FormatBool(s.BiometricEnabled),
		kv.KeyAutoLockMinutes:  strconv.Itoa(s.AutoLockMinutes),
		kv.KeyTheme:            string(s.Theme),
		kv.KeyUserType:         string(s.UserType),
	}
}

// SetLastUnlockTime records now as the start of the inactivity window.
func (m *Manager) SetLastUnlockTime(ctx context.Context) error {
	return m.kv.Set(ctx, kv.KeyLastUnlockTime, m.now().UTC().Format(time.RFC3339Nano))
}

// LastUnlockTime returns the recorded unlock time, if any.
func (m *Manager) LastUnlockTime(ctx context.Context) (time.Time, bool) {
	v, ok := m.kv.Lookup(ctx, kv.KeyLastUnlockTime)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ShouldAutoLock reports whether the inactivity timeout has elapsed. It
// never locks with [models.NeverLock] and always locks when no unlock
// time is recorded.
func (m *Manager) ShouldAutoLock(ctx context.Context) bool {
	settings := m.GetSettings(ctx)
	if settings.AutoLockMinutes == models.NeverLock {
		return false
	}

	last, ok := m.LastUnlockTime(ctx)
	if !ok {
		return true
	}

	return autoLockDue(settings.AutoLockMinutes, m.now().Sub(last))
}

func autoLockDue(minutes int, elapsed time.Duration) bool {
	if minutes == models.NeverLock {
		return false
	}
	return time.Duration(minutes)*time.Minute-elapsed <= 0
}

// EnforceAutoLock locks an unlocked session whose timeout has elapsed and
// reports whether it did.
func (m *Manager) EnforceAutoLock(ctx context.Context) bool {
	if !m.IsUnlocked() || !m.ShouldAutoLock(ctx) {
		return false
	}
	m.Lock()
	m.logger.Info().Str("func", "*Manager.EnforceAutoLock").Msg("session auto-locked")
	return true
}
