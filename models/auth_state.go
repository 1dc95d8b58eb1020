// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// AuthState is the snapshot a UI shell needs to pick its first screen.
type AuthState struct {
	IsFirstLaunch      bool   `json:"isFirstLaunch"`
	BiometricAvailable bool   `json:"biometricAvailable"`
	BiometricEnabled   bool   `json:"biometricEnabled"`
	Username           string `json:"username,omitempty"`
	IsUnlocked         bool   `json:"isUnlocked"`
}
