// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package passwords generates random secrets and scores password strength.
package passwords

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"strings"
)

const (
	lowercaseSet = "abcdefghijklmnopqrstuvwxyz"
	uppercaseSet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	numberSet    = "0123456789"
	symbolSet    = "!@#$%^&*()_+-=[]{}|;:,.<>?"
)

const (
	MinLength = 4
	MaxLength = 128

	DefaultLength    = 16
	DefaultWordCount = 4
	DefaultPINLength = 6

	maxWordCount = 12
	maxPINLength = 32
)

var words = []string{
	"apple", "banana", "cherry", "dragon", "eagle", "forest", "garden", "house",
	"island", "jungle", "knight", "ladder", "mountain", "ocean", "palace", "queen",
	"river", "sunset", "tower", "umbrella", "village", "water", "yellow", "zebra",
	"bright", "clever", "daring", "elegant", "fierce", "gentle", "happy", "intense",
	"joyful", "kind", "lively", "magic", "noble", "optimistic", "peaceful", "quick",
	"radiant", "strong", "tranquil", "unique", "vibrant", "wise", "excellent", "fantastic",
}

var memorableSymbols = []string{"!", "@", "#", "$", "%"}

// Options selects the length and character classes of a random password.
type Options struct {
	Length    int  `json:"length"`
	Lowercase bool `json:"includeLowercase"`
	Uppercase bool `json:"includeUppercase"`
	Numbers   bool `json:"includeNumbers"`
	Symbols   bool `json:"includeSymbols"`
}

// DefaultOptions enables every character class.
func DefaultOptions() Options {
	return Options{Length: DefaultLength, Lowercase: true, Uppercase: true, Numbers: true, Symbols: true}
}

func (o Options) charset() string {
	var b strings.Builder
	if o.Lowercase {
		b.WriteString(lowercaseSet)
	}
	if o.Uppercase {
		b.WriteString(uppercaseSet)
	}
	if o.Numbers {
		b.WriteString(numberSet)
	}
	if o.Symbols {
		b.WriteString(symbolSet)
	}
	return b.String()
}

// Generate returns a password of o.Length characters drawn uniformly from
// the enabled classes.
func Generate(o Options) (string, error) {
	if o.Length < MinLength || o.Length > MaxLength {
		return "", fmt.Errorf("%w: length must be between %d and %d", ErrInvalidLength, MinLength, MaxLength)
	}
	charset := o.charset()
	if charset == "" {
		return "", ErrEmptyCharset
	}

	out := make([]byte, o.Length)
	for i := range out {
		n, err := randIndex(len(charset))
		if err != nil {
			return "", err
		}
		out[i] = charset[n]
	}
	return string(out), nil
}

// Memorable joins wordCount dictionary words with dashes and appends a
// number below 100 and a symbol, e.g. "river-magic-noble-wise42!".
func Memorable(wordCount int) (string, error) {
	if wordCount < 1 || wordCount > maxWordCount {
		return "", fmt.Errorf("%w: word count must be between 1 and %d", ErrInvalidLength, maxWordCount)
	}

	picked := make([]string, wordCount)
	for i := range picked {
		n, err := randIndex(len(words))
		if err != nil {
			return "", err
		}
		picked[i] = words[n]
	}

	number, err := randIndex(100)
	if err != nil {
		return "", err
	}
	symbol, err := randIndex(len(memorableSymbols))
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s%d%s", strings.Join(picked, "-"), number, memorableSymbols[symbol]), nil
}

// PIN returns length random decimal digits.
func PIN(length int) (string, error) {
	if length < 1 || length > maxPINLength {
		return "", fmt.Errorf("%w: PIN length must be between 1 and %d", ErrInvalidLength, maxPINLength)
	}

	out := make([]byte, length)
	for i := range out {
		n, err := randIndex(10)
		if err != nil {
			return "", err
		}
		out[i] = numberSet[n]
	}
	return string(out), nil
}

func randIndex(n int) (int, error) {
	v, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0, fmt.Errorf("read random: %w", err)
	}
	return int(v.Int64()), nil
}
