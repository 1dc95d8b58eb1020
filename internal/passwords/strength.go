package passwords

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Level buckets a strength score.
type Level string

const (
	LevelWeak       Level = "weak"
	LevelMedium     Level = "medium"
	LevelStrong     Level = "strong"
	LevelVeryStrong Level = "very-strong"
)

// Strength is the result of Check. Score is clamped to [0, 100].
type Strength struct {
	Score    int      `json:"score"`
	Level    Level    `json:"level"`
	Feedback []string `json:"feedback"`
}

var commonPatterns = []string{"123", "abc", "qwe", "asd", "zxc", "111", "222", "333"}

var commonWords = []string{"password", "admin", "user"}

var commonPasswords = map[string]struct{}{
	"password": {}, "123456": {}, "password123": {}, "admin": {}, "qwerty": {},
	"letmein": {}, "welcome": {}, "monkey": {}, "1234567890": {}, "abc123": {},
	"password1": {}, "123123": {}, "dragon": {}, "master": {}, "hello": {},
}

// Check scores password on length, character variety, uniqueness and
// known weak patterns, and returns advice for each missed criterion.
func Check(password string) Strength {
	var (
		feedback []string
		score    int
	)

	length := utf8.RuneCountInString(password)
	switch {
	case length >= 12:
		score += 25
	case length >= 8:
		score += 15
		feedback = append(feedback, "Consider using at least 12 characters")
	default:
		feedback = append(feedback, "Use at least 8 characters")
	}

	var lower, upper, digit, symbol bool
	unique := make(map[rune]struct{}, length)
	for _, r := range password {
		unique[r] = struct{}{}
		switch {
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case r < unicode.MaxASCII && strings.ContainsRune(symbolSet, r):
			symbol = true
		}
	}

	score += award(lower, 10, "Add lowercase letters", &feedback)
	score += award(upper, 10, "Add uppercase letters", &feedback)
	score += award(digit, 10, "Add numbers", &feedback)
	score += award(symbol, 15, "Add special characters", &feedback)
	score += award(float64(len(unique)) >= float64(length)*0.7, 10, "Use more unique characters", &feedback)

	if hasCommonPattern(password) {
		score -= 20
		feedback = append(feedback, "Avoid common patterns")
	}
	if IsCommonPassword(password) {
		score -= 30
		feedback = append(feedback, "Avoid common passwords")
	}

	score = max(0, min(100, score))

	switch {
	case score >= 85:
		feedback = append(feedback, "Excellent password strength!")
	case score >= 60:
		feedback = append(feedback, "Good password strength")
	}
	if len(feedback) == 0 {
		feedback = []string{"Password meets basic requirements"}
	}

	return Strength{Score: score, Level: levelFor(score), Feedback: feedback}
}

// IsCommonPassword reports whether password is on the built-in list of
// widely breached passwords, ignoring case.
func IsCommonPassword(password string) bool {
	_, ok := commonPasswords[strings.ToLower(password)]
	return ok
}

func award(ok bool, points int, advice string, feedback *[]string) int {
	if ok {
		return points
	}
	*feedback = append(*feedback, advice)
	return 0
}

func hasCommonPattern(password string) bool {
	for _, p := range commonPatterns {
		if strings.Contains(password, p) {
			return true
		}
	}
	lowered := strings.ToLower(password)
	for _, w := range commonWords {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}

func levelFor(score int) Level {
	switch {
	case score < 30:
		return LevelWeak
	case score < 60:
		return LevelMedium
	case score < 85:
		return LevelStrong
	default:
		return LevelVeryStrong
	}
}
