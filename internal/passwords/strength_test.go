package passwords

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheck(t *testing.T) {
	tests := []struct {
		name         string
		password     string
		wantScore    int
		wantLevel    Level
		wantFeedback string
	}{
		{name: "empty", password: "", wantScore: 10, wantLevel: LevelWeak, wantFeedback: "Use at least 8 characters"},
		{name: "common password", password: "password", wantScore: 0, wantLevel: LevelWeak, wantFeedback: "Avoid common passwords"},
		{name: "common password any case", password: "PassWord", wantScore: 0, wantLevel: LevelWeak, wantFeedback: "Avoid common passwords"},
		{name: "sequential pattern", password: "Xyz123Abcd!", wantScore: 50, wantLevel: LevelMedium, wantFeedback: "Avoid common patterns"},
		{name: "medium", password: "sunsetriver", wantScore: 35, wantLevel: LevelMedium, wantFeedback: "Add uppercase letters"},
		{name: "strong", password: "Tr0ub4dor&3xyzQ", wantScore: 80, wantLevel: LevelStrong, wantFeedback: "Good password strength"},
		{name: "repeated characters", password: "aaaaaaaaaaaaaB1!", wantScore: 70, wantLevel: LevelStrong, wantFeedback: "Use more unique characters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Check(tt.password)
			assert.Equal(t, tt.wantScore, got.Score)
			assert.Equal(t, tt.wantLevel, got.Level)
			assert.Contains(t, got.Feedback, tt.wantFeedback)
		})
	}
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, LevelWeak, levelFor(29))
	assert.Equal(t, LevelMedium, levelFor(30))
	assert.Equal(t, LevelStrong, levelFor(60))
	assert.Equal(t, LevelVeryStrong, levelFor(85))
}

func TestIsCommonPassword(t *testing.T) {
	assert.True(t, IsCommonPassword("QWERTY"))
	assert.True(t, IsCommonPassword("letmein"))
	assert.False(t, IsCommonPassword("letmein2"))
}
