package logging

import (
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAnonymizeEmail(t *testing.T) {
	a := AnonymizeEmail("ada@example.com")
	b := AnonymizeEmail("ada@example.com")
	c := AnonymizeEmail("grace@example.com")

	assert.Equal(t, a, b, "same address must hash identically")
	assert.NotEqual(t, a, c)
	assert.True(t, strings.HasPrefix(a, "user:"))
	assert.NotContains(t, a, "ada", "address must not leak into the hash")
	assert.Empty(t, AnonymizeEmail(""))
}

func TestSanitizeToken(t *testing.T) {
	assert.Equal(t, "<empty>", SanitizeToken(""))

	got := SanitizeToken("ya29.a0AfH6SMBsecret")
	assert.Equal(t, "[token:20 chars]", got)
	assert.NotContains(t, got, "ya29")
}

func TestErrIsNilSafe(t *testing.T) {
	attr := Err(nil)
	assert.Equal(t, slog.KindGroup, attr.Value.Kind())

	attr = Err(assert.AnError)
	assert.Equal(t, KeyError, attr.Key)
}

func TestSetupLevels(t *testing.T) {
	tests := []struct {
		level string
		want  slog.Level
	}{
		{level: "debug", want: slog.LevelDebug},
		{level: "warn", want: slog.LevelWarn},
		{level: "error", want: slog.LevelError},
		{level: "info", want: slog.LevelInfo},
		{level: "bogus", want: slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger := Setup(tt.level)
			assert.True(t, logger.Enabled(nil, tt.want))
			if tt.want > slog.LevelDebug {
				assert.False(t, logger.Enabled(nil, tt.want-1))
			}
		})
	}
}

func TestWithServiceAndOperation(t *testing.T) {
	base := slog.Default()
	assert.NotNil(t, WithService(base, "gmail"))
	assert.NotNil(t, WithOperation(base, "fetch_inbox"))
	assert.Equal(t, KeyOperation, Operation("x").Key)
	assert.Equal(t, KeyStatus, Status(StatusSuccess).Key)
}
