package infrastructure

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

func TestClassifyFailure(t *testing.T) {
	tests := []struct {
		name     string
		message  string
		expected domain.FailureKind
	}{
		{"private video", "ERROR: Private video. Sign in if you've been granted access", domain.FailurePrivate},
		{"members only", "ERROR: Join this channel. Members only content", domain.FailureMembersOnly},
		{"content warning", "ERROR: Content warning: this video may be inappropriate", domain.FailureAgeRestricted},
		{"age restricted", "ERROR: This video is age-restricted", domain.FailureAgeRestricted},
		{"anything else", "ERROR: Unsupported URL", domain.FailureGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyFailure(errors.New(tt.message)))
		})
	}
}

func TestClassifyFailure_NilError(t *testing.T) {
	assert.Equal(t, domain.FailureGeneric, ClassifyFailure(nil))
}

func TestFailureMessage_GenericTruncates(t *testing.T) {
	long := "ERROR: " + strings.Repeat("x", 500)

	msg := FailureMessage(errors.New(long))

	assert.True(t, strings.HasPrefix(msg, "Error: "))
	assert.Len(t, msg, len("Error: ")+maxDetailLen)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abc", 10))
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "", Truncate("", 5))
}
