package infrastructure

import (
	"strings"

	"github.com/yourusername/media-fetch-go/internal/domain"
)

// maxDetailLen caps the engine detail surfaced to the user
const maxDetailLen = 200

// substring rules, checked in order
var failureRules = []struct {
	substring string
	kind      domain.FailureKind
}{
	{"Private video", domain.FailurePrivate},
	{"Members only", domain.FailureMembersOnly},
	{"Content warning", domain.FailureAgeRestricted},
	{"age-restricted", domain.FailureAgeRestricted},
}

// ClassifyFailure buckets an engine failure for user messaging. The
// classification is advisory only and never changes control flow.
func ClassifyFailure(err error) domain.FailureKind {
	if err == nil {
		return domain.FailureGeneric
	}
	msg := err.Error()
	for _, rule := range failureRules {
		if strings.Contains(msg, rule.substring) {
			return rule.kind
		}
	}
	return domain.FailureGeneric
}

// FailureMessage renders the user-facing message for an engine failure
func FailureMessage(err error) string {
	switch ClassifyFailure(err) {
	case domain.FailurePrivate:
		return "This video is private."
	case domain.FailureMembersOnly:
		return "This video is for members only."
	case domain.FailureAgeRestricted:
		return "Age-restricted content. Please log in on the source site first."
	default:
		return "Error: " + Truncate(err.Error(), maxDetailLen)
	}
}

// Truncate limits a string to at most n characters
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
