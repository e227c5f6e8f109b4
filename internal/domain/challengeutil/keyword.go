package challengeutil

import (
	"strings"

	"github.com/docthru/backend/pkg/hangul"
)

// MatchKeyword reports whether keyword is found in title or description.
// Both sides are compared by their initial consonants, so "ㅌㅅㅌ" and
// "테스트" both find "테스트 챌린지". An empty keyword matches everything.
func MatchKeyword(keyword, title, description string) bool {
	k := hangul.Normalize(keyword)
	if k == "" {
		return true
	}

	if !hangul.IsInitialsOnly(k) {
		k = hangul.Initials(k)
	}

	for _, text := range []string{title, description} {
		if strings.Contains(hangul.Initials(hangul.Normalize(text)), k) {
			return true
		}
	}

	return false
}
