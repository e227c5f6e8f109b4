// Package hangul projects Korean text onto its initial consonants (chosung)
// so that keywords such as "ㅌㅅㅌ" can find "테스트".
package hangul

import (
	"strings"
	"unicode"
)

const (
	syllableBase  = 0xAC00
	syllableLast  = 0xD7A3
	syllableBlock = 21 * 28 // medial vowels * final consonants

	jamoFirst = 'ㄱ'
	jamoLast  = 'ㅎ'
)

var initials = []rune{
	'ㄱ', 'ㄲ', 'ㄴ', 'ㄷ', 'ㄸ', 'ㄹ', 'ㅁ', 'ㅂ', 'ㅃ', 'ㅅ',
	'ㅆ', 'ㅇ', 'ㅈ', 'ㅉ', 'ㅊ', 'ㅋ', 'ㅌ', 'ㅍ', 'ㅎ',
}

// Initials replaces every precomposed Hangul syllable of text with its leading
// consonant. Other runes are kept in place, so the output has exactly as many
// runes as the input.
func Initials(text string) string {
	var b strings.Builder
	b.Grow(len(text))

	for _, r := range text {
		b.WriteRune(Initial(r))
	}

	return b.String()
}

// Initial returns the leading consonant of a syllable, or r itself when r is
// not a Hangul syllable.
func Initial(r rune) rune {
	if r < syllableBase || r > syllableLast {
		return r
	}

	return initials[(r-syllableBase)/syllableBlock]
}

// IsInitialsOnly reports whether s is non-empty and made only of consonant
// jamo (ㄱ through ㅎ).
func IsInitialsOnly(s string) bool {
	if s == "" {
		return false
	}

	for _, r := range s {
		if r < jamoFirst || r > jamoLast {
			return false
		}
	}

	return true
}

// Normalize removes all whitespace and lower-cases s.
func Normalize(s string) string {
	return strings.ToLower(strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s))
}
