package challengeutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatchKeyword(t *testing.T) {
	tests := []struct {
		name        string
		keyword     string
		title       string
		description string
		want        bool
	}{
		{name: "initials in title", keyword: "ㅌㅅㅌ", title: "테스트 챌린지", want: true},
		{name: "initials do not match", keyword: "ㅌㅅㅌ", title: "샘플 작업", want: false},
		{name: "initials across a space", keyword: "ㅌㅅㅌㅊ", title: "테스트 챌린지", want: true},
		{name: "initials in description", keyword: "ㅂㅇ", title: "Next", description: "공식 문서 번역", want: true},
		{name: "syllables", keyword: "테스트", title: "테스트 챌린지", want: true},
		{name: "syllables match by initials", keyword: "타수트", title: "테스트 챌린지", want: true},
		{name: "latin ignores case and spaces", keyword: "modern js", title: "Modern JS 가이드", want: true},
		{name: "latin miss", keyword: "react", title: "Modern JS 가이드", description: "자바스크립트", want: false},
		{name: "empty keyword", keyword: "", title: "anything", want: true},
		{name: "whitespace keyword", keyword: "  ", title: "anything", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, MatchKeyword(tt.keyword, tt.title, tt.description))
		})
	}
}

func TestMatchKeyword_Idempotent(t *testing.T) {
	titles := []string{"테스트 챌린지", "샘플 작업", "Modern JS 가이드", "Next.js 공식 문서"}
	keywords := []string{"ㅌㅅㅌ", "테스트", "JS", " ㅅㅍ ", "없음"}

	filter := func(keyword string, in []string) []string {
		out := []string{}
		for _, title := range in {
			if MatchKeyword(keyword, title, "") {
				out = append(out, title)
			}
		}
		return out
	}

	for _, keyword := range keywords {
		once := filter(keyword, titles)
		require.Equal(t, once, filter(keyword, once), keyword)
	}
}
