package textnorm

import (
	_ "embed"
	"strings"
)

//go:embed stopwords_en.txt
var stopwordsRaw string

// punctuation mirrors the ASCII punctuation set; every character is a stopword token.
const punctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// DefaultStopwords returns the English stopword list unioned with ASCII punctuation.
// The returned map is a fresh copy.
func DefaultStopwords() map[string]struct{} {
	set := make(map[string]struct{}, 220)
	for _, line := range strings.Split(stopwordsRaw, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			set[word] = struct{}{}
		}
	}
	for _, r := range punctuation {
		set[string(r)] = struct{}{}
	}
	return set
}
