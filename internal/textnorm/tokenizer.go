package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// Tokenizer splits lowercased text into tokens.
type Tokenizer interface {
	Tokenize(text string) ([]string, error)
}

// Lemmatizer maps a token to its dictionary base form.
// Unknown words are returned unchanged.
type Lemmatizer interface {
	Lemma(word string) string
}

const wordPattern = `[\p{L}\p{N}]+(?:['.+#-][\p{L}\p{N}]+)*[+#]*`

var (
	// tokenRe matches words (including forms like "node.js", "c++", "don't") or a
	// single non-space punctuation rune.
	tokenRe = regexp.MustCompile(wordPattern + `|[^\s\p{L}\p{N}]`)
	wordRe  = regexp.MustCompile(`^` + wordPattern + `$`)
)

// RegexpTokenizer is the default word-boundary tokenizer.
type RegexpTokenizer struct{}

// Tokenize implements Tokenizer.
func (RegexpTokenizer) Tokenize(text string) ([]string, error) {
	return tokenRe.FindAllString(text, -1), nil
}

// isWord reports whether token is a single well-formed word token.
func isWord(token string) bool {
	return wordRe.MatchString(token)
}

// hasAlnum reports whether s contains at least one letter or digit.
func hasAlnum(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool {
		return unicode.IsLetter(r) || unicode.IsDigit(r)
	}) >= 0
}
