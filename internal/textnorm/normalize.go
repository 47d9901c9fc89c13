// Package textnorm cleans free text into a normalized token stream: lowercase,
// stopwords and punctuation removed, words reduced to their lemma.
package textnorm

import (
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/unicode/norm"
)

// Normalizer turns raw text into NormalizedText. It is read-only after construction
// and safe for concurrent use as long as its Tokenizer and Lemmatizer are.
type Normalizer struct {
	tokenizer  Tokenizer
	lemmatizer Lemmatizer
	stopwords  map[string]struct{}
	logger     *zap.Logger
}

// Option configures a Normalizer.
type Option func(*Normalizer)

// WithTokenizer replaces the default regexp tokenizer.
func WithTokenizer(t Tokenizer) Option {
	return func(n *Normalizer) { n.tokenizer = t }
}

// WithLemmatizer enables lemmatization. A nil lemmatizer disables it.
func WithLemmatizer(l Lemmatizer) Option {
	return func(n *Normalizer) { n.lemmatizer = l }
}

// WithStopwords replaces the default stopword set.
func WithStopwords(words map[string]struct{}) Option {
	return func(n *Normalizer) { n.stopwords = words }
}

// WithLogger sets the logger used to report degraded cleaning.
func WithLogger(logger *zap.Logger) Option {
	return func(n *Normalizer) {
		if logger != nil {
			n.logger = logger
		}
	}
}

// New creates a Normalizer. Without WithLemmatizer no lemmatization is applied.
func New(opts ...Option) *Normalizer {
	n := &Normalizer{
		tokenizer: RegexpTokenizer{},
		stopwords: DefaultStopwords(),
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(n)
	}
	return n
}

// NewDefault creates a Normalizer backed by the English dictionary lemmatizer.
// When the dictionary cannot be loaded the failure is logged and the Normalizer
// cleans without lemmatization.
func NewDefault(logger *zap.Logger) *Normalizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	lemmatizer, err := NewEnglishLemmatizer()
	if err != nil {
		logger.Warn("lemmatizer fallback", zap.Error(err))
		return New(WithLogger(logger))
	}
	return New(WithLogger(logger), WithLemmatizer(lemmatizer))
}

// Lemmatizes reports whether the Normalizer applies lemmatization.
func (n *Normalizer) Lemmatizes() bool {
	return n.lemmatizer != nil
}

// Clean lowercases, tokenizes, drops stopwords and punctuation, lemmatizes and joins
// the surviving tokens with single spaces. It never fails: a tokenizer error degrades
// to a whitespace split with stopword removal only.
func (n *Normalizer) Clean(raw string) string {
	text := strings.ToLower(norm.NFKC.String(raw))
	text = strings.ReplaceAll(text, "’", "'")

	tokens, err := n.tokenizer.Tokenize(text)
	if err != nil {
		n.logger.Warn("tokenizer failed, using whitespace split", zap.Error(err))
		return n.naiveClean(text)
	}

	kept := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if n.isStopword(token) || !hasAlnum(token) {
			continue
		}
		if n.lemmatizer != nil {
			token = n.lemma(token)
			if n.isStopword(token) {
				continue
			}
		}
		kept = append(kept, token)
	}
	return strings.Join(kept, " ")
}

// lemma returns the base form of token when it is a well-formed word that maps to
// itself on a second lookup; otherwise the token is kept as is. This keeps Clean
// idempotent.
func (n *Normalizer) lemma(token string) string {
	lemma := strings.ToLower(n.lemmatizer.Lemma(token))
	if lemma == "" || lemma == token || !isWord(lemma) {
		return token
	}
	if strings.ToLower(n.lemmatizer.Lemma(lemma)) != lemma {
		return token
	}
	return lemma
}

func (n *Normalizer) naiveClean(text string) string {
	fields := strings.Fields(text)
	kept := fields[:0]
	for _, field := range fields {
		if !n.isStopword(field) {
			kept = append(kept, field)
		}
	}
	return strings.Join(kept, " ")
}

func (n *Normalizer) isStopword(token string) bool {
	_, ok := n.stopwords[token]
	return ok
}
