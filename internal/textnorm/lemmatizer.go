package textnorm

import (
	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// NewEnglishLemmatizer loads the English golem dictionary. Loading decompresses the
// full dictionary, so build it once per process and share it; lookups are read-only.
func NewEnglishLemmatizer() (Lemmatizer, error) {
	lemmatizer, err := golem.New(en.New())
	if err != nil {
		return nil, &ResourceUnavailableError{Resource: "english lemmatizer", Cause: err}
	}
	return lemmatizer, nil
}
