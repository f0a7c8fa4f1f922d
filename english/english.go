// Package english provides analyzers for the non-Hebrew (Latin script) tokens
// of mixed text. Both types implement stream.TermLemmatizer.
//
// Lemmatizer maps inflected forms to dictionary forms using a bundled English
// word list. Stemmer applies the Snowball (Porter2) algorithm, which also
// handles words missing from the list but yields stems that are not always
// real words ("running" -> "run", "happiness" -> "happi").
//
// All functions are safe for concurrent use by multiple goroutines.
package english

import (
	"fmt"
	"strings"
	"sync"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
	"github.com/kljensen/snowball/english"
)

var (
	lemmatizer *golem.Lemmatizer
	initOnce   sync.Once
	initErr    error
)

func load() (*golem.Lemmatizer, error) {
	initOnce.Do(func() {
		lemmatizer, initErr = golem.New(en.New())
		if initErr != nil {
			initErr = fmt.Errorf("english: loading dictionary: %w", initErr)
		}
	})
	return lemmatizer, initErr
}

// Lemmatizer reduces English words to their dictionary lemma.
type Lemmatizer struct {
	lem *golem.Lemmatizer
}

// NewLemmatizer returns a Lemmatizer. The dictionary is decoded once per
// process and shared by every Lemmatizer.
func NewLemmatizer() (*Lemmatizer, error) {
	lem, err := load()
	if err != nil {
		return nil, err
	}
	return &Lemmatizer{lem: lem}, nil
}

// Lemma returns the lemma of term, lowercased. Unknown words are returned
// lowercased and otherwise unchanged.
func (l *Lemmatizer) Lemma(term string) string {
	return l.lem.Lemma(strings.ToLower(term))
}

// Lemmas returns every known lemma of term, or the lowercased term itself
// when the word is unknown.
func (l *Lemmatizer) Lemmas(term string) []string {
	term = strings.ToLower(term)
	if lemmas := l.lem.Lemmas(term); len(lemmas) > 0 {
		return lemmas
	}
	return []string{term}
}

// Stemmer reduces English words to their Snowball stem.
type Stemmer struct{}

// Stem returns the stem of term. Stop words are returned unchanged.
func (Stemmer) Stem(term string) string {
	return english.Stem(term, false)
}

// Lemmas returns the stem of term as its only lemma.
func (s Stemmer) Lemmas(term string) []string {
	return []string{s.Stem(term)}
}
