// Package stream combines the tokenizer and the lemmatizer into a single
// pull-based cursor over a rune stream.
//
// Each Next call scans one token and returns it with its lemma candidates.
// Hebrew tokens are lemmatized against the lexicon. Non-Hebrew tokens pass
// through with no candidates unless a TermLemmatizer is configured with
// WithNonHebrew. Numeric tokens always pass through.
//
// A Lemmatizer owns its source and scanning position and must be used by a
// single goroutine. The lexicon and special-case trees are only read, so any
// number of Lemmatizers over independent streams may share them.
package stream

import (
	"errors"
	"io"
	"iter"
	"log/slog"
	"strings"

	"github.com/rlebowitz/HebMorph/morph"
	"github.com/rlebowitz/HebMorph/radix"
	"github.com/rlebowitz/HebMorph/tokenizer"
)

// TermLemmatizer produces lemmas for non-Hebrew terms.
type TermLemmatizer interface {
	Lemmas(term string) []string
}

// Result is one analyzed token.
type Result struct {
	tokenizer.Token
	Candidates []morph.Candidate `json:"candidates,omitempty"`
}

// Option configures a Lemmatizer.
type Option func(*Lemmatizer)

// WithSpecialCases sets literal tokens (e.g. "C++") that are kept whole.
func WithSpecialCases[V any](cases *radix.Tree[V]) Option {
	return func(l *Lemmatizer) {
		l.tokOpts = append(l.tokOpts, tokenizer.WithSpecialCases(cases))
	}
}

// WithExactMarker sets the exact-match suffix operator (e.g. '$').
func WithExactMarker(marker rune) Option {
	return func(l *Lemmatizer) {
		l.tokOpts = append(l.tokOpts, tokenizer.WithExactMarker(marker))
	}
}

// WithNonHebrew sets the lemmatizer used for NonHebrew tokens.
func WithNonHebrew(tl TermLemmatizer) Option {
	return func(l *Lemmatizer) {
		l.nonHebrew = tl
	}
}

// WithLogger sets the logger for source errors. The default discards.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lemmatizer) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// Lemmatizer is a streaming tokenizer + lemmatizer cursor.
type Lemmatizer struct {
	tok       *tokenizer.Tokenizer
	lem       *morph.Lemmatizer
	nonHebrew TermLemmatizer
	logger    *slog.Logger
	tokOpts   []tokenizer.Option

	start, end int
}

// New returns a Lemmatizer reading from r. A nil lexicon is valid and turns
// the cursor into a tokenizer that reports no Hebrew candidates.
func New(r io.RuneReader, lex *morph.Lexicon, opts ...Option) *Lemmatizer {
	l := &Lemmatizer{
		lem:    morph.New(lex),
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	l.tok = tokenizer.New(r, l.tokOpts...)
	l.tokOpts = nil
	return l
}

// NewString returns a Lemmatizer reading from s.
func NewString(s string, lex *morph.Lexicon, opts ...Option) *Lemmatizer {
	return New(strings.NewReader(s), lex, opts...)
}

// Next returns the next token with a freshly allocated candidate slice. At
// the end of input it returns a zero Result and io.EOF, on this and every
// later call.
func (l *Lemmatizer) Next() (Result, error) {
	tok, cands, err := l.AppendNext(nil)
	if err != nil {
		return Result{}, err
	}
	return Result{Token: tok, Candidates: cands}, nil
}

// AppendNext scans the next token and appends its candidates to dst. The
// caller owns dst and truncates it between calls when reusing it; AppendNext
// never clears it. On error dst is returned unchanged.
func (l *Lemmatizer) AppendNext(dst []morph.Candidate) (tokenizer.Token, []morph.Candidate, error) {
	tok, err := l.tok.Next()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			l.logger.Debug("source error", "offset", l.tok.Offset(), "error", err)
		}
		return tokenizer.Token{}, dst, err
	}
	l.start, l.end = tok.Start, tok.End

	switch {
	case tok.Type.Has(tokenizer.Hebrew):
		dst = l.lem.AppendCandidates(dst, tok)
	case tok.Type.Has(tokenizer.NonHebrew) && l.nonHebrew != nil:
		for _, lemma := range l.nonHebrew.Lemmas(tok.Text) {
			dst = append(dst, morph.Candidate{Lemma: lemma})
		}
	}
	return tok, dst, nil
}

// StartOffset returns the start offset of the last returned token.
func (l *Lemmatizer) StartOffset() int {
	return l.start
}

// EndOffset returns the end offset of the last returned token.
func (l *Lemmatizer) EndOffset() int {
	return l.end
}

// All returns an iterator over the remaining results. It stops at the end
// of input; a source error is yielded once as the final pair.
func (l *Lemmatizer) All() iter.Seq2[Result, error] {
	return func(yield func(Result, error) bool) {
		for {
			res, err := l.Next()
			if errors.Is(err, io.EOF) {
				return
			}
			if !yield(res, err) || err != nil {
				return
			}
		}
	}
}

// Analyze returns every result of s. Reading a string cannot fail.
func Analyze(s string, lex *morph.Lexicon, opts ...Option) []Result {
	var out []Result
	for res, err := range NewString(s, lex, opts...).All() {
		if err != nil {
			break
		}
		out = append(out, res)
	}
	return out
}
