// Package tokenizer splits mixed Hebrew/non-Hebrew text into tokens with
// rune offsets and a type classification.
//
// The package provides two API layers:
//
//   - Streaming: a Tokenizer pulls runes from an io.RuneReader and returns
//     one Token per Next call, reading no further ahead than the current
//     token needs. Next returns io.EOF once the input is exhausted, and
//     keeps returning it.
//
//   - Convenience: Tokens and Words tokenize a whole string.
//
// Offsets count runes from the start of the stream. Start and End are
// monotonic and never overlap across tokens. End-Start equals the rune
// length of Text except when the scanner consumed runes that are not part
// of the text: niqqud, a stripped Hebrew prefix, a dropped quote or a
// trailing exact-match marker.
//
// A Tokenizer is owned by a single goroutine. Special-case trees passed to
// WithSpecialCases are only read and may be shared.
//
// Known limitations:
//
//   - Hebrew prefixes before a gershayim are only stripped for single
//     letters (ה"מכונית). Two-letter prefixes before a quote are kept as an
//     acronym.
//   - Maqaf (U+05BE) and hyphens always separate tokens.
//   - Tokens longer than 255 runes are split.
//   - Presentation forms and Yiddish ligatures are Hebrew letters but are
//     kept in Text as written; folding happens in the lemmatizer.
package tokenizer

import (
	"fmt"
	"io"
	"strings"

	"github.com/rlebowitz/HebMorph/hebrew"
	"github.com/rlebowitz/HebMorph/radix"
)

// maxTokenLen is the longest token text in runes. Longer runs are split.
const maxTokenLen = 255

// Token is a single lexical unit.
type Token struct {
	Text  string    `json:"text"`  // Surface text, after prefix or niqqud stripping
	Type  TokenType `json:"type"`  // Classification flags
	Start int       `json:"start"` // Rune offset in the stream (inclusive)
	End   int       `json:"end"`   // Rune offset in the stream (exclusive)
}

// String returns a debug representation, e.g. Hebrew|Exact("בדיקה")[0:6].
func (t Token) String() string {
	return fmt.Sprintf("%s(%q)[%d:%d]", t.Type, t.Text, t.Start, t.End)
}

// Option configures a Tokenizer.
type Option func(*Tokenizer)

// WithExactMarker enables the exact-match suffix operator. A marker rune
// immediately following a Hebrew run is consumed and sets Exact on the
// token. A zero rune disables the feature.
func WithExactMarker(marker rune) Option {
	return func(t *Tokenizer) {
		t.class.Marker = marker
	}
}

// WithSpecialCases sets literal tokens (e.g. "C++") that are emitted whole
// instead of being split by character class. A nil or empty tree disables
// special cases.
func WithSpecialCases[V any](cases *radix.Tree[V]) Option {
	return func(t *Tokenizer) {
		if cases == nil || cases.Len() == 0 {
			t.special, t.specialMax = nil, 0
			return
		}
		t.special = func(in []rune, start int) int {
			n, _, ok := cases.LongestPrefix(in, start)
			if !ok {
				return 0
			}
			return n
		}
		t.specialMax = cases.MaxKeyLen()
	}
}

// Tokenizer is a pull-based scanner over a rune stream.
type Tokenizer struct {
	src   source
	class hebrew.Classifier

	// special returns the length of the longest special case at in[start:],
	// or 0.
	special    func(in []rune, start int) int
	specialMax int

	text []rune // runes of the token being scanned
	offs []int  // absolute offset of each rune in text
}

// New returns a Tokenizer reading from r.
func New(r io.RuneReader, opts ...Option) *Tokenizer {
	t := &Tokenizer{
		src:  source{r: r},
		text: make([]rune, 0, 32),
		offs: make([]int, 0, 32),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewString returns a Tokenizer reading from s.
func NewString(s string, opts ...Option) *Tokenizer {
	return New(strings.NewReader(s), opts...)
}

// Offset returns the absolute rune offset of the next unread rune.
func (t *Tokenizer) Offset() int {
	return t.src.pos
}

// Next returns the next token. At the end of input it returns a zero Token
// and io.EOF, on this and every later call. Any other error from the reader
// is returned unchanged once the token scanned before it has been emitted.
func (t *Tokenizer) Next() (Token, error) {
	for {
		r, ok := t.src.peek(0)
		if !ok {
			return Token{}, t.src.failure()
		}

		if tok, ok := t.scanSpecial(); ok {
			return tok, nil
		}

		switch t.class.Classify(r) {
		case hebrew.Letter, hebrew.Foreign, hebrew.Digit:
			return t.scanWord(), nil
		default:
			// Separators, stray quotes, niqqud and unattached markers.
			t.src.advance(1)
		}
	}
}

// Tokens returns every token of s.
func Tokens(s string, opts ...Option) []Token {
	if s == "" {
		return nil
	}
	t := NewString(s, opts...)
	var tokens []Token
	for {
		tok, err := t.Next()
		if err != nil {
			return tokens
		}
		tokens = append(tokens, tok)
	}
}

// Words returns the text of every Hebrew and NonHebrew token of s.
// Numeric tokens are skipped.
func Words(s string) []string {
	tokens := Tokens(s)
	if tokens == nil {
		return nil
	}
	words := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Type&Numeric == 0 {
			words = append(words, tok.Text)
		}
	}
	return words
}
