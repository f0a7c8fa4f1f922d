// Package morph lemmatizes Hebrew tokens by stripping inflectional prefixes
// and matching the remaining stem against a lexicon.
//
// The package provides two API layers:
//
//   - Structured: Lemmatize and AppendCandidates take a tokenizer.Token and
//     honor its flags. Acronym and Exact tokens are looked up literally;
//     ordinary Hebrew tokens are decomposed into prefix + stem.
//
//   - Convenience: LemmatizeWord decomposes a bare word.
//
// Candidates are returned in discovery order: prefix length ascending (the
// unprefixed reading first), then lexicon-entry order. Ambiguity is
// surfaced, not resolved. A word with no lexicon hit yields no candidates;
// unknown words are frequently proper names and are left to the caller.
//
// A Lemmatizer only reads its lexicon and is safe for concurrent use by
// multiple goroutines once the lexicon is fully built.
//
// Known limitations:
//
//   - Prefix compatibility with the stem's part of speech is not checked:
//     every lexicon hit for every valid prefix split is reported.
//   - Ktiv male spelling variants (doubled vav/yod after a prefix) are not
//     generated.
//   - Presentation forms are folded to their base letter before lookup, but
//     the Yiddish ligatures are not expanded and only match lexicon
//     entries spelled with them.
package morph

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rlebowitz/HebMorph/hebrew"
	"github.com/rlebowitz/HebMorph/radix"
	"github.com/rlebowitz/HebMorph/tokenizer"
)

// minStemLen is the shortest stem, in runes, left after stripping a prefix.
const minStemLen = 2

// Mask carries the morphological category bits of a lexicon entry.
type Mask uint32

const (
	Noun Mask = 1 << iota
	Verb
	Adjective
	Adverb
	ProperName
	Pronoun
	Preposition
	Conjunction
	Numeral
	Abbreviation
	Masculine
	Feminine
	Singular
	Plural
	Construct
)

// maskNames lists the tag of every Mask bit, in bit order.
var maskNames = []struct {
	bit  Mask
	name string
}{
	{Noun, "noun"},
	{Verb, "verb"},
	{Adjective, "adj"},
	{Adverb, "adv"},
	{ProperName, "propn"},
	{Pronoun, "pron"},
	{Preposition, "prep"},
	{Conjunction, "conj"},
	{Numeral, "num"},
	{Abbreviation, "abbr"},
	{Masculine, "masc"},
	{Feminine, "fem"},
	{Singular, "sg"},
	{Plural, "pl"},
	{Construct, "construct"},
}

// String returns the tags joined by '|', e.g. "noun|masc|sg".
func (m Mask) String() string {
	if m == 0 {
		return ""
	}
	var parts []string
	rest := m
	for _, n := range maskNames {
		if m&n.bit != 0 {
			parts = append(parts, n.name)
			rest &^= n.bit
		}
	}
	if rest != 0 {
		parts = append(parts, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(parts, "|")
}

// ParseMask parses tags separated by ',' or '|' (e.g. "noun,masc,sg").
func ParseMask(s string) (Mask, error) {
	var m Mask
	for _, tag := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == '|' }) {
		tag = strings.TrimSpace(tag)
		found := false
		for _, n := range maskNames {
			if n.name == tag {
				m |= n.bit
				found = true
				break
			}
		}
		if !found {
			return 0, fmt.Errorf("morph: unknown tag: %q", tag)
		}
	}
	return m, nil
}

// MarshalJSON encodes the mask as a JSON string (e.g. "noun|masc|sg").
func (m Mask) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "noun|masc|sg") into a Mask.
func (m *Mask) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseMask(s)
	if err != nil {
		return err
	}
	*m = v
	return nil
}

// Entry is one lexicon reading of a surface stem.
type Entry struct {
	Lemma string `json:"lemma"` // Dictionary form
	Mask  Mask   `json:"mask"`  // Category bits
}

// Candidate is one possible lemma of a token.
type Candidate struct {
	Lemma  string `json:"lemma"`            // Dictionary form
	Mask   Mask   `json:"mask"`             // Category bits of the matched entry
	Prefix string `json:"prefix,omitempty"` // Stripped prefix, empty for the unprefixed reading
}

// String returns a debug representation, e.g. ב+ספר[noun|masc|sg].
func (c Candidate) String() string {
	var sb strings.Builder
	if c.Prefix != "" {
		sb.WriteString(c.Prefix)
		sb.WriteByte('+')
	}
	sb.WriteString(c.Lemma)
	if c.Mask != 0 {
		sb.WriteByte('[')
		sb.WriteString(c.Mask.String())
		sb.WriteByte(']')
	}
	return sb.String()
}

// Lexicon maps surface stems to their lexicon entries, in insertion order.
type Lexicon = radix.Tree[[]Entry]

// NewLexicon returns an empty, case-sensitive lexicon.
func NewLexicon() *Lexicon {
	return radix.New[[]Entry](true)
}

// AddEntry appends e to the entries stored under surface.
func AddEntry(lex *Lexicon, surface string, e Entry) {
	old, _ := lex.Get(surface)
	entries := make([]Entry, len(old), len(old)+1)
	copy(entries, old)
	lex.Insert(surface, append(entries, e))
}

// Lemmatizer produces lemma candidates for Hebrew tokens.
type Lemmatizer struct {
	lex *Lexicon
}

// New returns a Lemmatizer over lex. A nil lexicon is valid and yields no
// candidates, which reduces the analyzer to tokenization only.
func New(lex *Lexicon) *Lemmatizer {
	return &Lemmatizer{lex: lex}
}

// Lemmatize returns the candidates of tok in a fresh slice.
func (l *Lemmatizer) Lemmatize(tok tokenizer.Token) []Candidate {
	return l.AppendCandidates(nil, tok)
}

// AppendCandidates appends the candidates of tok to dst and returns the
// extended slice. Tokens without the Hebrew flag add nothing.
func (l *Lemmatizer) AppendCandidates(dst []Candidate, tok tokenizer.Token) []Candidate {
	if l == nil || l.lex == nil || l.lex.Len() == 0 || !tok.Type.Has(tokenizer.Hebrew) {
		return dst
	}
	text := hebrew.FoldString(tok.Text)
	if tok.Type&(tokenizer.Acronym|tokenizer.Exact|tokenizer.Mixed|tokenizer.Custom) != 0 {
		return l.appendLiteral(dst, text)
	}
	return l.appendStripped(dst, []rune(text))
}

// LemmatizeWord decomposes word into every valid prefix + stem split and
// returns the lexicon hits.
func (l *Lemmatizer) LemmatizeWord(word string) []Candidate {
	if l == nil || l.lex == nil || word == "" {
		return nil
	}
	return l.appendStripped(nil, []rune(hebrew.FoldString(word)))
}

// appendLiteral looks text up as-is, with quotes normalized to ASCII.
func (l *Lemmatizer) appendLiteral(dst []Candidate, text string) []Candidate {
	key := hebrew.NormalizeQuotes(text)
	n := len(dst)
	dst = l.appendHits(dst, key, "")
	if len(dst) == n && key != text {
		dst = l.appendHits(dst, text, "")
	}
	return dst
}

// appendStripped tries the unprefixed word first, then every valid prefix
// in ascending length while the stem keeps at least minStemLen runes.
func (l *Lemmatizer) appendStripped(dst []Candidate, word []rune) []Candidate {
	dst = l.appendHits(dst, string(word), "")
	for n := range hebrew.Prefixes(word) {
		if len(word)-n < minStemLen {
			break
		}
		dst = l.appendHits(dst, string(word[n:]), string(word[:n]))
	}
	return dst
}

func (l *Lemmatizer) appendHits(dst []Candidate, stem, prefix string) []Candidate {
	entries, ok := l.lex.Get(stem)
	if !ok {
		return dst
	}
	for _, e := range entries {
		dst = append(dst, Candidate{Lemma: e.Lemma, Mask: e.Mask, Prefix: prefix})
	}
	return dst
}
