package tokenizer

import (
	"github.com/rlebowitz/HebMorph/hebrew"
)

// scanSpecial tries to match a special case at the current position, either
// directly or after a valid Hebrew prefix ("בc++"). A direct match is
// flagged Custom; a prefixed match is reported like any other stripped
// mixed token.
func (t *Tokenizer) scanSpecial() (Token, bool) {
	if t.special == nil {
		return Token{}, false
	}
	win := t.src.window(hebrew.MaxPrefixLen() + t.specialMax + 1)

	if n := t.special(win, 0); n > 0 && t.atBoundary(win, n) {
		return t.emitSpecial(win, 0, n, Custom|runType(win[:n])), true
	}

	for p := range hebrew.Prefixes(win) {
		if p >= len(win) || hebrew.IsLetter(win[p]) {
			continue
		}
		if n := t.special(win, p); n > 0 && t.atBoundary(win, p+n) {
			return t.emitSpecial(win, p, n, runType(win[p:p+n])), true
		}
	}
	return Token{}, false
}

// atBoundary reports whether a special case ending at win[end] does not cut
// through a word. A match ending in punctuation ("c++") is always accepted.
func (t *Tokenizer) atBoundary(win []rune, end int) bool {
	if end >= len(win) {
		return true
	}
	return !isWordClass(t.class.Classify(win[end-1])) || !isWordClass(t.class.Classify(win[end]))
}

func (t *Tokenizer) emitSpecial(win []rune, prefix, n int, typ TokenType) Token {
	tok := Token{
		Text:  string(win[prefix : prefix+n]),
		Type:  typ,
		Start: t.src.pos + prefix,
		End:   t.src.pos + prefix + n,
	}
	t.src.advance(prefix + n)
	return tok
}

// scanWord scans a run of letters and digits starting at the current
// position, which holds a word rune.
//
// Rule priority inside the run (highest first):
//   - Niqqud is consumed and dropped from the text
//   - Quote between Hebrew letters: a single prefix letter before a
//     gershayim is stripped with the quote (ה"מכונית), otherwise the
//     quote is kept and the token becomes an Acronym
//   - Exact marker after a pure Hebrew run is consumed and sets Exact
//   - '.' or ',' between digits of a numeric run is kept, including after
//     a strippable prefix (ב3.14)
//   - Any other non-word rune ends the token without being consumed
func (t *Tokenizer) scanWord() Token {
	t.text, t.offs = t.text[:0], t.offs[:0]
	start := t.src.pos
	var flags TokenType

scan:
	for len(t.text) < maxTokenLen {
		r, ok := t.src.peek(0)
		if !ok {
			break
		}

		switch t.class.Classify(r) {
		case hebrew.Letter, hebrew.Foreign, hebrew.Digit:
			t.push(r)

		case hebrew.Niqqud:
			t.src.advance(1)

		case hebrew.Quote:
			if len(t.text) == 0 || !hebrew.IsLetter(t.text[len(t.text)-1]) {
				break scan
			}
			next, ok := t.src.peek(1)
			if !ok || !hebrew.IsLetter(next) {
				break scan
			}
			if t.quotedPrefix(r) {
				t.text, t.offs = t.text[:0], t.offs[:0]
				t.src.advance(1)
				start = t.src.pos
				continue
			}
			flags |= Acronym
			t.push(r)

		case hebrew.Marker:
			if heb, foreign, digit := count(t.text); heb > 0 && foreign == 0 && digit == 0 {
				t.src.advance(1)
				flags |= Exact
			}
			break scan

		default:
			if (r == '.' || r == ',') && prefixedNumeric(t.text) {
				if next, ok := t.src.peek(1); ok && hebrew.Classify(next) == hebrew.Digit {
					t.push(r)
					continue
				}
			}
			break scan
		}
	}

	return t.finish(start, flags)
}

// push appends the current rune to the token and consumes it.
func (t *Tokenizer) push(r rune) {
	t.text = append(t.text, r)
	t.offs = append(t.offs, t.src.pos)
	t.src.advance(1)
}

// quotedPrefix reports whether the token so far is a lone prefix letter
// introducing a quoted word: prefix letter, gershayim, then at least two
// Hebrew letters. A single letter after the quote is an acronym (ב"ה).
func (t *Tokenizer) quotedPrefix(quote rune) bool {
	if len(t.text) != 1 || !hebrew.IsPrefixLetter(t.text[0]) || !hebrew.IsGershayim(quote) {
		return false
	}
	second, ok := t.src.peek(2)
	return ok && hebrew.IsLetter(second)
}

// finish classifies the scanned run and applies mixed-script prefix
// stripping.
func (t *Tokenizer) finish(start int, flags TokenType) Token {
	heb, foreign, digit := count(t.text)
	var typ TokenType

	switch {
	case heb > 0 && foreign == 0 && digit == 0:
		typ = Hebrew | flags
	case heb == 0 && foreign > 0:
		typ = NonHebrew
	case heb == 0:
		typ = Numeric
	default:
		if n := t.strippablePrefix(); n > 0 {
			start = t.offs[n]
			t.text = t.text[n:]
			typ = runType(t.text)
		} else {
			typ = Hebrew | Mixed | flags
		}
	}

	return Token{
		Text:  string(t.text),
		Type:  typ,
		Start: start,
		End:   t.src.pos,
	}
}

// strippablePrefix returns the length of the leading Hebrew letters when
// they form a valid prefix and nothing Hebrew follows them, or 0.
func (t *Tokenizer) strippablePrefix() int {
	n := 0
	for n < len(t.text) && hebrew.IsLetter(t.text[n]) {
		n++
	}
	if n == 0 || n == len(t.text) || !hebrew.IsPrefixRunes(t.text[:n]) {
		return 0
	}
	for _, r := range t.text[n:] {
		if hebrew.IsLetter(r) || hebrew.IsQuote(r) {
			return 0
		}
	}
	return n
}

// count returns the number of Hebrew letters, foreign letters and digits
// in rs.
func count(rs []rune) (heb, foreign, digit int) {
	for _, r := range rs {
		switch hebrew.Classify(r) {
		case hebrew.Letter:
			heb++
		case hebrew.Foreign:
			foreign++
		case hebrew.Digit:
			digit++
		}
	}
	return heb, foreign, digit
}

// runType returns the base type of a rune run that is not subject to
// prefix stripping.
func runType(rs []rune) TokenType {
	heb, foreign, digit := count(rs)
	switch {
	case heb > 0 && foreign == 0 && digit == 0:
		return Hebrew
	case heb > 0:
		return Hebrew | Mixed
	case foreign == 0 && digit > 0:
		return Numeric
	default:
		return NonHebrew
	}
}

// isNumeric reports whether rs is a non-empty run of digits, possibly with
// separators already joined.
func isNumeric(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	heb, foreign, digit := count(rs)
	return heb == 0 && foreign == 0 && digit > 0
}

// prefixedNumeric reports whether rs is a numeric run, optionally led by
// Hebrew letters that form a valid prefix.
func prefixedNumeric(rs []rune) bool {
	n := 0
	for n < len(rs) && hebrew.IsLetter(rs[n]) {
		n++
	}
	if n > 0 && !hebrew.IsPrefixRunes(rs[:n]) {
		return false
	}
	return isNumeric(rs[n:])
}

func isWordClass(c hebrew.Class) bool {
	return c == hebrew.Letter || c == hebrew.Foreign || c == hebrew.Digit
}
