// Package hebrew provides the character classification and the prefix
// grammar shared by the tokenizer and the lemmatizer.
//
// Classification is a pure per-rune function with no lookahead. Every rune
// falls into exactly one Class; unknown scripts fall back to Foreign (when
// alphabetic) or Separator. Alphabetic presentation forms (U+FB1D..U+FB4F)
// and the Yiddish ligatures (U+05F0..U+05F2) are letters; Fold maps the
// presentation forms back to their base letter for lexicon lookups.
//
// The prefix grammar is a static table of the letter sequences that Hebrew
// permits as inflectional prefixes (conjunction, relativizer, prepositions,
// definite article and their combinations). It is independent of any
// lexicon.
//
// All functions are safe for concurrent use by multiple goroutines.
package hebrew

import (
	"fmt"
	"strings"
	"unicode"
)

// Class is the semantic class of a single rune.
type Class uint8

const (
	Separator Class = iota // Whitespace, punctuation and anything else that ends a token
	Letter                 // Hebrew letter U+05D0..U+05EA
	Niqqud                 // Hebrew vowel point or cantillation mark
	Quote                  // Gershayim or geresh, including their ASCII and typographic stand-ins
	Digit                  // Decimal digit (any script)
	Foreign                // Alphabetic rune outside the Hebrew block
	Marker                 // The configured exact-match marker
)

// String returns the name of the class.
func (c Class) String() string {
	switch c {
	case Separator:
		return "Separator"
	case Letter:
		return "Letter"
	case Niqqud:
		return "Niqqud"
	case Quote:
		return "Quote"
	case Digit:
		return "Digit"
	case Foreign:
		return "Foreign"
	case Marker:
		return "Marker"
	default:
		return fmt.Sprintf("Class(%d)", int(c))
	}
}

const (
	alef = '\u05D0'
	tav  = '\u05EA'

	niqqudFirst = '\u0591'
	niqqudLast  = '\u05C7'

	maqaf      = '\u05BE'
	paseq      = '\u05C0'
	sofPasuq   = '\u05C3'
	nunHafukha = '\u05C6'

	gershayim = '\u05F4'
	geresh    = '\u05F3'

	ligatureFirst = '\u05F0'
	ligatureLast  = '\u05F2'

	presentationFirst = '\uFB1D'
	presentationLast  = '\uFB4F'
	varika            = '\uFB1E'
)

// presentationBase maps U+FB1D..U+FB4F to the base letter of each form.
// Zero marks code points with no single-letter base: ligatures, the varika
// point, the alternative plus sign and unassigned slots.
var presentationBase = [...]rune{
	'י', 0, 0, 'ע', 'א', 'ד', 'ה', 'כ', 'ל', 'ם', 'ר', 'ת', 0, // FB1D..FB29
	'ש', 'ש', 'ש', 'ש', 'א', 'א', 'א', 'ב', 'ג', 'ד', 'ה', 'ו', 'ז', 0, // FB2A..FB37
	'ט', 'י', 'ך', 'כ', 'ל', 0, 'מ', 0, 'נ', 'ס', 0, 'ף', 'פ', 0, // FB38..FB45
	'צ', 'ק', 'ר', 'ש', 'ת', 'ו', 'ב', 'כ', 'פ', 0, // FB46..FB4F
}

// Classify returns the class of r without an exact-match marker.
func Classify(r rune) Class {
	switch {
	case IsLetter(r):
		return Letter
	case IsNiqqud(r):
		return Niqqud
	case IsQuote(r):
		return Quote
	case unicode.IsDigit(r):
		return Digit
	case unicode.IsLetter(r), unicode.Is(unicode.Mn, r):
		return Foreign
	default:
		return Separator
	}
}

// Classifier classifies runes with an optional exact-match marker.
// The zero value has no marker.
type Classifier struct {
	Marker rune // 0 disables the marker
}

// Classify returns Marker for the configured marker rune and defers to
// Classify for everything else.
func (c Classifier) Classify(r rune) Class {
	if c.Marker != 0 && r == c.Marker {
		return Marker
	}
	return Classify(r)
}

// IsLetter reports whether r is a Hebrew letter: one of the 27 base code
// points (22 letters plus final forms), a Yiddish ligature or an alphabetic
// presentation form.
func IsLetter(r rune) bool {
	switch {
	case r >= alef && r <= tav:
		return true
	case r >= ligatureFirst && r <= ligatureLast:
		return true
	case r >= presentationFirst && r <= presentationLast:
		return r == '\uFB1F' || r == '\uFB4F' || presentationBase[r-presentationFirst] != 0
	}
	return false
}

// Fold returns the base letter of a Hebrew presentation form (U+FB2A
// shin with shin dot becomes ש). Every other rune is returned unchanged,
// ligatures included.
func Fold(r rune) rune {
	if r < presentationFirst || r > presentationLast {
		return r
	}
	if b := presentationBase[r-presentationFirst]; b != 0 {
		return b
	}
	return r
}

// FoldString applies Fold to every rune of s.
func FoldString(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return Fold(r) != r }) {
		return s
	}
	return strings.Map(Fold, s)
}

// IsNiqqud reports whether r is a Hebrew point or cantillation mark.
// Maqaf, paseq, sof pasuq and nun hafukha sit in the same block but are
// punctuation and are not niqqud.
func IsNiqqud(r rune) bool {
	if r == varika {
		return true
	}
	if r < niqqudFirst || r > niqqudLast {
		return false
	}
	switch r {
	case maqaf, paseq, sofPasuq, nunHafukha:
		return false
	}
	return true
}

// IsGershayim reports whether r is used as gershayim (the acronym mark).
func IsGershayim(r rune) bool {
	switch r {
	case '"', gershayim, '\u201C', '\u201D':
		return true
	}
	return false
}

// IsGeresh reports whether r is used as geresh.
func IsGeresh(r rune) bool {
	switch r {
	case '\'', geresh, '\u2018', '\u2019':
		return true
	}
	return false
}

// IsQuote reports whether r is gershayim or geresh.
func IsQuote(r rune) bool {
	return IsGershayim(r) || IsGeresh(r)
}

// NormalizeQuote maps every gershayim stand-in to '"' and every geresh
// stand-in to '\''. Other runes are returned unchanged.
func NormalizeQuote(r rune) rune {
	switch {
	case IsGershayim(r):
		return '"'
	case IsGeresh(r):
		return '\''
	default:
		return r
	}
}

// NormalizeQuotes applies NormalizeQuote to every rune of s.
func NormalizeQuotes(s string) string {
	if !strings.ContainsFunc(s, func(r rune) bool { return IsQuote(r) && r != '"' && r != '\'' }) {
		return s
	}
	return strings.Map(NormalizeQuote, s)
}

// StripNiqqud removes vowel points and cantillation marks from s.
func StripNiqqud(s string) string {
	if !strings.ContainsFunc(s, IsNiqqud) {
		return s
	}
	return strings.Map(func(r rune) rune {
		if IsNiqqud(r) {
			return -1
		}
		return r
	}, s)
}
