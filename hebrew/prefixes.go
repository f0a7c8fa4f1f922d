package hebrew

import (
	"iter"
	"strings"

	"github.com/rlebowitz/HebMorph/radix"
)

// Particle classifies the grammatical particles that make up a prefix.
// A prefix such as "וכש" combines several particles.
type Particle uint8

const (
	Conjunction Particle = 1 << iota // ו
	Relativizer                      // ש
	Preposition                      // ב כ ל מ
	Article                          // ה
)

// String returns the particle names joined by '|', e.g. "Conjunction|Article".
func (p Particle) String() string {
	if p == 0 {
		return "None"
	}
	var parts []string
	for _, n := range []struct {
		p    Particle
		name string
	}{
		{Conjunction, "Conjunction"},
		{Relativizer, "Relativizer"},
		{Preposition, "Preposition"},
		{Article, "Article"},
	} {
		if p&n.p != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// prefixTable lists every letter sequence accepted as an inflectional
// prefix. ו may open any sequence; ש and כש may be followed by a
// preposition or the article; ב כ ל absorb the article, so "בה", "כה" and
// "לה" are deliberately absent.
var prefixTable = []string{
	// single particles
	"ב", "ה", "ו", "כ", "ל", "מ", "ש",

	// conjunction + particle
	"וב", "וה", "וכ", "ול", "ומ", "וש",

	// relativizer + particle
	"שב", "שה", "שכ", "של", "שמ",

	// compound relativizers and preposition + article
	"כש", "לכש", "מש", "מה",

	"ושב", "ושה", "ושכ", "ושל", "ושמ",
	"וכש", "ולכש", "ומש", "ומה",
	"כשב", "כשה", "כשל", "כשמ",
	"משה", "משב", "משל",
	"וכשב", "וכשה", "וכשל", "וכשמ",
	"ומשה", "ומשב", "ומשל",
}

// singleLetterPrefixes are the letters that can stand alone as a prefix.
const singleLetterPrefixes = "בהוכלמש"

var (
	prefixes     *radix.Tree[Particle]
	maxPrefixLen int
)

func init() {
	prefixes = radix.New[Particle](true)
	for _, p := range prefixTable {
		prefixes.Insert(p, particlesOf(p))
	}
	maxPrefixLen = prefixes.MaxKeyLen()
}

// particlesOf derives the particle set of a prefix from its letters.
func particlesOf(prefix string) Particle {
	var p Particle
	for _, r := range prefix {
		switch r {
		case 'ו':
			p |= Conjunction
		case 'ש':
			p |= Relativizer
		case 'ה':
			p |= Article
		case 'ב', 'כ', 'ל', 'מ':
			p |= Preposition
		}
	}
	return p
}

// MaxPrefixLen returns the length in runes of the longest valid prefix.
func MaxPrefixLen() int { return maxPrefixLen }

// IsPrefix reports whether s is a valid prefix combination.
// The empty string is not a prefix.
func IsPrefix(s string) bool {
	_, ok := prefixes.Get(s)
	return ok
}

// IsPrefixRunes is IsPrefix for a rune slice. Presentation forms are
// folded first.
func IsPrefixRunes(rs []rune) bool {
	if len(rs) == 0 || len(rs) > maxPrefixLen {
		return false
	}
	return IsPrefix(FoldString(string(rs)))
}

// IsPrefixLetter reports whether r is a single-letter prefix.
func IsPrefixLetter(r rune) bool {
	return strings.ContainsRune(singleLetterPrefixes, r)
}

// ParticlesOf returns the particles of a valid prefix, or 0 and false.
func ParticlesOf(prefix string) (Particle, bool) {
	return prefixes.Get(prefix)
}

// Prefixes yields every valid prefix of word as (length in runes, particles),
// shortest first. The empty prefix is not included.
func Prefixes(word []rune) iter.Seq2[int, Particle] {
	return prefixes.Prefixes(word, 0)
}
