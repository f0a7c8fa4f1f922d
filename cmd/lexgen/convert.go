package main

import (
	"cmp"
	"slices"
	"strings"

	"github.com/rlebowitz/HebMorph/hebrew"
	"github.com/rlebowitz/HebMorph/morph"
)

const minSurfaceRunes = 2

// kaikkiEntry holds only the fields needed from each JSONL line.
type kaikkiEntry struct {
	Word   string       `json:"word"`
	POS    string       `json:"pos"`
	Forms  []kaikkiForm `json:"forms"`
	Senses []struct {
		Tags []string `json:"tags"`
	} `json:"senses"`
}

type kaikkiForm struct {
	Form string   `json:"form"`
	Tags []string `json:"tags"`
}

// lexLine is one output line of the lexicon.
type lexLine struct {
	surface string
	lemma   string
	mask    morph.Mask
}

func (l lexLine) String() string {
	return l.surface + "\t" + l.lemma + "\t" + strings.ReplaceAll(l.mask.String(), "|", ",")
}

func compareLines(a, b lexLine) int {
	return cmp.Or(
		strings.Compare(a.surface, b.surface),
		strings.Compare(a.lemma, b.lemma),
		cmp.Compare(a.mask, b.mask),
	)
}

// mapPOS maps a kaikki POS tag to its Mask bits.
// Returns false if the POS should be skipped entirely.
func mapPOS(pos string) (morph.Mask, bool) {
	switch pos {
	case "noun":
		return morph.Noun, true
	case "name":
		return morph.ProperName, true
	case "verb":
		return morph.Verb, true
	case "adj":
		return morph.Adjective, true
	case "adv":
		return morph.Adverb, true
	case "pron":
		return morph.Pronoun, true
	case "prep":
		return morph.Preposition, true
	case "conj":
		return morph.Conjunction, true
	case "num":
		return morph.Numeral, true
	case "abbrev", "initialism", "acronym":
		return morph.Abbreviation, true
	default:
		return 0, false
	}
}

// tagMask maps kaikki grammatical tags to Mask bits. skip reports a form
// that is not an inflected surface (romanization, pointed spelling, table
// metadata).
func tagMask(tags []string) (m morph.Mask, skip bool) {
	for _, tag := range tags {
		switch tag {
		case "romanization", "canonical", "table-tags", "inflection-template",
			"class", "alternative", "defective", "obsolete":
			return 0, true
		case "masculine":
			m |= morph.Masculine
		case "feminine":
			m |= morph.Feminine
		case "singular":
			m |= morph.Singular
		case "plural":
			m |= morph.Plural
		case "construct":
			m |= morph.Construct
		}
	}
	return m, false
}

// gender returns the gender bits shared by every sense of e.
func (e kaikkiEntry) gender() morph.Mask {
	const genders = morph.Masculine | morph.Feminine
	var m morph.Mask
	for i, s := range e.Senses {
		sm, _ := tagMask(s.Tags)
		if i == 0 {
			m = sm & genders
		} else {
			m &= sm
		}
	}
	return m
}

// normalize strips niqqud and maps Hebrew quote marks to ASCII. It returns
// false if the result is not an acceptable lexicon surface: Hebrew letters
// with at most an internal quote, and at least minSurfaceRunes runes.
func normalize(word string) (string, bool) {
	w := hebrew.NormalizeQuotes(hebrew.FoldString(hebrew.StripNiqqud(strings.TrimSpace(word))))
	runes := []rune(w)
	if len(runes) < minSurfaceRunes {
		return "", false
	}
	for i, r := range runes {
		switch {
		case hebrew.IsLetter(r):
		case hebrew.IsQuote(r) && i > 0 && i < len(runes)-1:
		default:
			return "", false
		}
	}
	return w, true
}

// convert returns the lexicon lines of one dictionary entry: the lemma
// itself followed by its inflected forms.
func convert(e kaikkiEntry) []lexLine {
	pos, ok := mapPOS(e.POS)
	if !ok {
		return nil
	}
	lemma, ok := normalize(e.Word)
	if !ok {
		return nil
	}

	base := pos | e.gender()
	lines := []lexLine{{surface: lemma, lemma: lemma, mask: base}}
	for _, f := range e.Forms {
		m, skip := tagMask(f.Tags)
		if skip {
			continue
		}
		surface, ok := normalize(f.Form)
		if !ok || surface == lemma && m == 0 {
			continue
		}
		lines = append(lines, lexLine{surface: surface, lemma: lemma, mask: pos | m | base&^genderOf(m)})
	}
	return lines
}

// genderOf returns the gender bits to drop from the base mask when a form
// carries its own gender.
func genderOf(m morph.Mask) morph.Mask {
	if m&(morph.Masculine|morph.Feminine) != 0 {
		return morph.Masculine | morph.Feminine
	}
	return 0
}

// dedupe sorts lines and removes duplicates.
func dedupe(lines []lexLine) []lexLine {
	slices.SortFunc(lines, compareLines)
	return slices.Compact(lines)
}
