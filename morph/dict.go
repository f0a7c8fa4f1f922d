package morph

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// maxLineLen bounds a single lexicon line.
const maxLineLen = 64 * 1024

// LoadLexicon reads a lexicon from r and returns it.
//
// Each non-blank line is <surface>\t<lemma>\t<tags>, where tags is a
// comma-separated ParseMask list and may be empty. Lines starting with '#'
// are comments. A surface listed more than once keeps every entry, in file
// order.
func LoadLexicon(r io.Reader) (*Lexicon, error) {
	lex := NewLexicon()
	if err := ReadLexicon(lex, r); err != nil {
		return nil, err
	}
	return lex, nil
}

// ReadLexicon adds the entries read from r to lex. See LoadLexicon for the
// line format.
func ReadLexicon(lex *Lexicon, r io.Reader) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 4096), maxLineLen)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		surface, e, err := parseLine(line)
		if err != nil {
			return fmt.Errorf("morph: lexicon line %d: %w", lineNo, err)
		}
		AddEntry(lex, surface, e)
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("morph: reading lexicon: %w", err)
	}
	return nil
}

func parseLine(line string) (string, Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < 2 || len(fields) > 3 {
		return "", Entry{}, fmt.Errorf("want 2 or 3 tab-separated fields, got %d", len(fields))
	}
	surface := strings.TrimSpace(fields[0])
	lemma := strings.TrimSpace(fields[1])
	if surface == "" {
		return "", Entry{}, fmt.Errorf("empty surface form")
	}
	if lemma == "" {
		return "", Entry{}, fmt.Errorf("empty lemma for %q", surface)
	}

	var mask Mask
	if len(fields) == 3 {
		m, err := ParseMask(fields[2])
		if err != nil {
			return "", Entry{}, err
		}
		mask = m
	}
	return surface, Entry{Lemma: lemma, Mask: mask}, nil
}
