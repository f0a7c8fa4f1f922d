// Command lexgen generates data/lexicon.txt from a kaikki.org Hebrew
// dictionary dump (JSONL format).
//
// Download the dump from https://kaikki.org/dictionary/Hebrew/
// then run:
//
//	go run ./cmd/lexgen -input kaikki.org-dictionary-Hebrew.jsonl
//
// Output: data/lexicon.txt in the morph.LoadLexicon format. The file is
// parsed back before it is written, so a generator bug never produces an
// unloadable lexicon.
package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/rlebowitz/HebMorph/morph"
)

const (
	defaultInput   = "data/dictionary/kaikki.org-dictionary-Hebrew.jsonl"
	defaultOutput  = "data/lexicon.txt"
	scannerBufSize = 1 << 20 // 1 MB
)

func main() {
	inputPath := flag.String("input", defaultInput, "path to kaikki.org JSONL dump")
	outputPath := flag.String("output", defaultOutput, "output path for lexicon.txt")
	flag.Parse()

	if *inputPath == "" {
		fmt.Fprintf(os.Stderr, "Usage: lexgen -input <file> [-output <file>]\n")
		os.Exit(1)
	}

	f, err := os.Open(*inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: open input: %v\n", err)
		os.Exit(1)
	}

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, scannerBufSize), scannerBufSize)

	var lines []lexLine
	skipped := 0
	for scanner.Scan() {
		var entry kaikkiEntry
		if err := json.Unmarshal(scanner.Bytes(), &entry); err != nil {
			skipped++
			continue
		}
		lines = append(lines, convert(entry)...)
	}

	scanErr := scanner.Err()
	if err := f.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: close input: %v\n", err)
		os.Exit(1)
	}
	if scanErr != nil {
		fmt.Fprintf(os.Stderr, "lexgen: scan error: %v\n", scanErr)
		os.Exit(1)
	}

	lines = dedupe(lines)

	var buf bytes.Buffer
	buf.WriteString("# Generated by cmd/lexgen from kaikki.org Hebrew data: surface<TAB>lemma<TAB>tags\n")
	for _, l := range lines {
		buf.WriteString(l.String())
		buf.WriteByte('\n')
	}

	lex, err := morph.LoadLexicon(bytes.NewReader(buf.Bytes()))
	if err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: generated lexicon does not load: %v\n", err)
		os.Exit(1)
	}

	if err := os.WriteFile(*outputPath, buf.Bytes(), 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "lexgen: write output: %v\n", err)
		os.Exit(1)
	}

	posCounts := make(map[morph.Mask]int)
	for _, l := range lines {
		posCounts[l.mask&posMask]++
	}

	fmt.Fprintf(os.Stderr, "Total lines:    %d (%d malformed input lines skipped)\n", len(lines), skipped)
	fmt.Fprintf(os.Stderr, "Surface forms:  %d\n", lex.Len())
	for _, pos := range []morph.Mask{morph.Noun, morph.ProperName, morph.Verb, morph.Adjective, morph.Adverb} {
		fmt.Fprintf(os.Stderr, "  %-8s %d\n", pos.String()+":", posCounts[pos])
	}
	fmt.Fprintf(os.Stderr, "Output file: %s (%d bytes)\n", *outputPath, buf.Len())
}

// posMask covers the part-of-speech bits of a Mask.
const posMask = morph.Noun | morph.Verb | morph.Adjective | morph.Adverb | morph.ProperName |
	morph.Pronoun | morph.Preposition | morph.Conjunction | morph.Numeral | morph.Abbreviation
