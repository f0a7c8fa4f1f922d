// Command smoketest runs the analyzer over every .txt file below a directory
// and checks the token invariants on real text:
//
//   - offsets are in range, non-empty, monotonic and non-overlapping
//   - every token type is a legal flag combination
//   - a token whose span length equals its text length reproduces the input
//   - streaming through a small reader yields the same tokens as a whole
//     file read
//
// Usage:
//
//	go run ./cmd/smoketest <directory>
package main

import (
	"bufio"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/rlebowitz/HebMorph/data"
	"github.com/rlebowitz/HebMorph/morph"
	"github.com/rlebowitz/HebMorph/stream"
	"github.com/rlebowitz/HebMorph/tokenizer"
)

const (
	maxWorkers     = 4
	expectedArgs   = 2
	bytesToMBShift = 20
	smallReadSize  = 16 // bufio minimum, forces refills mid-token
	maxReported    = 5
)

type Stats struct {
	mu              sync.Mutex
	filesScanned    int
	totalBytes      int64
	totalTokens     int
	invariantFail   int
	streamingFail   int
	unknownHebrew   int
	tokenTypeCounts map[tokenizer.TokenType]int
}

type fileState struct {
	path        string
	totalBytes  int64
	tokens      int
	unknown     int
	violations  []string
	streamingOK bool
	tokenCounts map[tokenizer.TokenType]int
}

func main() {
	if len(os.Args) != expectedArgs {
		fmt.Fprintf(os.Stderr, "Usage: %s <directory>\n", os.Args[0])
		os.Exit(1)
	}

	lex, err := morph.LoadLexicon(bytes.NewReader(data.Lexicon))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading lexicon: %v\n", err)
		os.Exit(1)
	}
	special, err := tokenizer.LoadSpecialCases(bytes.NewReader(data.SpecialCases), false)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading special cases: %v\n", err)
		os.Exit(1)
	}
	opts := []stream.Option{stream.WithSpecialCases(special), stream.WithExactMarker('$')}

	var filePaths []string
	err = filepath.WalkDir(os.Args[1], func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".txt") {
			return nil
		}
		filePaths = append(filePaths, path)
		return nil
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error walking directory: %v\n", err)
		os.Exit(1)
	}

	fmt.Fprintf(os.Stderr, "Found %d files to process\n", len(filePaths))
	start := time.Now()

	stats := &Stats{tokenTypeCounts: make(map[tokenizer.TokenType]int)}
	var g errgroup.Group
	g.SetLimit(maxWorkers)
	for _, path := range filePaths {
		g.Go(func() error {
			processFile(path, lex, opts, stats)
			return nil
		})
	}
	_ = g.Wait()

	fmt.Fprintf(os.Stderr, "\nCompleted in %s\n\n", time.Since(start).Round(time.Millisecond))
	printStats(stats)
}

func processFile(path string, lex *morph.Lexicon, opts []stream.Option, stats *Stats) {
	content, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
		return
	}
	if !utf8.Valid(content) {
		fmt.Fprintf(os.Stderr, "SKIP %s: not valid UTF-8\n", path)
		return
	}
	fmt.Fprintf(os.Stderr, "START %s (%d MB)\n", path, len(content)>>bytesToMBShift)
	fileStart := time.Now()

	state := &fileState{
		path:        path,
		totalBytes:  int64(len(content)),
		tokenCounts: make(map[tokenizer.TokenType]int),
	}

	text := string(content)
	whole := stream.Analyze(text, lex, opts...)
	state.check(text, whole)
	state.streamingOK = sameResults(whole, streamed(content, lex, opts))

	for _, v := range state.violations {
		fmt.Fprintf(os.Stderr, "INVARIANT_FAIL: %s: %s\n", path, v)
	}
	if !state.streamingOK {
		fmt.Fprintf(os.Stderr, "STREAMING_FAIL: %s: small-buffer reads differ from whole-file read\n", path)
	}

	fmt.Fprintf(os.Stderr, "DONE  %s in %s (%d tokens)\n",
		filepath.Base(path), time.Since(fileStart).Round(time.Millisecond), state.tokens)

	mergeFileState(state, stats)
}

// check verifies the offset and type invariants of one file's results.
func (fs *fileState) check(text string, results []stream.Result) {
	runes := []rune(text)
	prevEnd := 0
	for i, res := range results {
		fs.tokens++
		fs.tokenCounts[res.Type]++
		if res.Type.Has(tokenizer.Hebrew) && len(res.Candidates) == 0 {
			fs.unknown++
		}

		switch {
		case res.Start < prevEnd || res.Start >= res.End || res.End > len(runes):
			fs.violate("token %d %s: bad offsets after %d", i, res.Token, prevEnd)
		case !res.Type.Valid():
			fs.violate("token %d %s: invalid type", i, res.Token)
		case res.End-res.Start == utf8.RuneCountInString(res.Text) && string(runes[res.Start:res.End]) != res.Text:
			fs.violate("token %d %s: span is %q", i, res.Token, string(runes[res.Start:res.End]))
		}
		prevEnd = res.End
	}
}

func (fs *fileState) violate(format string, args ...any) {
	if len(fs.violations) < maxReported {
		fs.violations = append(fs.violations, fmt.Sprintf(format, args...))
	}
}

func streamed(content []byte, lex *morph.Lexicon, opts []stream.Option) []stream.Result {
	r := bufio.NewReaderSize(bytes.NewReader(content), smallReadSize)
	var out []stream.Result
	for res, err := range stream.New(r, lex, opts...).All() {
		if err != nil {
			break
		}
		out = append(out, res)
	}
	return out
}

func sameResults(a, b []stream.Result) bool {
	return slices.EqualFunc(a, b, func(x, y stream.Result) bool {
		return x.Token == y.Token && slices.Equal(x.Candidates, y.Candidates)
	})
}

func mergeFileState(fs *fileState, stats *Stats) {
	stats.mu.Lock()
	defer stats.mu.Unlock()

	stats.filesScanned++
	stats.totalBytes += fs.totalBytes
	stats.totalTokens += fs.tokens
	stats.unknownHebrew += fs.unknown
	if len(fs.violations) > 0 {
		stats.invariantFail++
	}
	if !fs.streamingOK {
		stats.streamingFail++
	}
	for tokenType, count := range fs.tokenCounts {
		stats.tokenTypeCounts[tokenType] += count
	}
}

func printStats(stats *Stats) {
	fmt.Printf("Files scanned:           %d\n", stats.filesScanned)
	fmt.Printf("Total bytes:             %d\n", stats.totalBytes)
	fmt.Printf("Total tokens:            %d\n", stats.totalTokens)
	fmt.Printf("Invariant FAIL:          %d\n", stats.invariantFail)
	fmt.Printf("Streaming FAIL:          %d\n", stats.streamingFail)
	fmt.Printf("Unknown Hebrew tokens:   %d\n", stats.unknownHebrew)
	fmt.Println()

	types := make([]tokenizer.TokenType, 0, len(stats.tokenTypeCounts))
	for typ := range stats.tokenTypeCounts {
		types = append(types, typ)
	}
	slices.Sort(types)

	fmt.Println("Token type distribution:")
	for _, typ := range types {
		printTokenTypeStats(typ, stats.tokenTypeCounts[typ], stats.totalTokens)
	}
}

func printTokenTypeStats(tokenType tokenizer.TokenType, count, total int) {
	percentage := 0.0
	if total > 0 {
		percentage = float64(count) / float64(total) * 100
	}
	fmt.Printf("  %-22s %d  (%.1f%%)\n", tokenType.String()+":", count, percentage)
}
