package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/rlebowitz/HebMorph/data"
	"github.com/rlebowitz/HebMorph/english"
	"github.com/rlebowitz/HebMorph/morph"
	"github.com/rlebowitz/HebMorph/radix"
	"github.com/rlebowitz/HebMorph/stream"
	"github.com/rlebowitz/HebMorph/tokenizer"
)

const stdinName = "-"

// Analyzer holds the read-only resources shared by every analyzed input.
type Analyzer struct {
	cfg       Config
	lex       *morph.Lexicon
	special   *radix.Tree[struct{}]
	nonHebrew stream.TermLemmatizer
	logger    *slog.Logger

	mu    sync.Mutex // guards out and stats
	out   io.Writer
	stats Stats
}

// Stats counts analyzed tokens across all inputs.
type Stats struct {
	Files      int
	Tokens     int
	Unknown    int // Hebrew tokens with no candidates
	Ambiguous  int // Hebrew tokens with more than one candidate
	TypeCounts map[tokenizer.TokenType]int
}

// record is one JSON output line.
type record struct {
	File string `json:"file,omitempty"`
	stream.Result
}

// NewAnalyzer loads the lexicon and special cases named by cfg.
func NewAnalyzer(cfg Config, out io.Writer, logger *slog.Logger) (*Analyzer, error) {
	a := &Analyzer{
		cfg:    cfg,
		out:    out,
		logger: logger,
		stats:  Stats{TypeCounts: make(map[tokenizer.TokenType]int)},
	}

	lexData, err := readResource(cfg.Lexicon, data.Lexicon)
	if err != nil {
		return nil, err
	}
	if a.lex, err = morph.LoadLexicon(bytes.NewReader(lexData)); err != nil {
		return nil, err
	}
	logger.Debug("lexicon loaded", "path", cfg.Lexicon, "surfaces", a.lex.Len())

	if cfg.Special != specialNone {
		specialData, err := readResource(cfg.Special, data.SpecialCases)
		if err != nil {
			return nil, err
		}
		if a.special, err = tokenizer.LoadSpecialCases(bytes.NewReader(specialData), cfg.CaseSensitive); err != nil {
			return nil, err
		}
		logger.Debug("special cases loaded", "path", cfg.Special, "terms", a.special.Len())
	}

	switch cfg.English {
	case englishLemma:
		lem, err := english.NewLemmatizer()
		if err != nil {
			return nil, err
		}
		a.nonHebrew = lem
	case englishStem:
		a.nonHebrew = english.Stemmer{}
	}
	return a, nil
}

func readResource(path string, embedded []byte) ([]byte, error) {
	if path == "" {
		return embedded, nil
	}
	b, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("hebmorph: %w", err)
	}
	return b, nil
}

func (a *Analyzer) options() []stream.Option {
	opts := []stream.Option{stream.WithLogger(a.logger)}
	if a.special != nil {
		opts = append(opts, stream.WithSpecialCases(a.special))
	}
	if m := a.cfg.MarkerRune(); m != 0 {
		opts = append(opts, stream.WithExactMarker(m))
	}
	if a.nonHebrew != nil {
		opts = append(opts, stream.WithNonHebrew(a.nonHebrew))
	}
	return opts
}

// Run analyzes every path concurrently, bounded by cfg.Workers. Directories
// are walked for .txt files. With no paths it reads stdin. The first error
// cancels the remaining inputs.
func (a *Analyzer) Run(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		return a.analyze(ctx, stdinName, os.Stdin)
	}

	files, err := expand(paths)
	if err != nil {
		return err
	}
	a.logger.Debug("analyzing", "files", len(files), "workers", a.cfg.Workers)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.cfg.Workers)
	for _, path := range files {
		g.Go(func() error {
			f, err := os.Open(filepath.Clean(path))
			if err != nil {
				return fmt.Errorf("hebmorph: %w", err)
			}
			defer func() { _ = f.Close() }()
			return a.analyze(ctx, path, f)
		})
	}
	return g.Wait()
}

// expand replaces directories with the .txt files below them.
func expand(paths []string) ([]string, error) {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("hebmorph: %w", err)
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		err = filepath.WalkDir(p, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(d.Name(), ".txt") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("hebmorph: walking %s: %w", p, err)
		}
	}
	return files, nil
}

// analyze writes one JSON line per token of r. Output of a single input is
// buffered and written as one block so lines of concurrent inputs do not
// interleave.
func (a *Analyzer) analyze(ctx context.Context, name string, r io.Reader) error {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	local := Stats{Files: 1, TypeCounts: make(map[tokenizer.TokenType]int)}
	rec := record{File: name}
	if name == stdinName {
		rec.File = ""
	}

	sl := stream.New(bufio.NewReader(r), a.lex, a.options()...)
	for res, err := range sl.All() {
		if err != nil {
			return fmt.Errorf("hebmorph: reading %s: %w", name, err)
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		local.add(res)
		rec.Result = res
		if err := enc.Encode(rec); err != nil {
			return fmt.Errorf("hebmorph: encoding %s: %w", name, err)
		}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.stats.merge(local)
	if _, err := a.out.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("hebmorph: writing output: %w", err)
	}
	a.logger.Debug("analyzed", "input", name, "tokens", local.Tokens, "unknown", local.Unknown)
	return nil
}

// Stats returns a copy of the counters accumulated so far.
func (a *Analyzer) Stats() Stats {
	a.mu.Lock()
	defer a.mu.Unlock()
	s := a.stats
	s.TypeCounts = maps.Clone(a.stats.TypeCounts)
	return s
}

func (s *Stats) add(res stream.Result) {
	s.Tokens++
	s.TypeCounts[res.Type]++
	if res.Type.Has(tokenizer.Hebrew) {
		switch {
		case len(res.Candidates) == 0:
			s.Unknown++
		case len(res.Candidates) > 1:
			s.Ambiguous++
		}
	}
}

func (s *Stats) merge(o Stats) {
	s.Files += o.Files
	s.Tokens += o.Tokens
	s.Unknown += o.Unknown
	s.Ambiguous += o.Ambiguous
	for k, v := range o.TypeCounts {
		s.TypeCounts[k] += v
	}
}
