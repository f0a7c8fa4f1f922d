// Command hebmorph tokenizes and lemmatizes Hebrew text.
//
// It reads the named files (directories are walked for .txt files), or stdin
// when no file is given, and writes one JSON object per token to stdout:
//
//	{"file":"a.txt","text":"בבית","type":"Hebrew","start":0,"end":4,"candidates":[{"lemma":"בית","mask":"noun|masc|sg","prefix":"ב"}]}
//
// Usage:
//
//	hebmorph [-config hebmorph.yaml] [-lexicon file] [-special file|none]
//	         [-marker $] [-english none|lemma|stem] [-workers N] [-stats] [-v] [file|dir ...]
//
// Flags override values from the config file.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"slices"

	"github.com/rlebowitz/HebMorph/tokenizer"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("hebmorph", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", "", "YAML config file")
	lexicon := fs.String("lexicon", "", "lexicon file (default: embedded sample)")
	special := fs.String("special", "", "special-cases file, or \"none\" (default: embedded list)")
	caseSensitive := fs.Bool("case-sensitive", false, "match special cases case-sensitively")
	marker := fs.String("marker", "", "exact-match suffix operator, e.g. $")
	eng := fs.String("english", englishNone, "analyzer for non-Hebrew tokens: none, lemma, stem")
	workers := fs.Int("workers", defaultWorkers, "files analyzed concurrently")
	stats := fs.Bool("stats", false, "print token statistics to stderr")
	verbose := fs.Bool("v", false, "debug logging")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	cfg := DefaultConfig()
	if *configPath != "" {
		var err error
		if cfg, err = LoadConfig(*configPath); err != nil {
			fmt.Fprintf(stderr, "%v\n", err)
			return 1
		}
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "lexicon":
			cfg.Lexicon = *lexicon
		case "special":
			cfg.Special = *special
		case "case-sensitive":
			cfg.CaseSensitive = *caseSensitive
		case "marker":
			cfg.Marker = *marker
		case "english":
			cfg.English = *eng
		case "workers":
			cfg.Workers = *workers
		case "v":
			cfg.Verbose = *verbose
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "%v\n", err)
		return 1
	}

	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	a, err := NewAnalyzer(cfg, stdout, logger)
	if err != nil {
		logger.Error("setup failed", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := a.Run(ctx, fs.Args()); err != nil {
		logger.Error("analysis failed", "error", err)
		return 1
	}

	if *stats {
		printStats(stderr, a.Stats())
	}
	return 0
}

func printStats(w io.Writer, s Stats) {
	fmt.Fprintf(w, "Files:      %d\n", s.Files)
	fmt.Fprintf(w, "Tokens:     %d\n", s.Tokens)
	fmt.Fprintf(w, "Unknown:    %d\n", s.Unknown)
	fmt.Fprintf(w, "Ambiguous:  %d\n", s.Ambiguous)
	fmt.Fprintln(w)

	types := make([]tokenizer.TokenType, 0, len(s.TypeCounts))
	for typ := range s.TypeCounts {
		types = append(types, typ)
	}
	slices.Sort(types)

	fmt.Fprintln(w, "Token type distribution:")
	for _, typ := range types {
		count := s.TypeCounts[typ]
		percentage := 0.0
		if s.Tokens > 0 {
			percentage = float64(count) / float64(s.Tokens) * 100
		}
		fmt.Fprintf(w, "  %-22s %d  (%.1f%%)\n", typ.String()+":", count, percentage)
	}
}
