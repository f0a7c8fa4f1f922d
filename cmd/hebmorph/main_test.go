package main

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

type outLine struct {
	File       string `json:"file"`
	Text       string `json:"text"`
	Type       string `json:"type"`
	Start      int    `json:"start"`
	End        int    `json:"end"`
	Candidates []struct {
		Lemma  string `json:"lemma"`
		Prefix string `json:"prefix"`
	} `json:"candidates"`
}

func parseOutput(t *testing.T, out string) []outLine {
	t.Helper()
	var lines []outLine
	sc := bufio.NewScanner(strings.NewReader(out))
	for sc.Scan() {
		var l outLine
		if err := json.Unmarshal(sc.Bytes(), &l); err != nil {
			t.Fatalf("bad output line %q: %v", sc.Text(), err)
		}
		lines = append(lines, l)
	}
	return lines
}

func TestRunFiles(t *testing.T) {
	dir := t.TempDir()
	paths := []string{
		filepath.Join(dir, "one.txt"),
		filepath.Join(dir, "sub", "two.txt"),
	}
	writeAt(t, paths[0], "בבית בדיקה$")
	writeAt(t, paths[1], "בC++ walked")
	writeAt(t, filepath.Join(dir, "skip.md"), "שלום")

	var stdout, stderr bytes.Buffer
	code := run([]string{"-marker", "$", "-english", "lemma", "-stats", dir}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}

	lines := parseOutput(t, stdout.String())
	byFile := make(map[string][]outLine)
	for _, l := range lines {
		byFile[filepath.Base(l.File)] = append(byFile[filepath.Base(l.File)], l)
	}
	if len(byFile) != 2 {
		t.Fatalf("got output for %d files, want 2: %v", len(byFile), lines)
	}

	one := byFile["one.txt"]
	if len(one) != 2 || one[0].Text != "בבית" || one[1].Type != "Hebrew|Exact" {
		t.Fatalf("one.txt = %+v", one)
	}
	if len(one[0].Candidates) != 1 || one[0].Candidates[0].Prefix != "ב" {
		t.Errorf("בבית candidates = %+v", one[0].Candidates)
	}

	two := byFile["two.txt"]
	if len(two) != 2 || two[0].Text != "C++" || two[0].Type != "NonHebrew" {
		t.Fatalf("two.txt = %+v", two)
	}
	if len(two[1].Candidates) != 1 || two[1].Candidates[0].Lemma != "walk" {
		t.Errorf("walked candidates = %+v", two[1].Candidates)
	}

	if !strings.Contains(stderr.String(), "Tokens:     4") {
		t.Errorf("stats missing from stderr:\n%s", stderr.String())
	}
}

func TestRunStdin(t *testing.T) {
	var stdout bytes.Buffer
	a, err := NewAnalyzer(DefaultConfig(), &stdout, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatal(err)
	}
	if err := a.analyze(t.Context(), stdinName, strings.NewReader("שלום עולם")); err != nil {
		t.Fatalf("analyze: %v", err)
	}
	lines := parseOutput(t, stdout.String())
	texts := make([]string, len(lines))
	for i, l := range lines {
		texts[i] = l.Text
		if l.File != "" {
			t.Errorf("stdin line has file %q", l.File)
		}
	}
	if !slices.Equal(texts, []string{"שלום", "עולם"}) {
		t.Errorf("texts = %q", texts)
	}
	if s := a.Stats(); s.Tokens != 2 || s.Ambiguous != 1 || s.Unknown != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestRunErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		code int
	}{
		{"bad flag", []string{"-nope"}, 2},
		{"bad english", []string{"-english", "french"}, 1},
		{"missing lexicon", []string{"-lexicon", "/does/not/exist"}, 1},
		{"missing input", []string{filepath.Join("does", "not", "exist.txt")}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var stdout, stderr bytes.Buffer
			if code := run(tt.args, &stdout, &stderr); code != tt.code {
				t.Errorf("exit code %d, want %d; stderr:\n%s", code, tt.code, stderr.String())
			}
		})
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfgPath := writeFile(t, "c.yaml", "english: french\n")
	var stdout, stderr bytes.Buffer
	if code := run([]string{"-config", cfgPath}, &stdout, &stderr); code != 1 {
		t.Errorf("invalid config accepted")
	}

	input := writeFile(t, "in.txt", "running")
	stdout.Reset()
	if code := run([]string{"-config", writeFile(t, "ok.yaml", "english: lemma\n"), "-english", "stem", input}, &stdout, &stderr); code != 0 {
		t.Fatalf("exit code %d, stderr:\n%s", code, stderr.String())
	}
	lines := parseOutput(t, stdout.String())
	if len(lines) != 1 || len(lines[0].Candidates) != 1 || lines[0].Candidates[0].Lemma != "run" {
		t.Errorf("output = %+v, want stem run", lines)
	}
}

func writeAt(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
