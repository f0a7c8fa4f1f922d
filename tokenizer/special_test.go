package tokenizer

import (
	"strings"
	"testing"
)

func TestLoadSpecialCases(t *testing.T) {
	input := "# languages\nC++\n\n  C#  \n.NET\r\n"
	tree, err := LoadSpecialCases(strings.NewReader(input), false)
	if err != nil {
		t.Fatalf("LoadSpecialCases: %v", err)
	}
	if tree.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", tree.Len())
	}
	for _, term := range []string{"c++", "C#", ".net"} {
		if _, ok := tree.Get(term); !ok {
			t.Errorf("Get(%q) not found", term)
		}
	}

	got := Tokens("בc++ .net", WithSpecialCases(tree))
	want := []Token{
		{Text: "c++", Type: NonHebrew, Start: 1, End: 4},
		{Text: ".net", Type: Custom | NonHebrew, Start: 5, End: 9},
	}
	compareTokenSlice(t, "Tokens", want, got)
}

func TestLoadSpecialCasesTooLong(t *testing.T) {
	_, err := LoadSpecialCases(strings.NewReader("ok\n"+strings.Repeat("x", maxTokenLen+1)), true)
	if err == nil {
		t.Fatal("expected error for oversized term")
	}
	if !strings.Contains(err.Error(), "line 2") {
		t.Errorf("error %q does not name the line", err)
	}
}
