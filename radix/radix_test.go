package radix

import (
	"math/rand/v2"
	"slices"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Insert / Get
// ---------------------------------------------------------------------------

func TestInsertGet(t *testing.T) {
	tree := New[int](true)
	keys := []string{"שלום", "של", "שלומי", "שם", "ב", "בית", "בית ספר", "test", "team", "te"}
	for i, k := range keys {
		tree.Insert(k, i)
	}

	if got := tree.Len(); got != len(keys) {
		t.Fatalf("Len() = %d, want %d", got, len(keys))
	}

	for i, k := range keys {
		t.Run(k, func(t *testing.T) {
			v, ok := tree.Get(k)
			if !ok || v != i {
				t.Errorf("Get(%q) = %d, %v; want %d, true", k, v, ok, i)
			}
		})
	}

	for _, k := range []string{"", "ש", "שלו", "שלומית", "בי", "t", "tea", "teams", "בית ספ"} {
		t.Run("missing "+k, func(t *testing.T) {
			if v, ok := tree.Get(k); ok {
				t.Errorf("Get(%q) = %d, true; want not found", k, v)
			}
		})
	}
}

func TestInsertOverwrites(t *testing.T) {
	tree := New[string](true)
	tree.Insert("מכונית", "a")
	tree.Insert("מכונית", "b")

	if tree.Len() != 1 {
		t.Errorf("Len() = %d, want 1", tree.Len())
	}
	if v, _ := tree.Get("מכונית"); v != "b" {
		t.Errorf("Get after overwrite = %q, want %q", v, "b")
	}
}

func TestEdgeSplit(t *testing.T) {
	tree := New[int](true)
	tree.Insert("abcdef", 1)
	tree.Insert("abcxyz", 2)
	tree.Insert("abc", 3)

	if len(tree.root.children) != 1 {
		t.Fatalf("root has %d children, want 1", len(tree.root.children))
	}
	mid := tree.root.children[0]
	if string(mid.label) != "abc" || !mid.hasValue || mid.value != 3 {
		t.Errorf("split node = %q (value %d, %v), want \"abc\" with value 3", string(mid.label), mid.value, mid.hasValue)
	}
	if len(mid.children) != 2 {
		t.Fatalf("split node has %d children, want 2", len(mid.children))
	}
	if string(mid.children[0].label) != "def" || string(mid.children[1].label) != "xyz" {
		t.Errorf("children = %q, %q; want \"def\", \"xyz\"",
			string(mid.children[0].label), string(mid.children[1].label))
	}
}

func TestEmptyKey(t *testing.T) {
	tree := New[int](true)
	tree.Insert("", 7)
	if v, ok := tree.Get(""); !ok || v != 7 {
		t.Errorf("Get(\"\") = %d, %v; want 7, true", v, ok)
	}
	n, v, ok := tree.LongestPrefix([]rune("anything"), 0)
	if !ok || n != 0 || v != 7 {
		t.Errorf("LongestPrefix = %d, %d, %v; want 0, 7, true", n, v, ok)
	}
}

// ---------------------------------------------------------------------------
// Case folding
// ---------------------------------------------------------------------------

func TestCaseInsensitive(t *testing.T) {
	tree := New[byte](false)
	tree.Insert("C++", 0)
	tree.Insert("ASP.NET", 1)

	tests := []struct {
		input string
		want  bool
	}{
		{"C++", true},
		{"c++", true},
		{"asp.net", true},
		{"Asp.Net", true},
		{"c+", false},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if _, ok := tree.Get(tt.input); ok != tt.want {
				t.Errorf("Get(%q) found = %v, want %v", tt.input, ok, tt.want)
			}
		})
	}

	if n, _, ok := tree.LongestPrefix([]rune("בc++ "), 1); !ok || n != 3 {
		t.Errorf("LongestPrefix(\"בc++ \", 1) = %d, %v; want 3, true", n, ok)
	}
}

func TestCaseSensitive(t *testing.T) {
	tree := New[byte](true)
	tree.Insert("C++", 0)
	if _, ok := tree.Get("c++"); ok {
		t.Error("case-sensitive tree matched a differently cased key")
	}
	if !tree.CaseSensitive() {
		t.Error("CaseSensitive() = false, want true")
	}
}

// ---------------------------------------------------------------------------
// Prefix queries
// ---------------------------------------------------------------------------

func TestLongestPrefix(t *testing.T) {
	tree := New[string](true)
	for _, k := range []string{"ו", "וה", "ומש", "ב", "של"} {
		tree.Insert(k, k)
	}

	tests := []struct {
		name   string
		input  string
		start  int
		wantN  int
		wantOK bool
	}{
		{"single letter", "בית", 0, 1, true},
		{"two letters", "והבית", 0, 2, true},
		{"longest wins", "ומשם", 0, 3, true},
		{"partial edge", "ומ", 0, 1, true},
		{"no match", "תחום", 0, 0, false},
		{"start offset", "xxשלום", 2, 2, true},
		{"start at end", "ב", 1, 0, false},
		{"start out of range", "ב", 5, 0, false},
		{"empty input", "", 0, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, _, ok := tree.LongestPrefix([]rune(tt.input), tt.start)
			if n != tt.wantN || ok != tt.wantOK {
				t.Errorf("LongestPrefix(%q, %d) = %d, %v; want %d, %v",
					tt.input, tt.start, n, ok, tt.wantN, tt.wantOK)
			}
		})
	}
}

func TestPrefixes(t *testing.T) {
	tree := New[string](true)
	for _, k := range []string{"ו", "וה", "ומ", "ומש", "ומשה"} {
		tree.Insert(k, k)
	}

	var got []string
	for n, v := range tree.Prefixes([]rune("ומשהו"), 0) {
		if len([]rune(v)) != n {
			t.Errorf("value %q reported with length %d", v, n)
		}
		got = append(got, v)
	}
	want := []string{"ו", "ומ", "ומש", "ומשה"}
	if !slices.Equal(got, want) {
		t.Errorf("Prefixes = %v, want %v", got, want)
	}

	// Early break must stop iteration.
	count := 0
	for range tree.Prefixes([]rune("ומשהו"), 0) {
		count++
		break
	}
	if count != 1 {
		t.Errorf("iteration continued after break: %d", count)
	}
}

func TestAllOrdered(t *testing.T) {
	tree := New[int](true)
	keys := []string{"delta", "alpha", "charlie", "alp", "bravo", "al"}
	for i, k := range keys {
		tree.Insert(k, i)
	}

	var got []string
	for k := range tree.All() {
		got = append(got, k)
	}
	want := slices.Clone(keys)
	slices.Sort(want)
	if !slices.Equal(got, want) {
		t.Errorf("All() keys = %v, want %v", got, want)
	}
	if tree.MaxKeyLen() != len("charlie") {
		t.Errorf("MaxKeyLen() = %d, want %d", tree.MaxKeyLen(), len("charlie"))
	}
}

// ---------------------------------------------------------------------------
// Round-trip against a reference map
// ---------------------------------------------------------------------------

func TestRoundTripRandom(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	alphabet := []rune("אבגדהוש")

	randomKey := func() string {
		n := rng.IntN(6)
		var sb strings.Builder
		for range n {
			sb.WriteRune(alphabet[rng.IntN(len(alphabet))])
		}
		return sb.String()
	}

	tree := New[int](true)
	ref := make(map[string]int)
	for i := range 2000 {
		k := randomKey()
		tree.Insert(k, i)
		ref[k] = i
	}

	if tree.Len() != len(ref) {
		t.Fatalf("Len() = %d, want %d", tree.Len(), len(ref))
	}
	for k, want := range ref {
		if got, ok := tree.Get(k); !ok || got != want {
			t.Fatalf("Get(%q) = %d, %v; want %d", k, got, ok, want)
		}
	}

	for range 500 {
		s := []rune(randomKey() + randomKey())
		wantN, wantOK := -1, false
		for l := len(s); l >= 0; l-- {
			if _, ok := ref[string(s[:l])]; ok {
				wantN, wantOK = l, true
				break
			}
		}
		n, v, ok := tree.LongestPrefix(s, 0)
		if ok != wantOK || (ok && (n != wantN || v != ref[string(s[:n])])) {
			t.Fatalf("LongestPrefix(%q) = %d, %d, %v; want length %d, %v", string(s), n, v, ok, wantN, wantOK)
		}
	}
}

func TestSiblingInvariant(t *testing.T) {
	tree := New[int](true)
	for i, k := range []string{"abc", "abd", "b", "ba", "bad", "c", "ca", "x"} {
		tree.Insert(k, i)
	}
	var check func(n *node[int])
	check = func(n *node[int]) {
		seen := make(map[rune]bool)
		for _, c := range n.children {
			if len(c.label) == 0 {
				t.Fatal("child with empty label")
			}
			if seen[c.label[0]] {
				t.Fatalf("two sibling edges start with %q", c.label[0])
			}
			seen[c.label[0]] = true
			check(c)
		}
	}
	check(&tree.root)
}

func BenchmarkGet(b *testing.B) {
	tree := New[int](true)
	for i, k := range []string{"שלום", "שלומי", "בית", "מכונית", "בדיקה", "תחומי"} {
		tree.Insert(k, i)
	}
	for b.Loop() {
		tree.Get("מכונית")
	}
}
