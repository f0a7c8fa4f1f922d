// Package radix implements a prefix-compressed trie (radix tree) keyed by
// rune sequences.
//
// The tree serves two roles in the analyzer: the morphological lexicon
// (surface stem → lexicon entries) and the special-tokenization set
// (literal tokens such as "C++" that must not be split by character-class
// rules). Both are built once and then only read.
//
// Edge labels are maximally compressed: a node with a single child and no
// value is merged into its parent edge. Sibling edges never share a first
// rune, so every lookup walks at most one edge per level and never revisits
// a node.
//
// A Tree is not safe for concurrent Insert. Once construction is complete
// any number of goroutines may call the read methods concurrently.
package radix

import (
	"iter"
	"sort"
	"unicode"
)

type node[V any] struct {
	label    []rune
	children []*node[V] // sorted by label[0]
	value    V
	hasValue bool
}

// Tree maps rune sequences to values of type V.
type Tree[V any] struct {
	root          node[V]
	caseSensitive bool
	size          int
	maxKeyLen     int
}

// New returns an empty tree. When caseSensitive is false, keys and lookups
// are folded with unicode.ToLower, so "C++" and "c++" are the same key.
func New[V any](caseSensitive bool) *Tree[V] {
	return &Tree[V]{caseSensitive: caseSensitive}
}

// CaseSensitive reports whether lookups distinguish letter case.
func (t *Tree[V]) CaseSensitive() bool { return t.caseSensitive }

// Len returns the number of stored keys.
func (t *Tree[V]) Len() int { return t.size }

// MaxKeyLen returns the length in runes of the longest stored key.
func (t *Tree[V]) MaxKeyLen() int { return t.maxKeyLen }

func (t *Tree[V]) fold(r rune) rune {
	if t.caseSensitive {
		return r
	}
	return unicode.ToLower(r)
}

// Insert stores v under key, overwriting any previous value.
// The empty key is valid and is stored on the root.
func (t *Tree[V]) Insert(key string, v V) {
	k := make([]rune, 0, len(key))
	for _, r := range key {
		k = append(k, t.fold(r))
	}
	if len(k) > t.maxKeyLen {
		t.maxKeyLen = len(k)
	}

	n := &t.root
	for {
		if len(k) == 0 {
			if !n.hasValue {
				t.size++
			}
			n.value, n.hasValue = v, true
			return
		}

		i, child := n.child(k[0])
		if child == nil {
			leaf := &node[V]{label: k, value: v, hasValue: true}
			n.children = append(n.children, nil)
			copy(n.children[i+1:], n.children[i:])
			n.children[i] = leaf
			t.size++
			return
		}

		common := commonPrefix(child.label, k)
		if common < len(child.label) {
			// Split the edge at the divergence point.
			tail := &node[V]{
				label:    child.label[common:],
				children: child.children,
				value:    child.value,
				hasValue: child.hasValue,
			}
			var zero V
			child.label = child.label[:common:common]
			child.children = []*node[V]{tail}
			child.value, child.hasValue = zero, false
		}
		n = child
		k = k[common:]
	}
}

// Get returns the value stored under exactly key.
func (t *Tree[V]) Get(key string) (V, bool) {
	n := &t.root
	var pending []rune
	for _, r := range key {
		r = t.fold(r)
		if len(pending) > 0 {
			if pending[0] != r {
				var zero V
				return zero, false
			}
			pending = pending[1:]
			continue
		}
		_, child := n.child(r)
		if child == nil {
			var zero V
			return zero, false
		}
		n = child
		pending = child.label[1:]
	}
	if len(pending) > 0 || !n.hasValue {
		var zero V
		return zero, false
	}
	return n.value, true
}

// LongestPrefix returns the longest stored key that is a prefix of
// input[start:]. n is the matched length in runes.
func (t *Tree[V]) LongestPrefix(input []rune, start int) (n int, v V, ok bool) {
	for l, val := range t.Prefixes(input, start) {
		n, v, ok = l, val, true
	}
	return n, v, ok
}

// Prefixes yields every stored key that is a prefix of input[start:],
// shortest first, as (length in runes, value) pairs.
func (t *Tree[V]) Prefixes(input []rune, start int) iter.Seq2[int, V] {
	return func(yield func(int, V) bool) {
		if start < 0 || start > len(input) {
			return
		}
		n := &t.root
		pos := start
		for {
			if n.hasValue && !yield(pos-start, n.value) {
				return
			}
			if pos >= len(input) {
				return
			}
			_, child := n.child(t.fold(input[pos]))
			if child == nil {
				return
			}
			for _, lr := range child.label {
				if pos >= len(input) || t.fold(input[pos]) != lr {
					return
				}
				pos++
			}
			n = child
		}
	}
}

// All yields every stored key and value in rune order.
func (t *Tree[V]) All() iter.Seq2[string, V] {
	return func(yield func(string, V) bool) {
		t.root.walk(nil, yield)
	}
}

func (n *node[V]) walk(prefix []rune, yield func(string, V) bool) bool {
	key := append(prefix, n.label...)
	if n.hasValue && !yield(string(key), n.value) {
		return false
	}
	for _, c := range n.children {
		// Copy so sibling walks do not share the backing array.
		if !c.walk(append([]rune(nil), key...), yield) {
			return false
		}
	}
	return true
}

// child returns the child whose label starts with r, or the index where
// such a child would be inserted.
func (n *node[V]) child(r rune) (int, *node[V]) {
	i := sort.Search(len(n.children), func(i int) bool {
		return n.children[i].label[0] >= r
	})
	if i < len(n.children) && n.children[i].label[0] == r {
		return i, n.children[i]
	}
	return i, nil
}

func commonPrefix(a, b []rune) int {
	i := 0
	for i < len(a) && i < len(b) && a[i] == b[i] {
		i++
	}
	return i
}
