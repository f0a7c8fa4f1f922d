package tokenizer

import (
	"encoding/json"
	"fmt"
	"strings"
)

// TokenType is a set of flags classifying a token. Exactly one of Hebrew,
// NonHebrew and Numeric is set on every token; the remaining flags refine it.
type TokenType uint8

const (
	Hebrew    TokenType = 1 << iota // Hebrew letters (possibly with quotes or digits)
	NonHebrew                       // Letters of any other script
	Numeric                         // Digits only, with '.' or ',' between digits
	Mixed                           // Hebrew letters glued to foreign letters or digits
	Acronym                         // Hebrew run with an internal gershayim or geresh
	Exact                           // Followed by the exact-match marker
	Custom                          // Matched a special tokenization case
)

const (
	baseFlags = Hebrew | NonHebrew | Numeric
	allFlags  = baseFlags | Mixed | Acronym | Exact | Custom
)

var typeNames = []struct {
	flag TokenType
	name string
}{
	{Hebrew, "Hebrew"},
	{NonHebrew, "NonHebrew"},
	{Numeric, "Numeric"},
	{Mixed, "Mixed"},
	{Acronym, "Acronym"},
	{Exact, "Exact"},
	{Custom, "Custom"},
}

// Has reports whether every flag in f is set.
func (t TokenType) Has(f TokenType) bool {
	return t&f == f
}

// Valid reports whether t is a legal combination: exactly one base flag,
// and Mixed, Acronym and Exact only together with Hebrew.
func (t TokenType) Valid() bool {
	if t&^allFlags != 0 {
		return false
	}
	switch t & baseFlags {
	case Hebrew:
		return true
	case NonHebrew, Numeric:
		return t&(Mixed|Acronym|Exact) == 0
	default:
		return false
	}
}

// String returns the flag names joined by '|', e.g. "Hebrew|Exact".
// The zero value prints as "None".
func (t TokenType) String() string {
	if t == 0 {
		return "None"
	}
	if t&^allFlags != 0 {
		return fmt.Sprintf("TokenType(%#x)", uint8(t))
	}
	var sb strings.Builder
	for _, n := range typeNames {
		if t&n.flag == 0 {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteByte('|')
		}
		sb.WriteString(n.name)
	}
	return sb.String()
}

// ParseTokenType parses the output of TokenType.String.
func ParseTokenType(s string) (TokenType, error) {
	if s == "None" || s == "" {
		return 0, nil
	}
	var t TokenType
outer:
	for _, part := range strings.Split(s, "|") {
		for _, n := range typeNames {
			if n.name == part {
				t |= n.flag
				continue outer
			}
		}
		return 0, fmt.Errorf("tokenizer: unknown token type: %q", part)
	}
	return t, nil
}

// MarshalJSON encodes the type as a JSON string (e.g. "Hebrew|Acronym").
func (t TokenType) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.String())
}

// UnmarshalJSON decodes a JSON string (e.g. "Hebrew|Acronym") into a TokenType.
func (t *TokenType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	v, err := ParseTokenType(s)
	if err != nil {
		return err
	}
	*t = v
	return nil
}
