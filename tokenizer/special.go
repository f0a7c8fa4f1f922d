package tokenizer

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/rlebowitz/HebMorph/radix"
)

// LoadSpecialCases reads a special-tokenization list from r, one term per
// line. Blank lines and lines starting with '#' are skipped. Surrounding
// whitespace is trimmed, so a term cannot contain leading or trailing
// spaces.
func LoadSpecialCases(r io.Reader, caseSensitive bool) (*radix.Tree[struct{}], error) {
	tree := radix.New[struct{}](caseSensitive)
	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		term := strings.TrimSpace(sc.Text())
		if term == "" || strings.HasPrefix(term, "#") {
			continue
		}
		if n := len([]rune(term)); n > maxTokenLen {
			return nil, fmt.Errorf("tokenizer: special case line %d: term is %d runes, max %d", lineNo, n, maxTokenLen)
		}
		tree.Insert(term, struct{}{})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("tokenizer: reading special cases: %w", err)
	}
	return tree, nil
}
