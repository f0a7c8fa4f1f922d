// Package data embeds the sample lexicon and the special-tokenization list.
package data

import _ "embed"

// Lexicon is a sample Hebrew lexicon in the morph.LoadLexicon format.
//
//go:embed lexicon.txt
var Lexicon []byte

// SpecialCases lists terms such as "C++" that the tokenizer keeps whole.
// One term per line, for tokenizer.LoadSpecialCases.
//
//go:embed special.txt
var SpecialCases []byte
