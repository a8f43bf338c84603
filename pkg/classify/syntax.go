package classify

import (
	"strings"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

// blockDelims is a pair of block comment delimiters.
type blockDelims struct {
	start string
	end   string
}

// syntax describes the comment tokens of one language.
type syntax struct {
	line   []string
	blocks []blockDelims
}

// cSyntax covers the large family of C-like languages.
var cSyntax = syntax{
	line:   []string{"//"},
	blocks: []blockDelims{{start: "/*", end: "*/"}},
}

var hashSyntax = syntax{line: []string{"#"}}

// plainSyntax has no comment tokens; every non-blank line is code.
var plainSyntax = syntax{}

// syntaxes maps enry language names to their comment syntax. Languages not
// listed fall back to plainSyntax, which never classifies a comment.
var syntaxes = map[string]syntax{
	"C":           cSyntax,
	"C++":         cSyntax,
	"C#":          cSyntax,
	"D":           cSyntax,
	"Dart":        cSyntax,
	"Go":          cSyntax,
	"Java":        cSyntax,
	"JavaScript":  cSyntax,
	"JSX":         cSyntax,
	"Kotlin":      cSyntax,
	"Objective-C": cSyntax,
	"PHP":         {line: []string{"//", "#"}, blocks: []blockDelims{{start: "/*", end: "*/"}}},
	"Rust":        cSyntax,
	"Scala":       cSyntax,
	"Swift":       cSyntax,
	"TypeScript":  cSyntax,
	"TSX":         cSyntax,
	"Zig":         {line: []string{"//"}},
	"CSS":         {blocks: []blockDelims{{start: "/*", end: "*/"}}},
	"SCSS":        cSyntax,
	"Less":        cSyntax,

	"Dockerfile": hashSyntax,
	"Elixir":     hashSyntax,
	"INI":        {line: []string{";", "#"}},
	"Makefile":   hashSyntax,
	"Nim":        hashSyntax,
	"Perl":       hashSyntax,
	"Python":     hashSyntax,
	"R":          hashSyntax,
	"Ruby":       {line: []string{"#"}, blocks: []blockDelims{{start: "=begin", end: "=end"}}},
	"Shell":      hashSyntax,
	"TOML":       hashSyntax,
	"YAML":       hashSyntax,

	"Haskell": {line: []string{"--"}, blocks: []blockDelims{{start: "{-", end: "-}"}}},
	"Lua":     {line: []string{"--"}, blocks: []blockDelims{{start: "--[[", end: "]]"}}},
	"SQL":     {line: []string{"--"}, blocks: []blockDelims{{start: "/*", end: "*/"}}},

	"HTML":     {blocks: []blockDelims{{start: "<!--", end: "-->"}}},
	"XML":      {blocks: []blockDelims{{start: "<!--", end: "-->"}}},
	"Markdown": plainSyntax,
	"JSON":     plainSyntax,
	"Text":     plainSyntax,

	"Emacs Lisp": {line: []string{";"}},
	"Clojure":    {line: []string{";"}},
	"Erlang":     {line: []string{"%"}},
	"TeX":        {line: []string{"%"}},
	"Vim script": {line: []string{"\""}},
}

// syntaxFor returns the comment syntax for the given enry language name.
func syntaxFor(language string) syntax {
	if syn, ok := syntaxes[language]; ok {
		return syn
	}

	return plainSyntax
}

// classifyLine classifies a trimmed, non-blank line that starts outside any
// block comment. It returns the line kind, whether a block comment remains
// open after this line, and the delimiter that will close it.
func (s syntax) classifyLine(trimmed string) (stats.LineKind, bool, string) {
	// Block openers win over line prefixes: Lua's --[[ starts with its
	// line token --.
	for _, block := range s.blocks {
		if !strings.HasPrefix(trimmed, block.start) {
			continue
		}

		rest, closed := consumeBlock(trimmed[len(block.start):], block.end)
		if !closed {
			return stats.Comment, true, block.end
		}

		if strings.TrimSpace(rest) == "" {
			return stats.Comment, false, ""
		}

		// Trailing code after the block terminator.
		return stats.Code, false, ""
	}

	for _, prefix := range s.line {
		if strings.HasPrefix(trimmed, prefix) {
			return stats.Comment, false, ""
		}
	}

	// A code line may still open a block comment mid-line.
	for _, block := range s.blocks {
		lastStart := strings.LastIndex(trimmed, block.start)
		if lastStart < 0 {
			continue
		}

		lastEnd := strings.LastIndex(trimmed, block.end)
		if lastEnd < lastStart {
			return stats.Code, true, block.end
		}
	}

	return stats.Code, false, ""
}
