// Package classify identifies the language of a source file and annotates
// every line as code, comment, or blank. Language identification is
// delegated to enry; line kinds come from a small table of per-language
// comment syntax. Files whose language cannot be determined are reported as
// "Plain Text" so that every file is always counted under some language.
package classify

import (
	"fmt"
	"os"
	"path"
	"strings"

	"github.com/src-d/enry/v2"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

// FallbackLanguage is reported for files enry cannot identify.
const FallbackLanguage = "Plain Text"

// File is the classification result for one file: its language and a
// mapping from 1-based line number to line kind. Every line of the input
// has an entry.
type File struct {
	Language string
	Kinds    map[int]stats.LineKind
}

// Classify identifies the language of the given content and annotates each
// line. The path is used for extension and filename based detection.
func Classify(filePath string, content []byte) File {
	language := enry.GetLanguage(path.Base(filePath), content)
	if language == "" {
		language = FallbackLanguage
	}

	return File{
		Language: language,
		Kinds:    annotate(language, content),
	}
}

// ClassifyFile reads the file at the given path and classifies it. A read
// failure is returned wrapped with the offending path.
func ClassifyFile(filePath string) (File, error) {
	content, err := os.ReadFile(filePath)
	if err != nil {
		return File{}, fmt.Errorf("read %s: %w", filePath, err)
	}

	return Classify(filePath, content), nil
}

// annotate walks the content line by line, tracking block comment state.
// A line holding both comment and code counts as code.
func annotate(language string, content []byte) map[int]stats.LineKind {
	syn := syntaxFor(language)
	kinds := map[int]stats.LineKind{}

	inBlock := false
	blockEnd := ""

	for number, line := range splitLines(content) {
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			kinds[number+1] = stats.Blank

			continue
		}

		if inBlock {
			rest, closed := consumeBlock(trimmed, blockEnd)
			if !closed {
				kinds[number+1] = stats.Comment

				continue
			}

			inBlock = false

			if strings.TrimSpace(rest) == "" {
				kinds[number+1] = stats.Comment

				continue
			}

			trimmed = strings.TrimSpace(rest)
		}

		kind, nowInBlock, end := syn.classifyLine(trimmed)
		kinds[number+1] = kind
		inBlock = nowInBlock
		blockEnd = end
	}

	return kinds
}

// consumeBlock scans for the block terminator, returning the text after it
// and whether the block closed on this line.
func consumeBlock(line, end string) (string, bool) {
	idx := strings.Index(line, end)
	if idx < 0 {
		return "", false
	}

	return line[idx+len(end):], true
}

// splitLines splits content into lines without their terminators. A trailing
// newline does not produce an extra empty line, matching how blame counts
// lines.
func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}

	text := string(content)
	text = strings.TrimSuffix(text, "\n")

	return strings.Split(text, "\n")
}
