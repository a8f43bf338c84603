package classify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

func TestClassifyGoSource(t *testing.T) {
	t.Parallel()

	content := []byte(`package main

// add returns the sum.
func add(a, b int) int {
	return a + b // inline comments count as code
}
`)

	file := Classify("main.go", content)

	assert.Equal(t, "Go", file.Language)
	assert.Equal(t, map[int]stats.LineKind{
		1: stats.Code,
		2: stats.Blank,
		3: stats.Comment,
		4: stats.Code,
		5: stats.Code,
		6: stats.Code,
	}, file.Kinds)
}

func TestAnnotateBlockComments(t *testing.T) {
	t.Parallel()

	content := []byte(`/*
multi line
*/
int x; /* trailing */
/* closed */ int y;
`)

	kinds := annotate("C", content)

	assert.Equal(t, map[int]stats.LineKind{
		1: stats.Comment,
		2: stats.Comment,
		3: stats.Comment,
		4: stats.Code,
		5: stats.Code,
	}, kinds)
}

func TestAnnotateBlockReopenedAfterClose(t *testing.T) {
	t.Parallel()

	content := []byte("/* a */\ncode\n/* open\nstill\n*/ tail()\n")

	kinds := annotate("Go", content)

	assert.Equal(t, map[int]stats.LineKind{
		1: stats.Comment,
		2: stats.Code,
		3: stats.Comment,
		4: stats.Comment,
		5: stats.Code,
	}, kinds)
}

func TestAnnotateLuaBlockComment(t *testing.T) {
	t.Parallel()

	content := []byte("--[[\nplain body line\n]]\nx = 1\n-- note\n")

	kinds := annotate("Lua", content)

	assert.Equal(t, map[int]stats.LineKind{
		1: stats.Comment,
		2: stats.Comment,
		3: stats.Comment,
		4: stats.Code,
		5: stats.Comment,
	}, kinds)
}

func TestAnnotateMidLineBlockOpen(t *testing.T) {
	t.Parallel()

	content := []byte("int x; /* opened here\nstill inside\n*/\nint y;\n")

	kinds := annotate("C", content)

	assert.Equal(t, map[int]stats.LineKind{
		1: stats.Code,
		2: stats.Comment,
		3: stats.Comment,
		4: stats.Code,
	}, kinds)
}

func TestAnnotateHashLanguages(t *testing.T) {
	t.Parallel()

	content := []byte("# comment\n\nvalue = 1\n")

	kinds := annotate("Python", content)

	assert.Equal(t, map[int]stats.LineKind{
		1: stats.Comment,
		2: stats.Blank,
		3: stats.Code,
	}, kinds)
}

func TestAnnotatePlainTextHasNoComments(t *testing.T) {
	t.Parallel()

	content := []byte("# not a comment here\nplain line\n")

	kinds := annotate(FallbackLanguage, content)

	assert.Equal(t, stats.Code, kinds[1])
	assert.Equal(t, stats.Code, kinds[2])
}

func TestAnnotateNoTrailingNewline(t *testing.T) {
	t.Parallel()

	kinds := annotate("Go", []byte("package main"))

	assert.Len(t, kinds, 1)
	assert.Equal(t, stats.Code, kinds[1])
}

func TestAnnotateEmptyContent(t *testing.T) {
	t.Parallel()

	kinds := annotate("Go", nil)

	assert.Empty(t, kinds)
}

func TestSyntaxForUnknownLanguage(t *testing.T) {
	t.Parallel()

	syn := syntaxFor("No Such Language")

	assert.Empty(t, syn.line)
	assert.Empty(t, syn.blocks)
}

func TestClassifyFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "sample.go")
	err := os.WriteFile(path, []byte("package sample\n"), 0o644)
	require.NoError(t, err)

	file, err := ClassifyFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Go", file.Language)
	assert.Equal(t, stats.Code, file.Kinds[1])
}

func TestClassifyFileReadErrorCarriesPath(t *testing.T) {
	t.Parallel()

	missing := filepath.Join(t.TempDir(), "does-not-exist.go")

	_, err := ClassifyFile(missing)
	require.Error(t, err)
	assert.Contains(t, err.Error(), missing)
}
