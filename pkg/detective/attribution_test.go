package detective

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/classify"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/gitlib"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

func newBareDetective() *Detective {
	return &Detective{
		logger: slog.Default(),
		tracer: nooptrace.NewTracerProvider().Tracer("test"),
	}
}

func kinds(pairs map[int]stats.LineKind) classify.File {
	return classify.File{Language: "Go", Kinds: pairs}
}

// Ten lines blamed to one author: 1-3 code, 4 comment, 5 blank, 6-10 code.
func TestAttributeSingleAuthor(t *testing.T) {
	t.Parallel()

	d := newBareDetective()

	file := kinds(map[int]stats.LineKind{
		1: stats.Code, 2: stats.Code, 3: stats.Code,
		4: stats.Comment,
		5: stats.Blank,
		6: stats.Code, 7: stats.Code, 8: stats.Code, 9: stats.Code, 10: stats.Code,
	})

	hunks := []gitlib.BlameHunk{
		{Start: 1, Lines: 10, Author: "A", AuthorValid: true},
	}

	got := d.attribute(context.Background(), file, hunks)

	assert.Equal(t, map[string]stats.Stats{
		"A": {Lines: 10, Code: 8, Comments: 1, Blanks: 1},
	}, got)
}

func TestAttributeSplitsHunksByAuthor(t *testing.T) {
	t.Parallel()

	d := newBareDetective()

	file := kinds(map[int]stats.LineKind{
		1: stats.Code, 2: stats.Code, 3: stats.Comment, 4: stats.Code,
	})

	hunks := []gitlib.BlameHunk{
		{Start: 1, Lines: 2, Author: "alice", AuthorValid: true},
		{Start: 3, Lines: 2, Author: "bob", AuthorValid: true},
	}

	got := d.attribute(context.Background(), file, hunks)

	assert.Equal(t, map[string]stats.Stats{
		"alice": {Lines: 2, Code: 2},
		"bob":   {Lines: 2, Code: 1, Comments: 1},
	}, got)
}

func TestAttributeDropsInvalidAuthorHunk(t *testing.T) {
	t.Parallel()

	d := newBareDetective()

	file := kinds(map[int]stats.LineKind{
		1: stats.Code, 2: stats.Code, 3: stats.Code,
	})

	hunks := []gitlib.BlameHunk{
		{Start: 1, Lines: 2, Author: "alice", AuthorValid: true},
		// Undecodable author: the whole hunk is dropped, no partial credit.
		{Start: 3, Lines: 1, Author: "b\xffb", AuthorValid: false},
	}

	got := d.attribute(context.Background(), file, hunks)

	assert.Equal(t, map[string]stats.Stats{
		"alice": {Lines: 2, Code: 2},
	}, got)
}

func TestAttributeSkipsUnannotatedLines(t *testing.T) {
	t.Parallel()

	d := newBareDetective()

	// Annotation shorter than the blame range: lines 4 and 5 are missing,
	// as happens when the file shrank between read and blame.
	file := kinds(map[int]stats.LineKind{
		1: stats.Code, 2: stats.Blank, 3: stats.Code,
	})

	hunks := []gitlib.BlameHunk{
		{Start: 1, Lines: 5, Author: "alice", AuthorValid: true},
	}

	got := d.attribute(context.Background(), file, hunks)

	assert.Equal(t, map[string]stats.Stats{
		"alice": {Lines: 3, Code: 2, Blanks: 1},
	}, got)
}

func TestAttributeEmptyBlame(t *testing.T) {
	t.Parallel()

	d := newBareDetective()

	got := d.attribute(context.Background(), kinds(map[int]stats.LineKind{1: stats.Code}), nil)

	assert.Empty(t, got)
}

func TestAttributeInvariantHolds(t *testing.T) {
	t.Parallel()

	d := newBareDetective()

	file := kinds(map[int]stats.LineKind{
		1: stats.Code, 2: stats.Comment, 3: stats.Blank, 4: stats.Code,
		5: stats.Comment, 6: stats.Blank, 7: stats.Code, 8: stats.Code,
	})

	hunks := []gitlib.BlameHunk{
		{Start: 1, Lines: 3, Author: "alice", AuthorValid: true},
		{Start: 4, Lines: 2, Author: "bob", AuthorValid: true},
		{Start: 6, Lines: 3, Author: "alice", AuthorValid: true},
	}

	got := d.attribute(context.Background(), file, hunks)

	for author, s := range got {
		assert.Equal(t, s.Lines, s.Code+s.Comments+s.Blanks, "author %s", author)
	}
}
