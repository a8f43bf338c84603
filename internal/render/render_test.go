package render_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/gitsleuth/internal/render"
	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

func TestMain(m *testing.M) {
	render.SetColorEnabled(false)
	m.Run()
}

func TestContributionsEmpty(t *testing.T) {
	out := render.Contributions(stats.NewProjectStats())
	assert.Equal(t, "No contributions found", out)
}

func TestContributionsTable(t *testing.T) {
	project := stats.NewProjectStats()
	project.Insert("alice", "Go", stats.Stats{Lines: 1200, Code: 1000, Comments: 150, Blanks: 50})
	project.Insert("alice", "Python", stats.Stats{Lines: 10, Code: 10})
	project.Insert("bob", "Go", stats.Stats{Lines: 5, Code: 5})

	out := render.Contributions(project)

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "bob")
	assert.Contains(t, out, "Python")
	assert.Contains(t, out, "1,200")
	assert.Contains(t, out, "1,215") // footer total
}

func TestFileContributionsTable(t *testing.T) {
	out := render.FileContributions("main.go", "Go", map[string]stats.Stats{
		"alice": {Lines: 3, Code: 2, Comments: 1},
	})

	assert.Contains(t, out, "main.go (Go)")
	assert.Contains(t, out, "alice")
}

func TestDiffStatsTable(t *testing.T) {
	out := render.DiffStats(map[string]stats.DiffStats{
		"alice": {Insertions: 10, Deletions: 2},
		"bob":   {Insertions: 5, Deletions: 3},
	})

	assert.Contains(t, out, "+10")
	assert.Contains(t, out, "-2")
	assert.Contains(t, out, "+15") // footer
	assert.Contains(t, out, "-5")
}

func TestTouchedFilesTable(t *testing.T) {
	out := render.TouchedFiles(map[string]map[string]struct{}{
		"alice": {"a.go": {}, "b.go": {}},
	})

	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "a.go")
	assert.Contains(t, out, "2")
}

func TestContributorsList(t *testing.T) {
	out := render.Contributors(map[string]struct{}{"bob": {}, "alice": {}})
	assert.Equal(t, "alice\nbob", out)
}
