// Package render formats attribution results as terminal tables.
package render

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/Sumatoshi-tech/gitsleuth/pkg/stats"
)

const msgNoData = "No contributions found"

// SetColorEnabled toggles ANSI colors on all rendered output.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled //nolint:reassign // intentional override of library global
}

func newTable() table.Writer {
	tbl := table.NewWriter()
	tbl.SetStyle(table.StyleLight)
	tbl.Style().Options.SeparateRows = false
	tbl.Style().Options.SeparateColumns = true
	tbl.Style().Options.DrawBorder = false

	return tbl
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}

	sort.Strings(keys)

	return keys
}

// Contributions renders per-author, per-language line attribution.
func Contributions(project stats.ProjectStats) string {
	if project.Len() == 0 {
		return msgNoData
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Author", "Language", "Lines", "Code", "Comments", "Blanks"})

	authors := project.Contributors()
	sort.Strings(authors)

	for _, author := range authors {
		languages, ok := project.ByAuthor(author)
		if !ok {
			continue
		}

		first := true

		for _, language := range sortedKeys(languages) {
			s := languages[language]

			name := ""
			if first {
				name = color.New(color.FgCyan).Sprint(author)
				first = false
			}

			tbl.AppendRow(table.Row{
				name,
				language,
				humanize.Comma(int64(s.Lines)),
				humanize.Comma(int64(s.Code)),
				humanize.Comma(int64(s.Comments)),
				humanize.Comma(int64(s.Blanks)),
			})
		}
	}

	tbl.AppendFooter(table.Row{"Total", "", humanize.Comma(int64(project.TotalLines())), "", "", ""})

	return tbl.Render()
}

// FileContributions renders attribution for a single file.
func FileContributions(path, language string, contributions map[string]stats.Stats) string {
	if len(contributions) == 0 {
		return msgNoData
	}

	tbl := newTable()
	tbl.SetTitle(fmt.Sprintf("%s (%s)", path, language))
	tbl.AppendHeader(table.Row{"Author", "Lines", "Code", "Comments", "Blanks"})

	for _, author := range sortedKeys(contributions) {
		s := contributions[author]
		tbl.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(author),
			humanize.Comma(int64(s.Lines)),
			humanize.Comma(int64(s.Code)),
			humanize.Comma(int64(s.Comments)),
			humanize.Comma(int64(s.Blanks)),
		})
	}

	return tbl.Render()
}

// DiffStats renders per-author insertion and deletion totals.
func DiffStats(diffs map[string]stats.DiffStats) string {
	if len(diffs) == 0 {
		return msgNoData
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Author", "Insertions", "Deletions"})

	var totalIns, totalDel int

	for _, author := range sortedKeys(diffs) {
		diff := diffs[author]
		totalIns += diff.Insertions
		totalDel += diff.Deletions

		tbl.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(author),
			color.New(color.FgGreen).Sprintf("+%s", humanize.Comma(int64(diff.Insertions))),
			color.New(color.FgRed).Sprintf("-%s", humanize.Comma(int64(diff.Deletions))),
		})
	}

	tbl.AppendFooter(table.Row{
		"Total",
		fmt.Sprintf("+%s", humanize.Comma(int64(totalIns))),
		fmt.Sprintf("-%s", humanize.Comma(int64(totalDel))),
	})

	return tbl.Render()
}

// TouchedFiles renders the set of files each author has committed changes to.
func TouchedFiles(touched map[string]map[string]struct{}) string {
	if len(touched) == 0 {
		return msgNoData
	}

	tbl := newTable()
	tbl.AppendHeader(table.Row{"Author", "Files", "Paths"})

	for _, author := range sortedKeys(touched) {
		paths := sortedKeys(touched[author])

		tbl.AppendRow(table.Row{
			color.New(color.FgCyan).Sprint(author),
			humanize.Comma(int64(len(paths))),
			strings.Join(paths, "\n"),
		})
	}

	return tbl.Render()
}

// Contributors renders the unique commit author names.
func Contributors(authors map[string]struct{}) string {
	if len(authors) == 0 {
		return msgNoData
	}

	names := sortedKeys(authors)
	lines := make([]string, 0, len(names))

	for _, name := range names {
		lines = append(lines, color.New(color.FgCyan).Sprint(name))
	}

	return strings.Join(lines, "\n")
}
