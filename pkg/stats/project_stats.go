package stats

// ProjectStats maps contributor name to language to accumulated Stats.
// Absent entries are equivalent to zero Stats. Merging two ProjectStats is
// the nested monoid merge: union authors, union languages per shared author,
// add Stats per shared language. Merge is commutative and associative, so
// per-file results can be reduced in any order or parallel split.
type ProjectStats struct {
	stats map[string]map[string]Stats
}

// NewProjectStats constructs an empty ProjectStats.
func NewProjectStats() ProjectStats {
	return ProjectStats{stats: map[string]map[string]Stats{}}
}

// Insert adds stats for the given author and language into p.
func (p ProjectStats) Insert(author, language string, s Stats) {
	languages, ok := p.stats[author]
	if !ok {
		languages = map[string]Stats{}
		p.stats[author] = languages
	}

	languages[language] = languages[language].Add(s)
}

// Merge folds other into p using the nested monoid merge.
func (p ProjectStats) Merge(other ProjectStats) {
	for author, languages := range other.stats {
		for language, s := range languages {
			p.Insert(author, language, s)
		}
	}
}

// Contributors returns the names of all authors with at least one entry.
func (p ProjectStats) Contributors() []string {
	names := make([]string, 0, len(p.stats))
	for author := range p.stats {
		names = append(names, author)
	}

	return names
}

// ByAuthor returns the per-language stats recorded for the given author.
// The second return value is false when the author has no entries.
func (p ProjectStats) ByAuthor(author string) (map[string]Stats, bool) {
	languages, ok := p.stats[author]
	if !ok {
		return nil, false
	}

	out := make(map[string]Stats, len(languages))
	for language, s := range languages {
		out[language] = s
	}

	return out, true
}

// TotalByAuthor returns the given author's stats summed across languages.
func (p ProjectStats) TotalByAuthor(author string) (Stats, bool) {
	languages, ok := p.stats[author]
	if !ok {
		return Stats{}, false
	}

	var total Stats
	for _, s := range languages {
		total = total.Add(s)
	}

	return total, true
}

// TotalLines returns the total number of attributed lines across all
// authors and languages.
func (p ProjectStats) TotalLines() int {
	sum := 0

	for _, languages := range p.stats {
		for _, s := range languages {
			sum += s.Lines
		}
	}

	return sum
}

// Len returns the number of authors with entries.
func (p ProjectStats) Len() int {
	return len(p.stats)
}
