// Package stats provides the line-statistics value types produced by the
// attribution engine. All types form commutative monoids under addition:
// the zero value is the identity and Add is component-wise. This is what
// makes order-independent parallel reduction over per-file results correct.
package stats

// LineKind classifies a single source line.
type LineKind int

const (
	// Code is a line containing at least one token of program text.
	Code LineKind = iota
	// Comment is a line containing only comment text.
	Comment
	// Blank is a line containing only whitespace.
	Blank
)

// String returns the human-readable name of the line kind.
func (k LineKind) String() string {
	switch k {
	case Code:
		return "code"
	case Comment:
		return "comment"
	case Blank:
		return "blank"
	default:
		return "unknown"
	}
}

// Stats holds line counts for a file or a collection of files.
// Invariant: Lines == Code + Comments + Blanks. The invariant holds by
// construction: values are only ever built by AddLine and Add.
type Stats struct {
	Lines    int
	Code     int
	Comments int
	Blanks   int
}

// Add returns the component-wise sum of two Stats.
func (s Stats) Add(other Stats) Stats {
	return Stats{
		Lines:    s.Lines + other.Lines,
		Code:     s.Code + other.Code,
		Comments: s.Comments + other.Comments,
		Blanks:   s.Blanks + other.Blanks,
	}
}

// AddLine returns s with one line of the given kind counted.
func (s Stats) AddLine(kind LineKind) Stats {
	s.Lines++

	switch kind {
	case Code:
		s.Code++
	case Comment:
		s.Comments++
	case Blank:
		s.Blanks++
	}

	return s
}

// IsZero reports whether s is the additive identity.
func (s Stats) IsZero() bool {
	return s == Stats{}
}

// DiffStats holds insertion and deletion counts accumulated over commit
// diffs. The zero value is the identity; Add is component-wise.
type DiffStats struct {
	Insertions int
	Deletions  int
}

// Add returns the component-wise sum of two DiffStats.
func (d DiffStats) Add(other DiffStats) DiffStats {
	return DiffStats{
		Insertions: d.Insertions + other.Insertions,
		Deletions:  d.Deletions + other.Deletions,
	}
}
