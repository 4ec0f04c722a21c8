// Package model defines core data structures for docwrap.
package model

// RegionKind indicates what kind of prose a region holds.
type RegionKind string

const (
	BlockComment RegionKind = "comment"
	Docstring    RegionKind = "docstring"
)

// Region is a contiguous span of prose lines in a source file: either a
// docstring or a run of block-comment lines. Line numbers are 0-based and
// inclusive. Regions are recomputed on every file scan and never mutated;
// edits supersede them.
type Region struct {
	Kind      RegionKind
	StartLine int
	EndLine   int

	// Docstring-only metadata.
	Prefix     string // literal prefix letters as written, e.g. "r" or "R"
	Quote      string // `'`, `"`, `'''` or `"""`
	SingleLine bool   // opening and closing quotes on the same source line
}

// ListMarker is a recognized bullet, numbered, or lettered list marker at the
// start of a line's text. Width counts the marker and the whitespace
// following it; continuation lines of the item hang at that width.
type ListMarker struct {
	Text  string
	Width int
}

// Paragraph identifies one rewrap unit inside a region's line slice.
// Start/End are region-local indices, Start inclusive, End exclusive.
// Indent is the full leading prefix of the first line (for comments this
// includes the "#" and the spaces after it) and Marker is the list marker,
// if any, that immediately follows it.
type Paragraph struct {
	Start  int
	End    int
	Indent string
	Marker string
}

// Options parameterize the rewrap engine.
type Options struct {
	MaxDocLength      int
	ForceTripleQuotes bool
	SkipComments      bool
	SkipDocstrings    bool
}
