// Package wrap rewraps over-long lines inside Python docstrings and block
// comments while leaving every other byte of the file alone.
package wrap

import (
	"slices"
	"sort"
	"strings"

	"github.com/phobologic/docwrap/internal/model"
	"github.com/phobologic/docwrap/internal/parse"
)

// ProcessContent rewraps the prose regions of one Python source file.
// Returns the new content and whether it differs from the input. Regions are
// edited from the bottom of the file upward so earlier line numbers stay
// valid while later spans grow or shrink. The only error conditions are an
// unparseable file and a docstring whose quotes cannot be normalized; the
// input is returned unmodified in both cases.
func ProcessContent(content string, opts model.Options) (string, bool, error) {
	f, err := parse.Parse([]byte(content))
	if err != nil {
		return content, false, err
	}

	var regions []model.Region
	if !opts.SkipDocstrings {
		regions = append(regions, f.Docstrings...)
	}
	if !opts.SkipComments {
		regions = append(regions, f.Comments...)
	}
	sort.Slice(regions, func(i, j int) bool {
		return regions[i].StartLine > regions[j].StartLine
	})

	lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
	modified := false

	for _, r := range regions {
		if r.EndLine >= len(lines) {
			continue
		}
		seg := lines[r.StartLine : r.EndLine+1]

		var newSeg []string
		var changed bool
		switch r.Kind {
		case model.Docstring:
			newSeg, changed, err = processDocstring(seg, r, opts)
			if err != nil {
				return content, false, err
			}
		case model.BlockComment:
			if !anyTooLong(seg, opts.MaxDocLength) {
				continue
			}
			newSeg, changed = rewrapText(seg, opts.MaxDocLength, false)
		}

		if changed {
			lines = splice(lines, r.StartLine, r.EndLine+1, newSeg)
			modified = true
		}
	}

	if !modified {
		return content, false, nil
	}
	return strings.Join(lines, "\n") + "\n", true, nil
}

// processDocstring normalizes quoting if required and rewraps the docstring's
// long lines, using the prefix and quote metadata the locator recorded for
// the region. A single-line docstring that fits is left exactly as written
// unless triple quotes are being forced.
func processDocstring(seg []string, r model.Region, opts model.Options) ([]string, bool, error) {
	out := slices.Clone(seg)
	changed := false
	quote := r.Quote

	if opts.ForceTripleQuotes || lineWidth(out[0]) > opts.MaxDocLength {
		c, err := ensureTripleQuotes(out, r.Prefix, quote)
		if err != nil {
			return nil, false, err
		}
		if c {
			quote = `"""`
			changed = true
		}
	}

	// A one-line docstring that no longer fits gets its quotes moved onto
	// their own lines before wrapping. Multi-line docstrings keep their
	// existing quote placement.
	if r.SingleLine && lineWidth(out[0]) > opts.MaxDocLength {
		split, err := splitSingleLine(out[0], r.Prefix, quote)
		if err != nil {
			return nil, false, err
		}
		out = split
		changed = true
	}

	if anyTooLong(out, opts.MaxDocLength) {
		wrapped, c := rewrapText(out, opts.MaxDocLength, true)
		out = wrapped
		changed = changed || c
	}

	return out, changed, nil
}

// rewrapText wraps the long lines of one prose region. Scanning resumes
// immediately after each rewritten paragraph, so rewritten lines are never
// re-checked and the pass always terminates.
func rewrapText(seg []string, max int, isDocstring bool) ([]string, bool) {
	out := slices.Clone(seg)
	modified := false

	lineno := 0
	for lineno < len(out) {
		if lineWidth(out[lineno]) <= max || noqaRe.MatchString(out[lineno]) {
			lineno++
			continue
		}

		p := findParagraph(out, lineno, isDocstring)
		prefixLen := len(p.Indent) + len(p.Marker)

		var words []string
		for _, line := range out[p.Start:p.End] {
			if len(line) > prefixLen {
				words = append(words, strings.Fields(line[prefixLen:])...)
			}
		}
		if len(words) == 0 {
			lineno++
			continue
		}

		hanging := p.Indent + strings.Repeat(" ", len(p.Marker))
		newLines := fill(words, p.Indent+p.Marker, hanging, max)
		if !slices.Equal(out[p.Start:p.End], newLines) {
			modified = true
		}
		out = splice(out, p.Start, p.End, newLines)
		lineno = p.Start + len(newLines)
	}

	return out, modified
}

func anyTooLong(lines []string, max int) bool {
	for _, line := range lines {
		if lineWidth(line) > max {
			return true
		}
	}
	return false
}

// splice replaces lines[start:end] with repl, like Python slice assignment.
func splice(lines []string, start, end int, repl []string) []string {
	out := make([]string, 0, len(lines)-(end-start)+len(repl))
	out = append(out, lines[:start]...)
	out = append(out, repl...)
	return append(out, lines[end:]...)
}
