// Package diffview renders a unified-style diff of a proposed file rewrite.
package diffview

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
)

const contextLines = 3

var (
	headerColor = color.New(color.FgCyan)
	delColor    = color.New(color.FgRed)
	insColor    = color.New(color.FgGreen)
)

type lineDiff struct {
	op   diffmatchpatch.Operation
	text string // without trailing newline
}

// Render writes a unified diff of oldText -> newText for path to w.
// Equal runs are trimmed to a few context lines around each change.
func Render(w io.Writer, path, oldText, newText string) {
	flat := diffLines(oldText, newText)

	_, _ = fmt.Fprintln(w, headerColor.Sprintf("--- a/%s", path))
	_, _ = fmt.Fprintln(w, headerColor.Sprintf("+++ b/%s", path))

	for _, h := range groupHunks(flat) {
		_, _ = fmt.Fprintln(w, headerColor.Sprintf("@@ -%d,%d +%d,%d @@", h.oldStart+1, h.oldCount, h.newStart+1, h.newCount))
		for _, d := range h.lines {
			switch d.op {
			case diffmatchpatch.DiffDelete:
				_, _ = fmt.Fprintln(w, delColor.Sprint("-"+d.text))
			case diffmatchpatch.DiffInsert:
				_, _ = fmt.Fprintln(w, insColor.Sprint("+"+d.text))
			default:
				_, _ = fmt.Fprintln(w, " "+d.text)
			}
		}
	}
}

// diffLines produces a line-by-line diff, one entry per source line.
func diffLines(oldText, newText string) []lineDiff {
	dmp := diffmatchpatch.New()
	rOld, rNew, lineArray := dmp.DiffLinesToRunes(oldText, newText)
	diffs := dmp.DiffCleanupMerge(dmp.DiffMainRunes(rOld, rNew, false))

	var flat []lineDiff
	for _, d := range diffs {
		for _, r := range d.Text {
			idx := int(r)
			if idx < 0 || idx >= len(lineArray) {
				continue
			}
			flat = append(flat, lineDiff{
				op:   d.Type,
				text: strings.TrimSuffix(lineArray[idx], "\n"),
			})
		}
	}
	return flat
}

type hunk struct {
	oldStart, oldCount int
	newStart, newCount int
	lines              []lineDiff
}

// groupHunks trims long equal runs, keeping contextLines around each change
// and merging changes whose context would overlap.
func groupHunks(flat []lineDiff) []hunk {
	// Absolute old/new line offsets for each entry.
	oldPos := make([]int, len(flat))
	newPos := make([]int, len(flat))
	o, n := 0, 0
	for i, d := range flat {
		oldPos[i], newPos[i] = o, n
		if d.op != diffmatchpatch.DiffInsert {
			o++
		}
		if d.op != diffmatchpatch.DiffDelete {
			n++
		}
	}

	var hunks []hunk
	i := 0
	for i < len(flat) {
		for i < len(flat) && flat[i].op == diffmatchpatch.DiffEqual {
			i++
		}
		if i == len(flat) {
			break
		}

		start := max(0, i-contextLines)
		end := i
		for {
			// Extend through this change run and its trailing context.
			for end < len(flat) && flat[end].op != diffmatchpatch.DiffEqual {
				end++
			}
			eq := end
			for eq < len(flat) && flat[eq].op == diffmatchpatch.DiffEqual {
				eq++
			}
			if eq < len(flat) && eq-end <= 2*contextLines {
				end = eq // equal run too short to split; absorb it
				continue
			}
			end = min(end+contextLines, eq)
			break
		}

		h := hunk{oldStart: oldPos[start], newStart: newPos[start], lines: flat[start:end]}
		for _, d := range flat[start:end] {
			if d.op != diffmatchpatch.DiffInsert {
				h.oldCount++
			}
			if d.op != diffmatchpatch.DiffDelete {
				h.newCount++
			}
		}
		hunks = append(hunks, h)
		i = end
	}
	return hunks
}
