package wrap

import (
	"regexp"
	"strings"

	"github.com/phobologic/docwrap/internal/model"
)

// listMarkerRe matches a bullet, numbered, or lettered list marker at the
// start of line text, including the whitespace that follows it.
// Bullets: "-", "*", "+". Numbers: one or two digits followed by "." or ")".
// Letters: a single letter followed by "." or ")".
var listMarkerRe = regexp.MustCompile(`^(?:[-*+]|[1-9][0-9]?[.)]|[A-Za-z][.)])\s+`)

// noqaRe matches lint-suppression directives; such lines are never rewrapped.
var noqaRe = regexp.MustCompile(`(?i)#\s*noqa`)

var (
	docstringIndentRe = regexp.MustCompile(`^\s*`)
	commentIndentRe   = regexp.MustCompile(`^\s*#\s*`)
)

// MatchListMarker recognizes a list marker at the start of trimmed line text.
// Returns nil when text does not begin a list item. The marker width becomes
// the hanging-indent width for continuation lines of the item's paragraph.
func MatchListMarker(text string) *model.ListMarker {
	m := listMarkerRe.FindString(text)
	if m == "" {
		return nil
	}
	return &model.ListMarker{Text: m, Width: len(m)}
}

// splitLine divides a prose line into its indentation prefix and remaining
// text. For comment lines the prefix includes the "#" and any spaces after
// it. The text is stripped of trailing whitespace.
func splitLine(line string, isDocstring bool) (indent, text string) {
	re := docstringIndentRe
	if !isDocstring {
		re = commentIndentRe
	}
	indent = re.FindString(line)
	text = strings.TrimRight(line[len(indent):], " \t")
	return indent, text
}

func isDoctest(text string) bool {
	return strings.HasPrefix(text, ">>>")
}

func endsInColon(text string) bool {
	return strings.HasSuffix(text, ":")
}

// quoteLineRe matches a bare docstring delimiter, with or without literal
// prefix letters: `"""`, `'''`, `r"""`, ...
var quoteLineRe = regexp.MustCompile(`^[A-Za-z]*("""|''')$`)

// isQuoteLine reports whether line text is a bare docstring delimiter, which
// opens or closes a docstring and never joins an adjacent paragraph.
func isQuoteLine(text string) bool {
	return quoteLineRe.MatchString(strings.TrimSpace(text))
}

// findParagraph locates the paragraph around the violating line at idx within
// a region's line slice. The backward scan walks up while the adjacent line
// continues the same paragraph; the forward scan extends past idx until a
// boundary. Indentation is compared only between immediately adjacent lines,
// so irregular interior indentation stops the scan at that point rather than
// mis-anchoring the whole paragraph.
func findParagraph(seg []string, idx int, isDocstring bool) model.Paragraph {
	start := scanBackward(seg, idx, isDocstring)
	indent, text := splitLine(seg[start], isDocstring)
	var marker string
	if m := MatchListMarker(text); m != nil {
		marker = m.Text
	}
	end := scanForward(seg, start, isDocstring, indent, marker)
	return model.Paragraph{Start: start, End: end, Indent: indent, Marker: marker}
}

func scanBackward(seg []string, idx int, isDocstring bool) int {
	_, curText := splitLine(seg[idx], isDocstring)
	if isDoctest(curText) || MatchListMarker(curText) != nil {
		return idx
	}

	start := idx
	for start > 0 {
		prevIndent, prevText := splitLine(seg[start-1], isDocstring)
		curIndent, _ := splitLine(seg[start], isDocstring)

		if prevText == "" {
			break
		}
		if noqaRe.MatchString(seg[start-1]) {
			break
		}
		if isDocstring && isQuoteLine(prevText) {
			break
		}
		if isDoctest(prevText) {
			break
		}
		if endsInColon(prevText) {
			break
		}
		if m := MatchListMarker(prevText); m != nil {
			// The marker line is the paragraph's first line when the
			// current line hangs under it.
			if len(prevIndent)+m.Width == len(curIndent) {
				start--
			}
			break
		}
		if len(prevIndent) != len(curIndent) {
			break
		}
		start--
	}
	return start
}

func scanForward(seg []string, start int, isDocstring bool, indent, marker string) int {
	_, startText := splitLine(seg[start], isDocstring)
	end := start + 1
	if endsInColon(startText) {
		// A colon introduces a code block; never merge following lines.
		return end
	}

	prefix := indent + strings.Repeat(" ", len(marker))
	for end < len(seg) {
		line := seg[end]
		if !strings.HasPrefix(line, prefix) {
			break
		}
		rest := strings.TrimRight(line[len(prefix):], " \t")
		if rest == "" {
			break
		}
		if isDocstring && isQuoteLine(rest) {
			break
		}
		if strings.HasPrefix(rest, " ") || strings.HasPrefix(rest, "\t") ||
			isDoctest(rest) || MatchListMarker(rest) != nil {
			break
		}
		if noqaRe.MatchString(line) {
			break
		}
		if endsInColon(rest) {
			end++
			break
		}
		end++
	}
	return end
}
