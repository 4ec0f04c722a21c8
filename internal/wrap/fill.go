package wrap

import (
	"github.com/mattn/go-runewidth"
)

// lineWidth measures a line in terminal cells. Identical to len for ASCII,
// but counts East Asian wide runes as two cells.
func lineWidth(s string) int {
	return runewidth.StringWidth(s)
}

// fill greedily packs words into lines no wider than max. The first line
// starts with first (indent plus any list marker); continuation lines start
// with subsequent (the hanging indent). A word that cannot fit even alone is
// emitted on its own line unbroken.
func fill(words []string, first, subsequent string, max int) []string {
	if len(words) == 0 {
		return nil
	}
	var lines []string
	line := first + words[0]
	for _, w := range words[1:] {
		if lineWidth(line)+1+lineWidth(w) <= max {
			line += " " + w
			continue
		}
		lines = append(lines, line)
		line = subsequent + w
	}
	return append(lines, line)
}
