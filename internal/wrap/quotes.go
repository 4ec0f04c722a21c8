package wrap

import (
	"fmt"
	"strings"
)

// ensureTripleQuotes converts the docstring held in lines to """ quoting in
// place, preserving any raw prefix. prefix and quote are the literal's prefix
// letters and opening quote as the locator recorded them. Reports whether
// lines changed. The closing quote must be the trailing token of the last
// line; a docstring followed by an end-of-line comment does not satisfy that
// and is rejected.
func ensureTripleQuotes(lines []string, prefix, quote string) (bool, error) {
	if quote == `"""` {
		return false, nil
	}

	trimmed := strings.TrimLeft(lines[0], " \t")
	indent := lines[0][:len(lines[0])-len(trimmed)]
	if !strings.HasPrefix(trimmed, prefix+quote) {
		return false, fmt.Errorf("invalid docstring format: %q", lines[0])
	}
	content := trimmed[len(prefix)+len(quote):]

	last := strings.TrimRight(lines[len(lines)-1], " \t")
	if !strings.HasSuffix(last, quote) {
		return false, fmt.Errorf("invalid docstring format: %s doesn't match %q", quote, lines[len(lines)-1])
	}

	lines[0] = indent + prefix + `"""` + content
	last = strings.TrimRight(lines[len(lines)-1], " \t")
	lines[len(lines)-1] = strings.TrimSuffix(last, quote) + `"""`
	return true, nil
}

// splitSingleLine breaks a one-line docstring into opening-quote line,
// content line, and closing-quote line, all at the original indentation.
// Used when a single-line docstring no longer fits; multi-line docstrings
// keep their existing quote placement.
func splitSingleLine(line, prefix, quote string) ([]string, error) {
	trimmed := strings.TrimLeft(line, " \t")
	indent := line[:len(line)-len(trimmed)]
	if !strings.HasPrefix(trimmed, prefix+quote) {
		return nil, fmt.Errorf("invalid docstring format: %q", line)
	}

	rest := strings.TrimRight(trimmed[len(prefix)+len(quote):], " \t")
	if !strings.HasSuffix(rest, quote) {
		return nil, fmt.Errorf("invalid docstring format: %q", line)
	}
	content := strings.TrimSuffix(rest, quote)

	return []string{
		indent + prefix + quote,
		indent + content,
		indent + quote,
	}, nil
}
