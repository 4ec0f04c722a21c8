package wrap

import (
	"slices"
	"testing"
)

func TestEnsureTripleQuotesSingleLine(t *testing.T) {
	t.Parallel()

	lines := []string{"    'Short.'"}
	changed, err := ensureTripleQuotes(lines, "", "'")
	if err != nil {
		t.Fatalf("ensureTripleQuotes: %v", err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if lines[0] != `    """Short."""` {
		t.Errorf("got %q", lines[0])
	}
}

func TestEnsureTripleQuotesMultiLine(t *testing.T) {
	t.Parallel()

	lines := []string{"    '''", "    body text", "    '''"}
	changed, err := ensureTripleQuotes(lines, "", "'''")
	if err != nil {
		t.Fatalf("ensureTripleQuotes: %v", err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	want := []string{`    """`, "    body text", `    """`}
	if !slices.Equal(lines, want) {
		t.Errorf("got %q, want %q", lines, want)
	}
}

func TestEnsureTripleQuotesRawPrefix(t *testing.T) {
	t.Parallel()

	lines := []string{`    r'figure \n drawing'`}
	changed, err := ensureTripleQuotes(lines, "r", "'")
	if err != nil {
		t.Fatalf("ensureTripleQuotes: %v", err)
	}
	if !changed {
		t.Fatal("expected change")
	}
	if lines[0] != `    r"""figure \n drawing"""` {
		t.Errorf("raw prefix lost: %q", lines[0])
	}
}

func TestEnsureTripleQuotesAlreadyTriple(t *testing.T) {
	t.Parallel()

	lines := []string{`    """fine"""`}
	changed, err := ensureTripleQuotes(lines, "", `"""`)
	if err != nil {
		t.Fatalf("ensureTripleQuotes: %v", err)
	}
	if changed {
		t.Errorf("unexpected change: %q", lines[0])
	}
}

func TestEnsureTripleQuotesMismatch(t *testing.T) {
	t.Parallel()

	// A docstring whose last line does not end in the opening quote (for
	// example because of a trailing comment) cannot be converted.
	lines := []string{"    'text", "    more text"}
	if _, err := ensureTripleQuotes(lines, "", "'"); err == nil {
		t.Error("expected error for unterminated docstring")
	}
}

func TestSplitSingleLine(t *testing.T) {
	t.Parallel()

	got, err := splitSingleLine(`    """abc def"""`, "", `"""`)
	if err != nil {
		t.Fatalf("splitSingleLine: %v", err)
	}
	want := []string{`    """`, "    abc def", `    """`}
	if !slices.Equal(got, want) {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestSplitSingleLineRaw(t *testing.T) {
	t.Parallel()

	got, err := splitSingleLine(`    r"""abc"""`, "r", `"""`)
	if err != nil {
		t.Fatalf("splitSingleLine: %v", err)
	}
	if got[0] != `    r"""` {
		t.Errorf("opening line = %q, raw prefix must stay on it", got[0])
	}
	if got[2] != `    """` {
		t.Errorf("closing line = %q, closing quote has no prefix", got[2])
	}
}
