// Package parse locates prose regions (docstrings and block comments) in
// Python source using tree-sitter.
package parse

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"

	"github.com/phobologic/docwrap/internal/model"
)

// File holds the prose regions located in one source file.
type File struct {
	Docstrings []model.Region // ordered by start line
	Comments   []model.Region // runs of consecutive block-comment lines
}

// quoteRe splits a string literal into prefix letters and its opening quote.
// Triple quotes must come first so the alternation prefers them.
var quoteRe = regexp.MustCompile(`^([A-Za-z]*)("""|'''|"|')`)

// Parse builds the syntax tree for source and extracts its prose regions.
// A tree containing syntax errors is treated as unparseable: the caller
// should report the file and leave it untouched.
func Parse(source []byte) (*File, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(python.GetLanguage())

	tree, err := parser.ParseCtx(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, errors.New("file contains syntax errors")
	}

	f := &File{}
	var commentRows []int

	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "module":
			f.addDocstring(n, source)
		case "class_definition", "function_definition":
			if body := n.ChildByFieldName("body"); body != nil {
				f.addDocstring(body, source)
			}
		case "comment":
			if row, ok := blockCommentRow(n, source); ok {
				commentRows = append(commentRows, row)
			}
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	f.Comments = groupRows(commentRows)
	return f, nil
}

// addDocstring records a docstring region if body's first statement (skipping
// comments) is a plain or raw string constant. Interpolated (f-prefixed) and
// bytes literals are not docstrings: their value is not a static string.
func (f *File) addDocstring(body *sitter.Node, source []byte) {
	var first *sitter.Node
	for i := 0; i < int(body.NamedChildCount()); i++ {
		child := body.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		first = child
		break
	}
	if first == nil || first.Type() != "expression_statement" || first.NamedChildCount() == 0 {
		return
	}

	str := first.NamedChild(0)
	if str.Type() != "string" {
		return
	}

	text := source[str.StartByte():str.EndByte()]
	m := quoteRe.FindSubmatch(text)
	if m == nil {
		return
	}
	prefix, quote := string(m[1]), string(m[2])
	if strings.ContainsAny(prefix, "fFbB") {
		return
	}

	f.Docstrings = append(f.Docstrings, model.Region{
		Kind:       model.Docstring,
		StartLine:  int(str.StartPoint().Row),
		EndLine:    int(str.EndPoint().Row),
		Prefix:     prefix,
		Quote:      quote,
		SingleLine: str.StartPoint().Row == str.EndPoint().Row,
	})
}

// blockCommentRow reports the line of a comment node that has nothing but
// whitespace before it. End-of-line comments and the shebang are excluded.
func blockCommentRow(n *sitter.Node, source []byte) (int, bool) {
	start := n.StartByte()
	col := n.StartPoint().Column
	lineStart := start - col
	for i := lineStart; i < start; i++ {
		if source[i] != ' ' && source[i] != '\t' {
			return 0, false
		}
	}
	row := int(n.StartPoint().Row)
	if row == 0 && strings.HasPrefix(string(source[start:n.EndByte()]), "#!") {
		return 0, false
	}
	return row, true
}

// groupRows folds sorted line numbers into regions of consecutive lines.
func groupRows(rows []int) []model.Region {
	var regions []model.Region
	for _, row := range rows {
		if n := len(regions); n > 0 && regions[n-1].EndLine == row-1 {
			regions[n-1].EndLine = row
			continue
		}
		regions = append(regions, model.Region{
			Kind:      model.BlockComment,
			StartLine: row,
			EndLine:   row,
		})
	}
	return regions
}
