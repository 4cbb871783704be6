package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"
)

// TocItem is one entry of a rendered article's table of contents.
type TocItem struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Level int    `json:"level"`
}

var md = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// Render converts markdown to HTML.
func Render(source string) (string, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(source), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// ExtractHeadings walks the document and returns its headings in order,
// with the same auto-generated IDs the renderer assigns, so anchors in
// the TOC always resolve.
func ExtractHeadings(source string) ([]TocItem, error) {
	src := []byte(source)
	doc := md.Parser().Parse(text.NewReader(src))

	var items []TocItem
	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		h, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		item := TocItem{Level: h.Level, Text: nodeText(h, src)}
		if id, found := h.AttributeString("id"); found {
			if raw, ok := id.([]byte); ok {
				item.ID = string(raw)
			}
		}
		items = append(items, item)
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return items, nil
}

func nodeText(n ast.Node, src []byte) string {
	var sb strings.Builder
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(src))
		case *ast.String:
			sb.Write(t.Value)
		default:
			sb.WriteString(nodeText(c, src))
		}
	}
	return sb.String()
}
