package markdown

import (
	"strings"
	"testing"
)

const sample = `# Getting Started

Intro text.

## Installation

` + "```bash\ngo install\n```" + `

## Usage

### With *flags*

Done.
`

func TestRender(t *testing.T) {
	html, err := Render(sample)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<h1") || !strings.Contains(html, "Getting Started") {
		t.Fatalf("html=%q", html)
	}
	if !strings.Contains(html, "<pre>") {
		t.Fatalf("fenced code block not rendered: %q", html)
	}
}

func TestRenderGFMTable(t *testing.T) {
	html, err := Render("| a | b |\n|---|---|\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(html, "<table>") {
		t.Fatalf("GFM table not rendered: %q", html)
	}
}

func TestExtractHeadings(t *testing.T) {
	items, err := ExtractHeadings(sample)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(items) != 4 {
		t.Fatalf("headings=%d: %+v", len(items), items)
	}
	if items[0].Level != 1 || items[0].Text != "Getting Started" {
		t.Fatalf("first=%+v", items[0])
	}
	if items[1].Level != 2 || items[1].Text != "Installation" {
		t.Fatalf("second=%+v", items[1])
	}
	// Inline markup inside a heading flattens to plain text.
	if items[3].Text != "With flags" {
		t.Fatalf("nested heading text=%q", items[3].Text)
	}
	for _, it := range items {
		if it.ID == "" {
			t.Fatalf("heading %q has no anchor id", it.Text)
		}
	}
}

func TestExtractHeadingsAnchorsMatchRender(t *testing.T) {
	items, err := ExtractHeadings(sample)
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	html, err := Render(sample)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, it := range items {
		if !strings.Contains(html, `id="`+it.ID+`"`) {
			t.Fatalf("anchor %q missing from rendered html", it.ID)
		}
	}
}

func TestExtractHeadingsEmpty(t *testing.T) {
	items, err := ExtractHeadings("just a paragraph")
	if err != nil {
		t.Fatalf("extract: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("items=%+v", items)
	}
}
