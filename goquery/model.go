// Package goquery provides the goquery-backed markup model and the field
// locator heuristics that scan it for publicity periods and bidder/price
// pairs. Announcement bodies come from many independent authoring templates,
// so everything here is best-effort: malformed markup degrades to a partial
// model and locators that find nothing return empty results.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/jqin/bidwatch"
	"golang.org/x/net/html"
)

// Ensure interface compliance at compile time.
var (
	_ bidwatch.ModelParser = (*Parser)(nil)
	_ bidwatch.MarkupModel = (*Model)(nil)
	_ bidwatch.Table       = (*tableModel)(nil)
	_ bidwatch.Row         = (*rowModel)(nil)
)

// Parser builds markup models from raw HTML strings.
type Parser struct{}

// NewParser creates a new Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse builds a MarkupModel. html.Parse auto-closes unbalanced elements,
// so malformed fragments yield a partial model rather than an error.
func (p *Parser) Parse(markup string) bidwatch.MarkupModel {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		// Only reader failures reach here; an empty document keeps the
		// model contract (locators see nothing and miss).
		doc, _ = goquery.NewDocumentFromReader(strings.NewReader(""))
	}
	return &Model{doc: doc}
}

// Model implements bidwatch.MarkupModel over a goquery document.
type Model struct {
	doc  *goquery.Document
	text string // lazily flattened
}

// blockElements force a line boundary in the flattened text view.
// goquery's Selection.Text concatenates text nodes with no separators,
// which would glue adjacent cells and paragraphs together and break the
// line-oriented locator regexes, hence the manual node walk.
var blockElements = map[string]bool{
	"p": true, "div": true, "table": true, "tr": true, "td": true,
	"th": true, "li": true, "br": true, "h1": true, "h2": true,
	"h3": true, "h4": true, "h5": true, "h6": true, "section": true,
}

func (m *Model) Text() string {
	if m.text == "" {
		var b strings.Builder
		for _, n := range m.doc.Selection.Nodes {
			flatten(n, &b)
		}
		m.text = collapseLines(b.String())
	}
	return m.text
}

func (m *Model) Tables() []bidwatch.Table {
	var tables []bidwatch.Table
	m.doc.Find("table").Each(func(_ int, sel *goquery.Selection) {
		tables = append(tables, &tableModel{sel: sel})
	})
	return tables
}

func (m *Model) Paragraphs() []string {
	var paras []string
	m.doc.Find("p, li, h1, h2, h3, h4").Each(func(_ int, sel *goquery.Selection) {
		if text := nodeText(sel); text != "" {
			paras = append(paras, text)
		}
	})
	return paras
}

type tableModel struct {
	sel *goquery.Selection
}

func (t *tableModel) Rows() []bidwatch.Row {
	var rows []bidwatch.Row
	t.sel.Find("tr").Each(func(_ int, sel *goquery.Selection) {
		rows = append(rows, &rowModel{sel: sel})
	})
	return rows
}

type rowModel struct {
	sel *goquery.Selection
}

func (r *rowModel) Cells() []string {
	var cells []string
	r.sel.Find("th, td").Each(func(_ int, sel *goquery.Selection) {
		cells = append(cells, nodeText(sel))
	})
	return cells
}

// nodeText flattens a selection's subtree to a single whitespace-collapsed line.
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		flatten(n, &b)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// flatten walks an html node tree writing text content, with block element
// boundaries collapsed to newlines and inline boundaries to spaces.
func flatten(n *html.Node, b *strings.Builder) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
	case html.ElementNode:
		if n.Data == "script" || n.Data == "style" {
			return
		}
		if blockElements[n.Data] {
			b.WriteByte('\n')
		} else {
			b.WriteByte(' ')
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		flatten(c, b)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteByte('\n')
	}
}

// collapseLines trims every line and drops empty ones, so locator regexes
// see one block element per line.
func collapseLines(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line != "" {
			out = append(out, line)
		}
	}
	return strings.Join(out, "\n")
}
