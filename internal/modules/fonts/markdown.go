package fonts

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// AI generation returns markdown, but LinkedIn has no markup: emphasis must
// become the visually-equivalent Unicode alphabets before display.
var markdownEngine = goldmark.New()

// IngestMarkdown converts markdown emphasis to Unicode styled runs:
// **bold** → bold alphabet, *italic* → italic, ***both*** → bold-italic
// (CommonMark nesting), `code` → monospace. Headings render bold. No literal
// markers survive.
func IngestMarkdown(src string) string {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return ""
	}

	source := []byte(trimmed)
	doc := markdownEngine.Parser().Parse(gmtext.NewReader(source))

	var blocks []string
	for child := doc.FirstChild(); child != nil; child = child.NextSibling() {
		if rendered := renderBlock(child, source); rendered != "" {
			blocks = append(blocks, rendered)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func renderBlock(n ast.Node, source []byte) string {
	switch node := n.(type) {
	case *ast.Heading:
		return renderInline(node, source, 1, 0)
	case *ast.Paragraph, *ast.TextBlock:
		return renderInline(n, source, 0, 0)
	case *ast.List:
		return renderList(node, source)
	case *ast.Blockquote:
		var parts []string
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			if rendered := renderBlock(child, source); rendered != "" {
				parts = append(parts, rendered)
			}
		}
		return strings.Join(parts, "\n")
	case *ast.FencedCodeBlock:
		return renderCodeLines(node, source)
	case *ast.CodeBlock:
		return renderCodeLines(node, source)
	case *ast.ThematicBreak:
		return "—"
	default:
		var parts []string
		for child := n.FirstChild(); child != nil; child = child.NextSibling() {
			if rendered := renderBlock(child, source); rendered != "" {
				parts = append(parts, rendered)
			}
		}
		return strings.Join(parts, "\n")
	}
}

func renderList(list *ast.List, source []byte) string {
	var lines []string
	index := list.Start
	if index == 0 {
		index = 1
	}
	for item := list.FirstChild(); item != nil; item = item.NextSibling() {
		var itemParts []string
		for child := item.FirstChild(); child != nil; child = child.NextSibling() {
			if rendered := renderBlock(child, source); rendered != "" {
				itemParts = append(itemParts, rendered)
			}
		}
		marker := "- "
		if list.IsOrdered() {
			marker = fmt.Sprintf("%d. ", index)
			index++
		}
		lines = append(lines, marker+strings.Join(itemParts, "\n"))
	}
	return strings.Join(lines, "\n")
}

func renderCodeLines(n interface {
	Lines() *gmtext.Segments
}, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.WriteString(Apply(strings.TrimRight(string(seg.Value(source)), "\n"), Monospace))
		if i < lines.Len()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// renderInline flattens an inline subtree, tracking emphasis depth.
func renderInline(n ast.Node, source []byte, bold, italic int) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		switch node := child.(type) {
		case *ast.Text:
			writeStyled(&b, string(node.Segment.Value(source)), bold, italic)
			if node.SoftLineBreak() || node.HardLineBreak() {
				b.WriteString("\n")
			}
		case *ast.String:
			writeStyled(&b, string(node.Value), bold, italic)
		case *ast.Emphasis:
			if node.Level >= 2 {
				b.WriteString(renderInline(node, source, bold+1, italic))
			} else {
				b.WriteString(renderInline(node, source, bold, italic+1))
			}
		case *ast.CodeSpan:
			b.WriteString(Apply(codeSpanText(node, source), Monospace))
		case *ast.Link:
			label := renderInline(node, source, bold, italic)
			b.WriteString(label)
			if dest := string(node.Destination); dest != "" && dest != label {
				b.WriteString(" (" + dest + ")")
			}
		case *ast.AutoLink:
			b.WriteString(string(node.URL(source)))
		case *ast.Image:
			b.WriteString(renderInline(node, source, bold, italic))
		default:
			b.WriteString(renderInline(child, source, bold, italic))
		}
	}
	return b.String()
}

func codeSpanText(n *ast.CodeSpan, source []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
		}
	}
	return b.String()
}

func writeStyled(b *strings.Builder, text string, bold, italic int) {
	style := Normal
	switch {
	case bold > 0 && italic > 0:
		style = BoldItalic
	case bold > 0:
		style = Bold
	case italic > 0:
		style = Italic
	}
	if style == Normal {
		b.WriteString(text)
		return
	}
	b.WriteString(Apply(text, style))
}
