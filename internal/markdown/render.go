package markdown

import (
	"bytes"
	"strings"

	"github.com/russross/blackfriday/v2"
)

// HeadingNode is one entry of a document's table of contents.
type HeadingNode struct {
	ID    string `json:"id"`
	Title string `json:"title"`
	Level int    `json:"level"`
}

// Document is the result of rendering markdown source.
type Document struct {
	HTML string        `json:"html"`
	TOC  []HeadingNode `json:"toc"`
}

type Options struct {
	// SkipHTML drops raw HTML blocks and spans from the output.
	SkipHTML bool
}

const extensions = blackfriday.NoIntraEmphasis |
	blackfriday.Tables |
	blackfriday.FencedCode |
	blackfriday.Strikethrough |
	blackfriday.SpaceHeadings |
	blackfriday.HardLineBreak

// Render converts markdown to HTML and collects the level 2 and 3 headings.
func Render(src string) Document {
	return RenderWithOptions(src, Options{})
}

// RenderWithOptions is Render with explicit renderer options. It never fails;
// malformed markdown still yields best-effort HTML.
func RenderWithOptions(src string, opts Options) Document {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	root := blackfriday.New(blackfriday.WithExtensions(extensions)).Parse([]byte(src))

	flags := blackfriday.UseXHTML
	if opts.SkipHTML {
		flags |= blackfriday.SkipHTML
	}
	renderer := blackfriday.NewHTMLRenderer(blackfriday.HTMLRendererParameters{Flags: flags})

	ids := newIDSet()
	doc := Document{TOC: []HeadingNode{}}
	var buf bytes.Buffer

	renderer.RenderHeader(&buf, root)
	root.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && node.Type == blackfriday.Heading {
			level := node.HeadingData.Level
			if level == 2 || level == 3 {
				title := headingText(node)
				node.HeadingID = ids.claim(Slugify(title))
				doc.TOC = append(doc.TOC, HeadingNode{ID: node.HeadingID, Title: title, Level: level})
			} else {
				node.HeadingID = ""
			}
		}
		return renderer.RenderNode(&buf, node, entering)
	})
	renderer.RenderFooter(&buf, root)

	doc.HTML = buf.String()
	return doc
}

// RenderHTML is a convenience for callers that only need the markup.
func RenderHTML(src string) string {
	return Render(src).HTML
}

func headingText(heading *blackfriday.Node) string {
	var b strings.Builder
	heading.Walk(func(node *blackfriday.Node, entering bool) blackfriday.WalkStatus {
		if entering && (node.Type == blackfriday.Text || node.Type == blackfriday.Code) {
			b.Write(node.Literal)
		}
		return blackfriday.GoToNext
	})
	return strings.TrimSpace(b.String())
}
