package richtext

import (
	"encoding/json"
	"fmt"
	"html"
	"strings"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/go-faster/errors"
)

// node is a Tiptap-style document node. Documents are stored verbatim as JSON
// and only rendered to HTML on the public read path.
type node struct {
	Type    string                 `json:"type"`
	Text    string                 `json:"text"`
	Content []node                 `json:"content"`
	Marks   []mark                 `json:"marks"`
	Attrs   map[string]interface{} `json:"attrs"`
}

type mark struct {
	Type  string                 `json:"type"`
	Attrs map[string]interface{} `json:"attrs"`
}

var codeFormatter = chromahtml.New(chromahtml.WithClasses(false))

// Render converts a stored rich-text JSON document into HTML. Unknown node
// types are skipped rather than failing the whole document, so content saved
// by a newer editor still renders.
func Render(doc []byte) (string, error) {
	if len(doc) == 0 {
		return "", nil
	}
	var root node
	if err := json.Unmarshal(doc, &root); err != nil {
		return "", errors.Wrap(err, "parse rich text document")
	}
	if root.Type != "doc" {
		return "", errors.Errorf("unexpected root node type %q", root.Type)
	}

	var b strings.Builder
	renderNodes(&b, root.Content)
	return b.String(), nil
}

func renderNodes(b *strings.Builder, nodes []node) {
	for _, n := range nodes {
		renderNode(b, n)
	}
}

func renderNode(b *strings.Builder, n node) {
	switch n.Type {
	case "paragraph":
		b.WriteString("<p>")
		renderNodes(b, n.Content)
		b.WriteString("</p>")
	case "heading":
		level := attrInt(n.Attrs, "level", 1)
		if level < 1 || level > 6 {
			level = 1
		}
		fmt.Fprintf(b, "<h%d>", level)
		renderNodes(b, n.Content)
		fmt.Fprintf(b, "</h%d>", level)
	case "bulletList":
		b.WriteString("<ul>")
		renderNodes(b, n.Content)
		b.WriteString("</ul>")
	case "orderedList":
		b.WriteString("<ol>")
		renderNodes(b, n.Content)
		b.WriteString("</ol>")
	case "listItem":
		b.WriteString("<li>")
		renderNodes(b, n.Content)
		b.WriteString("</li>")
	case "blockquote":
		b.WriteString("<blockquote>")
		renderNodes(b, n.Content)
		b.WriteString("</blockquote>")
	case "codeBlock":
		renderCodeBlock(b, n)
	case "image":
		src := attrString(n.Attrs, "src")
		if src == "" {
			return
		}
		alt := attrString(n.Attrs, "alt")
		fmt.Fprintf(b, `<img src="%s" alt="%s">`, html.EscapeString(src), html.EscapeString(alt))
	case "hardBreak":
		b.WriteString("<br>")
	case "horizontalRule":
		b.WriteString("<hr>")
	case "text":
		b.WriteString(renderText(n))
	default:
		// Unknown block: render children so nested text is not lost.
		renderNodes(b, n.Content)
	}
}

func renderText(n node) string {
	out := html.EscapeString(n.Text)
	// Marks wrap inside-out so the first mark ends up outermost.
	for i := len(n.Marks) - 1; i >= 0; i-- {
		m := n.Marks[i]
		switch m.Type {
		case "bold":
			out = "<strong>" + out + "</strong>"
		case "italic":
			out = "<em>" + out + "</em>"
		case "strike":
			out = "<s>" + out + "</s>"
		case "code":
			out = "<code>" + out + "</code>"
		case "link":
			href := attrString(m.Attrs, "href")
			if href == "" || !safeLink(href) {
				continue
			}
			out = `<a href="` + html.EscapeString(href) + `" rel="noopener">` + out + `</a>`
		}
	}
	return out
}

func renderCodeBlock(b *strings.Builder, n node) {
	var code strings.Builder
	collectText(&code, n.Content)

	lang := attrString(n.Attrs, "language")
	lexer := lexers.Get(lang)
	if lexer == nil {
		lexer = lexers.Analyse(code.String())
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}

	iterator, err := lexer.Tokenise(nil, code.String())
	if err == nil {
		var highlighted strings.Builder
		if ferr := codeFormatter.Format(&highlighted, styles.Get("github"), iterator); ferr == nil {
			b.WriteString(highlighted.String())
			return
		}
	}
	// Highlighting is best-effort; fall back to plain escaped output.
	b.WriteString("<pre><code>")
	b.WriteString(html.EscapeString(code.String()))
	b.WriteString("</code></pre>")
}

func collectText(b *strings.Builder, nodes []node) {
	for _, n := range nodes {
		if n.Type == "text" {
			b.WriteString(n.Text)
		}
		collectText(b, n.Content)
	}
}

func safeLink(href string) bool {
	lower := strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(lower, "http://") ||
		strings.HasPrefix(lower, "https://") ||
		strings.HasPrefix(lower, "mailto:") ||
		strings.HasPrefix(lower, "/")
}

func attrString(attrs map[string]interface{}, key string) string {
	if attrs == nil {
		return ""
	}
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

func attrInt(attrs map[string]interface{}, key string, fallback int) int {
	if attrs == nil {
		return fallback
	}
	if v, ok := attrs[key].(float64); ok {
		return int(v)
	}
	return fallback
}
