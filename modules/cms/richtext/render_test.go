package richtext

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func parseHTML(t *testing.T, markup string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	require.NoError(t, err)
	return doc
}

func TestRender_EmptyDocument(t *testing.T) {
	out, err := Render(nil)
	require.NoError(t, err)
	require.Empty(t, out)

	out, err = Render([]byte(`{"type":"doc"}`))
	require.NoError(t, err)
	require.Empty(t, out)
}

func TestRender_RejectsNonDocRoot(t *testing.T) {
	_, err := Render([]byte(`{"type":"paragraph"}`))
	require.Error(t, err)

	_, err = Render([]byte(`{not json`))
	require.Error(t, err)
}

func TestRender_ParagraphAndHeading(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [
			{"type": "heading", "attrs": {"level": 2}, "content": [{"type": "text", "text": "Title"}]},
			{"type": "paragraph", "content": [{"type": "text", "text": "Body text"}]}
		]
	}`))
	require.NoError(t, err)

	doc := parseHTML(t, out)
	require.Equal(t, "Title", doc.Find("h2").Text())
	require.Equal(t, "Body text", doc.Find("p").Text())
}

func TestRender_HeadingLevelClamped(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "heading", "attrs": {"level": 9}, "content": [{"type": "text", "text": "x"}]}]
	}`))
	require.NoError(t, err)
	require.Contains(t, out, "<h1>")
}

func TestRender_EscapesTextNodes(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "paragraph", "content": [{"type": "text", "text": "<script>alert(1)</script>"}]}]
	}`))
	require.NoError(t, err)
	require.NotContains(t, out, "<script>")
	require.Contains(t, out, "&lt;script&gt;")
}

func TestRender_Marks(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "paragraph", "content": [
			{"type": "text", "text": "bold", "marks": [{"type": "bold"}]},
			{"type": "text", "text": " and "},
			{"type": "text", "text": "both", "marks": [{"type": "bold"}, {"type": "italic"}]}
		]}]
	}`))
	require.NoError(t, err)

	doc := parseHTML(t, out)
	require.Equal(t, "boldboth", doc.Find("strong").Text())
	require.Equal(t, "both", doc.Find("strong em").Text())
}

func TestRender_Links(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "paragraph", "content": [
			{"type": "text", "text": "docs", "marks": [{"type": "link", "attrs": {"href": "https://example.com/docs"}}]},
			{"type": "text", "text": "evil", "marks": [{"type": "link", "attrs": {"href": "javascript:alert(1)"}}]}
		]}]
	}`))
	require.NoError(t, err)

	doc := parseHTML(t, out)
	require.Equal(t, 1, doc.Find("a").Length())
	href, _ := doc.Find("a").Attr("href")
	require.Equal(t, "https://example.com/docs", href)
	// The unsafe link renders as plain text.
	require.Contains(t, doc.Find("p").Text(), "evil")
}

func TestRender_Lists(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "bulletList", "content": [
			{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "one"}]}]},
			{"type": "listItem", "content": [{"type": "paragraph", "content": [{"type": "text", "text": "two"}]}]}
		]}]
	}`))
	require.NoError(t, err)

	doc := parseHTML(t, out)
	require.Equal(t, 2, doc.Find("ul li").Length())
}

func TestRender_Image(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [
			{"type": "image", "attrs": {"src": "/files/cover.png", "alt": "Cover \"art\""}},
			{"type": "image", "attrs": {}}
		]
	}`))
	require.NoError(t, err)

	doc := parseHTML(t, out)
	// The src-less image is dropped.
	require.Equal(t, 1, doc.Find("img").Length())
	alt, _ := doc.Find("img").Attr("alt")
	require.Equal(t, `Cover "art"`, alt)
}

func TestRender_CodeBlock(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "codeBlock", "attrs": {"language": "go"}, "content": [
			{"type": "text", "text": "func main() {\n\tprintln(\"hi\")\n}"}
		]}]
	}`))
	require.NoError(t, err)

	doc := parseHTML(t, out)
	require.Equal(t, 1, doc.Find("pre").Length())
	require.Contains(t, doc.Find("pre").Text(), "func main()")
}

func TestRender_UnknownNodeSkippedButChildrenKept(t *testing.T) {
	out, err := Render([]byte(`{
		"type": "doc",
		"content": [{"type": "callout", "content": [
			{"type": "paragraph", "content": [{"type": "text", "text": "still here"}]}
		]}]
	}`))
	require.NoError(t, err)
	require.Contains(t, out, "still here")
	require.NotContains(t, out, "callout")
}
