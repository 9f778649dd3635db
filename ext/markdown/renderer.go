package markdown

import (
	"bytes"
	"strings"

	"github.com/andybalholm/cascadia"
	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"golang.org/x/net/html"

	"github.com/goto/folio/core/blog"
	"github.com/goto/folio/internal/errors"
)

const EntityMarkdown = "markdown"

var headingSelector = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")

// Renderer turns blog content into sanitized HTML along with its headings.
type Renderer struct {
	md     goldmark.Markdown
	policy *bluemonday.Policy
}

func NewRenderer() *Renderer {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)
	return &Renderer{
		md:     md,
		policy: bluemonday.UGCPolicy(),
	}
}

func (r *Renderer) Render(content string) (string, []blog.Heading, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", nil, errors.InternalError(EntityMarkdown, "unable to convert markdown", err)
	}

	sanitized := r.policy.SanitizeBytes(buf.Bytes())
	headings, err := Headings(string(sanitized))
	if err != nil {
		return "", nil, err
	}
	return string(sanitized), headings, nil
}

// Headings lists the h1 to h6 elements of an html fragment in document order
func Headings(fragment string) ([]blog.Heading, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, errors.InvalidArgument(EntityMarkdown, "unable to parse html: "+err.Error())
	}

	var headings []blog.Heading
	for _, node := range headingSelector.MatchAll(doc) {
		headings = append(headings, blog.Heading{
			Level: int(node.Data[1] - '0'),
			Text:  strings.TrimSpace(textOf(node)),
			ID:    attr(node, "id"),
		})
	}
	return headings, nil
}

func textOf(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		sb.WriteString(textOf(c))
	}
	return sb.String()
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
