package service

import (
	"bytes"
	"html"
	"html/template"
	"net/url"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	goldmarkHTML "github.com/yuin/goldmark/renderer/html"
)

// Raw HTML in markdown is escaped (WithUnsafe is not set).
var mdRenderer = goldmark.New(
	goldmark.WithExtensions(extension.Strikethrough, extension.Linkify),
	goldmark.WithRendererOptions(
		goldmarkHTML.WithHardWraps(),
	),
)

// node is a rich-text editor document node (doc, paragraph, text, ...).
type node struct {
	Type    string         `json:"type"`
	Text    string         `json:"text,omitempty"`
	Attrs   map[string]any `json:"attrs,omitempty"`
	Marks   []mark         `json:"marks,omitempty"`
	Content []node         `json:"content,omitempty"`
}

type mark struct {
	Type  string         `json:"type"`
	Attrs map[string]any `json:"attrs,omitempty"`
}

func parseDoc(content string) (node, bool) {
	if !strings.HasPrefix(content, "{") {
		return node{}, false
	}
	var doc node
	if err := sonic.UnmarshalString(content, &doc); err != nil || doc.Type != "doc" {
		return node{}, false
	}
	return doc, true
}

// RenderContent turns stored announcement content into safe HTML. Editor
// JSON documents are rendered node by node; anything else is markdown.
func RenderContent(content string) template.HTML {
	content = strings.TrimSpace(content)
	if content == "" {
		return ""
	}
	if doc, ok := parseDoc(content); ok {
		var b strings.Builder
		renderNodes(&b, doc.Content)
		return template.HTML(b.String())
	}

	var buf bytes.Buffer
	if err := mdRenderer.Convert([]byte(content), &buf); err != nil {
		return template.HTML("<p>" + html.EscapeString(content) + "</p>")
	}
	return template.HTML(buf.String())
}

// PlainText flattens content for previews.
func PlainText(content string) string {
	content = strings.TrimSpace(content)
	if doc, ok := parseDoc(content); ok {
		var parts []string
		collectText(doc, &parts)
		return strings.Join(parts, " ")
	}
	return content
}

func collectText(n node, out *[]string) {
	if n.Type == "text" && strings.TrimSpace(n.Text) != "" {
		*out = append(*out, strings.TrimSpace(n.Text))
	}
	for _, c := range n.Content {
		collectText(c, out)
	}
}

var blockTags = map[string]string{
	"paragraph":   "p",
	"blockquote":  "blockquote",
	"bulletList":  `ul class="list-disc"`,
	"orderedList": `ol class="list-decimal"`,
	"listItem":    "li",
}

func renderNodes(b *strings.Builder, nodes []node) {
	for _, n := range nodes {
		renderNode(b, n)
	}
}

func renderNode(b *strings.Builder, n node) {
	switch n.Type {
	case "text":
		renderText(b, n)
	case "hardBreak":
		b.WriteString("<br>")
	case "horizontalRule":
		b.WriteString("<hr>")
	case "heading":
		lvl := intAttr(n.Attrs, "level", 2)
		if lvl < 1 || lvl > 4 {
			lvl = 2
		}
		tag := "h" + strconv.Itoa(lvl)
		b.WriteString("<" + tag + alignAttr(n.Attrs) + ">")
		renderNodes(b, n.Content)
		b.WriteString("</" + tag + ">")
	case "codeBlock":
		b.WriteString("<pre><code>")
		renderNodes(b, n.Content)
		b.WriteString("</code></pre>")
	case "image":
		if src := safeURL(strAttr(n.Attrs, "src")); src != "" {
			b.WriteString(`<img src="` + html.EscapeString(src) + `" alt="` + html.EscapeString(strAttr(n.Attrs, "alt")) + `" loading="lazy">`)
		}
	default:
		open, ok := blockTags[n.Type]
		if !ok {
			renderNodes(b, n.Content)
			return
		}
		closeTag := strings.Fields(open)[0]
		if n.Type == "paragraph" {
			open += alignAttr(n.Attrs)
		}
		b.WriteString("<" + open + ">")
		renderNodes(b, n.Content)
		b.WriteString("</" + closeTag + ">")
	}
}

var markTags = map[string]string{
	"bold":        "strong",
	"italic":      "em",
	"underline":   "u",
	"strike":      "s",
	"code":        "code",
	"subscript":   "sub",
	"superscript": "sup",
	"highlight":   "mark",
}

func renderText(b *strings.Builder, n node) {
	var closers []string
	for _, m := range n.Marks {
		if m.Type == "link" {
			if href := safeURL(strAttr(m.Attrs, "href")); href != "" {
				b.WriteString(`<a href="` + html.EscapeString(href) + `" rel="noopener noreferrer" target="_blank">`)
				closers = append(closers, "</a>")
			}
			continue
		}
		if tag, ok := markTags[m.Type]; ok {
			b.WriteString("<" + tag + ">")
			closers = append(closers, "</"+tag+">")
		}
	}
	b.WriteString(html.EscapeString(n.Text))
	for i := len(closers) - 1; i >= 0; i-- {
		b.WriteString(closers[i])
	}
}

func alignAttr(attrs map[string]any) string {
	switch a := strAttr(attrs, "textAlign"); a {
	case "center", "right", "justify":
		return ` style="text-align: ` + a + `"`
	}
	return ""
}

// safeURL keeps http(s), mailto and site-relative links.
func safeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "mailto":
		return raw
	case "":
		if strings.HasPrefix(raw, "/") && !strings.HasPrefix(raw, "//") {
			return raw
		}
	}
	return ""
}

func strAttr(attrs map[string]any, key string) string {
	if v, ok := attrs[key].(string); ok {
		return v
	}
	return ""
}

func intAttr(attrs map[string]any, key string, def int) int {
	switch v := attrs[key].(type) {
	case float64:
		return int(v)
	case int64:
		return int(v)
	case int:
		return v
	case string:
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}
