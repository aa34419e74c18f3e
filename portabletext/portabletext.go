// Package portabletext renders Portable Text, the block-based rich text format
// stored by the content store, as sanitized HTML and as a templ component.
package portabletext

import (
	"bytes"
	"context"
	"html"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/microcosm-cc/bluemonday"
)

// Block is a single Portable Text block. Only "block" typed entries are
// rendered; embedded objects (images, code samples) are skipped.
type Block struct {
	Type     string    `json:"_type"`
	Key      string    `json:"_key,omitempty"`
	Style    string    `json:"style,omitempty"`
	ListItem string    `json:"listItem,omitempty"`
	Level    int       `json:"level,omitempty"`
	Children []Span    `json:"children,omitempty"`
	MarkDefs []MarkDef `json:"markDefs,omitempty"`
}

// Span is a run of text with decorator and annotation marks.
type Span struct {
	Type  string   `json:"_type"`
	Key   string   `json:"_key,omitempty"`
	Text  string   `json:"text"`
	Marks []string `json:"marks,omitempty"`
}

// MarkDef defines an annotation referenced by key from span marks.
type MarkDef struct {
	Key  string `json:"_key"`
	Type string `json:"_type"`
	Href string `json:"href,omitempty"`
}

var policy = bluemonday.UGCPolicy()

var blockTags = map[string]string{
	"":           "p",
	"normal":     "p",
	"h1":         "h1",
	"h2":         "h2",
	"h3":         "h3",
	"h4":         "h4",
	"blockquote": "blockquote",
}

var decoratorTags = map[string]string{
	"strong":         "strong",
	"em":             "em",
	"code":           "code",
	"underline":      "u",
	"strike-through": "s",
}

// Component returns a templ.Component that renders blocks as HTML.
func Component(blocks []Block) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, Render(blocks))
		return err
	})
}

// Render converts blocks to sanitized HTML.
func Render(blocks []Block) string {
	var buf bytes.Buffer
	var lists []string // open list tags, one per nesting level
	var liOpen []bool

	closeTo := func(depth int) {
		for len(lists) > depth {
			top := len(lists) - 1
			if liOpen[top] {
				buf.WriteString("</li>")
			}
			buf.WriteString("</" + lists[top] + ">")
			lists = lists[:top]
			liOpen = liOpen[:top]
		}
	}

	for _, b := range blocks {
		if b.Type != "block" {
			continue
		}
		if b.ListItem == "" {
			closeTo(0)
			inner := renderSpans(b)
			if strings.TrimSpace(inner) == "" {
				continue
			}
			tag, ok := blockTags[b.Style]
			if !ok {
				tag = "p"
			}
			buf.WriteString("<" + tag + ">" + inner + "</" + tag + ">")
			continue
		}

		level := b.Level
		if level < 1 {
			level = 1
		}
		tag := "ul"
		if b.ListItem == "number" {
			tag = "ol"
		}
		closeTo(level)
		if len(lists) == level && lists[level-1] != tag {
			closeTo(level - 1)
		}
		if len(lists) == level && liOpen[level-1] {
			buf.WriteString("</li>")
			liOpen[level-1] = false
		}
		for len(lists) < level {
			buf.WriteString("<" + tag + ">")
			lists = append(lists, tag)
			liOpen = append(liOpen, false)
		}
		buf.WriteString("<li>" + renderSpans(b))
		liOpen[level-1] = true
	}
	closeTo(0)

	return policy.Sanitize(buf.String())
}

func renderSpans(b Block) string {
	links := make(map[string]string, len(b.MarkDefs))
	for _, d := range b.MarkDefs {
		if d.Type == "link" && d.Href != "" {
			links[d.Key] = d.Href
		}
	}
	var sb strings.Builder
	for _, s := range b.Children {
		if s.Type != "" && s.Type != "span" {
			continue
		}
		text := html.EscapeString(s.Text)
		text = strings.ReplaceAll(text, "\n", "<br>")
		var closers []string
		for _, m := range s.Marks {
			if tag, ok := decoratorTags[m]; ok {
				sb.WriteString("<" + tag + ">")
				closers = append(closers, "</"+tag+">")
				continue
			}
			if href, ok := links[m]; ok {
				sb.WriteString(`<a href="` + html.EscapeString(href) + `">`)
				closers = append(closers, "</a>")
			}
		}
		sb.WriteString(text)
		for i := len(closers) - 1; i >= 0; i-- {
			sb.WriteString(closers[i])
		}
	}
	return sb.String()
}

// PlainText joins the text of all blocks, one paragraph per block.
func PlainText(blocks []Block) string {
	var parts []string
	for _, b := range blocks {
		if b.Type != "block" {
			continue
		}
		var sb strings.Builder
		for _, s := range b.Children {
			sb.WriteString(s.Text)
		}
		if t := strings.TrimSpace(sb.String()); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, "\n\n")
}
