package views

import (
	"context"
	"io"

	"github.com/a-h/templ"

	"github.com/ecellfcrit/ecellweb/portabletext"
)

// RichText renders portable text blocks as sanitized HTML.
func RichText(blocks []portabletext.Block) templ.Component {
	return portabletext.Component(blocks)
}

// JSONLD renders a JSON-LD script tag. doc must already be valid JSON.
func JSONLD(doc string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if doc == "" {
			return nil
		}
		_, err := io.WriteString(w, `<script type="application/ld+json">`+doc+`</script>`)
		return err
	})
}
