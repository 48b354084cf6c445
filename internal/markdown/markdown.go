// Package markdown renders stored blog content to HTML.
package markdown

import (
	"bytes"

	"github.com/rotisserie/eris"
	"github.com/yuin/goldmark"
)

// Render converts Markdown text to HTML.
func Render(md string) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return nil, eris.Wrap(err, "converting markdown to html")
	}

	return buf.Bytes(), nil
}
