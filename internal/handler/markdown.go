package handler

import (
	"bytes"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	markdownEngine = goldmark.New(
		goldmark.WithExtensions(extension.GFM, extension.Linkify, extension.Table),
		goldmark.WithRendererOptions(html.WithHardWraps(), html.WithXHTML()),
	)
	htmlSanitizer = bluemonday.UGCPolicy()
)

// renderMarkdown converts article markdown to sanitized HTML for read
// responses.
func renderMarkdown(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdownEngine.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return string(htmlSanitizer.SanitizeBytes(buf.Bytes())), nil
}
