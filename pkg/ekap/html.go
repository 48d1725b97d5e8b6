package ekap

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
)

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// HTMLPreview strips tags, collapses whitespace and truncates the text to
// maxLength runes, appending "..." when it was cut. Entities are left as is.
func HTMLPreview(html string, maxLength int) string {
	if html == "" {
		return ""
	}
	text := tagPattern.ReplaceAllString(html, "")
	text = strings.Join(strings.Fields(text), " ")

	runes := []rune(text)
	if maxLength >= 0 && len(runes) > maxLength {
		return string(runes[:maxLength]) + "..."
	}
	return text
}

// HTMLToMarkdown converts an HTML fragment to markdown.
func HTMLToMarkdown(html string) (out string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("markdown conversion panicked: %v", r)
		}
	}()
	converter := md.NewConverter("", true, nil)
	return converter.ConvertString(html)
}

// HTMLRenderer renders announcement HTML for tool output.
type HTMLRenderer struct {
	PreviewLength int
	Logger        *slog.Logger

	convert func(string) (string, error)
}

func NewHTMLRenderer(logger *slog.Logger, previewLength int) *HTMLRenderer {
	if logger == nil {
		logger = slog.Default()
	}
	return &HTMLRenderer{
		PreviewLength: previewLength,
		Logger:        logger,
		convert:       HTMLToMarkdown,
	}
}

// Markdown returns the markdown form of html, or nil when html is empty or
// the conversion fails. A failure is logged and never propagated.
func (r *HTMLRenderer) Markdown(html string) *string {
	if html == "" {
		return nil
	}
	out, err := r.convert(html)
	if err != nil {
		r.Logger.Warn("Failed to convert HTML to markdown", slog.Any("error", err))
		return nil
	}
	return &out
}

func (r *HTMLRenderer) Preview(html string) string {
	return HTMLPreview(html, r.PreviewLength)
}
