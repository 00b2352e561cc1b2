package stories

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	goldmarkhtml "github.com/yuin/goldmark/renderer/html"
)

const excerptRunes = 150

// Excerpt returns the first 150 runes of content followed by "...".
func Excerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptRunes {
		runes = runes[:excerptRunes]
	}
	return string(runes) + "..."
}

var youtubeIDPattern = regexp.MustCompile(`^.*(?:youtu\.be/|v/|u/\w/|embed/|watch\?v=|&v=)([^#&?]*).*`)

// YouTubeID extracts the 11-character video id from a YouTube URL, or "".
func YouTubeID(link string) string {
	m := youtubeIDPattern.FindStringSubmatch(strings.TrimSpace(link))
	if len(m) < 2 || len(m[1]) != 11 {
		return ""
	}
	return m[1]
}

var markdown = goldmark.New(
	goldmark.WithExtensions(
		extension.GFM,
		extension.Typographer,
	),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
	goldmark.WithRendererOptions(
		goldmarkhtml.WithHardWraps(),
	),
)

// RenderHTML converts story markdown to HTML. Raw HTML in the source is omitted.
func RenderHTML(content string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(content), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
