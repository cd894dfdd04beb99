// Package markdown splits front matter from Markdown sources and renders the
// body to HTML.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
)

// Renderer converts Markdown to HTML using CommonMark plus the GitHub
// flavoured extensions (tables, strikethrough, autolinks, task lists) and
// footnotes. Raw HTML in the source is passed through: post authors are
// trusted, the rendered output is injected into pages without escaping.
//
// A Renderer holds no per-call state and is safe for concurrent use.
type Renderer struct {
	md goldmark.Markdown
}

// Option configures a Renderer.
type Option func(*rendererConfig)

type rendererConfig struct {
	hardWraps bool
	safe      bool
}

// WithHardWraps renders soft line breaks as <br>.
func WithHardWraps() Option {
	return func(c *rendererConfig) { c.hardWraps = true }
}

// WithSafeMode drops raw HTML blocks and inline HTML from the output.
func WithSafeMode() Option {
	return func(c *rendererConfig) { c.safe = true }
}

// New returns a Renderer.
func New(opts ...Option) *Renderer {
	var cfg rendererConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	var engineOptions []goldmark.Option
	var htmlOptions []renderer.Option
	if cfg.hardWraps {
		htmlOptions = append(htmlOptions, html.WithHardWraps())
	}
	if !cfg.safe {
		htmlOptions = append(htmlOptions, html.WithUnsafe())
	}
	if len(htmlOptions) > 0 {
		engineOptions = append(engineOptions, goldmark.WithRendererOptions(htmlOptions...))
	}

	md := goldmark.New(append([]goldmark.Option{
		goldmark.WithExtensions(extension.GFM, extension.Footnote),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	}, engineOptions...)...)

	return &Renderer{md: md}
}

// Render returns the HTML for src.
func (r *Renderer) Render(src []byte) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert(src, &buf); err != nil {
		return "", fmt.Errorf("markdown render: %w", err)
	}
	return buf.String(), nil
}
