// Package markdown provides the Markdown to HTML transformers used for
// document bodies.
package markdown

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/pkg/errors"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	gmparser "github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	gmhtml "github.com/yuin/goldmark/renderer/html"
)

// Engine names accepted by New.
const (
	EngineGoMarkdown = "gomarkdown"
	EngineGoldmark   = "goldmark"
)

// ErrUnknownEngine is returned by New for unsupported engine names.
var ErrUnknownEngine = errors.New("unknown markdown engine")

type Options struct {
	Engine     string
	HardWraps  bool
	UnsafeHTML bool
}

// Transformer turns Markdown into HTML.
type Transformer interface {
	Transform(src []byte) ([]byte, error)
}

// New returns the transformer for opts.Engine; empty means gomarkdown.
func New(opts Options) (Transformer, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Engine)) {
	case "", EngineGoMarkdown:
		return &GoMarkdown{opts: opts}, nil
	case EngineGoldmark:
		return NewGoldmark(opts), nil
	default:
		return nil, errors.Wrapf(ErrUnknownEngine, "%q", opts.Engine)
	}
}

// GoMarkdown renders with github.com/gomarkdown/markdown. Parsers are not
// reusable so one is built per call.
type GoMarkdown struct {
	opts Options
}

func (g *GoMarkdown) Transform(src []byte) ([]byte, error) {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	if g.opts.HardWraps {
		extensions |= parser.HardLineBreak
	}
	p := parser.NewWithExtensions(extensions)

	flags := mdhtml.CommonFlags
	if !g.opts.UnsafeHTML {
		flags |= mdhtml.SkipHTML
	}
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: flags})

	return markdown.ToHTML(src, p, r), nil
}

// Goldmark renders with github.com/yuin/goldmark using GFM extensions.
type Goldmark struct {
	md goldmark.Markdown
}

func NewGoldmark(opts Options) *Goldmark {
	rendererOptions := []renderer.Option{}
	if opts.HardWraps {
		rendererOptions = append(rendererOptions, gmhtml.WithHardWraps())
	}
	if opts.UnsafeHTML {
		rendererOptions = append(rendererOptions, gmhtml.WithUnsafe())
	}

	return &Goldmark{md: goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(gmparser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOptions...),
	)}
}

func (g *Goldmark) Transform(src []byte) ([]byte, error) {
	var buf bytes.Buffer
	if err := g.md.Convert(src, &buf); err != nil {
		return nil, errors.Wrap(err, "goldmark convert")
	}
	return buf.Bytes(), nil
}
