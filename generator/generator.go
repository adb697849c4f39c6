// Package generator runs a complete build: scan the content roots, parse and
// build every document, then render pages and posts against the whole site.
package generator

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/ZacxDev/nest/config"
	"github.com/ZacxDev/nest/content"
	"github.com/ZacxDev/nest/convert"
	"github.com/ZacxDev/nest/markdown"
	"github.com/ZacxDev/nest/render"
	"github.com/ZacxDev/nest/utils"
)

// Generator builds one site.
type Generator struct {
	siteRoot   string
	cfg        config.Site
	fs         afero.Fs
	logger     *slog.Logger
	converters *convert.Registry
	markdown   markdown.Transformer
	engine     render.Engine
}

type Option func(*Generator)

func WithFs(fs afero.Fs) Option {
	return func(g *Generator) { g.fs = fs }
}

func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithEngine replaces the plush template engine.
func WithEngine(e render.Engine) Option {
	return func(g *Generator) { g.engine = e }
}

// WithMarkdown replaces the transformer chosen by the configuration.
func WithMarkdown(t markdown.Transformer) Option {
	return func(g *Generator) { g.markdown = t }
}

// New prepares a generator for siteRoot. Converters named in cfg are
// registered; RegisterPropertyConverter can add or replace them afterwards.
func New(siteRoot string, cfg config.Site, opts ...Option) (*Generator, error) {
	g := &Generator{
		siteRoot:   filepath.Clean(siteRoot),
		cfg:        cfg,
		fs:         afero.NewOsFs(),
		converters: convert.NewRegistry(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.logger = utils.OrDefault(g.logger)

	for key, name := range cfg.Converters {
		c, ok := convert.Builtin(name)
		if !ok {
			return nil, errors.Wrapf(config.ErrInvalid, "converter %q for key %q", name, key)
		}
		g.converters.Register(key, c)
	}

	if g.markdown == nil {
		md, err := markdown.New(cfg.MarkdownOptions())
		if err != nil {
			return nil, err
		}
		g.markdown = md
	}
	if g.engine == nil {
		g.engine = render.NewPlushEngine()
	}
	return g, nil
}

// RegisterPropertyConverter installs c for the metadata key name. Later
// registrations for the same key win.
func (g *Generator) RegisterPropertyConverter(name string, c convert.Converter) {
	g.converters.Register(name, c)
}

// Report summarizes a finished build.
type Report struct {
	BuildID string
	Pages   []*content.Document
	Posts   []*content.Document
	Written []string
}

func (g *Generator) templatesDir() string {
	return filepath.Join(g.siteRoot, content.FolderTemplates)
}

// Generate runs one build. The first error stops it; output written before
// the error stays on disk.
func (g *Generator) Generate(ctx context.Context) (*Report, error) {
	report := &Report{BuildID: uuid.NewString()}
	logger := g.logger.With(utils.BuildID(report.BuildID))
	logger.Info("Starting build", utils.Path(g.siteRoot))

	bctx := content.NewBuildContext()
	scanner := content.NewScanner(g.fs, bctx, logger)

	pageFiles, err := scanner.Scan(content.RootFor(g.siteRoot, content.KindPages))
	if err != nil {
		return nil, err
	}
	postFiles, err := scanner.Scan(content.RootFor(g.siteRoot, content.KindPosts))
	if err != nil {
		return nil, err
	}

	tdir := g.templatesDir()
	builder := content.NewBuilder(g.converters, tdir)

	report.Pages, err = g.buildAll(ctx, builder, pageFiles, filepath.Join(tdir, g.cfg.Templates.Page))
	if err != nil {
		return nil, err
	}
	report.Posts, err = g.buildAll(ctx, builder, postFiles, filepath.Join(tdir, g.cfg.Templates.Post))
	if err != nil {
		return nil, err
	}
	logger.Info("Documents built", utils.Kind(string(content.KindPages)), utils.Count(len(report.Pages)))
	logger.Info("Documents built", utils.Kind(string(content.KindPosts)), utils.Count(len(report.Posts)))

	cache, err := render.NewTemplateCache(g.fs, g.cfg.TemplateCacheSize)
	if err != nil {
		return nil, err
	}
	outputRoot := g.cfg.OutputRoot(g.siteRoot)
	dispatcher := render.NewDispatcher(g.fs, g.engine, cache, outputRoot, logger)

	for _, docs := range [][]*content.Document{report.Pages, report.Posts} {
		written, err := dispatcher.Render(docs, report.Pages, report.Posts)
		report.Written = append(report.Written, written...)
		if err != nil {
			logger.Error("Build failed", utils.Error(err), utils.Count(len(report.Written)))
			return report, err
		}
	}

	if g.cfg.Sitemap.BaseURL != "" {
		path := filepath.Join(outputRoot, g.cfg.Sitemap.File)
		if err := utils.GenerateSitemap(g.fs, path, g.cfg.Sitemap.BaseURL, sitemapEntries(report)); err != nil {
			return report, err
		}
		report.Written = append(report.Written, path)
	}

	logger.Info("Build finished", utils.Count(len(report.Written)), utils.Output(outputRoot))
	return report, nil
}

// buildAll parses files concurrently, then builds documents one by one in
// scan order.
func (g *Generator) buildAll(ctx context.Context, builder *content.Builder, files []content.SourceFile, defaultTemplate string) ([]*content.Document, error) {
	parser := content.NewFrontMatterParser(g.fs, g.markdown)
	parser.PreserveColons = g.cfg.FrontMatter.PreserveColons

	parsed := make([]*content.Parsed, len(files))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(max(g.cfg.ParseWorkers, 1))
	for i, src := range files {
		i, src := i, src
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := parser.Parse(src)
			if err != nil {
				return err
			}
			parsed[i] = p
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	docs := make([]*content.Document, 0, len(files))
	for i, src := range files {
		doc, err := builder.Build(src, parsed[i], defaultTemplate)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func sitemapEntries(r *Report) []utils.SitemapEntry {
	entries := make([]utils.SitemapEntry, 0, len(r.Pages)+len(r.Posts))
	for _, docs := range [][]*content.Document{r.Pages, r.Posts} {
		for _, doc := range docs {
			entry := utils.SitemapEntry{Link: doc.OutputRel()}
			if t, err := doc.Time("Date"); err == nil {
				entry.LastMod = t
			}
			entries = append(entries, entry)
		}
	}
	return entries
}
