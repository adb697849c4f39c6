// Package render writes built documents through their templates.
package render

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/ZacxDev/nest/content"
	"github.com/ZacxDev/nest/utils"
)

// Dispatcher renders documents and writes them under OutputRoot. The first
// failure stops it; files already written are left in place.
type Dispatcher struct {
	fs         afero.Fs
	engine     Engine
	cache      *TemplateCache
	outputRoot string
	logger     *slog.Logger
}

func NewDispatcher(fs afero.Fs, engine Engine, cache *TemplateCache, outputRoot string, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		fs:         fs,
		engine:     engine,
		cache:      cache,
		outputRoot: outputRoot,
		logger:     utils.OrDefault(logger),
	}
}

// Render writes every document in docs, giving each template the complete
// page and post collections. It returns the paths written.
func (d *Dispatcher) Render(docs, pages, posts []*content.Document) ([]string, error) {
	written := make([]string, 0, len(docs))
	for _, doc := range docs {
		out, err := d.renderOne(doc, pages, posts)
		if err != nil {
			return written, err
		}
		written = append(written, out)
	}
	return written, nil
}

func (d *Dispatcher) renderOne(doc *content.Document, pages, posts []*content.Document) (string, error) {
	tmpl, err := d.cache.Get(doc.Template)
	if err != nil {
		return "", errors.Wrapf(err, "render %s", doc.Source)
	}

	result, err := d.engine.Render(tmpl, Data{Item: doc, Pages: pages, Posts: posts})
	if err != nil {
		return "", errors.Wrapf(err, "render %s with %s", doc.Source, doc.Template)
	}

	dir := filepath.Join(d.outputRoot, filepath.FromSlash(doc.OriginalFilePath))
	if err := d.fs.MkdirAll(dir, os.ModePerm); err != nil {
		return "", errors.Wrapf(err, "create %s", dir)
	}

	out := doc.OutputPath(d.outputRoot)
	if err := afero.WriteFile(d.fs, out, []byte(result), 0o644); err != nil {
		return "", errors.Wrapf(err, "write %s", out)
	}

	d.logger.Debug("Rendered document", utils.Path(doc.Source), utils.Template(doc.Template), utils.Output(out))
	return out, nil
}
