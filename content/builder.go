package content

import (
	"html/template"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"

	"github.com/ZacxDev/nest/convert"
)

// Builder assembles documents from parsed sources.
type Builder struct {
	converters   *convert.Registry
	templatesDir string
}

func NewBuilder(converters *convert.Registry, templatesDir string) *Builder {
	return &Builder{converters: converters, templatesDir: templatesDir}
}

// Build computes the reserved fields, lets the header override them and
// copies the remaining header keys through the converter registry.
func (b *Builder) Build(src SourceFile, parsed *Parsed, defaultTemplate string) (*Document, error) {
	doc := newDocument(src.Kind, src.Path)
	meta := parsed.Metadata

	for _, key := range meta.Keys() {
		if IsReservedField(key) {
			continue
		}
		raw, _ := meta.Get(key)
		v, err := b.converters.Convert(key, raw)
		if err != nil {
			return nil, errors.Wrapf(err, "build %s", src.Path)
		}
		doc.setField(key, v)
	}

	doc.OriginalFileName = src.Name()
	doc.OriginalFilePath = src.Dir()
	doc.OutputFileName = doc.OriginalFileName + ExtHTML
	doc.Template = defaultTemplate
	doc.Content = template.HTML(parsed.HTML)
	doc.Link = "/" + path.Join(doc.OriginalFilePath, doc.OutputFileName)

	if v, ok := meta.Get(FieldOriginalFileName); ok {
		doc.OriginalFileName = v
	}
	if v, ok := meta.Get(FieldOriginalFilePath); ok {
		doc.OriginalFilePath = v
	}
	if v, ok := meta.Get(FieldOutputFileName); ok {
		doc.OutputFileName = v
	}
	if v, ok := meta.Get(FieldTemplate); ok {
		tmpl, err := b.templatePath(v)
		if err != nil {
			return nil, errors.Wrapf(err, "build %s", src.Path)
		}
		doc.Template = tmpl
	}
	if v, ok := meta.Get(FieldContent); ok {
		doc.Content = template.HTML(v)
	}
	if v, ok := meta.Get(FieldLink); ok {
		doc.Link = v
	}
	return doc, nil
}

// templatePath resolves a Template header value inside the templates folder.
func (b *Builder) templatePath(name string) (string, error) {
	if name == "" || filepath.IsAbs(name) {
		return "", errors.Wrapf(ErrTemplateOutsideRoot, "template %q", name)
	}
	full := filepath.Join(b.templatesDir, name)
	rel, err := filepath.Rel(b.templatesDir, full)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(ErrTemplateOutsideRoot, "template %q", name)
	}
	return full, nil
}
