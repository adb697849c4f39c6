package content

import (
	"html/template"
	"path"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/ZacxDev/nest/convert"
)

// Reserved document fields.
const (
	FieldOriginalFileName = "OriginalFileName"
	FieldOriginalFilePath = "OriginalFilePath"
	FieldOutputFileName   = "OutputFileName"
	FieldTemplate         = "Template"
	FieldContent          = "Content"
	FieldLink             = "Link"
)

var reservedFields = []string{
	FieldOriginalFileName,
	FieldOriginalFilePath,
	FieldOutputFileName,
	FieldTemplate,
	FieldContent,
	FieldLink,
}

// IsReservedField reports whether name is one of the computed fields.
func IsReservedField(name string) bool {
	for _, f := range reservedFields {
		if f == name {
			return true
		}
	}
	return false
}

// ErrFieldNotFound is returned by the typed getters for absent fields.
var ErrFieldNotFound = errors.New("field not found")

// Document is the renderable record built from one source file. It is not
// modified after Build returns.
type Document struct {
	Kind   Kind
	Source string

	OriginalFileName string
	// OriginalFilePath is the slash separated output folder, relative to the
	// output root.
	OriginalFilePath string
	OutputFileName   string
	// Template is the path of the template file on disk.
	Template string
	Content  template.HTML
	Link     string

	order  []string
	fields map[string]convert.Value
}

func newDocument(kind Kind, source string) *Document {
	return &Document{Kind: kind, Source: source, fields: make(map[string]convert.Value)}
}

func (d *Document) setField(name string, v convert.Value) {
	if _, ok := d.fields[name]; !ok {
		d.order = append(d.order, name)
	}
	d.fields[name] = v
}

func (d *Document) reserved(name string) (string, bool) {
	switch name {
	case FieldOriginalFileName:
		return d.OriginalFileName, true
	case FieldOriginalFilePath:
		return d.OriginalFilePath, true
	case FieldOutputFileName:
		return d.OutputFileName, true
	case FieldTemplate:
		return d.Template, true
	case FieldContent:
		return string(d.Content), true
	case FieldLink:
		return d.Link, true
	}
	return "", false
}

// Has reports whether the document carries a field called name.
func (d *Document) Has(name string) bool {
	if IsReservedField(name) {
		return true
	}
	_, ok := d.fields[name]
	return ok
}

// Value returns the field called name. Reserved fields are strings.
func (d *Document) Value(name string) (convert.Value, bool) {
	if s, ok := d.reserved(name); ok {
		return convert.StringValue(s), true
	}
	v, ok := d.fields[name]
	return v, ok
}

// Get returns the field as a plain Go value, or nil. Templates use it.
func (d *Document) Get(name string) interface{} {
	if name == FieldContent {
		return d.Content
	}
	v, ok := d.Value(name)
	if !ok {
		return nil
	}
	return v.Interface()
}

func (d *Document) lookup(name string) (convert.Value, error) {
	v, ok := d.Value(name)
	if !ok {
		return convert.Value{}, errors.Wrapf(ErrFieldNotFound, "%q in %s", name, d.Source)
	}
	return v, nil
}

func (d *Document) String(name string) (string, error) {
	v, err := d.lookup(name)
	if err != nil {
		return "", err
	}
	s, err := v.AsString()
	return s, errors.Wrapf(err, "field %q", name)
}

func (d *Document) Int(name string) (int, error) {
	v, err := d.lookup(name)
	if err != nil {
		return 0, err
	}
	i, err := v.AsInt()
	return i, errors.Wrapf(err, "field %q", name)
}

func (d *Document) Float(name string) (float64, error) {
	v, err := d.lookup(name)
	if err != nil {
		return 0, err
	}
	f, err := v.AsFloat()
	return f, errors.Wrapf(err, "field %q", name)
}

func (d *Document) Time(name string) (time.Time, error) {
	v, err := d.lookup(name)
	if err != nil {
		return time.Time{}, err
	}
	t, err := v.AsTime()
	return t, errors.Wrapf(err, "field %q", name)
}

// Fields lists the reserved fields followed by the metadata fields in
// header order.
func (d *Document) Fields() []string {
	out := make([]string, 0, len(reservedFields)+len(d.order))
	out = append(out, reservedFields...)
	return append(out, d.order...)
}

// OutputPath joins the output location under outputRoot.
func (d *Document) OutputPath(outputRoot string) string {
	return filepath.Join(outputRoot, filepath.FromSlash(d.OriginalFilePath), d.OutputFileName)
}

// OutputRel is the slash separated output path relative to the output root.
func (d *Document) OutputRel() string {
	return path.Join(d.OriginalFilePath, d.OutputFileName)
}
