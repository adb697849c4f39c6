package render

import (
	"regexp"
	"strings"

	"github.com/gobuffalo/plush"
	"github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/ZacxDev/nest/content"
)

// Data is what a template sees: the document being rendered and every
// document of the site.
type Data struct {
	Item  *content.Document
	Pages []*content.Document
	Posts []*content.Document
}

// Engine renders template text against Data.
type Engine interface {
	Render(tmpl string, data Data) (string, error)
}

// PlushEngine renders github.com/gobuffalo/plush templates. Templates see
// item, pages and posts plus a few string helpers.
type PlushEngine struct {
	// Globals are set on every context before the document values.
	Globals map[string]interface{}
}

func NewPlushEngine() *PlushEngine {
	return &PlushEngine{Globals: map[string]interface{}{}}
}

func (e *PlushEngine) Render(tmpl string, data Data) (string, error) {
	ctx := plush.NewContext()
	for k, v := range e.Globals {
		ctx.Set(k, v)
	}
	setHelpers(ctx)

	ctx.Set("item", data.Item)
	ctx.Set("pages", data.Pages)
	ctx.Set("posts", data.Posts)

	t, err := plush.Parse(tmpl)
	if err != nil {
		return "", errors.Wrap(err, "parse template")
	}
	out, err := t.Exec(ctx)
	if err != nil {
		return "", errors.Wrap(err, "execute template")
	}
	return out, nil
}

func setHelpers(ctx *plush.Context) {
	titler := cases.Title(language.English)

	ctx.Set("startsWith", func(s string, prefix string) bool {
		return strings.HasPrefix(s, prefix)
	})

	ctx.Set("matches", func(s string, pat string) (bool, error) {
		re, err := regexp.Compile(pat)
		if err != nil {
			return false, errors.Wrapf(err, "matches %q", pat)
		}
		return re.MatchString(s), nil
	})

	ctx.Set("replace", func(s string, old string, n string) string {
		return strings.Replace(s, old, n, 1)
	})

	ctx.Set("replaceAll", func(s string, old string, n string) string {
		return strings.ReplaceAll(s, old, n)
	})

	ctx.Set("title", func(s string) string {
		return titler.String(s)
	})

	ctx.Set("has", func(doc *content.Document, field string) bool {
		return doc != nil && doc.Has(field)
	})

	ctx.Set("field", func(doc *content.Document, field string) interface{} {
		if doc == nil {
			return nil
		}
		return doc.Get(field)
	})
}
