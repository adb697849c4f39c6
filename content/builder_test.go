package content

import (
	"html/template"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ZacxDev/nest/convert"
)

func parsedFrom(t *testing.T, text string) *Parsed {
	t.Helper()
	p := NewFrontMatterParser(nil, &upper{})
	meta, body := p.Split(text)
	return &Parsed{Metadata: meta, Body: body, HTML: "<h1>Hello</h1>"}
}

func TestBuildDefaults(t *testing.T) {
	b := NewBuilder(convert.NewRegistry(), "/site/_templates")
	src := SourceFile{Kind: KindPages, Path: "/site/_pages/about.md", RelPath: "about.md"}

	doc, err := b.Build(src, parsedFrom(t, "Title: About Us\n\n# Hello\n"), "/site/_templates/page.plush.html")
	require.NoError(t, err)

	assert.Equal(t, "about", doc.OriginalFileName)
	assert.Equal(t, "", doc.OriginalFilePath)
	assert.Equal(t, "about.html", doc.OutputFileName)
	assert.Equal(t, "/site/_templates/page.plush.html", doc.Template)
	assert.Equal(t, template.HTML("<h1>Hello</h1>"), doc.Content)
	assert.Equal(t, "/about.html", doc.Link)
	assert.Equal(t, filepath.Join("/out", "about.html"), doc.OutputPath("/out"))

	title, err := doc.String("Title")
	require.NoError(t, err)
	assert.Equal(t, "About Us", title)
}

func TestBuildNestedLink(t *testing.T) {
	b := NewBuilder(convert.NewRegistry(), "/t")
	src := SourceFile{Kind: KindPosts, Path: "/site/_posts/blog/2020/first.md", RelPath: "blog/2020/first.md"}

	doc, err := b.Build(src, parsedFrom(t, "\n"), "/t/post.plush.html")
	require.NoError(t, err)
	assert.Equal(t, "blog/2020", doc.OriginalFilePath)
	assert.Equal(t, "/blog/2020/first.html", doc.Link)
	assert.Equal(t, "blog/2020/first.html", doc.OutputRel())
}

func TestBuildOverrides(t *testing.T) {
	b := NewBuilder(convert.NewRegistry(), "/site/_templates")
	src := SourceFile{Kind: KindPages, Path: "/site/_pages/a.md", RelPath: "a.md"}
	header := "OutputFileName: custom.html\n" +
		"Template: special.plush.html\n" +
		"Content: <p>raw</p>\n" +
		"OriginalFileName: renamed\n" +
		"OriginalFilePath: elsewhere\n\n"

	doc, err := b.Build(src, parsedFrom(t, header), "/site/_templates/page.plush.html")
	require.NoError(t, err)
	assert.Equal(t, "custom.html", doc.OutputFileName)
	assert.Equal(t, filepath.Join("/site/_templates", "special.plush.html"), doc.Template)
	assert.Equal(t, template.HTML("<p>raw</p>"), doc.Content)
	assert.Equal(t, "renamed", doc.OriginalFileName)
	assert.Equal(t, "elsewhere", doc.OriginalFilePath)
	assert.Equal(t, "/a.html", doc.Link)
	assert.Equal(t, "elsewhere/custom.html", doc.OutputRel())

	doc, err = b.Build(src, parsedFrom(t, "Link: /x\n\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "/x", doc.Link)
}

func TestBuildLinkIgnoresPathOverrides(t *testing.T) {
	b := NewBuilder(convert.NewRegistry(), "/t")
	src := SourceFile{Kind: KindPages, Path: "/site/_pages/blog/about.md", RelPath: "blog/about.md"}

	doc, err := b.Build(src, parsedFrom(t, "OutputFileName: custom.html\nOriginalFilePath: elsewhere\n\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "/blog/about.html", doc.Link)
	assert.Equal(t, filepath.Join("/out", "elsewhere", "custom.html"), doc.OutputPath("/out"))
}

func TestBuildTemplateMustStayInTemplatesFolder(t *testing.T) {
	b := NewBuilder(convert.NewRegistry(), "/site/_templates")
	src := SourceFile{Kind: KindPages, Path: "/site/_pages/a.md", RelPath: "a.md"}

	for _, name := range []string{"../../etc/passwd", "..", "/abs/page.html", "nested/../../x.html"} {
		_, err := b.Build(src, parsedFrom(t, "Template: "+name+"\n\n"), "")
		assert.True(t, errors.Is(err, ErrTemplateOutsideRoot), name)
	}

	doc, err := b.Build(src, parsedFrom(t, "Template: partials/../post.plush.html\n\n"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/site/_templates", "post.plush.html"), doc.Template)

	doc, err = b.Build(src, parsedFrom(t, "Template: themes/dark.plush.html\n\n"), "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/site/_templates", "themes", "dark.plush.html"), doc.Template)
}

func TestBuildConvertsExtraFields(t *testing.T) {
	reg := convert.NewRegistry()
	reg.Register("Order", convert.Integer)
	reg.Register("Date", convert.Date)
	b := NewBuilder(reg, "/t")

	doc, err := b.Build(SourceFile{Path: "/p/a.md", RelPath: "a.md"},
		parsedFrom(t, "Order: 3\nDate: 2020-05-06\nAuthor: me\n\n"), "")
	require.NoError(t, err)

	n, err := doc.Int("Order")
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	d, err := doc.Time("Date")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2020, 5, 6, 0, 0, 0, 0, time.UTC), d)

	_, err = doc.Int("Author")
	assert.True(t, errors.Is(err, convert.ErrTypeMismatch))
	_, err = doc.String("Missing")
	assert.True(t, errors.Is(err, ErrFieldNotFound))

	assert.True(t, doc.Has("Author"))
	assert.True(t, doc.Has(FieldLink))
	assert.False(t, doc.Has("Missing"))
	assert.Equal(t, 3, doc.Get("Order"))
	assert.Nil(t, doc.Get("Missing"))
	assert.Equal(t, []string{
		FieldOriginalFileName, FieldOriginalFilePath, FieldOutputFileName,
		FieldTemplate, FieldContent, FieldLink,
		"Order", "Date", "Author",
	}, doc.Fields())
}

func TestBuildReservedKeysAreNotConverted(t *testing.T) {
	reg := convert.NewRegistry()
	reg.Register(FieldOutputFileName, convert.ConverterFunc(func(string) (convert.Value, error) {
		return convert.Value{}, errors.New("should not run")
	}))
	doc, err := NewBuilder(reg, "/t").Build(SourceFile{Path: "/a.md", RelPath: "a.md"},
		parsedFrom(t, "OutputFileName: x.html\n\n"), "")
	require.NoError(t, err)
	assert.Equal(t, "x.html", doc.OutputFileName)
}

func TestBuildConverterFailure(t *testing.T) {
	reg := convert.NewRegistry()
	boom := errors.New("boom")
	reg.Register("Bad", convert.ConverterFunc(func(string) (convert.Value, error) { return convert.Value{}, boom }))

	_, err := NewBuilder(reg, "/t").Build(SourceFile{Path: "/a.md", RelPath: "a.md"}, parsedFrom(t, "Bad: 1\n\n"), "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, boom))
	assert.Contains(t, err.Error(), "/a.md")
}
