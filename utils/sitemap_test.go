package utils

import (
	"strings"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateSitemapContent(t *testing.T) {
	out, err := GenerateSitemapContent("https://example.com/", []SitemapEntry{
		{Link: "/about.html"},
		{Link: "blog/first.html", LastMod: time.Date(2021, 2, 3, 0, 0, 0, 0, time.UTC)},
	})
	require.NoError(t, err)

	assert.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	assert.Contains(t, out, "<loc>https://example.com/about.html</loc>")
	assert.Contains(t, out, "<loc>https://example.com/blog/first.html</loc>")
	assert.Equal(t, 1, strings.Count(out, "<lastmod>2021-02-03</lastmod>"))
}

func TestGenerateSitemapWritesFile(t *testing.T) {
	fs := afero.NewMemMapFs()
	entries := []SitemapEntry{{Link: "/a.html"}}

	require.NoError(t, GenerateSitemap(fs, "/out/sitemap.xml", "https://example.com", entries))
	first, err := afero.ReadFile(fs, "/out/sitemap.xml")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(first), "<?xml"))

	require.NoError(t, GenerateSitemap(fs, "/out/sitemap.xml", "https://example.com", entries))
	second, err := afero.ReadFile(fs, "/out/sitemap.xml")
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", ParseLevel("debug").String())
	assert.Equal(t, "WARN", ParseLevel(" Warning ").String())
	assert.Equal(t, "INFO", ParseLevel("").String())
}
