package utils

import (
	"encoding/xml"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

type Sitemap struct {
	XMLName xml.Name `xml:"urlset"`
	Xmlns   string   `xml:"xmlns,attr"`
	Urls    []Url    `xml:"url"`
}

type Url struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// SitemapEntry is one page of the site: its link and, when known, the time
// it last changed.
type SitemapEntry struct {
	Link    string
	LastMod time.Time
}

// GenerateSitemap writes the sitemap for entries to path.
func GenerateSitemap(fs afero.Fs, path, baseURL string, entries []SitemapEntry) error {
	xmlOutput, err := GenerateSitemapContent(baseURL, entries)
	if err != nil {
		return err
	}

	content := xml.Header + xmlOutput + "\n"
	if err := afero.WriteFile(fs, path, []byte(content), 0o644); err != nil {
		return errors.Wrapf(err, "write sitemap %s", path)
	}
	return nil
}

// GenerateSitemapContent renders entries in order. lastmod is only emitted
// for entries that carry a time, so unchanged input yields the same bytes.
func GenerateSitemapContent(baseURL string, entries []SitemapEntry) (string, error) {
	baseURL = strings.TrimSuffix(baseURL, "/")
	sitemap := Sitemap{
		Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9",
	}

	for _, entry := range entries {
		url := Url{Loc: baseURL + "/" + strings.TrimPrefix(entry.Link, "/")}
		if !entry.LastMod.IsZero() {
			url.LastMod = entry.LastMod.Format("2006-01-02")
		}
		sitemap.Urls = append(sitemap.Urls, url)
	}

	xmlOutput, err := xml.MarshalIndent(sitemap, "", "  ")
	if err != nil {
		return "", errors.WithStack(err)
	}

	return string(xmlOutput), nil
}
