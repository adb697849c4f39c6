package render

import (
	"os"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// DefaultCacheSize is used when a non-positive size is requested.
const DefaultCacheSize = 256

// ErrTemplateMissing is returned when a document names a template file that
// does not exist.
var ErrTemplateMissing = errors.New("template not found")

// TemplateCache keeps template text keyed by path. One cache serves one
// build.
type TemplateCache struct {
	fs    afero.Fs
	items *lru.Cache[string, string]
	loads int
}

func NewTemplateCache(fs afero.Fs, size int) (*TemplateCache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	items, err := lru.New[string, string](size)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &TemplateCache{fs: fs, items: items}, nil
}

// Get returns the template at path, reading it on a cache miss.
func (c *TemplateCache) Get(path string) (string, error) {
	if text, ok := c.items.Get(path); ok {
		return text, nil
	}

	data, err := afero.ReadFile(c.fs, path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", errors.Wrapf(ErrTemplateMissing, "%s", path)
		}
		return "", errors.Wrapf(err, "read template %s", path)
	}
	c.loads++

	text := string(data)
	c.items.Add(path, text)
	return text, nil
}

// Loads counts the reads that went to the filesystem.
func (c *TemplateCache) Loads() int {
	return c.loads
}

func (c *TemplateCache) Len() int {
	return c.items.Len()
}
