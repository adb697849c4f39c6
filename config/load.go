package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v2"

	"github.com/ZacxDev/nest/convert"
	"github.com/ZacxDev/nest/markdown"
)

const (
	DefaultFile         = "site.yaml"
	DefaultPageTemplate = "page.plush.html"
	DefaultPostTemplate = "post.plush.html"
	DefaultSitemapFile  = "sitemap.xml"
	DefaultParseWorkers = 4
	DefaultCacheSize    = 256

	envPrefix = "NEST_"
)

// ErrInvalid marks configuration values that fail validation.
var ErrInvalid = errors.New("invalid configuration")

// Default returns the configuration used when site.yaml is absent. The
// default templates are page.plush.html and post.plush.html under
// _templates, the plush counterparts of page.cshtml and post.cshtml.
func Default() Site {
	return Site{
		LogLevel: "info",
		Templates: Templates{
			Page: DefaultPageTemplate,
			Post: DefaultPostTemplate,
		},
		TemplateCacheSize: DefaultCacheSize,
		ParseWorkers:      DefaultParseWorkers,
		Markdown:          Markdown{Engine: markdown.EngineGoMarkdown},
		Converters:        map[string]string{},
		Sitemap:           Sitemap{File: DefaultSitemapFile},
	}
}

// Load reads the config file (site.yaml under siteRoot when file is empty),
// then applies .env and NEST_* environment overrides. A missing default
// file is not an error.
func Load(fs afero.Fs, siteRoot, file string) (Site, error) {
	cfg := Default()

	explicit := file != ""
	if !explicit {
		file = filepath.Join(siteRoot, DefaultFile)
	}

	data, err := afero.ReadFile(fs, file)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Site{}, errors.Wrapf(err, "parse %s", file)
		}
	case os.IsNotExist(err) && !explicit:
	default:
		return Site{}, errors.Wrapf(err, "read %s", file)
	}

	env, err := loadEnv(fs, siteRoot)
	if err != nil {
		return Site{}, err
	}
	applyEnv(&cfg, env)

	cfg.fillDefaults()
	if err := cfg.Validate(); err != nil {
		return Site{}, err
	}
	return cfg, nil
}

// loadEnv returns a lookup that prefers the process environment over the
// .env file in siteRoot.
func loadEnv(fs afero.Fs, siteRoot string) (func(string) (string, bool), error) {
	dotenv := map[string]string{}

	f, err := fs.Open(filepath.Join(siteRoot, ".env"))
	switch {
	case err == nil:
		defer f.Close()
		dotenv, err = godotenv.Parse(f)
		if err != nil {
			return nil, errors.Wrap(err, "parse .env")
		}
	case !os.IsNotExist(err):
		return nil, errors.Wrap(err, "open .env")
	}

	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}, nil
}

func applyEnv(cfg *Site, lookup func(string) (string, bool)) {
	set := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	set("OUTPUT_DIR", &cfg.OutputDir)
	set("LOG_LEVEL", &cfg.LogLevel)
	set("MARKDOWN_ENGINE", &cfg.Markdown.Engine)
	set("SITEMAP_BASE_URL", &cfg.Sitemap.BaseURL)
}

func (c *Site) fillDefaults() {
	if c.Templates.Page == "" {
		c.Templates.Page = DefaultPageTemplate
	}
	if c.Templates.Post == "" {
		c.Templates.Post = DefaultPostTemplate
	}
	if c.TemplateCacheSize <= 0 {
		c.TemplateCacheSize = DefaultCacheSize
	}
	if c.ParseWorkers <= 0 {
		c.ParseWorkers = DefaultParseWorkers
	}
	if c.Sitemap.File == "" {
		c.Sitemap.File = DefaultSitemapFile
	}
	if c.Converters == nil {
		c.Converters = map[string]string{}
	}
}

// Validate checks converter and markdown engine names.
func (c Site) Validate() error {
	for key, name := range c.Converters {
		if _, ok := convert.Builtin(name); !ok {
			return errors.Wrapf(ErrInvalid, "converter %q for key %q", name, key)
		}
	}
	if _, err := markdown.New(c.MarkdownOptions()); err != nil {
		return errors.Wrapf(ErrInvalid, "%v", err)
	}
	return nil
}

func (c Site) MarkdownOptions() markdown.Options {
	return markdown.Options{
		Engine:     c.Markdown.Engine,
		HardWraps:  c.Markdown.HardWraps,
		UnsafeHTML: c.Markdown.AllowUnsafeHTML(),
	}
}

// OutputRoot resolves OutputDir against siteRoot. Empty means siteRoot.
func (c Site) OutputRoot(siteRoot string) string {
	switch {
	case c.OutputDir == "":
		return siteRoot
	case filepath.IsAbs(c.OutputDir):
		return c.OutputDir
	default:
		return filepath.Join(siteRoot, c.OutputDir)
	}
}
