package config

// config/yaml.go

type Templates struct {
	Page string `yaml:"page"`
	Post string `yaml:"post"`
}

type Markdown struct {
	Engine     string `yaml:"engine"`
	HardWraps  bool   `yaml:"hard_wraps"`
	UnsafeHTML *bool  `yaml:"unsafe_html"`
}

type FrontMatter struct {
	PreserveColons bool `yaml:"preserve_colons"`
}

type Sitemap struct {
	BaseURL string `yaml:"base_url"`
	File    string `yaml:"file"`
}

// Site is the schema of site.yaml.
type Site struct {
	OutputDir         string            `yaml:"output_dir"`
	LogLevel          string            `yaml:"log_level"`
	Templates         Templates         `yaml:"templates"`
	TemplateCacheSize int               `yaml:"template_cache_size"`
	ParseWorkers      int               `yaml:"parse_workers"`
	Markdown          Markdown          `yaml:"markdown"`
	FrontMatter       FrontMatter       `yaml:"frontmatter"`
	Converters        map[string]string `yaml:"converters"`
	Sitemap           Sitemap           `yaml:"sitemap"`
}

// AllowUnsafeHTML reports whether raw HTML in Markdown passes through. It
// defaults to true.
func (m Markdown) AllowUnsafeHTML() bool {
	return m.UnsafeHTML == nil || *m.UnsafeHTML
}
