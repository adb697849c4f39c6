package content

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Metadata is the ordered key/value header of a document.
type Metadata struct {
	keys   []string
	values map[string]string
}

func NewMetadata() *Metadata {
	return &Metadata{values: make(map[string]string)}
}

// Set stores value under key. A repeated key keeps its first position.
func (m *Metadata) Set(key, value string) {
	if _, ok := m.values[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

func (m *Metadata) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

func (m *Metadata) Has(key string) bool {
	_, ok := m.values[key]
	return ok
}

// Keys returns the keys in header order.
func (m *Metadata) Keys() []string {
	return append([]string(nil), m.keys...)
}

func (m *Metadata) Len() int {
	return len(m.keys)
}

// Transformer turns Markdown text into HTML.
type Transformer interface {
	Transform(src []byte) ([]byte, error)
}

// Parsed is a source file split into its header and body.
type Parsed struct {
	Metadata *Metadata
	// Body is the Markdown text following the header.
	Body string
	// HTML is the transformed Body. It stays empty when the header carries a
	// Content override.
	HTML string
}

// FrontMatterParser reads headers of "Key: value" lines terminated by a
// blank line.
type FrontMatterParser struct {
	fs       afero.Fs
	markdown Transformer
	// PreserveColons keeps inner colons in values instead of joining the
	// colon separated segments with spaces.
	PreserveColons bool
}

func NewFrontMatterParser(fs afero.Fs, markdown Transformer) *FrontMatterParser {
	return &FrontMatterParser{fs: fs, markdown: markdown}
}

// Parse reads src, splits off its header and transforms the body.
func (p *FrontMatterParser) Parse(src SourceFile) (*Parsed, error) {
	data, err := afero.ReadFile(p.fs, src.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", src.Path)
	}

	meta, body := p.Split(string(data))
	parsed := &Parsed{Metadata: meta, Body: body}
	if meta.Has(FieldContent) {
		return parsed, nil
	}

	html, err := p.markdown.Transform([]byte(body))
	if err != nil {
		return nil, errors.Wrapf(err, "markdown %s", src.Path)
	}
	parsed.HTML = string(html)
	return parsed, nil
}

// Split separates the header from the body text. Every body line is
// terminated by a newline.
func (p *FrontMatterParser) Split(text string) (*Metadata, string) {
	meta := NewMetadata()
	var body strings.Builder

	inHeader := true
	currentKey := ""
	for _, line := range splitLines(text) {
		if inHeader {
			switch {
			case strings.TrimSpace(line) == "":
				inHeader = false
				continue
			case currentKey != "" && startsWithSpace(line):
				prev, _ := meta.Get(currentKey)
				meta.Set(currentKey, prev+" "+strings.TrimSpace(line))
				continue
			case strings.Contains(line, ":"):
				key, value := p.splitPair(line)
				meta.Set(key, value)
				currentKey = key
				continue
			default:
				// not a header line; it starts the body
				inHeader = false
			}
		}
		body.WriteString(line)
		body.WriteByte('\n')
	}
	return meta, body.String()
}

func (p *FrontMatterParser) splitPair(line string) (string, string) {
	parts := strings.Split(line, ":")
	key := strings.TrimSpace(parts[0])
	sep := " "
	if p.PreserveColons {
		sep = ":"
	}
	return key, strings.TrimSpace(strings.Join(parts[1:], sep))
}

func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}

func startsWithSpace(line string) bool {
	return line != "" && (line[0] == ' ' || line[0] == '\t')
}
