// Package content discovers Markdown sources under the content roots, parses
// their front matter and builds the documents handed to rendering.
package content

import (
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/ZacxDev/nest/utils"
)

// Kind is the kind of content a root holds.
type Kind string

const (
	KindPages Kind = "pages"
	KindPosts Kind = "posts"
)

// Folder names under the site root.
const (
	FolderPages     = "_pages"
	FolderPosts     = "_posts"
	FolderTemplates = "_templates"

	ExtMarkdown = ".md"
	ExtHTML     = ".html"
)

// Root is a content root on disk.
type Root struct {
	Kind Kind
	Path string
}

// RootFor returns the content root of kind k under siteRoot.
func RootFor(siteRoot string, k Kind) Root {
	folder := FolderPages
	if k == KindPosts {
		folder = FolderPosts
	}
	return Root{Kind: k, Path: filepath.Join(siteRoot, folder)}
}

// SourceFile is a discovered Markdown file.
type SourceFile struct {
	Kind Kind
	// Path is the absolute path on disk.
	Path string
	// RelPath is slash separated and relative to the content root.
	RelPath string
}

// Dir is the slash separated folder of RelPath, "" for files at the root.
func (s SourceFile) Dir() string {
	dir := path.Dir(s.RelPath)
	if dir == "." {
		return ""
	}
	return dir
}

// Name is the file name without its extension.
func (s SourceFile) Name() string {
	base := path.Base(s.RelPath)
	return strings.TrimSuffix(base, path.Ext(base))
}

// BuildContext carries the state shared by every scan of one build: the
// registry of relative paths seen so far and the reserved folder names.
type BuildContext struct {
	Registry map[string]string
	Reserved map[string]struct{}
}

// NewBuildContext reserves the site folder names and their logical names.
func NewBuildContext() *BuildContext {
	reserved := make(map[string]struct{})
	for _, name := range []string{FolderPages, FolderPosts, FolderTemplates, "pages", "posts", "templates"} {
		reserved[name] = struct{}{}
	}
	return &BuildContext{
		Registry: make(map[string]string),
		Reserved: reserved,
	}
}

func (c *BuildContext) isReserved(name string) bool {
	_, ok := c.Reserved[name]
	return ok
}

// Scanner walks content roots on an afero filesystem.
type Scanner struct {
	fs     afero.Fs
	bctx   *BuildContext
	logger *slog.Logger
}

func NewScanner(fs afero.Fs, bctx *BuildContext, logger *slog.Logger) *Scanner {
	return &Scanner{fs: fs, bctx: bctx, logger: utils.OrDefault(logger)}
}

// Scan lists the Markdown files under root depth first. It fails on reserved
// folder names below the root and on relative paths already registered by
// any scan sharing the same BuildContext. A missing root is empty.
func (s *Scanner) Scan(root Root) ([]SourceFile, error) {
	if _, err := s.fs.Stat(root.Path); err != nil {
		if os.IsNotExist(err) {
			s.logger.Warn("Content root not found", utils.Kind(string(root.Kind)), utils.Path(root.Path))
			return nil, nil
		}
		return nil, errors.WithStack(err)
	}

	var files []SourceFile
	if err := s.scanDir(root, root.Path, &files); err != nil {
		return nil, err
	}
	s.logger.Debug("Scanned content root", utils.Kind(string(root.Kind)), utils.Path(root.Path), utils.Count(len(files)))
	return files, nil
}

func (s *Scanner) scanDir(root Root, dir string, files *[]SourceFile) error {
	if dir != root.Path && s.bctx.isReserved(filepath.Base(dir)) {
		return errors.Wrapf(ErrStructureViolation, "%s", dir)
	}

	entries, err := afero.ReadDir(s.fs, dir)
	if err != nil {
		return errors.Wrapf(err, "read dir %s", dir)
	}

	var subdirs []string
	for _, entry := range entries {
		full := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			subdirs = append(subdirs, full)
			continue
		}
		if !strings.EqualFold(filepath.Ext(entry.Name()), ExtMarkdown) {
			continue
		}

		rel, err := filepath.Rel(root.Path, full)
		if err != nil {
			return errors.WithStack(err)
		}
		rel = filepath.ToSlash(rel)
		if prev, ok := s.bctx.Registry[rel]; ok {
			return errors.Wrapf(ErrDuplicatePath, "%s (%s and %s)", rel, prev, full)
		}
		s.bctx.Registry[rel] = full

		*files = append(*files, SourceFile{Kind: root.Kind, Path: full, RelPath: rel})
	}

	for _, sub := range subdirs {
		if err := s.scanDir(root, sub, files); err != nil {
			return err
		}
	}
	return nil
}
