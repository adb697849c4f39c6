package content

import "github.com/pkg/errors"

var (
	// ErrStructureViolation indicates a reserved folder name nested inside a
	// content root.
	ErrStructureViolation = errors.New("content roots may not contain folders with reserved names")

	// ErrDuplicatePath indicates the same relative path exists in more than one
	// place across the content roots.
	ErrDuplicatePath = errors.New("duplicate path")

	// ErrTemplateOutsideRoot indicates a Template header that does not name a
	// file inside the templates folder.
	ErrTemplateOutsideRoot = errors.New("template must be inside the templates folder")
)
