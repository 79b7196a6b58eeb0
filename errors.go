package mdsite

import (
	"errors"

	"github.com/alnah/go-mdsite/internal/content"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrPostNotFound          = content.ErrPostNotFound
	ErrInvalidSlug           = content.ErrInvalidSlug
	ErrFrontMatter           = content.ErrFrontMatter
	ErrHTMLConversion        = pipeline.ErrHTMLConversion
	ErrUnknownHighlightStyle = pipeline.ErrUnknownHighlightStyle
	ErrInvalidOption         = errors.New("invalid option")
)
