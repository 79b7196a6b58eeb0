package mdsite

import (
	"github.com/alnah/go-mdsite/internal/content"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// PostMeta is the listing view of a post.
type PostMeta = content.PostMeta

// ProjectCard is a home page project entry.
type ProjectCard = content.ProjectCard

// ExperienceCard is a home page experience entry.
type ExperienceCard = content.ExperienceCard

// TOCEntry is one heading listed in a post's table of contents.
type TOCEntry = pipeline.TOCEntry

// PostDetail is a post's metadata plus its rendered HTML body. JSON encoding
// flattens the metadata next to the html field.
type PostDetail struct {
	PostMeta
	HTML string     `json:"html"`
	TOC  []TOCEntry `json:"toc,omitempty"` // h2 and h3 headings
}

// Home holds everything the home page shows.
type Home struct {
	Projects    []ProjectCard    `json:"projects"`
	Experiences []ExperienceCard `json:"experiences"`
	Posts       []PostMeta       `json:"posts"`
}

// RenderOptions tunes Markdown rendering.
type RenderOptions struct {
	HardWraps      bool   // Treat single newlines as line breaks
	Sanitize       bool   // Filter the HTML through a user-content policy
	HighlightStyle string // chroma style for code blocks; empty = "github"
}

func (o RenderOptions) toPipeline() pipeline.RenderOptions {
	return pipeline.RenderOptions{
		HardWraps:      o.HardWraps,
		AllowHTML:      true,
		Sanitize:       o.Sanitize,
		HighlightStyle: o.HighlightStyle,
	}
}
