package mdsite

import (
	"time"

	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Default values for Site configuration.
const (
	DefaultPostsDir      = "content/posts"
	DefaultProjectsDir   = "content/projects"
	DefaultExperienceDir = "content/experience"
	DefaultMediaPrefix   = "/media"
	DefaultRecentPosts   = 5
)

// siteConfig holds Site configuration.
type siteConfig struct {
	postsDir      string
	projectsDir   string
	experienceDir string
	now           func() time.Time
	render        RenderOptions
	mediaPrefix   string
	recentPosts   int
}

// Option configures a Site.
type Option func(*Site)

// WithContentDirs sets the posts, projects and experience directories.
// An empty projects or experience directory disables those cards.
func WithContentDirs(posts, projects, experience string) Option {
	return func(s *Site) {
		s.cfg.postsDir = posts
		s.cfg.projectsDir = projects
		s.cfg.experienceDir = experience
	}
}

// WithClock sets the time source used for posts without a published date.
func WithClock(now func() time.Time) Option {
	return func(s *Site) {
		if now != nil {
			s.cfg.now = now
		}
	}
}

// WithRenderOptions sets Markdown rendering options.
func WithRenderOptions(opts RenderOptions) Option {
	return func(s *Site) {
		s.cfg.render = opts
	}
}

// WithMediaPrefix sets the URL prefix relative image and file links in posts
// are resolved against. Empty disables rewriting.
func WithMediaPrefix(prefix string) Option {
	return func(s *Site) {
		s.cfg.mediaPrefix = prefix
	}
}

// WithRecentPosts sets how many posts the home page lists. Zero lists none,
// a negative value lists all.
func WithRecentPosts(n int) Option {
	return func(s *Site) {
		s.cfg.recentPosts = n
	}
}

// withHTMLConverter replaces the Goldmark converter (for tests).
func withHTMLConverter(c pipeline.HTMLConverter) Option {
	return func(s *Site) {
		s.htmlConverter = c
	}
}
