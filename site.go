package mdsite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdsite/internal/content"
	"github.com/alnah/go-mdsite/internal/pipeline"
)

// Site orchestrates content loading and the Markdown-to-HTML pipeline.
type Site struct {
	cfg           siteConfig
	store         *content.Store
	preprocessor  pipeline.MarkdownPreprocessor
	htmlConverter pipeline.HTMLConverter
	highlightCSS  string
}

// New creates a Site with default configuration.
// Use options to customize behavior (e.g., WithContentDirs).
func New(opts ...Option) (*Site, error) {
	s := &Site{
		cfg: siteConfig{
			postsDir:      DefaultPostsDir,
			projectsDir:   DefaultProjectsDir,
			experienceDir: DefaultExperienceDir,
			now:           time.Now,
			mediaPrefix:   DefaultMediaPrefix,
			recentPosts:   DefaultRecentPosts,
		},
		preprocessor: &pipeline.MathPreprocessor{},
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.cfg.postsDir == "" {
		return nil, fmt.Errorf("%w: posts directory is empty", ErrInvalidOption)
	}

	css, err := pipeline.HighlightCSS(s.cfg.render.HighlightStyle)
	if err != nil {
		return nil, err
	}
	s.highlightCSS = css

	// Create HTML converter if not injected (e.g., by tests)
	if s.htmlConverter == nil {
		s.htmlConverter = pipeline.NewGoldmarkConverter(s.cfg.render.toPipeline())
	}

	s.store = content.NewStore(content.Dirs{
		Posts:      s.cfg.postsDir,
		Projects:   s.cfg.projectsDir,
		Experience: s.cfg.experienceDir,
	}, s.cfg.now)

	return s, nil
}

// ListPosts returns the metadata of every post, newest first.
func (s *Site) ListPosts(ctx context.Context) ([]PostMeta, error) {
	return s.store.ListPosts(ctx)
}

// Post loads a post by slug and renders its body.
// Returns ErrPostNotFound when no post carries that slug.
func (s *Site) Post(ctx context.Context, slug string) (*PostDetail, error) {
	post, err := s.store.LoadPost(ctx, slug)
	if err != nil {
		return nil, err
	}
	return s.renderPost(ctx, post)
}

// RenderSource renders a post held in memory. slug is used when the front
// matter does not declare one.
func (s *Site) RenderSource(ctx context.Context, slug, src string) (*PostDetail, error) {
	post, err := content.ParsePost(slug, src, s.cfg.now)
	if err != nil {
		return nil, err
	}
	return s.renderPost(ctx, post)
}

func (s *Site) renderPost(ctx context.Context, post *content.Post) (*PostDetail, error) {
	html, err := s.Render(ctx, post.Body)
	if err != nil {
		return nil, fmt.Errorf("rendering %s: %w", post.Slug, err)
	}
	toc, err := pipeline.TableOfContents(html, pipeline.TOCMinLevel, pipeline.TOCMaxLevel)
	if err != nil {
		return nil, fmt.Errorf("listing headings of %s: %w", post.Slug, err)
	}
	return &PostDetail{PostMeta: post.PostMeta, HTML: html, TOC: toc}, nil
}

// Render converts a Markdown body (no front matter) to an HTML fragment:
// math normalization, Goldmark conversion, then media path rewriting.
func (s *Site) Render(ctx context.Context, markdown string) (string, error) {
	// Preprocess markdown
	md := s.preprocessor.PreprocessMarkdown(ctx, markdown)
	if ctx.Err() != nil {
		return "", ctx.Err()
	}

	// Convert to HTML
	html, err := s.htmlConverter.ToHTML(ctx, md)
	if err != nil {
		return "", fmt.Errorf("converting to HTML: %w", err)
	}
	html = pipeline.ConvertMarkPlaceholders(html)

	html, err = pipeline.RewriteRelativePaths(html, s.cfg.mediaPrefix)
	if err != nil {
		return "", fmt.Errorf("rewriting paths: %w", err)
	}

	return strings.TrimSpace(html), nil
}

// Home gathers the project cards, experience cards and recent posts.
func (s *Site) Home(ctx context.Context) (*Home, error) {
	home := &Home{}

	group, groupctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		cards, err := s.store.Projects(groupctx)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}
		home.Projects = cards
		return nil
	})
	group.Go(func() error {
		cards, err := s.store.Experiences(groupctx)
		if err != nil {
			return fmt.Errorf("loading experience: %w", err)
		}
		home.Experiences = cards
		return nil
	})
	group.Go(func() error {
		posts, err := s.store.ListPosts(groupctx)
		if err != nil {
			return fmt.Errorf("loading posts: %w", err)
		}
		if n := s.cfg.recentPosts; n >= 0 && len(posts) > n {
			posts = posts[:n]
		}
		home.Posts = posts
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return home, nil
}

// HighlightCSS returns the stylesheet for the configured code highlight style.
func (s *Site) HighlightCSS() string {
	return s.highlightCSS
}
