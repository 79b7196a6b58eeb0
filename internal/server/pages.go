package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log"
	"strings"

	"github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/dateutil"
)

// Source provides the site content a Server renders.
type Source interface {
	ListPosts(ctx context.Context) ([]mdsite.PostMeta, error)
	Post(ctx context.Context, slug string) (*mdsite.PostDetail, error)
	Home(ctx context.Context) (*mdsite.Home, error)
	HighlightCSS() string
}

// Compile-time interface check.
var _ Source = (*mdsite.Site)(nil)

// SiteInfo is the site identity shown on every page.
type SiteInfo struct {
	Title       string
	Author      string
	Description string
	BaseURL     string // Prefix for canonical links; empty omits them
	DateFormat  string // dateutil preset or token format
}

// Config configures a Server.
type Config struct {
	Site        SiteInfo
	Macros      map[string]config.Macro
	Assets      assets.AssetLoader // nil = embedded assets
	MediaDir    string             // Served under MediaPrefix; empty disables the route
	MediaPrefix string             // Must match the Site's media prefix; empty = mdsite.DefaultMediaPrefix
	Logger      *log.Logger        // Request and error log; nil disables logging
}

// Server renders pages, stylesheets and JSON documents for a Source.
type Server struct {
	source    Source
	info      SiteInfo
	templates map[string]*template.Template
	siteCSS   string
	mathJax   MathJaxConfig
	mediaDir  string
	mediaURL  string
	logger    *log.Logger
}

// postSummary is a post list entry with its display date.
type postSummary struct {
	mdsite.PostMeta
	Date string
}

// postView is a rendered post with its display date.
type postView struct {
	mdsite.PostMeta
	Date string
	HTML template.HTML
	TOC  []mdsite.TOCEntry
}

// pageData is the value every page template executes with.
type pageData struct {
	Site        SiteInfo
	Title       string
	Description string
	Canonical   string
	MathJax     MathJaxConfig
	MathJaxSrc  string

	Projects    []mdsite.ProjectCard
	Experiences []mdsite.ExperienceCard
	Posts       []postSummary
	Post        *postView
}

// New parses the page templates and loads the site stylesheet.
func New(source Source, cfg Config) (*Server, error) {
	loader := cfg.Assets
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	templates, err := assets.ParsePages(loader, nil)
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	css, err := loader.LoadStyle(assets.DefaultStyleName)
	if err != nil {
		return nil, fmt.Errorf("loading stylesheet: %w", err)
	}

	mediaURL := strings.TrimSuffix(cfg.MediaPrefix, "/")
	if mediaURL == "" {
		mediaURL = mdsite.DefaultMediaPrefix
	}

	return &Server{
		source:    source,
		info:      cfg.Site,
		templates: templates,
		siteCSS:   css,
		mathJax:   NewMathJaxConfig(cfg.Macros),
		mediaDir:  cfg.MediaDir,
		mediaURL:  mediaURL,
		logger:    cfg.Logger,
	}, nil
}

// MediaRoute returns the URL path media files are served under, with a
// trailing slash.
func (s *Server) MediaRoute() string {
	return s.mediaURL + "/"
}

// SiteCSS returns the site stylesheet.
func (s *Server) SiteCSS() string {
	return s.siteCSS
}

// HighlightCSS returns the code highlighting stylesheet.
func (s *Server) HighlightCSS() string {
	return s.source.HighlightCSS()
}

// RenderHome writes the home page.
func (s *Server) RenderHome(ctx context.Context, w io.Writer) error {
	home, err := s.source.Home(ctx)
	if err != nil {
		return err
	}

	data := s.newPage("", s.info.Description, "/")
	data.Projects = home.Projects
	data.Experiences = home.Experiences
	data.Posts = s.summaries(home.Posts)
	return s.execute(w, assets.PageHome, data)
}

// RenderBlog writes the post list page.
func (s *Server) RenderBlog(ctx context.Context, w io.Writer) error {
	metas, err := s.source.ListPosts(ctx)
	if err != nil {
		return err
	}

	data := s.newPage("Blog", s.info.Description, PostRoute)
	data.Posts = s.summaries(metas)
	return s.execute(w, assets.PageBlog, data)
}

// RenderPost writes one post page. Returns mdsite.ErrPostNotFound for an
// unknown slug.
func (s *Server) RenderPost(ctx context.Context, w io.Writer, slug string) error {
	post, err := s.source.Post(ctx, slug)
	if err != nil {
		return err
	}

	data := s.newPage(post.Title, post.Description, PostRoute+"/"+post.Slug)
	data.Post = &postView{
		PostMeta: post.PostMeta,
		Date:     dateutil.FormatPublished(post.Published, s.info.DateFormat),
		HTML:     template.HTML(post.HTML), // #nosec G203 -- produced by the Markdown pipeline
		TOC:      post.TOC,
	}
	return s.execute(w, assets.PagePost, data)
}

// WritePostsJSON writes the post list as a JSON array.
func (s *Server) WritePostsJSON(ctx context.Context, w io.Writer) error {
	metas, err := s.source.ListPosts(ctx)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(metas)
}

// WritePostJSON writes one post with its rendered HTML as a JSON object.
func (s *Server) WritePostJSON(ctx context.Context, w io.Writer, slug string) error {
	post, err := s.source.Post(ctx, slug)
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(post)
}

func (s *Server) newPage(title, description, path string) *pageData {
	data := &pageData{
		Site:        s.info,
		Title:       title,
		Description: description,
		MathJax:     s.mathJax,
		MathJaxSrc:  MathJaxSrc,
	}
	if s.info.BaseURL != "" {
		data.Canonical = strings.TrimRight(s.info.BaseURL, "/") + path
	}
	return data
}

func (s *Server) summaries(metas []mdsite.PostMeta) []postSummary {
	out := make([]postSummary, len(metas))
	for i, m := range metas {
		out[i] = postSummary{
			PostMeta: m,
			Date:     dateutil.FormatPublished(m.Published, s.info.DateFormat),
		}
	}
	return out
}

// execute renders into a buffer first so a template error never leaves a
// partial page on w.
func (s *Server) execute(w io.Writer, page string, data *pageData) error {
	tmpl, ok := s.templates[page]
	if !ok {
		return fmt.Errorf("%w: %s", assets.ErrTemplateNotFound, page)
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, assets.LayoutTemplate, data); err != nil {
		return fmt.Errorf("rendering %s page: %w", page, err)
	}
	_, err := buf.WriteTo(w)
	return err
}

// isNotFound reports whether err means the requested post does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, mdsite.ErrPostNotFound) || errors.Is(err, mdsite.ErrInvalidSlug)
}
