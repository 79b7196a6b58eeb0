package content

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdsite/internal/dateutil"
	"github.com/alnah/go-mdsite/internal/fileutil"
)

// Sentinel errors for post lookup.
var (
	ErrPostNotFound = errors.New("post not found")
	ErrInvalidSlug  = errors.New("invalid slug")
)

// MaxSlugLength bounds slugs accepted by LoadPost.
const MaxSlugLength = 200

// publishedLayout matches JavaScript's Date.toISOString.
const publishedLayout = "2006-01-02T15:04:05.000Z07:00"

// PostMeta is the listing view of a post.
type PostMeta struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Published   string   `json:"published"`
	Tags        []string `json:"tags"`
}

// Post is a post's metadata plus its Markdown body (front matter removed).
type Post struct {
	PostMeta
	Body string `json:"-"`
	Path string `json:"-"`
}

// Dirs locates the content directories.
type Dirs struct {
	Posts      string
	Projects   string
	Experience string
}

// Store reads posts and cards from disk. It holds no cache: every call sees
// the current files.
type Store struct {
	dirs    Dirs
	now     func() time.Time
	workers int
}

// NewStore creates a Store. A nil now uses time.Now.
func NewStore(dirs Dirs, now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{
		dirs:    dirs,
		now:     now,
		workers: runtime.GOMAXPROCS(0),
	}
}

// Dirs returns the directories the store reads from.
func (s *Store) Dirs() Dirs {
	return s.dirs
}

// ValidateSlug rejects slugs that could escape the posts directory.
func ValidateSlug(slug string) error {
	switch {
	case slug == "":
		return fmt.Errorf("%w: empty", ErrInvalidSlug)
	case len(slug) > MaxSlugLength:
		return fmt.Errorf("%w: exceeds %d characters", ErrInvalidSlug, MaxSlugLength)
	case strings.ContainsAny(slug, "/\\\x00"):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidSlug, slug)
	case strings.HasPrefix(slug, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidSlug, slug)
	}
	return nil
}

// normalizeMeta fills PostMeta from front matter. Title falls back to the
// file slug, published to the current time, and a string slug field
// overrides the file slug when ValidateSlug accepts it. An unusable
// override is dropped so every listed slug can be loaded back.
func normalizeMeta(slug string, fm map[string]any, now func() time.Time) PostMeta {
	meta := PostMeta{
		Slug:  slug,
		Title: slug,
		Tags:  stringsField(fm, "tags"),
	}

	if title, ok := stringField(fm, "title"); ok {
		meta.Title = title
	}
	if desc, ok := stringField(fm, "description"); ok {
		meta.Description = desc
	}

	switch v := fm["published"].(type) {
	case string:
		meta.Published = v
	case time.Time:
		meta.Published = v.UTC().Format(publishedLayout)
	default:
		meta.Published = now().UTC().Format(publishedLayout)
	}

	if explicit, ok := stringField(fm, "slug"); ok && strings.TrimSpace(explicit) != "" && ValidateSlug(explicit) == nil {
		meta.Slug = explicit
	}

	return meta
}

// ParsePost parses a post source. slug is the file-derived slug; a slug
// field in the front matter overrides it. A nil now uses time.Now.
func ParsePost(slug, src string, now func() time.Time) (*Post, error) {
	if now == nil {
		now = time.Now
	}

	fm, body, err := ParseDocument(src)
	if err != nil {
		return nil, err
	}

	return &Post{
		PostMeta: normalizeMeta(slug, fm, now),
		Body:     body,
	}, nil
}

// readPost loads and parses one post file.
func (s *Store) readPost(path string) (*Post, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is built from the configured posts dir
	if err != nil {
		return nil, err
	}

	post, err := ParsePost(fileutil.SlugFromPath(path), string(data), s.now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	post.Path = path
	return post, nil
}

// loadAll reads every post file concurrently, preserving file order.
func (s *Store) loadAll(ctx context.Context) ([]*Post, error) {
	files, err := fileutil.ListMarkdown(s.dirs.Posts)
	if err != nil {
		return nil, fmt.Errorf("listing posts: %w", err)
	}

	posts := make([]*Post, len(files))
	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(s.workers)
	for i, file := range files {
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			post, err := s.readPost(file)
			if err != nil {
				return err
			}
			posts[i] = post
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return posts, nil
}

// ListPosts returns the metadata of every post, newest first. Posts whose
// published value cannot be parsed sort last; ties are ordered by slug.
func (s *Store) ListPosts(ctx context.Context) ([]PostMeta, error) {
	posts, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}

	metas := make([]PostMeta, len(posts))
	for i, p := range posts {
		metas[i] = p.PostMeta
	}
	SortNewestFirst(metas)
	return metas, nil
}

// SortNewestFirst orders metas by published date, newest first.
func SortNewestFirst(metas []PostMeta) {
	type keyed struct {
		t  time.Time
		ok bool
	}
	keys := make(map[string]keyed, len(metas))
	for _, m := range metas {
		t, err := dateutil.ParsePublished(m.Published)
		keys[m.Published] = keyed{t: t, ok: err == nil}
	}

	slices.SortStableFunc(metas, func(a, b PostMeta) int {
		ka, kb := keys[a.Published], keys[b.Published]
		switch {
		case ka.ok && !kb.ok:
			return -1
		case !ka.ok && kb.ok:
			return 1
		case ka.ok && kb.ok && !ka.t.Equal(kb.t):
			return kb.t.Compare(ka.t)
		}
		return strings.Compare(a.Slug, b.Slug)
	})
}

// LoadPost returns the post stored as <slug>.md. When no such file exists,
// posts declaring slug in their front matter are searched.
func (s *Store) LoadPost(ctx context.Context, slug string) (*Post, error) {
	if err := ValidateSlug(slug); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	for _, ext := range []string{".md", ".markdown"} {
		post, err := s.readPost(filepath.Join(s.dirs.Posts, slug+ext))
		if err == nil {
			return post, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}

	posts, err := s.loadAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range posts {
		if p.Slug == slug {
			return p, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrPostNotFound, slug)
}
