package content

// Notes:
// - Published values in fixtures are quoted so the YAML decoder keeps them
//   as strings; the time.Time branch of normalizeMeta is tested directly.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return fixedNow }

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// ---------------------------------------------------------------------------
// TestNormalizeMeta - Front matter defaults
// ---------------------------------------------------------------------------

func TestNormalizeMeta(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		slug string
		fm   map[string]any
		want PostMeta
	}{
		{
			name: "empty front matter uses defaults",
			slug: "hello",
			fm:   map[string]any{},
			want: PostMeta{
				Slug:      "hello",
				Title:     "hello",
				Published: "2025-06-01T12:00:00.000Z",
				Tags:      []string{},
			},
		},
		{
			name: "all fields set",
			slug: "file-name",
			fm: map[string]any{
				"title":       "Group Theory",
				"description": "Notes",
				"published":   "2024-02-03",
				"tags":        []any{"algebra", "lean"},
				"slug":        "groups",
			},
			want: PostMeta{
				Slug:        "groups",
				Title:       "Group Theory",
				Description: "Notes",
				Published:   "2024-02-03",
				Tags:        []string{"algebra", "lean"},
			},
		},
		{
			name: "non-string fields are ignored",
			slug: "odd",
			fm: map[string]any{
				"title":       42,
				"description": []any{"x"},
				"published":   true,
				"tags":        "single",
				"slug":        7,
			},
			want: PostMeta{
				Slug:      "odd",
				Title:     "odd",
				Published: "2025-06-01T12:00:00.000Z",
				Tags:      []string{},
			},
		},
		{
			name: "blank explicit slug is ignored",
			slug: "kept",
			fm:   map[string]any{"slug": "  "},
			want: PostMeta{
				Slug:      "kept",
				Title:     "kept",
				Published: "2025-06-01T12:00:00.000Z",
				Tags:      []string{},
			},
		},
		{
			name: "unsafe explicit slug falls back to file name",
			slug: "a",
			fm:   map[string]any{"slug": "notes/a"},
			want: PostMeta{
				Slug:      "a",
				Title:     "a",
				Published: "2025-06-01T12:00:00.000Z",
				Tags:      []string{},
			},
		},
		{
			name: "dot explicit slug falls back to file name",
			slug: "b",
			fm:   map[string]any{"slug": "../b"},
			want: PostMeta{
				Slug:      "b",
				Title:     "b",
				Published: "2025-06-01T12:00:00.000Z",
				Tags:      []string{},
			},
		},
		{
			name: "decoded timestamp is formatted",
			slug: "ts",
			fm:   map[string]any{"published": time.Date(2024, 1, 2, 3, 4, 5, 0, time.FixedZone("CET", 3600))},
			want: PostMeta{
				Slug:      "ts",
				Title:     "ts",
				Published: "2024-01-02T02:04:05.000Z",
				Tags:      []string{},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := normalizeMeta(tt.slug, tt.fm, fixedClock)
			if got.Slug != tt.want.Slug || got.Title != tt.want.Title ||
				got.Description != tt.want.Description || got.Published != tt.want.Published {
				t.Errorf("normalizeMeta() = %+v, want %+v", got, tt.want)
			}
			if len(got.Tags) != len(tt.want.Tags) {
				t.Fatalf("Tags = %v, want %v", got.Tags, tt.want.Tags)
			}
			for i := range tt.want.Tags {
				if got.Tags[i] != tt.want.Tags[i] {
					t.Errorf("Tags[%d] = %q, want %q", i, got.Tags[i], tt.want.Tags[i])
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestValidateSlug - Slug safety
// ---------------------------------------------------------------------------

func TestValidateSlug(t *testing.T) {
	t.Parallel()

	tests := []struct {
		slug    string
		wantErr bool
	}{
		{"hello-world", false},
		{"2024_notes.v2", false},
		{"", true},
		{"..", true},
		{".hidden", true},
		{"a/b", true},
		{`a\b`, true},
		{"../etc/passwd", true},
		{"nul\x00byte", true},
		{string(make([]byte, MaxSlugLength+1)), true},
	}

	for _, tt := range tests {
		t.Run(tt.slug, func(t *testing.T) {
			t.Parallel()

			err := ValidateSlug(tt.slug)
			if tt.wantErr && !errors.Is(err, ErrInvalidSlug) {
				t.Errorf("ValidateSlug(%q) = %v, want ErrInvalidSlug", tt.slug, err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("ValidateSlug(%q) unexpected error: %v", tt.slug, err)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestSortNewestFirst - Listing order
// ---------------------------------------------------------------------------

func TestSortNewestFirst(t *testing.T) {
	t.Parallel()

	metas := []PostMeta{
		{Slug: "old", Published: "2020-01-01"},
		{Slug: "undated-b", Published: "someday"},
		{Slug: "new", Published: "2024-05-01T08:00:00Z"},
		{Slug: "undated-a", Published: "later"},
		{Slug: "mid-b", Published: "2022-03-03"},
		{Slug: "mid-a", Published: "2022-03-03"},
	}

	SortNewestFirst(metas)

	want := []string{"new", "mid-a", "mid-b", "old", "undated-a", "undated-b"}
	for i, slug := range want {
		if metas[i].Slug != slug {
			t.Errorf("position %d = %q, want %q", i, metas[i].Slug, slug)
		}
	}
}

// ---------------------------------------------------------------------------
// TestStore_ListPosts / TestStore_LoadPost - Disk access
// ---------------------------------------------------------------------------

func newTestStore(t *testing.T) (*Store, string) {
	t.Helper()

	root := t.TempDir()
	posts := filepath.Join(root, "posts")
	writeFile(t, posts, "first.md", "---\ntitle: \"First\"\npublished: \"2023-01-10\"\ntags: [intro]\n---\nHello $x$.\n")
	writeFile(t, posts, "second.md", "---\ntitle: \"Second\"\npublished: \"2024-07-04\"\n---\nAgain.\n")
	writeFile(t, posts, "renamed.md", "---\ntitle: \"Renamed\"\npublished: \"2021-12-31\"\nslug: \"custom-slug\"\n---\nBody.\n")
	writeFile(t, posts, "notes.txt", "not a post")

	return NewStore(Dirs{
		Posts:      posts,
		Projects:   filepath.Join(root, "projects"),
		Experience: filepath.Join(root, "experience"),
	}, fixedClock), root
}

func TestStore_ListPosts(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	metas, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts() unexpected error: %v", err)
	}

	want := []string{"second", "first", "custom-slug"}
	if len(metas) != len(want) {
		t.Fatalf("ListPosts() returned %d posts, want %d", len(metas), len(want))
	}
	for i, slug := range want {
		if metas[i].Slug != slug {
			t.Errorf("metas[%d].Slug = %q, want %q", i, metas[i].Slug, slug)
		}
	}
	if metas[1].Tags[0] != "intro" {
		t.Errorf("first post tags = %v, want [intro]", metas[1].Tags)
	}
}

func TestStore_ListPosts_MissingDir(t *testing.T) {
	t.Parallel()

	store := NewStore(Dirs{Posts: filepath.Join(t.TempDir(), "missing")}, fixedClock)

	metas, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts() unexpected error: %v", err)
	}
	if len(metas) != 0 {
		t.Errorf("ListPosts() = %v, want empty", metas)
	}
}

func TestStore_ListPosts_BadFrontMatter(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	writeFile(t, store.Dirs().Posts, "broken.md", "---\ntitle: never closed\n")

	_, err := store.ListPosts(context.Background())
	if !errors.Is(err, ErrFrontMatter) {
		t.Errorf("ListPosts() error = %v, want ErrFrontMatter", err)
	}
}

func TestStore_ListPosts_CanceledContext(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.ListPosts(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ListPosts() error = %v, want context.Canceled", err)
	}
}

func TestStore_LoadPost(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)

	tests := []struct {
		name      string
		slug      string
		wantTitle string
		wantBody  string
		wantErr   error
	}{
		{
			name:      "by file name",
			slug:      "first",
			wantTitle: "First",
			wantBody:  "Hello $x$.\n",
		},
		{
			name:      "by explicit slug",
			slug:      "custom-slug",
			wantTitle: "Renamed",
			wantBody:  "Body.\n",
		},
		{
			name:    "missing post",
			slug:    "nope",
			wantErr: ErrPostNotFound,
		},
		{
			name:    "traversal",
			slug:    "../secret",
			wantErr: ErrInvalidSlug,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			post, err := store.LoadPost(context.Background(), tt.slug)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("LoadPost(%q) error = %v, want %v", tt.slug, err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadPost(%q) unexpected error: %v", tt.slug, err)
			}
			if post.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", post.Title, tt.wantTitle)
			}
			if post.Body != tt.wantBody {
				t.Errorf("Body = %q, want %q", post.Body, tt.wantBody)
			}
		})
	}
}

func TestStore_ListedSlugsLoad(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	writeFile(t, store.Dirs().Posts, "nested.md", "---\ntitle: \"Nested\"\nslug: \"notes/nested\"\n---\nBody.\n")

	metas, err := store.ListPosts(context.Background())
	if err != nil {
		t.Fatalf("ListPosts() unexpected error: %v", err)
	}
	found := false
	for _, m := range metas {
		if m.Slug == "notes/nested" {
			t.Errorf("ListPosts() kept unsafe slug %q", m.Slug)
		}
		if m.Slug == "nested" {
			found = true
		}
		if _, err := store.LoadPost(context.Background(), m.Slug); err != nil {
			t.Errorf("LoadPost(%q) error = %v, want listed post to load", m.Slug, err)
		}
	}
	if !found {
		t.Errorf("ListPosts() should list the post under its file slug")
	}
}

func TestParsePost(t *testing.T) {
	t.Parallel()

	post, err := ParsePost("draft", "---\ntitle: \"Draft\"\n---\n$$x$$\n", fixedClock)
	if err != nil {
		t.Fatalf("ParsePost() unexpected error: %v", err)
	}
	if post.Slug != "draft" || post.Title != "Draft" {
		t.Errorf("meta = %+v", post.PostMeta)
	}
	if post.Body != "$$x$$\n" {
		t.Errorf("Body = %q, want %q", post.Body, "$$x$$\n")
	}
	if post.Path != "" {
		t.Errorf("Path = %q, want empty for parsed sources", post.Path)
	}

	if _, err := ParsePost("x", "---\nopen", nil); !errors.Is(err, ErrFrontMatter) {
		t.Errorf("ParsePost() error = %v, want ErrFrontMatter", err)
	}
}
