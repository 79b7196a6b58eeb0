package content

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/sync/errgroup"

	"github.com/alnah/go-mdsite/internal/fileutil"
)

// ProjectCard is a home page project entry.
type ProjectCard struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Link        string   `json:"link,omitempty"`
}

// ExperienceCard is a home page experience entry.
type ExperienceCard struct {
	Title       string   `json:"title"`
	Role        string   `json:"role,omitempty"`
	Period      string   `json:"period,omitempty"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}

func projectFromFrontMatter(fm map[string]any) ProjectCard {
	c := ProjectCard{Tags: stringsField(fm, "tags")}
	c.Title, _ = stringField(fm, "title")
	c.Description, _ = stringField(fm, "description")
	c.Link, _ = stringField(fm, "link")
	return c
}

func experienceFromFrontMatter(fm map[string]any) ExperienceCard {
	c := ExperienceCard{Tags: stringsField(fm, "tags")}
	c.Title, _ = stringField(fm, "title")
	c.Role, _ = stringField(fm, "role")
	c.Period, _ = stringField(fm, "period")
	c.Description, _ = stringField(fm, "description")
	return c
}

// Projects returns the project cards, ordered by file name.
func (s *Store) Projects(ctx context.Context) ([]ProjectCard, error) {
	return readCards(ctx, s.dirs.Projects, s.workers, projectFromFrontMatter)
}

// Experiences returns the experience cards, ordered by file name.
func (s *Store) Experiences(ctx context.Context) ([]ExperienceCard, error) {
	return readCards(ctx, s.dirs.Experience, s.workers, experienceFromFrontMatter)
}

// readCards decodes the front matter of every Markdown file in dir. The
// body of a card file is ignored.
func readCards[T any](ctx context.Context, dir string, workers int, decode func(map[string]any) T) ([]T, error) {
	if dir == "" {
		return []T{}, nil
	}

	files, err := fileutil.ListMarkdown(dir)
	if err != nil {
		return nil, fmt.Errorf("listing cards: %w", err)
	}

	cards := make([]T, len(files))
	group, groupctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, file := range files {
		group.Go(func() error {
			if err := groupctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(file) // #nosec G304 -- path comes from ListMarkdown
			if err != nil {
				return err
			}
			fm, _, err := ParseDocument(string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", filepath.Base(file), err)
			}
			cards[i] = decode(fm)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return cards, nil
}
