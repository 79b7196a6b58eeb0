package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
)

// stdinArg reads the post from standard input.
const stdinArg = "-"

// runRender prints the rendered body of one Markdown file.
func runRender(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseRenderFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) != 1 {
		return fmt.Errorf("%w: render takes exactly one file", ErrUsage)
	}
	input := positional[0]

	src, err := readMarkdown(input, env)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	site, err := newSite(cfg, env)
	if err != nil {
		return err
	}

	slug := flags.slug
	if slug == "" && input != stdinArg {
		slug = fileutil.SlugFromPath(input)
	}
	if slug == "" {
		slug = "stdin"
	}

	post, err := site.RenderSource(ctx, slug, src)
	if err != nil {
		return fmt.Errorf("rendering %s: %w", input, err)
	}

	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(post)
	}
	fmt.Fprintln(env.Stdout, post.HTML)
	return nil
}

// readMarkdown reads a Markdown file, or stdin for "-".
func readMarkdown(input string, env *Environment) (string, error) {
	if input == stdinArg {
		data, err := io.ReadAll(env.Stdin)
		if err != nil {
			return "", fmt.Errorf("%w: stdin: %v", ErrReadMarkdown, err)
		}
		return string(data), nil
	}

	if !fileutil.IsMarkdown(input) {
		return "", fmt.Errorf("%w: got %q%s", ErrInvalidExtension, input, hints.ForMarkdownInput())
	}
	data, err := os.ReadFile(input) // #nosec G304 -- user-provided path
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrReadMarkdown, err)
	}
	return string(data), nil
}
