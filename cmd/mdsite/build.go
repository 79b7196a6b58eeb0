package main

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/server"
)

// Static file names for routes that end in a directory.
const (
	indexFile = "index.html"
	jsonExt   = ".json"
)

// runBuild exports every route of the site into the output directory.
func runBuild(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseBuildFlags(args, env.Stdout)
	if err != nil {
		return err
	}
	if len(positional) > 0 {
		return fmt.Errorf("%w: build takes no arguments, got %q", ErrUsage, positional[0])
	}
	if err := validateWorkers(flags.workers); err != nil {
		return err
	}

	cfg, err := loadConfig(flags.common, env)
	if err != nil {
		return err
	}
	if flags.output != "" {
		cfg.Build.OutputDir = flags.output
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if !flags.common.quiet {
		warnMissingContent(cfg, env)
	}

	site, err := newSite(cfg, env)
	if err != nil {
		return err
	}
	srv, err := newServer(site, cfg, server.Config{})
	if err != nil {
		return err
	}

	outDir := cfg.Build.OutputDir
	if flags.clean {
		if err := cleanOutputDir(outDir); err != nil {
			return err
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hints.ForOutputDirectory())
	}

	metas, err := site.ListPosts(ctx)
	if err != nil {
		return fmt.Errorf("listing posts: %w", err)
	}
	slugs := make([]string, len(metas))
	for i, m := range metas {
		slugs[i] = m.Slug
	}

	jobs := siteJobs(srv, outDir, slugs)
	media, err := mediaJobs(cfg.Content.MediaDir, outDir, srv.MediaRoute())
	if err != nil {
		return err
	}
	jobs = append(jobs, media...)

	workers := resolveWorkers(flags.workers, cfg.Build.Workers)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Building %d files with %d workers\n", len(jobs), workers)
	}

	start := time.Now()
	results := runJobs(ctx, jobs, workers)
	failed := printResults(results, flags.common.quiet, flags.common.verbose, env)
	if flags.common.verbose {
		fmt.Fprintf(env.Stderr, "Done in %v\n", time.Since(start).Round(time.Millisecond))
	}
	if failed > 0 {
		return fmt.Errorf("%d file(s) failed", failed)
	}
	return nil
}

// siteJobs lists the pages, API documents and stylesheets of the site.
// Each post gets a page and a JSON document.
func siteJobs(srv *server.Server, outDir string, slugs []string) []buildJob {
	jobs := []buildJob{
		{
			Route:      "/",
			OutputPath: routeFile(outDir, "/"),
			write: func(ctx context.Context, buf *bytes.Buffer) error {
				return srv.RenderHome(ctx, buf)
			},
		},
		{
			Route:      server.PostRoute,
			OutputPath: routeFile(outDir, server.PostRoute),
			write: func(ctx context.Context, buf *bytes.Buffer) error {
				return srv.RenderBlog(ctx, buf)
			},
		},
		{
			Route:      server.APIPostsRoute,
			OutputPath: jsonFile(outDir, server.APIPostsRoute),
			write: func(ctx context.Context, buf *bytes.Buffer) error {
				return srv.WritePostsJSON(ctx, buf)
			},
		},
		{
			Route:      server.SiteCSSRoute,
			OutputPath: assetFile(outDir, server.SiteCSSRoute),
			write: func(_ context.Context, buf *bytes.Buffer) error {
				_, err := buf.WriteString(srv.SiteCSS())
				return err
			},
		},
		{
			Route:      server.HighlightCSSRoute,
			OutputPath: assetFile(outDir, server.HighlightCSSRoute),
			write: func(_ context.Context, buf *bytes.Buffer) error {
				_, err := buf.WriteString(srv.HighlightCSS())
				return err
			},
		},
	}

	for _, slug := range slugs {
		page := path.Join(server.PostRoute, slug)
		api := path.Join(server.APIPostsRoute, slug)
		jobs = append(jobs,
			buildJob{
				Route:      page,
				OutputPath: routeFile(outDir, page),
				write: func(ctx context.Context, buf *bytes.Buffer) error {
					return srv.RenderPost(ctx, buf, slug)
				},
			},
			buildJob{
				Route:      api,
				OutputPath: jsonFile(outDir, api),
				write: func(ctx context.Context, buf *bytes.Buffer) error {
					return srv.WritePostJSON(ctx, buf, slug)
				},
			},
		)
	}
	return jobs
}

// mediaJobs copies every non-hidden file under mediaDir to the output
// directory matching route. A missing media directory yields no jobs.
func mediaJobs(mediaDir, outDir, route string) ([]buildJob, error) {
	if mediaDir == "" || !fileutil.DirExists(mediaDir) {
		return nil, nil
	}

	mediaOut := assetFile(outDir, route)
	var jobs []buildJob
	err := filepath.WalkDir(mediaDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && p != mediaDir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(mediaDir, p)
		if err != nil {
			return err
		}
		jobs = append(jobs, buildJob{
			Route:      p,
			OutputPath: filepath.Join(mediaOut, rel),
			copyFrom:   p,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("listing media: %w", err)
	}
	return jobs, nil
}

// routeFile maps a page route to <outDir>/<route>/index.html.
func routeFile(outDir, route string) string {
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(route, "/")), indexFile)
}

// jsonFile maps an API route to <outDir>/<route>.json.
func jsonFile(outDir, route string) string {
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(route, "/"))+jsonExt)
}

// assetFile maps a file route to the same relative path under outDir.
func assetFile(outDir, route string) string {
	return filepath.Join(outDir, filepath.FromSlash(strings.TrimPrefix(route, "/")))
}

// cleanOutputDir removes dir after refusing paths that would wipe the
// working directory or a filesystem root.
func cleanOutputDir(dir string) error {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	cwd, err := os.Getwd()
	if err == nil && (abs == cwd || strings.HasPrefix(cwd, abs+string(filepath.Separator))) {
		return fmt.Errorf("%w: refusing to clean %s, it contains the working directory", ErrUsage, dir)
	}
	if abs == filepath.Dir(abs) {
		return fmt.Errorf("%w: refusing to clean filesystem root %s", ErrUsage, dir)
	}
	if err := os.RemoveAll(abs); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// printResults outputs build results and returns the number of failures.
func printResults(results []BuildResult, quiet, verbose bool, env *Environment) int {
	var succeeded, failed int

	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.Route, r.Err)
			continue
		}

		succeeded++
		if quiet {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%v)\n", r.Route, r.OutputPath, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", succeeded, failed)
	}

	return failed
}
