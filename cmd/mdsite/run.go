package main

import (
	"context"
	"errors"
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-mdsite"
	"github.com/alnah/go-mdsite/internal/assets"
	"github.com/alnah/go-mdsite/internal/config"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/hints"
	"github.com/alnah/go-mdsite/internal/pipeline"
	"github.com/alnah/go-mdsite/internal/server"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage              = errors.New("invalid usage")
	ErrInvalidExtension   = errors.New("file must have .md or .markdown extension")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
	ErrReadMarkdown       = errors.New("failed to read markdown file")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrListen             = errors.New("failed to listen")

	errHelp = errors.New("help requested")
)

// defaultConfigName is looked up in ./ and the user config directory when
// neither --config nor MDSITE_CONFIG is set.
const defaultConfigName = "mdsite"

// usageError wraps a flag parse error. --help is not an error.
func usageError(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return errHelp
	}
	return fmt.Errorf("%w: %v", ErrUsage, err)
}

// runMain dispatches the command in args and returns the process exit code.
func runMain(args []string, env *Environment) int {
	if len(args) < 2 {
		printUsage(env.Stderr)
		return ExitUsage
	}

	ctx, stop := notifyContext(context.Background())
	defer stop()

	cmd, rest := args[1], args[2:]

	var err error
	switch cmd {
	case "serve":
		err = runServe(ctx, rest, env)
	case "build":
		err = runBuild(ctx, rest, env)
	case "render":
		err = runRender(ctx, rest, env)
	case "completion":
		err = runCompletion(rest, env)
	case "version", "--version":
		fmt.Fprintf(env.Stdout, "mdsite %s\n", Version)
		return ExitSuccess
	case "help", "-h", "--help":
		return runHelp(rest, env)
	default:
		fmt.Fprintf(env.Stderr, "unknown command: %s\n", cmd)
		printUsage(env.Stderr)
		return ExitUsage
	}

	if errors.Is(err, errHelp) {
		return ExitSuccess
	}
	if err != nil {
		fmt.Fprintf(env.Stderr, "error: %v\n", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}

// loadConfig resolves configuration with precedence
// flags > env > config file > defaults.
func loadConfig(flags commonFlags, env *Environment) (*config.Config, error) {
	envCfg := loadEnvConfig()
	warnUnknownEnvVars(env.Stderr)

	name := flags.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg, err := loadConfigFile(name)
	if err != nil {
		return nil, err
	}

	applyEnvConfig(envCfg, cfg)
	if flags.content != "" {
		applyContentRoot(flags.content, cfg)
	}
	return cfg, nil
}

// loadConfigFile loads name, or the default config name when empty.
// A missing default config is not an error.
func loadConfigFile(name string) (*config.Config, error) {
	if name != "" {
		cfg, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfig(defaultConfigName)
	if errors.Is(err, config.ErrConfigNotFound) {
		return config.DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// newSite builds the content service from cfg.
func newSite(cfg *config.Config, env *Environment) (*mdsite.Site, error) {
	site, err := mdsite.New(
		mdsite.WithContentDirs(cfg.Content.PostsDir, cfg.Content.ProjectsDir, cfg.Content.ExperienceDir),
		mdsite.WithClock(env.Now),
		mdsite.WithMediaPrefix(cfg.Content.MediaPrefix),
		mdsite.WithRenderOptions(mdsite.RenderOptions{
			HardWraps:      cfg.Render.HardWraps,
			Sanitize:       cfg.Render.Sanitize,
			HighlightStyle: cfg.Render.HighlightStyle,
		}),
	)
	if err != nil {
		if errors.Is(err, mdsite.ErrUnknownHighlightStyle) {
			return nil, fmt.Errorf("%w%s", err, hints.ForStyleNotFound(pipeline.HighlightStyles()))
		}
		return nil, err
	}
	return site, nil
}

// newServer builds the page renderer for site.
func newServer(site *mdsite.Site, cfg *config.Config, srvCfg server.Config) (*server.Server, error) {
	loader, err := assets.NewAssetResolver(cfg.Assets.BasePath)
	if err != nil {
		if errors.Is(err, assets.ErrInvalidBasePath) {
			return nil, fmt.Errorf("loading assets: %w%s", err, hints.ForAssetsDir(cfg.Assets.BasePath))
		}
		return nil, fmt.Errorf("loading assets: %w", err)
	}

	srvCfg.Site = server.SiteInfo{
		Title:       cfg.Site.Title,
		Author:      cfg.Site.Author,
		Description: cfg.Site.Description,
		BaseURL:     cfg.Site.BaseURL,
		DateFormat:  cfg.Site.DateFormat,
	}
	srvCfg.Macros = cfg.Math.Macros
	srvCfg.MediaPrefix = cfg.Content.MediaPrefix
	srvCfg.Assets = loader
	return server.New(site, srvCfg)
}

// warnMissingContent prints a hint when the posts directory does not exist.
func warnMissingContent(cfg *config.Config, env *Environment) {
	if !fileutil.DirExists(cfg.Content.PostsDir) {
		fmt.Fprintf(env.Stderr, "warning: posts directory %s not found%s\n",
			cfg.Content.PostsDir, hints.ForContentDir(cfg.Content.PostsDir))
	}
}
