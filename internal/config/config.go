package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/alnah/go-mdsite/internal/dateutil"
	"github.com/alnah/go-mdsite/internal/fileutil"
	"github.com/alnah/go-mdsite/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// Field length limits.
const (
	MaxTitleLength       = 200  // Site title
	MaxAuthorLength      = 100  // Author name
	MaxDescriptionLength = 500  // Site description
	MaxURLLength         = 2048 // Browser limit
	MaxPathLength        = 4096 // PATH_MAX on Linux
	MaxAddrLength        = 255  // host:port
	MaxStyleLength       = 50   // chroma style name
	MaxMacroNameLength   = 50   // TeX control sequence name
	MaxMacroBodyLength   = 1000 // Macro expansion
	MaxMacroArgs         = 9    // TeX allows #1..#9
	MaxWorkers           = 64   // Static build concurrency
)

// Defaults used by DefaultConfig.
const (
	DefaultTitle           = "My Site"
	DefaultPostsDir        = "content/posts"
	DefaultProjectsDir     = "content/projects"
	DefaultExperienceDir   = "content/experience"
	DefaultMediaDir        = "content/media"
	DefaultMediaPrefix     = "/media"
	DefaultAddr            = "localhost:8080"
	DefaultReadTimeout     = 10 * time.Second
	DefaultWriteTimeout    = 30 * time.Second
	DefaultShutdownTimeout = 10 * time.Second
	DefaultOutputDir       = "public"
	DefaultHighlightStyle  = "github"
	DefaultDateFormat      = "long"
)

// Config holds all configuration for the site.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Server  ServerConfig  `yaml:"server"`
	Render  RenderConfig  `yaml:"render"`
	Math    MathConfig    `yaml:"math"`
	Build   BuildConfig   `yaml:"build"`
	Assets  AssetsConfig  `yaml:"assets"`
}

// SiteConfig defines site identity shown in page headers and metadata.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Author      string `yaml:"author"`
	Description string `yaml:"description"`
	BaseURL     string `yaml:"baseURL"`    // Absolute URL prefix for canonical links (empty = relative)
	DateFormat  string `yaml:"dateFormat"` // Preset name or token format (see dateutil)
}

// ContentConfig defines where Markdown sources live.
type ContentConfig struct {
	PostsDir      string `yaml:"postsDir"`
	ProjectsDir   string `yaml:"projectsDir"`
	ExperienceDir string `yaml:"experienceDir"`
	MediaDir      string `yaml:"mediaDir"`    // Served under mediaPrefix and copied by build
	MediaPrefix   string `yaml:"mediaPrefix"` // URL path relative post links resolve against
}

// ServerConfig defines HTTP server options.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"readTimeout"`
	WriteTimeout    time.Duration `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// RenderConfig defines Markdown rendering options.
type RenderConfig struct {
	HardWraps      bool   `yaml:"hardWraps"`
	Sanitize       bool   `yaml:"sanitize"`
	HighlightStyle string `yaml:"highlightStyle"` // chroma style name
}

// MathConfig defines MathJax options emitted into pages.
type MathConfig struct {
	Macros map[string]Macro `yaml:"macros"`
}

// BuildConfig defines static export options.
type BuildConfig struct {
	OutputDir string `yaml:"outputDir"`
	Workers   int    `yaml:"workers"` // 0 = GOMAXPROCS
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Empty = use embedded assets
}

// DefaultMacros returns the MathJax macros every site starts with.
func DefaultMacros() map[string]Macro {
	return map[string]Macro{
		"RR": {Body: `\mathbb{R}`},
		"NN": {Body: `\mathbb{N}`},
		"ZZ": {Body: `\mathbb{Z}`},
	}
}

// DefaultConfig returns a working configuration for a site in the current directory.
func DefaultConfig() *Config {
	return &Config{
		Site: SiteConfig{
			Title:      DefaultTitle,
			DateFormat: DefaultDateFormat,
		},
		Content: ContentConfig{
			PostsDir:      DefaultPostsDir,
			ProjectsDir:   DefaultProjectsDir,
			ExperienceDir: DefaultExperienceDir,
			MediaDir:      DefaultMediaDir,
			MediaPrefix:   DefaultMediaPrefix,
		},
		Server: ServerConfig{
			Addr:            DefaultAddr,
			ReadTimeout:     DefaultReadTimeout,
			WriteTimeout:    DefaultWriteTimeout,
			ShutdownTimeout: DefaultShutdownTimeout,
		},
		Render: RenderConfig{HighlightStyle: DefaultHighlightStyle},
		Math:   MathConfig{Macros: DefaultMacros()},
		Build:  BuildConfig{OutputDir: DefaultOutputDir},
		Assets: AssetsConfig{BasePath: ""},
	}
}

// applyDefaults fills zero-valued fields from DefaultConfig. User macros are
// layered over the default macros.
func (c *Config) applyDefaults() {
	d := DefaultConfig()

	setString(&c.Site.Title, d.Site.Title)
	setString(&c.Site.DateFormat, d.Site.DateFormat)
	setString(&c.Content.PostsDir, d.Content.PostsDir)
	setString(&c.Content.ProjectsDir, d.Content.ProjectsDir)
	setString(&c.Content.ExperienceDir, d.Content.ExperienceDir)
	setString(&c.Content.MediaDir, d.Content.MediaDir)
	setString(&c.Content.MediaPrefix, d.Content.MediaPrefix)
	setString(&c.Server.Addr, d.Server.Addr)
	setString(&c.Render.HighlightStyle, d.Render.HighlightStyle)
	setString(&c.Build.OutputDir, d.Build.OutputDir)

	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = d.Server.ReadTimeout
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = d.Server.WriteTimeout
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = d.Server.ShutdownTimeout
	}

	macros := d.Math.Macros
	for name, m := range c.Math.Macros {
		macros[name] = m
	}
	c.Math.Macros = macros
}

func setString(field *string, fallback string) {
	if *field == "" {
		*field = fallback
	}
}

// Validate checks field lengths and value ranges.
// Called automatically by LoadConfig, but available for consumers
// who construct Config manually (e.g., library users).
func (c *Config) Validate() error {
	// Validate site fields
	if err := validateFieldLength("site.title", c.Site.Title, MaxTitleLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.author", c.Site.Author, MaxAuthorLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.description", c.Site.Description, MaxDescriptionLength); err != nil {
		return err
	}
	if err := validateFieldLength("site.baseURL", c.Site.BaseURL, MaxURLLength); err != nil {
		return err
	}
	if c.Site.BaseURL != "" && !strings.HasPrefix(c.Site.BaseURL, "http://") && !strings.HasPrefix(c.Site.BaseURL, "https://") {
		return fmt.Errorf("%w: site.baseURL must start with http:// or https://, got %q", ErrInvalidValue, c.Site.BaseURL)
	}
	if c.Site.DateFormat != "" {
		if _, err := dateutil.ResolveFormat(c.Site.DateFormat); err != nil {
			return fmt.Errorf("site.dateFormat: %w", err)
		}
	}

	// Validate content directories
	for name, dir := range map[string]string{
		"content.postsDir":      c.Content.PostsDir,
		"content.projectsDir":   c.Content.ProjectsDir,
		"content.experienceDir": c.Content.ExperienceDir,
		"content.mediaDir":      c.Content.MediaDir,
		"build.outputDir":       c.Build.OutputDir,
		"assets.basePath":       c.Assets.BasePath,
	} {
		if err := validateFieldLength(name, dir, MaxPathLength); err != nil {
			return err
		}
	}

	if err := validateMediaPrefix(c.Content.MediaPrefix); err != nil {
		return err
	}

	// Validate server fields
	if err := validateFieldLength("server.addr", c.Server.Addr, MaxAddrLength); err != nil {
		return err
	}
	if c.Server.ReadTimeout < 0 {
		return fmt.Errorf("%w: server.readTimeout must not be negative, got %s", ErrInvalidValue, c.Server.ReadTimeout)
	}
	if c.Server.WriteTimeout < 0 {
		return fmt.Errorf("%w: server.writeTimeout must not be negative, got %s", ErrInvalidValue, c.Server.WriteTimeout)
	}
	if c.Server.ShutdownTimeout < 0 {
		return fmt.Errorf("%w: server.shutdownTimeout must not be negative, got %s", ErrInvalidValue, c.Server.ShutdownTimeout)
	}

	// Validate render fields
	if err := validateFieldLength("render.highlightStyle", c.Render.HighlightStyle, MaxStyleLength); err != nil {
		return err
	}

	// Validate build fields
	if c.Build.Workers < 0 || c.Build.Workers > MaxWorkers {
		return fmt.Errorf("%w: build.workers must be between 0 and %d, got %d", ErrInvalidValue, MaxWorkers, c.Build.Workers)
	}

	// Validate math macros
	for name, m := range c.Math.Macros {
		if err := validateMacro(name, m); err != nil {
			return err
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
// Fields missing from the file take their DefaultConfig values.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if fileutil.IsFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.DecodeStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// SearchPaths lists the files LoadConfig tries for a config name, in order:
// name.yaml and name.yml in the current directory, then in the go-mdsite
// directory under the user config directory.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}

	if userConfigDir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(userConfigDir, "go-mdsite", name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing entry of SearchPaths.
func resolveConfigPath(name string) (string, error) {
	triedPaths := SearchPaths(name)
	for _, p := range triedPaths {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// validateMediaPrefix accepts an absolute URL path without a trailing slash,
// such as "/media" or "/static/files". Empty is left to applyDefaults.
func validateMediaPrefix(prefix string) error {
	if prefix == "" {
		return nil
	}
	if err := validateFieldLength("content.mediaPrefix", prefix, MaxURLLength); err != nil {
		return err
	}
	if !strings.HasPrefix(prefix, "/") || strings.HasSuffix(prefix, "/") {
		return fmt.Errorf("%w: content.mediaPrefix must start with / and not end with /, got %q", ErrInvalidValue, prefix)
	}
	if strings.ContainsAny(prefix, " \t\n{}?#") || strings.Contains(prefix, "//") || slices.Contains(strings.Split(prefix, "/"), "..") {
		return fmt.Errorf("%w: content.mediaPrefix must be a plain URL path, got %q", ErrInvalidValue, prefix)
	}
	return nil
}
