package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/alnah/go-mdsite/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides deploy-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath string // MDSITE_CONFIG: config file name or path
	Addr       string // MDSITE_ADDR: listen address for serve
	ContentDir string // MDSITE_CONTENT_DIR: content root (posts/, projects/, ...)
	OutputDir  string // MDSITE_OUTPUT_DIR: build output directory
	Workers    int    // MDSITE_WORKERS: build workers
}

// knownEnvVars lists valid MDSITE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"MDSITE_CONFIG":      true,
	"MDSITE_ADDR":        true,
	"MDSITE_CONTENT_DIR": true,
	"MDSITE_OUTPUT_DIR":  true,
	"MDSITE_WORKERS":     true,
}

// loadEnvConfig reads configuration from environment variables.
func loadEnvConfig() *envConfig {
	cfg := &envConfig{
		ConfigPath: os.Getenv("MDSITE_CONFIG"),
		Addr:       os.Getenv("MDSITE_ADDR"),
		ContentDir: os.Getenv("MDSITE_CONTENT_DIR"),
		OutputDir:  os.Getenv("MDSITE_OUTPUT_DIR"),
	}

	// Parse int for workers; invalid values are ignored
	if workers := os.Getenv("MDSITE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars logs warnings for unrecognized MDSITE_* variables.
// Helps catch typos like MDSITE_ADRR.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "MDSITE_") {
			name := strings.SplitN(env, "=", 2)[0]
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvConfig applies environment variable values to config.
// Set variables win over the config file; flags are applied afterwards.
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
	if env.ContentDir != "" {
		applyContentRoot(env.ContentDir, cfg)
	}
	if env.OutputDir != "" {
		cfg.Build.OutputDir = env.OutputDir
	}
	if env.Workers > 0 {
		cfg.Build.Workers = env.Workers
	}
}

// applyContentRoot points every content directory under root.
func applyContentRoot(root string, cfg *config.Config) {
	cfg.Content.PostsDir = filepath.Join(root, "posts")
	cfg.Content.ProjectsDir = filepath.Join(root, "projects")
	cfg.Content.ExperienceDir = filepath.Join(root, "experience")
	cfg.Content.MediaDir = filepath.Join(root, "media")
}
