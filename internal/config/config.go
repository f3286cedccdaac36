// Package config loads the per-project pkgrel settings and locates the
// tool's own state directory.
//
// Project settings come from .pkgrel.yaml in the project root, overridden by
// PKGREL_* environment variables (PKGREL_GITHUB_OWNER, PKGREL_GIT_SIGN_TAGS,
// ...). Every key has a default matching a stock Swift package layout, so
// the file is optional.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// FileName is the project config file looked up in the project root.
const FileName = ".pkgrel.yaml"

// ErrInvalidConfig wraps validation failures.
var ErrInvalidConfig = errors.New("invalid configuration")

// Manifest configures the dev dependency switch.
type Manifest struct {
	Path           string `mapstructure:"path" yaml:"path"`
	Resolved       string `mapstructure:"resolved" yaml:"resolved"`
	DangerSuffix   string `mapstructure:"danger_suffix" yaml:"danger_suffix"`
	NoDangerSuffix string `mapstructure:"nodanger_suffix" yaml:"nodanger_suffix"`
	DevMarker      string `mapstructure:"dev_marker" yaml:"dev_marker"`
	NoDevMarker    string `mapstructure:"nodev_marker" yaml:"nodev_marker"`
}

// Version locates the version line.
type Version struct {
	File string `mapstructure:"file" yaml:"file"`
	Key  string `mapstructure:"key" yaml:"key"`
}

// Changelog configures release note extraction.
type Changelog struct {
	File    string `mapstructure:"file" yaml:"file"`
	Prefix  string `mapstructure:"prefix" yaml:"prefix"`
	URL     string `mapstructure:"url" yaml:"url,omitempty"`
	DocsURL string `mapstructure:"docs_url" yaml:"docs_url,omitempty"`
}

// Git configures the release branches.
type Git struct {
	MainBranch        string `mapstructure:"main_branch" yaml:"main_branch"`
	DevelopmentBranch string `mapstructure:"development_branch" yaml:"development_branch"`
	SignTags          bool   `mapstructure:"sign_tags" yaml:"sign_tags"`
	RequireClean      bool   `mapstructure:"require_clean" yaml:"require_clean"`
}

// GitHub configures release publication.
type GitHub struct {
	API      string `mapstructure:"api" yaml:"api"`
	Owner    string `mapstructure:"owner" yaml:"owner"`
	Repo     string `mapstructure:"repo" yaml:"repo"`
	TokenEnv string `mapstructure:"token_env" yaml:"token_env"`
	Draft    bool   `mapstructure:"draft" yaml:"draft"`
}

// Config is the full project configuration.
type Config struct {
	Manifest  Manifest  `mapstructure:"manifest" yaml:"manifest"`
	Version   Version   `mapstructure:"version" yaml:"version"`
	Changelog Changelog `mapstructure:"changelog" yaml:"changelog"`
	Git       Git       `mapstructure:"git" yaml:"git"`
	GitHub    GitHub    `mapstructure:"github" yaml:"github"`

	// Root is the project directory; relative paths resolve against it.
	Root string `mapstructure:"-" yaml:"-"`
	// Source is the config file that was read, empty when defaults only.
	Source string `mapstructure:"-" yaml:"-"`
}

var defaults = map[string]any{
	"manifest.path":            "Package.swift",
	"manifest.resolved":        "Package.resolved",
	"manifest.danger_suffix":   ".danger",
	"manifest.nodanger_suffix": ".nodanger",
	"manifest.dev_marker":      "//dev",
	"manifest.nodev_marker":    "//nodev",
	"version.file":             ".jazzy.yaml",
	"version.key":              "module_version: ",
	"changelog.file":           "CHANGELOG.md",
	"changelog.prefix":         "## ",
	"changelog.url":            "",
	"changelog.docs_url":       "",
	"git.main_branch":          "master",
	"git.development_branch":   "development",
	"git.sign_tags":            true,
	"git.require_clean":        false,
	"github.api":               "https://api.github.com",
	"github.owner":             "",
	"github.repo":              "",
	"github.token_env":         "GH_TOKEN",
	"github.draft":             true,
}

// Default returns the configuration used when no file is present.
func Default() Config {
	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	var c Config
	// defaults always decode
	_ = v.Unmarshal(&c)
	c.Root = "."
	return c
}

// Load reads the configuration for the project in root. file, when set,
// names the config file explicitly and must exist; otherwise FileName in
// root is used if present. A .env file in root is loaded into the process
// environment first without overriding variables that are already set.
func Load(root, file string) (Config, error) {
	if root == "" {
		root = "."
	}
	if err := godotenv.Load(filepath.Join(root, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}
	v.SetEnvPrefix("PKGREL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigFile(filepath.Join(root, FileName))
	}
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if file != "" || !errors.Is(err, os.ErrNotExist) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	c.Root = root
	c.Source = v.ConfigFileUsed()
	if _, err := os.Stat(c.Source); err != nil {
		c.Source = ""
	}
	c.fillLinks()
	return c, c.Validate()
}

// fillLinks derives the changelog and docs links from the repository when
// they are not configured.
func (c *Config) fillLinks() {
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return
	}
	if c.Changelog.URL == "" {
		c.Changelog.URL = fmt.Sprintf("https://github.com/%s/%s/blob/%s/%s",
			c.GitHub.Owner, c.GitHub.Repo, c.Git.MainBranch, filepath.ToSlash(c.Changelog.File))
	}
	if c.Changelog.DocsURL == "" {
		c.Changelog.DocsURL = fmt.Sprintf("https://%s.github.io/%s/", strings.ToLower(c.GitHub.Owner), c.GitHub.Repo)
	}
}

// Validate checks the values every command relies on.
func (c Config) Validate() error {
	required := map[string]string{
		"manifest.path":          c.Manifest.Path,
		"manifest.dev_marker":    c.Manifest.DevMarker,
		"manifest.nodev_marker":  c.Manifest.NoDevMarker,
		"version.file":           c.Version.File,
		"version.key":            c.Version.Key,
		"changelog.file":         c.Changelog.File,
		"changelog.prefix":       c.Changelog.Prefix,
		"git.main_branch":        c.Git.MainBranch,
		"git.development_branch": c.Git.DevelopmentBranch,
	}
	for k, val := range required {
		if val == "" {
			return fmt.Errorf("%w: %s must not be empty", ErrInvalidConfig, k)
		}
	}
	if c.Manifest.DevMarker == c.Manifest.NoDevMarker {
		return fmt.Errorf("%w: dev and nodev markers must differ", ErrInvalidConfig)
	}
	return nil
}

// ValidatePublish checks the settings needed to create a GitHub release.
func (c Config) ValidatePublish() error {
	if c.GitHub.Owner == "" || c.GitHub.Repo == "" {
		return fmt.Errorf("%w: github.owner and github.repo are required to publish", ErrInvalidConfig)
	}
	if c.GitHub.TokenEnv == "" {
		return fmt.Errorf("%w: github.token_env must not be empty", ErrInvalidConfig)
	}
	return nil
}

// Token returns the GitHub token from the configured environment variable.
func (c Config) Token() string {
	return os.Getenv(c.GitHub.TokenEnv)
}

// Path resolves p against the project root.
func (c Config) Path(p string) string {
	if filepath.IsAbs(p) || c.Root == "" {
		return p
	}
	return filepath.Join(c.Root, p)
}

// Marshal renders c as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// WriteFile writes c to path. An existing file is only replaced when force
// is set.
func (c Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}
	}
	b, err := c.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}
