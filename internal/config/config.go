// Package config loads the shell environment configuration: aliases, environment
// bootstrap, framework plugins, lazily loaded tools, prompt theming and the
// settings of the interactive tree explorer.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported shells.
const (
	ShellZsh  = "zsh"
	ShellBash = "bash"
	ShellFish = "fish"
)

// Explorer depth bounds and default.
const (
	MinDepth     = 1
	MaxDepth     = 10
	DefaultDepth = 6
)

// DefaultIgnore names the entries hidden by the explorer and the tree printer
// in every directory, in addition to dotfiles and Explorer.Ignore.
var DefaultIgnore = []string{".git", "node_modules", "dist", "build", "coverage"}

// Config is the main configuration structure
type Config struct {
	Shell        string            `yaml:"shell,omitempty" toml:"shell"`
	Framework    string            `yaml:"framework,omitempty" toml:"framework"`
	FrameworkDir string            `yaml:"framework_dir,omitempty" toml:"framework_dir"`
	Theme        string            `yaml:"theme,omitempty" toml:"theme"`
	Plugins      []string          `yaml:"plugins,omitempty" toml:"plugins"`
	Env          map[string]string `yaml:"env,omitempty" toml:"env"`
	Path         []string          `yaml:"path,omitempty" toml:"path"`
	Aliases      map[string]string `yaml:"aliases,omitempty" toml:"aliases"`
	Lazy         []LazyTool        `yaml:"lazy,omitempty" toml:"lazy"`
	Prompt       Prompt            `yaml:"prompt,omitempty" toml:"prompt"`
	Tools        Tools             `yaml:"tools,omitempty" toml:"tools"`
	Explorer     Explorer          `yaml:"explorer,omitempty" toml:"explorer"`
}

// LazyTool is a tool whose initialization is deferred until one of its
// commands is first invoked. Init is a shell command whose output is the
// code to evaluate; that output is memoized between shells.
type LazyTool struct {
	Name     string   `yaml:"name" toml:"name"`
	Commands []string `yaml:"commands" toml:"commands"`
	Init     string   `yaml:"init" toml:"init"`
}

// Prompt selects the prompt-rendering program.
type Prompt struct {
	Engine string `yaml:"engine,omitempty" toml:"engine"` // starship, oh-my-posh or none
	Config string `yaml:"config,omitempty" toml:"config"`
}

// Tools overrides the names of the external programs that get wrapped.
type Tools struct {
	Fzf       string   `yaml:"fzf,omitempty" toml:"fzf"`
	Tree      string   `yaml:"tree,omitempty" toml:"tree"`
	Bat       string   `yaml:"bat,omitempty" toml:"bat"`
	Clipboard []string `yaml:"clipboard,omitempty" toml:"clipboard"` // argv reading stdin
}

// Explorer holds settings of the interactive tree explorer.
type Explorer struct {
	DefaultDepth     int      `yaml:"default_depth,omitempty" toml:"default_depth"`
	Ignore           []string `yaml:"ignore,omitempty" toml:"ignore"`
	RespectGitignore bool     `yaml:"respect_gitignore,omitempty" toml:"respect_gitignore"`
	PreviewLines     int      `yaml:"preview_lines,omitempty" toml:"preview_lines"`
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	cfg := &Config{
		Shell:        ShellZsh,
		Framework:    FrameworkOhMyZsh,
		FrameworkDir: "~/.oh-my-zsh",
		Plugins:      []string{"git", "zsh-autosuggestions", "zsh-syntax-highlighting"},
		Env: map[string]string{
			"EDITOR": "nvim",
			"PAGER":  "less",
		},
		Path: []string{"~/.local/bin"},
		Aliases: map[string]string{
			"ll":  "ls -lah",
			"la":  "ls -A",
			"..":  "cd ..",
			"gs":  "git status",
			"gd":  "git diff",
			"cat": "bat --paging=never",
		},
		Lazy: []LazyTool{
			{
				Name:     "nvm",
				Commands: []string{"nvm", "node", "npm", "npx"},
				Init:     `printf '. "%s/nvm.sh"\n' "${NVM_DIR:-$HOME/.nvm}"`,
			},
			{
				Name:     "gcloud",
				Commands: []string{"gcloud", "gsutil", "bq"},
				Init:     `printf '. "%s/path.zsh.inc"\n' "$(gcloud info --format='value(installation.sdk_root)')"`,
			},
		},
		Prompt: Prompt{Engine: PromptStarship},
	}
	cfg.applyDefaults()

	return cfg
}

// Framework and prompt engine identifiers.
const (
	FrameworkNone    = "none"
	FrameworkOhMyZsh = "oh-my-zsh"

	PromptNone      = "none"
	PromptStarship  = "starship"
	PromptOhMyPosh  = "oh-my-posh"
	defaultFzf      = "fzf"
	defaultTree     = "tree"
	defaultBat      = "bat"
	defaultPreviewN = 40
)

// applyDefaults fills zero values with their defaults.
func (c *Config) applyDefaults() {
	if c.Framework == "" {
		c.Framework = FrameworkNone
	}

	if c.Prompt.Engine == "" {
		c.Prompt.Engine = PromptNone
	}

	if c.Tools.Fzf == "" {
		c.Tools.Fzf = defaultFzf
	}

	if c.Tools.Tree == "" {
		c.Tools.Tree = defaultTree
	}

	if c.Tools.Bat == "" {
		c.Tools.Bat = defaultBat
	}

	if c.Explorer.DefaultDepth == 0 {
		c.Explorer.DefaultDepth = DefaultDepth
	}

	if c.Explorer.PreviewLines == 0 {
		c.Explorer.PreviewLines = defaultPreviewN
	}
}

// Load reads and parses the configuration file at path. Files ending in
// .toml are decoded as TOML, everything else as YAML. The result has
// defaults applied and is validated.
func Load(path string) (*Config, error) {
	var cfg Config

	if strings.EqualFold(filepath.Ext(path), ".toml") {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	} else {
		data, err := os.ReadFile(path) //nolint:gosec // path is from user config, intentional
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}

		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadOrDefault loads path, falling back to Default when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return Default(), nil
	}

	return Load(path)
}

// AliasNames returns the alias names in sorted order.
func (c *Config) AliasNames() []string {
	return sortedKeys(c.Aliases)
}

// EnvNames returns the environment variable names in sorted order.
func (c *Config) EnvNames() []string {
	return sortedKeys(c.Env)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Strings(keys)

	return keys
}

// ExpandPath expands ~ and environment variables in a single path.
// This should be used when a path is needed for file operations.
// The path is kept unexpanded in the config to maintain portability.
func ExpandPath(path string, envVars map[string]string) string {
	if path == "" {
		return path
	}

	// Expand ~ to home directory
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	// Expand environment variables from the provided map
	for key, value := range envVars {
		path = strings.ReplaceAll(path, "$"+key, value)
	}

	// Also expand standard environment variables
	path = os.ExpandEnv(path)

	return path
}

// Save writes the config to the specified file path
func Save(cfg *Config, path string) error {
	data, err := marshalYAML(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// marshalYAML encodes a value to YAML with 2-space indentation.
func marshalYAML(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)

	if err := enc.Encode(v); err != nil {
		return nil, err
	}

	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
