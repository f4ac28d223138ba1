package config

import (
	"fmt"
	"strconv"
	"strings"
)

// Validate checks the configuration and returns a *ValidationErrors listing
// every problem found, or nil.
func (c *Config) Validate() error {
	errs := &ValidationErrors{}

	switch c.Shell {
	case "", ShellZsh, ShellBash, ShellFish:
	default:
		errs.Add(NewFieldError("root", "shell", c.Shell, ErrUnsupportedShell))
	}

	switch c.Framework {
	case "", FrameworkNone, FrameworkOhMyZsh:
	default:
		errs.Add(NewFieldError("root", "framework", c.Framework, ErrInvalidConfig))
	}

	switch c.Prompt.Engine {
	case "", PromptNone, PromptStarship, PromptOhMyPosh:
	default:
		errs.Add(NewFieldError("prompt", "engine", c.Prompt.Engine, ErrInvalidConfig))
	}

	for _, name := range c.AliasNames() {
		if strings.TrimSpace(name) == "" || strings.ContainsAny(name, " \t=") {
			errs.Add(NewFieldError("aliases", "name", name, ErrInvalidConfig))
		}
	}

	for _, name := range c.EnvNames() {
		if name == "" || strings.ContainsAny(name, " \t=") {
			errs.Add(NewFieldError("env", "name", name, ErrInvalidConfig))
		}
	}

	for i, lt := range c.Lazy {
		section := fmt.Sprintf("lazy[%d]", i)
		if lt.Name == "" {
			errs.Add(NewFieldError(section, "name", "", ErrRequired))
		}

		if len(lt.Commands) == 0 {
			errs.Add(NewFieldError(section, "commands", lt.Name, ErrRequired))
		}

		if strings.TrimSpace(lt.Init) == "" {
			errs.Add(NewFieldError(section, "init", lt.Name, ErrRequired))
		}
	}

	if d := c.Explorer.DefaultDepth; d != 0 && (d < MinDepth || d > MaxDepth) {
		errs.Add(NewFieldError("explorer", "default_depth", strconv.Itoa(d), ErrOutOfRange))
	}

	if c.Explorer.PreviewLines < 0 {
		errs.Add(NewFieldError("explorer", "preview_lines", strconv.Itoa(c.Explorer.PreviewLines), ErrOutOfRange))
	}

	if errs.HasErrors() {
		return errs
	}

	return nil
}

// LazyTool returns the lazily loaded tool with the given name.
func (c *Config) LazyTool(name string) (LazyTool, bool) {
	for _, lt := range c.Lazy {
		if lt.Name == name {
			return lt, true
		}
	}

	return LazyTool{}, false
}
