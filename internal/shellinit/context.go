// Package shellinit generates the shell initialization script from the
// configuration and installs the hook that evaluates it.
package shellinit

import (
	"regexp"
	"strings"

	"github.com/AntoineGS/shellkit/internal/cmdexec"
	"github.com/AntoineGS/shellkit/internal/config"
)

// KV is one entry of a sorted map.
type KV struct {
	Key   string
	Value string
}

// LazyStub describes the stubs generated for a lazily loaded tool.
type LazyStub struct {
	Name     string
	Ident    string
	Commands []string
}

// Context holds the data available to the init templates. Map-valued
// settings are flattened into key-sorted slices so the output is stable.
type Context struct {
	Shell        string
	Bin          string
	FrameworkDir string
	Theme        string
	Plugins      []string
	Path         []string
	Env          []KV
	Aliases      []KV
	Lazy         []LazyStub
	Prompt       []string
	OhMyZsh      bool
}

var nonIdent = regexp.MustCompile(`[^A-Za-z0-9_]`)

// NewContext builds the template context of cfg for shell. binary is the
// command the generated script uses to call back into shellkit.
func NewContext(cfg *config.Config, shell, binary string) *Context {
	ctx := &Context{
		Shell:        shell,
		Bin:          cmdexec.Quote(binary),
		FrameworkDir: homeVar(cfg.FrameworkDir),
		Theme:        cfg.Theme,
		Plugins:      cfg.Plugins,
		OhMyZsh:      shell == config.ShellZsh && cfg.Framework == config.FrameworkOhMyZsh,
	}

	for _, p := range cfg.Path {
		ctx.Path = append(ctx.Path, homeVar(p))
	}

	for _, k := range cfg.EnvNames() {
		ctx.Env = append(ctx.Env, KV{Key: k, Value: homeVar(cfg.Env[k])})
	}

	for _, k := range cfg.AliasNames() {
		ctx.Aliases = append(ctx.Aliases, KV{Key: k, Value: cfg.Aliases[k]})
	}

	for _, lt := range cfg.Lazy {
		ctx.Lazy = append(ctx.Lazy, LazyStub{
			Name:     lt.Name,
			Ident:    nonIdent.ReplaceAllString(lt.Name, "_"),
			Commands: lt.Commands,
		})
	}

	ctx.Prompt = promptLines(cfg.Prompt, shell)

	return ctx
}

// homeVar rewrites a leading ~ to $HOME so the shell expands it.
func homeVar(path string) string {
	switch {
	case path == "~":
		return "$HOME"
	case strings.HasPrefix(path, "~/"):
		return "$HOME/" + path[2:]
	default:
		return path
	}
}

// promptLines returns the statements that initialize the prompt engine.
func promptLines(p config.Prompt, shell string) []string {
	conf := homeVar(p.Config)
	fish := shell == config.ShellFish

	switch p.Engine {
	case config.PromptStarship:
		var lines []string
		if conf != "" {
			if fish {
				lines = append(lines, "set -gx STARSHIP_CONFIG "+fishDoubleQuote(conf))
			} else {
				lines = append(lines, "export STARSHIP_CONFIG="+doubleQuote(conf))
			}
		}

		if fish {
			return append(lines, "starship init fish | source")
		}

		return append(lines, `eval "$(starship init `+shell+`)"`)

	case config.PromptOhMyPosh:
		if fish {
			line := "oh-my-posh init fish"
			if conf != "" {
				line += " --config " + fishDoubleQuote(conf)
			}

			return []string{line + " | source"}
		}

		line := "oh-my-posh init " + shell
		if conf != "" {
			line += " --config " + doubleQuote(conf)
		}

		return []string{`eval "$(` + line + `)"`}
	}

	return nil
}
