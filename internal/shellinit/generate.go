package shellinit

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"

	"github.com/AntoineGS/shellkit/internal/config"
	"github.com/go-sprout/sprout"
	"github.com/go-sprout/sprout/registry/std"
	sproutstrings "github.com/go-sprout/sprout/registry/strings"
)

// funcMap returns the sprout functions plus the quoting helpers of shell.
// The helpers replace sprout's squote, which does not escape.
func funcMap(shell string) (template.FuncMap, error) {
	handler := sprout.New()
	if err := handler.AddRegistries(std.NewRegistry(), sproutstrings.NewRegistry()); err != nil {
		return nil, fmt.Errorf("registering template functions: %w", err)
	}

	funcs := template.FuncMap(handler.Build())
	funcs["join"] = func(sep string, items []string) string {
		return strings.Join(items, sep)
	}

	if shell == config.ShellFish {
		funcs["squote"] = fishSingleQuote
		funcs["dquote"] = fishDoubleQuote
	} else {
		funcs["squote"] = singleQuote
		funcs["dquote"] = doubleQuote
	}

	return funcs, nil
}

// Generate renders the init script of cfg for shell. binary is the command
// the script uses to call shellkit back (lazy loading, tree shortcuts).
func Generate(cfg *config.Config, shell, binary string) (string, error) {
	var src string

	switch shell {
	case config.ShellZsh, config.ShellBash:
		src = posixTemplate
	case config.ShellFish:
		src = fishTemplate
	default:
		return "", fmt.Errorf("%w: %q", config.ErrUnsupportedShell, shell)
	}

	funcs, err := funcMap(shell)
	if err != nil {
		return "", err
	}

	tmpl, err := template.New(shell).Funcs(funcs).Parse(src)
	if err != nil {
		return "", fmt.Errorf("parsing %s template: %w", shell, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, NewContext(cfg, shell, binary)); err != nil {
		return "", fmt.Errorf("rendering %s template: %w", shell, err)
	}

	return normalize(buf.String()), nil
}

// normalize trims trailing whitespace, collapses runs of blank lines and
// ends the script with exactly one newline.
func normalize(s string) string {
	var out []string

	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimRight(line, " \t")
		if line == "" && (len(out) == 0 || out[len(out)-1] == "") {
			continue
		}

		out = append(out, line)
	}

	for len(out) > 0 && out[len(out)-1] == "" {
		out = out[:len(out)-1]
	}

	return strings.Join(out, "\n") + "\n"
}
