// Package main provides the CLI entry point for shellkit.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"
	"time"

	"github.com/AntoineGS/shellkit/internal/clipboard"
	"github.com/AntoineGS/shellkit/internal/cmdexec"
	"github.com/AntoineGS/shellkit/internal/config"
	"github.com/AntoineGS/shellkit/internal/explorer"
	"github.com/AntoineGS/shellkit/internal/finder"
	"github.com/AntoineGS/shellkit/internal/lazyload"
	"github.com/AntoineGS/shellkit/internal/platform"
	"github.com/AntoineGS/shellkit/internal/shellinit"
	"github.com/AntoineGS/shellkit/internal/treeview"
	"github.com/AntoineGS/shellkit/internal/tui"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var version = "dev"

const binaryName = "shellkit"

var (
	configPath       string // Override from --config flag
	verbose          bool
	treeDepth        int
	initOutput       string
	dryRun           bool
	lazyRefresh      bool
	previewDepthFile string
	previewDir       string
	logFile          *os.File
	cfg              *config.Config
)

func main() {
	err := newRootCmd().Execute()

	if logFile != nil {
		_ = logFile.Close()
	}

	if err != nil && !reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}

	os.Exit(int(mapExitCode(err)))
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:     binaryName,
		Version: version,
		Short:   "Shell environment toolkit: init scripts, lazy loading and a tree explorer",
		Long: `shellkit generates the shell init script for your aliases, environment,
framework plugins, lazily loaded tools and prompt, and wraps the external
tools it relies on (fzf, tree, bat, the clipboard).

Configuration is read from ~/.config/shellkit/config.yaml; built-in
defaults are used when the file does not exist.

Run 'shellkit install' to hook 'shellkit init' into your shell.
Run 'shellkit pick' to select folders and files and copy them as a tree.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setup,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Override configuration file (.yaml or .toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")

	pickCmd := &cobra.Command{
		Use:   "pick",
		Short: "Pick folders and files and copy them as a tree",
		Long: `Start the interactive tree explorer in the current directory.

You choose between folders only and folders and files, the preview depth,
then pick entries with fzf. The selection is printed as a tree, copied to
the clipboard and can optionally be saved to a file.`,
		Args: cobra.NoArgs,
		RunE: runPick,
	}

	previewCmd := &cobra.Command{
		Use:    "preview <item>",
		Short:  "Preview an explorer item",
		Hidden: true,
		Args:   cobra.ExactArgs(1),
		RunE:   runPreview,
	}
	previewCmd.Flags().StringVar(&previewDepthFile, "depth-file", "", "File holding the tree depth")
	previewCmd.Flags().StringVar(&previewDir, "dir", ".", "Directory the item is listed in")

	treeCmd := &cobra.Command{
		Use:   "tree [dir]",
		Short: "Print a directory tree",
		Long:  `Print a depth-limited directory tree using tree, or a built-in diagram when tree is not installed.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runTree,
	}
	treeCmd.Flags().IntVarP(&treeDepth, "depth", "L", 0, "Maximum depth (1-10, default from config)")

	initCmd := &cobra.Command{
		Use:       "init <shell>",
		Short:     "Print the shell init script",
		Long:      `Print the init script for zsh, bash or fish. Use --output to write it to a file instead.`,
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{config.ShellZsh, config.ShellBash, config.ShellFish},
		RunE:      runInit,
	}
	initCmd.Flags().StringVarP(&initOutput, "output", "o", "", "Write the script to a file")
	initCmd.Flags().BoolVarP(&dryRun, "dry-run", "n", false, "Show the changes to --output without writing")

	installCmd := &cobra.Command{
		Use:   "install [shell]",
		Short: "Hook shellkit into your shell rc file",
		Long:  `Append the line that evaluates 'shellkit init' to the rc file of your shell. Running it again changes nothing.`,
		Args:  cobra.MaximumNArgs(1),
		RunE:  runInstall,
	}

	lazyCmd := &cobra.Command{
		Use:   "lazy <name>",
		Short: "Print the memoized init output of a lazily loaded tool",
		Args:  cobra.ExactArgs(1),
		RunE:  runLazy,
	}
	lazyCmd.Flags().BoolVar(&lazyRefresh, "refresh", false, "Run the init command again")

	doctorCmd := &cobra.Command{
		Use:   "doctor",
		Short: "Report which external tools are available",
		Args:  cobra.NoArgs,
		RunE:  runDoctor,
	}

	aliasesCmd := &cobra.Command{
		Use:   "aliases [query]",
		Short: "List aliases, fuzzy-filtered by query",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runAliases,
	}

	rootCmd.AddCommand(pickCmd, previewCmd, treeCmd, initCmd, installCmd, lazyCmd, doctorCmd, aliasesCmd)

	return rootCmd
}

// setup configures logging and loads the configuration.
func setup(_ *cobra.Command, _ []string) error {
	if verbose {
		var logWriter io.Writer = os.Stderr
		// When running interactively, write logs to a file to avoid corrupting fzf and the prompts
		if tui.IsTerminal(os.Stdout) {
			logPath := filepath.Join(os.TempDir(), binaryName+".log")
			f, err := os.OpenFile(logPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0600) //nolint:gosec // fixed name in temp dir
			if err == nil {
				logFile = f
				logWriter = f
				fmt.Fprintf(os.Stderr, "Verbose logs: %s\n", logPath)
			}
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(logWriter, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	loaded, err := loadConfig()
	if err != nil {
		return err
	}

	cfg = loaded

	return nil
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(config.ExpandPath(configPath, nil))
	}

	return config.LoadAppConfig()
}

// runWithCancellation runs a context-aware function with signal-based cancellation.
// It sets up SIGINT/SIGTERM handling and cancels the context when a signal is received.
func runWithCancellation(fn func(ctx context.Context) error) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	return fn(ctx)
}

func runPick(cmd *cobra.Command, _ []string) error {
	if err := platform.Require(cfg.Tools.Fzf); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s is required for the tree explorer\n", cfg.Tools.Fzf)
		return err
	}

	root, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting working directory: %w", err)
	}

	exe, err := os.Executable()
	if err != nil {
		exe = binaryName
	}

	session := explorer.NewSession(root,
		finder.NewFzf(cfg.Tools.Fzf).WithLogger(slog.Default()),
		abortAsCancel{tui.NewPrompter(os.Stdin, os.Stderr)},
		clipboard.New(cfg.Tools.Clipboard, platform.Detect(), os.Stderr),
	).WithConfig(cfg.Explorer).WithLogger(slog.Default())
	session.Out = cmd.OutOrStdout()
	session.Err = cmd.ErrOrStderr()
	session.PreviewCommand = func(depthFile, dir string) string {
		return previewCommand(exe, depthFile, dir)
	}

	return runWithCancellation(func(ctx context.Context) error {
		_, err := session.Run(ctx)
		return err
	})
}

// abortAsCancel reports aborted prompts as explorer cancellations.
type abortAsCancel struct {
	tui.Prompter
}

func (p abortAsCancel) Input(ctx context.Context, label, placeholder string) (string, error) {
	v, err := p.Prompter.Input(ctx, label, placeholder)
	return v, cancelled(err)
}

func (p abortAsCancel) Confirm(ctx context.Context, label string, timeout time.Duration, def bool) (bool, error) {
	v, err := p.Prompter.Confirm(ctx, label, timeout, def)
	return v, cancelled(err)
}

func cancelled(err error) error {
	if errors.Is(err, tui.ErrAborted) {
		return fmt.Errorf("%w: %w", explorer.ErrCancelled, err)
	}

	return err
}

// previewCommand is the fzf --preview string; fzf substitutes {} with the
// quoted item under the cursor.
func previewCommand(exe, depthFile, dir string) string {
	return fmt.Sprintf("%s preview --depth-file %s --dir %s {}",
		cmdexec.Quote(exe), cmdexec.Quote(depthFile), cmdexec.Quote(dir))
}

func newPrinter() *treeview.Printer {
	return treeview.New(cfg.Tools, cfg.Explorer.Ignore, cfg.Explorer.PreviewLines, &cmdexec.RealCommander{}).
		WithLogger(slog.Default())
}

func runPreview(cmd *cobra.Command, args []string) error {
	depth := explorer.ReadDepth(previewDepthFile, cfg.Explorer.DefaultDepth)

	return newPrinter().Preview(cmd.Context(), cmd.OutOrStdout(), previewDir, args[0], depth)
}

func runTree(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = config.ExpandPath(args[0], nil)
	}

	depth := explorer.ParseDepth(strconv.Itoa(treeDepth), cfg.Explorer.DefaultDepth)

	return newPrinter().Tree(cmd.Context(), cmd.OutOrStdout(), dir, depth)
}

// selfBinary is how generated scripts invoke shellkit: by name when it is on
// PATH, otherwise by the absolute path of the running executable.
func selfBinary() string {
	if platform.IsCommandAvailable(binaryName) {
		return binaryName
	}

	if exe, err := os.Executable(); err == nil {
		return exe
	}

	return binaryName
}

func runInit(cmd *cobra.Command, args []string) error {
	shell := args[0]

	script, err := shellinit.Generate(cfg, shell, selfBinary())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if initOutput == "" {
		_, err := io.WriteString(out, script)
		return err
	}

	path := config.ExpandPath(initOutput, nil)

	existing, err := os.ReadFile(path) //nolint:gosec // output path given by the user
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("reading %s: %w", path, err)
	}

	diff := shellinit.Diff(path, path+" (generated)", string(existing), script)
	if diff == "" {
		fmt.Fprintf(out, "%s is up to date\n", path)
		return nil
	}

	fmt.Fprint(out, diff)

	if dryRun {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating directory for %s: %w", path, err)
	}

	if err := os.WriteFile(path, []byte(script), 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}

	fmt.Fprintf(out, "Wrote %s\n", path)

	return nil
}

func runInstall(cmd *cobra.Command, args []string) error {
	shell := platform.DetectShell()
	if len(args) == 1 {
		shell = args[0]
	}

	if shellinit.HookSnippet(shell, binaryName) == "" {
		slog.Debug("login shell not supported, using configured shell",
			slog.String("detected", shell),
			slog.String("configured", cfg.Shell))
		shell = cfg.Shell
	}

	rcPath := shellinit.RCPath(shell)
	if rcPath == "" {
		return fmt.Errorf("%w: %q", config.ErrUnsupportedShell, shell)
	}

	added, err := shellinit.InstallHook(shell, rcPath, selfBinary())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if added {
		fmt.Fprintf(out, "Added shellkit hook to %s\n", rcPath)
		fmt.Fprintln(out, "Restart your shell to load it.")
	} else {
		fmt.Fprintf(out, "shellkit hook already present in %s\n", rcPath)
	}

	return nil
}

func runLazy(cmd *cobra.Command, args []string) error {
	tool, ok := cfg.LazyTool(args[0])
	if !ok {
		return fmt.Errorf("unknown lazy tool %q", args[0])
	}

	cache := lazyload.New(lazyload.DefaultDir(), lazyload.DefaultTTL, &cmdexec.RealCommander{}).
		WithLogger(slog.Default())

	if lazyRefresh {
		if err := cache.Invalidate(tool.Name); err != nil {
			return err
		}
	}

	out, err := cache.Resolve(cmd.Context(), tool.Name, tool.Init)
	if err != nil {
		return err
	}

	_, err = cmd.OutOrStdout().Write(out)

	return err
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	plat := platform.Detect()

	fmt.Fprintf(out, "OS: %s", plat.OS)
	if plat.Distro != "" {
		fmt.Fprintf(out, " (%s)", plat.Distro)
	}
	if plat.IsWSL {
		fmt.Fprint(out, " [WSL]")
	}
	fmt.Fprintln(out)
	fmt.Fprintf(out, "Shell: %s\n", orNone(plat.Shell))
	fmt.Fprintf(out, "Config: %s\n\n", orNone(configSource()))

	available := make(map[string]bool)
	for _, name := range platform.DetectTools() {
		available[name] = true
	}

	for _, name := range platform.KnownTools {
		if available[name] {
			fmt.Fprintf(out, "  %s %s\n", tui.SuccessStyle.Render("✓"), name)
		} else {
			fmt.Fprintf(out, "  %s %s\n", tui.ErrorStyle.Render("✗"), name)
		}
	}

	if !platform.IsCommandAvailable(cfg.Tools.Fzf) {
		fmt.Fprintf(out, "\n%s\n", tui.WarningStyle.Render(cfg.Tools.Fzf+" is missing: 'shellkit pick' will not work"))
	}

	return nil
}

func configSource() string {
	if configPath != "" {
		return config.ExpandPath(configPath, nil)
	}

	path := config.AppConfigPath()
	if _, err := os.Stat(path); err != nil {
		return "built-in defaults"
	}

	return path
}

func orNone(s string) string {
	if s == "" {
		return "none"
	}

	return s
}

func runAliases(cmd *cobra.Command, args []string) error {
	names := cfg.AliasNames()

	if len(args) == 1 {
		matches := fuzzy.Find(args[0], names)
		if len(matches) == 0 {
			return fmt.Errorf("no alias matches %q", args[0])
		}

		names = names[:0:0]
		for _, m := range matches {
			names = append(names, m.Str)
		}
	}

	width := 0
	for _, name := range names {
		width = max(width, len(name))
	}

	out := cmd.OutOrStdout()
	for _, name := range names {
		fmt.Fprintf(out, "%-*s  %s\n", width, name, cfg.Aliases[name])
	}

	return nil
}
