// Package lazyload memoizes the init output of slow-starting tools (node
// version managers, cloud SDKs) in plain files so new shells can source it
// without running the tool.
package lazyload

import (
	"bufio"
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"time"

	"github.com/AntoineGS/shellkit/internal/cmdexec"
)

// DefaultTTL is how long a memoized init output stays fresh.
const DefaultTTL = 24 * time.Hour

// ErrInitFailed is returned when the init command of a tool fails.
var ErrInitFailed = errors.New("lazy init command failed")

const hashHeader = "# shellkit-lazy "

var unsafeName = regexp.MustCompile(`[^A-Za-z0-9_.-]`)

// Cache stores one file per tool in Dir.
type Cache struct {
	Runner cmdexec.Commander
	logger *slog.Logger
	now    func() time.Time
	Dir    string
	TTL    time.Duration
}

// DefaultDir returns $TMPDIR/shellkit-lazy-<uid>.
func DefaultDir() string {
	return filepath.Join(os.TempDir(), "shellkit-lazy-"+strconv.Itoa(os.Getuid()))
}

// New creates a Cache in dir. A zero ttl means DefaultTTL.
func New(dir string, ttl time.Duration, runner cmdexec.Commander) *Cache {
	if ttl <= 0 {
		ttl = DefaultTTL
	}

	return &Cache{
		Dir:    dir,
		TTL:    ttl,
		Runner: runner,
		logger: slog.Default(),
		now:    time.Now,
	}
}

// WithLogger sets a custom logger
func (c *Cache) WithLogger(logger *slog.Logger) *Cache {
	c2 := *c
	c2.logger = logger

	return &c2
}

// Path returns the file holding the output for name.
func (c *Cache) Path(name string) string {
	return filepath.Join(c.Dir, unsafeName.ReplaceAllString(name, "_")+".sh")
}

// Resolve returns the memoized output of initCmd for name. The command is run
// through sh -c when the file is missing, older than TTL, or was produced by
// a different command. A failing command leaves no file behind.
func (c *Cache) Resolve(ctx context.Context, name, initCmd string) ([]byte, error) {
	path := c.Path(name)
	sum := commandHash(initCmd)

	if out, ok := c.lookup(path, sum); ok {
		c.logger.Debug("lazy init cache hit", slog.String("tool", name), slog.String("path", path))
		return out, nil
	}

	c.logger.Debug("lazy init cache miss", slog.String("tool", name), slog.String("command", initCmd))

	out, err := c.Runner.Run(ctx, "sh", "-c", initCmd)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInitFailed, name, err)
	}

	if err := c.store(path, sum, out); err != nil {
		c.logger.Warn("failed to memoize lazy init output",
			slog.String("tool", name),
			slog.String("error", err.Error()))
	}

	return out, nil
}

// Invalidate removes the memoized output for name.
func (c *Cache) Invalidate(name string) error {
	if err := os.Remove(c.Path(name)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("invalidating %s: %w", name, err)
	}

	return nil
}

func (c *Cache) lookup(path, sum string) ([]byte, bool) {
	info, err := os.Stat(path)
	if err != nil || c.now().Sub(info.ModTime()) > c.TTL {
		return nil, false
	}

	data, err := os.ReadFile(path) //nolint:gosec // path inside our cache dir
	if err != nil {
		return nil, false
	}

	header, body, ok := bytes.Cut(data, []byte("\n"))
	if !ok || string(header) != hashHeader+sum {
		return nil, false
	}

	return body, true
}

// store writes the file through a temp file and rename so concurrent shells
// never source a partial file.
func (c *Cache) store(path, sum string, out []byte) error {
	if err := os.MkdirAll(c.Dir, 0700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.Dir, ".lazy-*")
	if err != nil {
		return err
	}

	w := bufio.NewWriter(tmp)
	_, _ = w.WriteString(hashHeader + sum + "\n")
	_, _ = w.Write(out)

	if err := w.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
		return err
	}

	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmp.Name())
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func commandHash(cmd string) string {
	sum := sha256.Sum256([]byte(cmd))
	return hex.EncodeToString(sum[:6])
}
