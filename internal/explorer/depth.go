package explorer

import (
	"strconv"
	"strings"

	"github.com/AntoineGS/shellkit/internal/config"
)

// ParseDepth parses a depth typed by the user. Anything that is not a whole
// number between config.MinDepth and config.MaxDepth yields fallback, and an
// out-of-range fallback yields config.DefaultDepth.
func ParseDepth(input string, fallback int) int {
	if fallback < config.MinDepth || fallback > config.MaxDepth {
		fallback = config.DefaultDepth
	}

	input = strings.TrimSpace(input)
	if input == "" || strings.TrimLeft(input, "0123456789") != "" {
		return fallback
	}

	n, err := strconv.Atoi(input)
	if err != nil || n < config.MinDepth || n > config.MaxDepth {
		return fallback
	}

	return n
}
