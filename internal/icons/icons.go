// Package icons maps directory entries to the glyphs shown in listings and rendered trees.
package icons

import (
	"path/filepath"
	"strings"
)

// Entry glyphs.
const (
	Directory = "📁"
	Symlink   = "🔗"
	Parent    = "⬆"

	Code     = "📜"
	Markup   = "🌐"
	Style    = "🎨"
	Image    = "🖼"
	Script   = "⚙"
	Document = "📕"
	Default  = "📄"
)

// byExtension is keyed by lower-cased extension without the leading dot.
var byExtension = map[string]string{
	"go": Code, "js": Code, "jsx": Code, "ts": Code, "tsx": Code, "mjs": Code, "cjs": Code,
	"py": Code, "rb": Code, "rs": Code, "java": Code, "kt": Code, "c": Code, "h": Code,
	"cpp": Code, "hpp": Code, "cs": Code, "php": Code, "swift": Code, "lua": Code,

	"html": Markup, "htm": Markup, "xml": Markup, "vue": Markup, "svelte": Markup,

	"css": Style, "scss": Style, "sass": Style, "less": Style,

	"png": Image, "jpg": Image, "jpeg": Image, "gif": Image, "svg": Image, "webp": Image,
	"ico": Image, "bmp": Image,

	"sh": Script, "bash": Script, "zsh": Script, "fish": Script, "ps1": Script,

	"pdf": Document, "doc": Document, "docx": Document, "odt": Document, "rtf": Document,
}

// known holds every glyph that can prefix a display label.
var known = map[string]bool{
	Directory: true, Symlink: true, Parent: true,
	Code: true, Markup: true, Style: true, Image: true, Script: true, Document: true, Default: true,
}

// ForExtension returns the glyph for ext. The leading dot is optional and case is ignored.
func ForExtension(ext string) string {
	ext = strings.ToLower(strings.TrimPrefix(ext, "."))
	if glyph, ok := byExtension[ext]; ok {
		return glyph
	}

	return Default
}

// ForFile returns the glyph for a regular file name.
func ForFile(name string) string {
	return ForExtension(filepath.Ext(name))
}

// Label joins a glyph and a name the way listings display them.
func Label(glyph, name string) string {
	return glyph + " " + name
}

// Strip removes a leading glyph and its separating space from a display label.
// Labels without a known glyph are returned unchanged.
func Strip(label string) string {
	glyph, rest, ok := strings.Cut(label, " ")
	if !ok || !known[glyph] {
		return label
	}

	return rest
}
