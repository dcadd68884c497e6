// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package header locates, inserts and rewrites license header comments in
// source file content.
//
// The package works on raw leading lines of text, not on a syntax tree.
// Each supported language is described by a [Style] value holding its
// comment delimiters and the patterns of lines that must stay at the very
// top of a file (shebang, coding declaration). [Update] ties everything
// together: it detects an existing header, renders a new one from a
// [Template] and splices it into the file content.
package header

import (
	"regexp"
	"slices"
	"strings"
)

// Style describes how one language family writes comments and which
// leading lines must be kept in place.
//
// Exactly one of the block delimiters or the line prefix is set.
type Style struct {
	// Name identifies the style in the registry.
	Name string
	// Extensions lists the file extensions handled by this style, with
	// the leading dot.
	Extensions []string

	// BlockStart and BlockEnd delimit block comments.
	// They are empty for line-comment styles.
	BlockStart, BlockEnd string
	// LinePrefix starts every comment line.
	// It is empty for block-comment styles.
	LinePrefix string

	// keepFirst matches a line that must stay first in the file, like a
	// shebang or an XML declaration. Checked only against line 0.
	keepFirst *regexp.Regexp
	// keepMore matches a line that must stay right after the first one,
	// like a Python coding declaration. Checked against lines 0 and 1.
	keepMore *regexp.Regexp
}

// Block reports whether s wraps headers in block comments.
func (s *Style) Block() bool { return s.BlockStart != "" }

// SplitKeep splits lines into the leading lines that must never be
// touched and the remaining ones. Keep lines are positional: a line
// counts only at the exact position it is allowed to occupy, and matching
// stops at the first line that doesn't.
func (s *Style) SplitKeep(lines []string) (keep, rest []string) {
	i := 0
	if s.keepFirst != nil && len(lines) > 0 && s.keepFirst.MatchString(lines[0]) {
		i++
	}
	if s.keepMore != nil && i < len(lines) && i <= 1 && s.keepMore.MatchString(lines[i]) {
		i++
	}
	return lines[:i], lines[i:]
}

var (
	shebangRe = regexp.MustCompile(`^#!`)
	codingRe  = regexp.MustCompile(`^#.*coding[:=]`)
	xmlDeclRe = regexp.MustCompile(`^\s*<\?xml.*\?>`)
)

// styles is the single table describing every supported language.
// Adding a language means adding one row here.
var styles = []*Style{
	{
		Name:       "c",
		Extensions: []string{".c", ".cc", ".cpp", ".h", ".hpp"},
		BlockStart: "/*",
		BlockEnd:   " */",
	},
	{
		Name:       "java",
		Extensions: []string{".java", ".scala", ".groovy", ".kt"},
		BlockStart: "/*",
		BlockEnd:   " */",
	},
	{
		Name:       "javascript",
		Extensions: []string{".js", ".jsx", ".ts", ".tsx"},
		BlockStart: "/*",
		BlockEnd:   " */",
	},
	{
		Name:       "go",
		Extensions: []string{".go"},
		LinePrefix: "// ",
	},
	{
		Name:       "csharp",
		Extensions: []string{".cs"},
		LinePrefix: "// ",
	},
	{
		Name:       "vb",
		Extensions: []string{".vb"},
		LinePrefix: "' ",
	},
	{
		Name:       "sql",
		Extensions: []string{".sql"},
		LinePrefix: "-- ",
	},
	{
		Name:       "erlang",
		Extensions: []string{".erl", ".hrl"},
		LinePrefix: "%% ",
	},
	{
		Name:       "xml",
		Extensions: []string{".xml", ".svg"},
		BlockStart: "<!--",
		BlockEnd:   "-->",
		keepFirst:  xmlDeclRe,
	},
	{
		Name:       "script",
		Extensions: []string{".sh", ".csh", ".pl"},
		LinePrefix: "# ",
		keepFirst:  shebangRe,
	},
	{
		Name:       "python",
		Extensions: []string{".py"},
		LinePrefix: "# ",
		keepFirst:  shebangRe,
		keepMore:   codingRe,
	},
	{
		Name:       "ruby",
		Extensions: []string{".rb"},
		LinePrefix: "# ",
		keepFirst:  shebangRe,
	},
}

var (
	byName = make(map[string]*Style)
	byExt  = make(map[string]*Style)
)

func init() {
	for _, s := range styles {
		byName[s.Name] = s
		for _, ext := range s.Extensions {
			byExt[ext] = s
		}
	}
}

// Lookup returns the style registered under name.
func Lookup(name string) (*Style, bool) {
	s, ok := byName[name]
	return s, ok
}

// ByExtension returns the style handling files with the given extension.
// The extension includes the leading dot, as returned by filepath.Ext.
func ByExtension(ext string) (*Style, bool) {
	s, ok := byExt[strings.ToLower(ext)]
	return s, ok
}

// Extensions returns all registered file extensions, sorted.
func Extensions() []string {
	exts := make([]string, 0, len(byExt))
	for ext := range byExt {
		exts = append(exts, ext)
	}
	slices.Sort(exts)
	return exts
}
