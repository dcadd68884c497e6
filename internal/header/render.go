// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"fmt"
	"regexp"
	"strings"
)

// Template is parametrized header text with ${name} placeholders.
// Placeholder names consist of identifier characters; there is no nesting
// or escaping.
type Template struct {
	text string
}

// NewTemplate returns a Template wrapping the given text.
func NewTemplate(text string) Template { return Template{text: text} }

// Vars maps placeholder names to their substitution values.
type Vars map[string]string

// MissingVariableError is returned by [Style.Render] when a placeholder
// has no value in the variable set. An unrendered placeholder in a legal
// document is unacceptable, so this is a hard failure.
type MissingVariableError struct {
	Name string
}

func (e *MissingVariableError) Error() string {
	return fmt.Sprintf("no value for template variable ${%s}", e.Name)
}

var placeholderRe = regexp.MustCompile(`\$\{([a-zA-Z_][a-zA-Z0-9_]*)\}`)

// Render substitutes vars into t and wraps the result as a comment in
// style s.
//
// Substitution is a single pass: a substituted value is never scanned for
// placeholders again. Block styles surround the body with the block
// delimiters on their own lines; line styles prefix every body line,
// blank ones included, trimming any trailing whitespace.
func (s *Style) Render(t Template, vars Vars) (string, error) {
	var missing string
	body := placeholderRe.ReplaceAllStringFunc(t.text, func(m string) string {
		name := m[2 : len(m)-1]
		val, ok := vars[name]
		if !ok {
			if missing == "" {
				missing = name
			}
			return m
		}
		return val
	})
	if missing != "" {
		return "", &MissingVariableError{Name: missing}
	}

	lines := strings.Split(strings.TrimRight(body, "\n"), "\n")

	var out []string
	if s.Block() {
		out = append(out, s.BlockStart)
		for _, line := range lines {
			out = append(out, strings.TrimRight(line, " \t"))
		}
		out = append(out, s.BlockEnd)
	} else {
		for _, line := range lines {
			out = append(out, strings.TrimRight(s.LinePrefix+strings.TrimRight(line, " \t"), " \t"))
		}
	}
	return strings.Join(out, "\n"), nil
}
