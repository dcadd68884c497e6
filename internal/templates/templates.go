// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package templates holds the predefined license header templates.
package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"slices"
	"strings"

	"go.astrophena.name/licenseheaders/internal/unwrap"
)

//go:embed *.tmpl
var files embed.FS

var registry = func() map[string]string {
	m := make(map[string]string)
	for _, name := range unwrap.Value(fs.Glob(files, "*.tmpl")) {
		m[strings.TrimSuffix(name, ".tmpl")] = string(unwrap.Value(files.ReadFile(name)))
	}
	return m
}()

// ErrNotFound is returned by Resolve when no predefined template matches
// the requested name.
var ErrNotFound = errors.New("template not found")

// AmbiguousError is returned by Resolve when the requested name matches
// more than one predefined template.
type AmbiguousError struct {
	Name    string
	Matches []string
}

func (e *AmbiguousError) Error() string {
	return fmt.Sprintf("template name %q is ambiguous: matches %s", e.Name, strings.Join(e.Matches, ", "))
}

// Names returns the names of all predefined templates, sorted.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Resolve returns the text of the predefined template matching name.
// An exact match wins; otherwise name must be a substring of exactly one
// template name.
func Resolve(name string) (string, error) {
	if text, ok := registry[name]; ok {
		return text, nil
	}

	var matches []string
	for n := range registry {
		if strings.Contains(n, name) {
			matches = append(matches, n)
		}
	}
	slices.Sort(matches)

	switch len(matches) {
	case 0:
		return "", fmt.Errorf("%w: %q", ErrNotFound, name)
	case 1:
		return registry[matches[0]], nil
	}
	return "", &AmbiguousError{Name: name, Matches: matches}
}
