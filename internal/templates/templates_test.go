// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package templates

import (
	"errors"
	"strings"
	"testing"

	"go.astrophena.name/licenseheaders/internal/testutil"
)

func TestNames(t *testing.T) {
	t.Parallel()

	testutil.AssertEqual(t, Names(), []string{
		"apache-2", "gpl-v3", "isc", "lgpl-v3", "mit", "mpl-2",
	})
}

func TestResolve(t *testing.T) {
	t.Parallel()

	t.Run("exact match", func(t *testing.T) {
		text, err := Resolve("mit")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(text, "Permission is hereby granted") {
			t.Fatalf("unexpected template text:\n%s", text)
		}
	})

	t.Run("unique substring match", func(t *testing.T) {
		text, err := Resolve("apache")
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(text, "Apache License, Version 2.0") {
			t.Fatalf("unexpected template text:\n%s", text)
		}
	})

	t.Run("ambiguous", func(t *testing.T) {
		_, err := Resolve("gpl")
		var ae *AmbiguousError
		if !errors.As(err, &ae) {
			t.Fatalf("want *AmbiguousError, got %v", err)
		}
		testutil.AssertEqual(t, ae.Matches, []string{"gpl-v3", "lgpl-v3"})
	})

	t.Run("not found", func(t *testing.T) {
		_, err := Resolve("wtfpl")
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("want ErrNotFound, got %v", err)
		}
	})
}

func TestPlaceholders(t *testing.T) {
	t.Parallel()

	// Every predefined template must carry the owner and years
	// placeholders, or rendering it would produce a header that names
	// nobody.
	for _, name := range Names() {
		text, err := Resolve(name)
		if err != nil {
			t.Fatal(err)
		}
		for _, placeholder := range []string{"${owner}", "${years}"} {
			if !strings.Contains(text, placeholder) {
				t.Errorf("template %q lacks %s", name, placeholder)
			}
		}
	}
}
