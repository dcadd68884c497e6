// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.astrophena.name/licenseheaders/internal/cli"
	"go.astrophena.name/licenseheaders/internal/cli/clitest"
	"go.astrophena.name/licenseheaders/internal/header"
	"go.astrophena.name/licenseheaders/internal/templates"
	"go.astrophena.name/licenseheaders/internal/testutil"

	"golang.org/x/tools/txtar"
)

var update = flag.Bool("update", false, "update golden files in testdata")

func TestMain(m *testing.M) {
	flag.Parse()
	os.Exit(m.Run())
}

func testApp() *app {
	return &app{getenv: func(string) string { return "" }}
}

func run(t *testing.T, a *app, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	env := &cli.Env{
		Args:   args,
		Getenv: func(string) string { return "" },
		Stdin:  strings.NewReader(""),
		Stdout: &outBuf,
		Stderr: &errBuf,
	}
	err = cli.Run(cli.WithEnv(context.Background(), env), a)
	return outBuf.String(), errBuf.String(), err
}

// fixtureArgs reads the command-line arguments from the comment of a
// fixture archive. The token $DIR is replaced with the extraction
// directory.
func fixtureArgs(t *testing.T, ar *txtar.Archive, dir string) []string {
	t.Helper()
	line := strings.TrimSpace(string(ar.Comment))
	const prefix = "args:"
	if !strings.HasPrefix(line, prefix) {
		t.Fatalf("fixture comment must start with %q, got %q", prefix, line)
	}
	line = strings.ReplaceAll(strings.TrimSpace(strings.TrimPrefix(line, prefix)), "$DIR", dir)
	return strings.Fields(line)
}

func TestRun(t *testing.T) {
	testutil.RunGolden(t, "testdata/*.txtar", func(t *testing.T, match string) []byte {
		ar, err := txtar.ParseFile(match)
		if err != nil {
			t.Fatal(err)
		}

		dir := t.TempDir()
		testutil.ExtractTxtar(t, ar, dir)

		args := append(fixtureArgs(t, ar, dir), "-dir", dir)
		if _, _, err := run(t, testApp(), args...); err != nil {
			t.Fatal(err)
		}

		return testutil.BuildTxtar(t, dir)
	}, *update)
}

func TestErrors(t *testing.T) {
	clitest.Run(t, func(t *testing.T) *app { return testApp() }, map[string]clitest.Case[*app]{
		"nothing to do": {
			WantErr: cli.ErrInvalidArgs,
		},
		"bad jobs": {
			Args:    []string{"-years", "2024", "-jobs", "0"},
			WantErr: cli.ErrInvalidArgs,
		},
		"ambiguous template": {
			Args:        []string{"-tmpl", "gpl", "-owner", "Acme"},
			WantErrType: &templates.AmbiguousError{},
		},
		"unknown template": {
			Args:    []string{"-tmpl", "bogus"},
			WantErr: templates.ErrNotFound,
		},
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(b)
}

func TestEnvOverride(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "header.tmpl")
	writeFile(t, tmpl, "Copyright ${owner} ${years}\n")
	src := filepath.Join(dir, "x.go")
	writeFile(t, src, "package x\n")

	a := &app{getenv: func(name string) string {
		if name == "LICENSEHEADERS_OWNER" {
			return "EnvCorp"
		}
		return ""
	}}
	if _, _, err := run(t, a, "-tmpl", tmpl, "-years", "2024", "-dir", dir); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, readFile(t, src), "// Copyright EnvCorp 2024\n\npackage x\n")
}

func TestFlagBeatsEnv(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "header.tmpl")
	writeFile(t, tmpl, "Copyright ${owner} ${years}\n")
	src := filepath.Join(dir, "x.go")
	writeFile(t, src, "package x\n")

	a := &app{getenv: func(name string) string {
		if name == "LICENSEHEADERS_OWNER" {
			return "EnvCorp"
		}
		return ""
	}}
	if _, _, err := run(t, a, "-tmpl", tmpl, "-owner", "FlagCorp", "-years", "2024", "-dir", dir); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, readFile(t, src), "// Copyright FlagCorp 2024\n\npackage x\n")
}

func TestMissingVariable(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "header.tmpl")
	writeFile(t, tmpl, "Copyright ${owner} ${years}\n")
	src := filepath.Join(dir, "a.py")
	writeFile(t, src, "x = 1\n")

	_, _, err := run(t, testApp(), "-tmpl", tmpl, "-years", "2024", "-dir", dir)
	var mve *header.MissingVariableError
	if !errors.As(err, &mve) {
		t.Fatalf("want MissingVariableError, got %v", err)
	}
	if mve.Name != "owner" {
		t.Fatalf("want missing variable owner, got %q", mve.Name)
	}
	// The file must be left untouched on failure.
	testutil.AssertEqual(t, readFile(t, src), "x = 1\n")
}

func TestDry(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "header.tmpl")
	writeFile(t, tmpl, "Copyright ${owner} ${years}\n")
	src := filepath.Join(dir, "a.rb")
	writeFile(t, src, "puts 1\n")

	_, stderr, err := run(t, testApp(), "-tmpl", tmpl, "-owner", "Acme", "-years", "2024", "-dry", "-dir", dir)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stderr, "Would update") {
		t.Fatalf("stderr must report the file, got: %q", stderr)
	}
	testutil.AssertEqual(t, readFile(t, src), "puts 1\n")
}

func TestBackup(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "header.tmpl")
	writeFile(t, tmpl, "Copyright ${owner} ${years}\n")
	src := filepath.Join(dir, "a.sh")
	writeFile(t, src, "true\n")

	if _, _, err := run(t, testApp(), "-tmpl", tmpl, "-owner", "Acme", "-years", "2024", "-backup", "-dir", dir); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, readFile(t, src), "# Copyright Acme 2024\n\ntrue\n")
	testutil.AssertEqual(t, readFile(t, src+".bak"), "true\n")
}

func TestSecondRunIsNoop(t *testing.T) {
	dir := t.TempDir()
	tmpl := filepath.Join(dir, "header.tmpl")
	writeFile(t, tmpl, "Copyright ${owner} ${years}\n")
	src := filepath.Join(dir, "x.go")
	writeFile(t, src, "package x\n")

	args := []string{"-tmpl", tmpl, "-owner", "Acme", "-years", "2024", "-dir", dir}
	if _, _, err := run(t, testApp(), args...); err != nil {
		t.Fatal(err)
	}
	first := readFile(t, src)
	if _, stderr, err := run(t, testApp(), args...); err != nil {
		t.Fatal(err)
	} else if strings.Contains(stderr, "Updated") {
		t.Fatalf("second run must not rewrite anything, got: %q", stderr)
	}
	testutil.AssertEqual(t, readFile(t, src), first)
}
