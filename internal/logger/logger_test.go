// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"
	"testing"

	"go.astrophena.name/licenseheaders/internal/testutil"
)

func TestLogfWriter(t *testing.T) {
	var (
		logged  bool
		message string
	)
	logf := func(format string, args ...any) {
		logged = true
		message = fmt.Sprintf(format, args...)
	}
	Logf(logf).Write([]byte("hello"))
	testutil.AssertEqual(t, logged, true)
	testutil.AssertEqual(t, message, "hello")
}

func TestAttach(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(nil)
	l.Attach(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: l.Level}))

	l.Info("hello", "key", "value")

	if !strings.Contains(buf.String(), "msg=hello") {
		t.Fatalf("log output doesn't contain the message: %q", buf.String())
	}
}

func TestLevel(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	l := New(nil)
	l.Attach(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: l.Level}))

	ctx := Put(context.Background(), l)

	Debug(ctx, "invisible")
	testutil.AssertEqual(t, buf.String(), "")

	l.Level.Set(slog.LevelDebug)
	Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "msg=visible") {
		t.Fatalf("log output doesn't contain the message: %q", buf.String())
	}
}

func TestGet(t *testing.T) {
	t.Parallel()

	// A context without a logger returns the default one that discards
	// everything.
	l := Get(context.Background())
	if l == nil {
		t.Fatal("Get returned nil")
	}

	custom := New(nil)
	ctx := Put(context.Background(), custom)
	testutil.AssertEqual(t, Get(ctx) == custom, true)
}
