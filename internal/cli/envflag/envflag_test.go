// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package envflag

import (
	"flag"
	"testing"

	"go.astrophena.name/licenseheaders/internal/testutil"
)

func getenv(env map[string]string) func(string) string {
	return func(name string) string { return env[name] }
}

func TestValue(t *testing.T) {
	t.Parallel()

	cases := map[string]struct {
		env  map[string]string
		args []string
		want string
	}{
		"default": {
			want: "fallback",
		},
		"from environment": {
			env:  map[string]string{"TEST_OWNER": "Acme"},
			want: "Acme",
		},
		"flag beats environment": {
			env:  map[string]string{"TEST_OWNER": "Acme"},
			args: []string{"-owner", "Example Corp"},
			want: "Example Corp",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			got := Value(
				"owner", "TEST_OWNER", "fallback", "Copyright owner.",
				fs, getenv(tc.env),
			)
			if err := fs.Parse(tc.args); err != nil {
				t.Fatal(err)
			}
			testutil.AssertEqual(t, *got, tc.want)
		})
	}
}

func TestValueBool(t *testing.T) {
	t.Parallel()

	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	got := Value(
		"backup", "TEST_BACKUP", false, "Keep backups.",
		fs, getenv(map[string]string{"TEST_BACKUP": "true"}),
	)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, *got, true)
}

func TestValueInvalidEnv(t *testing.T) {
	t.Parallel()

	// An unparsable environment value falls back to the default.
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	got := Value(
		"jobs", "TEST_JOBS", 4, "Worker count.",
		fs, getenv(map[string]string{"TEST_JOBS": "many"}),
	)
	if err := fs.Parse(nil); err != nil {
		t.Fatal(err)
	}
	testutil.AssertEqual(t, *got, 4)
}
