// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import (
	"errors"
	"maps"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Mode selects how [Update] treats files that already have a header.
type Mode int

const (
	// ModeReplace replaces an existing header with the rendered one.
	ModeReplace Mode = iota
	// ModeAddOnly inserts a header only when none is detected and never
	// touches files that already have one.
	ModeAddOnly
)

// Options configures a single [Update] call.
type Options struct {
	// Style is the comment style of the file's language.
	Style *Style
	// Template is the header template.
	Template Template
	// Vars are the fully resolved substitution variables.
	Vars Vars
	// Mode selects the add-only or replace behavior.
	Mode Mode
	// YearsGiven marks that the years variable was supplied explicitly
	// rather than defaulted. An explicit value wins over years found in
	// an existing header.
	YearsGiven bool
	// RefreshYears extends the year range of an existing header to the
	// current year, keeping its start year. A range is never shrunk.
	RefreshYears bool
	// Now is used to determine the current year. It defaults to time.Now
	// and exists so tests can pin the clock.
	Now func() time.Time
}

// Result is the outcome of transforming one file.
type Result struct {
	// Content is the new file content.
	Content string
	// Changed reports whether Content differs from the input.
	Changed bool
}

var yearsRe = regexp.MustCompile(`\b(19|20)\d{2}(\s*-\s*(19|20)\d{2})?\b`)

// Years returns the first year or year range token found in lines, or ""
// if there is none.
func Years(lines []string) string {
	for _, line := range lines {
		if m := yearsRe.FindString(line); m != "" {
			return m
		}
	}
	return ""
}

var licenseHintRe = regexp.MustCompile(`(?i)license|copyright`)

// looksLikeLicense reports whether a detected comment span is actually a
// license header and not an ordinary leading comment. Replacing the
// latter would destroy documentation, so Update inserts above it instead.
func looksLikeLicense(lines []string) bool {
	for _, line := range lines {
		if licenseHintRe.MatchString(line) || yearsRe.MatchString(line) {
			return true
		}
	}
	return false
}

// Update rewrites the license header of the given file content.
//
// It splits content into lines preserving the line terminator style,
// carves off the keep lines, detects an existing header and splices in
// the one rendered from the template. A missing template variable
// surfaces as a [MissingVariableError] with the content untouched.
//
// Update is a pure function of its inputs and is safe to call for many
// files concurrently.
func Update(content string, opts Options) (Result, error) {
	if opts.Style == nil {
		return Result{}, errors.New("header: no style provided")
	}

	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	keep, rest := opts.Style.SplitKeep(lines)

	span, found := opts.Style.Find(rest)
	if found && !looksLikeLicense(rest[span.Start:span.End]) {
		found = false
	}

	if found && opts.Mode == ModeAddOnly {
		return Result{Content: content, Changed: false}, nil
	}

	vars := opts.Vars
	if !opts.YearsGiven && found {
		if tok := Years(rest[span.Start:span.End]); tok != "" {
			if opts.RefreshYears {
				tok = refreshYears(tok, currentYear(opts.Now))
			}
			vars = maps.Clone(vars)
			vars["years"] = tok
		}
	}

	rendered, err := opts.Style.Render(opts.Template, vars)
	if err != nil {
		return Result{}, err
	}
	headerLines := strings.Split(rendered, "\n")

	out := make([]string, 0, len(lines)+len(headerLines)+1)
	out = append(out, keep...)
	if found {
		out = append(out, rest[:span.Start]...)
		out = append(out, headerLines...)
		out = append(out, rest[span.End:]...)
	} else {
		out = append(out, headerLines...)
		// Separate the freshly inserted header from the body.
		if len(rest) > 0 && strings.TrimSpace(rest[0]) != "" {
			out = append(out, "")
		}
		out = append(out, rest...)
	}

	newContent := strings.Join(out, eol)
	return Result{Content: newContent, Changed: newContent != content}, nil
}

// UpdateYears rewrites only the year token of an existing license header,
// leaving the rest of the file untouched. It is used when no template is
// supplied. Files without a detected header are returned unchanged, and
// an absent years variable is a [MissingVariableError].
func UpdateYears(content string, opts Options) (Result, error) {
	if opts.Style == nil {
		return Result{}, errors.New("header: no style provided")
	}
	years, ok := opts.Vars["years"]
	if !ok || years == "" {
		return Result{}, &MissingVariableError{Name: "years"}
	}

	eol := "\n"
	if strings.Contains(content, "\r\n") {
		eol = "\r\n"
	}
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}

	keep, rest := opts.Style.SplitKeep(lines)

	span, found := opts.Style.Find(rest)
	if found && !looksLikeLicense(rest[span.Start:span.End]) {
		found = false
	}
	if !found {
		return Result{Content: content, Changed: false}, nil
	}

	for i := span.Start; i < span.End; i++ {
		if loc := yearsRe.FindStringIndex(rest[i]); loc != nil {
			rest[i] = rest[i][:loc[0]] + years + rest[i][loc[1]:]
			break
		}
	}

	out := make([]string, 0, len(lines))
	out = append(out, keep...)
	out = append(out, rest...)
	newContent := strings.Join(out, eol)
	return Result{Content: newContent, Changed: newContent != content}, nil
}

func currentYear(now func() time.Time) int {
	if now == nil {
		now = time.Now
	}
	return now().Year()
}

// refreshYears extends a detected year token to the given year, keeping
// the original start year. Tokens already reaching year (or beyond) are
// returned unchanged, so a range never shrinks.
func refreshYears(tok string, year int) string {
	// yearsRe guarantees the token both starts and ends with a 4-digit year.
	start := tok[:4]
	end, err := strconv.Atoi(tok[len(tok)-4:])
	if err != nil || year <= end {
		return tok
	}
	return start + "-" + strconv.Itoa(year)
}
