// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package header

import "strings"

// maxLeadingBlank is how many blank lines are tolerated between the keep
// lines and the start of a header. A comment further from the top is body
// code, not a header.
const maxLeadingBlank = 2

// Span marks the line range of a detected header, end exclusive.
type Span struct {
	Start, End int
}

// Find scans lines for an existing header comment written in style s and
// returns its span. Lines must have any keep lines already removed, see
// [Style.SplitKeep].
//
// Detection is conservative: an unterminated block comment is reported as
// absent rather than guessed at, so the worst outcome of a malformed file
// is a duplicate insertion, never a corrupted body.
func (s *Style) Find(lines []string) (Span, bool) {
	start := 0
	for start < len(lines) && start < maxLeadingBlank && strings.TrimSpace(lines[start]) == "" {
		start++
	}
	if start == len(lines) || strings.TrimSpace(lines[start]) == "" {
		return Span{}, false
	}

	if s.Block() {
		return s.findBlock(lines, start)
	}
	return s.findLine(lines, start)
}

func (s *Style) findBlock(lines []string, start int) (Span, bool) {
	first := strings.TrimSpace(lines[start])
	if !strings.HasPrefix(first, s.BlockStart) {
		return Span{}, false
	}

	closing := strings.TrimSpace(s.BlockEnd)

	// The delimiters may sit on a single line.
	if strings.Contains(first[len(s.BlockStart):], closing) {
		return Span{Start: start, End: start + 1}, true
	}
	for i := start + 1; i < len(lines); i++ {
		if strings.Contains(lines[i], closing) {
			return Span{Start: start, End: i + 1}, true
		}
	}
	return Span{}, false
}

func (s *Style) findLine(lines []string, start int) (Span, bool) {
	prefix := strings.TrimRight(s.LinePrefix, " \t")
	if !strings.HasPrefix(strings.TrimSpace(lines[start]), prefix) {
		return Span{}, false
	}

	end := start
	for end < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[end]), prefix) {
		end++
	}
	return Span{Start: start, End: end}, true
}
