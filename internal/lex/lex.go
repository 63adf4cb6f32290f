// Package lex implements the assembler's lexical helpers: whitespace
// skipping, label/directive/operand extraction, numeric and label
// validation, comment stripping, and whitespace normalization.
package lex

import (
	"strconv"
	"strings"

	"github.com/rncernic/asm24/internal/diag"
)

// MinContent and MaxContent bound a data value or machine word content
// field: 21 signed bits.
const (
	MinContent = -(1 << 20)
	MaxContent = (1 << 20) - 1
)

// MaxLabelLen is the longest legal label/macro identifier.
const MaxLabelLen = 31

// SkipWhitespace advances *pos past spaces and tabs.
func SkipWhitespace(s string, pos *int) {
	for *pos < len(s) && (s[*pos] == ' ' || s[*pos] == '\t') {
		*pos++
	}
}

// ExtractLabel consumes a leading `name:` label if present, restoring
// pos and returning ok=false if the line does not terminate the
// identifier with a colon.
func ExtractLabel(s string, pos *int) (label string, ok bool) {
	start := *pos
	p := *pos
	SkipWhitespace(s, &p)

	if p >= len(s) || !isAlpha(s[p]) {
		return "", false
	}

	nameStart := p
	p++
	for p < len(s) && isAlnumOrUnderscore(s[p]) {
		p++
	}

	if p >= len(s) || s[p] != ':' {
		*pos = start
		return "", false
	}

	name := s[nameStart:p]
	*pos = p + 1
	return name, true
}

// ExtractDirective consumes a `.token` if the next character is '.'.
func ExtractDirective(s string, pos *int) (directive string, ok bool) {
	p := *pos
	SkipWhitespace(s, &p)

	if p >= len(s) || s[p] != '.' {
		return "", false
	}

	start := p
	for p < len(s) && s[p] != ' ' && s[p] != '\t' {
		p++
	}

	*pos = p
	return s[start:p], true
}

// ExtractArguments returns the remainder of the line after pos, trimmed
// of leading whitespace.
func ExtractArguments(s string, pos *int) string {
	p := *pos
	SkipWhitespace(s, &p)
	*pos = len(s)
	return s[p:]
}

// ParseDataValues parses a comma-separated list of optionally signed
// decimal integers, each within [MinContent, MaxContent].
func ParseDataValues(args string) ([]int, error) {
	fields := strings.Split(args, ",")
	values := make([]int, 0, len(fields))

	for _, f := range fields {
		f = strings.TrimSpace(f)
		if f == "" {
			return nil, errSyntax("empty value in .data list")
		}
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, errSyntax("invalid integer %q", f)
		}
		if n < MinContent || n > MaxContent {
			return nil, errRange("value %d out of range [%d, %d]", n, MinContent, MaxContent)
		}
		values = append(values, n)
	}
	return values, nil
}

// ParseStringValue parses a double-quoted string, returning the byte
// codes of its interior bytes plus a trailing null terminator.
func ParseStringValue(args string) ([]int, error) {
	s := strings.TrimSpace(args)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return nil, errSyntax(".string argument must be quoted")
	}

	interior := s[1 : len(s)-1]
	values := make([]int, 0, len(interior)+1)
	for i := 0; i < len(interior); i++ {
		values = append(values, int(interior[i]))
	}
	values = append(values, 0)
	return values, nil
}

// IsValidLabel reports whether name is a legal label/macro identifier:
// alphabetic leader, alphanumeric/underscore body, length 1..31.
func IsValidLabel(name string) bool {
	if len(name) == 0 || len(name) > MaxLabelLen {
		return false
	}
	if !isAlpha(name[0]) {
		return false
	}
	for i := 1; i < len(name); i++ {
		if !isAlnumOrUnderscore(name[i]) {
			return false
		}
	}
	return true
}

// CheckLineLength reports diag.Syntax if line exceeds max physical
// characters.
func CheckLineLength(line string, max int) error {
	if len(line) > max {
		return errSyntax("line too long (%d chars, max %d)", len(line), max)
	}
	return nil
}

// RemoveComment truncates line at the first ';'.
func RemoveComment(line string) string {
	if idx := strings.IndexByte(line, ';'); idx >= 0 {
		return line[:idx]
	}
	return line
}

// NormalizeString trims leading/trailing whitespace and, when collapse
// is set, replaces any interior whitespace run with a single space.
func NormalizeString(line string, collapse bool) string {
	trimmed := strings.TrimSpace(line)
	if !collapse {
		return trimmed
	}
	return strings.Join(strings.Fields(trimmed), " ")
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func isAlnumOrUnderscore(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9') || b == '_'
}

func errSyntax(format string, args ...any) *diag.Err {
	return diag.New(diag.Syntax, format, args...)
}

func errRange(format string, args ...any) *diag.Err {
	return diag.New(diag.Range, format, args...)
}
