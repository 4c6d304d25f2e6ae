package triage

import (
	"strconv"
	"strings"
)

// ParseAge parses an age field, falling back to DefaultAge when the value is
// blank or not a number.
func ParseAge(s string) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return DefaultAge
	}
	return n
}

// ParseGender normalizes a gender field, falling back to DefaultGender.
func ParseGender(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return DefaultGender
	}
	return s
}

// ParseOptionalInt parses an optional integer field. Blank or malformed
// input yields nil rather than an error; these fields are best effort.
func ParseOptionalInt(s string) *int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return nil
	}
	return &n
}

// ParseOptionalFloat parses an optional float field, nil on blank/malformed.
func ParseOptionalFloat(s string) *float64 {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseConditions splits a free-text conditions field on commas and
// semicolons into trimmed, non-empty entries. Order is preserved.
func ParseConditions(s string) []string {
	var out []string
	for _, part := range strings.FieldsFunc(s, func(r rune) bool { return r == ',' || r == ';' }) {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// NormalizeBloodPressure trims a blood-pressure field. The service accepts
// either a "systolic/diastolic" pair or a single numeric token; whitespace
// inside the pair is dropped.
func NormalizeBloodPressure(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), " ", "")
}

func itoa(n int) string { return strconv.Itoa(n) }
