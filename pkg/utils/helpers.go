package utils

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ParseDuration safely parses duration strings like "2m"
func ParseDuration(d string) time.Duration {
	if d == "" {
		return 2 * time.Minute
	}
	duration, err := time.ParseDuration(d)
	if err != nil {
		return 2 * time.Minute
	}
	return duration
}

// ParseValue converts a raw spreadsheet cell into a typed value: int, then
// float, then string as-is.
func ParseValue(s string) interface{} {
	s = strings.TrimSpace(s)

	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// FormatBRL renders a number in the pt-BR pattern "1.234,56".
func FormatBRL(x float64) string {
	s := strconv.FormatFloat(x, 'f', 2, 64)

	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")

	parts := strings.SplitN(s, ".", 2)
	intPart, decPart := parts[0], parts[1]

	var groups []string
	for len(intPart) > 3 {
		groups = append([]string{intPart[len(intPart)-3:]}, groups...)
		intPart = intPart[:len(intPart)-3]
	}
	groups = append([]string{intPart}, groups...)

	out := strings.Join(groups, ".") + "," + decPart
	if neg {
		out = "-" + out
	}
	return out
}

// ParseBRL parses "1.234,56" (and plain "1234.56") into a float64.
func ParseBRL(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}

	if strings.Contains(s, ",") {
		s = strings.ReplaceAll(s, ".", "")
		s = strings.ReplaceAll(s, ",", ".")
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid BRL amount %q: %w", s, err)
	}
	return f, nil
}
