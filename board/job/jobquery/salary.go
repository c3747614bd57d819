package jobquery

import (
	"strconv"
	"strings"
)

// NormalizeSalary parses a free-text salary string ("₹10–18 LPA") into a
// single comparable number. Ranges compare by their upper bound so that
// salary-high sorting surfaces the best-case compensation; anything
// unparseable normalizes to 0 and sorts lowest.
func NormalizeSalary(s string) float64 {
	if s == "" {
		return 0
	}

	// Keep digits, range separators, dots and whitespace only.
	var cleaned strings.Builder
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9', r == '-', r == '–', r == '.', r == ' ', r == '\t':
			cleaned.WriteRune(r)
		}
	}

	segments := strings.FieldsFunc(cleaned.String(), func(r rune) bool {
		return r == '-' || r == '–'
	})

	best := 0.0
	found := false
	for _, seg := range segments {
		n, err := strconv.ParseFloat(strings.TrimSpace(seg), 64)
		if err != nil {
			continue
		}
		if !found || n > best {
			best = n
			found = true
		}
	}
	if !found {
		return 0
	}
	return best
}
