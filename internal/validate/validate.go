package validate

import (
	"regexp"
	"strconv"
	"strings"
)

var reShelfCode = regexp.MustCompile(`^[A-Z0-9_-]{1,10}$`)

// ShelfName trims and caps a shelf name. Empty after trimming is invalid.
func ShelfName(s string) (string, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", false
	}
	if len(s) > 50 {
		s = s[:50]
	}
	return s, true
}

// ShelfCode uppercases and caps a caller-supplied shelf code.
func ShelfCode(s string) (string, bool) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", false
	}
	if len(s) > 10 {
		s = s[:10]
	}
	return s, reShelfCode.MatchString(s)
}

// Title requires a non-empty auction title.
func Title(s string) (string, bool) {
	s = strings.TrimSpace(s)
	return s, s != ""
}

// ID parses a positive integer identifier.
func ID(s string) (int64, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}

// IDs requires a non-empty list of positive identifiers.
func IDs(in []int64) ([]int64, bool) {
	if len(in) == 0 {
		return nil, false
	}
	seen := make(map[int64]struct{}, len(in))
	out := make([]int64, 0, len(in))
	for _, id := range in {
		if id < 1 {
			return nil, false
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, true
}
