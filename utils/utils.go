package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseBoundedInt parses a query value, falling back to def when raw is empty.
// The result must lie within [lo, hi].
func ParseBoundedInt(name, raw string, def, lo, hi int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	if n < lo || n > hi {
		return 0, fmt.Errorf("%s must be between %d and %d", name, lo, hi)
	}
	return n, nil
}
