package utils

import (
	"strconv"
)

// ParseInt converts string to int, falling back to defaultValue when the value
// is empty, malformed or negative.
func ParseInt(value string, defaultValue int) int {
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 0 {
		return defaultValue
	}

	return result
}
