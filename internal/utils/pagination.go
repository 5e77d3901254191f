package utils

import "strconv"

// ParsePage safely converts query values to positive page numbers.
func ParsePage(value string, defaultVal int) int {
	if value == "" {
		return defaultVal
	}
	if v, err := strconv.Atoi(value); err == nil && v > 0 {
		return v
	}
	return defaultVal
}

// PageBounds converts 1-indexed page parameters into a slice window
// over a list of n elements. A page past the end yields an empty window.
func PageBounds(page, size, n int) (int, int) {
	offset := (page - 1) * size
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		return n, n
	}
	end := offset + size
	if end > n {
		end = n
	}
	return offset, end
}
