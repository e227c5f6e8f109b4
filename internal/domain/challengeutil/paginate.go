package challengeutil

import "github.com/pkg/math"

// Paginate returns the 1-based page of items. Pages past the end are empty.
func Paginate[T any](items []T, page, pageSize int) []T {
	if page < 1 || pageSize < 1 {
		return []T{}
	}

	if page-1 > len(items)/pageSize {
		return []T{}
	}

	start := (page - 1) * pageSize
	if start >= len(items) {
		return []T{}
	}

	end := math.MinInt(start+pageSize, len(items))
	return items[start:end]
}
