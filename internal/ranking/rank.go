package ranking

import "sort"

// Defaults for dashboard summaries.
const (
	DefaultHighMatchThreshold = 60.0
	DefaultTopMatches         = 3
)

// SortByScore orders items by descending score. The sort is stable, so
// items with equal scores keep their input order.
func SortByScore[T any](items []T, score func(T) float64) {
	sort.SliceStable(items, func(i, j int) bool {
		return score(items[i]) > score(items[j])
	})
}

// IsHighMatch reports whether a full-precision score is strictly above the
// threshold. A score of exactly 60 is not a high match.
func IsHighMatch(score, threshold float64) bool {
	return score > threshold
}

// CountHighMatches counts the items whose score is a high match.
func CountHighMatches[T any](items []T, score func(T) float64, threshold float64) int {
	n := 0
	for _, item := range items {
		if IsHighMatch(score(item), threshold) {
			n++
		}
	}
	return n
}

// TopN returns at most n leading items. It does not sort.
func TopN[T any](items []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(items) <= n {
		return items
	}
	return items[:n]
}
