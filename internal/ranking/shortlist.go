package ranking

import (
	"errors"
	"sort"
)

var ErrInvalidCount = errors.New("shortlist size must be a positive integer")

// Select returns the n highest-scoring candidates. Ties keep their original
// relative order. Asking for more than available returns all of them.
func Select(candidates []Candidate, n int) ([]Candidate, error) {
	if n <= 0 {
		return nil, ErrInvalidCount
	}

	sorted := make([]Candidate, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	if n > len(sorted) {
		n = len(sorted)
	}
	return sorted[:n], nil
}
