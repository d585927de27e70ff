package generator

import (
	"errors"
	"fmt"
	"math/rand"

	"svw.info/cheryl/internal/domain"
)

// ErrBadRequest marks generator input that can never be sampled.
var ErrBadRequest = errors.New("bad generator request")

// ErrTooManyTries is returned when the domains are too small to yield the
// requested number of distinct candidates within the retry bound.
var ErrTooManyTries = errors.New("too many tries sampling candidates")

// SampleCandidates draws n distinct candidates, one value per domain, and
// returns them sorted. Each round draws the missing number of rows; after
// maxTries rounds it gives up with ErrTooManyTries.
func SampleCandidates(rng *rand.Rand, domains [][]domain.Value, n, maxTries int) ([]domain.Candidate, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: candidate count must be positive, got %d", ErrBadRequest, n)
	}
	if len(domains) == 0 {
		return nil, fmt.Errorf("%w: no domains", ErrBadRequest)
	}
	for i, d := range domains {
		if len(d) == 0 {
			return nil, fmt.Errorf("%w: domain %d is empty", ErrBadRequest, i)
		}
	}

	seen := make(map[string]bool, n)
	out := make([]domain.Candidate, 0, n)
	for tries := 1; len(out) < n; tries++ {
		if tries > maxTries {
			return nil, fmt.Errorf("%w: %d distinct candidates after %d rounds, wanted %d", ErrTooManyTries, len(out), maxTries, n)
		}
		for k := n - len(out); k > 0; k-- {
			c := make(domain.Candidate, len(domains))
			for i, d := range domains {
				c[i] = d[rng.Intn(len(d))]
			}
			if key := c.Key(); !seen[key] {
				seen[key] = true
				out = append(out, c)
			}
		}
	}
	domain.SortCandidates(out)
	return out, nil
}
