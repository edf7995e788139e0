package recommendation

import (
	"sort"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// DefaultLimit is the number of recommendations returned when the caller
// does not ask for a specific count.
const DefaultLimit = 30

// scoredCandidate pairs a candidate with its match score for the duration
// of one ranking pass.
type scoredCandidate struct {
	profile types.Profile
	score   int
}

// Rank scores every candidate against the reference profile, orders them by
// descending score and truncates to limit. The sort is stable: candidates
// with equal scores keep the relative order the provider returned them in.
// A limit of zero or less yields an empty list; a limit beyond the candidate
// count yields all candidates.
func Rank(reference types.Profile, candidates []types.Profile, limit int) []types.Profile {
	if limit <= 0 {
		return []types.Profile{}
	}

	scored := make([]scoredCandidate, len(candidates))
	for i, candidate := range candidates {
		scored[i] = scoredCandidate{profile: candidate, score: Score(reference, candidate)}
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	if limit > len(scored) {
		limit = len(scored)
	}

	ranked := make([]types.Profile, limit)
	for i := range ranked {
		ranked[i] = scored[i].profile
	}
	return ranked
}
