package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// candidateScoring builds candidates whose score against the reference is
// controlled per candidate: n matching categories out of three used here.
func candidateScoring(name string, matches int) types.Profile {
	p := types.Profile{Name: name}
	if matches >= 1 {
		p.BookInterest = ptr(types.BookFantasy)
	}
	if matches >= 2 {
		p.MusicInterest = ptr(types.MusicJazz)
	}
	if matches >= 3 {
		p.FoodInterest = ptr(types.FoodItalian)
	}
	return p
}

func rankerReference() types.Profile {
	return types.Profile{
		BookInterest:  ptr(types.BookFantasy),
		MusicInterest: ptr(types.MusicJazz),
		FoodInterest:  ptr(types.FoodItalian),
	}
}

func TestRank(t *testing.T) {
	reference := rankerReference()

	t.Run("OrdersByDescendingScore", func(t *testing.T) {
		candidates := []types.Profile{
			candidateScoring("one", 1),
			candidateScoring("three", 3),
			candidateScoring("zero", 0),
			candidateScoring("two", 2),
		}

		ranked := Rank(reference, candidates, DefaultLimit)

		assert.Len(t, ranked, 4)
		assert.Equal(t, "three", ranked[0].Name)
		assert.Equal(t, "two", ranked[1].Name)
		assert.Equal(t, "one", ranked[2].Name)
		assert.Equal(t, "zero", ranked[3].Name)
	})

	t.Run("TiesKeepInputOrder", func(t *testing.T) {
		// Scores are [3, 1, 3, 2]; the two 3s must keep their relative order.
		candidates := []types.Profile{
			candidateScoring("firstThree", 3),
			candidateScoring("one", 1),
			candidateScoring("secondThree", 3),
			candidateScoring("two", 2),
		}

		ranked := Rank(reference, candidates, DefaultLimit)

		assert.Equal(t, "firstThree", ranked[0].Name)
		assert.Equal(t, "secondThree", ranked[1].Name)
		assert.Equal(t, "two", ranked[2].Name)
		assert.Equal(t, "one", ranked[3].Name)
	})

	t.Run("TruncatesToLimit", func(t *testing.T) {
		candidates := []types.Profile{
			candidateScoring("zero", 0),
			candidateScoring("three", 3),
			candidateScoring("one", 1),
			candidateScoring("two", 2),
		}

		ranked := Rank(reference, candidates, 2)

		assert.Len(t, ranked, 2)
		assert.Equal(t, "three", ranked[0].Name)
		assert.Equal(t, "two", ranked[1].Name)
	})

	t.Run("LimitBeyondCandidateCountReturnsAll", func(t *testing.T) {
		candidates := []types.Profile{
			candidateScoring("one", 1),
			candidateScoring("two", 2),
		}
		ranked := Rank(reference, candidates, 100)
		assert.Len(t, ranked, 2)
	})

	t.Run("ZeroLimitReturnsEmptyList", func(t *testing.T) {
		candidates := []types.Profile{candidateScoring("one", 1)}
		ranked := Rank(reference, candidates, 0)
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})

	t.Run("NoCandidatesReturnsEmptyList", func(t *testing.T) {
		ranked := Rank(reference, []types.Profile{}, DefaultLimit)
		assert.NotNil(t, ranked)
		assert.Empty(t, ranked)
	})

	t.Run("InputSliceNotMutated", func(t *testing.T) {
		candidates := []types.Profile{
			candidateScoring("zero", 0),
			candidateScoring("three", 3),
		}
		Rank(reference, candidates, DefaultLimit)
		assert.Equal(t, "zero", candidates[0].Name)
		assert.Equal(t, "three", candidates[1].Name)
	})
}
