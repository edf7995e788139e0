package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

func ptr[T any](v T) *T { return &v }

// fullProfile returns a profile with all seven interest categories set.
func fullProfile() types.Profile {
	return types.Profile{
		Name:              "Full",
		Gender:            types.GenderFemale,
		BookInterest:      ptr(types.BookFantasy),
		SportInterest:     ptr(types.SportYoga),
		MovieInterest:     ptr(types.MovieDrama),
		MusicInterest:     ptr(types.MusicJazz),
		FoodInterest:      ptr(types.FoodItalian),
		LifestyleInterest: ptr(types.LifestyleNightOwl),
		TravelInterest:    ptr(types.TravelCityBreaks),
	}
}

func TestScore(t *testing.T) {
	t.Run("IdenticalProfilesScoreMax", func(t *testing.T) {
		p := fullProfile()
		assert.Equal(t, NumInterestCategories, Score(p, p))
	})

	t.Run("EmptyProfilesScoreZero", func(t *testing.T) {
		assert.Equal(t, 0, Score(types.Profile{}, types.Profile{}))
	})

	t.Run("AbsentValuesNeverMatch", func(t *testing.T) {
		// Both sides nil on every category must not count as agreement.
		empty := types.Profile{}
		full := fullProfile()
		assert.Equal(t, 0, Score(empty, full))
		assert.Equal(t, 0, Score(full, empty))
	})

	t.Run("CountsOnlySharedCategories", func(t *testing.T) {
		reference := fullProfile()
		candidate := types.Profile{
			BookInterest:  ptr(types.BookFantasy),   // match
			SportInterest: ptr(types.SportRunning),  // differs
			MusicInterest: ptr(types.MusicJazz),     // match
			FoodInterest:  ptr(types.FoodBarbecue),  // differs
			// remaining categories absent
		}
		assert.Equal(t, 2, Score(reference, candidate))
	})

	t.Run("Symmetric", func(t *testing.T) {
		a := fullProfile()
		b := types.Profile{
			BookInterest:   ptr(types.BookFantasy),
			MovieInterest:  ptr(types.MovieHorror),
			TravelInterest: ptr(types.TravelCityBreaks),
		}
		assert.Equal(t, Score(a, b), Score(b, a))
	})

	t.Run("BoundedByCategoryCount", func(t *testing.T) {
		a := fullProfile()
		b := fullProfile()
		score := Score(a, b)
		assert.GreaterOrEqual(t, score, 0)
		assert.LessOrEqual(t, score, NumInterestCategories)
	})

	t.Run("SameEnumWordInDifferentCategoriesDoesNotCrossMatch", func(t *testing.T) {
		// "Romance" exists as both a book and a movie value; a book
		// preference must never match a movie preference.
		a := types.Profile{BookInterest: ptr(types.BookRomance)}
		b := types.Profile{MovieInterest: ptr(types.MovieRomance)}
		assert.Equal(t, 0, Score(a, b))
	})
}
