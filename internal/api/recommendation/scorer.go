package recommendation

import (
	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// NumInterestCategories is the number of categorical interest attributes a
// profile can carry, and therefore the maximum match score.
const NumInterestCategories = 7

// interestExtractor normalizes one interest category to a comparable string.
// The second return value is false when the profile has no preference
// recorded for the category.
type interestExtractor func(p types.Profile) (string, bool)

// interestExtractors is the fixed compile-time table of the seven interest
// category accessors. The scorer iterates this table instead of discovering
// fields at runtime, so scoring has no dependency on attribute naming.
var interestExtractors = [NumInterestCategories]interestExtractor{
	func(p types.Profile) (string, bool) {
		if p.BookInterest == nil {
			return "", false
		}
		return string(*p.BookInterest), true
	},
	func(p types.Profile) (string, bool) {
		if p.SportInterest == nil {
			return "", false
		}
		return string(*p.SportInterest), true
	},
	func(p types.Profile) (string, bool) {
		if p.MovieInterest == nil {
			return "", false
		}
		return string(*p.MovieInterest), true
	},
	func(p types.Profile) (string, bool) {
		if p.MusicInterest == nil {
			return "", false
		}
		return string(*p.MusicInterest), true
	},
	func(p types.Profile) (string, bool) {
		if p.FoodInterest == nil {
			return "", false
		}
		return string(*p.FoodInterest), true
	},
	func(p types.Profile) (string, bool) {
		if p.LifestyleInterest == nil {
			return "", false
		}
		return string(*p.LifestyleInterest), true
	},
	func(p types.Profile) (string, bool) {
		if p.TravelInterest == nil {
			return "", false
		}
		return string(*p.TravelInterest), true
	},
}

// Score counts the interest categories on which both profiles have a
// recorded, equal preference. Absent values never match, so the result is
// always in [0, NumInterestCategories]. Pure and symmetric.
func Score(reference, candidate types.Profile) int {
	score := 0
	for _, extract := range interestExtractors {
		ref, refOK := extract(reference)
		cand, candOK := extract(candidate)
		if refOK && candOK && ref == cand {
			score++
		}
	}
	return score
}
