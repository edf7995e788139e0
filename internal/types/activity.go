package types

import "github.com/google/uuid"

// ActivityKind classifies a recorded swipe.
type ActivityKind string

const (
	ActivityLike    ActivityKind = "like"
	ActivityDislike ActivityKind = "dislike"
)

// Valid reports whether the kind is one of the two known swipe kinds.
func (k ActivityKind) Valid() bool {
	return k == ActivityLike || k == ActivityDislike
}

// UserActivity is the per-user activity record persisted by the activity
// store: the users this user liked, disliked, and the users who liked them.
// All three relations have set semantics; duplicates are never recorded.
type UserActivity struct {
	UserID        uuid.UUID   `json:"userID"`
	LikedUsers    []uuid.UUID `json:"likedUsers"`
	DislikedUsers []uuid.UUID `json:"dislikedUsers"`
	LikedByUsers  []uuid.UUID `json:"likedByUsers"`
}

// RecordSwipeRequest is the JSON body for recording a like or dislike.
type RecordSwipeRequest struct {
	TargetID uuid.UUID    `json:"targetID"`
	Kind     ActivityKind `json:"kind"`
}

// LikedByRequest is the JSON body for registering an incoming like.
type LikedByRequest struct {
	LikerID uuid.UUID `json:"likerID"`
}
