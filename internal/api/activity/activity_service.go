package activity

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for user activity operations.
type Service interface {
	// GetExclusions returns the union of the user's liked, disliked and
	// liked-by sets plus the user's own identifier. The returned slice is
	// deduplicated; order is unspecified.
	GetExclusions(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID]
	CreateUserActivity(ctx context.Context, userID uuid.UUID) types.Result
	RecordActivity(ctx context.Context, userID, targetID uuid.UUID, kind types.ActivityKind) types.Result
	AddLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result
	RemoveLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result
}

// ServiceImpl provides the implementation for Service.
type ServiceImpl struct {
	logger *slog.Logger
	repo   Repository
}

func NewService(repo Repository, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger: logger,
		repo:   repo,
	}
}

// GetExclusions aggregates the three exclusion sets for a user. The three
// store lookups are independent, so they are issued concurrently and only
// merged once all have finished. If any lookup reports not-found the merged
// outcome is 404 regardless of the others.
func (s *ServiceImpl) GetExclusions(ctx context.Context, userID uuid.UUID) types.ResultOf[[]uuid.UUID] {
	ctx, span := otel.Tracer("ActivityService").Start(ctx, "GetExclusions", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetExclusions"), slog.String("userID", userID.String()))

	if userID == uuid.Nil {
		l.WarnContext(ctx, "userID is empty")
		span.SetStatus(codes.Error, "userID is empty")
		return types.FailureOf[[]uuid.UUID](http.StatusBadRequest, "userID is empty")
	}

	var liked, disliked, likedBy types.ResultOf[[]uuid.UUID]

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		liked = s.repo.GetLikedUsers(gctx, userID)
		return nil
	})
	g.Go(func() error {
		disliked = s.repo.GetDislikedUsers(gctx, userID)
		return nil
	})
	g.Go(func() error {
		likedBy = s.repo.GetLikedByUsers(gctx, userID)
		return nil
	})
	// Lookups report failure through their Result, never through an error.
	_ = g.Wait()

	if liked.StatusCode == http.StatusNotFound || disliked.StatusCode == http.StatusNotFound || likedBy.StatusCode == http.StatusNotFound {
		l.WarnContext(ctx, "Activity record not found")
		span.SetStatus(codes.Error, "Activity record not found")
		return types.FailureOf[[]uuid.UUID](http.StatusNotFound, fmt.Sprintf("Activity with %s is not found", userID))
	}

	if !liked.IsSuccess() || !disliked.IsSuccess() || !likedBy.IsSuccess() {
		l.ErrorContext(ctx, "Failed to fetch user activities",
			slog.Int("likedStatus", liked.StatusCode),
			slog.Int("dislikedStatus", disliked.StatusCode),
			slog.Int("likedByStatus", likedBy.StatusCode),
		)
		span.SetStatus(codes.Error, "Failed to fetch user activities")
		return types.FailureOf[[]uuid.UUID](http.StatusInternalServerError, "Error while getting user activities")
	}

	total := len(liked.Value) + len(disliked.Value) + len(likedBy.Value) + 1
	seen := make(map[uuid.UUID]struct{}, total)
	exclusions := make([]uuid.UUID, 0, total)
	for _, set := range [][]uuid.UUID{liked.Value, disliked.Value, likedBy.Value, {userID}} {
		for _, id := range set {
			if _, ok := seen[id]; ok {
				continue
			}
			seen[id] = struct{}{}
			exclusions = append(exclusions, id)
		}
	}

	l.DebugContext(ctx, "Exclusion set aggregated", slog.Int("count", len(exclusions)))
	span.SetStatus(codes.Ok, "Exclusion set aggregated")
	return types.SuccessOf(exclusions)
}

// CreateUserActivity creates an empty activity record for a user.
func (s *ServiceImpl) CreateUserActivity(ctx context.Context, userID uuid.UUID) types.Result {
	ctx, span := otel.Tracer("ActivityService").Start(ctx, "CreateUserActivity", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	result := s.repo.CreateUserActivity(ctx, userID)
	if !result.IsSuccess() {
		span.SetStatus(codes.Error, result.ErrorMessage)
		return result
	}
	span.SetStatus(codes.Ok, "Activity record created")
	return result
}

// RecordActivity records a like or dislike swipe for a user.
func (s *ServiceImpl) RecordActivity(ctx context.Context, userID, targetID uuid.UUID, kind types.ActivityKind) types.Result {
	ctx, span := otel.Tracer("ActivityService").Start(ctx, "RecordActivity", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.String("activity.kind", string(kind)),
	))
	defer span.End()

	result := s.repo.RecordActivity(ctx, userID, targetID, kind)
	if !result.IsSuccess() {
		span.SetStatus(codes.Error, result.ErrorMessage)
		return result
	}
	span.SetStatus(codes.Ok, "Activity recorded")
	return result
}

// AddLikeFromUser registers an incoming like on the target user's record.
func (s *ServiceImpl) AddLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result {
	ctx, span := otel.Tracer("ActivityService").Start(ctx, "AddLikeFromUser", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	result := s.repo.AddLikeFromUser(ctx, userID, likerID)
	if !result.IsSuccess() {
		span.SetStatus(codes.Error, result.ErrorMessage)
		return result
	}
	span.SetStatus(codes.Ok, "Like added")
	return result
}

// RemoveLikeFromUser withdraws an incoming like from the target user's record.
func (s *ServiceImpl) RemoveLikeFromUser(ctx context.Context, userID, likerID uuid.UUID) types.Result {
	ctx, span := otel.Tracer("ActivityService").Start(ctx, "RemoveLikeFromUser", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	result := s.repo.RemoveLikeFromUser(ctx, userID, likerID)
	if !result.IsSuccess() {
		span.SetStatus(codes.Error, result.ErrorMessage)
		return result
	}
	span.SetStatus(codes.Ok, "Like removed")
	return result
}
