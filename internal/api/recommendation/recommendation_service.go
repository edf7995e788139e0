package recommendation

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

	"github.com/pavlohrechko/go-dating-recommendations/internal/api/activity"
	"github.com/pavlohrechko/go-dating-recommendations/internal/api/profiles"
	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// Ensure implementation satisfies the interface
var _ Service = (*ServiceImpl)(nil)

// Service defines the business logic contract for recommendations.
type Service interface {
	// GetRecommendations returns up to limit candidate profiles for the
	// user, ranked by shared interests, excluding everyone the user has
	// already interacted with.
	GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) types.ResultOf[[]types.Profile]
}

// ServiceImpl sequences the recommendation pipeline: reference profile
// fetch, exclusion aggregation, candidate retrieval, scoring and ranking.
// Every step is strictly sequential, nothing is retried and nothing is
// cached; each call re-fetches from both collaborators.
type ServiceImpl struct {
	logger          *slog.Logger
	activityService activity.Service
	profileProvider profiles.Provider
}

func NewService(activityService activity.Service, profileProvider profiles.Provider, logger *slog.Logger) *ServiceImpl {
	return &ServiceImpl{
		logger:          logger,
		activityService: activityService,
		profileProvider: profileProvider,
	}
}

// GetRecommendations implements Service.
func (s *ServiceImpl) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) types.ResultOf[[]types.Profile] {
	ctx, span := otel.Tracer("RecommendationService").Start(ctx, "GetRecommendations", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
		attribute.Int("recommendation.limit", limit),
	))
	defer span.End()

	l := s.logger.With(slog.String("method", "GetRecommendations"), slog.String("userID", userID.String()))

	if userID == uuid.Nil {
		l.ErrorContext(ctx, "userID is empty")
		span.SetStatus(codes.Error, "userID is empty")
		return types.FailureOf[[]types.Profile](http.StatusBadRequest, "userID is empty")
	}

	profileResult := s.profileProvider.GetProfileByID(ctx, userID)
	if profileResult.StatusCode == http.StatusNotFound {
		l.ErrorContext(ctx, "Reference profile not found")
		span.SetStatus(codes.Error, "Reference profile not found")
		return types.FailureOf[[]types.Profile](http.StatusNotFound, fmt.Sprintf("User with %s is not found", userID))
	}
	if !profileResult.IsSuccess() {
		l.ErrorContext(ctx, "Failed to fetch reference profile", slog.Int("status", profileResult.StatusCode))
		span.SetStatus(codes.Error, "Failed to fetch reference profile")
		return types.FailureOf[[]types.Profile](http.StatusInternalServerError, "Error while getting profile")
	}
	reference := profileResult.Value

	exclusionsResult := s.activityService.GetExclusions(ctx, userID)
	if !exclusionsResult.IsSuccess() {
		// The aggregator already mapped its failures to the fixed 404/500
		// outcomes, so they pass through as-is.
		l.ErrorContext(ctx, "Failed to aggregate exclusions", slog.Int("status", exclusionsResult.StatusCode))
		span.SetStatus(codes.Error, "Failed to aggregate exclusions")
		return types.FailureFrom[[]types.Profile](exclusionsResult.Result)
	}

	candidatesResult := s.profileProvider.GetProfilesByFilter(ctx, exclusionsResult.Value, reference.Gender)
	if !candidatesResult.IsSuccess() {
		// Candidate retrieval failures propagate with the provider's exact
		// status code and message.
		l.ErrorContext(ctx, "Failed to fetch candidate profiles", slog.Int("status", candidatesResult.StatusCode))
		span.SetStatus(codes.Error, "Failed to fetch candidate profiles")
		return types.FailureFrom[[]types.Profile](candidatesResult.Result)
	}

	ranked := Rank(reference, candidatesResult.Value, limit)

	l.InfoContext(ctx, "Recommendations generated",
		slog.Int("candidates", len(candidatesResult.Value)),
		slog.Int("returned", len(ranked)),
	)
	span.SetStatus(codes.Ok, "Recommendations generated")
	return types.SuccessOf(ranked)
}
