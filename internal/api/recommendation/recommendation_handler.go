package recommendation

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	appMetrics "github.com/pavlohrechko/go-dating-recommendations/app/observability/metrics"
	"github.com/pavlohrechko/go-dating-recommendations/internal/api"
)

// HandlerImpl handles HTTP requests for recommendations.
type HandlerImpl struct {
	recommendationService Service
	metrics               *appMetrics.AppMetrics
	logger                *slog.Logger
}

func NewHandlerImpl(recommendationService Service, m *appMetrics.AppMetrics, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		recommendationService: recommendationService,
		metrics:               m,
		logger:                logger,
	}
}

// GetRecommendations godoc
// @Summary      Get Recommendations
// @Description  Returns candidate profiles ranked by shared interests, excluding previously-interacted users.
// @Tags         Recommendation
// @Produce      json
// @Param        userId query string true "User ID"
// @Param        countOfUsers query int false "Maximum number of profiles to return" default(30)
// @Success      200 {array} types.Profile "Ranked Profiles"
// @Failure      400 {object} types.Result "Invalid Input"
// @Failure      404 {object} types.Result "User or Activity Record Not Found"
// @Failure      500 {object} types.Result "Collaborator Failure"
// @Router       /recommendations [get]
func (h *HandlerImpl) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("RecommendationHandler").Start(r.Context(), "GetRecommendations", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/recommendations"),
	))
	defer span.End()

	start := time.Now()
	l := h.logger.With(slog.String("handler", "GetRecommendations"))

	userIDStr := r.URL.Query().Get("userId")
	if userIDStr == "" {
		l.ErrorContext(ctx, "userId query parameter is missing")
		span.SetStatus(codes.Error, "userId query parameter is missing")
		api.ErrorResponse(w, r, http.StatusBadRequest, "userID is empty")
		return
	}

	userID, err := uuid.Parse(userIDStr)
	if err != nil || userID == uuid.Nil {
		l.ErrorContext(ctx, "Invalid userId query parameter", slog.String("userId", userIDStr))
		span.SetStatus(codes.Error, "Invalid userId query parameter")
		api.ErrorResponse(w, r, http.StatusBadRequest, "userID is empty")
		return
	}

	limit := DefaultLimit
	if countStr := r.URL.Query().Get("countOfUsers"); countStr != "" {
		limit, err = strconv.Atoi(countStr)
		if err != nil {
			l.WarnContext(ctx, "Invalid countOfUsers query parameter", slog.String("countOfUsers", countStr))
			span.SetStatus(codes.Error, "Invalid countOfUsers query parameter")
			api.ErrorResponse(w, r, http.StatusBadRequest, "countOfUsers must be an integer")
			return
		}
		if limit < 0 {
			l.WarnContext(ctx, "Negative countOfUsers query parameter", slog.Int("countOfUsers", limit))
			span.SetStatus(codes.Error, "Negative countOfUsers query parameter")
			api.ErrorResponse(w, r, http.StatusBadRequest, "countOfUsers must not be negative")
			return
		}
	}

	result := h.recommendationService.GetRecommendations(ctx, userID, limit)

	h.metrics.RecommendationRequestsTotal.Add(ctx, 1)
	h.metrics.RecommendationDurationSeconds.Record(ctx, time.Since(start).Seconds())

	if result.StatusCode == http.StatusNotFound {
		l.ErrorContext(ctx, "Recommendation target not found", slog.String("message", result.ErrorMessage))
		span.SetStatus(codes.Error, result.ErrorMessage)
		api.ErrorResponse(w, r, http.StatusNotFound, result.ErrorMessage)
		return
	}

	if !result.IsSuccess() {
		l.ErrorContext(ctx, "Recommendation request failed", slog.Int("status", result.StatusCode), slog.String("message", result.ErrorMessage))
		span.SetStatus(codes.Error, result.ErrorMessage)
		if result.StatusCode == http.StatusBadRequest {
			api.ErrorResponse(w, r, http.StatusBadRequest, result.ErrorMessage)
			return
		}
		api.ProblemResponse(w, r, result.Result)
		return
	}

	span.SetStatus(codes.Ok, "Recommendations returned")
	api.WriteJSONResponse(w, r, http.StatusOK, result.Value)
}
