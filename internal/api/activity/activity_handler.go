package activity

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/pavlohrechko/go-dating-recommendations/internal/api"
	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// HandlerImpl handles HTTP requests for the activity store boundary.
type HandlerImpl struct {
	activityService Service
	logger          *slog.Logger
}

func NewHandlerImpl(activityService Service, logger *slog.Logger) *HandlerImpl {
	return &HandlerImpl{
		activityService: activityService,
		logger:          logger,
	}
}

// CreateActivityRecord godoc
// @Summary      Create Activity Record
// @Description  Creates an empty activity record for a user.
// @Tags         Activity
// @Produce      json
// @Param        userID path string true "User ID"
// @Success      201 {object} types.Result "Record Created"
// @Failure      400 {object} types.Result "Invalid User ID"
// @Failure      409 {object} types.Result "Record Already Exists"
// @Router       /activities/{userID} [post]
func (h *HandlerImpl) CreateActivityRecord(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityHandler").Start(r.Context(), "CreateActivityRecord", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/activities/{userID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "CreateActivityRecord"))

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid user ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid user ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	result := h.activityService.CreateUserActivity(ctx, userID)
	if !result.IsSuccess() {
		l.ErrorContext(ctx, "Failed to create activity record", slog.Int("status", result.StatusCode), slog.String("message", result.ErrorMessage))
		span.SetStatus(codes.Error, result.ErrorMessage)
		writeFailure(w, r, result)
		return
	}

	span.SetStatus(codes.Ok, "Activity record created")
	api.WriteJSONResponse(w, r, http.StatusCreated, result)
}

// RecordSwipe godoc
// @Summary      Record Swipe
// @Description  Records a like or dislike from a user towards a target user.
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        userID path string true "User ID"
// @Param        swipe body types.RecordSwipeRequest true "Swipe to record"
// @Success      200 {object} types.Result "Swipe Recorded"
// @Failure      400 {object} types.Result "Invalid Input"
// @Failure      404 {object} types.Result "Record Not Found"
// @Router       /activities/{userID}/swipes [post]
func (h *HandlerImpl) RecordSwipe(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityHandler").Start(r.Context(), "RecordSwipe", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/activities/{userID}/swipes"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RecordSwipe"))

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid user ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid user ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req types.RecordSwipeRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := h.activityService.RecordActivity(ctx, userID, req.TargetID, req.Kind)
	if !result.IsSuccess() {
		l.ErrorContext(ctx, "Failed to record swipe", slog.Int("status", result.StatusCode), slog.String("message", result.ErrorMessage))
		span.SetStatus(codes.Error, result.ErrorMessage)
		writeFailure(w, r, result)
		return
	}

	span.SetStatus(codes.Ok, "Swipe recorded")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// AddLikeFrom godoc
// @Summary      Add Incoming Like
// @Description  Registers that another user liked this user.
// @Tags         Activity
// @Accept       json
// @Produce      json
// @Param        userID path string true "User ID"
// @Param        like body types.LikedByRequest true "Liker"
// @Success      200 {object} types.Result "Like Added"
// @Failure      400 {object} types.Result "Invalid Input"
// @Failure      404 {object} types.Result "Record Not Found"
// @Failure      409 {object} types.Result "Like Already Present"
// @Router       /activities/{userID}/liked-by [post]
func (h *HandlerImpl) AddLikeFrom(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityHandler").Start(r.Context(), "AddLikeFrom", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/activities/{userID}/liked-by"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "AddLikeFrom"))

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid user ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid user ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	var req types.LikedByRequest
	if err := api.DecodeJSONBody(w, r, &req); err != nil {
		l.WarnContext(ctx, "Invalid request body", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid request body")
		api.ErrorResponse(w, r, http.StatusBadRequest, err.Error())
		return
	}

	result := h.activityService.AddLikeFromUser(ctx, userID, req.LikerID)
	if !result.IsSuccess() {
		l.ErrorContext(ctx, "Failed to add like", slog.Int("status", result.StatusCode), slog.String("message", result.ErrorMessage))
		span.SetStatus(codes.Error, result.ErrorMessage)
		writeFailure(w, r, result)
		return
	}

	span.SetStatus(codes.Ok, "Like added")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// RemoveLikeFrom godoc
// @Summary      Remove Incoming Like
// @Description  Withdraws a previously registered like from another user.
// @Tags         Activity
// @Produce      json
// @Param        userID path string true "User ID"
// @Param        likerID path string true "Liker ID"
// @Success      200 {object} types.Result "Like Removed"
// @Failure      400 {object} types.Result "Invalid Input"
// @Failure      404 {object} types.Result "Record Not Found"
// @Failure      409 {object} types.Result "Like Not Present"
// @Router       /activities/{userID}/liked-by/{likerID} [delete]
func (h *HandlerImpl) RemoveLikeFrom(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.Tracer("ActivityHandler").Start(r.Context(), "RemoveLikeFrom", trace.WithAttributes(
		semconv.HTTPRequestMethodKey.String(r.Method),
		semconv.HTTPRouteKey.String("/activities/{userID}/liked-by/{likerID}"),
	))
	defer span.End()

	l := h.logger.With(slog.String("handler", "RemoveLikeFrom"))

	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid user ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid user ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid user ID format")
		return
	}

	likerID, err := uuid.Parse(chi.URLParam(r, "likerID"))
	if err != nil {
		l.WarnContext(ctx, "Invalid liker ID format", slog.Any("error", err))
		span.SetStatus(codes.Error, "Invalid liker ID format")
		api.ErrorResponse(w, r, http.StatusBadRequest, "Invalid liker ID format")
		return
	}

	result := h.activityService.RemoveLikeFromUser(ctx, userID, likerID)
	if !result.IsSuccess() {
		l.ErrorContext(ctx, "Failed to remove like", slog.Int("status", result.StatusCode), slog.String("message", result.ErrorMessage))
		span.SetStatus(codes.Error, result.ErrorMessage)
		writeFailure(w, r, result)
		return
	}

	span.SetStatus(codes.Ok, "Like removed")
	api.WriteJSONResponse(w, r, http.StatusOK, result)
}

// writeFailure maps a failed Result onto the HTTP response: the well-known
// 4xx outcomes keep their code and message, anything else becomes a
// problem-details body.
func writeFailure(w http.ResponseWriter, r *http.Request, result types.Result) {
	switch result.StatusCode {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict:
		api.ErrorResponse(w, r, result.StatusCode, result.ErrorMessage)
	default:
		api.ProblemResponse(w, r, result)
	}
}
