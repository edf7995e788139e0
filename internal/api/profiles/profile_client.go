package profiles

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// Ensure implementation satisfies the interface
var _ Provider = (*HTTPProfileProvider)(nil)

// Provider is the contract of the external profile provider. Failures of
// the provider are returned with their original status code and message so
// callers can forward them unchanged.
type Provider interface {
	// GetProfileByID fetches a single profile. 400 on empty id, 404 when
	// the provider has no profile for the id.
	GetProfileByID(ctx context.Context, userID uuid.UUID) types.ResultOf[types.Profile]
	// GetProfilesByFilter lists all profiles whose IDs are not in
	// excludedIDs, optionally narrowed by gender. 400 when excludedIDs is
	// empty. The returned list may be empty.
	GetProfilesByFilter(ctx context.Context, excludedIDs []uuid.UUID, gender types.Gender) types.ResultOf[[]types.Profile]
}

// filterRequest is the JSON body sent to the provider's filter endpoint.
type filterRequest struct {
	ExcludedIDs []uuid.UUID  `json:"excludedIDs"`
	Gender      types.Gender `json:"gender,omitempty"`
}

// HTTPProfileProvider talks to the profile service over HTTP. The client
// owns its own timeout; a timed-out or otherwise failed request surfaces as
// a 500-class Result.
type HTTPProfileProvider struct {
	logger  *slog.Logger
	client  *http.Client
	baseURL string
}

func NewHTTPProfileProvider(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPProfileProvider {
	return &HTTPProfileProvider{
		logger:  logger,
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// GetProfileByID implements Provider.
func (p *HTTPProfileProvider) GetProfileByID(ctx context.Context, userID uuid.UUID) types.ResultOf[types.Profile] {
	ctx, span := otel.Tracer("ProfileProvider").Start(ctx, "GetProfileByID", trace.WithAttributes(
		attribute.String("user.id", userID.String()),
	))
	defer span.End()

	l := p.logger.With(slog.String("method", "GetProfileByID"), slog.String("userID", userID.String()))

	if userID == uuid.Nil {
		l.WarnContext(ctx, "userID is empty")
		span.SetStatus(codes.Error, "userID is empty")
		return types.FailureOf[types.Profile](http.StatusBadRequest, "userID is empty")
	}

	url := fmt.Sprintf("%s/getProfileByID/%s", p.baseURL, userID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		l.ErrorContext(ctx, "Failed to build profile request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build profile request")
		return types.FailureOf[types.Profile](http.StatusInternalServerError, "Failed to retrieve profile")
	}

	resp, err := p.client.Do(req)
	if err != nil {
		l.ErrorContext(ctx, "Profile request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Profile request failed")
		return types.FailureOf[types.Profile](http.StatusInternalServerError, "Failed to retrieve profile")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		l.ErrorContext(ctx, "Provider returned non-success status", slog.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, "Provider returned non-success status")
		return types.FailureOf[types.Profile](resp.StatusCode, "Failed to retrieve profile")
	}

	var profile types.Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		l.ErrorContext(ctx, "Failed to decode profile response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode profile response")
		return types.FailureOf[types.Profile](http.StatusInternalServerError, "Failed to retrieve profile")
	}

	l.DebugContext(ctx, "Profile retrieved")
	span.SetStatus(codes.Ok, "Profile retrieved")
	return types.SuccessOf(profile)
}

// GetProfilesByFilter implements Provider.
func (p *HTTPProfileProvider) GetProfilesByFilter(ctx context.Context, excludedIDs []uuid.UUID, gender types.Gender) types.ResultOf[[]types.Profile] {
	ctx, span := otel.Tracer("ProfileProvider").Start(ctx, "GetProfilesByFilter", trace.WithAttributes(
		attribute.Int("filter.excluded_count", len(excludedIDs)),
		attribute.String("filter.gender", string(gender)),
	))
	defer span.End()

	l := p.logger.With(slog.String("method", "GetProfilesByFilter"))

	if len(excludedIDs) == 0 {
		l.WarnContext(ctx, "excludedIDs is empty")
		span.SetStatus(codes.Error, "excludedIDs is empty")
		return types.FailureOf[[]types.Profile](http.StatusBadRequest, "excludedIDs can not be empty")
	}

	body, err := json.Marshal(filterRequest{ExcludedIDs: excludedIDs, Gender: gender})
	if err != nil {
		l.ErrorContext(ctx, "Failed to marshal filter request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal filter request")
		return types.FailureOf[[]types.Profile](http.StatusInternalServerError, "Failed to retrieve profiles")
	}

	url := fmt.Sprintf("%s/getProfilesByFilter", p.baseURL)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		l.ErrorContext(ctx, "Failed to build filter request", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to build filter request")
		return types.FailureOf[[]types.Profile](http.StatusInternalServerError, "Failed to retrieve profiles")
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		l.ErrorContext(ctx, "Filter request failed", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Filter request failed")
		return types.FailureOf[[]types.Profile](http.StatusInternalServerError, "Failed to retrieve profiles")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		l.ErrorContext(ctx, "Provider returned non-success status", slog.Int("status", resp.StatusCode))
		span.SetStatus(codes.Error, "Provider returned non-success status")
		return types.FailureOf[[]types.Profile](resp.StatusCode, "Failed to retrieve profiles")
	}

	var result []types.Profile
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		l.ErrorContext(ctx, "Failed to decode filter response", slog.Any("error", err))
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to decode filter response")
		return types.FailureOf[[]types.Profile](http.StatusInternalServerError, "Failed to retrieve profiles")
	}

	l.DebugContext(ctx, "Profiles retrieved", slog.Int("count", len(result)))
	span.SetStatus(codes.Ok, "Profiles retrieved")
	return types.SuccessOf(result)
}
