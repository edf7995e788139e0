package recommendation

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	appMetrics "github.com/pavlohrechko/go-dating-recommendations/app/observability/metrics"
	"github.com/pavlohrechko/go-dating-recommendations/internal/types"
)

// MockRecommendationService is a mock implementation of the Service interface
type MockRecommendationService struct {
	mock.Mock
}

func (m *MockRecommendationService) GetRecommendations(ctx context.Context, userID uuid.UUID, limit int) types.ResultOf[[]types.Profile] {
	args := m.Called(ctx, userID, limit)
	return args.Get(0).(types.ResultOf[[]types.Profile])
}

func newTestHandler(service Service) *HandlerImpl {
	appMetrics.InitAppMetrics()
	return NewHandlerImpl(service, appMetrics.Get(), slog.Default())
}

func TestGetRecommendationsHandler(t *testing.T) {
	userID := uuid.New()

	t.Run("MissingUserIDReturns400", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations", nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "userID is empty")
		mockService.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("MalformedUserIDReturns400", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		req := httptest.NewRequest(http.MethodGet, "/api/v1/recommendations?userId=not-a-uuid", nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "userID is empty")
	})

	t.Run("NonIntegerCountReturns400", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		url := fmt.Sprintf("/api/v1/recommendations?userId=%s&countOfUsers=abc", userID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "countOfUsers must be an integer")
		mockService.AssertNotCalled(t, "GetRecommendations", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("NegativeCountReturns400", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		url := fmt.Sprintf("/api/v1/recommendations?userId=%s&countOfUsers=-5", userID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, rr.Body.String(), "countOfUsers must not be negative")
	})

	t.Run("DefaultsLimitWhenCountOmitted", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		mockService.On("GetRecommendations", mock.Anything, userID, DefaultLimit).
			Return(types.SuccessOf([]types.Profile{})).Once()

		url := fmt.Sprintf("/api/v1/recommendations?userId=%s", userID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)
		mockService.AssertExpectations(t)
	})

	t.Run("NotFoundMapsTo404WithMessage", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		message := fmt.Sprintf("User with %s is not found", userID)
		mockService.On("GetRecommendations", mock.Anything, userID, DefaultLimit).
			Return(types.FailureOf[[]types.Profile](http.StatusNotFound, message)).Once()

		url := fmt.Sprintf("/api/v1/recommendations?userId=%s", userID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusNotFound, rr.Code)
		assert.Contains(t, rr.Body.String(), message)
	})

	t.Run("CollaboratorFailureBecomesProblemDetails", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		mockService.On("GetRecommendations", mock.Anything, userID, DefaultLimit).
			Return(types.FailureOf[[]types.Profile](http.StatusServiceUnavailable, "Failed to retrieve profiles")).Once()

		url := fmt.Sprintf("/api/v1/recommendations?userId=%s", userID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusServiceUnavailable, rr.Code)
		assert.Equal(t, "application/problem+json", rr.Header().Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
		assert.Equal(t, "Failed to retrieve profiles", body["detail"])
	})

	t.Run("SuccessReturnsRankedProfiles", func(t *testing.T) {
		mockService := new(MockRecommendationService)
		handler := newTestHandler(mockService)

		ranked := []types.Profile{
			{ProfileID: uuid.New(), Name: "best"},
			{ProfileID: uuid.New(), Name: "second"},
		}
		mockService.On("GetRecommendations", mock.Anything, userID, 2).
			Return(types.SuccessOf(ranked)).Once()

		url := fmt.Sprintf("/api/v1/recommendations?userId=%s&countOfUsers=2", userID)
		req := httptest.NewRequest(http.MethodGet, url, nil)
		rr := httptest.NewRecorder()

		handler.GetRecommendations(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		var got []types.Profile
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &got))
		require.Len(t, got, 2)
		assert.Equal(t, "best", got[0].Name)
		assert.Equal(t, "second", got[1].Name)
	})
}
