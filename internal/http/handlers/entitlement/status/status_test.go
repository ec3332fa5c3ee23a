package status

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/magabrotheeeer/readiness-entitlements/internal/http/middlewarectx"
	"github.com/magabrotheeeer/readiness-entitlements/internal/models"
)

type MockService struct {
	mock.Mock
}

func (m *MockService) Status(ctx context.Context, userID string) (models.SubscriptionStatus, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(models.SubscriptionStatus), args.Error(1)
}

func TestStatusHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tier := "Pro"

	tests := []struct {
		name           string
		userID         string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name:   "успешное получение статуса",
			userID: "u-1",
			setupMock: func(m *MockService) {
				m.On("Status", mock.Anything, "u-1").Return(models.SubscriptionStatus{
					IsVerified:            true,
					HasActiveSubscription: true,
					Tier:                  "paid-monthly",
					SubscriptionStatus:    "active",
					SubscriptionTier:      &tier,
				}, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody: `{"isVerified":true,"hasActiveSubscription":true,"tier":"paid-monthly",` +
				`"subscriptionStatus":"active","subscriptionTier":"Pro","trialEndsAt":null}`,
		},
		{
			name:           "нет пользователя в контексте",
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusUnauthorized,
			expectedBody:   `{"status":"Error","error":"unauthorized"}`,
		},
		{
			name:   "отменённый контекст",
			userID: "u-2",
			setupMock: func(m *MockService) {
				m.On("Status", mock.Anything, "u-2").Return(models.SubscriptionStatus{}, context.Canceled)
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not resolve subscription status"}`,
		},
		{
			name:   "ошибка сервиса",
			userID: "u-3",
			setupMock: func(m *MockService) {
				m.On("Status", mock.Anything, "u-3").Return(models.SubscriptionStatus{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedBody:   `{"status":"Error","error":"could not resolve subscription status"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockService)
			tt.setupMock(svc)

			req := httptest.NewRequest(http.MethodGet, "/api/v1/subscription/status", nil)
			if tt.userID != "" {
				req = req.WithContext(context.WithValue(req.Context(), middlewarectx.UserID, tt.userID))
			}
			rec := httptest.NewRecorder()

			New(logger, svc).ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedStatus, rec.Code)
			assert.JSONEq(t, tt.expectedBody, rec.Body.String())
			svc.AssertExpectations(t)
		})
	}
}
