package paymentevents

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type InvalidatorMock struct {
	mock.Mock
}

func (m *InvalidatorMock) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

const userID = "3f2b6a9e-1c3d-4b5e-8f70-9a1b2c3d4e5f"

func TestService_Handle(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name      string
		body      string
		setupMock func(*InvalidatorMock)
		wantErr   bool
	}{
		{
			name: "успешная инвалидация",
			body: `{"user_id":"` + userID + `","event":"payment.succeeded"}`,
			setupMock: func(m *InvalidatorMock) {
				m.On("Invalidate", mock.Anything, userID).Return(nil).Once()
			},
		},
		{
			name:      "битый json отбрасывается",
			body:      `{"user_id":`,
			setupMock: func(_ *InvalidatorMock) {},
		},
		{
			name:      "не uuid отбрасывается",
			body:      `{"user_id":"42","event":"payment.succeeded"}`,
			setupMock: func(_ *InvalidatorMock) {},
		},
		{
			name:      "пустой user_id отбрасывается",
			body:      `{"event":"payment.succeeded"}`,
			setupMock: func(_ *InvalidatorMock) {},
		},
		{
			name: "ошибка кеша возвращается",
			body: `{"user_id":"` + userID + `"}`,
			setupMock: func(m *InvalidatorMock) {
				m.On("Invalidate", mock.Anything, userID).Return(errors.New("redis down")).Once()
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := new(InvalidatorMock)
			tt.setupMock(inv)

			err := New(inv, logger).Handle(context.Background(), []byte(tt.body))
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "paymentevents.Handle")
			} else {
				require.NoError(t, err)
			}
			inv.AssertExpectations(t)
		})
	}
}
