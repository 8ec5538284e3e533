package get_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	getAvailability "github.com/m04kA/CPC-BookingService/internal/usecase/get_availability"
)

type fakeUseCase struct {
	resp *getAvailability.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *getAvailability.Request) (*getAvailability.Response, error) {
	return f.resp, f.err
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func TestHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		target     string
		uc         *fakeUseCase
		wantStatus int
	}{
		{
			name:       "ok",
			target:     "/api/v1/availability?date=2026-09-15",
			uc:         &fakeUseCase{resp: &getAvailability.Response{Slots: []getAvailability.Slot{}}},
			wantStatus: http.StatusOK,
		},
		{
			name:       "missing date",
			target:     "/api/v1/availability",
			uc:         &fakeUseCase{},
			wantStatus: http.StatusBadRequest,
		},
		{
			// Ненастроенная система - 404, требуется первичная инициализация
			name:       "settings missing",
			target:     "/api/v1/availability?date=2026-09-15",
			uc:         &fakeUseCase{err: getAvailability.ErrSettingsNotConfigured},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "date in past",
			target:     "/api/v1/availability?date=2026-09-15",
			uc:         &fakeUseCase{err: getAvailability.ErrInvalidDate},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.uc, nopLogger{})

			req := httptest.NewRequest(http.MethodGet, tt.target, nil)
			rec := httptest.NewRecorder()
			h.Handle(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
