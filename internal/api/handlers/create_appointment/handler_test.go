package create_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	createAppointment "github.com/m04kA/CPC-BookingService/internal/usecase/create_appointment"
)

type fakeUseCase struct {
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, _ *createAppointment.Request) (*createAppointment.Response, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &createAppointment.Response{ID: 1, Status: "pending"}, nil
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

const validBody = `{
	"date": "2026-09-15",
	"startTime": "10:00",
	"clientName": "Fatima Zahra",
	"clientEmail": "fatima@example.com",
	"clientPhone": "+212600000000"
}`

func doRequest(t *testing.T, ucErr error) *httptest.ResponseRecorder {
	t.Helper()

	h := NewHandler(&fakeUseCase{err: ucErr}, nopLogger{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/appointments", strings.NewReader(validBody))
	rec := httptest.NewRecorder()
	h.Handle(rec, req)
	return rec
}

func TestHandler_StatusMapping(t *testing.T) {
	tests := []struct {
		name       string
		ucErr      error
		wantStatus int
	}{
		{name: "created", wantStatus: http.StatusCreated},
		// Конфликт слота - это 400: клиент перечитывает доступность и выбирает другой слот
		{name: "slot taken", ucErr: createAppointment.ErrSlotAlreadyBooked, wantStatus: http.StatusBadRequest},
		// Ненастроенная система - 404, требуется первичная инициализация
		{name: "settings missing", ucErr: createAppointment.ErrSettingsNotConfigured, wantStatus: http.StatusNotFound},
		{name: "staff status without token", ucErr: createAppointment.ErrStatusNotPermitted, wantStatus: http.StatusUnauthorized},
		{name: "validation failure", ucErr: createAppointment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "not a working day", ucErr: createAppointment.ErrNotAWorkingDay, wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(t, tt.ucErr)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
