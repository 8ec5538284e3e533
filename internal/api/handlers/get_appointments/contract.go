package get_appointments

import (
	"context"

	"github.com/m04kA/CPC-BookingService/internal/service/appointments/models"
)

type AppointmentsService interface {
	GetByRange(ctx context.Context, req *models.GetAppointmentsRequest) (*models.AppointmentListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
