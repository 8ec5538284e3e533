package get_appointments

import (
	"errors"
	"net/http"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	"github.com/m04kA/CPC-BookingService/internal/domain"
	appointmentsService "github.com/m04kA/CPC-BookingService/internal/service/appointments"
	"github.com/m04kA/CPC-BookingService/internal/service/appointments/models"
)

const (
	msgInvalidStartDate = "некорректный формат startDate, ожидается YYYY-MM-DD"
	msgInvalidEndDate   = "некорректный формат endDate, ожидается YYYY-MM-DD"
	msgInvalidRange     = "endDate не может быть раньше startDate"
	msgInvalidStatus    = "некорректный статус записи"
)

type Handler struct {
	service AppointmentsService
	logger  Logger
}

func NewHandler(service AppointmentsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/admin/appointments?startDate=YYYY-MM-DD&endDate=YYYY-MM-DD&status=pending
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.GetAppointmentsRequest{}

	if startStr := query.Get("startDate"); startStr != "" {
		start, err := time.ParseInLocation(domain.DateFormat, startStr, domain.BusinessLocation())
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid startDate %q", startStr)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		req.StartDate = &start
	}

	if endStr := query.Get("endDate"); endStr != "" {
		end, err := time.ParseInLocation(domain.DateFormat, endStr, domain.BusinessLocation())
		if err != nil {
			h.logger.Warn("GET /admin/appointments - Invalid endDate %q", endStr)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		req.EndDate = &end
	}

	if statusStr := query.Get("status"); statusStr != "" {
		req.Status = &statusStr
	}

	result, err := h.service.GetByRange(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointmentsService.ErrInvalidTimeRange):
			h.logger.Warn("GET /admin/appointments - Invalid range")
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, appointmentsService.ErrInvalidInput):
			h.logger.Warn("GET /admin/appointments - Invalid status filter")
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /admin/appointments - Failed to get appointments: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
