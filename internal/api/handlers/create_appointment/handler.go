package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	"github.com/m04kA/CPC-BookingService/internal/api/middleware"
	createAppointment "github.com/m04kA/CPC-BookingService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDateOrTime  = "некорректная дата или время, ожидается YYYY-MM-DD и HH:MM"
	msgSlotAlreadyBooked  = "выбранный слот уже занят"
	msgNotAWorkingDay     = "выбранный день нерабочий"
	msgDateBlocked        = "прием на выбранную дату не ведется"
	msgOutsideHours       = "сеанс выходит за рамки рабочих часов"
	msgInvalidTimeSlot    = "время начала не попадает в сетку слотов"
	msgDateInPast         = "дата уже прошла"
	msgDateTooFar         = "дата слишком далеко в будущем"
	msgSettingsNotReady   = "расписание приема еще не настроено"
	msgStatusNotPermitted = "указанный статус доступен только администратору"
	msgInvalidInput       = "некорректные данные запроса"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(middleware.IsAdmin(r.Context()))
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotAlreadyBooked):
			h.logger.Warn("POST /appointments - Slot taken: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotAlreadyBooked)

		case errors.Is(err, createAppointment.ErrNotAWorkingDay):
			h.logger.Warn("POST /appointments - Not a working day: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgNotAWorkingDay)

		case errors.Is(err, createAppointment.ErrDateBlocked):
			h.logger.Warn("POST /appointments - Date blocked: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateBlocked)

		case errors.Is(err, createAppointment.ErrOutsideWorkingHours):
			h.logger.Warn("POST /appointments - Outside working hours: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgOutsideHours)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Off-grid start time: date=%s, time=%s", req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createAppointment.ErrDateTooFarInFuture):
			h.logger.Warn("POST /appointments - Date too far: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, createAppointment.ErrStatusNotPermitted):
			h.logger.Warn("POST /appointments - Status %q requires admin token", req.Status)
			handlers.RespondUnauthorized(w, msgStatusNotPermitted)

		case errors.Is(err, createAppointment.ErrSettingsNotConfigured):
			h.logger.Warn("POST /appointments - Settings not configured")
			handlers.RespondNotFound(w, msgSettingsNotReady)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: date=%s, time=%s, error=%v",
				req.Date, req.StartTime, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
