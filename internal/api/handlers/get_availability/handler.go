package get_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	"github.com/m04kA/CPC-BookingService/internal/api/middleware"
	"github.com/m04kA/CPC-BookingService/internal/domain"
	getAvailability "github.com/m04kA/CPC-BookingService/internal/usecase/get_availability"
)

const (
	msgMissingDate         = "параметр date обязателен"
	msgInvalidDate         = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDuration     = "некорректная длительность сеанса"
	msgDateInPast          = "дата уже прошла"
	msgDateTooFar          = "дата слишком далеко в будущем"
	msgSettingsNotReady    = "расписание приема еще не настроено"
	msgInvalidRequestInput = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/availability?date=YYYY-MM-DD&duration=120&isFirstTime=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	dateStr := query.Get("date")
	if dateStr == "" {
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	date, err := time.ParseInLocation(domain.DateFormat, dateStr, domain.BusinessLocation())
	if err != nil {
		h.logger.Warn("GET /availability - Invalid date %q: %v", dateStr, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	req := &getAvailability.Request{
		Date:        date,
		IsFirstTime: query.Get("isFirstTime") == "true",
		IsAdmin:     middleware.IsAdmin(r.Context()),
	}

	if durationStr := query.Get("duration"); durationStr != "" {
		duration, err := strconv.Atoi(durationStr)
		if err != nil {
			h.logger.Warn("GET /availability - Invalid duration %q", durationStr)
			handlers.RespondBadRequest(w, msgInvalidDuration)
			return
		}
		req.DurationMinutes = &duration
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailability.ErrInvalidDate):
			h.logger.Warn("GET /availability - Date in past: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailability.ErrDateTooFarInFuture):
			h.logger.Warn("GET /availability - Date too far: date=%s", dateStr)
			handlers.RespondBadRequest(w, msgDateTooFar)

		case errors.Is(err, getAvailability.ErrSettingsNotConfigured):
			h.logger.Warn("GET /availability - Settings not configured")
			handlers.RespondNotFound(w, msgSettingsNotReady)

		case errors.Is(err, getAvailability.ErrInvalidInput):
			h.logger.Warn("GET /availability - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRequestInput)

		default:
			h.logger.Error("GET /availability - Failed to get slots: date=%s, error=%v", dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
