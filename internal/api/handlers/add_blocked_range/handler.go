package add_blocked_range

import (
	"errors"
	"net/http"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	settingsService "github.com/m04kA/CPC-BookingService/internal/service/settings"
	"github.com/m04kA/CPC-BookingService/internal/service/settings/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidRange       = "некорректный диапазон дат, ожидается YYYY-MM-DD"
	msgSettingsNotFound   = "настройки расписания еще не созданы"
)

type Handler struct {
	service SettingsService
	logger  Logger
}

func NewHandler(service SettingsService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/settings/blocked-ranges
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req models.AddBlockedRangeRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /admin/settings/blocked-ranges - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.AddBlockedRange(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrInvalidInput):
			h.logger.Warn("POST /admin/settings/blocked-ranges - Invalid range: %v", err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		case errors.Is(err, settingsService.ErrSettingsNotFound):
			h.logger.Warn("POST /admin/settings/blocked-ranges - Settings not found")
			handlers.RespondNotFound(w, msgSettingsNotFound)

		default:
			h.logger.Error("POST /admin/settings/blocked-ranges - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusCreated, result)
}
