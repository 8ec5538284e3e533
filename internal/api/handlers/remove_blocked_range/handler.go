package remove_blocked_range

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	settingsService "github.com/m04kA/CPC-BookingService/internal/service/settings"
)

const (
	msgInvalidID        = "некорректный ID диапазона"
	msgRangeNotFound    = "диапазон блокировки не найден"
	msgSettingsNotFound = "настройки расписания еще не созданы"
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

// Handle DELETE /api/v1/admin/settings/blocked-ranges/{id}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if id == "" {
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	if err := h.service.RemoveBlockedRange(r.Context(), id); err != nil {
		switch {
		case errors.Is(err, settingsService.ErrBlockedRangeNotFound):
			h.logger.Warn("DELETE /admin/settings/blocked-ranges/%s - Not found", id)
			handlers.RespondNotFound(w, msgRangeNotFound)

		case errors.Is(err, settingsService.ErrSettingsNotFound):
			h.logger.Warn("DELETE /admin/settings/blocked-ranges/%s - Settings not found", id)
			handlers.RespondNotFound(w, msgSettingsNotFound)

		default:
			h.logger.Error("DELETE /admin/settings/blocked-ranges/%s - Failed: %v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
