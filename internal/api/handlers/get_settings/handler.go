package get_settings

import (
	"errors"
	"net/http"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	settingsService "github.com/m04kA/CPC-BookingService/internal/service/settings"
)

const (
	msgNotFound = "настройки расписания еще не созданы"
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

// Handle GET /api/v1/admin/settings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Get(r.Context())
	if err != nil {
		switch {
		case errors.Is(err, settingsService.ErrSettingsNotFound):
			h.logger.Warn("GET /admin/settings - Settings not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /admin/settings - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
