package generate_fictitious

import (
	"errors"
	"io"
	"net/http"

	"github.com/m04kA/CPC-BookingService/internal/api/handlers"
	generateFictitious "github.com/m04kA/CPC-BookingService/internal/usecase/generate_fictitious"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgSettingsNotReady   = "расписание приема еще не настроено"
)

type Handler struct {
	useCase GenerateFictitiousUseCase
	logger  Logger
}

func NewHandler(useCase GenerateFictitiousUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/admin/appointments/generate-fictitious
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req GenerateFictitiousRequest

	// Тело запроса опционально
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("POST /admin/appointments/generate-fictitious - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &generateFictitious.Request{
		HorizonDays: req.HorizonDays,
	})
	if err != nil {
		switch {
		case errors.Is(err, generateFictitious.ErrSettingsNotConfigured):
			h.logger.Warn("POST /admin/appointments/generate-fictitious - Settings not configured")
			handlers.RespondNotFound(w, msgSettingsNotReady)

		default:
			h.logger.Error("POST /admin/appointments/generate-fictitious - Failed: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
