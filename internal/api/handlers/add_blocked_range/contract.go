package add_blocked_range

import (
	"context"

	"github.com/m04kA/CPC-BookingService/internal/service/settings/models"
)

type SettingsService interface {
	AddBlockedRange(ctx context.Context, req *models.AddBlockedRangeRequest) (*models.BlockedRangeResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
