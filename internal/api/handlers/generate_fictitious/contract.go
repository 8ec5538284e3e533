package generate_fictitious

import (
	"context"

	generateFictitious "github.com/m04kA/CPC-BookingService/internal/usecase/generate_fictitious"
)

type GenerateFictitiousUseCase interface {
	Execute(ctx context.Context, req *generateFictitious.Request) (*generateFictitious.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
