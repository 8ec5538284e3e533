package generate_fictitious

import (
	"context"
	"math/rand"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей на прием
type AppointmentRepository interface {
	Create(ctx context.Context, appt *domain.Appointment) (*domain.Appointment, error)
	GetByFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
}

// SettingsRepository интерфейс репозитория настроек расписания
type SettingsRepository interface {
	Get(ctx context.Context) (*domain.AppointmentSettings, error)
}

// Rand интерфейс источника случайности (для тестирования)
type Rand interface {
	Intn(n int) int
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время в часовом поясе кабинета
func (p *RealTimeProvider) Now() time.Time {
	return time.Now().In(domain.BusinessLocation())
}

// newDefaultRand возвращает источник случайности по умолчанию
func newDefaultRand() Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}
