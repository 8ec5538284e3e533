package get_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/settings"
)

// UseCase use case для получения доступных слотов на дату
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider заменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailability: date=%s, firstTime=%t, admin=%t",
		req.Date.Format(domain.DateFormat), req.IsFirstTime, req.IsAdmin)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем настройки расписания
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GetAvailability: settings are not configured")
			return nil, ErrSettingsNotConfigured
		}
		uc.logger.Error("GetAvailability: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	// 4. Валидация даты с учетом окна бронирования
	if err := validateDate(req.Date, now, settings.MaxAdvanceBookingDays, req.IsAdmin); err != nil {
		uc.logger.Warn("GetAvailability: date validation failed: %v", err)
		return nil, err
	}

	// 5-6. Закрытые дни останавливают только публичных клиентов:
	// администратор может назначить прием на любой день
	if !req.IsAdmin {
		// Нерабочий день - сообщаем причину и дни приема, а не ошибку
		if !settings.IsWorkingDay(req.Date.Weekday()) {
			uc.logger.Info("GetAvailability: %s is not a working day", req.Date.Format(domain.DateFormat))
			return &Response{
				Date: req.Date,
				Closed: &ClosedInfo{
					Reason:      ClosedReasonNotWorkingDay,
					WorkingDays: settings.WorkingDayNames(),
				},
				Slots: []Slot{},
			}, nil
		}

		// Дата в заблокированном диапазоне (отпуск, праздники)
		if blocked := settings.BlockedRangeFor(req.Date); blocked != nil {
			uc.logger.Info("GetAvailability: %s falls in blocked range %s", req.Date.Format(domain.DateFormat), blocked.ID)
			return &Response{
				Date:   req.Date,
				Closed: &ClosedInfo{Reason: ClosedReasonDateBlocked, Detail: blocked.Reason},
				Slots:  []Slot{},
			}, nil
		}
	}

	// 7. Генерируем временные слоты
	sessionDuration := sessionDurationFor(req, settings)

	timeSlots, err := generateTimeSlots(
		settings.WorkingHours,
		settings.SlotDurationMinutes,
		settings.BreakDurationMinutes,
		sessionDuration,
	)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to generate time slots: %v", err)
		return nil, fmt.Errorf("%w: failed to generate time slots: %v", ErrInternal, err)
	}

	// 8. Получаем все занимающие слоты записи на эту дату
	date := domain.DateOnly(req.Date)
	filter := domain.AppointmentsFilter{
		StartDate:     &date,
		EndDate:       &date,
		OnlyOccupying: true,
	}

	appointments, err := uc.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GetAvailability: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// 9. Размечаем занятость каждого слота
	slots := tagSlots(timeSlots, sessionDuration, appointments)

	uc.logger.Info("GetAvailability: generated %d slots for date=%s", len(slots), req.Date.Format(domain.DateFormat))

	return &Response{
		Date:  req.Date,
		Slots: slots,
	}, nil
}
