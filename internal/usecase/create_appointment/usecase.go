package create_appointment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/settings"
)

// UseCase use case для создания записи на прием
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	settingsRepo SettingsRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		settingsRepo:    settingsRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// WithTimeProvider заменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// Execute выполняет use case создания записи.
// Использует сериализуемую транзакцию для предотвращения гонки данных:
// проверка занятости слота и вставка происходят атомарно.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: date=%s, time=%s, firstTime=%t, admin=%t",
		req.Date.Format(domain.DateFormat), req.StartTime, req.IsFirstTime, req.IsAdmin)

	// 1. Определяем начальный статус и валидируем входные данные
	status, err := resolveStatus(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: status resolution failed: %v", err)
		return nil, err
	}
	fictitious := status == domain.StatusFictitious

	if err := validateRequest(req, fictitious); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// Переменная для хранения результата
	var result *domain.Appointment

	// 3. Выполняем операции с БД в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Получаем настройки расписания
		settings, err := uc.settingsRepo.Get(txCtx)
		if err != nil {
			if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
				uc.logger.Warn("CreateAppointment: settings are not configured")
				return ErrSettingsNotConfigured
			}
			uc.logger.Error("CreateAppointment: failed to get settings: %v", err)
			return fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
		}

		// 3.2. Валидация даты с учетом окна бронирования
		if err := validateDate(req.Date, now, settings.MaxAdvanceBookingDays, req.IsAdmin); err != nil {
			uc.logger.Warn("CreateAppointment: date validation failed: %v", err)
			return err
		}

		// 3.3. Проверяем рабочий день и блокировки.
		// Администратор может назначить прием на любой день.
		if !req.IsAdmin {
			if !settings.IsWorkingDay(req.Date.Weekday()) {
				uc.logger.Warn("CreateAppointment: %s is not a working day", req.Date.Format(domain.DateFormat))
				return ErrNotAWorkingDay
			}
			if blocked := settings.BlockedRangeFor(req.Date); blocked != nil {
				uc.logger.Warn("CreateAppointment: %s falls in blocked range %s", req.Date.Format(domain.DateFormat), blocked.ID)
				return ErrDateBlocked
			}
		}

		// 3.4. Валидация времени сеанса
		sessionDuration := sessionDurationFor(req, settings)

		if err := validateTimeSlot(req.StartTime, sessionDuration, settings, req.IsAdmin); err != nil {
			uc.logger.Warn("CreateAppointment: time slot validation failed: %v", err)
			return err
		}

		// 3.5. Проверяем точное совпадение ключа слота с блокировкой (FOR UPDATE)
		date := domain.DateOnly(req.Date)

		exists, err := uc.appointmentRepo.ExistsAtDateTime(txCtx, date, req.StartTime)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check slot: %v", err)
			return fmt.Errorf("%w: failed to check slot: %v", ErrInternal, err)
		}
		if exists {
			uc.logger.Warn("CreateAppointment: slot %s %s is already booked", date.Format(domain.DateFormat), req.StartTime)
			return ErrSlotAlreadyBooked
		}

		// 3.6. Проверяем пересечение с записями дня (строки дня заблокированы FOR UPDATE)
		filter := domain.AppointmentsFilter{
			StartDate:     &date,
			EndDate:       &date,
			OnlyOccupying: true,
		}

		appointments, err := uc.appointmentRepo.GetByFilter(txCtx, filter)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to get appointments: %v", err)
			return fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
		}

		overlaps, err := overlapsExisting(req.StartTime, sessionDuration, appointments)
		if err != nil {
			uc.logger.Error("CreateAppointment: failed to check overlaps: %v", err)
			return fmt.Errorf("%w: failed to check overlaps: %v", ErrInternal, err)
		}
		if overlaps {
			uc.logger.Warn("CreateAppointment: session %s (%d min) overlaps an existing appointment", req.StartTime, sessionDuration)
			return ErrSlotAlreadyBooked
		}

		// 3.7. Создаем запись с запрошенным статусом: pending для клиента,
		// booked/fictitious для администратора
		appt := &domain.Appointment{
			Date:            date,
			StartTime:       req.StartTime,
			DurationMinutes: sessionDuration,
			Status:          status,
			ClientName:      req.ClientName,
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
			Notes:           req.Notes,
			IsFirstTime:     req.IsFirstTime,
			IsOnline:        req.IsOnline,
			IsFictitious:    fictitious,
		}

		created, err := uc.appointmentRepo.Create(txCtx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				// Страховка на уровне индекса: параллельная вставка успела раньше
				uc.logger.Warn("CreateAppointment: concurrent insert took slot %s %s", date.Format(domain.DateFormat), req.StartTime)
				return ErrSlotAlreadyBooked
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%d", result.ID)

	return toResponse(result), nil
}
