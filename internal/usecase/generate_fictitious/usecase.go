package generate_fictitious

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/appointment"
	settingsRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// Имена для фиктивных записей. Контактных данных у таких записей нет,
// уведомления по ним не отправляются.
var fictitiousNames = []string{
	"Amine B.",
	"Salma K.",
	"Youssef E.",
	"Nadia M.",
	"Karim T.",
	"Leila R.",
	"Omar H.",
	"Imane Z.",
}

// UseCase use case для генерации фиктивных занятых слотов.
// Фиктивные записи создают видимость востребованности расписания:
// публичный клиент видит их как обычные занятые слоты.
type UseCase struct {
	appointmentRepo AppointmentRepository
	settingsRepo    SettingsRepository
	timeProvider    TimeProvider
	rng             Rand
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
		rng:             newDefaultRand(),
		logger:          logger,
	}
}

// WithTimeProvider заменяет провайдер времени (используется в тестах)
func (uc *UseCase) WithTimeProvider(tp TimeProvider) *UseCase {
	uc.timeProvider = tp
	return uc
}

// WithRand заменяет источник случайности (используется в тестах)
func (uc *UseCase) WithRand(rng Rand) *UseCase {
	uc.rng = rng
	return uc
}

// Execute выполняет генерацию фиктивных записей.
//
// Горизонт - domain.FictitiousHorizonDays дней начиная с сегодняшнего.
// Воскресенья, нерабочие дни и заблокированные даты пропускаются.
// Для каждого оставшегося дня с вероятностью fictionalBookingPercentage
// создается от 1 до domain.FictitiousDailyCap записей на случайные
// часовые отметки внутри рабочего дня (граничный час открытия исключается).
// Уже занятые слоты и дни с достаточным числом фиктивных записей
// пропускаются; конфликт вставки с параллельной записью не считается
// ошибкой.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	settings, err := uc.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			uc.logger.Warn("GenerateFictitious: settings are not configured")
			return nil, ErrSettingsNotConfigured
		}
		uc.logger.Error("GenerateFictitious: failed to get settings: %v", err)
		return nil, fmt.Errorf("%w: failed to get settings: %v", ErrInternal, err)
	}

	horizon := domain.FictitiousHorizonDays
	if req != nil && req.HorizonDays != nil && *req.HorizonDays > 0 {
		horizon = *req.HorizonDays
	}

	today := domain.DateOnly(uc.timeProvider.Now())

	resp := &Response{Created: []CreatedSlot{}}

	for offset := 0; offset < horizon; offset++ {
		date := today.AddDate(0, 0, offset)

		if date.Weekday() == domain.FictitiousSkipWeekday {
			continue
		}
		if !settings.IsWorkingDay(date.Weekday()) {
			continue
		}
		if settings.BlockedRangeFor(date) != nil {
			continue
		}

		resp.DaysConsidered++

		// Бросаем кубик: засевать ли этот день
		if uc.rng.Intn(100) >= settings.FictionalBookingPercentage {
			continue
		}

		created, err := uc.seedDay(ctx, date, settings)
		if err != nil {
			return nil, err
		}

		if len(created) > 0 {
			resp.DaysSeeded++
			resp.Created = append(resp.Created, created...)
		}
	}

	uc.logger.Info("GenerateFictitious: created %d fictitious appointments across %d days",
		len(resp.Created), resp.DaysSeeded)

	return resp, nil
}

// seedDay создает фиктивные записи на один день
func (uc *UseCase) seedDay(ctx context.Context, date time.Time, settings *domain.AppointmentSettings) ([]CreatedSlot, error) {
	filter := domain.AppointmentsFilter{
		StartDate:     &date,
		EndDate:       &date,
		OnlyOccupying: true,
	}

	existing, err := uc.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		uc.logger.Error("GenerateFictitious: failed to get appointments for %s: %v", date.Format(domain.DateFormat), err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	// Не превышаем дневной лимит с учетом уже существующих фиктивных записей
	budget := domain.FictitiousDailyCap - countFictitious(existing)
	if budget <= 0 {
		return nil, nil
	}

	candidates := hourlyCandidates(settings, existing)
	if len(candidates) == 0 {
		return nil, nil
	}

	want := 1 + uc.rng.Intn(domain.FictitiousDailyCap)
	if want > budget {
		want = budget
	}
	if want > len(candidates) {
		want = len(candidates)
	}

	created := make([]CreatedSlot, 0, want)

	// Выбор без возвращения: выбранный кандидат исключается из пула
	for i := 0; i < want; i++ {
		idx := uc.rng.Intn(len(candidates))
		startTime := candidates[idx]
		candidates = append(candidates[:idx], candidates[idx+1:]...)

		appt := &domain.Appointment{
			Date:            date,
			StartTime:       startTime,
			DurationMinutes: settings.SlotDurationMinutes,
			Status:          domain.StatusFictitious,
			ClientName:      fictitiousNames[uc.rng.Intn(len(fictitiousNames))],
			IsFictitious:    true,
		}

		saved, err := uc.appointmentRepo.Create(ctx, appt)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrSlotTaken) {
				// Слот успела занять параллельная запись - просто пропускаем
				continue
			}
			uc.logger.Error("GenerateFictitious: failed to create appointment %s %s: %v",
				date.Format(domain.DateFormat), startTime, err)
			return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
		}

		created = append(created, CreatedSlot{
			ID:        saved.ID,
			Date:      date,
			StartTime: saved.StartTime,
		})
	}

	return created, nil
}

// hourlyCandidates возвращает свободные часовые отметки: начало сеанса
// строго позже открытия, конец не позже закрытия.
func hourlyCandidates(settings *domain.AppointmentSettings, existing []*domain.Appointment) []types.TimeString {
	candidates := make([]types.TimeString, 0)

	for hour := 1; hour < 24; hour++ {
		startTime, err := types.NewTimeStringFromMinutes(hour * 60)
		if err != nil {
			continue
		}

		if !startTime.IsAfter(settings.WorkingHours.Start) {
			continue
		}

		sessionEnd, err := startTime.AddMinutes(settings.SlotDurationMinutes)
		if err != nil {
			continue
		}
		if sessionEnd.IsAfter(settings.WorkingHours.End) {
			continue
		}

		if overlapsAny(startTime, sessionEnd, existing) {
			continue
		}

		candidates = append(candidates, startTime)
	}

	return candidates
}

// overlapsAny проверяет пересечение интервала с существующими записями
func overlapsAny(start, end types.TimeString, appointments []*domain.Appointment) bool {
	for _, appt := range appointments {
		if !appt.IsOccupying() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(end) && apptEnd.IsAfter(start) {
			return true
		}
	}
	return false
}

// countFictitious подсчитывает фиктивные записи в списке
func countFictitious(appointments []*domain.Appointment) int {
	count := 0
	for _, appt := range appointments {
		if appt.IsFictitious && appt.IsOccupying() {
			count++
		}
	}
	return count
}
