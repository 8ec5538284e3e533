package settings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	settingsRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/settings"
	"github.com/m04kA/CPC-BookingService/internal/service/settings/models"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// Service сервис для работы с настройками расписания
type Service struct {
	settingsRepo SettingsRepository
	logger       Logger
}

// NewService создает новый экземпляр сервиса настроек
func NewService(settingsRepo SettingsRepository, logger Logger) *Service {
	return &Service{
		settingsRepo: settingsRepo,
		logger:       logger,
	}
}

// Get получает текущие настройки расписания
func (s *Service) Get(ctx context.Context) (*models.SettingsResponse, error) {
	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Warn("Get: settings are not configured yet")
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("Get: repository error: %v", err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainSettings(current), nil
}

// Update обновляет настройки расписания.
//
// Указанные в запросе поля заменяют текущие значения, остальные
// сохраняются. Если настроек еще нет, создается документ с дефолтами,
// поверх которых применяется запрос. Конкурентные обновления
// разрешаются по принципу last-writer-wins: документ один и меняет
// его один администратор.
func (s *Service) Update(ctx context.Context, req *models.UpdateSettingsRequest) (*models.SettingsResponse, error) {
	s.logger.Info("Update: updating appointment settings")

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if !errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			s.logger.Error("Update: repository error: %v", err)
			return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
		}
		// Первичная инициализация: ключевые поля расписания обязаны
		// присутствовать в запросе, дефолты заполняют только остальные
		if req.WorkingHours == nil || req.WorkingDays == nil || req.SlotDurationMinutes == nil {
			s.logger.Warn("Update: settings not initialized, workingHours/workingDays/slotDurationMinutes are required")
			return nil, fmt.Errorf("%w: workingHours, workingDays and slotDurationMinutes are required to initialize settings", ErrInvalidInput)
		}
		current = defaultSettings()
		s.logger.Info("Update: settings not found, creating")
	}

	if err := applyUpdate(current, req); err != nil {
		s.logger.Warn("Update: invalid request: %v", err)
		return nil, err
	}

	if err := current.Validate(); err != nil {
		s.logger.Warn("Update: settings validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	saved, err := s.settingsRepo.Upsert(ctx, current)
	if err != nil {
		s.logger.Error("Update: failed to save settings: %v", err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Update: settings saved")
	return models.FromDomainSettings(saved), nil
}

// AddBlockedRange блокирует диапазон дат (отпуск, праздники).
// Возвращает созданный диапазон с присвоенным ID.
func (s *Service) AddBlockedRange(ctx context.Context, req *models.AddBlockedRangeRequest) (*models.BlockedRangeResponse, error) {
	s.logger.Info("AddBlockedRange: %s - %s", req.StartDate, req.EndDate)

	startDate, err := time.ParseInLocation(domain.DateFormat, req.StartDate, domain.BusinessLocation())
	if err != nil {
		s.logger.Warn("AddBlockedRange: invalid startDate %q", req.StartDate)
		return nil, fmt.Errorf("%w: invalid startDate", ErrInvalidInput)
	}
	endDate, err := time.ParseInLocation(domain.DateFormat, req.EndDate, domain.BusinessLocation())
	if err != nil {
		s.logger.Warn("AddBlockedRange: invalid endDate %q", req.EndDate)
		return nil, fmt.Errorf("%w: invalid endDate", ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		s.logger.Warn("AddBlockedRange: endDate is before startDate")
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return nil, ErrSettingsNotFound
		}
		s.logger.Error("AddBlockedRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: AddBlockedRange - repository error: %v", ErrInternal, err)
	}

	blocked := domain.BlockedDateRange{
		ID:        uuid.New().String(),
		StartDate: startDate,
		EndDate:   endDate,
		Reason:    req.Reason,
	}
	current.BlockedDateRanges = append(current.BlockedDateRanges, blocked)

	if _, err := s.settingsRepo.Upsert(ctx, current); err != nil {
		s.logger.Error("AddBlockedRange: failed to save settings: %v", err)
		return nil, fmt.Errorf("%w: AddBlockedRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("AddBlockedRange: created blocked range id=%s", blocked.ID)

	resp := models.FromDomainBlockedRange(blocked)
	return &resp, nil
}

// RemoveBlockedRange снимает блокировку диапазона дат по ID
func (s *Service) RemoveBlockedRange(ctx context.Context, id string) error {
	s.logger.Info("RemoveBlockedRange: id=%s", id)

	current, err := s.settingsRepo.Get(ctx)
	if err != nil {
		if errors.Is(err, settingsRepo.ErrSettingsNotFound) {
			return ErrSettingsNotFound
		}
		s.logger.Error("RemoveBlockedRange: repository error: %v", err)
		return fmt.Errorf("%w: RemoveBlockedRange - repository error: %v", ErrInternal, err)
	}

	kept := make([]domain.BlockedDateRange, 0, len(current.BlockedDateRanges))
	found := false
	for _, r := range current.BlockedDateRanges {
		if r.ID == id {
			found = true
			continue
		}
		kept = append(kept, r)
	}

	if !found {
		s.logger.Warn("RemoveBlockedRange: blocked range id=%s not found", id)
		return ErrBlockedRangeNotFound
	}

	current.BlockedDateRanges = kept

	if _, err := s.settingsRepo.Upsert(ctx, current); err != nil {
		s.logger.Error("RemoveBlockedRange: failed to save settings: %v", err)
		return fmt.Errorf("%w: RemoveBlockedRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("RemoveBlockedRange: blocked range id=%s removed", id)
	return nil
}

// applyUpdate применяет указанные поля запроса к настройкам
func applyUpdate(current *domain.AppointmentSettings, req *models.UpdateSettingsRequest) error {
	if req.WorkingHours != nil {
		start, err := types.NewTimeStringFromString(req.WorkingHours.Start)
		if err != nil {
			return fmt.Errorf("%w: invalid workingHours.start: %v", ErrInvalidInput, err)
		}
		end, err := types.NewTimeStringFromString(req.WorkingHours.End)
		if err != nil {
			return fmt.Errorf("%w: invalid workingHours.end: %v", ErrInvalidInput, err)
		}
		current.WorkingHours = domain.WorkingHours{Start: start, End: end}
	}

	if req.WorkingDays != nil {
		current.WorkingDays = *req.WorkingDays
	}
	if req.SlotDurationMinutes != nil {
		current.SlotDurationMinutes = *req.SlotDurationMinutes
	}
	if req.BreakDurationMinutes != nil {
		current.BreakDurationMinutes = *req.BreakDurationMinutes
	}
	if req.MaxAdvanceBookingDays != nil {
		current.MaxAdvanceBookingDays = *req.MaxAdvanceBookingDays
	}
	if req.FictionalBookingPercentage != nil {
		current.FictionalBookingPercentage = *req.FictionalBookingPercentage
	}
	if req.Prices != nil {
		current.Prices = domain.SessionPrices{
			FirstSession:    req.Prices.FirstSession,
			FollowUpSession: req.Prices.FollowUpSession,
		}
	}

	return nil
}

// defaultSettings возвращает настройки по умолчанию для первого создания
func defaultSettings() *domain.AppointmentSettings {
	start, _ := types.NewTimeStringFromString("09:00")
	end, _ := types.NewTimeStringFromString("19:00")

	return &domain.AppointmentSettings{
		WorkingHours:               domain.WorkingHours{Start: start, End: end},
		WorkingDays:                []int{1, 2, 3, 4, 5, 6}, // понедельник - суббота
		SlotDurationMinutes:        domain.DefaultSlotDurationMinutes,
		BreakDurationMinutes:       domain.DefaultBreakDurationMinutes,
		MaxAdvanceBookingDays:      domain.DefaultMaxAdvanceBookingDays,
		FictionalBookingPercentage: domain.DefaultFictionalPercentage,
		BlockedDateRanges:          []domain.BlockedDateRange{},
	}
}
