package models

import (
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
)

// Request модели

// WorkingHoursPayload рабочие часы в запросе/ответе
type WorkingHoursPayload struct {
	Start string `json:"start"` // "09:00"
	End   string `json:"end"`   // "19:00"
}

// PricesPayload цены сеансов
type PricesPayload struct {
	FirstSession    float64 `json:"firstSession"`
	FollowUpSession float64 `json:"followUpSession"`
}

// UpdateSettingsRequest запрос на обновление настроек.
// Все поля опциональны - указанные поля заменяют текущие значения,
// остальные сохраняются.
type UpdateSettingsRequest struct {
	WorkingHours               *WorkingHoursPayload `json:"workingHours,omitempty"`
	WorkingDays                *[]int               `json:"workingDays,omitempty"` // 0 = воскресенье ... 6 = суббота
	SlotDurationMinutes        *int                 `json:"slotDurationMinutes,omitempty"`
	BreakDurationMinutes       *int                 `json:"breakDurationMinutes,omitempty"`
	MaxAdvanceBookingDays      *int                 `json:"maxAdvanceBookingDays,omitempty"`
	FictionalBookingPercentage *int                 `json:"fictionalBookingPercentage,omitempty"`
	Prices                     *PricesPayload       `json:"prices,omitempty"`
}

// AddBlockedRangeRequest запрос на блокировку диапазона дат
type AddBlockedRangeRequest struct {
	StartDate string  `json:"startDate"` // "2026-09-01"
	EndDate   string  `json:"endDate"`   // "2026-09-14"
	Reason    *string `json:"reason,omitempty"`
}

// Response модели

// BlockedRangeResponse ответ с диапазоном блокировки
type BlockedRangeResponse struct {
	ID        string  `json:"id"`
	StartDate string  `json:"startDate"`
	EndDate   string  `json:"endDate"`
	Reason    *string `json:"reason,omitempty"`
}

// SettingsResponse ответ с настройками расписания
type SettingsResponse struct {
	WorkingHours               WorkingHoursPayload    `json:"workingHours"`
	WorkingDays                []int                  `json:"workingDays"`
	WorkingDayNames            []string               `json:"workingDayNames"`
	SlotDurationMinutes        int                    `json:"slotDurationMinutes"`
	BreakDurationMinutes       int                    `json:"breakDurationMinutes"`
	MaxAdvanceBookingDays      int                    `json:"maxAdvanceBookingDays"`
	FictionalBookingPercentage int                    `json:"fictionalBookingPercentage"`
	BlockedDateRanges          []BlockedRangeResponse `json:"blockedDateRanges"`
	Prices                     PricesPayload          `json:"prices"`
	CreatedAt                  string                 `json:"createdAt"`
	UpdatedAt                  string                 `json:"updatedAt"`
}

// FromDomainSettings конвертирует доменную модель в ответ сервиса
func FromDomainSettings(s *domain.AppointmentSettings) *SettingsResponse {
	ranges := make([]BlockedRangeResponse, len(s.BlockedDateRanges))
	for i, r := range s.BlockedDateRanges {
		ranges[i] = FromDomainBlockedRange(r)
	}

	return &SettingsResponse{
		WorkingHours: WorkingHoursPayload{
			Start: s.WorkingHours.Start.String(),
			End:   s.WorkingHours.End.String(),
		},
		WorkingDays:                s.WorkingDays,
		WorkingDayNames:            s.WorkingDayNames(),
		SlotDurationMinutes:        s.SlotDurationMinutes,
		BreakDurationMinutes:       s.BreakDurationMinutes,
		MaxAdvanceBookingDays:      s.MaxAdvanceBookingDays,
		FictionalBookingPercentage: s.FictionalBookingPercentage,
		BlockedDateRanges:          ranges,
		Prices: PricesPayload{
			FirstSession:    s.Prices.FirstSession,
			FollowUpSession: s.Prices.FollowUpSession,
		},
		CreatedAt: s.CreatedAt.Format(time.RFC3339),
		UpdatedAt: s.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainBlockedRange конвертирует диапазон блокировки в ответ сервиса
func FromDomainBlockedRange(r domain.BlockedDateRange) BlockedRangeResponse {
	return BlockedRangeResponse{
		ID:        r.ID,
		StartDate: r.StartDate.Format(domain.DateFormat),
		EndDate:   r.EndDate.Format(domain.DateFormat),
		Reason:    r.Reason,
	}
}
