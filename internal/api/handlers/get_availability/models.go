package get_availability

import (
	"github.com/m04kA/CPC-BookingService/internal/domain"
	getAvailability "github.com/m04kA/CPC-BookingService/internal/usecase/get_availability"
)

// SlotResponse HTTP модель временного слота
type SlotResponse struct {
	StartTime       string `json:"startTime"` // "10:00"
	EndTime         string `json:"endTime"`   // "12:00"
	DurationMinutes int    `json:"durationMinutes"`
	Available       bool   `json:"available"`
	Status          string `json:"status"`
}

// ClosedResponse HTTP модель причины отсутствия приема
type ClosedResponse struct {
	Reason      string   `json:"reason"` // not_a_working_day | date_blocked
	Detail      *string  `json:"detail,omitempty"`
	WorkingDays []string `json:"workingDays,omitempty"` // Дни приема для not_a_working_day
}

// AvailabilityResponse HTTP модель ответа со слотами
type AvailabilityResponse struct {
	Date   string          `json:"date"` // "2026-09-15"
	Closed *ClosedResponse `json:"closed,omitempty"`
	Slots  []SlotResponse  `json:"slots"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *AvailabilityResponse {
	slots := make([]SlotResponse, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = SlotResponse{
			StartTime:       slot.StartTime.String(),
			EndTime:         slot.EndTime.String(),
			DurationMinutes: slot.DurationMinutes,
			Available:       slot.Available,
			Status:          slot.Status,
		}
	}

	result := &AvailabilityResponse{
		Date:  resp.Date.Format(domain.DateFormat),
		Slots: slots,
	}

	if resp.Closed != nil {
		result.Closed = &ClosedResponse{
			Reason:      resp.Closed.Reason,
			Detail:      resp.Closed.Detail,
			WorkingDays: resp.Closed.WorkingDays,
		}
	}

	return result
}
