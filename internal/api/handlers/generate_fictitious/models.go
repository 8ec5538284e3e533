package generate_fictitious

import (
	"github.com/m04kA/CPC-BookingService/internal/domain"
	generateFictitious "github.com/m04kA/CPC-BookingService/internal/usecase/generate_fictitious"
)

// GenerateFictitiousRequest HTTP request model
type GenerateFictitiousRequest struct {
	HorizonDays *int `json:"horizonDays,omitempty"`
}

// CreatedSlotResponse HTTP модель созданной фиктивной записи
type CreatedSlotResponse struct {
	ID        int64  `json:"id"`
	Date      string `json:"date"`
	StartTime string `json:"startTime"`
}

// GenerateFictitiousResponse HTTP response model
type GenerateFictitiousResponse struct {
	DaysConsidered int                   `json:"daysConsidered"`
	DaysSeeded     int                   `json:"daysSeeded"`
	CreatedCount   int                   `json:"createdCount"`
	Created        []CreatedSlotResponse `json:"created"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *generateFictitious.Response) *GenerateFictitiousResponse {
	created := make([]CreatedSlotResponse, len(resp.Created))
	for i, slot := range resp.Created {
		created[i] = CreatedSlotResponse{
			ID:        slot.ID,
			Date:      slot.Date.Format(domain.DateFormat),
			StartTime: slot.StartTime.String(),
		}
	}

	return &GenerateFictitiousResponse{
		DaysConsidered: resp.DaysConsidered,
		DaysSeeded:     resp.DaysSeeded,
		CreatedCount:   len(created),
		Created:        created,
	}
}
