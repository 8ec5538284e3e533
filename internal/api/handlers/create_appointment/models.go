package create_appointment

import (
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	createAppointment "github.com/m04kA/CPC-BookingService/internal/usecase/create_appointment"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "10:00"
	DurationMinutes *int    `json:"durationMinutes,omitempty"`
	Status          string  `json:"status,omitempty"` // booked/fictitious только для администратора
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	Notes           *string `json:"notes,omitempty"`
	IsFirstTime     bool    `json:"isFirstTime"`
	IsOnline        bool    `json:"isOnline"`
	IsFictitious    bool    `json:"isFictitious,omitempty"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`
	StartTime       string  `json:"startTime"`
	EndTime         string  `json:"endTime"`
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	Notes           *string `json:"notes,omitempty"`
	IsFirstTime     bool    `json:"isFirstTime"`
	IsOnline        bool    `json:"isOnline"`
	IsFictitious    bool    `json:"isFictitious"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest(isAdmin bool) (*createAppointment.Request, error) {
	date, err := time.ParseInLocation(domain.DateFormat, r.Date, domain.BusinessLocation())
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		Date:            date,
		StartTime:       startTime,
		DurationMinutes: r.DurationMinutes,
		Status:          r.Status,
		ClientName:      r.ClientName,
		ClientEmail:     r.ClientEmail,
		ClientPhone:     r.ClientPhone,
		Notes:           r.Notes,
		IsFirstTime:     r.IsFirstTime,
		IsOnline:        r.IsOnline,
		IsFictitious:    r.IsFictitious,
		IsAdmin:         isAdmin,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              resp.ID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		DurationMinutes: resp.DurationMinutes,
		Status:          resp.Status,
		ClientName:      resp.ClientName,
		ClientEmail:     resp.ClientEmail,
		ClientPhone:     resp.ClientPhone,
		Notes:           resp.Notes,
		IsFirstTime:     resp.IsFirstTime,
		IsOnline:        resp.IsOnline,
		IsFictitious:    resp.IsFictitious,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
