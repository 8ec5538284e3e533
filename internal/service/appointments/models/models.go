package models

import (
	"errors"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// UpdateStatusRequest запрос на обновление статуса записи
type UpdateStatusRequest struct {
	Status string `json:"status"`
}

// GetAppointmentsRequest запрос на получение записей за период
type GetAppointmentsRequest struct {
	StartDate *time.Time `json:"startDate,omitempty"` // Начало периода (опционально)
	EndDate   *time.Time `json:"endDate,omitempty"`   // Конец периода (опционально)
	Status    *string    `json:"status,omitempty"`    // Фильтр по статусу (опционально)
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		StartDate: r.StartDate,
		EndDate:   r.EndDate,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64   `json:"id"`
	Date            string  `json:"date"`      // "2026-09-15"
	StartTime       string  `json:"startTime"` // "10:00"
	EndTime         string  `json:"endTime"`   // "12:00"
	DurationMinutes int     `json:"durationMinutes"`
	Status          string  `json:"status"`
	ClientName      string  `json:"clientName"`
	ClientEmail     string  `json:"clientEmail"`
	ClientPhone     string  `json:"clientPhone"`
	Notes           *string `json:"notes,omitempty"`
	IsFirstTime     bool    `json:"isFirstTime"`
	IsOnline        bool    `json:"isOnline"`
	IsFictitious    bool    `json:"isFictitious"`
	IsRedFlagged    bool    `json:"isRedFlagged"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// FromDomainAppointment конвертирует доменную модель в ответ сервиса
func FromDomainAppointment(appt *domain.Appointment) *AppointmentResponse {
	endTime, _ := appt.EndTime()

	return &AppointmentResponse{
		ID:              appt.ID,
		Date:            appt.Date.Format(domain.DateFormat),
		StartTime:       appt.StartTime.String(),
		EndTime:         endTime.String(),
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ClientName:      appt.ClientName,
		ClientEmail:     appt.ClientEmail,
		ClientPhone:     appt.ClientPhone,
		Notes:           appt.Notes,
		IsFirstTime:     appt.IsFirstTime,
		IsOnline:        appt.IsOnline,
		IsFictitious:    appt.IsFictitious,
		IsRedFlagged:    appt.IsRedFlagged,
		CreatedAt:       appt.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       appt.UpdatedAt.Format(time.RFC3339),
	}
}

// FromDomainAppointmentList конвертирует список доменных моделей в ответ сервиса
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	result := make([]AppointmentResponse, len(appointments))
	for i, appt := range appointments {
		result[i] = *FromDomainAppointment(appt)
	}

	return &AppointmentListResponse{
		Appointments: result,
		Total:        len(result),
	}
}

// ToDomainAppointmentStatus конвертирует строку в domain.AppointmentStatus
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !domain.ValidStatus(s) {
		return "", ErrInvalidStatus
	}
	return s, nil
}
