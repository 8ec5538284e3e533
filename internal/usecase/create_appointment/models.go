package create_appointment

import (
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// Request модель запроса на создание записи
type Request struct {
	Date            time.Time        // Дата приема (без времени)
	StartTime       types.TimeString // Время начала сеанса (например, "10:00")
	DurationMinutes *int             // Переопределение длительности сеанса (опционально)
	Status          string           // Начальный статус: пусто/pending, booked и fictitious только для администратора
	ClientName      string           // Имя клиента
	ClientEmail     string           // Email клиента
	ClientPhone     string           // Телефон клиента
	Notes           *string          // Дополнительные заметки (опционально)
	IsFirstTime     bool             // Первый визит - сеанс длиннее обычного
	IsOnline        bool             // Онлайн-сеанс
	IsFictitious    bool             // Фиктивная запись (только администратор)
	IsAdmin         bool             // Администратор не ограничен окном бронирования, сеткой слотов и закрытыми днями
}

// Response модель ответа с созданной записью
type Response struct {
	ID              int64            // ID созданной записи
	Date            time.Time        // Дата приема
	StartTime       types.TimeString // Время начала
	EndTime         types.TimeString // Время окончания
	DurationMinutes int              // Длительность сеанса в минутах
	Status          string           // Статус созданной записи
	ClientName      string           // Имя клиента
	ClientEmail     string           // Email клиента
	ClientPhone     string           // Телефон клиента
	Notes           *string          // Заметки
	IsFirstTime     bool             // Первый визит
	IsOnline        bool             // Онлайн-сеанс
	IsFictitious    bool             // Фиктивная запись
	CreatedAt       time.Time        // Время создания
	UpdatedAt       time.Time        // Время обновления
}

// toResponse конвертирует доменную модель в ответ use case
func toResponse(appt *domain.Appointment) *Response {
	endTime, _ := appt.EndTime()

	return &Response{
		ID:              appt.ID,
		Date:            appt.Date,
		StartTime:       appt.StartTime,
		EndTime:         endTime,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
		ClientName:      appt.ClientName,
		ClientEmail:     appt.ClientEmail,
		ClientPhone:     appt.ClientPhone,
		Notes:           appt.Notes,
		IsFirstTime:     appt.IsFirstTime,
		IsOnline:        appt.IsOnline,
		IsFictitious:    appt.IsFictitious,
		CreatedAt:       appt.CreatedAt,
		UpdatedAt:       appt.UpdatedAt,
	}
}
