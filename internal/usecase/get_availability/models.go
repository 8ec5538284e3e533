package get_availability

import (
	"time"

	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// Причины, по которым на дату нет приема
const (
	ClosedReasonNotWorkingDay = "not_a_working_day"
	ClosedReasonDateBlocked   = "date_blocked"
)

// Request модель запроса доступных слотов на дату
type Request struct {
	Date            time.Time // Дата, на которую запрашиваются слоты (без времени)
	DurationMinutes *int      // Переопределение длительности сеанса (опционально)
	IsFirstTime     bool      // Первый визит - сеанс длиннее обычного
	IsAdmin         bool      // Администратор не ограничен окном бронирования и закрытыми днями
}

// ClosedInfo описывает, почему кабинет не принимает в запрошенную дату
type ClosedInfo struct {
	Reason      string   // not_a_working_day | date_blocked
	Detail      *string  // Причина блокировки, если указана
	WorkingDays []string // Названия дней приема (для not_a_working_day)
}

// Response модель ответа со слотами на дату
type Response struct {
	Date   time.Time   // Запрошенная дата
	Closed *ClosedInfo // Заполнено, если в этот день приема нет (Slots тогда пустой)
	Slots  []Slot      // Слоты рабочего дня по порядку
}

// Slot модель временного слота
type Slot struct {
	StartTime       types.TimeString // Время начала слота (например, "10:00")
	EndTime         types.TimeString // Время окончания слота
	DurationMinutes int              // Длительность сеанса в минутах
	Available       bool             // Свободен ли слот
	Status          string           // available | booked | pending | fictitious
}
