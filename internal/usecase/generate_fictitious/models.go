package generate_fictitious

import (
	"time"

	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// Request модель запроса на генерацию фиктивных записей
type Request struct {
	// HorizonDays переопределение горизонта генерации в днях (опционально)
	HorizonDays *int
}

// Response модель ответа с результатом генерации
type Response struct {
	DaysConsidered int           // Сколько дней попало в горизонт (без нерабочих)
	DaysSeeded     int           // На скольких днях были созданы записи
	Created        []CreatedSlot // Созданные фиктивные записи
}

// CreatedSlot описывает одну созданную фиктивную запись
type CreatedSlot struct {
	ID        int64            // ID записи
	Date      time.Time        // Дата приема
	StartTime types.TimeString // Время начала
}
