package get_availability

import (
	"fmt"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
		}
		if *req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxSlotDurationMinutes)
		}
	}

	return nil
}

// validateDate проверяет, что дата попадает в допустимое окно.
// Администратор не ограничен окном maxAdvanceBookingDays, но прошлое
// закрыто для всех.
func validateDate(requestDate, now time.Time, maxAdvanceDays int, isAdmin bool) error {
	if isDateInPast(requestDate, now) {
		return ErrInvalidDate
	}

	if isAdmin || maxAdvanceDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, maxAdvanceDays)
	if domain.DateOnly(requestDate).After(maxDate) {
		return fmt.Errorf("%w: can only view %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// isDateInPast проверяет, что дата раньше сегодняшнего дня
func isDateInPast(date, now time.Time) bool {
	return domain.DateOnly(date).Before(domain.DateOnly(now))
}
