package create_appointment

import (
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// resolveStatus определяет начальный статус создаваемой записи.
// Публичный клиент создает только pending; booked и fictitious
// доступны администратору.
func resolveStatus(req *Request) (domain.AppointmentStatus, error) {
	requested := domain.AppointmentStatus(req.Status)

	if req.Status == "" {
		if req.IsFictitious {
			requested = domain.StatusFictitious
		} else {
			requested = domain.StatusPending
		}
	}

	switch requested {
	case domain.StatusPending:
		return domain.StatusPending, nil
	case domain.StatusBooked, domain.StatusFictitious:
		if !req.IsAdmin {
			return "", ErrStatusNotPermitted
		}
		return requested, nil
	default:
		return "", fmt.Errorf("%w: invalid status %q", ErrInvalidInput, req.Status)
	}
}

// validateRequest валидирует входные данные запроса.
// У фиктивных записей контактные данные синтетические или отсутствуют,
// поэтому для них обязательные контактные поля не проверяются.
func validateRequest(req *Request, fictitious bool) error {
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidInput)
	}

	if req.StartTime.IsZero() {
		return fmt.Errorf("%w: startTime is required", ErrInvalidInput)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid startTime format: %v", ErrInvalidInput, err)
	}

	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return fmt.Errorf("%w: duration must be positive", ErrInvalidInput)
		}
		if *req.DurationMinutes > domain.MaxSlotDurationMinutes {
			return fmt.Errorf("%w: duration must not exceed %d minutes", ErrInvalidInput, domain.MaxSlotDurationMinutes)
		}
	}

	if !fictitious {
		if strings.TrimSpace(req.ClientName) == "" {
			return fmt.Errorf("%w: clientName is required", ErrInvalidInput)
		}

		if strings.TrimSpace(req.ClientEmail) == "" {
			return fmt.Errorf("%w: clientEmail is required", ErrInvalidInput)
		}
		if _, err := mail.ParseAddress(req.ClientEmail); err != nil {
			return fmt.Errorf("%w: invalid clientEmail: %v", ErrInvalidInput, err)
		}

		if strings.TrimSpace(req.ClientPhone) == "" {
			return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}

// validateDate проверяет, что дата попадает в допустимое окно.
// Администратор не ограничен окном maxAdvanceBookingDays.
func validateDate(apptDate, now time.Time, maxAdvanceDays int, isAdmin bool) error {
	if domain.DateOnly(apptDate).Before(domain.DateOnly(now)) {
		return ErrInvalidDate
	}

	if isAdmin || maxAdvanceDays == 0 {
		return nil
	}

	maxDate := domain.DateOnly(now).AddDate(0, 0, maxAdvanceDays)
	if domain.DateOnly(apptDate).After(maxDate) {
		return fmt.Errorf("%w: can only book %d days in advance", ErrDateTooFarInFuture, maxAdvanceDays)
	}

	return nil
}

// validateTimeSlot проверяет, что сеанс помещается в рабочие часы и что
// время начала попадает в сетку слотов.
// Администратор может создавать записи вне сетки (но не вне рабочих часов).
func validateTimeSlot(
	startTime types.TimeString,
	sessionDuration int,
	settings *domain.AppointmentSettings,
	isAdmin bool,
) error {
	if startTime.IsBefore(settings.WorkingHours.Start) {
		return fmt.Errorf("%w: session starts before opening", ErrOutsideWorkingHours)
	}

	sessionEnd, err := startTime.AddMinutes(sessionDuration)
	if err != nil {
		return fmt.Errorf("%w: session does not fit into a day", ErrOutsideWorkingHours)
	}
	if sessionEnd.IsAfter(settings.WorkingHours.End) {
		return fmt.Errorf("%w: session ends after closing", ErrOutsideWorkingHours)
	}

	if isAdmin {
		return nil
	}

	stride := settings.SlotDurationMinutes + settings.BreakDurationMinutes
	if stride <= 0 {
		return nil
	}

	if (startTime.Minutes()-settings.WorkingHours.Start.Minutes())%stride != 0 {
		return ErrInvalidTimeSlot
	}

	return nil
}

// overlapsExisting проверяет пересечение сеанса с существующими записями.
// Граничащие интервалы пересечением не считаются.
func overlapsExisting(
	startTime types.TimeString,
	sessionDuration int,
	appointments []*domain.Appointment,
) (bool, error) {
	sessionEnd, err := startTime.AddMinutes(sessionDuration)
	if err != nil {
		return false, err
	}

	for _, appt := range appointments {
		if !appt.IsOccupying() {
			continue
		}

		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if appt.StartTime.IsBefore(sessionEnd) && apptEnd.IsAfter(startTime) {
			return true, nil
		}
	}

	return false, nil
}

// sessionDurationFor выбирает длительность сеанса:
// явное переопределение, иначе удлиненный первый сеанс, иначе
// стандартная длительность из настроек.
func sessionDurationFor(req *Request, settings *domain.AppointmentSettings) int {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes
	}
	if req.IsFirstTime {
		return domain.FirstSessionDurationMinutes
	}
	return settings.SlotDurationMinutes
}
