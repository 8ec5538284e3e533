package create_appointment

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_appointment: invalid input data")

	// ErrInvalidDate возвращается при попытке записи на прошедшую дату
	ErrInvalidDate = errors.New("create_appointment: invalid appointment date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно maxAdvanceBookingDays
	ErrDateTooFarInFuture = errors.New("create_appointment: date is too far in the future")

	// ErrNotAWorkingDay возвращается при попытке записи на нерабочий день
	ErrNotAWorkingDay = errors.New("create_appointment: not a working day")

	// ErrDateBlocked возвращается, когда дата попадает в заблокированный диапазон
	ErrDateBlocked = errors.New("create_appointment: date is blocked")

	// ErrOutsideWorkingHours возвращается, когда сеанс не помещается в рабочие часы
	ErrOutsideWorkingHours = errors.New("create_appointment: time is outside working hours")

	// ErrInvalidTimeSlot возвращается, когда время начала не попадает в сетку слотов
	ErrInvalidTimeSlot = errors.New("create_appointment: start time is not on the slot grid")

	// ErrSlotAlreadyBooked возвращается, когда выбранный слот уже занят
	ErrSlotAlreadyBooked = errors.New("create_appointment: slot is already booked")

	// ErrStatusNotPermitted возвращается, когда не-администратор запрашивает служебный статус
	ErrStatusNotPermitted = errors.New("create_appointment: status requires admin privileges")

	// ErrSettingsNotConfigured возвращается, когда настройки расписания еще не созданы
	ErrSettingsNotConfigured = errors.New("create_appointment: appointment settings are not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_appointment: internal error")
)
