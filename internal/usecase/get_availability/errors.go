package get_availability

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidDate возвращается при запросе слотов на прошедшую дату
	ErrInvalidDate = errors.New("invalid availability date")

	// ErrDateTooFarInFuture возвращается, когда дата превышает окно maxAdvanceBookingDays
	ErrDateTooFarInFuture = errors.New("date is too far in the future")

	// ErrSettingsNotConfigured возвращается, когда настройки расписания еще не созданы
	ErrSettingsNotConfigured = errors.New("appointment settings are not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
