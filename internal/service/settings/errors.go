package settings

import "errors"

var (
	// ErrSettingsNotFound возвращается, когда настройки еще не созданы
	ErrSettingsNotFound = errors.New("settings not found")

	// ErrBlockedRangeNotFound возвращается, когда диапазон блокировки не найден
	ErrBlockedRangeNotFound = errors.New("blocked range not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
