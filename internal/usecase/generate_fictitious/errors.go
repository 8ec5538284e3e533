package generate_fictitious

import "errors"

var (
	// ErrSettingsNotConfigured возвращается, когда настройки расписания еще не созданы
	ErrSettingsNotConfigured = errors.New("generate_fictitious: appointment settings are not configured")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("generate_fictitious: internal error")
)
