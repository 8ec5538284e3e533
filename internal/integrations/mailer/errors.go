package mailer

import "errors"

var (
	// ErrSendFailed возвращается при ошибке отправки письма
	ErrSendFailed = errors.New("mailer: failed to send message")
)
