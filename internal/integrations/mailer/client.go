package mailer

import (
	"context"
	"fmt"

	gomail "gopkg.in/gomail.v2"

	"github.com/m04kA/CPC-BookingService/internal/domain"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Client SMTP-клиент для отправки писем клиентам кабинета
type Client struct {
	dialer *gomail.Dialer
	from   string
	log    Logger
}

// NewClient создает новый экземпляр SMTP-клиента
func NewClient(host string, port int, username, password, from string, log Logger) *Client {
	return &Client{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		log:    log,
	}
}

// SendBookingConfirmation отправляет клиенту письмо с подтверждением записи
func (c *Client) SendBookingConfirmation(ctx context.Context, appt *domain.Appointment) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	endTime, _ := appt.EndTime()

	subject := "Confirmation de votre rendez-vous"
	body := fmt.Sprintf(
		"Bonjour %s,\r\n\r\n"+
			"Votre rendez-vous est confirmé :\r\n\r\n"+
			"Date : %s\r\n"+
			"Heure : %s - %s\r\n\r\n"+
			"En cas d'empêchement, merci de nous prévenir au moins 24 heures à l'avance.\r\n\r\n"+
			"À bientôt,\r\n"+
			"Cabinet de Psychothérapie",
		appt.ClientName,
		appt.Date.Format(domain.DateFormat),
		appt.StartTime,
		endTime,
	)

	msg := gomail.NewMessage()
	msg.SetHeader("From", c.from)
	msg.SetHeader("To", appt.ClientEmail)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	if err := c.dialer.DialAndSend(msg); err != nil {
		c.log.Error("SendBookingConfirmation: failed to send to %s: %v", appt.ClientEmail, err)
		return fmt.Errorf("%w: %v", ErrSendFailed, err)
	}

	c.log.Info("SendBookingConfirmation: confirmation sent to %s", appt.ClientEmail)
	return nil
}
