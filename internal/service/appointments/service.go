package appointments

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	appointmentRepo "github.com/m04kA/CPC-BookingService/internal/infra/storage/appointment"
	"github.com/m04kA/CPC-BookingService/internal/service/appointments/models"
)

// Service сервис для работы с записями на прием
type Service struct {
	appointmentRepo AppointmentRepository
	notifier        Notifier
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей.
// notifier может быть nil - тогда уведомления не отправляются.
func NewService(
	appointmentRepo AppointmentRepository,
	notifier Notifier,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		logger:          logger,
	}
}

// GetByID получает запись по ID
func (s *Service) GetByID(ctx context.Context, id int64) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%d", id)

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByID: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByID: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAppointment(appt), nil
}

// GetByRange получает записи за период с опциональным фильтром по статусу.
//
// Примеры использования:
// - Все записи недели: StartDate и EndDate указывают границы недели
// - Записи на дату: StartDate и EndDate указывают на одну дату
// - Только ожидающие подтверждения: указать Status = "pending"
func (s *Service) GetByRange(ctx context.Context, req *models.GetAppointmentsRequest) (*models.AppointmentListResponse, error) {
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		s.logger.Warn("GetByRange: endDate is before startDate")
		return nil, ErrInvalidTimeRange
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetByRange: invalid status filter: %v", err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.GetByFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetByRange: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByRange - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByRange: fetched %d appointments", len(appointments))
	return models.FromDomainAppointmentList(appointments), nil
}

// UpdateStatus обновляет статус записи с проверкой допустимости перехода.
//
// Допустимые переходы:
// - pending -> booked (подтверждение), pending -> cancelled
// - booked -> cancelled
// - fictitious -> booked (клиент "перехватывает" фиктивный слот через админа)
// - cancelled - терминальный статус
//
// При подтверждении (pending -> booked) клиенту отправляется письмо,
// если указан email. Ошибка отправки не откатывает смену статуса.
func (s *Service) UpdateStatus(ctx context.Context, id int64, req *models.UpdateStatusRequest) (*models.AppointmentResponse, error) {
	s.logger.Info("UpdateStatus: appointment id=%d, status=%s", id, req.Status)

	newStatus, err := models.ToDomainAppointmentStatus(req.Status)
	if err != nil {
		s.logger.Warn("UpdateStatus: invalid status=%s for appointment id=%d", req.Status, id)
		return nil, ErrInvalidStatus
	}

	appt, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("UpdateStatus: appointment id=%d not found", id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: repository error for appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	if !appt.CanTransitionTo(newStatus) {
		s.logger.Warn("UpdateStatus: transition %s -> %s is not allowed for appointment id=%d",
			appt.Status, newStatus, id)
		return nil, fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, appt.Status, newStatus)
	}

	if err := s.appointmentRepo.UpdateStatus(ctx, id, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("UpdateStatus: failed to update appointment id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: UpdateStatus - repository error: %v", ErrInternal, err)
	}

	confirmed := appt.Status == domain.StatusPending && newStatus == domain.StatusBooked
	appt.Status = newStatus

	// Уведомление - best effort: статус уже сменен
	if confirmed && s.notifier != nil && appt.ClientEmail != "" {
		if err := s.notifier.SendBookingConfirmation(ctx, appt); err != nil {
			s.logger.Error("UpdateStatus: failed to send confirmation for appointment id=%d: %v", id, err)
		} else {
			s.logger.Info("UpdateStatus: confirmation sent for appointment id=%d", id)
		}
	}

	s.logger.Info("UpdateStatus: appointment id=%d is now %s", id, newStatus)
	return models.FromDomainAppointment(appt), nil
}

// Delete физически удаляет запись.
// Используется администратором для чистки фиктивных и ошибочных записей.
func (s *Service) Delete(ctx context.Context, id int64) error {
	s.logger.Info("Delete: deleting appointment id=%d", id)

	if err := s.appointmentRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("Delete: appointment id=%d not found", id)
			return ErrAppointmentNotFound
		}
		s.logger.Error("Delete: repository error for appointment id=%d: %v", id, err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: appointment id=%d deleted", id)
	return nil
}
