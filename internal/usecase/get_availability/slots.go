package get_availability

import (
	"github.com/m04kA/CPC-BookingService/internal/domain"
	"github.com/m04kA/CPC-BookingService/pkg/types"
)

// generateTimeSlots генерирует список времен начала слотов на день.
// Слоты идут от начала рабочего дня с фиксированным шагом
// slotDuration + breakDuration; слот включается, только если сеанс
// длительностью sessionDuration целиком помещается до закрытия.
func generateTimeSlots(
	workingHours domain.WorkingHours,
	slotDuration int,
	breakDuration int,
	sessionDuration int,
) ([]types.TimeString, error) {
	stride := slotDuration + breakDuration

	allSlots := make([]types.TimeString, 0)

	// Нулевой шаг не двигает курсор - цикл не имел бы границы
	if slotDuration <= 0 || stride <= 0 {
		return allSlots, nil
	}
	currentSlot := workingHours.Start

	for currentSlot.IsBefore(workingHours.End) {
		// Проверяем, что сеанс не выходит за время закрытия
		sessionEnd, err := currentSlot.AddMinutes(sessionDuration)
		if err != nil {
			break
		}
		if sessionEnd.IsAfter(workingHours.End) {
			break
		}

		allSlots = append(allSlots, currentSlot)

		currentSlot, err = currentSlot.AddMinutes(stride)
		if err != nil {
			break
		}
	}

	return allSlots, nil
}

// tagSlots вычисляет занятость каждого слота по существующим записям.
//
// Занятый слот помечается статусом перекрывающей его записи
// (booked/pending/fictitious); набор вычисленных статусов одинаков
// для публичного клиента и администратора.
func tagSlots(
	slots []types.TimeString,
	sessionDuration int,
	appointments []*domain.Appointment,
) []Slot {
	result := make([]Slot, len(slots))

	for i, slotStart := range slots {
		slotEnd, _ := slotStart.AddMinutes(sessionDuration)

		occupying := findOverlappingAppointment(slotStart, slotEnd, appointments)

		slot := Slot{
			StartTime:       slotStart,
			EndTime:         slotEnd,
			DurationMinutes: sessionDuration,
			Available:       occupying == nil,
			Status:          domain.SlotStatusAvailable,
		}

		if occupying != nil {
			slot.Status = string(occupying.Status)
		}

		result[i] = slot
	}

	return result
}

// findOverlappingAppointment возвращает первую запись, пересекающуюся
// с интервалом слота, либо nil.
//
// Пересечение есть, только если интервалы действительно накладываются:
// начало записи СТРОГО раньше конца слота И конец записи СТРОГО позже
// начала слота. Граничащие интервалы (запись заканчивается ровно там,
// где начинается слот) пересечением не считаются.
func findOverlappingAppointment(slotStart, slotEnd types.TimeString, appointments []*domain.Appointment) *domain.Appointment {
	for _, appt := range appointments {
		// Отмененные записи слот не занимают
		if !appt.IsOccupying() {
			continue
		}

		apptStart := appt.StartTime
		apptEnd, err := appt.EndTime()
		if err != nil {
			continue
		}

		if apptStart.IsBefore(slotEnd) && apptEnd.IsAfter(slotStart) {
			return appt
		}
	}

	return nil
}

// sessionDurationFor выбирает длительность сеанса для запроса:
// явное переопределение, иначе удлиненный первый сеанс, иначе
// стандартная длительность слота из настроек.
func sessionDurationFor(req *Request, settings *domain.AppointmentSettings) int {
	if req.DurationMinutes != nil {
		return *req.DurationMinutes
	}
	if req.IsFirstTime {
		return domain.FirstSessionDurationMinutes
	}
	return settings.SlotDurationMinutes
}
