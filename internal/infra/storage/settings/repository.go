package settings

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/CPC-BookingService/internal/domain"
	"github.com/m04kA/CPC-BookingService/pkg/dbmetrics"
	"github.com/m04kA/CPC-BookingService/pkg/psqlbuilder"
)

// settingsRowID фиксированный ID единственной строки настроек.
// Таблица хранит ровно один документ (CHECK (id = 1) в схеме).
const settingsRowID = 1

// blockedRangeDTO представление диапазона блокировки в jsonb колонке
type blockedRangeDTO struct {
	ID        string  `json:"id"`
	StartDate string  `json:"startDate"` // YYYY-MM-DD
	EndDate   string  `json:"endDate"`   // YYYY-MM-DD
	Reason    *string `json:"reason,omitempty"`
}

// Repository репозиторий для работы с singleton-документом настроек
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория настроек
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get читает документ настроек.
// Возвращает ErrSettingsNotFound, если система еще не инициализирована.
func (r *Repository) Get(ctx context.Context) (*domain.AppointmentSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(
		"working_hours_start",
		"working_hours_end",
		"working_days",
		"slot_duration_minutes",
		"break_duration_minutes",
		"max_advance_booking_days",
		"fictional_booking_percentage",
		"blocked_date_ranges",
		"price_first_session",
		"price_follow_up_session",
		"created_at",
		"updated_at",
	).
		From("appointment_settings").
		Where(squirrel.Eq{"id": settingsRowID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	var s domain.AppointmentSettings
	var workingDays pq.Int64Array
	var blockedJSON []byte
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&s.WorkingHours.Start,
		&s.WorkingHours.End,
		&workingDays,
		&s.SlotDurationMinutes,
		&s.BreakDurationMinutes,
		&s.MaxAdvanceBookingDays,
		&s.FictionalBookingPercentage,
		&blockedJSON,
		&s.Prices.FirstSession,
		&s.Prices.FollowUpSession,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan settings: %v", ErrScanRow, err)
	}

	s.WorkingDays = make([]int, len(workingDays))
	for i, d := range workingDays {
		s.WorkingDays[i] = int(d)
	}

	s.BlockedDateRanges, err = unmarshalBlockedRanges(blockedJSON)
	if err != nil {
		return nil, err
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return &s, nil
}

// Upsert записывает документ настроек целиком.
// Создает строку, если ее еще нет; иначе полностью перезаписывает
// (last-writer-wins, слияние частичных обновлений делает сервисный слой).
func (r *Repository) Upsert(ctx context.Context, s *domain.AppointmentSettings) (*domain.AppointmentSettings, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	blockedJSON, err := marshalBlockedRanges(s.BlockedDateRanges)
	if err != nil {
		return nil, err
	}

	workingDays := make(pq.Int64Array, len(s.WorkingDays))
	for i, d := range s.WorkingDays {
		workingDays[i] = int64(d)
	}

	query, args, err := psqlbuilder.Insert("appointment_settings").
		Columns(
			"id",
			"working_hours_start",
			"working_hours_end",
			"working_days",
			"slot_duration_minutes",
			"break_duration_minutes",
			"max_advance_booking_days",
			"fictional_booking_percentage",
			"blocked_date_ranges",
			"price_first_session",
			"price_follow_up_session",
		).
		Values(
			settingsRowID,
			s.WorkingHours.Start,
			s.WorkingHours.End,
			workingDays,
			s.SlotDurationMinutes,
			s.BreakDurationMinutes,
			s.MaxAdvanceBookingDays,
			s.FictionalBookingPercentage,
			blockedJSON,
			s.Prices.FirstSession,
			s.Prices.FollowUpSession,
		).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			working_hours_start = EXCLUDED.working_hours_start,
			working_hours_end = EXCLUDED.working_hours_end,
			working_days = EXCLUDED.working_days,
			slot_duration_minutes = EXCLUDED.slot_duration_minutes,
			break_duration_minutes = EXCLUDED.break_duration_minutes,
			max_advance_booking_days = EXCLUDED.max_advance_booking_days,
			fictional_booking_percentage = EXCLUDED.fictional_booking_percentage,
			blocked_date_ranges = EXCLUDED.blocked_date_ranges,
			price_first_session = EXCLUDED.price_first_session,
			price_follow_up_session = EXCLUDED.price_follow_up_session,
			updated_at = NOW()
		RETURNING created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(&createdAt, &updatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	s.CreatedAt = createdAt.Time
	s.UpdatedAt = updatedAt.Time

	return s, nil
}

func marshalBlockedRanges(ranges []domain.BlockedDateRange) ([]byte, error) {
	dtos := make([]blockedRangeDTO, len(ranges))
	for i, r := range ranges {
		dtos[i] = blockedRangeDTO{
			ID:        r.ID,
			StartDate: r.StartDate.Format(domain.DateFormat),
			EndDate:   r.EndDate.Format(domain.DateFormat),
			Reason:    r.Reason,
		}
	}

	data, err := json.Marshal(dtos)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshal, err)
	}
	return data, nil
}

func unmarshalBlockedRanges(data []byte) ([]domain.BlockedDateRange, error) {
	if len(data) == 0 {
		return []domain.BlockedDateRange{}, nil
	}

	var dtos []blockedRangeDTO
	if err := json.Unmarshal(data, &dtos); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	ranges := make([]domain.BlockedDateRange, len(dtos))
	for i, dto := range dtos {
		start, err := time.ParseInLocation(domain.DateFormat, dto.StartDate, domain.BusinessLocation())
		if err != nil {
			return nil, fmt.Errorf("%w: bad startDate %q: %v", ErrMarshal, dto.StartDate, err)
		}
		end, err := time.ParseInLocation(domain.DateFormat, dto.EndDate, domain.BusinessLocation())
		if err != nil {
			return nil, fmt.Errorf("%w: bad endDate %q: %v", ErrMarshal, dto.EndDate, err)
		}
		ranges[i] = domain.BlockedDateRange{
			ID:        dto.ID,
			StartDate: start,
			EndDate:   end,
			Reason:    dto.Reason,
		}
	}

	return ranges, nil
}
