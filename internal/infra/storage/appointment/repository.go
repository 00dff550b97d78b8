package appointment

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/dbmetrics"
	"github.com/m04kA/SMC-CounselingService/pkg/psqlbuilder"
)

// Repository репозиторий для работы со встречами
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория встреч
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// CreateBatch создает пачку встреч одним INSERT.
// Встречи создаются только пакетно: при создании заказа с выбранными слотами
// либо при подтверждении заказа. Вызывается строго внутри транзакции,
// открытой вызывающим usecase-ом.
func (r *Repository) CreateBatch(ctx context.Context, appointments []*domain.Appointment) ([]*domain.Appointment, error) {
	if len(appointments) == 0 {
		return nil, ErrEmptyBatch
	}

	executor := dbmetrics.GetExecutor(ctx, r.db)

	insertBuilder := psqlbuilder.Insert("appointments").
		Columns(
			"order_id",
			"slot_id",
			"session_number",
			"scheduled_at",
			"status",
			"notes",
			"completion_notes",
		)

	for _, a := range appointments {
		insertBuilder = insertBuilder.Values(
			a.OrderID,
			a.SlotID,
			a.SessionNumber,
			a.ScheduledAt,
			a.Status,
			a.Notes,
			a.CompletionNotes,
		)
	}

	query, args, err := insertBuilder.
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - build insert query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - execute insert: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	// RETURNING отдает строки в порядке вставки
	i := 0
	for rows.Next() {
		if i >= len(appointments) {
			return nil, fmt.Errorf("%w: CreateBatch - unexpected extra row", ErrScanRow)
		}

		var createdAt, updatedAt sql.NullTime
		if err := rows.Scan(&appointments[i].ID, &createdAt, &updatedAt); err != nil {
			return nil, fmt.Errorf("%w: CreateBatch - scan returned row: %v", ErrScanRow, err)
		}

		appointments[i].CreatedAt = createdAt.Time
		appointments[i].UpdatedAt = updatedAt.Time
		i++
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: CreateBatch - rows error: %v", ErrScanRow, err)
	}

	if i != len(appointments) {
		return nil, fmt.Errorf("%w: CreateBatch - inserted %d of %d rows", ErrExecQuery, i, len(appointments))
	}

	return appointments, nil
}

// GetByID получает встречу по ID.
// Внутри транзакции блокирует строку (FOR UPDATE).
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectAppointments().
		Where(squirrel.Eq{"a.id": id})

	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	var a domain.Appointment
	var createdAt, updatedAt sql.NullTime

	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&a.ID,
		&a.OrderID,
		&a.SlotID,
		&a.SessionNumber,
		&a.ScheduledAt,
		&a.Status,
		&a.Notes,
		&a.CompletionNotes,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, ErrAppointmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan appointment: %v", ErrScanRow, err)
	}

	a.CreatedAt = createdAt.Time
	a.UpdatedAt = updatedAt.Time

	return &a, nil
}

// GetByOrderID получает все встречи заказа в порядке номеров сессий
func (r *Repository) GetByOrderID(ctx context.Context, orderID int64) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := selectAppointments().
		Where(squirrel.Eq{"a.order_id": orderID}).
		OrderBy("a.session_number ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByOrderID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// CountByOrderID подсчитывает количество встреч заказа.
// Используется как guard идемпотентности при подтверждении заказа.
func (r *Repository) CountByOrderID(ctx context.Context, orderID int64) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByOrderID - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// CountByOrderAndStatus подсчитывает встречи заказа в указанном статусе.
// Используется consistency-сервисом для пересчёта агрегатов.
func (r *Repository) CountByOrderAndStatus(ctx context.Context, orderID int64, status domain.AppointmentStatus) (int, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("COUNT(*)").
		From("appointments").
		Where(squirrel.Eq{"order_id": orderID}).
		Where(squirrel.Eq{"status": status}).
		ToSql()

	if err != nil {
		return 0, fmt.Errorf("%w: CountByOrderAndStatus - build select query: %v", ErrBuildQuery, err)
	}

	var count int
	if err := executor.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("%w: CountByOrderAndStatus - scan count: %v", ErrScanRow, err)
	}

	return count, nil
}

// UpdateStatus обновляет статус встречи и, опционально, заметки
func (r *Repository) UpdateStatus(ctx context.Context, id int64, status domain.AppointmentStatus, notes, completionNotes *string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	updateBuilder := psqlbuilder.Update("appointments").
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id})

	if notes != nil {
		updateBuilder = updateBuilder.Set("notes", *notes)
	}
	if completionNotes != nil {
		updateBuilder = updateBuilder.Set("completion_notes", *completionNotes)
	}

	query, args, err := updateBuilder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateStatus - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// Reschedule переносит встречу на новое время и помечает её rescheduled
func (r *Repository) Reschedule(ctx context.Context, id int64, scheduledAt time.Time, status domain.AppointmentStatus) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("appointments").
		Set("scheduled_at", scheduledAt).
		Set("status", status).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reschedule - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reschedule - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reschedule - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrAppointmentNotFound
	}

	return nil
}

// GetSlotIDsByOrderID возвращает ID слотов, привязанных к встречам заказа.
// Используется при каскадном удалении заказа для освобождения слотов.
func (r *Repository) GetSlotIDsByOrderID(ctx context.Context, orderID int64) ([]int64, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("slot_id").
		From("appointments").
		Where(squirrel.Eq{"order_id": orderID}).
		Where(squirrel.NotEq{"slot_id": nil}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDsByOrderID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDsByOrderID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slotIDs := make([]int64, 0)
	for rows.Next() {
		var slotID int64
		if err := rows.Scan(&slotID); err != nil {
			return nil, fmt.Errorf("%w: GetSlotIDsByOrderID - scan slot_id: %v", ErrScanRow, err)
		}
		slotIDs = append(slotIDs, slotID)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetSlotIDsByOrderID - rows error: %v", ErrScanRow, err)
	}

	return slotIDs, nil
}

// ListWithFilter получает встречи с гибкой фильтрацией.
// Фильтры по врачу и клиенту применяются через join с таблицей заказов.
// Выборка отсортирована по времени встречи, затем по дате создания.
func (r *Repository) ListWithFilter(ctx context.Context, filter domain.AppointmentFilter) ([]*domain.Appointment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := selectAppointments()

	// Join с заказами нужен только для фильтров по врачу/клиенту
	if filter.DoctorID != nil || filter.ClientID != nil {
		selectBuilder = selectBuilder.Join("orders o ON o.id = a.order_id")
	}
	if filter.DoctorID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.doctor_id": *filter.DoctorID})
	}
	if filter.ClientID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"o.client_id": *filter.ClientID})
	}
	if filter.OrderID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.order_id": *filter.OrderID})
	}
	if filter.ScheduledFrom != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"a.scheduled_at": *filter.ScheduledFrom})
	}
	if filter.ScheduledTo != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"a.scheduled_at": *filter.ScheduledTo})
	}
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"a.status": *filter.Status})
	}

	selectBuilder = selectBuilder.OrderBy("a.scheduled_at ASC, a.id ASC")

	if filter.Page != nil {
		page := *filter.Page
		page.Normalize()
		selectBuilder = selectBuilder.
			Limit(uint64(page.Limit)).
			Offset(uint64(page.Offset()))
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanAppointments(rows)
}

// selectAppointments базовый SELECT по таблице встреч (алиас a)
func selectAppointments() squirrel.SelectBuilder {
	return psqlbuilder.Select(
		"a.id",
		"a.order_id",
		"a.slot_id",
		"a.session_number",
		"a.scheduled_at",
		"a.status",
		"a.notes",
		"a.completion_notes",
		"a.created_at",
		"a.updated_at",
	).From("appointments a")
}

// scanAppointments сканирует результаты запроса в слайс встреч
func scanAppointments(rows *sql.Rows) ([]*domain.Appointment, error) {
	appointments := make([]*domain.Appointment, 0)

	for rows.Next() {
		var a domain.Appointment
		var createdAt, updatedAt sql.NullTime

		err := rows.Scan(
			&a.ID,
			&a.OrderID,
			&a.SlotID,
			&a.SessionNumber,
			&a.ScheduledAt,
			&a.Status,
			&a.Notes,
			&a.CompletionNotes,
			&createdAt,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("%w: scanAppointments - scan row: %v", ErrScanRow, err)
		}

		a.CreatedAt = createdAt.Time
		a.UpdatedAt = updatedAt.Time

		appointments = append(appointments, &a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanAppointments - rows error: %v", ErrScanRow, err)
	}

	return appointments, nil
}
