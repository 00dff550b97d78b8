package slot

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-CounselingService/internal/domain"
	"github.com/m04kA/SMC-CounselingService/pkg/types"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return NewRepository(db), mock
}

func TestMarkBooked_AllSlotsReserved(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Условный UPDATE: бронируются только доступные и активные слоты врача
	mock.ExpectExec(regexp.QuoteMeta("UPDATE availability_slots SET status = $1, updated_at = NOW()")).
		WithArgs("booked", int64(11), int64(12), int64(13), int64(2), "available", true).
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.MarkBooked(context.Background(), 2, []int64{11, 12, 13})
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkBooked_LostRace_SlotNotAvailable(t *testing.T) {
	repo, mock := newMockRepository(t)

	// Конкурент успел забрать один слот: обновлено 2 строки из 3
	mock.ExpectExec(regexp.QuoteMeta("UPDATE availability_slots SET status = $1, updated_at = NOW()")).
		WithArgs("booked", int64(11), int64(12), int64(13), int64(2), "available", true).
		WillReturnResult(sqlmock.NewResult(0, 2))

	err := repo.MarkBooked(context.Background(), 2, []int64{11, 12, 13})
	require.ErrorIs(t, err, ErrSlotNotAvailable)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreate_DuplicateSlot(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO availability_slots")).
		WillReturnError(&pq.Error{Code: "23505"})

	slotDate, _ := time.Parse(domain.DateFormat, "2025-10-15")
	_, err := repo.Create(context.Background(), &domain.AvailabilitySlot{
		DoctorID:  2,
		SlotDate:  slotDate,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
		Status:    domain.SlotStatusAvailable,
		IsActive:  true,
	})
	require.ErrorIs(t, err, ErrDuplicateSlot)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByID_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, doctor_id, slot_date, start_time, end_time, status, is_active, created_at, updated_at FROM availability_slots")).
		WithArgs(int64(404)).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "doctor_id", "slot_date", "start_time", "end_time", "status", "is_active", "created_at", "updated_at",
		}))

	_, err := repo.GetByID(context.Background(), 404)
	require.ErrorIs(t, err, ErrSlotNotFound)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByIDs_OrderedByDateAndTime(t *testing.T) {
	repo, mock := newMockRepository(t)

	now := time.Now()
	firstDate, _ := time.Parse(domain.DateFormat, "2025-10-15")
	secondDate, _ := time.Parse(domain.DateFormat, "2025-10-22")

	rows := sqlmock.NewRows([]string{
		"id", "doctor_id", "slot_date", "start_time", "end_time", "status", "is_active", "created_at", "updated_at",
	}).
		AddRow(int64(11), int64(2), firstDate, "10:00", "11:00", "available", true, now, now).
		AddRow(int64(12), int64(2), secondDate, "10:00", "11:00", "available", true, now, now)

	mock.ExpectQuery(regexp.QuoteMeta("ORDER BY slot_date ASC, start_time ASC")).
		WithArgs(int64(11), int64(12)).
		WillReturnRows(rows)

	slots, err := repo.GetByIDs(context.Background(), []int64{11, 12})
	require.NoError(t, err)

	require.Len(t, slots, 2)
	assert.Equal(t, int64(11), slots[0].ID)
	assert.Equal(t, types.TimeString("10:00"), slots[0].StartTime)
	assert.Equal(t, domain.SlotStatusAvailable, slots[0].Status)
	assert.True(t, slots[0].SlotDate.Equal(firstDate))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdate_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("UPDATE availability_slots")).
		WillReturnResult(sqlmock.NewResult(0, 0))

	slotDate, _ := time.Parse(domain.DateFormat, "2025-10-15")
	err := repo.Update(context.Background(), &domain.AvailabilitySlot{
		ID:        404,
		SlotDate:  slotDate,
		StartTime: types.TimeString("10:00"),
		EndTime:   types.TimeString("11:00"),
		Status:    domain.SlotStatusAvailable,
		IsActive:  true,
	})
	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestDelete_Success(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM availability_slots")).
		WithArgs(int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Delete(context.Background(), 11)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
