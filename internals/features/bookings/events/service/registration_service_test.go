package service

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripku_backend/internals/features/bookings/events/model"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gdb, mock
}

func eventRows(eventID uuid.UUID, spotTotal, spotLeft int, joinTill time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"event_id", "event_title", "event_spot_total", "event_spot_left",
		"event_date", "event_join_till",
	}).AddRow(eventID, "Rinjani Summit Trek", spotTotal, spotLeft, joinTill.Add(24*time.Hour), joinTill)
}

func registrationRows(regID, eventID, userID uuid.UUID, status string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"event_registration_id", "event_registration_event_id",
		"event_registration_user_id", "event_registration_status",
	}).AddRow(regID, eventID, userID, status)
}

func emptyRegistrationRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"event_registration_id"})
}

func TestJoinHappyPath(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()
	regID := uuid.New()
	joinTill := time.Now().Add(48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(eventRows(eventID, 10, 3, joinTill))
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WillReturnRows(emptyRegistrationRows())
	mock.ExpectExec(`UPDATE "events" SET "event_spot_left"=event_spot_left - 1 WHERE \(event_id =.+AND event_spot_left > 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "event_registrations"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WithArgs(eventID, userID, 1).
		WillReturnRows(registrationRows(regID, eventID, userID, model.RegistrationConfirmed))
	mock.ExpectCommit()

	reg, err := svc.Join(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationConfirmed, reg.EventRegistrationStatus)
	assert.Equal(t, eventID, reg.EventRegistrationEventID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinEventNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"event_id"}))
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrEventNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinRegistrationClosed(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	joinTill := time.Now().Add(-1 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(eventRows(eventID, 10, 5, joinTill))
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), eventID, uuid.New())
	assert.ErrorIs(t, err, ErrRegistrationClosed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinAlreadyRegistered(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()
	joinTill := time.Now().Add(48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(eventRows(eventID, 10, 5, joinTill))
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WillReturnRows(registrationRows(uuid.New(), eventID, userID, model.RegistrationConfirmed))
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), eventID, userID)
	assert.ErrorIs(t, err, ErrAlreadyRegistered)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinEventFull(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	joinTill := time.Now().Add(48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(eventRows(eventID, 10, 0, joinTill))
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WillReturnRows(emptyRegistrationRows())
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), eventID, uuid.New())
	assert.ErrorIs(t, err, ErrEventFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The snapshot says one spot is left, but the conditional decrement affects
// zero rows: a concurrent join won the race. The join must fail, not oversell.
func TestJoinLosesDecrementRace(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	joinTill := time.Now().Add(48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(eventRows(eventID, 10, 1, joinTill))
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WillReturnRows(emptyRegistrationRows())
	mock.ExpectExec(`UPDATE "events" SET "event_spot_left"=event_spot_left - 1 WHERE \(event_id =.+AND event_spot_left > 0\)`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err := svc.Join(context.Background(), eventID, uuid.New())
	assert.ErrorIs(t, err, ErrEventFull)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A previously cancelled registration is flipped back to confirmed through
// the keyed upsert; the row keeps its original primary key.
func TestJoinReactivatesCancelledRegistration(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()
	originalRegID := uuid.New()
	joinTill := time.Now().Add(48 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "events" WHERE event_id =.+FOR UPDATE`).
		WillReturnRows(eventRows(eventID, 10, 4, joinTill))
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WillReturnRows(registrationRows(originalRegID, eventID, userID, model.RegistrationCancelled))
	mock.ExpectExec(`UPDATE "events" SET "event_spot_left"=event_spot_left - 1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "event_registrations".+ON CONFLICT`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	// The reload must query by the natural key alone. A pk condition here
	// would carry the uuid generated for the insert attempt, which is not
	// the pk the reactivated row kept, and the reload would find nothing.
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =`).
		WithArgs(eventID, userID, 1).
		WillReturnRows(registrationRows(originalRegID, eventID, userID, model.RegistrationConfirmed))
	mock.ExpectCommit()

	reg, err := svc.Join(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, originalRegID, reg.EventRegistrationID)
	assert.Equal(t, model.RegistrationConfirmed, reg.EventRegistrationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRestoresSpot(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =.+FOR UPDATE`).
		WillReturnRows(registrationRows(uuid.New(), eventID, userID, model.RegistrationConfirmed))
	mock.ExpectExec(`UPDATE "event_registrations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "events" SET "event_spot_left"=event_spot_left \+ 1 WHERE event_id =`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reg, err := svc.Cancel(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationCancelled, reg.EventRegistrationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelIsIdempotentlyRejected(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =.+FOR UPDATE`).
		WillReturnRows(registrationRows(uuid.New(), eventID, userID, model.RegistrationCancelled))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), eventID, userID)
	assert.ErrorIs(t, err, ErrAlreadyCancelled)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelRegistrationNotFound(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =.+FOR UPDATE`).
		WillReturnRows(emptyRegistrationRows())
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, ErrRegistrationNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAttendedRequiresConfirmed(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =.+FOR UPDATE`).
		WillReturnRows(registrationRows(uuid.New(), eventID, userID, model.RegistrationCancelled))
	mock.ExpectRollback()

	_, err := svc.MarkAttended(context.Background(), eventID, userID)
	assert.ErrorIs(t, err, ErrNotConfirmed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkAttendedHappyPath(t *testing.T) {
	gdb, mock := newMockDB(t)
	svc := NewRegistrationService(gdb, nil)

	eventID := uuid.New()
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "event_registrations" WHERE event_registration_event_id =.+FOR UPDATE`).
		WillReturnRows(registrationRows(uuid.New(), eventID, userID, model.RegistrationConfirmed))
	mock.ExpectExec(`UPDATE "event_registrations" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	reg, err := svc.MarkAttended(context.Background(), eventID, userID)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationAttended, reg.EventRegistrationStatus)
	assert.NoError(t, mock.ExpectationsWereMet())
}
