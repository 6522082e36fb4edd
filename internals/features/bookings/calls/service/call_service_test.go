package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"tripku_backend/internals/features/bookings/calls/model"
	"tripku_backend/internals/helpers/calendar"
)

const testDefaultLink = "https://meet.example.com/default"

type stubGateway struct {
	createResult *calendar.EventResult
	createErr    error
	createCalls  int
	updateErr    error
	updateCalls  int
	deleteErr    error
	deletedIDs   []string
}

func (g *stubGateway) CreateEvent(ctx context.Context, in calendar.EventInput) (*calendar.EventResult, error) {
	g.createCalls++
	if g.createErr != nil {
		return nil, g.createErr
	}
	return g.createResult, nil
}

func (g *stubGateway) UpdateEvent(ctx context.Context, id string, in calendar.EventInput) error {
	g.updateCalls++
	return g.updateErr
}

func (g *stubGateway) DeleteEvent(ctx context.Context, id string) error {
	g.deletedIDs = append(g.deletedIDs, id)
	return g.deleteErr
}

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

func newTestService(t *testing.T, gw Gateway) (*CallService, sqlmock.Sqlmock) {
	gdb, mock := newMockDB(t)
	return NewCallService(gdb, gw, nil, testDefaultLink), mock
}

func countRows(n int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"count"}).AddRow(n)
}

func callRows(callID, adventurerID uuid.UUID, start, end time.Time, status string, calendarEventID *string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"call_id", "call_adventurer_id", "call_start_time", "call_end_time",
		"call_status", "call_meeting_link", "call_calendar_event_id",
	}).AddRow(callID, adventurerID, start, end, status, "https://meet.example.com/x", calendarEventID)
}

func TestNormalizeWindow(t *testing.T) {
	now := time.Now()

	t.Run("defaults to 30 minutes", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		end, err := NormalizeWindow(start, nil, now)
		require.NoError(t, err)
		assert.Equal(t, start.Add(30*time.Minute), end)
	})

	t.Run("explicit end wins", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		explicit := start.Add(45 * time.Minute)
		end, err := NormalizeWindow(start, &explicit, now)
		require.NoError(t, err)
		assert.Equal(t, explicit, end)
	})

	t.Run("start in the past rejected", func(t *testing.T) {
		_, err := NormalizeWindow(now.Add(-time.Minute), nil, now)
		assert.ErrorIs(t, err, ErrCallStartNotFuture)
	})

	t.Run("start equal to now rejected", func(t *testing.T) {
		_, err := NormalizeWindow(now, nil, now)
		assert.ErrorIs(t, err, ErrCallStartNotFuture)
	})

	t.Run("end before start rejected", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		bad := start.Add(-10 * time.Minute)
		_, err := NormalizeWindow(start, &bad, now)
		assert.ErrorIs(t, err, ErrCallEndBeforeStart)
	})

	t.Run("zero-length window rejected", func(t *testing.T) {
		start := now.Add(2 * time.Hour)
		_, err := NormalizeWindow(start, &start, now)
		assert.ErrorIs(t, err, ErrCallEndBeforeStart)
	})
}

func TestScheduleHappyPathWithCalendar(t *testing.T) {
	gw := &stubGateway{createResult: &calendar.EventResult{ID: "cal-123", MeetingLink: "https://meet.example.com/abc"}}
	svc, mock := newTestService(t, gw)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trip_planning_calls"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	call, err := svc.Schedule(context.Background(), uuid.New(), ScheduleInput{
		StartTime: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, gw.createCalls)
	assert.Equal(t, "https://meet.example.com/abc", call.CallMeetingLink)
	require.NotNil(t, call.CallCalendarEventID)
	assert.Equal(t, "cal-123", *call.CallCalendarEventID)
	assert.Equal(t, model.CallScheduled, call.CallStatus)
	assert.Equal(t, call.CallStartTime.Add(30*time.Minute), call.CallEndTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Calendar being down must never block scheduling: the call still goes
// through with the configured default meeting link.
func TestScheduleFallsBackWhenCalendarFails(t *testing.T) {
	gw := &stubGateway{createErr: errors.New("calendar down")}
	svc, mock := newTestService(t, gw)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trip_planning_calls"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	call, err := svc.Schedule(context.Background(), uuid.New(), ScheduleInput{
		StartTime: time.Now().Add(2 * time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, testDefaultLink, call.CallMeetingLink)
	assert.Nil(t, call.CallCalendarEventID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleWithProvidedLinkSkipsCalendar(t *testing.T) {
	gw := &stubGateway{}
	svc, mock := newTestService(t, gw)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trip_planning_calls"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	call, err := svc.Schedule(context.Background(), uuid.New(), ScheduleInput{
		StartTime:   time.Now().Add(2 * time.Hour),
		MeetingLink: "https://zoom.example.com/custom",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, gw.createCalls)
	assert.Equal(t, "https://zoom.example.com/custom", call.CallMeetingLink)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A conflicting window aborts the transaction, nothing is inserted and the
// already-created calendar event is cleaned up.
func TestScheduleConflictRejectedAndCalendarCleanedUp(t *testing.T) {
	gw := &stubGateway{createResult: &calendar.EventResult{ID: "cal-456", MeetingLink: "https://meet.example.com/abc"}}
	svc, mock := newTestService(t, gw)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	_, err := svc.Schedule(context.Background(), uuid.New(), ScheduleInput{
		StartTime: time.Now().Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrCallTimeConflict)
	assert.Equal(t, []string{"cal-456"}, gw.deletedIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Two racing schedules can both count zero conflicts before either commits.
// At SERIALIZABLE Postgres aborts the loser with 40001 at commit; that must
// read as a time conflict, and the loser's calendar event must be cleaned up.
func TestScheduleSerializationAbortReadsAsConflict(t *testing.T) {
	gw := &stubGateway{createResult: &calendar.EventResult{ID: "cal-777", MeetingLink: "https://meet.example.com/abc"}}
	svc, mock := newTestService(t, gw)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`INSERT INTO "trip_planning_calls"`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})

	_, err := svc.Schedule(context.Background(), uuid.New(), ScheduleInput{
		StartTime: time.Now().Add(2 * time.Hour),
	})
	assert.ErrorIs(t, err, ErrCallTimeConflict)
	assert.Equal(t, []string{"cal-777"}, gw.deletedIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestScheduleRejectsPastStart(t *testing.T) {
	svc, mock := newTestService(t, &stubGateway{})

	_, err := svc.Schedule(context.Background(), uuid.New(), ScheduleInput{
		StartTime: time.Now().Add(-time.Hour),
	})
	assert.ErrorIs(t, err, ErrCallStartNotFuture)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleConflictKeepsWindow(t *testing.T) {
	gw := &stubGateway{}
	svc, mock := newTestService(t, gw)

	callID := uuid.New()
	start := time.Now().Add(3 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallScheduled, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(1))
	mock.ExpectRollback()

	_, err := svc.Reschedule(context.Background(), callID, time.Now().Add(5*time.Hour), nil)
	assert.ErrorIs(t, err, ErrCallTimeConflict)
	assert.Equal(t, 0, gw.updateCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleOnlyScheduledCalls(t *testing.T) {
	svc, mock := newTestService(t, &stubGateway{})

	callID := uuid.New()
	start := time.Now().Add(-2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallCompleted, nil))
	mock.ExpectRollback()

	_, err := svc.Reschedule(context.Background(), callID, time.Now().Add(5*time.Hour), nil)
	assert.ErrorIs(t, err, ErrCallNotReschedulable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleHappyPathUpdatesCalendar(t *testing.T) {
	gw := &stubGateway{}
	svc, mock := newTestService(t, gw)

	callID := uuid.New()
	calEventID := "cal-789"
	start := time.Now().Add(3 * time.Hour)
	newStart := time.Now().Add(6 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallScheduled, &calEventID))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`UPDATE "trip_planning_calls" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	call, err := svc.Reschedule(context.Background(), callID, newStart, nil)
	require.NoError(t, err)
	assert.Equal(t, newStart, call.CallStartTime)
	assert.Equal(t, newStart.Add(30*time.Minute), call.CallEndTime)
	assert.Equal(t, 1, gw.updateCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRescheduleSerializationAbortReadsAsConflict(t *testing.T) {
	gw := &stubGateway{}
	svc, mock := newTestService(t, gw)

	callID := uuid.New()
	start := time.Now().Add(3 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallScheduled, nil))
	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls"`).
		WillReturnRows(countRows(0))
	mock.ExpectExec(`UPDATE "trip_planning_calls" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit().WillReturnError(&pgconn.PgError{Code: "40001"})

	_, err := svc.Reschedule(context.Background(), callID, time.Now().Add(6*time.Hour), nil)
	assert.ErrorIs(t, err, ErrCallTimeConflict)
	assert.Equal(t, 0, gw.updateCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelCompletedCallRejected(t *testing.T) {
	svc, mock := newTestService(t, &stubGateway{})

	callID := uuid.New()
	start := time.Now().Add(-2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallCompleted, nil))
	mock.ExpectRollback()

	_, err := svc.Cancel(context.Background(), callID, "changed my mind")
	assert.ErrorIs(t, err, ErrCallAlreadyCompleted)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCancelDefaultsReasonAndDeletesCalendarEvent(t *testing.T) {
	gw := &stubGateway{}
	svc, mock := newTestService(t, gw)

	callID := uuid.New()
	calEventID := "cal-321"
	start := time.Now().Add(3 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallScheduled, &calEventID))
	mock.ExpectExec(`UPDATE "trip_planning_calls" SET`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	call, err := svc.Cancel(context.Background(), callID, "")
	require.NoError(t, err)
	assert.Equal(t, model.CallCancelled, call.CallStatus)
	require.NotNil(t, call.CallCancelReason)
	assert.Equal(t, defaultCancelReason, *call.CallCancelReason)
	assert.Equal(t, []string{"cal-321"}, gw.deletedIDs)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMarkCompletedOnlyScheduled(t *testing.T) {
	svc, mock := newTestService(t, &stubGateway{})

	callID := uuid.New()
	start := time.Now().Add(-2 * time.Hour)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .+ FROM "trip_planning_calls" WHERE call_id =.+FOR UPDATE`).
		WillReturnRows(callRows(callID, uuid.New(), start, start.Add(30*time.Minute), model.CallExpired, nil))
	mock.ExpectRollback()

	_, err := svc.MarkCompleted(context.Background(), callID)
	assert.ErrorIs(t, err, ErrCallNotCompletable)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The overlap predicate is half-open: an existing call must satisfy
// start < :end AND end > :start to conflict, so touching boundaries
// (back-to-back calls) pass. The argument order pins that down.
func TestFindConflictPredicateArgs(t *testing.T) {
	gdb, mock := newMockDB(t)

	start := time.Now().Add(2 * time.Hour)
	end := start.Add(30 * time.Minute)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls" WHERE call_status = \$1 AND \(?call_start_time < \$2 AND call_end_time > \$3\)?`).
		WithArgs(model.CallScheduled, end, start).
		WillReturnRows(countRows(0))

	conflict, err := findConflict(gdb, start, end, uuid.Nil)
	require.NoError(t, err)
	assert.False(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindConflictExcludesSelf(t *testing.T) {
	gdb, mock := newMockDB(t)

	callID := uuid.New()
	start := time.Now().Add(2 * time.Hour)
	end := start.Add(30 * time.Minute)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "trip_planning_calls" WHERE call_status = \$1 AND \(?call_start_time < \$2 AND call_end_time > \$3\)? AND call_id <> \$4`).
		WithArgs(model.CallScheduled, end, start, callID).
		WillReturnRows(countRows(0))

	conflict, err := findConflict(gdb, start, end, callID)
	require.NoError(t, err)
	assert.False(t, conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// The sweep must only touch scheduled calls whose start time has passed.
func TestExpirePastCallsPredicate(t *testing.T) {
	svc, mock := newTestService(t, &stubGateway{})

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "trip_planning_calls" SET .+ WHERE call_status = \$3 AND call_start_time < \$4`).
		WithArgs(model.CallExpired, sqlmock.AnyArg(), model.CallScheduled, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	_, err := svc.ExpirePastCalls(context.Background())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestExpirePastCalls(t *testing.T) {
	svc, mock := newTestService(t, &stubGateway{})

	mock.ExpectBegin()
	mock.ExpectExec(`UPDATE "trip_planning_calls" SET`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectCommit()

	count, err := svc.ExpirePastCalls(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), count)
	assert.NoError(t, mock.ExpectationsWereMet())
}
