package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripku_backend/internals/features/bookings/calls/model"
	notifyModel "tripku_backend/internals/features/home/notifications/model"
	notifyService "tripku_backend/internals/features/home/notifications/service"
	"tripku_backend/internals/helpers/calendar"
)

var (
	ErrCallNotFound         = errors.New("call not found")
	ErrCallStartNotFuture   = errors.New("call start time must be in the future")
	ErrCallEndBeforeStart   = errors.New("call end time must be after start time")
	ErrCallTimeConflict     = errors.New("a call is already scheduled at this time")
	ErrCallNotReschedulable = errors.New("only scheduled calls can be rescheduled")
	ErrCallNotCompletable   = errors.New("only scheduled calls can be completed")
	ErrCallAlreadyCompleted = errors.New("completed calls cannot be cancelled")
)

const defaultCancelReason = "No reason provided"

// Gateway is the slice of the calendar client the service needs. Every
// method may fail; the service treats all failures as degradation, never as
// a reason to fail the call operation itself.
type Gateway interface {
	CreateEvent(ctx context.Context, in calendar.EventInput) (*calendar.EventResult, error)
	UpdateEvent(ctx context.Context, id string, in calendar.EventInput) error
	DeleteEvent(ctx context.Context, id string) error
}

// CallService owns the single-track scheduling invariant: among calls with
// status=scheduled, no two intervals [start, end) overlap. The conflict
// check and the insert/update run in one SERIALIZABLE transaction; a plain
// read-committed count-then-insert would let two racing schedules both see
// zero conflicts and both commit. Postgres aborts the losing transaction
// with 40001, which surfaces as ErrCallTimeConflict.
type CallService struct {
	DB                 *gorm.DB
	Calendar           Gateway
	Notifier           *notifyService.Dispatcher
	DefaultMeetingLink string
}

func NewCallService(db *gorm.DB, cal Gateway, notifier *notifyService.Dispatcher, defaultLink string) *CallService {
	return &CallService{
		DB:                 db,
		Calendar:           cal,
		Notifier:           notifier,
		DefaultMeetingLink: defaultLink,
	}
}

type ScheduleInput struct {
	StartTime   time.Time
	EndTime     *time.Time
	MeetingLink string
	Topic       string
	Notes       string
}

// NormalizeWindow applies the default duration and validates ordering.
func NormalizeWindow(start time.Time, end *time.Time, now time.Time) (time.Time, error) {
	if !start.After(now) {
		return time.Time{}, ErrCallStartNotFuture
	}
	e := start.Add(model.DefaultCallDuration)
	if end != nil {
		e = *end
	}
	if !e.After(start) {
		return time.Time{}, ErrCallEndBeforeStart
	}
	return e, nil
}

// findConflict reports whether any other scheduled call overlaps
// [start, end). Half-open semantics: an existing call ending exactly at
// `start`, or starting exactly at `end`, is NOT a conflict, so back-to-back
// calls are allowed.
func findConflict(tx *gorm.DB, start, end time.Time, excludeID uuid.UUID) (bool, error) {
	var count int64
	q := tx.Model(&model.TripPlanningCallModel{}).
		Where("call_status = ?", model.CallScheduled).
		Where("call_start_time < ? AND call_end_time > ?", end, start)
	if excludeID != uuid.Nil {
		q = q.Where("call_id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, fmt.Errorf("conflict check: %w", err)
	}
	return count > 0, nil
}

// serializableTx keeps the conflict check and the write atomic under
// concurrency; see the CallService doc.
var serializableTx = &sql.TxOptions{Isolation: sql.LevelSerializable}

func isSerializationFailure(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "40001"
}

// Schedule books a new trip-planning call. When no meeting link is supplied
// it asks the calendar provider for one; on any calendar failure it falls
// back to the configured default link instead of failing the operation.
func (s *CallService) Schedule(ctx context.Context, adventurerID uuid.UUID, in ScheduleInput) (*model.TripPlanningCallModel, error) {
	end, err := NormalizeWindow(in.StartTime, in.EndTime, time.Now())
	if err != nil {
		return nil, err
	}

	meetingLink := in.MeetingLink
	var calendarEventID *string
	if meetingLink == "" {
		res, calErr := s.Calendar.CreateEvent(ctx, calendar.EventInput{
			Summary:     "Trip planning call",
			Description: in.Topic,
			StartTime:   in.StartTime,
			EndTime:     end,
		})
		if calErr != nil {
			log.Printf("[CallService] calendar create failed, using default link: %v", calErr)
			meetingLink = s.DefaultMeetingLink
		} else {
			meetingLink = res.MeetingLink
			if meetingLink == "" {
				meetingLink = s.DefaultMeetingLink
			}
			if res.ID != "" {
				id := res.ID
				calendarEventID = &id
			}
		}
	}

	call := model.TripPlanningCallModel{
		CallID:              uuid.New(),
		CallAdventurerID:    adventurerID,
		CallTopic:           in.Topic,
		CallNotes:           in.Notes,
		CallStartTime:       in.StartTime,
		CallEndTime:         end,
		CallStatus:          model.CallScheduled,
		CallMeetingLink:     meetingLink,
		CallCalendarEventID: calendarEventID,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		conflict, err := findConflict(tx, call.CallStartTime, call.CallEndTime, uuid.Nil)
		if err != nil {
			return err
		}
		if conflict {
			return ErrCallTimeConflict
		}
		if err := tx.Create(&call).Error; err != nil {
			return fmt.Errorf("create call: %w", err)
		}
		return nil
	}, serializableTx)
	if err != nil {
		if isSerializationFailure(err) {
			err = ErrCallTimeConflict
		}
		// The calendar event, if one was created, is now orphaned; best
		// effort cleanup so the shared calendar stays consistent.
		if calendarEventID != nil {
			if delErr := s.Calendar.DeleteEvent(ctx, *calendarEventID); delErr != nil {
				log.Printf("[CallService] orphan calendar event %s cleanup failed: %v", *calendarEventID, delErr)
			}
		}
		return nil, err
	}

	// Ops inbox, not the adventurer: a new call needs an agent assigned.
	s.Notifier.SendAsync(nil, notifyModel.KindCallScheduled,
		"New trip-planning call",
		fmt.Sprintf("A call was scheduled for %s.", call.CallStartTime.Format(time.RFC3339)),
		map[string]any{
			"call_id":       call.CallID,
			"adventurer_id": adventurerID,
			"start_time":    call.CallStartTime,
			"end_time":      call.CallEndTime,
		})

	return &call, nil
}

// Reschedule moves a scheduled call to a new window, re-validating the
// overlap invariant against every other scheduled call.
func (s *CallService) Reschedule(ctx context.Context, callID uuid.UUID, newStart time.Time, newEnd *time.Time) (*model.TripPlanningCallModel, error) {
	end, err := NormalizeWindow(newStart, newEnd, time.Now())
	if err != nil {
		return nil, err
	}

	var call model.TripPlanningCallModel
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("call_id = ?", callID).
			First(&call).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCallNotFound
			}
			return fmt.Errorf("lock call: %w", err)
		}
		if call.CallStatus != model.CallScheduled {
			return ErrCallNotReschedulable
		}

		conflict, err := findConflict(tx, newStart, end, callID)
		if err != nil {
			return err
		}
		if conflict {
			return ErrCallTimeConflict
		}

		if err := tx.Model(&call).Updates(map[string]any{
			"call_start_time": newStart,
			"call_end_time":   end,
		}).Error; err != nil {
			return fmt.Errorf("reschedule call: %w", err)
		}
		call.CallStartTime = newStart
		call.CallEndTime = end
		return nil
	}, serializableTx)
	if err != nil {
		if isSerializationFailure(err) {
			return nil, ErrCallTimeConflict
		}
		return nil, err
	}

	if call.CallCalendarEventID != nil {
		if calErr := s.Calendar.UpdateEvent(ctx, *call.CallCalendarEventID, calendar.EventInput{
			Summary:   "Trip planning call",
			StartTime: newStart,
			EndTime:   end,
		}); calErr != nil {
			log.Printf("[CallService] calendar update for call %s failed: %v", callID, calErr)
		}
	}

	s.Notifier.SendAsync(&call.CallAdventurerID, notifyModel.KindCallRescheduled,
		"Call rescheduled",
		fmt.Sprintf("Your trip-planning call was moved to %s.", newStart.Format(time.RFC3339)),
		map[string]any{"call_id": call.CallID, "start_time": newStart, "end_time": end})

	return &call, nil
}

// Cancel cancels a call unless it has already been completed.
func (s *CallService) Cancel(ctx context.Context, callID uuid.UUID, reason string) (*model.TripPlanningCallModel, error) {
	if reason == "" {
		reason = defaultCancelReason
	}

	var call model.TripPlanningCallModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("call_id = ?", callID).
			First(&call).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCallNotFound
			}
			return fmt.Errorf("lock call: %w", err)
		}
		if call.CallStatus == model.CallCompleted {
			return ErrCallAlreadyCompleted
		}

		if err := tx.Model(&call).Updates(map[string]any{
			"call_status":        model.CallCancelled,
			"call_cancel_reason": reason,
		}).Error; err != nil {
			return fmt.Errorf("cancel call: %w", err)
		}
		call.CallStatus = model.CallCancelled
		call.CallCancelReason = &reason
		return nil
	})
	if err != nil {
		return nil, err
	}

	if call.CallCalendarEventID != nil {
		if calErr := s.Calendar.DeleteEvent(ctx, *call.CallCalendarEventID); calErr != nil {
			log.Printf("[CallService] calendar delete for call %s failed: %v", callID, calErr)
		}
	}

	s.Notifier.SendAsync(&call.CallAdventurerID, notifyModel.KindCallCancelled,
		"Call cancelled",
		fmt.Sprintf("Your trip-planning call was cancelled. Reason: %s", reason),
		map[string]any{"call_id": call.CallID, "reason": reason})

	return &call, nil
}

// MarkCompleted transitions a scheduled call to completed.
func (s *CallService) MarkCompleted(ctx context.Context, callID uuid.UUID) (*model.TripPlanningCallModel, error) {
	var call model.TripPlanningCallModel
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("call_id = ?", callID).
			First(&call).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrCallNotFound
			}
			return fmt.Errorf("lock call: %w", err)
		}
		if call.CallStatus != model.CallScheduled {
			return ErrCallNotCompletable
		}

		if err := tx.Model(&call).
			Update("call_status", model.CallCompleted).Error; err != nil {
			return fmt.Errorf("complete call: %w", err)
		}
		call.CallStatus = model.CallCompleted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &call, nil
}

// ExpirePastCalls sweeps every scheduled call whose start time has passed to
// expired and returns how many were transitioned.
func (s *CallService) ExpirePastCalls(ctx context.Context) (int64, error) {
	res := s.DB.WithContext(ctx).
		Model(&model.TripPlanningCallModel{}).
		Where("call_status = ? AND call_start_time < ?", model.CallScheduled, time.Now()).
		Update("call_status", model.CallExpired)
	if res.Error != nil {
		return 0, fmt.Errorf("expire sweep: %w", res.Error)
	}
	return res.RowsAffected, nil
}
