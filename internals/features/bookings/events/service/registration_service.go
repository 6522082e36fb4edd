package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"tripku_backend/internals/features/bookings/events/model"
	notifyModel "tripku_backend/internals/features/home/notifications/model"
	notifyService "tripku_backend/internals/features/home/notifications/service"
)

// Domain errors surfaced to controllers. Anything else is a 500.
var (
	ErrEventNotFound        = errors.New("event not found")
	ErrEventFull            = errors.New("event is fully booked")
	ErrRegistrationClosed   = errors.New("registration for this event has closed")
	ErrAlreadyRegistered    = errors.New("already registered for this event")
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrAlreadyCancelled     = errors.New("registration is already cancelled")
	ErrNotConfirmed         = errors.New("registration is not in confirmed status")
)

// RegistrationService owns the capacity invariant: the number of confirmed
// registrations never exceeds the event's spot total. The spot check, the
// counter decrement and the registration upsert run inside one transaction
// with the event row locked FOR UPDATE, so two concurrent joins racing for
// the last spot are serialized by the database and only one wins.
type RegistrationService struct {
	DB       *gorm.DB
	Notifier *notifyService.Dispatcher
}

func NewRegistrationService(db *gorm.DB, notifier *notifyService.Dispatcher) *RegistrationService {
	return &RegistrationService{DB: db, Notifier: notifier}
}

// Join registers a user for an event, reusing a previously cancelled row for
// the same (user, event) pair instead of inserting a duplicate.
func (s *RegistrationService) Join(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel
	var event model.EventModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Lock the event row; soft-deleted events are invisible here.
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_id = ?", eventID).
			First(&event).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrEventNotFound
			}
			return fmt.Errorf("lock event: %w", err)
		}

		if event.IsExpired(time.Now()) {
			return ErrRegistrationClosed
		}

		var existing model.EventRegistrationModel
		err := tx.Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
			First(&existing).Error
		switch {
		case err == nil:
			if existing.EventRegistrationStatus != model.RegistrationCancelled {
				return ErrAlreadyRegistered
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return fmt.Errorf("check registration: %w", err)
		}

		if event.IsFull() {
			return ErrEventFull
		}

		// Conditional decrement with floor guard; the WHERE clause is the
		// last line of defense against overselling.
		res := tx.Model(&model.EventModel{}).
			Where("event_id = ? AND event_spot_left > 0", eventID).
			UpdateColumn("event_spot_left", gorm.Expr("event_spot_left - 1"))
		if res.Error != nil {
			return fmt.Errorf("decrement spot: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return ErrEventFull
		}

		// Keyed upsert: first join inserts, re-join after cancel flips the
		// existing row back to confirmed.
		reg = model.EventRegistrationModel{
			EventRegistrationID:      uuid.New(),
			EventRegistrationEventID: eventID,
			EventRegistrationUserID:  userID,
			EventRegistrationStatus:  model.RegistrationConfirmed,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "event_registration_event_id"},
				{Name: "event_registration_user_id"},
			},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"event_registration_status":     model.RegistrationConfirmed,
				"event_registration_updated_at": time.Now(),
			}),
		}).Create(&reg).Error; err != nil {
			return fmt.Errorf("upsert registration: %w", err)
		}

		// Re-read so the caller sees the row as stored. The reload goes
		// into a zero-valued struct: on the reactivation path the row keeps
		// its original primary key, and a populated pk on the destination
		// would be added to the query conditions.
		var stored model.EventRegistrationModel
		if err := tx.Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
			First(&stored).Error; err != nil {
			return fmt.Errorf("reload registration: %w", err)
		}
		reg = stored
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.SendAsync(&userID, notifyModel.KindEventRegistration,
		"Registration confirmed",
		fmt.Sprintf("You are registered for %q.", event.EventTitle),
		map[string]any{
			"event_id":        eventID,
			"registration_id": reg.EventRegistrationID,
		})

	return &reg, nil
}

// Cancel flips a registration to cancelled and returns the spot to the pool.
func (s *RegistrationService) Cancel(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
			First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return fmt.Errorf("lock registration: %w", err)
		}

		if reg.EventRegistrationStatus == model.RegistrationCancelled {
			return ErrAlreadyCancelled
		}
		wasConfirmed := reg.EventRegistrationStatus == model.RegistrationConfirmed

		if err := tx.Model(&reg).
			Update("event_registration_status", model.RegistrationCancelled).Error; err != nil {
			return fmt.Errorf("cancel registration: %w", err)
		}
		reg.EventRegistrationStatus = model.RegistrationCancelled

		if wasConfirmed {
			// The slot returns to the pool even if the event row has been
			// soft-deleted in the meantime; see DESIGN.md.
			if err := tx.Unscoped().Model(&model.EventModel{}).
				Where("event_id = ?", eventID).
				UpdateColumn("event_spot_left", gorm.Expr("event_spot_left + 1")).Error; err != nil {
				return fmt.Errorf("restore spot: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.Notifier.SendAsync(&userID, notifyModel.KindEventCancellation,
		"Registration cancelled",
		"Your event registration has been cancelled.",
		map[string]any{
			"event_id":        eventID,
			"registration_id": reg.EventRegistrationID,
		})

	return &reg, nil
}

// MarkAttended transitions a confirmed registration to attended.
func (s *RegistrationService) MarkAttended(ctx context.Context, eventID, userID uuid.UUID) (*model.EventRegistrationModel, error) {
	var reg model.EventRegistrationModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("event_registration_event_id = ? AND event_registration_user_id = ?", eventID, userID).
			First(&reg).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRegistrationNotFound
			}
			return fmt.Errorf("lock registration: %w", err)
		}

		if reg.EventRegistrationStatus != model.RegistrationConfirmed {
			return ErrNotConfirmed
		}

		if err := tx.Model(&reg).
			Update("event_registration_status", model.RegistrationAttended).Error; err != nil {
			return fmt.Errorf("mark attended: %w", err)
		}
		reg.EventRegistrationStatus = model.RegistrationAttended
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &reg, nil
}
