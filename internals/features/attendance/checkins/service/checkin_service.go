package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/domain"
	"kehadiranku_backend/internals/features/attendance/checkins/model"
	sessionmodel "kehadiranku_backend/internals/features/attendance/sessions/model"
	"kehadiranku_backend/internals/features/campus/access"
)

// CheckinService is the checkin engine: time-window validation, idempotent
// self-checkin, and the instructor add/amend path.
type CheckinService struct {
	DB *gorm.DB
}

func NewCheckinService(db *gorm.DB) *CheckinService { return &CheckinService{DB: db} }

/* ===================== SELF CHECKIN ===================== */

// SelfCheckin records attendance for the acting user. The session window is
// closed-inclusive on both ends, so a checkin exactly at start or end passes.
// "ended" and "not started yet" stay distinct errors; the window check runs
// before the duplicate check, matching the lifecycle order a student sees.
func (s *CheckinService) SelfCheckin(ctx context.Context, userID, sessionID uuid.UUID) (*model.CheckinModel, error) {
	db := s.DB.WithContext(ctx)

	sess, err := s.loadSession(db, sessionID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCourseRole(db, userID, sess.SessionCourseID, access.LevelAccess); err != nil {
		return nil, err
	}

	now := time.Now()
	if now.After(sess.SessionEnd) {
		return nil, domain.ErrSessionEnded
	}
	if now.Before(sess.SessionStart) {
		return nil, domain.ErrSessionNotStarted
	}

	var count int64
	if err := db.Model(&model.CheckinModel{}).
		Where("checkin_user_id = ? AND checkin_session_id = ?", userID, sessionID).
		Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrAlreadyCheckedIn
	}

	checkin := &model.CheckinModel{
		CheckinUserID:    userID,
		CheckinSessionID: sessionID,
		CheckinCourseID:  sess.SessionCourseID,
		CheckinLectureID: sess.SessionLectureID,
		CheckinCreatedAt: now,
	}
	if err := db.Create(checkin).Error; err != nil {
		// two racing requests can both pass the count above; the unique
		// index on (user, session) decides, the loser lands here
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, domain.ErrAlreadyCheckedIn
		}
		return nil, err
	}
	return checkin, nil
}

/* ===================== LIST ATTENDEES ===================== */

// ListAttendees returns the raw checkin rows of a session (manage-level).
func (s *CheckinService) ListAttendees(ctx context.Context, actorID, sessionID uuid.UUID) ([]model.CheckinModel, error) {
	db := s.DB.WithContext(ctx)

	sess, err := s.loadSession(db, sessionID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCourseRole(db, actorID, sess.SessionCourseID, access.LevelManage); err != nil {
		return nil, err
	}

	attendees := []model.CheckinModel{}
	if err := db.Where("checkin_session_id = ?", sessionID).Find(&attendees).Error; err != nil {
		return nil, err
	}
	return attendees, nil
}

/* ===================== UPSERT ATTENDEE ===================== */

// UpsertAttendee adds or amends one attendee record (manage-level). This is
// the instructor backfill path and deliberately skips the time-window check.
// Returns created=true when a new checkin was inserted, false when an
// existing one had its timestamp amended.
func (s *CheckinService) UpsertAttendee(ctx context.Context, actorID, sessionID, attendeeID uuid.UUID, checkinTime *time.Time) (*model.CheckinModel, bool, error) {
	db := s.DB.WithContext(ctx)

	sess, err := s.loadSession(db, sessionID)
	if err != nil {
		return nil, false, err
	}
	if err := access.RequireCourseRole(db, actorID, sess.SessionCourseID, access.LevelManage); err != nil {
		return nil, false, err
	}

	when := time.Now()
	if checkinTime != nil {
		when = *checkinTime
	}

	existing, err := s.amendExisting(db, attendeeID, sessionID, when)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	checkin := &model.CheckinModel{
		CheckinUserID:    attendeeID,
		CheckinSessionID: sessionID,
		CheckinCourseID:  sess.SessionCourseID,
		CheckinLectureID: sess.SessionLectureID,
		CheckinCreatedAt: when,
	}
	if err := db.Create(checkin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			// lost a race against a concurrent insert, amend that row instead
			existing, err := s.amendExisting(db, attendeeID, sessionID, when)
			if err != nil {
				return nil, false, err
			}
			if existing != nil {
				return existing, false, nil
			}
		}
		return nil, false, err
	}
	return checkin, true, nil
}

// amendExisting updates created_at on the (user, session) row when present.
// nil, nil means no row exists.
func (s *CheckinService) amendExisting(db *gorm.DB, userID, sessionID uuid.UUID, when time.Time) (*model.CheckinModel, error) {
	var existing model.CheckinModel
	err := db.Where("checkin_user_id = ? AND checkin_session_id = ?", userID, sessionID).
		First(&existing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if err := db.Model(&existing).Update("checkin_created_at", when).Error; err != nil {
		return nil, err
	}
	existing.CheckinCreatedAt = when
	return &existing, nil
}

func (s *CheckinService) loadSession(db *gorm.DB, sessionID uuid.UUID) (*sessionmodel.SessionModel, error) {
	var sess sessionmodel.SessionModel
	if err := db.Where("session_id = ?", sessionID).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}
