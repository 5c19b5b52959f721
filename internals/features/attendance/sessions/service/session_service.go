package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/domain"
	"kehadiranku_backend/internals/features/attendance/sessions/dto"
	"kehadiranku_backend/internals/features/attendance/sessions/model"
	"kehadiranku_backend/internals/features/campus/access"
)

// DefaultSessionDuration is applied when a create request omits the end time.
const DefaultSessionDuration = time.Hour

// SessionService is the session lifecycle manager. The store handle is
// injected; the service keeps no other state.
type SessionService struct {
	DB *gorm.DB
}

func NewSessionService(db *gorm.DB) *SessionService { return &SessionService{DB: db} }

/* ===================== CREATE ===================== */

// Create opens a new attendance session for a lecture. The acting user must
// hold manage permission on the lecture's course. Omitted start defaults to
// now, omitted end to start + DefaultSessionDuration.
func (s *SessionService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateSessionRequest) (*model.SessionModel, error) {
	db := s.DB.WithContext(ctx)

	courseID, err := access.LectureCourse(db, req.SessionLectureID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCourseRole(db, actorID, courseID, access.LevelManage); err != nil {
		return nil, err
	}

	start := time.Now()
	if req.SessionStart != nil {
		start = *req.SessionStart
	}
	end := start.Add(DefaultSessionDuration)
	if req.SessionEnd != nil {
		end = *req.SessionEnd
	}

	sess := &model.SessionModel{
		SessionName:        req.SessionName,
		SessionDescription: req.SessionDescription,
		SessionCourseID:    courseID,
		SessionLectureID:   req.SessionLectureID,
		SessionTeacherID:   actorID,
		SessionStart:       start,
		SessionEnd:         end,
	}
	if err := db.Create(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

/* ===================== UPDATE ===================== */

// Update applies the supplied fields (nil = leave unchanged) and reassigns
// ownership to the acting user. The lecture binding never changes.
func (s *SessionService) Update(ctx context.Context, actorID, sessionID uuid.UUID, req dto.UpdateSessionRequest) (*model.SessionModel, error) {
	db := s.DB.WithContext(ctx)

	sess, err := s.load(db, sessionID)
	if err != nil {
		return nil, err
	}
	if err := access.RequireCourseRole(db, actorID, sess.SessionCourseID, access.LevelManage); err != nil {
		return nil, err
	}

	// ownership transfers to the last editor
	sess.SessionTeacherID = actorID
	if req.SessionName != nil {
		sess.SessionName = *req.SessionName
	}
	if req.SessionDescription != nil {
		sess.SessionDescription = *req.SessionDescription
	}
	if req.SessionStart != nil {
		sess.SessionStart = *req.SessionStart
	}
	if req.SessionEnd != nil {
		sess.SessionEnd = *req.SessionEnd
	}

	if err := db.Save(sess).Error; err != nil {
		return nil, err
	}
	return sess, nil
}

/* ===================== DELETE ===================== */

// Delete removes the session permanently. Checkins that reference it stay
// behind; the history reporter filters them out at read time.
func (s *SessionService) Delete(ctx context.Context, actorID, sessionID uuid.UUID) error {
	db := s.DB.WithContext(ctx)

	sess, err := s.load(db, sessionID)
	if err != nil {
		return err
	}
	if err := access.RequireCourseRole(db, actorID, sess.SessionCourseID, access.LevelManage); err != nil {
		return err
	}
	return db.Delete(sess).Error
}

/* ===================== END NOW ===================== */

// EndNow forces the session to Ended by setting end = now. Calling it on a
// session whose end already passed is a no-op reported via alreadyEnded.
func (s *SessionService) EndNow(ctx context.Context, actorID, sessionID uuid.UUID) (sess *model.SessionModel, alreadyEnded bool, err error) {
	db := s.DB.WithContext(ctx)

	sess, err = s.load(db, sessionID)
	if err != nil {
		return nil, false, err
	}
	if err := access.RequireCourseRole(db, actorID, sess.SessionCourseID, access.LevelManage); err != nil {
		return nil, false, err
	}

	now := time.Now()
	if sess.SessionEnd.Before(now) {
		return sess, true, nil
	}

	if err := db.Model(sess).Update("session_end", now).Error; err != nil {
		return nil, false, err
	}
	sess.SessionEnd = now
	return sess, false, nil
}

/* ===================== LIST ACTIVE ===================== */

// ListActive returns the currently running sessions across every course the
// acting user is enrolled in ([start, end] contains now, inclusive).
func (s *SessionService) ListActive(ctx context.Context, userID uuid.UUID) ([]model.SessionModel, error) {
	db := s.DB.WithContext(ctx)

	courseIDs, err := access.CourseIDsForUser(db, userID)
	if err != nil {
		return nil, err
	}
	sessions := []model.SessionModel{}
	if len(courseIDs) == 0 {
		return sessions, nil
	}

	now := time.Now()
	err = db.
		Where("session_course_id IN ?", courseIDs).
		Where("session_start <= ? AND session_end >= ?", now, now).
		Find(&sessions).Error
	if err != nil {
		return nil, err
	}
	return sessions, nil
}

func (s *SessionService) load(db *gorm.DB, sessionID uuid.UUID) (*model.SessionModel, error) {
	var sess model.SessionModel
	if err := db.Where("session_id = ?", sessionID).First(&sess).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &sess, nil
}
