package service

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/features/attendance/checkins/dto"
	"kehadiranku_backend/internals/features/attendance/checkins/model"
	sessionmodel "kehadiranku_backend/internals/features/attendance/sessions/model"
	"kehadiranku_backend/internals/features/campus/access"
)

// HistoryService projects raw checkin rows into enriched records for one
// user. Checkins whose session was deleted are silently skipped, never an
// error. Results come back newest-first by checkin time.
type HistoryService struct {
	DB *gorm.DB
}

func NewHistoryService(db *gorm.DB) *HistoryService { return &HistoryService{DB: db} }

// CheckinHistory returns every checkin of the user, across all courses.
func (s *HistoryService) CheckinHistory(ctx context.Context, userID uuid.UUID) ([]dto.CheckinHistoryItem, error) {
	db := s.DB.WithContext(ctx)
	return s.project(db, db.Where("checkin_user_id = ?", userID))
}

// CourseCheckinHistory returns the user's checkins scoped to one course.
func (s *HistoryService) CourseCheckinHistory(ctx context.Context, userID, courseID uuid.UUID) ([]dto.CheckinHistoryItem, error) {
	db := s.DB.WithContext(ctx)
	return s.project(db, db.Where("checkin_user_id = ? AND checkin_course_id = ?", userID, courseID))
}

func (s *HistoryService) project(db, scope *gorm.DB) ([]dto.CheckinHistoryItem, error) {
	var checkins []model.CheckinModel
	if err := scope.Order("checkin_created_at DESC").Find(&checkins).Error; err != nil {
		return nil, err
	}

	items := []dto.CheckinHistoryItem{}
	if len(checkins) == 0 {
		return items, nil
	}

	sessions, err := s.sessionsByID(db, checkins)
	if err != nil {
		return nil, err
	}
	courseNames, err := access.CourseNames(db, courseIDs(checkins))
	if err != nil {
		return nil, err
	}
	lectureNames, err := access.LectureNames(db, lectureIDs(checkins))
	if err != nil {
		return nil, err
	}

	for _, c := range checkins {
		sess, ok := sessions[c.CheckinSessionID]
		if !ok {
			// dangling checkin, its session no longer exists
			continue
		}
		items = append(items, dto.CheckinHistoryItem{
			CheckinResponse: dto.NewCheckinResponse(c),
			CourseName:      courseNames[c.CheckinCourseID],
			SessionName:     sess.SessionName,
			LectureName:     lectureNames[c.CheckinLectureID],
		})
	}
	return items, nil
}

func (s *HistoryService) sessionsByID(db *gorm.DB, checkins []model.CheckinModel) (map[uuid.UUID]sessionmodel.SessionModel, error) {
	ids := make([]uuid.UUID, 0, len(checkins))
	seen := make(map[uuid.UUID]struct{}, len(checkins))
	for _, c := range checkins {
		if _, ok := seen[c.CheckinSessionID]; ok {
			continue
		}
		seen[c.CheckinSessionID] = struct{}{}
		ids = append(ids, c.CheckinSessionID)
	}

	var rows []sessionmodel.SessionModel
	if err := db.Where("session_id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]sessionmodel.SessionModel, len(rows))
	for _, r := range rows {
		out[r.SessionID] = r
	}
	return out, nil
}

func courseIDs(checkins []model.CheckinModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(checkins))
	seen := make(map[uuid.UUID]struct{}, len(checkins))
	for _, c := range checkins {
		if _, ok := seen[c.CheckinCourseID]; ok {
			continue
		}
		seen[c.CheckinCourseID] = struct{}{}
		ids = append(ids, c.CheckinCourseID)
	}
	return ids
}

func lectureIDs(checkins []model.CheckinModel) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(checkins))
	seen := make(map[uuid.UUID]struct{}, len(checkins))
	for _, c := range checkins {
		if _, ok := seen[c.CheckinLectureID]; ok {
			continue
		}
		seen[c.CheckinLectureID] = struct{}{}
		ids = append(ids, c.CheckinLectureID)
	}
	return ids
}
