package access

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/constants"
	"kehadiranku_backend/internals/domain"
	"kehadiranku_backend/internals/features/campus/model"
)

/* =========================================================
 * Authorization predicate
 * ========================================================= */

// Level is the permission level required on a course.
type Level int

const (
	// LevelAccess: any enrolled member (student and up).
	LevelAccess Level = iota + 1
	// LevelManage: teacher or admin of the course.
	LevelManage
)

// RequireCourseRole is the single authorization gate used by every attendance
// operation: nil when userID holds the required level on courseID, otherwise
// domain.ErrForbidden.
func RequireCourseRole(db *gorm.DB, userID, courseID uuid.UUID, level Level) error {
	var member model.CourseMemberModel
	err := db.
		Where("course_member_user_id = ? AND course_member_course_id = ?", userID, courseID).
		First(&member).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrForbidden
		}
		return err
	}
	if level == LevelManage && !constants.IsManageRole(member.CourseMemberRole) {
		return domain.ErrForbidden
	}
	return nil
}

// MayManage reports whether the user is teacher/admin of the course.
func MayManage(db *gorm.DB, userID, courseID uuid.UUID) bool {
	return RequireCourseRole(db, userID, courseID, LevelManage) == nil
}

// MayAccess reports whether the user is enrolled in the course.
func MayAccess(db *gorm.DB, userID, courseID uuid.UUID) bool {
	return RequireCourseRole(db, userID, courseID, LevelAccess) == nil
}

/* =========================================================
 * Lookups
 * ========================================================= */

// LectureCourse resolves a lecture to its owning course.
func LectureCourse(db *gorm.DB, lectureID uuid.UUID) (uuid.UUID, error) {
	var lecture model.LectureModel
	err := db.Select("lecture_course_id").
		Where("lecture_id = ?", lectureID).
		First(&lecture).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, domain.ErrNotFound
		}
		return uuid.Nil, err
	}
	return lecture.LectureCourseID, nil
}

// CourseIDsForUser lists every course the user is enrolled in.
func CourseIDsForUser(db *gorm.DB, userID uuid.UUID) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := db.Model(&model.CourseMemberModel{}).
		Where("course_member_user_id = ?", userID).
		Pluck("course_member_course_id", &ids).Error
	return ids, err
}

// CourseNames resolves course ids to names for report enrichment.
func CourseNames(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []model.CourseModel
	if err := db.Select("course_id, course_name").
		Where("course_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		names[r.CourseID] = r.CourseName
	}
	return names, nil
}

// LectureNames resolves lecture ids to names for report enrichment.
func LectureNames(db *gorm.DB, ids []uuid.UUID) (map[uuid.UUID]string, error) {
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	var rows []model.LectureModel
	if err := db.Select("lecture_id, lecture_name").
		Where("lecture_id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	for _, r := range rows {
		names[r.LectureID] = r.LectureName
	}
	return names, nil
}
