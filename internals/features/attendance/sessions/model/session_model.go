package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SessionModel is one time-bounded instance of a lecture open for attendance.
// There is no stored status: Scheduled/Active/Ended follow from comparing the
// wall clock against [session_start, session_end], both ends inclusive.
type SessionModel struct {
	SessionID          uuid.UUID `gorm:"type:uuid;primaryKey;column:session_id" json:"session_id"`
	SessionName        string    `gorm:"column:session_name" json:"session_name"`
	SessionDescription string    `gorm:"column:session_description" json:"session_description"`

	// lecture is immutable after creation; the course is derived from it
	SessionCourseID  uuid.UUID `gorm:"type:uuid;not null;index;column:session_course_id" json:"session_course_id"`
	SessionLectureID uuid.UUID `gorm:"type:uuid;not null;index;column:session_lecture_id" json:"session_lecture_id"`

	// owner = the teacher who created or last modified the session
	SessionTeacherID uuid.UUID `gorm:"type:uuid;not null;column:session_teacher_id" json:"session_teacher_id"`

	SessionStart time.Time `gorm:"not null;column:session_start" json:"session_start"`
	SessionEnd   time.Time `gorm:"not null;column:session_end" json:"session_end"`

	SessionCreatedAt time.Time  `gorm:"column:session_created_at;autoCreateTime" json:"session_created_at"`
	SessionUpdatedAt *time.Time `gorm:"column:session_updated_at;autoUpdateTime" json:"session_updated_at,omitempty"`
}

func (SessionModel) TableName() string { return "attendance_sessions" }

func (m *SessionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SessionID == uuid.Nil {
		m.SessionID = uuid.New()
	}
	return nil
}
