package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CheckinModel is one user's attendance fact for one session. Course and
// lecture ids are copied from the session at creation time so reports never
// need the session row. The (user, session) unique index is the storage-level
// guard against double checkin under concurrent requests.
type CheckinModel struct {
	CheckinID        uuid.UUID `gorm:"type:uuid;primaryKey;column:checkin_id" json:"checkin_id"`
	CheckinUserID    uuid.UUID `gorm:"type:uuid;not null;column:checkin_user_id;uniqueIndex:uq_checkins_user_session" json:"checkin_user_id"`
	CheckinSessionID uuid.UUID `gorm:"type:uuid;not null;index;column:checkin_session_id;uniqueIndex:uq_checkins_user_session" json:"checkin_session_id"`
	CheckinCourseID  uuid.UUID `gorm:"type:uuid;not null;index;column:checkin_course_id" json:"checkin_course_id"`
	CheckinLectureID uuid.UUID `gorm:"type:uuid;not null;column:checkin_lecture_id" json:"checkin_lecture_id"`

	// set explicitly, instructors may back/forward-date it
	CheckinCreatedAt time.Time `gorm:"not null;column:checkin_created_at" json:"checkin_created_at"`
}

func (CheckinModel) TableName() string { return "checkins" }

func (m *CheckinModel) BeforeCreate(tx *gorm.DB) error {
	if m.CheckinID == uuid.Nil {
		m.CheckinID = uuid.New()
	}
	return nil
}
