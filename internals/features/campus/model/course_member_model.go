package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CourseMemberModel is one user's enrollment in one course with a role.
type CourseMemberModel struct {
	CourseMemberID       uuid.UUID `gorm:"type:uuid;primaryKey;column:course_member_id" json:"course_member_id"`
	CourseMemberCourseID uuid.UUID `gorm:"type:uuid;not null;column:course_member_course_id;uniqueIndex:uq_course_members_course_user" json:"course_member_course_id"`
	CourseMemberUserID   uuid.UUID `gorm:"type:uuid;not null;column:course_member_user_id;uniqueIndex:uq_course_members_course_user" json:"course_member_user_id"`
	CourseMemberRole     string    `gorm:"not null;column:course_member_role" json:"course_member_role"`

	CourseMemberCreatedAt time.Time `gorm:"column:course_member_created_at;autoCreateTime" json:"course_member_created_at"`
}

func (CourseMemberModel) TableName() string { return "course_members" }

func (m *CourseMemberModel) BeforeCreate(tx *gorm.DB) error {
	if m.CourseMemberID == uuid.Nil {
		m.CourseMemberID = uuid.New()
	}
	return nil
}
