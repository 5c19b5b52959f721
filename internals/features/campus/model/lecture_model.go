package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LectureModel struct {
	LectureID       uuid.UUID `gorm:"type:uuid;primaryKey;column:lecture_id" json:"lecture_id"`
	LectureCourseID uuid.UUID `gorm:"type:uuid;not null;index;column:lecture_course_id" json:"lecture_course_id"`
	LectureName     string    `gorm:"not null;column:lecture_name" json:"lecture_name"`

	LectureCreatedAt time.Time `gorm:"column:lecture_created_at;autoCreateTime" json:"lecture_created_at"`
}

func (LectureModel) TableName() string { return "lectures" }

func (m *LectureModel) BeforeCreate(tx *gorm.DB) error {
	if m.LectureID == uuid.Nil {
		m.LectureID = uuid.New()
	}
	return nil
}
