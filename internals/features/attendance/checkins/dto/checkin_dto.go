package dto

import (
	"time"

	"github.com/google/uuid"

	m "kehadiranku_backend/internals/features/attendance/checkins/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// UpsertAttendeeRequest is the instructor override path: add or amend one
// attendee record. checkin_time nil means "now".
type UpsertAttendeeRequest struct {
	CheckinUserID uuid.UUID  `json:"checkin_user_id" validate:"required"`
	CheckinTime   *time.Time `json:"checkin_time" validate:"omitempty"`
}

/* =========================================================
 * RESPONSES
 * ========================================================= */

type CheckinResponse struct {
	CheckinID        uuid.UUID `json:"checkin_id"`
	CheckinUserID    uuid.UUID `json:"checkin_user_id"`
	CheckinSessionID uuid.UUID `json:"checkin_session_id"`
	CheckinCourseID  uuid.UUID `json:"checkin_course_id"`
	CheckinLectureID uuid.UUID `json:"checkin_lecture_id"`
	CheckinCreatedAt time.Time `json:"checkin_created_at"`
}

func NewCheckinResponse(mdl m.CheckinModel) CheckinResponse {
	return CheckinResponse{
		CheckinID:        mdl.CheckinID,
		CheckinUserID:    mdl.CheckinUserID,
		CheckinSessionID: mdl.CheckinSessionID,
		CheckinCourseID:  mdl.CheckinCourseID,
		CheckinLectureID: mdl.CheckinLectureID,
		CheckinCreatedAt: mdl.CheckinCreatedAt,
	}
}

func NewCheckinResponses(mdls []m.CheckinModel) []CheckinResponse {
	out := make([]CheckinResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, NewCheckinResponse(mdl))
	}
	return out
}

// CheckinHistoryItem is a checkin enriched with course/session/lecture names
// for the history endpoints.
type CheckinHistoryItem struct {
	CheckinResponse

	CourseName  string `json:"course_name"`
	SessionName string `json:"session_name"`
	LectureName string `json:"lecture_name"`
}
