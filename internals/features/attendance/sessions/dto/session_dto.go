package dto

import (
	"time"

	"github.com/google/uuid"

	m "kehadiranku_backend/internals/features/attendance/sessions/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

// Create (JSON)
type CreateSessionRequest struct {
	// Required: the lecture this session belongs to
	SessionLectureID uuid.UUID `json:"session_lecture_id" validate:"required"`

	SessionName        string `json:"session_name" validate:"omitempty,max=120"`
	SessionDescription string `json:"session_description" validate:"omitempty,max=500"`

	// Optional: defaulted by the service when omitted
	SessionStart *time.Time `json:"session_start" validate:"omitempty"`
	SessionEnd   *time.Time `json:"session_end" validate:"omitempty"`
}

// Update (partial JSON). Pointer fields distinguish "leave unchanged" (nil)
// from "set to this value" — a non-nil empty string clears a text field.
type UpdateSessionRequest struct {
	SessionName        *string    `json:"session_name" validate:"omitempty,max=120"`
	SessionDescription *string    `json:"session_description" validate:"omitempty,max=500"`
	SessionStart       *time.Time `json:"session_start" validate:"omitempty"`
	SessionEnd         *time.Time `json:"session_end" validate:"omitempty"`
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type SessionResponse struct {
	SessionID          uuid.UUID `json:"session_id"`
	SessionName        string    `json:"session_name"`
	SessionDescription string    `json:"session_description"`
	SessionCourseID    uuid.UUID `json:"session_course_id"`
	SessionLectureID   uuid.UUID `json:"session_lecture_id"`
	SessionTeacherID   uuid.UUID `json:"session_teacher_id"`

	SessionStart time.Time `json:"session_start"`
	SessionEnd   time.Time `json:"session_end"`

	SessionCreatedAt time.Time  `json:"session_created_at"`
	SessionUpdatedAt *time.Time `json:"session_updated_at,omitempty"`
}

func NewSessionResponse(mdl m.SessionModel) SessionResponse {
	return SessionResponse{
		SessionID:          mdl.SessionID,
		SessionName:        mdl.SessionName,
		SessionDescription: mdl.SessionDescription,
		SessionCourseID:    mdl.SessionCourseID,
		SessionLectureID:   mdl.SessionLectureID,
		SessionTeacherID:   mdl.SessionTeacherID,
		SessionStart:       mdl.SessionStart,
		SessionEnd:         mdl.SessionEnd,
		SessionCreatedAt:   mdl.SessionCreatedAt,
		SessionUpdatedAt:   mdl.SessionUpdatedAt,
	}
}

func NewSessionResponses(mdls []m.SessionModel) []SessionResponse {
	out := make([]SessionResponse, 0, len(mdls))
	for _, mdl := range mdls {
		out = append(out, NewSessionResponse(mdl))
	}
	return out
}
