package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkinCtrl "kehadiranku_backend/internals/features/attendance/checkins/controller"
)

func CheckinRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := checkinCtrl.NewCheckinController(db)

	// =====================
	// Checkins (per session)
	// =====================
	g := r.Group("/sessions/:id")
	g.Post("/checkin", ctrl.SelfCheckin)
	g.Get("/attendees", ctrl.ListAttendees)
	g.Put("/attendees", ctrl.UpsertAttendee)

	// =====================
	// Checkin History
	// =====================
	h := r.Group("/checkins")
	h.Get("/history", ctrl.CheckinHistory)
	h.Get("/history/course/:course_id", ctrl.CourseCheckinHistory)
}
