package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	sessCtrl "kehadiranku_backend/internals/features/attendance/sessions/controller"
)

func SessionRoutes(r fiber.Router, db *gorm.DB) {
	ctrl := sessCtrl.NewSessionController(db)

	// =====================
	// Attendance Sessions
	// =====================
	g := r.Group("/sessions")
	g.Get("/active", ctrl.ListActive)
	g.Post("/", ctrl.Create)
	g.Put("/:id", ctrl.Update)
	g.Delete("/:id", ctrl.Delete)
	g.Post("/:id/end", ctrl.EndNow)
}
