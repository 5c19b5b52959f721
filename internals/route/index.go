package routes

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	checkinRoute "kehadiranku_backend/internals/features/attendance/checkins/route"
	sessionRoute "kehadiranku_backend/internals/features/attendance/sessions/route"
	authmw "kehadiranku_backend/internals/middlewares/auth"
)

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	BaseRoutes(app, db)

	// everything under /api requires a valid bearer token
	api := app.Group("/api", authmw.AuthMiddleware())
	sessionRoute.SessionRoutes(api, db)
	checkinRoute.CheckinRoutes(api, db)
}
