package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/features/attendance/checkins/dto"
	"kehadiranku_backend/internals/features/attendance/checkins/service"
	helper "kehadiranku_backend/internals/helpers"
)

type CheckinController struct {
	DB      *gorm.DB
	Service *service.CheckinService
	History *service.HistoryService
}

func NewCheckinController(db *gorm.DB) *CheckinController {
	return &CheckinController{
		DB:      db,
		Service: service.NewCheckinService(db),
		History: service.NewHistoryService(db),
	}
}

var validate = validator.New()

/* ===================== SELF CHECKIN ===================== */
// POST /sessions/:id/checkin
func (ctrl *CheckinController) SelfCheckin(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	checkin, err := ctrl.Service.SelfCheckin(c.UserContext(), userID, sessionID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Checked in", dto.NewCheckinResponse(*checkin))
}

/* ===================== LIST ATTENDEES ===================== */
// GET /sessions/:id/attendees
func (ctrl *CheckinController) ListAttendees(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	attendees, err := ctrl.Service.ListAttendees(c.UserContext(), actorID, sessionID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "OK", dto.NewCheckinResponses(attendees))
}

/* ===================== UPSERT ATTENDEE ===================== */
// PUT /sessions/:id/attendees
func (ctrl *CheckinController) UpsertAttendee(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.UpsertAttendeeRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	checkin, created, err := ctrl.Service.UpsertAttendee(c.UserContext(), actorID, sessionID, req.CheckinUserID, req.CheckinTime)
	if err != nil {
		return helper.DomainError(c, err)
	}
	if created {
		return helper.SuccessWithCode(c, fiber.StatusCreated, "Added attendee", dto.NewCheckinResponse(*checkin))
	}
	return helper.Success(c, "Updated attendee", dto.NewCheckinResponse(*checkin))
}

/* ===================== HISTORY ===================== */
// GET /checkins/history
func (ctrl *CheckinController) CheckinHistory(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	items, err := ctrl.History.CheckinHistory(c.UserContext(), userID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "OK", items)
}

// GET /checkins/history/course/:course_id
func (ctrl *CheckinController) CourseCheckinHistory(c *fiber.Ctx) error {
	userID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	courseID, err := uuid.Parse(c.Params("course_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid course id")
	}

	items, err := ctrl.History.CourseCheckinHistory(c.UserContext(), userID, courseID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "OK", items)
}
