package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"kehadiranku_backend/internals/features/attendance/sessions/dto"
	"kehadiranku_backend/internals/features/attendance/sessions/service"
	helper "kehadiranku_backend/internals/helpers"
)

type SessionController struct {
	DB      *gorm.DB
	Service *service.SessionService
}

func NewSessionController(db *gorm.DB) *SessionController {
	return &SessionController{DB: db, Service: service.NewSessionService(db)}
}

var validate = validator.New()

/* ===================== CREATE ===================== */
// POST /sessions
func (ctrl *SessionController) Create(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	var req dto.CreateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := ctrl.Service.Create(c.UserContext(), actorID, req)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Created session "+sess.SessionID.String(), dto.NewSessionResponse(*sess))
}

/* ===================== UPDATE ===================== */
// PUT /sessions/:id
func (ctrl *SessionController) Update(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	var req dto.UpdateSessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid payload")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sess, err := ctrl.Service.Update(c.UserContext(), actorID, sessionID, req)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Updated session "+sess.SessionID.String(), dto.NewSessionResponse(*sess))
}

/* ===================== DELETE ===================== */
// DELETE /sessions/:id
func (ctrl *SessionController) Delete(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	if err := ctrl.Service.Delete(c.UserContext(), actorID, sessionID); err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "Deleted session "+sessionID.String(), nil)
}

/* ===================== END NOW ===================== */
// POST /sessions/:id/end
func (ctrl *SessionController) EndNow(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}
	sessionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, "Invalid session id")
	}

	sess, alreadyEnded, err := ctrl.Service.EndNow(c.UserContext(), actorID, sessionID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	if alreadyEnded {
		return helper.Success(c, "Session already ended", dto.NewSessionResponse(*sess))
	}
	return helper.Success(c, "Ended session "+sess.SessionID.String(), dto.NewSessionResponse(*sess))
}

/* ===================== LIST ACTIVE ===================== */
// GET /sessions/active
func (ctrl *SessionController) ListActive(c *fiber.Ctx) error {
	actorID, err := helper.GetUserIDFromToken(c)
	if err != nil {
		return err
	}

	sessions, err := ctrl.Service.ListActive(c.UserContext(), actorID)
	if err != nil {
		return helper.DomainError(c, err)
	}
	return helper.Success(c, "OK", dto.NewSessionResponses(sessions))
}
