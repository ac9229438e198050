package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/auth"
	"github.com/automaten-pro/automaten-api/internal/application/dto"
)

// AuthHandler handles login, accounts and the security log.
type AuthHandler struct {
	uc *auth.UseCase
}

// NewAuthHandler builds the handler.
func NewAuthHandler(uc *auth.UseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Login with email and password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credentials"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Login(c.Context(), in, c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Register godoc
// @Summary      Create an operator account
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "Account data"
// @Success      201   {object}  dto.UserResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Register(c.Context(), in, GetUserID(c), c.IP())
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Me godoc
// @Summary      Current account
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.GetUser(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListUsers godoc
// @Summary      List operator accounts
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.UserResponse
// @Router       /api/users [get]
func (h *AuthHandler) ListUsers(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListUsers(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// SecurityEvents godoc
// @Summary      Latest security log rows
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Rows"  default(100)
// @Success      200  {array}  dto.SecurityEventDTO
// @Router       /api/security/events [get]
func (h *AuthHandler) SecurityEvents(c *fiber.Ctx) error {
	events, err := h.uc.ListSecurityEvents(c.Context(), c.QueryInt("limit", 100))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.SecurityEventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.SecurityEventDTO{
			ID:        e.ID,
			EventType: e.EventType,
			UserID:    e.UserID,
			IP:        e.IP,
			Severity:  e.Severity,
			Detail:    e.Detail,
			CreatedAt: e.CreatedAt,
		})
	}
	return c.JSON(out)
}
