package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/email"
	"github.com/automaten-pro/automaten-api/internal/application/usecase"
)

// SettingsHandler handles runtime configuration and the email log.
type SettingsHandler struct {
	uc      *usecase.SettingsUseCase
	mailSvc *email.Service
}

// NewSettingsHandler builds the handler.
func NewSettingsHandler(uc *usecase.SettingsUseCase, mailSvc *email.Service) *SettingsHandler {
	return &SettingsHandler{uc: uc, mailSvc: mailSvc}
}

// Put godoc
// @Summary      Create or update a setting
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.PutSettingRequest  true  "Setting"
// @Success      200   {object}  dto.SettingResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) Put(c *fiber.Ctx) error {
	var in dto.PutSettingRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Put(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      One setting by key
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        key  path  string  true  "Setting key"
// @Success      200  {object}  dto.SettingResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/settings/{key} [get]
func (h *SettingsHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.Context(), c.Params("key"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetGroup godoc
// @Summary      All settings of a group
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        group  path  string  true  "general, email, tax, monitoring, scanner or performance"
// @Success      200  {array}  dto.SettingResponse
// @Router       /api/settings/groups/{group} [get]
func (h *SettingsHandler) GetGroup(c *fiber.Ctx) error {
	out, err := h.uc.GetGroup(c.Context(), c.Params("group"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// EmailLog godoc
// @Summary      Latest email delivery attempts
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Rows"  default(50)
// @Success      200  {array}  dto.EmailLogDTO
// @Router       /api/emails [get]
func (h *SettingsHandler) EmailLog(c *fiber.Ctx) error {
	logs, err := h.mailSvc.ListRecent(c.QueryInt("limit", 50))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.EmailLogDTO, 0, len(logs))
	for _, l := range logs {
		out = append(out, dto.EmailLogDTO{
			ID:          l.ID,
			Type:        l.Type,
			Recipient:   l.Recipient,
			Subject:     l.Subject,
			Status:      l.Status,
			Attempts:    l.Attempts,
			LastError:   l.LastError,
			ReferenceID: l.ReferenceID,
			CreatedAt:   l.CreatedAt,
			UpdatedAt:   l.UpdatedAt,
		})
	}
	return c.JSON(out)
}
