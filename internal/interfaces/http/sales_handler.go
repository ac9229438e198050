package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/sales"
)

// SalesHandler handles point-of-sale sessions.
type SalesHandler struct {
	uc *sales.UseCase
}

// NewSalesHandler builds the handler.
func NewSalesHandler(uc *sales.UseCase) *SalesHandler {
	return &SalesHandler{uc: uc}
}

// OpenSession godoc
// @Summary      Open a sales session for a machine
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.OpenSessionRequest  true  "Machine"
// @Success      201   {object}  dto.SessionResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/sessions [post]
func (h *SalesHandler) OpenSession(c *fiber.Ctx) error {
	var in dto.OpenSessionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.OpenSession(c.Context(), in.MachineID, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// AddItem godoc
// @Summary      Record a sale in an open session
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Session ID"
// @Param        body  body  dto.AddItemRequest  true  "Barcode and quantity"
// @Success      201   {object}  dto.SessionItemDTO
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/sessions/{id}/items [post]
func (h *SalesHandler) AddItem(c *fiber.Ctx) error {
	var in dto.AddItemRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.AddItem(c.Context(), c.Params("id"), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CloseSession godoc
// @Summary      Close a session and compute its totals
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  dto.SessionResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/sales/sessions/{id}/close [post]
func (h *SalesHandler) CloseSession(c *fiber.Ctx) error {
	out, err := h.uc.CloseSession(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// GetSession godoc
// @Summary      Session details with its items
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Session ID"
// @Success      200  {object}  dto.SessionDetailsResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/sessions/{id} [get]
func (h *SalesHandler) GetSession(c *fiber.Ctx) error {
	out, err := h.uc.GetSessionDetails(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListSessions godoc
// @Summary      Sessions of a period
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "RFC3339 lower bound"
// @Param        to      query  string  false  "RFC3339 upper bound"
// @Param        limit   query  int     false  "Page size"  default(20)
// @Param        offset  query  int     false  "Offset"     default(0)
// @Success      200  {array}  dto.SessionResponse
// @Router       /api/sales/sessions [get]
func (h *SalesHandler) ListSessions(c *fiber.Ctx) error {
	to := time.Now()
	from := to.AddDate(0, 0, -7)
	if v := c.Query("from"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			from = t
		}
	}
	if v := c.Query("to"); v != "" {
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			to = t
		}
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListSessions(c.Context(), from, to, page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
