package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/scanner"
)

// ScannerHandler handles barcode lookups and scan-to-action dispatch.
type ScannerHandler struct {
	uc *scanner.UseCase
}

// NewScannerHandler builds the handler.
func NewScannerHandler(uc *scanner.UseCase) *ScannerHandler {
	return &ScannerHandler{uc: uc}
}

// Lookup godoc
// @Summary      Resolve a barcode to a product
// @Tags         scanner
// @Security     Bearer
// @Produce      json
// @Param        barcode  path  string  true  "Barcode"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/scanner/lookup/{barcode} [get]
func (h *ScannerHandler) Lookup(c *fiber.Ctx) error {
	out, err := h.uc.Lookup(c.Context(), c.Params("barcode"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Action godoc
// @Summary      Dispatch a scan to sell, restock, dispose or create-new
// @Tags         scanner
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ScanActionRequest  true  "Scan action"
// @Success      200   {object}  dto.ScanActionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/scanner/action [post]
func (h *ScannerHandler) Action(c *fiber.Ctx) error {
	var in dto.ScanActionRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.Dispatch(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
