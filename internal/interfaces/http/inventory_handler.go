package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/inventory"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// InventoryHandler handles stock movements and the inventory analytics.
type InventoryHandler struct {
	uc         *inventory.UseCase
	analysisUC *inventory.AnalysisUseCase
	movRepo    repository.StockMovementRepository
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *inventory.UseCase, analysisUC *inventory.AnalysisUseCase, movRepo repository.StockMovementRepository) *InventoryHandler {
	return &InventoryHandler{uc: uc, analysisUC: analysisUC, movRepo: movRepo}
}

// RegisterMovement godoc
// @Summary      Book a stock movement
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "Movement data"
// @Success      201   {object}  dto.MovementResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) RegisterMovement(c *fiber.Ctx) error {
	var in dto.RegisterMovementRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	mv, err := h.uc.RegisterMovement(c.Context(), inventory.MovementInput{
		ProductID:     in.ProductID,
		Type:          in.Type,
		Quantity:      in.Quantity,
		ReferenceType: "manual",
		Note:          in.Note,
		UserID:        GetUserID(c),
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(movementResponse(mv))
}

// ListMovements godoc
// @Summary      Movement ledger of one product
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true   "Product ID"
// @Param        from        query  string  false  "RFC3339 lower bound"
// @Param        to          query  string  false  "RFC3339 upper bound"
// @Success      200  {array}  dto.MovementResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return respondError(c, errMissingID("product_id"))
	}
	var from, to *time.Time
	if v := c.Query("from"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			from = &t
		}
	}
	if v := c.Query("to"); v != "" {
		t, err := time.Parse(time.RFC3339, v)
		if err == nil {
			to = &t
		}
	}
	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	movements, err := h.movRepo.ListByProduct(productID, from, to, limit, offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.MovementResponse, 0, len(movements))
	for _, mv := range movements {
		out = append(out, *movementResponse(mv))
	}
	return c.JSON(out)
}

// Expiring godoc
// @Summary      Products approaching their best-before date
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Window in days"  default(7)
// @Success      200  {array}  dto.ExpiringProductDTO
// @Router       /api/inventory/expiring [get]
func (h *InventoryHandler) Expiring(c *fiber.Ctx) error {
	out, err := h.analysisUC.GetExpiringProducts(c.QueryInt("days", 7))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ABCAnalysis godoc
// @Summary      Revenue-contribution classification
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        period_days  query  int  false  "Period"  default(90)
// @Success      200  {array}  dto.ABCClassDTO
// @Router       /api/inventory/abc [get]
func (h *InventoryHandler) ABCAnalysis(c *fiber.Ctx) error {
	out, err := h.analysisUC.GetABCAnalysis(c.Context(), c.QueryInt("period_days", 90))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Turnover godoc
// @Summary      Stock turnover bands
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        period_days  query  int  false  "Period"  default(30)
// @Success      200  {array}  dto.TurnoverDTO
// @Router       /api/inventory/turnover [get]
func (h *InventoryHandler) Turnover(c *fiber.Ctx) error {
	out, err := h.analysisUC.GetTurnoverAnalysis(c.Context(), c.QueryInt("period_days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func movementResponse(mv *entity.StockMovement) *dto.MovementResponse {
	return &dto.MovementResponse{
		ID:            mv.ID,
		ProductID:     mv.ProductID,
		Type:          mv.Type,
		Quantity:      mv.Quantity,
		PreviousStock: mv.PreviousStock,
		NewStock:      mv.NewStock,
		ReferenceType: mv.ReferenceType,
		ReferenceID:   mv.ReferenceID,
		Note:          mv.Note,
		UserID:        mv.UserID,
		CreatedAt:     mv.CreatedAt,
	}
}
