package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/automaten-pro/automaten-api/internal/application/report"
	"github.com/automaten-pro/automaten-api/internal/domain"
)

// ReportHandler handles the dashboard, the KPI endpoints and the sales export.
type ReportHandler struct {
	uc       *report.UseCase
	exportUC *report.ExportUseCase
}

// NewReportHandler builds the handler.
func NewReportHandler(uc *report.UseCase, exportUC *report.ExportUseCase) *ReportHandler {
	return &ReportHandler{uc: uc, exportUC: exportUC}
}

// Dashboard godoc
// @Summary      Operational dashboard summary
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardSummaryDTO
// @Router       /api/reports/dashboard [get]
func (h *ReportHandler) Dashboard(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// KPIs godoc
// @Summary      Key performance indicators of a period
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period_days  query  int  false  "Period"  default(30)
// @Success      200  {object}  dto.KPIResponse
// @Router       /api/reports/kpis [get]
func (h *ReportHandler) KPIs(c *fiber.Ctx) error {
	out, err := h.uc.GetKPIs(c.Context(), c.QueryInt("period_days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Trends godoc
// @Summary      Period-over-period revenue and waste trends
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        period_days  query  int  false  "Period"  default(30)
// @Success      200  {object}  dto.TrendResponse
// @Router       /api/reports/trends [get]
func (h *ReportHandler) Trends(c *fiber.Ctx) error {
	out, err := h.uc.GetTrends(c.Context(), c.QueryInt("period_days", 30))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Generate the sales report file
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  true  "2006-01-02"
// @Param        to      query  string  true  "2006-01-02"
// @Param        format  query  string  true  "csv, pdf or xlsx"
// @Success      200  {object}  dto.ExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/reports/export [post]
func (h *ReportHandler) Export(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return respondError(c, domain.NewError("VALIDATION", "from must be a 2006-01-02 date"))
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return respondError(c, domain.NewError("VALIDATION", "to must be a 2006-01-02 date"))
	}
	out, err := h.exportUC.ExportSalesReport(c.Context(), from, to.AddDate(0, 0, 1), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
