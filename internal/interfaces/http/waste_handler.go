package http

import (
	"image"
	_ "image/jpeg"
	_ "image/png"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	_ "golang.org/x/image/webp"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/application/waste"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

const (
	maxPhotoCount = 5
	maxPhotoBytes = 5 << 20
	maxPhotoDim   = 2048
)

// WasteHandler handles disposals, waste analytics and the tax export.
type WasteHandler struct {
	uc         *waste.UseCase
	analysisUC *waste.AnalysisUseCase
	optimizeUC *waste.OptimizationUseCase
	exportUC   *waste.ExportUseCase
	wasteRepo  repository.WasteRepository
	uploadDir  string
}

// NewWasteHandler builds the handler.
func NewWasteHandler(
	uc *waste.UseCase,
	analysisUC *waste.AnalysisUseCase,
	optimizeUC *waste.OptimizationUseCase,
	exportUC *waste.ExportUseCase,
	wasteRepo repository.WasteRepository,
	uploadDir string,
) *WasteHandler {
	return &WasteHandler{
		uc:         uc,
		analysisUC: analysisUC,
		optimizeUC: optimizeUC,
		exportUC:   exportUC,
		wasteRepo:  wasteRepo,
		uploadDir:  uploadDir,
	}
}

// Reasons godoc
// @Summary      Disposal reason catalog
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.DisposalReasonDTO
// @Router       /api/waste/reasons [get]
func (h *WasteHandler) Reasons(c *fiber.Ctx) error {
	return c.JSON(h.uc.GetReasons())
}

// LogDisposal godoc
// @Summary      Record a disposal
// @Tags         waste
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogDisposalRequest  true  "Disposal data"
// @Success      201   {object}  dto.DisposalResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/waste/disposals [post]
func (h *WasteHandler) LogDisposal(c *fiber.Ctx) error {
	var in dto.LogDisposalRequest
	if err := parseBody(c, &in); err != nil {
		return respondError(c, err)
	}
	out, err := h.uc.LogDisposal(c.Context(), in, GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetDisposal godoc
// @Summary      One waste entry
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "Entry ID"
// @Success      200  {object}  dto.WasteEntryDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/disposals/{id} [get]
func (h *WasteHandler) GetDisposal(c *fiber.Ctx) error {
	entry, err := h.wasteRepo.GetByID(c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	if entry == nil {
		return respondError(c, domain.ErrNotFound)
	}
	return c.JSON(wasteEntryDTO(entry))
}

// ListDisposals godoc
// @Summary      Waste entries of a period
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  false  "RFC3339 lower bound"
// @Param        to      query  string  false  "RFC3339 upper bound"
// @Param        limit   query  int     false  "Page size"  default(50)
// @Param        offset  query  int     false  "Offset"     default(0)
// @Success      200  {array}  dto.WasteEntryDTO
// @Router       /api/waste/disposals [get]
func (h *WasteHandler) ListDisposals(c *fiber.Ctx) error {
	to := time.Now()
	from := to.AddDate(0, 0, -30)
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
	entries, err := h.wasteRepo.ListPeriod(from, to, c.QueryInt("limit", 50), c.QueryInt("offset", 0))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.WasteEntryDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, *wasteEntryDTO(e))
	}
	return c.JSON(out)
}

// Analysis godoc
// @Summary      Waste pattern analysis
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        period_days  query  int     false  "Window"  default(30)
// @Param        reasons      query  string  false  "Comma-separated reason keys"
// @Param        category_id  query  string  false  "Category filter"
// @Success      200  {object}  dto.WasteAnalysisResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/analysis [get]
func (h *WasteHandler) Analysis(c *fiber.Ctx) error {
	var req dto.WasteAnalysisRequest
	if err := c.QueryParser(&req); err != nil {
		return respondError(c, domain.NewError("VALIDATION", "invalid query parameters"))
	}
	out, err := h.analysisUC.Analyze(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Optimization godoc
// @Summary      Advisory waste reduction strategies
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.WasteOptimizationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/optimization [get]
func (h *WasteHandler) Optimization(c *fiber.Ctx) error {
	out, err := h.optimizeUC.Optimize(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ExportTaxReport godoc
// @Summary      Generate the tax-deductible waste report
// @Tags         waste
// @Security     Bearer
// @Produce      json
// @Param        from    query  string  true  "2006-01-02"
// @Param        to      query  string  true  "2006-01-02"
// @Param        format  query  string  true  "csv, pdf or xlsx"
// @Success      200  {object}  dto.ExportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/waste/export [post]
func (h *WasteHandler) ExportTaxReport(c *fiber.Ctx) error {
	from, err := time.Parse("2006-01-02", c.Query("from"))
	if err != nil {
		return respondError(c, domain.NewError("VALIDATION", "from must be a 2006-01-02 date"))
	}
	to, err := time.Parse("2006-01-02", c.Query("to"))
	if err != nil {
		return respondError(c, domain.NewError("VALIDATION", "to must be a 2006-01-02 date"))
	}
	out, err := h.exportUC.ExportTaxReport(c.Context(), from, to.AddDate(0, 0, 1), c.Query("format"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UploadPhotos godoc
// @Summary      Upload disposal evidence photos
// @Tags         waste
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        photos  formData  file  true  "Up to 5 JPEG, PNG or WebP files"
// @Success      201  {object}  map[string][]string
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/waste/photos [post]
func (h *WasteHandler) UploadPhotos(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return respondError(c, domain.NewError("PHOTO_INVALID", "multipart form expected"))
	}
	files := form.File["photos"]
	if len(files) == 0 {
		return respondError(c, domain.NewError("PHOTO_INVALID", "at least one photo is required"))
	}
	if len(files) > maxPhotoCount {
		return respondError(c, domain.NewError("PHOTO_INVALID", "at most 5 photos per disposal"))
	}

	dir := filepath.Join(h.uploadDir, "disposals", time.Now().Format("2006-01"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return respondError(c, err)
	}

	paths := make([]string, 0, len(files))
	for _, fh := range files {
		ext, err := validatePhoto(fh)
		if err != nil {
			return respondError(c, err)
		}
		name := uuid.New().String() + ext
		dst := filepath.Join(dir, name)
		if err := c.SaveFile(fh, dst); err != nil {
			return respondError(c, err)
		}
		paths = append(paths, dst)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"paths": paths})
}

func wasteEntryDTO(e *entity.WasteEntry) *dto.WasteEntryDTO {
	return &dto.WasteEntryDTO{
		ID:                 e.ID,
		ProductID:          e.ProductID,
		Quantity:           e.Quantity,
		Reason:             e.Reason,
		UnitCost:           e.UnitCost,
		TotalCost:          e.TotalCost,
		TaxDeductible:      e.TaxDeductible,
		EstimatedTaxSaving: e.EstimatedTaxSaving,
		Photos:             e.Photos,
		Note:               e.Note,
		UserID:             e.UserID,
		CreatedAt:          e.CreatedAt,
	}
}

// validatePhoto enforces the size, format and dimension limits on one upload
// and returns the extension to store the file under.
func validatePhoto(fh *multipart.FileHeader) (string, error) {
	if fh.Size > maxPhotoBytes {
		return "", domain.NewError("PHOTO_INVALID", fh.Filename+" exceeds the 5 MB limit")
	}
	f, err := fh.Open()
	if err != nil {
		return "", domain.NewError("PHOTO_INVALID", fh.Filename+" could not be read")
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(f)
	if err != nil {
		return "", domain.NewError("PHOTO_INVALID", fh.Filename+" is not a JPEG, PNG or WebP image")
	}
	switch format {
	case "jpeg", "png", "webp":
	default:
		return "", domain.NewError("PHOTO_INVALID", fh.Filename+" is not a JPEG, PNG or WebP image")
	}
	if cfg.Width > maxPhotoDim || cfg.Height > maxPhotoDim {
		return "", domain.NewError("PHOTO_INVALID", fh.Filename+" exceeds 2048x2048 pixels")
	}
	if format == "jpeg" {
		return ".jpg", nil
	}
	return "." + format, nil
}
