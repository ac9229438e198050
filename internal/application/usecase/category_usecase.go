package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/automaten-pro/automaten-api/internal/application/dto"
	"github.com/automaten-pro/automaten-api/internal/domain"
	"github.com/automaten-pro/automaten-api/internal/domain/entity"
	"github.com/automaten-pro/automaten-api/internal/domain/repository"
)

// CategoryUseCase manages product categories.
type CategoryUseCase struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
}

// NewCategoryUseCase builds the category use case.
func NewCategoryUseCase(categoryRepo repository.CategoryRepository, productRepo repository.ProductRepository) *CategoryUseCase {
	return &CategoryUseCase{categoryRepo: categoryRepo, productRepo: productRepo}
}

// Create registers a category.
func (uc *CategoryUseCase) Create(ctx context.Context, req dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	if req.ParentID != "" {
		parent, err := uc.categoryRepo.GetByID(req.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      req.Name,
		Color:     req.Color,
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
		Status:    "active",
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.categoryRepo.Create(category); err != nil {
		return nil, err
	}
	return categoryResponse(category), nil
}

// GetByID loads one category.
func (uc *CategoryUseCase) GetByID(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	return categoryResponse(category), nil
}

// Update changes the set fields.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, req dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrNotFound
	}
	if req.Name != nil {
		category.Name = *req.Name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.ParentID != nil {
		category.ParentID = *req.ParentID
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	category.UpdatedAt = time.Now()

	if err := uc.categoryRepo.Update(category); err != nil {
		return nil, err
	}
	return categoryResponse(category), nil
}

// Delete deactivates a category. Fails with ErrCategoryInUse while active
// products still reference it.
func (uc *CategoryUseCase) Delete(ctx context.Context, id string) error {
	category, err := uc.categoryRepo.GetByID(id)
	if err != nil {
		return err
	}
	if category == nil {
		return domain.ErrNotFound
	}
	count, err := uc.productRepo.CountActiveByCategory(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}
	return uc.categoryRepo.SetStatus(id, "inactive")
}

// List returns categories, optionally filtered by status.
func (uc *CategoryUseCase) List(ctx context.Context, status string) ([]dto.CategoryResponse, error) {
	categories, err := uc.categoryRepo.List(status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(categories))
	for _, c := range categories {
		out = append(out, *categoryResponse(c))
	}
	return out, nil
}

func categoryResponse(c *entity.Category) *dto.CategoryResponse {
	return &dto.CategoryResponse{
		ID:        c.ID,
		Name:      c.Name,
		Color:     c.Color,
		ParentID:  c.ParentID,
		SortOrder: c.SortOrder,
		Status:    c.Status,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}
