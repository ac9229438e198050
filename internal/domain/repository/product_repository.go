package repository

import "github.com/automaten-pro/automaten-api/internal/domain/entity"

// ProductRepository is the persistence port for Product. Stock is only
// written through UpdateStock inside a movement transaction.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetByBarcode(barcode string) (*entity.Product, error)
	// GetForUpdate loads the row with SELECT ... FOR UPDATE. Only valid on a
	// repository bound to a transaction.
	GetForUpdate(id string) (*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(id string, stock int) error
	SetStatus(id, status string) error
	List(status string, limit, offset int) ([]*entity.Product, error)
	CountActiveByCategory(categoryID string) (int, error)
	ListExpiring(withinDays int) ([]*entity.Product, error)
	ListLowStock() ([]*entity.Product, error)
}
