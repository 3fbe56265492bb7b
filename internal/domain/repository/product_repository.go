package repository

import (
	"github.com/shopspring/decimal"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	// List filtra por substring (case-insensitive) sobre nombre o SKU.
	List(search string, limit, offset int) ([]*entity.Product, error)
	Update(product *entity.Product) error
	// AddTotalStock aplica un delta atómico al cache TotalStock
	// (total_stock = total_stock + delta). Usado solo por la validación.
	AddTotalStock(productID string, delta decimal.Decimal) error
}
