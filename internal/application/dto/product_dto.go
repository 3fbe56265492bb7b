package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. TotalStock inicia en 0: solo las
// operaciones validadas lo mueven.
type CreateProductRequest struct {
	Name     string          `json:"name"`
	SKU      string          `json:"sku"`
	Category string          `json:"category"`
	Unit     string          `json:"unit"`
	Price    decimal.Decimal `json:"price"`
	MinStock decimal.Decimal `json:"minStock"`
}

// UpdateProductRequest edición de producto. Campos vacíos no se modifican.
// SKU y TotalStock no son editables.
type UpdateProductRequest struct {
	Name     string           `json:"name"`
	Category string           `json:"category"`
	Price    *decimal.Decimal `json:"price"`
	MinStock *decimal.Decimal `json:"minStock"`
}

// ProductResponse representación de un producto.
type ProductResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	SKU        string          `json:"sku"`
	Category   string          `json:"category"`
	Unit       string          `json:"unit"`
	Price      decimal.Decimal `json:"price"`
	MinStock   decimal.Decimal `json:"minStock"`
	TotalStock decimal.Decimal `json:"totalStock"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// ProductListResponse listado paginado de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// StockAtLocationResponse desglose de stock por ubicación (página Stock).
type StockAtLocationResponse struct {
	LocationID   string          `json:"locationId"`
	LocationName string          `json:"locationName"`
	LocationType string          `json:"locationType"`
	Quantity     decimal.Decimal `json:"quantity"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// ProductStockResponse stock de un producto: total más desglose.
type ProductStockResponse struct {
	ProductID  string                    `json:"productId"`
	TotalStock decimal.Decimal           `json:"totalStock"`
	Locations  []StockAtLocationResponse `json:"locations"`
}
