package usecase

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/domain"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// ProductUseCase CRUD de productos. Con totalsOnRead activo, TotalStock se
// calcula en lectura sumando las filas de stock rastreadas en lugar de
// servir el cache (alternativa de consistencia, elegible por configuración;
// el cache se sigue manteniendo en ambos modos).
type ProductUseCase struct {
	productRepo  repository.ProductRepository
	stockRepo    repository.StockRepository
	totalsOnRead bool
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(productRepo repository.ProductRepository, stockRepo repository.StockRepository, totalsOnRead bool) *ProductUseCase {
	return &ProductUseCase{productRepo: productRepo, stockRepo: stockRepo, totalsOnRead: totalsOnRead}
}

// Create da de alta un producto con TotalStock en cero. SKU duplicado se
// rechaza con ErrDuplicate.
func (uc *ProductUseCase) Create(in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Name == "" || in.SKU == "" || in.Category == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Price.IsNegative() || in.MinStock.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.productRepo.GetBySKU(in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	unit := in.Unit
	if unit == "" {
		unit = "Units"
	}
	minStock := in.MinStock
	if minStock.IsZero() {
		minStock = decimal.NewFromInt(10)
	}
	now := time.Now()
	product := &entity.Product{
		ID:         uuid.New().String(),
		SKU:        in.SKU,
		Name:       in.Name,
		Category:   in.Category,
		Unit:       unit,
		Price:      in.Price,
		MinStock:   minStock,
		TotalStock: decimal.Zero, // solo lo mueven operaciones validadas
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := uc.productRepo.Create(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetByID devuelve un producto, con el total recalculado si aplica.
func (uc *ProductUseCase) GetByID(id string) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.applyComputedTotal(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// List lista productos con búsqueda por nombre o SKU.
func (uc *ProductUseCase) List(search string, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	products, err := uc.productRepo.List(search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductListResponse{
		Items: make([]dto.ProductResponse, 0, len(products)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, p := range products {
		if err := uc.applyComputedTotal(p); err != nil {
			return nil, err
		}
		out.Items = append(out.Items, *toProductResponse(p))
	}
	return out, nil
}

// Update edita nombre, categoría, precio y umbral mínimo. SKU y TotalStock
// no son editables por API.
func (uc *ProductUseCase) Update(id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		product.Name = in.Name
	}
	if in.Category != "" {
		product.Category = in.Category
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.MinStock != nil {
		if in.MinStock.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.MinStock = *in.MinStock
	}
	product.UpdatedAt = time.Now()
	if err := uc.productRepo.Update(product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// StockBreakdown devuelve el stock del producto desglosado por ubicación.
func (uc *ProductUseCase) StockBreakdown(id string) (*dto.ProductStockResponse, error) {
	product, err := uc.productRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	rows, err := uc.stockRepo.ListByProduct(id)
	if err != nil {
		return nil, err
	}
	if err := uc.applyComputedTotal(product); err != nil {
		return nil, err
	}
	out := &dto.ProductStockResponse{
		ProductID:  product.ID,
		TotalStock: product.TotalStock,
		Locations:  make([]dto.StockAtLocationResponse, 0, len(rows)),
	}
	for _, r := range rows {
		out.Locations = append(out.Locations, dto.StockAtLocationResponse{
			LocationID:   r.LocationID,
			LocationName: r.LocationName,
			LocationType: r.LocationType,
			Quantity:     r.Quantity,
			UpdatedAt:    r.UpdatedAt,
		})
	}
	return out, nil
}

func (uc *ProductUseCase) applyComputedTotal(product *entity.Product) error {
	if !uc.totalsOnRead {
		return nil
	}
	sum, err := uc.stockRepo.SumTracked(product.ID)
	if err != nil {
		return err
	}
	product.TotalStock = sum
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:         p.ID,
		Name:       p.Name,
		SKU:        p.SKU,
		Category:   p.Category,
		Unit:       p.Unit,
		Price:      p.Price,
		MinStock:   p.MinStock,
		TotalStock: p.TotalStock,
		CreatedAt:  p.CreatedAt,
	}
}
