package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con pool o tx).
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador de stock. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

// Get obtiene el stock actual de un producto en una ubicación.
// Si no existe fila devuelve una en cero (la fila se crea con el primer movimiento).
func (r *StockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock: %w", err)
	}
	return &s, nil
}

// GetForUpdate obtiene el stock y bloquea la fila (SELECT FOR UPDATE) para
// serializar validaciones concurrentes sobre el mismo par producto/ubicación.
func (r *StockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	query := `
		SELECT product_id, location_id, quantity, updated_at
		FROM stock WHERE product_id = $1 AND location_id = $2
		FOR UPDATE`
	var s entity.Stock
	err := r.q.QueryRow(context.Background(), query, productID, locationID).Scan(
		&s.ProductID, &s.LocationID, &s.Quantity, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
		}
		return nil, fmt.Errorf("get stock for update: %w", err)
	}
	return &s, nil
}

// ApplyDelta aplica un delta firmado a la cantidad, creando la fila si es el
// primer movimiento. La suma se hace en SQL: con FOR UPDATE solo se
// serializan filas que ya existen, así que para una fila recién creada dos
// transacciones concurrentes podrían calcular la cantidad desde cero y una
// escritura absoluta pisaría a la otra. El CHECK (quantity >= 0) de la tabla
// respalda el piso que el caso de uso ya verifica bajo el candado.
func (r *StockRepo) ApplyDelta(productID, locationID string, delta decimal.Decimal) error {
	query := `
		INSERT INTO stock (product_id, location_id, quantity, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, location_id)
		DO UPDATE SET quantity = stock.quantity + EXCLUDED.quantity, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, productID, locationID, delta)
	if err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}

// ListByProduct devuelve el desglose de stock por ubicación para un producto.
func (r *StockRepo) ListByProduct(productID string) ([]*entity.StockAtLocation, error) {
	query := `
		SELECT s.location_id, l.name, l.type, s.quantity, s.updated_at
		FROM stock s
		JOIN locations l ON l.id = s.location_id
		WHERE s.product_id = $1
		ORDER BY l.name`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list stock by product: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockAtLocation
	for rows.Next() {
		var s entity.StockAtLocation
		if err := rows.Scan(&s.LocationID, &s.LocationName, &s.LocationType, &s.Quantity, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock row: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// SumTracked suma el stock del producto en ubicaciones rastreadas
// (WAREHOUSE, INTERNAL). Coincide con el cache total_stock salvo corrupción.
func (r *StockRepo) SumTracked(productID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(s.quantity), 0)
		FROM stock s
		JOIN locations l ON l.id = s.location_id
		WHERE s.product_id = $1 AND l.type IN ('WAREHOUSE', 'INTERNAL')`
	var sum decimal.Decimal
	err := r.q.QueryRow(context.Background(), query, productID).Scan(&sum)
	if err != nil {
		return decimal.Zero, fmt.Errorf("sum tracked stock: %w", err)
	}
	return sum, nil
}
