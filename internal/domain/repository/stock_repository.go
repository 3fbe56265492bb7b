package repository

import (
	"github.com/shopspring/decimal"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
)

// StockRepository puerto para el libro de stock por (producto, ubicación).
// Las mutaciones del motor son siempre deltas firmados aplicados en el
// almacén, nunca escrituras absolutas; GetForUpdate serializa el chequeo de
// piso dentro de la transacción.
type StockRepository interface {
	// Get devuelve la fila de stock o una fila en cero si no existe registro.
	Get(productID, locationID string) (*entity.Stock, error)
	// GetForUpdate obtiene el stock bloqueando la fila (SELECT FOR UPDATE).
	GetForUpdate(productID, locationID string) (*entity.Stock, error)
	// ApplyDelta suma el delta a la cantidad, creando la fila en el primer
	// movimiento. La suma ocurre en el almacén: dos primeras escrituras
	// concurrentes sobre la misma fila se acumulan en vez de pisarse.
	ApplyDelta(productID, locationID string, delta decimal.Decimal) error
	// ListByProduct devuelve el desglose por ubicación de un producto.
	ListByProduct(productID string) ([]*entity.StockAtLocation, error)
	// SumTracked suma el stock del producto en ubicaciones rastreadas
	// (WAREHOUSE, INTERNAL). Base del modo "totales calculados en lectura".
	SumTracked(productID string) (decimal.Decimal, error)
}
