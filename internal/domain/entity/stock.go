package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock representa la cantidad física de un producto en una ubicación.
// Una fila por par (producto, ubicación); se crea perezosamente con el primer
// movimiento hacia la ubicación. Invariante: Quantity nunca es negativa.
type Stock struct {
	ProductID  string
	LocationID string
	Quantity   decimal.Decimal
	UpdatedAt  time.Time
}

// StockAtLocation es la vista de stock por ubicación para el detalle de un
// producto (página Stock del dashboard).
type StockAtLocation struct {
	LocationID   string
	LocationName string
	LocationType string
	Quantity     decimal.Decimal
	UpdatedAt    time.Time
}
