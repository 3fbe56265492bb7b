package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del almacén.
// TotalStock es un cache denormalizado: suma de Stock.Quantity en todas las
// ubicaciones rastreadas. Solo lo muta el motor de validación de operaciones.
type Product struct {
	ID         string
	SKU        string // código único, se muestra entre corchetes [SKU]
	Name       string
	Category   string
	Unit       string // "pcs", "kg", etc.
	Price      decimal.Decimal
	MinStock   decimal.Decimal // umbral de reorden ("low stock" en el dashboard)
	TotalStock decimal.Decimal
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
