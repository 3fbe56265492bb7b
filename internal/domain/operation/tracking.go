package operation

import (
	"github.com/shopspring/decimal"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
)

// IsTracked indica si el tipo de ubicación pertenece al sistema contado.
// Una ubicación vacía o desconocida se trata como no rastreada (fuente o
// sumidero infinito, ej. proveedor o cliente).
func IsTracked(locationType string) bool {
	return locationType == entity.LocationTypeWarehouse || locationType == entity.LocationTypeInternal
}

// TotalChange calcula el delta que un movimiento aplica al TotalStock del
// producto, según el tipo de las ubicaciones origen y destino:
//
//	origen no rastreado, destino rastreado  → +quantity (entra al sistema)
//	origen rastreado, destino no rastreado  → −quantity (sale del sistema)
//	ambos rastreados (traslado interno)     → 0
//	ambos no rastreados                     → 0
func TotalChange(sourceType, destType string, quantity decimal.Decimal) decimal.Decimal {
	srcTracked := IsTracked(sourceType)
	dstTracked := IsTracked(destType)
	switch {
	case !srcTracked && dstTracked:
		return quantity
	case srcTracked && !dstTracked:
		return quantity.Neg()
	}
	return decimal.Zero
}
