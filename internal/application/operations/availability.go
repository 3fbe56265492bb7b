package operations

import (
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// anyLineInsufficient verifica la disponibilidad de todas las líneas contra
// una ubicación: true si para alguna no hay registro de stock o la cantidad
// registrada es menor a la solicitada. Lectura sin bloqueo: en creación el
// resultado solo decide DRAFT vs WAITING; el veredicto definitivo lo da la
// validación con la fila bloqueada.
func anyLineInsufficient(stockRepo repository.StockRepository, items []entity.OperationItem, locationID string) (bool, error) {
	for _, item := range items {
		stock, err := stockRepo.Get(item.ProductID, locationID)
		if err != nil {
			return false, err
		}
		if stock.Quantity.LessThan(item.Quantity) {
			return true, nil
		}
	}
	return false, nil
}
