package operations

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/domain"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	domop "github.com/stockmaster/warehouse-api/internal/domain/operation"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// Validate ejecuta el botón DONE: compromete el movimiento planificado en el
// libro de stock y marca la operación como validada. Todo ocurre dentro de
// una transacción:
//
//  1. Bloquea la fila de la operación (FOR UPDATE); dos validaciones
//     concurrentes se serializan y la segunda ve DONE.
//  2. Por cada línea: si el origen es rastreado, bloquea y descuenta su
//     stock (falla con InsufficientStock si quedaría negativo); si el
//     destino es rastreado, bloquea y suma (creando la fila si no existe);
//     aplica el delta correspondiente al TotalStock del producto.
//  3. Cambia el estado a DONE.
//
// Cualquier fallo revierte todas las escrituras: una línea insuficiente no
// deja aplicadas las anteriores.
func (uc *OperationUseCase) Validate(ctx context.Context, id string) (*dto.OperationResponse, error) {
	err := uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		_ repository.SequenceRepository,
	) error {
		op, err := opRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if op == nil {
			return domain.ErrNotFound
		}
		if op.IsDone() {
			return domain.ErrAlreadyDone
		}

		source, dest, err := resolveEnds(locationRepo, op)
		if err != nil {
			return err
		}
		sourceType := locationType(source)
		destType := locationType(dest)

		for _, item := range op.Items {
			if domop.IsTracked(sourceType) {
				if err := applyDelta(stockRepo, item.ProductID, source, item.Quantity.Neg()); err != nil {
					return err
				}
			}
			if domop.IsTracked(destType) {
				if err := applyDelta(stockRepo, item.ProductID, dest, item.Quantity); err != nil {
					return err
				}
			}
			change := domop.TotalChange(sourceType, destType, item.Quantity)
			if !change.IsZero() {
				if err := productRepo.AddTotalStock(item.ProductID, change); err != nil {
					return err
				}
			}
		}

		return opRepo.UpdateStatus(id, entity.StatusDone)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// applyDelta bloquea la fila de stock, verifica el piso en cero y aplica el
// delta firmado por el puerto: un descuento que dejaría la cantidad negativa
// aborta con el producto y la ubicación ofensores identificados. La escritura
// nunca es absoluta, de modo que dos primeros movimientos concurrentes sobre
// una fila nueva se acumulan.
func applyDelta(stockRepo repository.StockRepository, productID string, loc *entity.Location, delta decimal.Decimal) error {
	stock, err := stockRepo.GetForUpdate(productID, loc.ID)
	if err != nil {
		return err
	}
	if stock.Quantity.Add(delta).IsNegative() {
		return &domain.InsufficientStockError{
			ProductID:    productID,
			LocationID:   loc.ID,
			LocationName: loc.Name,
		}
	}
	return stockRepo.ApplyDelta(productID, loc.ID, delta)
}

// resolveEnds carga origen y destino dentro de la transacción. Un lado sin
// ID queda nil y se trata como no rastreado.
func resolveEnds(locationRepo repository.LocationRepository, op *entity.Operation) (source, dest *entity.Location, err error) {
	if op.SourceLocationID != "" {
		source, err = locationRepo.GetByID(op.SourceLocationID)
		if err != nil {
			return nil, nil, err
		}
		if source == nil {
			return nil, nil, domain.ErrNotFound
		}
	}
	if op.DestinationLocationID != "" {
		dest, err = locationRepo.GetByID(op.DestinationLocationID)
		if err != nil {
			return nil, nil, err
		}
		if dest == nil {
			return nil, nil, domain.ErrNotFound
		}
	}
	return source, dest, nil
}

func locationType(loc *entity.Location) string {
	if loc == nil {
		return ""
	}
	return loc.Type
}
