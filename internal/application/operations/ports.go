package operations

import (
	"context"

	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es lo que hace todo-o-nada la validación:
// o se aplican todas las líneas y el cambio de estado, o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		opRepo repository.OperationRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		locationRepo repository.LocationRepository,
		seqRepo repository.SequenceRepository,
	) error) error
}

// SlipGenerator genera el documento imprimible de una operación
// (remito de entrega / comprobante de recepción).
type SlipGenerator interface {
	GenerateOperationSlip(op *entity.Operation, source, dest *entity.Location) ([]byte, error)
}
