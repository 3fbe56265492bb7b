package operations

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/domain"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	domop "github.com/stockmaster/warehouse-api/internal/domain/operation"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// OperationUseCase casos de uso del ciclo de vida de operaciones: creación
// con asignación de referencia y chequeo de disponibilidad, edición mientras
// no estén validadas, listado/consulta y el documento imprimible.
// La validación (botón DONE) vive en validate.go.
type OperationUseCase struct {
	txRunner     TxRunner
	opRepo       repository.OperationRepository
	productRepo  repository.ProductRepository
	locationRepo repository.LocationRepository
	slips        SlipGenerator
}

// NewOperationUseCase construye el caso de uso. Los repos recibidos aquí van
// atados al pool (lecturas); las escrituras pasan por txRunner.
func NewOperationUseCase(
	txRunner TxRunner,
	opRepo repository.OperationRepository,
	productRepo repository.ProductRepository,
	locationRepo repository.LocationRepository,
	slips SlipGenerator,
) *OperationUseCase {
	return &OperationUseCase{
		txRunner:     txRunner,
		opRepo:       opRepo,
		productRepo:  productRepo,
		locationRepo: locationRepo,
		slips:        slips,
	}
}

// Create crea una operación: valida entrada, resuelve ubicaciones y
// productos, asigna la siguiente referencia del contador por tipo y decide
// el estado inicial. Para entregas sin disponibilidad en el origen el estado
// pedido se fuerza a WAITING, salvo que el caller pida DRAFT explícito.
func (uc *OperationUseCase) Create(ctx context.Context, in dto.CreateOperationRequest, responsible string) (*dto.OperationResponse, error) {
	if !entity.ValidOperationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	switch in.Status {
	case "", entity.StatusDraft, entity.StatusWaiting, entity.StatusReady:
		// aceptados; DONE solo se alcanza validando y CANCELLED editando
	default:
		return nil, domain.ErrInvalidInput
	}
	items, err := uc.buildItems(in.Items)
	if err != nil {
		return nil, err
	}

	source, err := uc.resolveLocation(in.SourceLocationID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.resolveLocation(in.DestinationLocationID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scheduleDate := now
	if in.ScheduleDate != nil {
		scheduleDate = *in.ScheduleDate
	}

	op := &entity.Operation{
		ID:                    uuid.New().String(),
		Type:                  in.Type,
		Status:                in.Status,
		ScheduleDate:          scheduleDate,
		SourceLocationID:      in.SourceLocationID,
		DestinationLocationID: in.DestinationLocationID,
		Contact:               in.Contact,
		Responsible:           responsible,
		Items:                 items,
		CreatedAt:             now,
		UpdatedAt:             now,
	}
	if op.Status == "" {
		op.Status = entity.StatusDraft
	}

	err = uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		stockRepo repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
		seqRepo repository.SequenceRepository,
	) error {
		// Entregas: sin stock suficiente en el origen el estado pasa a
		// WAITING, salvo DRAFT pedido explícitamente por el caller.
		if op.Type == entity.OperationTypeDelivery && in.Status != entity.StatusDraft && op.SourceLocationID != "" {
			short, err := anyLineInsufficient(stockRepo, op.Items, op.SourceLocationID)
			if err != nil {
				return err
			}
			if short {
				op.Status = entity.StatusWaiting
			}
		}

		seq, err := seqRepo.Next(op.Type)
		if err != nil {
			return err
		}
		op.Reference = domop.FormatReference(op.Type, seq)

		err = opRepo.Create(op)
		if errors.Is(err, domain.ErrDuplicate) {
			// Colisión contra una referencia previa a la tabla de
			// secuencias: un reintento con referencia fresca y se rinde.
			seq, err = seqRepo.Next(op.Type)
			if err != nil {
				return err
			}
			op.Reference = domop.FormatReference(op.Type, seq)
			if err = opRepo.Create(op); err != nil {
				if errors.Is(err, domain.ErrDuplicate) {
					return domain.ErrDuplicateReference
				}
				return err
			}
			return nil
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	resp := toOperationResponse(op)
	if source != nil {
		resp.SourceLocationName = source.Name
	}
	if dest != nil {
		resp.DestinationLocationName = dest.Name
	}
	return resp, nil
}

// Update edita una operación no validada. Campos vacíos se conservan; el
// estado solo cambia si el caller envía uno explícito (nunca DONE por esta
// vía). Devuelve ErrAlreadyDone si la operación ya fue validada. El chequeo
// de estado y la escritura ocurren bajo el mismo candado de fila que usa la
// validación: una validación que se cuele entre medio no puede ser pisada
// por la edición (DONE es terminal).
func (uc *OperationUseCase) Update(ctx context.Context, id string, in dto.UpdateOperationRequest) (*dto.OperationResponse, error) {
	if in.Status != "" && (!entity.ValidStatus(in.Status) || in.Status == entity.StatusDone) {
		return nil, domain.ErrInvalidInput
	}
	var items []entity.OperationItem
	if in.Items != nil {
		var err error
		items, err = uc.buildItems(in.Items)
		if err != nil {
			return nil, err
		}
	}
	if in.SourceLocationID != "" {
		if _, err := uc.resolveLocation(in.SourceLocationID); err != nil {
			return nil, err
		}
	}
	if in.DestinationLocationID != "" {
		if _, err := uc.resolveLocation(in.DestinationLocationID); err != nil {
			return nil, err
		}
	}

	err := uc.txRunner.Run(ctx, func(
		opRepo repository.OperationRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		_ repository.LocationRepository,
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

		if in.Status != "" {
			op.Status = in.Status
		}
		if in.SourceLocationID != "" {
			op.SourceLocationID = in.SourceLocationID
		}
		if in.DestinationLocationID != "" {
			op.DestinationLocationID = in.DestinationLocationID
		}
		if in.ScheduleDate != nil {
			op.ScheduleDate = *in.ScheduleDate
		}
		if in.Contact != "" {
			op.Contact = in.Contact
		}
		if in.Items != nil {
			op.Items = items
		}
		op.UpdatedAt = time.Now()
		return opRepo.Update(op)
	})
	if err != nil {
		return nil, err
	}
	return uc.Get(ctx, id)
}

// Get devuelve una operación con líneas y nombres de ubicación poblados.
func (uc *OperationUseCase) Get(_ context.Context, id string) (*dto.OperationResponse, error) {
	op, err := uc.opRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	return toOperationResponse(op), nil
}

// List devuelve operaciones filtradas por tipo/estado y búsqueda por
// referencia o contacto, más recientes primero.
func (uc *OperationUseCase) List(_ context.Context, in dto.ListOperationsRequest) (*dto.OperationListResponse, error) {
	in.DefaultPage()
	if in.Type != "" && !entity.ValidOperationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !entity.ValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	ops, err := uc.opRepo.List(repository.OperationFilter{
		Type:   in.Type,
		Status: in.Status,
		Search: in.Search,
		Limit:  in.Limit,
		Offset: in.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := &dto.OperationListResponse{
		Items: make([]dto.OperationResponse, 0, len(ops)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}
	for _, op := range ops {
		out.Items = append(out.Items, *toOperationResponse(op))
	}
	return out, nil
}

// Document genera el PDF imprimible (remito/comprobante) de la operación.
func (uc *OperationUseCase) Document(_ context.Context, id string) ([]byte, error) {
	op, err := uc.opRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrNotFound
	}
	source, err := uc.resolveLocation(op.SourceLocationID)
	if err != nil {
		return nil, err
	}
	dest, err := uc.resolveLocation(op.DestinationLocationID)
	if err != nil {
		return nil, err
	}
	return uc.slips.GenerateOperationSlip(op, source, dest)
}

// buildItems valida y convierte las líneas del request: producto existente
// y cantidad estrictamente positiva.
func (uc *OperationUseCase) buildItems(in []dto.OperationItemRequest) ([]entity.OperationItem, error) {
	if len(in) == 0 {
		return nil, domain.ErrInvalidInput
	}
	items := make([]entity.OperationItem, 0, len(in))
	for _, line := range in {
		if line.ProductID == "" || !line.Quantity.IsPositive() {
			return nil, domain.ErrInvalidInput
		}
		product, err := uc.productRepo.GetByID(line.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		items = append(items, entity.OperationItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			ProductSKU:  product.SKU,
			Quantity:    line.Quantity,
		})
	}
	return items, nil
}

// resolveLocation devuelve la ubicación del ID dado; "" es válido (lado no
// rastreado ausente) y devuelve nil sin error.
func (uc *OperationUseCase) resolveLocation(id string) (*entity.Location, error) {
	if id == "" {
		return nil, nil
	}
	loc, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrNotFound
	}
	return loc, nil
}

// toOperationResponse mapea la entidad al DTO de salida.
func toOperationResponse(op *entity.Operation) *dto.OperationResponse {
	items := make([]dto.OperationItemResponse, 0, len(op.Items))
	for _, it := range op.Items {
		items = append(items, dto.OperationItemResponse{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			ProductSKU:  it.ProductSKU,
			Quantity:    it.Quantity,
		})
	}
	return &dto.OperationResponse{
		ID:                      op.ID,
		Reference:               op.Reference,
		Type:                    op.Type,
		Status:                  op.Status,
		ScheduleDate:            op.ScheduleDate,
		SourceLocationID:        op.SourceLocationID,
		SourceLocationName:      op.SourceLocationName,
		DestinationLocationID:   op.DestinationLocationID,
		DestinationLocationName: op.DestinationLocationName,
		Contact:                 op.Contact,
		Responsible:             op.Responsible,
		Items:                   items,
		CreatedAt:               op.CreatedAt,
	}
}
