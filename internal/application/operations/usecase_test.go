package operations_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/application/operations"
	"github.com/stockmaster/warehouse-api/internal/domain"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria. El fakeTxRunner emula el Commit/Rollback real: toma un
// snapshot del estado antes de ejecutar fn y lo restaura si fn falla, de modo
// que los tests de atomicidad verifican el mismo contrato que la BD.
// ──────────────────────────────────────────────────────────────────────────────

type store struct {
	ops       map[string]entity.Operation
	stock     map[string]entity.Stock // clave: productID|locationID
	products  map[string]entity.Product
	locations map[string]entity.Location
	seqs      map[string]int
	refs      map[string]bool
}

func (s *store) clone() *store {
	c := &store{
		ops:       map[string]entity.Operation{},
		stock:     map[string]entity.Stock{},
		products:  map[string]entity.Product{},
		locations: map[string]entity.Location{},
		seqs:      map[string]int{},
		refs:      map[string]bool{},
	}
	for k, v := range s.ops {
		v.Items = append([]entity.OperationItem(nil), v.Items...)
		c.ops[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.locations {
		c.locations[k] = v
	}
	for k, v := range s.seqs {
		c.seqs[k] = v
	}
	for k, v := range s.refs {
		c.refs[k] = v
	}
	return c
}

type env struct {
	s *store
	// snapshots de los Run en curso, del más externo al más interno.
	snapshots []*store
	// onOpLock se dispara una sola vez al tomar el candado de una operación,
	// emulando a otra conexión que ganó el candado y confirmó antes.
	onOpLock func()
	// staleStockReads hace que GetForUpdate no vea la fila de stock, como le
	// pasa en READ COMMITTED a una transacción que arrancó antes del commit
	// que la creó.
	staleStockReads bool
	// createErr se devuelve en el próximo Create sin colisión de referencia.
	createErr error
}

func stockKey(productID, locationID string) string { return productID + "|" + locationID }

type fakeOpRepo struct{ e *env }

func (r *fakeOpRepo) Create(op *entity.Operation) error {
	if r.e.s.refs[op.Reference] {
		return domain.ErrDuplicate
	}
	if r.e.createErr != nil {
		err := r.e.createErr
		r.e.createErr = nil
		return err
	}
	r.e.s.refs[op.Reference] = true
	cp := *op
	cp.Items = append([]entity.OperationItem(nil), op.Items...)
	r.e.s.ops[op.ID] = cp
	return nil
}

func (r *fakeOpRepo) GetByID(id string) (*entity.Operation, error) {
	op, ok := r.e.s.ops[id]
	if !ok {
		return nil, nil
	}
	cp := op
	cp.Items = append([]entity.OperationItem(nil), op.Items...)
	return &cp, nil
}

func (r *fakeOpRepo) GetForUpdate(id string) (*entity.Operation, error) {
	if r.e.onOpLock != nil {
		hook := r.e.onOpLock
		r.e.onOpLock = nil
		hook()
	}
	return r.GetByID(id)
}

func (r *fakeOpRepo) List(filter repository.OperationFilter) ([]*entity.Operation, error) {
	var out []*entity.Operation
	for id := range r.e.s.ops {
		op, _ := r.GetByID(id)
		if filter.Type != "" && op.Type != filter.Type {
			continue
		}
		if filter.Status != "" && op.Status != filter.Status {
			continue
		}
		out = append(out, op)
	}
	return out, nil
}

func (r *fakeOpRepo) Update(op *entity.Operation) error {
	// Igual que el WHERE status <> 'DONE' del adaptador real.
	if current, ok := r.e.s.ops[op.ID]; ok && current.Status == entity.StatusDone {
		return domain.ErrAlreadyDone
	}
	cp := *op
	cp.Items = append([]entity.OperationItem(nil), op.Items...)
	r.e.s.ops[op.ID] = cp
	return nil
}

func (r *fakeOpRepo) UpdateStatus(id, status string) error {
	op := r.e.s.ops[id]
	op.Status = status
	r.e.s.ops[id] = op
	return nil
}

type fakeStockRepo struct{ e *env }

func (r *fakeStockRepo) Get(productID, locationID string) (*entity.Stock, error) {
	s, ok := r.e.s.stock[stockKey(productID, locationID)]
	if !ok {
		return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
	}
	cp := s
	return &cp, nil
}

func (r *fakeStockRepo) GetForUpdate(productID, locationID string) (*entity.Stock, error) {
	if r.e.staleStockReads {
		return &entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}, nil
	}
	return r.Get(productID, locationID)
}

func (r *fakeStockRepo) ApplyDelta(productID, locationID string, delta decimal.Decimal) error {
	key := stockKey(productID, locationID)
	s, ok := r.e.s.stock[key]
	if !ok {
		s = entity.Stock{ProductID: productID, LocationID: locationID, Quantity: decimal.Zero}
	}
	s.Quantity = s.Quantity.Add(delta)
	r.e.s.stock[key] = s
	return nil
}

func (r *fakeStockRepo) ListByProduct(productID string) ([]*entity.StockAtLocation, error) {
	var out []*entity.StockAtLocation
	for _, s := range r.e.s.stock {
		if s.ProductID != productID {
			continue
		}
		loc := r.e.s.locations[s.LocationID]
		out = append(out, &entity.StockAtLocation{
			LocationID:   s.LocationID,
			LocationName: loc.Name,
			LocationType: loc.Type,
			Quantity:     s.Quantity,
		})
	}
	return out, nil
}

func (r *fakeStockRepo) SumTracked(productID string) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, s := range r.e.s.stock {
		if s.ProductID != productID {
			continue
		}
		t := r.e.s.locations[s.LocationID].Type
		if t == entity.LocationTypeWarehouse || t == entity.LocationTypeInternal {
			total = total.Add(s.Quantity)
		}
	}
	return total, nil
}

type fakeProductRepo struct{ e *env }

func (r *fakeProductRepo) Create(p *entity.Product) error { r.e.s.products[p.ID] = *p; return nil }

func (r *fakeProductRepo) GetByID(id string) (*entity.Product, error) {
	p, ok := r.e.s.products[id]
	if !ok {
		return nil, nil
	}
	cp := p
	return &cp, nil
}

func (r *fakeProductRepo) GetBySKU(string) (*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) List(string, int, int) ([]*entity.Product, error) { return nil, nil }

func (r *fakeProductRepo) Update(p *entity.Product) error { r.e.s.products[p.ID] = *p; return nil }

func (r *fakeProductRepo) AddTotalStock(productID string, delta decimal.Decimal) error {
	p := r.e.s.products[productID]
	p.TotalStock = p.TotalStock.Add(delta)
	r.e.s.products[productID] = p
	return nil
}

type fakeLocationRepo struct{ e *env }

func (r *fakeLocationRepo) Create(l *entity.Location) error { r.e.s.locations[l.ID] = *l; return nil }

func (r *fakeLocationRepo) GetByID(id string) (*entity.Location, error) {
	l, ok := r.e.s.locations[id]
	if !ok {
		return nil, nil
	}
	cp := l
	return &cp, nil
}

func (r *fakeLocationRepo) List(string, int, int) ([]*entity.Location, error) { return nil, nil }

func (r *fakeLocationRepo) Update(l *entity.Location) error { r.e.s.locations[l.ID] = *l; return nil }

type fakeSeqRepo struct{ e *env }

func (r *fakeSeqRepo) Next(opType string) (int, error) {
	r.e.s.seqs[opType]++
	return r.e.s.seqs[opType], nil
}

type fakeTxRunner struct{ e *env }

func (t *fakeTxRunner) Run(_ context.Context, fn func(
	repository.OperationRepository,
	repository.StockRepository,
	repository.ProductRepository,
	repository.LocationRepository,
	repository.SequenceRepository,
) error) error {
	t.e.snapshots = append(t.e.snapshots, t.e.s.clone())
	err := fn(&fakeOpRepo{t.e}, &fakeStockRepo{t.e}, &fakeProductRepo{t.e}, &fakeLocationRepo{t.e}, &fakeSeqRepo{t.e})
	idx := len(t.e.snapshots) - 1
	snapshot := t.e.snapshots[idx]
	t.e.snapshots = t.e.snapshots[:idx]
	if err != nil {
		t.e.s = snapshot // rollback
		return err
	}
	// Commit. Un Run anidado emula otra conexión: sus escrituras confirmadas
	// sobreviven al rollback del Run que lo envuelve.
	for i := range t.e.snapshots {
		t.e.snapshots[i] = t.e.s.clone()
	}
	return nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Fixture: bodega principal, estante interno, proveedor y cliente; escritorio
// con 50 unidades en bodega y silla sin stock (como el seed de demo).
// ──────────────────────────────────────────────────────────────────────────────

const (
	locWH     = "loc-wh"
	locShelf  = "loc-shelf"
	locVendor = "loc-vendor"
	locCust   = "loc-customer"
	prodDesk  = "prod-desk"
	prodChair = "prod-chair"
)

func newEnv() *env {
	e := &env{s: &store{
		ops:       map[string]entity.Operation{},
		stock:     map[string]entity.Stock{},
		products:  map[string]entity.Product{},
		locations: map[string]entity.Location{},
		seqs:      map[string]int{},
		refs:      map[string]bool{},
	}}
	e.s.locations[locWH] = entity.Location{ID: locWH, Name: "Main Warehouse", Type: entity.LocationTypeWarehouse}
	e.s.locations[locShelf] = entity.Location{ID: locShelf, Name: "Shelf A", Type: entity.LocationTypeInternal}
	e.s.locations[locVendor] = entity.Location{ID: locVendor, Name: "Azure Interior", Type: entity.LocationTypeVendor}
	e.s.locations[locCust] = entity.Location{ID: locCust, Name: "Local Client", Type: entity.LocationTypeCustomer}
	e.s.products[prodDesk] = entity.Product{ID: prodDesk, SKU: "DESK001", Name: "Office Desk", TotalStock: decimal.NewFromInt(50)}
	e.s.products[prodChair] = entity.Product{ID: prodChair, SKU: "CHR001", Name: "Ergo Chair", TotalStock: decimal.Zero}
	e.s.stock[stockKey(prodDesk, locWH)] = entity.Stock{ProductID: prodDesk, LocationID: locWH, Quantity: decimal.NewFromInt(50)}
	return e
}

func newUseCase(e *env) *operations.OperationUseCase {
	return operations.NewOperationUseCase(
		&fakeTxRunner{e},
		&fakeOpRepo{e},
		&fakeProductRepo{e},
		&fakeLocationRepo{e},
		nil,
	)
}

func qty(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func mustCreate(t *testing.T, uc *operations.OperationUseCase, in dto.CreateOperationRequest) *dto.OperationResponse {
	t.Helper()
	out, err := uc.Create(context.Background(), in, "Admin User")
	require.NoError(t, err)
	return out
}

// requireInvariant comprueba la invariante central: TotalStock del producto
// igual a la suma de stock en ubicaciones rastreadas.
func requireInvariant(t *testing.T, e *env, productID string) {
	t.Helper()
	sum, err := (&fakeStockRepo{e}).SumTracked(productID)
	require.NoError(t, err)
	total := e.s.products[productID].TotalStock
	require.True(t, total.Equal(sum),
		"TotalStock (%s) debe igualar la suma de stock rastreado (%s)", total, sum)
}

// ──────────────────────────────────────────────────────────────────────────────
// Creación y referencias
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ReferenciasIndependientesPorTipo(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	lines := []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}}

	r1 := mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt, Items: lines, SourceLocationID: locVendor, DestinationLocationID: locWH})
	r2 := mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt, Items: lines, SourceLocationID: locVendor, DestinationLocationID: locWH})
	d1 := mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeDelivery, Items: lines, SourceLocationID: locWH, DestinationLocationID: locCust})

	assert.Equal(t, "WH/IN/0001", r1.Reference)
	assert.Equal(t, "WH/IN/0002", r2.Reference)
	assert.Equal(t, "WH/OUT/0001", d1.Reference,
		"cada tipo lleva su contador independiente")
}

func TestCreate_ColisionConReferenciaLegadaReintentaUnaVez(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	// Referencia importada antes de que existiera el contador por tipo.
	e.s.refs["WH/IN/0001"] = true

	out := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})
	assert.Equal(t, "WH/IN/0002", out.Reference,
		"la colisión con una referencia legada se resuelve con la siguiente del contador")
}

func TestCreate_DobleColisionSurfaceaDuplicateReference(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	e.s.refs["WH/IN/0001"] = true
	e.s.refs["WH/IN/0002"] = true

	_, err := uc.Create(context.Background(), dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	}, "Admin User")
	assert.ErrorIs(t, err, domain.ErrDuplicateReference,
		"tras el único reintento la segunda colisión se rinde")
	assert.Empty(t, e.s.ops, "la operación no debe quedar creada")
}

func TestCreate_FalloDeInfraEnElReintentoNoSeEnmascara(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	e.s.refs["WH/IN/0001"] = true
	errInfra := errors.New("conexión caída")
	e.createErr = errInfra

	_, err := uc.Create(context.Background(), dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	}, "Admin User")
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrDuplicateReference,
		"un fallo que no es colisión debe llegar tal cual al caller")
	assert.ErrorIs(t, err, errInfra)
}

func TestCreate_EstadoPorDefectoEsDraft(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	out := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(10)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})
	assert.Equal(t, entity.StatusDraft, out.Status)
}

func TestCreate_EntregaSinDisponibilidadPasaAWaiting(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	// Stock(Desk, WH) = 50; se piden 60 con estado READY.
	out := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeDelivery,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(60)}},
		SourceLocationID:      locWH,
		DestinationLocationID: locCust,
		Status:                entity.StatusReady,
	})
	assert.Equal(t, entity.StatusWaiting, out.Status,
		"entrega sin stock suficiente debe forzarse a WAITING")
}

func TestCreate_DraftExplicitoNoSeFuerzaAWaiting(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	out := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeDelivery,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(60)}},
		SourceLocationID:      locWH,
		DestinationLocationID: locCust,
		Status:                entity.StatusDraft,
	})
	assert.Equal(t, entity.StatusDraft, out.Status,
		"DRAFT pedido explícitamente se respeta aunque falte stock")
}

func TestCreate_EntradaInvalida(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	ctx := context.Background()
	lines := []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}}

	_, err := uc.Create(ctx, dto.CreateOperationRequest{Type: "PICKING", Items: lines}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "tipo desconocido")

	_, err = uc.Create(ctx, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "sin líneas")

	_, err = uc.Create(ctx, dto.CreateOperationRequest{
		Type:  entity.OperationTypeReceipt,
		Items: []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(0)}},
	}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "cantidad cero")

	_, err = uc.Create(ctx, dto.CreateOperationRequest{
		Type:  entity.OperationTypeReceipt,
		Items: []dto.OperationItemRequest{{ProductID: "prod-fantasma", Quantity: qty(1)}},
	}, "")
	assert.ErrorIs(t, err, domain.ErrNotFound, "producto inexistente")

	_, err = uc.Create(ctx, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt, Items: lines, Status: entity.StatusDone}, "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "DONE solo se alcanza validando")
}

// ──────────────────────────────────────────────────────────────────────────────
// Validación
// ──────────────────────────────────────────────────────────────────────────────

func TestValidate_RecepcionSumaStockYCacheTotal(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	// Proveedor → bodega: 50 sillas. Proveedor no rastreado, bodega sí.
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodChair, Quantity: qty(50)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})

	out, err := uc.Validate(context.Background(), op.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusDone, out.Status)

	stock := e.s.stock[stockKey(prodChair, locWH)]
	assert.True(t, qty(50).Equal(stock.Quantity))
	assert.True(t, qty(50).Equal(e.s.products[prodChair].TotalStock),
		"totalChange = +50 al entrar al sistema rastreado")
	requireInvariant(t, e, prodChair)
}

func TestValidate_EntregaDescuentaStockYTotal(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeDelivery,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(20)}},
		SourceLocationID:      locWH,
		DestinationLocationID: locCust,
	})

	_, err := uc.Validate(context.Background(), op.ID)
	require.NoError(t, err)

	assert.True(t, qty(30).Equal(e.s.stock[stockKey(prodDesk, locWH)].Quantity))
	assert.True(t, qty(30).Equal(e.s.products[prodDesk].TotalStock))
	requireInvariant(t, e, prodDesk)
}

func TestValidate_TrasladoInternoNoCambiaElTotal(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	// Bodega → estante interno: el total no cambia, solo el reparto.
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeAdjustment,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(10)}},
		SourceLocationID:      locWH,
		DestinationLocationID: locShelf,
	})

	_, err := uc.Validate(context.Background(), op.ID)
	require.NoError(t, err)

	assert.True(t, qty(40).Equal(e.s.stock[stockKey(prodDesk, locWH)].Quantity))
	assert.True(t, qty(10).Equal(e.s.stock[stockKey(prodDesk, locShelf)].Quantity))
	assert.True(t, qty(50).Equal(e.s.products[prodDesk].TotalStock))
	requireInvariant(t, e, prodDesk)
}

func TestValidate_PrimerMovimientoConcurrenteAcumulaEnVezDePisar(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	lines := func(n int64) []dto.OperationItemRequest {
		return []dto.OperationItemRequest{{ProductID: prodChair, Quantity: qty(n)}}
	}
	opA := mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt, Items: lines(50), SourceLocationID: locVendor, DestinationLocationID: locWH})
	opB := mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt, Items: lines(30), SourceLocationID: locVendor, DestinationLocationID: locWH})

	// La fila (silla, bodega) no existe todavía: la primera validación la crea.
	_, err := uc.Validate(context.Background(), opA.ID)
	require.NoError(t, err)

	// La segunda arrancó antes del commit de la primera y no ve la fila
	// nueva. Su escritura debe sumar el delta, no fijar la cantidad absoluta
	// que calculó sobre la lectura vieja.
	e.staleStockReads = true
	_, err = uc.Validate(context.Background(), opB.ID)
	require.NoError(t, err)
	e.staleStockReads = false

	assert.True(t, qty(80).Equal(e.s.stock[stockKey(prodChair, locWH)].Quantity),
		"las 50 unidades de la primera recepción no deben perderse")
	assert.True(t, qty(80).Equal(e.s.products[prodChair].TotalStock))
	requireInvariant(t, e, prodChair)
}

func TestValidate_StockInsuficienteNoMutaNada(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeDelivery,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(60)}},
		SourceLocationID:      locWH,
		DestinationLocationID: locCust,
	})
	require.Equal(t, entity.StatusWaiting, op.Status)

	_, err := uc.Validate(context.Background(), op.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var detail *domain.InsufficientStockError
	require.ErrorAs(t, err, &detail)
	assert.Equal(t, prodDesk, detail.ProductID)
	assert.Equal(t, "Main Warehouse", detail.LocationName)

	assert.True(t, qty(50).Equal(e.s.stock[stockKey(prodDesk, locWH)].Quantity),
		"el stock debe quedar intacto")
	assert.Equal(t, entity.StatusWaiting, e.s.ops[op.ID].Status,
		"el estado no debe cambiar")
}

func TestValidate_LineaInsuficienteRevierteLasAnteriores(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	// Dos líneas: la primera tiene stock de sobra, la segunda no tiene nada.
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type: entity.OperationTypeDelivery,
		Items: []dto.OperationItemRequest{
			{ProductID: prodDesk, Quantity: qty(10)},
			{ProductID: prodChair, Quantity: qty(5)},
		},
		SourceLocationID:      locWH,
		DestinationLocationID: locCust,
		Status:                entity.StatusDraft,
	})

	_, err := uc.Validate(context.Background(), op.ID)
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	assert.True(t, qty(50).Equal(e.s.stock[stockKey(prodDesk, locWH)].Quantity),
		"la línea 1 aplicada debe revertirse con el rollback")
	assert.True(t, qty(50).Equal(e.s.products[prodDesk].TotalStock))
	assert.Equal(t, entity.StatusDraft, e.s.ops[op.ID].Status)
	requireInvariant(t, e, prodDesk)
	requireInvariant(t, e, prodChair)
}

func TestValidate_DosVecesRechazaLaSegunda(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})

	_, err := uc.Validate(context.Background(), op.ID)
	require.NoError(t, err)

	_, err = uc.Validate(context.Background(), op.ID)
	require.ErrorIs(t, err, domain.ErrAlreadyDone)

	assert.True(t, qty(55).Equal(e.s.stock[stockKey(prodDesk, locWH)].Quantity),
		"la segunda validación no debe aplicar movimientos")
	requireInvariant(t, e, prodDesk)
}

func TestValidate_OperacionInexistente(t *testing.T) {
	uc := newUseCase(newEnv())
	_, err := uc.Validate(context.Background(), "op-fantasma")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Edición
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdate_OperacionValidadaRechazada(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})
	_, err := uc.Validate(context.Background(), op.ID)
	require.NoError(t, err)

	_, err = uc.Update(context.Background(), op.ID, dto.UpdateOperationRequest{Contact: "Otro"})
	assert.ErrorIs(t, err, domain.ErrAlreadyDone)
}

func TestUpdate_ValidacionQueGanaElCandadoNoSeDesvalida(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})

	// Otra conexión valida y confirma mientras la edición espera el candado
	// de la fila. La edición debe ver DONE al obtenerlo, no pisarlo con su
	// lectura vieja.
	e.onOpLock = func() {
		_, err := uc.Validate(context.Background(), op.ID)
		require.NoError(t, err)
	}
	_, err := uc.Update(context.Background(), op.ID, dto.UpdateOperationRequest{Contact: "Otro"})
	require.ErrorIs(t, err, domain.ErrAlreadyDone)

	assert.Equal(t, entity.StatusDone, e.s.ops[op.ID].Status,
		"una operación validada no puede des-validarse por edición")
	assert.True(t, qty(55).Equal(e.s.stock[stockKey(prodDesk, locWH)].Quantity),
		"el movimiento confirmado por la validación se conserva")
	requireInvariant(t, e, prodDesk)
}

func TestUpdate_CambioDeEstadoExplicito(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
	})

	out, err := uc.Update(context.Background(), op.ID, dto.UpdateOperationRequest{Status: entity.StatusReady})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusReady, out.Status)

	// DONE por edición directa está prohibido: solo la validación lo asigna.
	_, err = uc.Update(context.Background(), op.ID, dto.UpdateOperationRequest{Status: entity.StatusDone})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_EditaCamposSinTocarEstado(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	op := mustCreate(t, uc, dto.CreateOperationRequest{
		Type:                  entity.OperationTypeReceipt,
		Items:                 []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(5)}},
		SourceLocationID:      locVendor,
		DestinationLocationID: locWH,
		Contact:               "Azure Interior",
	})

	when := time.Date(2026, 9, 15, 10, 0, 0, 0, time.UTC)
	out, err := uc.Update(context.Background(), op.ID, dto.UpdateOperationRequest{
		Contact:      "Deco Addict",
		ScheduleDate: &when,
		Items:        []dto.OperationItemRequest{{ProductID: prodChair, Quantity: qty(8)}},
	})
	require.NoError(t, err)

	assert.Equal(t, entity.StatusDraft, out.Status, "editar no cambia el estado por sí solo")
	assert.Equal(t, "Deco Addict", out.Contact)
	assert.True(t, when.Equal(out.ScheduleDate))
	require.Len(t, out.Items, 1)
	assert.Equal(t, prodChair, out.Items[0].ProductID)
}

func TestList_FiltraPorTipo(t *testing.T) {
	e := newEnv()
	uc := newUseCase(e)
	lines := []dto.OperationItemRequest{{ProductID: prodDesk, Quantity: qty(1)}}
	mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeReceipt, Items: lines, DestinationLocationID: locWH})
	mustCreate(t, uc, dto.CreateOperationRequest{Type: entity.OperationTypeDelivery, Items: lines, SourceLocationID: locWH})

	out, err := uc.List(context.Background(), dto.ListOperationsRequest{Type: entity.OperationTypeReceipt})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, entity.OperationTypeReceipt, out.Items[0].Type)

	_, err = uc.List(context.Background(), dto.ListOperationsRequest{Type: "PICKING"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// errors.Is sobre el wrap del centinela desde el typed error
func TestInsufficientStockError_EsElCentinela(t *testing.T) {
	err := &domain.InsufficientStockError{ProductID: "p", LocationID: "l", LocationName: "WH"}
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
}
