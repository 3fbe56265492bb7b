// Package analytics contiene el caso de uso del dashboard de almacén:
// tarjetas de inventario y conteos de recepciones/entregas activas.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// DashboardUseCase construye los KPIs del dashboard.
//
// Fuente de datos: DashboardRepository (consultas read-only); no toca las
// tablas de operaciones directamente.
type DashboardUseCase struct {
	dashboardRepo repository.DashboardRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(dashboardRepo repository.DashboardRepository) *DashboardUseCase {
	return &DashboardUseCase{dashboardRepo: dashboardRepo}
}

// GetStats arma el DashboardResponse. Cuatro llamadas en paralelo:
//
//  1. CountProducts            → Inventory.TotalProducts
//  2. CountLowStock            → Inventory.LowStock (totalStock < minStock)
//  3. OperationStats(RECEIPT)  → Receipts
//  4. OperationStats(DELIVERY) → Deliveries
func (uc *DashboardUseCase) GetStats(ctx context.Context) (*dto.DashboardResponse, error) {
	now := time.Now()

	type countResult struct {
		n   int
		err error
	}
	type statsResult struct {
		kpis dto.OperationKPIs
		err  error
	}

	productsCh := make(chan countResult, 1)
	lowStockCh := make(chan countResult, 1)
	receiptsCh := make(chan statsResult, 1)
	deliveriesCh := make(chan statsResult, 1)

	go func() {
		n, err := uc.dashboardRepo.CountProducts(ctx)
		productsCh <- countResult{n, err}
	}()
	go func() {
		n, err := uc.dashboardRepo.CountLowStock(ctx)
		lowStockCh <- countResult{n, err}
	}()
	go func() {
		kpis, err := uc.dashboardRepo.OperationStats(ctx, entity.OperationTypeReceipt, now)
		receiptsCh <- statsResult{kpis, err}
	}()
	go func() {
		kpis, err := uc.dashboardRepo.OperationStats(ctx, entity.OperationTypeDelivery, now)
		deliveriesCh <- statsResult{kpis, err}
	}()

	products := <-productsCh
	lowStock := <-lowStockCh
	receipts := <-receiptsCh
	deliveries := <-deliveriesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: total de productos: %w", products.err)
	}
	if lowStock.err != nil {
		return nil, fmt.Errorf("dashboard: productos bajo mínimo: %w", lowStock.err)
	}
	if receipts.err != nil {
		return nil, fmt.Errorf("dashboard: recepciones: %w", receipts.err)
	}
	if deliveries.err != nil {
		return nil, fmt.Errorf("dashboard: entregas: %w", deliveries.err)
	}

	return &dto.DashboardResponse{
		Inventory: dto.InventoryKPIs{
			TotalProducts: products.n,
			LowStock:      lowStock.n,
		},
		Receipts: dto.ReceiptKPIs{
			ToReceive:  receipts.kpis.ToDo,
			Late:       receipts.kpis.Late,
			Operations: receipts.kpis.Operations,
		},
		Deliveries: dto.DeliveryKPIs{
			ToDeliver:  deliveries.kpis.ToDo,
			Late:       deliveries.kpis.Late,
			Waiting:    deliveries.kpis.Waiting,
			Operations: deliveries.kpis.Operations,
		},
	}, nil
}
