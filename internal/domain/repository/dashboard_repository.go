package repository

import (
	"context"
	"time"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
)

// DashboardRepository consultas read-only para los KPIs del dashboard.
type DashboardRepository interface {
	CountProducts(ctx context.Context) (int, error)
	// CountLowStock cuenta productos con total_stock < min_stock.
	CountLowStock(ctx context.Context) (int, error)
	// OperationStats cuenta operaciones activas del tipo dado, partidas en
	// atrasadas (scheduleDate < now) y vigentes (>= now), más las WAITING.
	OperationStats(ctx context.Context, opType string, now time.Time) (dto.OperationKPIs, error)
}
