package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas read-only para los KPIs del dashboard.
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador del dashboard. Pasar pool o tx (Querier).
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountProducts cuenta todos los productos registrados.
func (r *DashboardRepo) CountProducts(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count products: %w", err)
	}
	return n, nil
}

// CountLowStock cuenta productos con el total por debajo de su mínimo.
func (r *DashboardRepo) CountLowStock(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM products WHERE total_stock < min_stock`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count low stock: %w", err)
	}
	return n, nil
}

// OperationStats cuenta operaciones activas (ni DONE ni CANCELLED) del tipo
// dado, partidas en atrasadas y vigentes por fecha programada, más las
// WAITING. Una sola pasada con agregados condicionales.
func (r *DashboardRepo) OperationStats(ctx context.Context, opType string, now time.Time) (dto.OperationKPIs, error) {
	query := `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE schedule_date < $2),
			COUNT(*) FILTER (WHERE schedule_date >= $2),
			COUNT(*) FILTER (WHERE status = 'WAITING')
		FROM operations
		WHERE type = $1 AND status NOT IN ('DONE', 'CANCELLED')`
	var kpis dto.OperationKPIs
	err := r.q.QueryRow(ctx, query, opType, now).Scan(
		&kpis.ToDo, &kpis.Late, &kpis.Operations, &kpis.Waiting,
	)
	if err != nil {
		return dto.OperationKPIs{}, fmt.Errorf("operation stats %s: %w", opType, err)
	}
	return kpis, nil
}
