package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/stockmaster/warehouse-api/internal/domain"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

var _ repository.OperationRepository = (*OperationRepo)(nil)

// OperationRepo implementación de OperationRepository sobre PostgreSQL
// (usable con pool o tx). Maneja la cabecera y las líneas juntas.
type OperationRepo struct {
	q Querier
}

// NewOperationRepository construye el adaptador de operaciones. Pasar pool o tx (Querier).
func NewOperationRepository(q Querier) *OperationRepo {
	return &OperationRepo{q: q}
}

const operationColumns = `
	o.id, o.reference, o.type, o.status, o.schedule_date,
	COALESCE(o.source_location_id, ''), COALESCE(o.destination_location_id, ''),
	COALESCE(src.name, ''), COALESCE(dst.name, ''),
	o.contact, o.responsible, o.created_at, o.updated_at`

const operationJoins = `
	FROM operations o
	LEFT JOIN locations src ON src.id = o.source_location_id
	LEFT JOIN locations dst ON dst.id = o.destination_location_id`

// Create inserta la operación y sus líneas. Devuelve domain.ErrDuplicate si
// la referencia choca con el constraint único (el caller reintenta con la
// siguiente del contador).
func (r *OperationRepo) Create(op *entity.Operation) error {
	query := `
		INSERT INTO operations (id, reference, type, status, schedule_date, source_location_id, destination_location_id, contact, responsible, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), NULLIF($7, ''), $8, $9, $10, $11)`
	_, err := r.q.Exec(context.Background(), query,
		op.ID, op.Reference, op.Type, op.Status, op.ScheduleDate,
		op.SourceLocationID, op.DestinationLocationID,
		op.Contact, op.Responsible, op.CreatedAt, op.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert operation: %w", err)
	}
	return r.insertItems(op.ID, op.Items)
}

// GetByID obtiene una operación con sus líneas. Devuelve (nil, nil) si no existe.
func (r *OperationRepo) GetByID(id string) (*entity.Operation, error) {
	return r.get(id, false)
}

// GetForUpdate obtiene la operación bloqueando su fila (SELECT FOR UPDATE)
// para que dos validaciones concurrentes se serialicen.
func (r *OperationRepo) GetForUpdate(id string) (*entity.Operation, error) {
	return r.get(id, true)
}

func (r *OperationRepo) get(id string, forUpdate bool) (*entity.Operation, error) {
	query := `SELECT` + operationColumns + operationJoins + ` WHERE o.id = $1`
	if forUpdate {
		// FOR UPDATE OF o: solo la fila de la operación, no las ubicaciones del join.
		query += ` FOR UPDATE OF o`
	}
	var op entity.Operation
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&op.ID, &op.Reference, &op.Type, &op.Status, &op.ScheduleDate,
		&op.SourceLocationID, &op.DestinationLocationID,
		&op.SourceLocationName, &op.DestinationLocationName,
		&op.Contact, &op.Responsible, &op.CreatedAt, &op.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	items, err := r.listItems([]string{op.ID})
	if err != nil {
		return nil, err
	}
	op.Items = items[op.ID]
	return &op, nil
}

// List devuelve operaciones con líneas y nombres de ubicación poblados,
// ordenadas de más reciente a más antigua.
func (r *OperationRepo) List(filter repository.OperationFilter) ([]*entity.Operation, error) {
	query := `SELECT` + operationColumns + operationJoins + `
		WHERE ($1 = '' OR o.type = $1)
		  AND ($2 = '' OR o.status = $2)
		  AND ($3 = '' OR o.reference ILIKE '%' || $3 || '%' OR o.contact ILIKE '%' || $3 || '%')
		ORDER BY o.created_at DESC LIMIT $4 OFFSET $5`
	rows, err := r.q.Query(context.Background(), query,
		filter.Type, filter.Status, filter.Search, filter.Limit, filter.Offset)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	defer rows.Close()

	var list []*entity.Operation
	var ids []string
	for rows.Next() {
		var op entity.Operation
		if err := rows.Scan(
			&op.ID, &op.Reference, &op.Type, &op.Status, &op.ScheduleDate,
			&op.SourceLocationID, &op.DestinationLocationID,
			&op.SourceLocationName, &op.DestinationLocationName,
			&op.Contact, &op.Responsible, &op.CreatedAt, &op.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan operation: %w", err)
		}
		list = append(list, &op)
		ids = append(ids, op.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return list, nil
	}

	items, err := r.listItems(ids)
	if err != nil {
		return nil, err
	}
	for _, op := range list {
		op.Items = items[op.ID]
	}
	return list, nil
}

// Update reescribe los campos editables de la cabecera y reemplaza las
// líneas. La escritura es condicional sobre el estado: una operación ya
// validada no se toca (DONE es terminal) y se devuelve ErrAlreadyDone aunque
// el chequeo previo del caso de uso hubiera visto otro estado.
func (r *OperationRepo) Update(op *entity.Operation) error {
	query := `
		UPDATE operations
		SET status = $2, schedule_date = $3,
		    source_location_id = NULLIF($4, ''), destination_location_id = NULLIF($5, ''),
		    contact = $6, updated_at = $7
		WHERE id = $1 AND status <> 'DONE'`
	tag, err := r.q.Exec(context.Background(), query,
		op.ID, op.Status, op.ScheduleDate,
		op.SourceLocationID, op.DestinationLocationID,
		op.Contact, op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrAlreadyDone
	}
	if _, err := r.q.Exec(context.Background(),
		`DELETE FROM operation_items WHERE operation_id = $1`, op.ID); err != nil {
		return fmt.Errorf("delete operation items: %w", err)
	}
	return r.insertItems(op.ID, op.Items)
}

// UpdateStatus cambia solo el estado (lo usa la validación para marcar DONE).
func (r *OperationRepo) UpdateStatus(id, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE operations SET status = $2, updated_at = now() WHERE id = $1`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("update operation status: %w", err)
	}
	return nil
}

func (r *OperationRepo) insertItems(operationID string, items []entity.OperationItem) error {
	query := `
		INSERT INTO operation_items (operation_id, line_no, product_id, quantity)
		VALUES ($1, $2, $3, $4)`
	for i, item := range items {
		if _, err := r.q.Exec(context.Background(), query,
			operationID, i+1, item.ProductID, item.Quantity); err != nil {
			return fmt.Errorf("insert operation item: %w", err)
		}
	}
	return nil
}

// listItems carga las líneas de un lote de operaciones en una sola consulta.
func (r *OperationRepo) listItems(operationIDs []string) (map[string][]entity.OperationItem, error) {
	query := `
		SELECT i.operation_id, i.product_id, p.name, p.sku, i.quantity
		FROM operation_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.operation_id = ANY($1)
		ORDER BY i.operation_id, i.line_no`
	rows, err := r.q.Query(context.Background(), query, operationIDs)
	if err != nil {
		return nil, fmt.Errorf("list operation items: %w", err)
	}
	defer rows.Close()

	items := make(map[string][]entity.OperationItem)
	for rows.Next() {
		var opID string
		var item entity.OperationItem
		if err := rows.Scan(&opID, &item.ProductID, &item.ProductName, &item.ProductSKU, &item.Quantity); err != nil {
			return nil, fmt.Errorf("scan operation item: %w", err)
		}
		items[opID] = append(items[opID], item)
	}
	return items, rows.Err()
}
