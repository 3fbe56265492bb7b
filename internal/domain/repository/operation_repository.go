package repository

import "github.com/stockmaster/warehouse-api/internal/domain/entity"

// OperationFilter filtros del listado de operaciones.
// Search busca substring case-insensitive en referencia o contacto.
type OperationFilter struct {
	Type   string
	Status string
	Search string
	Limit  int
	Offset int
}

// OperationRepository puerto de persistencia para operaciones y sus líneas.
type OperationRepository interface {
	// Create inserta la operación y sus items. Devuelve domain.ErrDuplicate
	// si la referencia ya existe (constraint único).
	Create(op *entity.Operation) error
	GetByID(id string) (*entity.Operation, error)
	// GetForUpdate bloquea la fila de la operación (SELECT FOR UPDATE) para
	// que dos validaciones concurrentes se serialicen.
	GetForUpdate(id string) (*entity.Operation, error)
	// List devuelve operaciones con items y nombres de ubicación poblados,
	// ordenadas por fecha de creación descendente.
	List(filter OperationFilter) ([]*entity.Operation, error)
	// Update reescribe los campos editables y reemplaza las líneas.
	Update(op *entity.Operation) error
	UpdateStatus(id, status string) error
}
