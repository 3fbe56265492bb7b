package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OperationItemRequest línea de una operación: producto y cantidad (> 0).
type OperationItemRequest struct {
	ProductID string          `json:"productId"`
	Quantity  decimal.Decimal `json:"quantity"`
}

// CreateOperationRequest creación de operación. Status es opcional: el
// default es DRAFT, y para entregas sin disponibilidad el motor lo fuerza
// a WAITING (salvo que se pida DRAFT explícitamente). DONE no es aceptado:
// solo se alcanza validando.
type CreateOperationRequest struct {
	Type                  string                 `json:"type"`
	Items                 []OperationItemRequest `json:"items"`
	SourceLocationID      string                 `json:"sourceLocation"`
	DestinationLocationID string                 `json:"destinationLocation"`
	ScheduleDate          *time.Time             `json:"scheduleDate"`
	Contact               string                 `json:"contact"`
	Status                string                 `json:"status"`
}

// UpdateOperationRequest edición de una operación no validada. Campos
// vacíos/nulos no se modifican; Items nil conserva las líneas actuales.
type UpdateOperationRequest struct {
	Items                 []OperationItemRequest `json:"items"`
	SourceLocationID      string                 `json:"sourceLocation"`
	DestinationLocationID string                 `json:"destinationLocation"`
	ScheduleDate          *time.Time             `json:"scheduleDate"`
	Contact               string                 `json:"contact"`
	Status                string                 `json:"status"` // ej. DRAFT → READY; DONE rechazado
}

// OperationItemResponse línea con datos del producto poblados.
type OperationItemResponse struct {
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductSKU  string          `json:"productSku"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// OperationResponse representación completa de una operación.
type OperationResponse struct {
	ID                      string                  `json:"id"`
	Reference               string                  `json:"reference"`
	Type                    string                  `json:"type"`
	Status                  string                  `json:"status"`
	ScheduleDate            time.Time               `json:"scheduleDate"`
	SourceLocationID        string                  `json:"sourceLocation,omitempty"`
	SourceLocationName      string                  `json:"sourceLocationName,omitempty"`
	DestinationLocationID   string                  `json:"destinationLocation,omitempty"`
	DestinationLocationName string                  `json:"destinationLocationName,omitempty"`
	Contact                 string                  `json:"contact,omitempty"`
	Responsible             string                  `json:"responsible,omitempty"`
	Items                   []OperationItemResponse `json:"items"`
	CreatedAt               time.Time               `json:"createdAt"`
}

// OperationListResponse listado de operaciones (más recientes primero).
type OperationListResponse struct {
	Items []OperationResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}

// ListOperationsRequest filtros del listado.
type ListOperationsRequest struct {
	Type   string `query:"type"`
	Status string `query:"status"`
	Search string `query:"search"`
	PageRequest
}
