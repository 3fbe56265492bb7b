package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de operación de almacén.
const (
	OperationTypeReceipt    = "RECEIPT"    // entrada (proveedor → bodega)
	OperationTypeDelivery   = "DELIVERY"   // salida (bodega → cliente)
	OperationTypeAdjustment = "ADJUSTMENT" // ajuste de inventario
)

// Estados del ciclo de vida de una operación. DONE y CANCELLED son terminales;
// DONE solo se alcanza vía validación y es irreversible.
const (
	StatusDraft     = "DRAFT"
	StatusWaiting   = "WAITING" // esperando stock (entregas sin disponibilidad)
	StatusReady     = "READY"
	StatusDone      = "DONE"
	StatusCancelled = "CANCELLED"
)

// OperationItem es una línea de la operación: producto y cantidad solicitada.
// ProductName y ProductSKU se pueblan en lecturas (join con products).
type OperationItem struct {
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    decimal.Decimal
}

// Operation representa un movimiento planificado de mercancía entre dos
// ubicaciones. La referencia (ej. WH/IN/0004) es única y generada al crear.
type Operation struct {
	ID                      string
	Reference               string
	Type                    string
	Status                  string
	ScheduleDate            time.Time
	SourceLocationID        string
	DestinationLocationID   string
	SourceLocationName      string // join, solo lectura
	DestinationLocationName string // join, solo lectura
	Contact                 string // nombre del proveedor o cliente
	Responsible             string // usuario que creó la operación
	Items                   []OperationItem
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// ValidOperationType verifica el tipo de operación.
func ValidOperationType(t string) bool {
	switch t {
	case OperationTypeReceipt, OperationTypeDelivery, OperationTypeAdjustment:
		return true
	}
	return false
}

// ValidStatus verifica que el estado sea uno del ciclo de vida.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusWaiting, StatusReady, StatusDone, StatusCancelled:
		return true
	}
	return false
}

// IsDone indica si la operación ya fue validada (estado terminal).
func (o *Operation) IsDone() bool { return o.Status == StatusDone }
