package entity

import "time"

// Tipos de ubicación. WAREHOUSE e INTERNAL son rastreadas (su stock se cuenta);
// VENDOR y CUSTOMER son fuentes/sumideros infinitos fuera del sistema contado.
const (
	LocationTypeWarehouse = "WAREHOUSE"
	LocationTypeInternal  = "INTERNAL"
	LocationTypeVendor    = "VENDOR"
	LocationTypeCustomer  = "CUSTOMER"
)

// Location representa una ubicación física o virtual de inventario.
// ParentID modela jerarquía (ej. estante dentro de una bodega), solo para display.
type Location struct {
	ID        string
	Name      string
	ShortCode string // ej. "WH", "SH-A"
	Type      string
	Address   string
	ParentID  string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidLocationType verifica que el tipo sea uno de los cuatro conocidos.
func ValidLocationType(t string) bool {
	switch t {
	case LocationTypeWarehouse, LocationTypeInternal, LocationTypeVendor, LocationTypeCustomer:
		return true
	}
	return false
}
