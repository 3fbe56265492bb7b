package repository

import "github.com/stockmaster/warehouse-api/internal/domain/entity"

// LocationRepository puerto de persistencia para ubicaciones.
type LocationRepository interface {
	Create(location *entity.Location) error
	GetByID(id string) (*entity.Location, error)
	// List filtra por tipo si locType no es vacío; orden: más recientes primero.
	List(locType string, limit, offset int) ([]*entity.Location, error)
	Update(location *entity.Location) error
}
