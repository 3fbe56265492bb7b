package usecase

import (
	"time"

	"github.com/google/uuid"

	"github.com/stockmaster/warehouse-api/internal/application/dto"
	"github.com/stockmaster/warehouse-api/internal/domain"
	"github.com/stockmaster/warehouse-api/internal/domain/entity"
	"github.com/stockmaster/warehouse-api/internal/domain/repository"
)

// LocationUseCase CRUD de ubicaciones. Las ubicaciones son configuración:
// se crean, rara vez se editan (solo nombre/dirección) y nunca se borran.
type LocationUseCase struct {
	locationRepo repository.LocationRepository
}

// NewLocationUseCase construye el caso de uso.
func NewLocationUseCase(locationRepo repository.LocationRepository) *LocationUseCase {
	return &LocationUseCase{locationRepo: locationRepo}
}

// Create da de alta una ubicación. El padre (jerarquía de display) debe
// existir si se indica.
func (uc *LocationUseCase) Create(in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if in.Name == "" || in.ShortCode == "" || !entity.ValidLocationType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if in.ParentID != "" {
		parent, err := uc.locationRepo.GetByID(in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.ErrNotFound
		}
	}
	now := time.Now()
	location := &entity.Location{
		ID:        uuid.New().String(),
		Name:      in.Name,
		ShortCode: in.ShortCode,
		Type:      in.Type,
		Address:   in.Address,
		ParentID:  in.ParentID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.locationRepo.Create(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

// GetByID devuelve una ubicación.
func (uc *LocationUseCase) GetByID(id string) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	return toLocationResponse(location), nil
}

// List lista ubicaciones, opcionalmente filtradas por tipo.
func (uc *LocationUseCase) List(locType string, page dto.PageRequest) (*dto.LocationListResponse, error) {
	if locType != "" && !entity.ValidLocationType(locType) {
		return nil, domain.ErrInvalidInput
	}
	page.DefaultPage()
	locations, err := uc.locationRepo.List(locType, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := &dto.LocationListResponse{
		Items: make([]dto.LocationResponse, 0, len(locations)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, l := range locations {
		out.Items = append(out.Items, *toLocationResponse(l))
	}
	return out, nil
}

// Update edita nombre y dirección; el tipo y la jerarquía no se mutan.
func (uc *LocationUseCase) Update(id string, in dto.UpdateLocationRequest) (*dto.LocationResponse, error) {
	location, err := uc.locationRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if location == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != "" {
		location.Name = in.Name
	}
	if in.Address != "" {
		location.Address = in.Address
	}
	location.UpdatedAt = time.Now()
	if err := uc.locationRepo.Update(location); err != nil {
		return nil, err
	}
	return toLocationResponse(location), nil
}

func toLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		Name:      l.Name,
		ShortCode: l.ShortCode,
		Type:      l.Type,
		Address:   l.Address,
		ParentID:  l.ParentID,
		CreatedAt: l.CreatedAt,
	}
}
