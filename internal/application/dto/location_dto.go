package dto

import "time"

// CreateLocationRequest alta de ubicación.
type CreateLocationRequest struct {
	Name      string `json:"name"`
	ShortCode string `json:"shortCode"`
	Type      string `json:"type"` // WAREHOUSE | INTERNAL | VENDOR | CUSTOMER
	Address   string `json:"address"`
	ParentID  string `json:"parentId"`
}

// UpdateLocationRequest edición de ubicación: solo nombre y dirección.
// El tipo y la jerarquía son configuración, no se mutan por API.
type UpdateLocationRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
}

// LocationResponse representación de una ubicación.
type LocationResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	ShortCode string    `json:"shortCode"`
	Type      string    `json:"type"`
	Address   string    `json:"address"`
	ParentID  string    `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// LocationListResponse listado paginado de ubicaciones.
type LocationListResponse struct {
	Items []LocationResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
