package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrUserAlreadyExists  = errors.New("el email o login id ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrDuplicateReference = errors.New("referencia de operación duplicada")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrAlreadyDone        = errors.New("la operación ya fue validada")
	ErrInsufficientStock  = errors.New("stock insuficiente")
)

// InsufficientStockError identifica el producto y la ubicación que hicieron
// fallar una validación. Compatible con errors.Is(err, ErrInsufficientStock).
type InsufficientStockError struct {
	ProductID    string
	LocationID   string
	LocationName string
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente del producto %s en %s", e.ProductID, e.LocationName)
}

// Is permite tratar el error tipado como el centinela ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
