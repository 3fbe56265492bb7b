package repository

import "github.com/stockmaster/warehouse-api/internal/domain/entity"

// UserRepository puerto de persistencia para usuarios.
type UserRepository interface {
	Create(user *entity.User) error
	GetByLoginID(loginID string) (*entity.User, error)
	GetByEmail(email string) (*entity.User, error)
}
