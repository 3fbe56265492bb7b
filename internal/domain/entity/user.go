package entity

import "time"

// Roles de usuario.
const (
	RoleManager = "MANAGER"
	RoleStaff   = "STAFF"
)

// User representa un usuario del sistema. LoginID es el identificador de
// acceso (6-12 caracteres) que exige el wireframe de autenticación.
type User struct {
	ID           string
	Name         string
	Email        string
	LoginID      string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
