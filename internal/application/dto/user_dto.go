package dto

// RegisterRequest alta de usuario. LoginID: 6-12 caracteres; Password:
// más de 8 caracteres con mayúscula, minúscula y carácter especial.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	LoginID  string `json:"loginId"`
	Role     string `json:"role"` // MANAGER | STAFF (default STAFF)
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	LoginID  string `json:"loginId"`
	Password string `json:"password"`
}

// AuthResponse usuario autenticado con su token.
type AuthResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Token string `json:"token"`
}
