package auth

// ValidPassword aplica la regla del wireframe de registro: más de 8
// caracteres, con al menos una mayúscula, una minúscula y un carácter
// especial. Sin regex: el RE2 de Go no soporta lookaheads.
func ValidPassword(password string) bool {
	if len(password) <= 8 {
		return false
	}
	var hasUpper, hasLower, hasSpecial bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= '0' && r <= '9':
			// los dígitos no cuentan como especiales
		default:
			hasSpecial = true
		}
	}
	return hasUpper && hasLower && hasSpecial
}
