package entity

import "time"

// Roles conocidos. Conjunto cerrado: cualquier otro valor se niega por defecto.
const (
	RoleAdmin      = "admin"
	RoleSales      = "sales"
	RolePurchasing = "purchasing"
	RoleUser       = "user"
)

// KnownRole indica si el rol pertenece al conjunto cerrado.
func KnownRole(role string) bool {
	switch role {
	case RoleAdmin, RoleSales, RolePurchasing, RoleUser:
		return true
	}
	return false
}

// User usuario de la aplicación. El password se guarda hasheado con bcrypt.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
