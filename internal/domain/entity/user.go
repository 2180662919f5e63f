package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin     = "admin"
	RoleWarehouse = "bodeguero"
	RoleViewer    = "consulta"
)

// User representa un usuario del sistema (autenticación JWT + RBAC).
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}
