package entity

import "time"

// User representa un usuario autenticado por un proveedor externo (GitHub, Google, ...).
// Email es la clave natural única.
type User struct {
	ID            string
	Email         string
	Name          string
	OAuthProvider string
	OAuthID       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// HasProviderLink indica si el usuario ya tiene vinculada una cuenta del proveedor.
func (u *User) HasProviderLink() bool {
	return u != nil && u.OAuthProvider != "" && u.OAuthID != ""
}
