package entity

import "time"

// Store representa una tienda: límite de aislamiento (tenant) de productos y movimientos.
type Store struct {
	ID        string
	Name      string
	UserID    string // dueño
	CreatedAt time.Time
}

// OwnedBy indica si la tienda pertenece al usuario.
func (s *Store) OwnedBy(userID string) bool {
	return s != nil && userID != "" && s.UserID == userID
}
