package repository

import (
	"context"

	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// GetByID y GetByEmail devuelven (nil, nil) si no existe.
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	// LinkProvider completa oauth_provider/oauth_id de un usuario existente.
	LinkProvider(ctx context.Context, userID, provider, providerID string) error
}
