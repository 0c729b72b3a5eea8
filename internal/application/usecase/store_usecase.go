package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
)

// StoreUseCase casos de uso para tiendas del usuario autenticado.
type StoreUseCase struct {
	repo     repository.StoreRepository
	userRepo repository.UserRepository
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, userRepo repository.UserRepository) *StoreUseCase {
	return &StoreUseCase{repo: repo, userRepo: userRepo}
}

// Create crea una tienda para el usuario. El usuario debe existir.
func (uc *StoreUseCase) Create(ctx context.Context, userID string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	name := entity.NormalizeName(in.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name es requerido", domain.ErrInvalidInput)
	}
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("%w: usuario %s", domain.ErrNotFound, userID)
	}
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      name,
		UserID:    user.ID,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.Create(ctx, store); err != nil {
		return nil, err
	}
	return toStoreResponse(store), nil
}

// ListByUser lista las tiendas del usuario, más recientes primero.
func (uc *StoreUseCase) ListByUser(ctx context.Context, userID string) ([]dto.StoreResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	list, err := uc.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toStoreResponse(s))
	}
	return out, nil
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		UserID:    s.UserID,
		CreatedAt: s.CreatedAt,
	}
}
