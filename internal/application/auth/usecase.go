package auth

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/domain"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/domain/repository"
	"github.com/jhoicas/inventario-tiendas/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase inicio de sesión con un proveedor externo. La verificación OAuth la hace el
// proveedor; aquí solo se vincula el perfil con un usuario local y se emite la sesión.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// SignInWithProvider busca el usuario por email; si no existe lo crea con el vínculo al proveedor,
// y si existe sin vínculo lo completa. Devuelve token JWT + usuario.
func (uc *AuthUseCase) SignInWithProvider(ctx context.Context, in dto.ProviderSignInRequest) (*dto.SignInResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Provider == "" || in.ProviderID == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	created := false
	switch {
	case user == nil:
		user, err = uc.createUser(ctx, email, in)
		if errors.Is(err, domain.ErrDuplicate) {
			// Otro inicio de sesión concurrente lo creó primero
			user, err = uc.userRepo.GetByEmail(ctx, email)
		} else {
			created = err == nil
		}
		if err != nil {
			return nil, err
		}
		if user == nil {
			return nil, domain.ErrNotFound
		}
	case !user.HasProviderLink():
		if err := uc.userRepo.LinkProvider(ctx, user.ID, in.Provider, in.ProviderID); err != nil {
			return nil, err
		}
		user.OAuthProvider, user.OAuthID = in.Provider, in.ProviderID
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.SignInResponse{
		Token:   token,
		User:    *toUserResponse(user),
		Created: created,
	}, nil
}

func (uc *AuthUseCase) createUser(ctx context.Context, email string, in dto.ProviderSignInRequest) (*entity.User, error) {
	now := time.Now().UTC()
	name := entity.NormalizeName(in.Name)
	if name == "" {
		name = email
	}
	user := &entity.User{
		ID:            uuid.New().String(),
		Email:         email,
		Name:          name,
		OAuthProvider: in.Provider,
		OAuthID:       in.ProviderID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:            u.ID,
		Email:         u.Email,
		Name:          u.Name,
		OAuthProvider: u.OAuthProvider,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}
