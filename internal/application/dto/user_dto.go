package dto

import "time"

// ProviderSignInRequest perfil ya verificado por el proveedor de identidad (GitHub, Google).
type ProviderSignInRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Name       string `json:"name" validate:"omitempty,max=200"`
	Provider   string `json:"provider" validate:"required,oneof=github google"`
	ProviderID string `json:"provider_id" validate:"required,max=200"`
}

// UserResponse salida de un usuario.
type UserResponse struct {
	ID            string    `json:"id"`
	Email         string    `json:"email"`
	Name          string    `json:"name"`
	OAuthProvider string    `json:"oauth_provider,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// SignInResponse token de sesión + usuario.
type SignInResponse struct {
	Token   string       `json:"token"`
	User    UserResponse `json:"user"`
	Created bool         `json:"created"`
}
