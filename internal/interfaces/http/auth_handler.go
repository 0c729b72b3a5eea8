package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
)

// AuthHandler inicio de sesión delegado al proveedor de identidad.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// ProviderSignIn godoc
// @Summary      Iniciar sesión con proveedor externo
// @Description  El puente del proveedor (GitHub, Google) envía el perfil ya verificado. Crea el usuario si no existe.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        X-Provider-Secret  header  string  true  "secreto compartido con el puente"
// @Param        body  body  dto.ProviderSignInRequest  true  "email, name, provider, provider_id"
// @Success      200   {object}  dto.SignInResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/provider [post]
func (h *AuthHandler) ProviderSignIn(c *fiber.Ctx) error {
	var in dto.ProviderSignInRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.SignInWithProvider(c.UserContext(), in)
	if err != nil {
		return respondError(c, err)
	}
	status := fiber.StatusOK
	if out.Created {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}
