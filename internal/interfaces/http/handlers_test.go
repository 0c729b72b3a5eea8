package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-tiendas/internal/application/auth"
	"github.com/jhoicas/inventario-tiendas/internal/application/dto"
	"github.com/jhoicas/inventario-tiendas/internal/application/inventory"
	"github.com/jhoicas/inventario-tiendas/internal/application/usecase"
	"github.com/jhoicas/inventario-tiendas/internal/domain/entity"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/pdf"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/sqlite"
	"github.com/jhoicas/inventario-tiendas/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/inventario-tiendas/internal/interfaces/http"
)

const (
	providerSecret = "bridge-secret"
	otherUserID    = "00000000-0000-0000-0000-000000000009"
)

type testEnv struct {
	app     *fiber.App
	backend *storage.Backend
	storeID string
	token   string
}

// buildTestApp arma el router completo sobre una base SQLite temporal con un usuario y una tienda.
func buildTestApp(t *testing.T) *testEnv {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "api.db"))
	require.NoError(t, err)
	backend := storage.FromSQLite(db)
	t.Cleanup(backend.Close)

	now := time.Now().UTC()
	for _, u := range []*entity.User{
		{ID: testUserID, Email: testEmail, Name: "Owner", CreatedAt: now, UpdatedAt: now},
		{ID: otherUserID, Email: "other@example.com", Name: "Other", CreatedAt: now, UpdatedAt: now},
	} {
		require.NoError(t, backend.Users.Create(ctx, u))
	}
	require.NoError(t, backend.Stores.Create(ctx, &entity.Store{ID: "store-1", Name: "Centro", UserID: testUserID, CreatedAt: now}))

	notifier := inventory.NewLowStockNotifier(nil)
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:           auth.NewAuthUseCase(backend.Users, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer}),
		StoreUC:          usecase.NewStoreUseCase(backend.Stores, backend.Users),
		ProductUC:        usecase.NewProductUseCase(backend.Products, backend.Stores),
		RegisterMovement: inventory.NewRegisterMovementUseCase(backend.Tx, backend.Stores, notifier, nil),
		MovementQuery:    inventory.NewMovementQueryUseCase(backend.Stores, backend.Movements, pdf.NewMarotoReportGenerator()),
		JWTSecret:        testJWTSecret,
		ProviderSecret:   providerSecret,
		RateLimitMax:     1000,
		RateLimitWindow:  time.Minute,
	})
	return &testEnv{app: app, backend: backend, storeID: "store-1", token: bearer(t, testUserID)}
}

// doRequest lanza la petición con JSON opcional y el token dado.
func doRequest(t *testing.T, app *fiber.App, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (e *testEnv) post(t *testing.T, path string, body any) *http.Response {
	return doRequest(t, e.app, http.MethodPost, path, e.token, body)
}

func TestStockIn_CreaYLuegoIncrementa(t *testing.T) {
	env := buildTestApp(t)

	resp := env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 50, "store_id": env.storeID})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	out := decode[dto.StockMutationResponse](t, resp)
	assert.True(t, out.Created)
	assert.Equal(t, int64(50), out.Product.CurrentQuantity)
	assert.Equal(t, "STOCK_IN", out.Movement.Type)

	resp = env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Arroz", "quantity": "5", "store_id": env.storeID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out = decode[dto.StockMutationResponse](t, resp)
	assert.False(t, out.Created)
	assert.Equal(t, int64(55), out.Product.CurrentQuantity)
	assert.Equal(t, "Rice", out.Product.Name)
}

func TestStockIn_Validacion(t *testing.T) {
	env := buildTestApp(t)
	cases := map[string]fiber.Map{
		"cantidad decimal":  {"product_id": "p1", "name": "Rice", "quantity": 2.5, "store_id": env.storeID},
		"cantidad cero":     {"product_id": "p1", "name": "Rice", "quantity": 0, "store_id": env.storeID},
		"cantidad negativa": {"product_id": "p1", "name": "Rice", "quantity": -4, "store_id": env.storeID},
		"sin nombre":        {"product_id": "p1", "quantity": 1, "store_id": env.storeID},
		"sin tienda":        {"product_id": "p1", "name": "Rice", "quantity": 1},
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			resp := env.post(t, "/api/stock-in", body)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			out := decode[dto.ErrorResponse](t, resp)
			assert.Equal(t, "VALIDATION", out.Code)
		})
	}
}

func TestStockIn_DesbordeRetorna400(t *testing.T) {
	env := buildTestApp(t)
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": "9223372036854775807", "store_id": env.storeID}).Body.Close()

	resp := env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 1, "store_id": env.storeID})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", decode[dto.ErrorResponse](t, resp).Code)

	resp = doRequest(t, env.app, http.MethodGet, "/api/products?store_id="+env.storeID, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	require.Equal(t, 1, out.Total)
	assert.Equal(t, int64(9223372036854775807), out.Items[0].CurrentQuantity)
}

func TestStockIn_CuerpoInvalido(t *testing.T) {
	env := buildTestApp(t)
	req := httptest.NewRequest(http.MethodPost, "/api/stock-in", bytes.NewBufferString("{no json"))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", env.token)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)
}

func TestSaleYBaja_FlujoCompleto(t *testing.T) {
	env := buildTestApp(t)
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 50, "store_id": env.storeID}).Body.Close()

	resp := env.post(t, "/api/sale", fiber.Map{"product_id": "p1", "quantity": 20, "store_id": env.storeID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int64(30), decode[dto.StockMutationResponse](t, resp).Product.CurrentQuantity)

	resp = env.post(t, "/api/manual-removal", fiber.Map{"product_id": "p1", "quantity": 5, "store_id": env.storeID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StockMutationResponse](t, resp)
	assert.Equal(t, int64(25), out.Product.CurrentQuantity)
	assert.Equal(t, "MANUAL_REMOVAL", out.Movement.Type)
	assert.Nil(t, out.LowStock)

	resp = env.post(t, "/api/sale", fiber.Map{"product_id": "p1", "quantity": 100, "store_id": env.storeID})
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", decode[dto.ErrorResponse](t, resp).Code)

	resp = doRequest(t, env.app, http.MethodGet, "/api/reports/stock-movements?store_id="+env.storeID, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	list := decode[dto.MovementListResponse](t, resp)
	require.Equal(t, 3, list.Total)
	types := map[string]int64{}
	for _, m := range list.Items {
		types[m.Type] = m.Quantity
		assert.Equal(t, "Rice", m.ProductName)
	}
	assert.Equal(t, map[string]int64{"STOCK_IN": 50, "SALE": 20, "MANUAL_REMOVAL": 5}, types)
}

func TestSale_AlertaDeStockBajo(t *testing.T) {
	env := buildTestApp(t)
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 12, "store_id": env.storeID}).Body.Close()

	resp := env.post(t, "/api/sale", fiber.Map{"product_id": "p1", "quantity": 3, "store_id": env.storeID})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.StockMutationResponse](t, resp)
	require.NotNil(t, out.LowStock)
	assert.Equal(t, int64(9), out.LowStock.Remaining)
	assert.Equal(t, int64(10), out.LowStock.Threshold)
}

func TestSale_ProductoInexistente(t *testing.T) {
	env := buildTestApp(t)
	resp := env.post(t, "/api/sale", fiber.Map{"product_id": "ghost", "quantity": 1, "store_id": env.storeID})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
}

func TestTiendaAjena(t *testing.T) {
	env := buildTestApp(t)
	intruder := bearer(t, otherUserID)

	resp := doRequest(t, env.app, http.MethodPost, "/api/stock-in", intruder,
		fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 1, "store_id": env.storeID})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, env.app, http.MethodGet, "/api/products?store_id="+env.storeID, intruder, nil)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, env.app, http.MethodGet, "/api/products?store_id=missing", env.token, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	resp.Body.Close()
}

func TestReporte_Rangos(t *testing.T) {
	env := buildTestApp(t)
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 5, "store_id": env.storeID}).Body.Close()
	base := "/api/reports/stock-movements?store_id=" + env.storeID

	cases := map[string]struct {
		query string
		total int
	}{
		"sin rango":         {"", 1},
		"rango que incluye": {"&start_date=2000-01-01&end_date=2999-01-01", 1},
		"rango que excluye": {"&start_date=2000-01-01&end_date=2000-01-02", 0},
		"solo inicio":       {"&start_date=2999-01-01", 1},
		"solo fin":          {"&end_date=2000-01-01", 1},
		"invertido":         {"&start_date=2999-01-01&end_date=2000-01-01", 0},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			resp := doRequest(t, env.app, http.MethodGet, base+tc.query, env.token, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, tc.total, decode[dto.MovementListResponse](t, resp).Total)
		})
	}

	resp := doRequest(t, env.app, http.MethodGet, base+"&start_date=ayer", env.token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, env.app, http.MethodGet, "/api/reports/stock-movements", env.token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestReporte_PDF(t *testing.T) {
	env := buildTestApp(t)
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "p1", "name": "Rice", "quantity": 5, "store_id": env.storeID}).Body.Close()

	resp := doRequest(t, env.app, http.MethodGet, "/api/reports/stock-movements/pdf?store_id="+env.storeID, env.token, nil)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "attachment")
	raw, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(raw, []byte("%PDF")))
}

func TestStores_CrearYListar(t *testing.T) {
	env := buildTestApp(t)

	resp := env.post(t, "/api/stores", fiber.Map{"name": "  Sucursal Norte "})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	created := decode[dto.StoreResponse](t, resp)
	assert.Equal(t, "Sucursal Norte", created.Name)
	assert.Equal(t, testUserID, created.UserID)

	resp = env.post(t, "/api/stores", fiber.Map{"name": ""})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	resp = doRequest(t, env.app, http.MethodGet, "/api/stores", env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	stores := decode[[]dto.StoreResponse](t, resp)
	assert.Len(t, stores, 2)
}

func TestProducts_Listar(t *testing.T) {
	env := buildTestApp(t)
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "b", "name": "Beans", "quantity": 3, "store_id": env.storeID}).Body.Close()
	env.post(t, "/api/stock-in", fiber.Map{"product_id": "a", "name": "Rice", "quantity": 7, "store_id": env.storeID}).Body.Close()

	resp := doRequest(t, env.app, http.MethodGet, "/api/products?store_id="+env.storeID, env.token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.ProductListResponse](t, resp)
	require.Equal(t, 2, out.Total)
	assert.Equal(t, "Beans", out.Items[0].Name)
	assert.Equal(t, int64(7), out.Items[1].CurrentQuantity)

	resp = doRequest(t, env.app, http.MethodGet, "/api/products", env.token, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestProviderSignIn(t *testing.T) {
	env := buildTestApp(t)
	body := fiber.Map{"email": "New@Example.com", "name": "Nueva", "provider": "github", "provider_id": "gh-42"}

	req := func(secret string, payload any) *http.Response {
		raw, _ := json.Marshal(payload)
		r := httptest.NewRequest(http.MethodPost, "/api/auth/provider", bytes.NewReader(raw))
		r.Header.Set("Content-Type", "application/json")
		if secret != "" {
			r.Header.Set("X-Provider-Secret", secret)
		}
		resp, err := env.app.Test(r, -1)
		require.NoError(t, err)
		return resp
	}

	resp := req("", body)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp.Body.Close()

	resp = req(providerSecret, body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	first := decode[dto.SignInResponse](t, resp)
	assert.True(t, first.Created)
	assert.Equal(t, "new@example.com", first.User.Email)
	require.NotEmpty(t, first.Token)

	resp = req(providerSecret, body)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	second := decode[dto.SignInResponse](t, resp)
	assert.False(t, second.Created)
	assert.Equal(t, first.User.ID, second.User.ID)

	// El token emitido abre las rutas protegidas
	resp = doRequest(t, env.app, http.MethodGet, "/api/stores", "Bearer "+second.Token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = req(providerSecret, fiber.Map{"email": "x@example.com", "provider": "myspace", "provider_id": "1"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()
}

func TestRutasProtegidas_SinToken(t *testing.T) {
	env := buildTestApp(t)
	for _, path := range []string{"/api/stores", "/api/products?store_id=x", "/api/reports/stock-movements?store_id=x"} {
		resp := doRequest(t, env.app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, path)
		resp.Body.Close()
	}
}
