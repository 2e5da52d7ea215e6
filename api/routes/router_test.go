package routes

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	authsvc "github.com/shopkartio/shopkart-backend/internal/auth"
	"github.com/shopkartio/shopkart-backend/internal/catalog"
	"github.com/shopkartio/shopkart-backend/internal/orders"
	"github.com/shopkartio/shopkart-backend/internal/users"
	"github.com/shopkartio/shopkart-backend/pkg/auth"
	"github.com/shopkartio/shopkart-backend/pkg/auth/session"
	"github.com/shopkartio/shopkart-backend/pkg/config"
	"github.com/shopkartio/shopkart-backend/pkg/enums"
	"github.com/shopkartio/shopkart-backend/pkg/logger"
)

type stubCatalogService struct{}

func (stubCatalogService) Create(context.Context, catalog.Actor, catalog.CreateProductInput) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) Update(context.Context, catalog.Actor, uuid.UUID, catalog.UpdateProductInput) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) Delete(context.Context, catalog.Actor, uuid.UUID) error {
	panic("unimplemented")
}

func (stubCatalogService) Get(context.Context, uuid.UUID) (*catalog.ProductDTO, error) {
	panic("unimplemented")
}

func (stubCatalogService) ListAll(context.Context) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

func (stubCatalogService) ListBySeller(context.Context, uuid.UUID) ([]catalog.ProductDTO, error) {
	return []catalog.ProductDTO{}, nil
}

type stubUsersService struct{}

func (stubUsersService) Profile(context.Context, uuid.UUID) (*users.UserDTO, error) {
	panic("unimplemented")
}

func (stubUsersService) List(context.Context) ([]users.UserDTO, error) {
	return []users.UserDTO{}, nil
}

func (stubUsersService) Delete(context.Context, uuid.UUID, uuid.UUID) error {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) ListBuyerOrders(context.Context, uuid.UUID) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, nil
}

func (stubOrdersService) ListSellerOrders(context.Context, uuid.UUID) ([]orders.OrderDTO, error) {
	return []orders.OrderDTO{}, nil
}

func (stubOrdersService) Get(context.Context, orders.Actor, uuid.UUID) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) UpdateStatus(context.Context, orders.Actor, uuid.UUID, enums.OrderStatus) (*orders.OrderDTO, error) {
	panic("unimplemented")
}

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, authsvc.LoginRequest) (*authsvc.LoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(context.Context, string) error { return nil }

type stubSessionChecker struct{ ok bool }

func (s stubSessionChecker) HasSession(context.Context, string) (bool, error) {
	return s.ok, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.App.Env = "test"
	cfg.JWT.Secret = "router-test-secret"
	cfg.JWT.Issuer = "shopkart-test"
	cfg.JWT.ExpirationMinutes = 60
	return cfg
}

func newTestRouter(t *testing.T, cfg *config.Config) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})

	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		SessionChecker: stubSessionChecker{ok: true},
		AuthService:    stubAuthService{},
		UsersService:   stubUsersService{},
		CatalogService: stubCatalogService{},
		OrdersService:  stubOrdersService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.Role, email string) string {
	t.Helper()

	token, err := auth.MintAccessToken(cfg.JWT, time.Now(), auth.AccessTokenPayload{
		UserID: uuid.New(),
		Email:  email,
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	require.NoError(t, err)
	return token
}

func doRequest(router http.Handler, method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestHealthLive(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	rec := doRequest(router, http.MethodGet, "/health/live", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "test", rec.Header().Get("X-ShopKart-Env"))
}

func TestPublicProductListNeedsNoToken(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	rec := doRequest(router, http.MethodGet, "/api/v1/products", "")

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	rec := doRequest(router, http.MethodGet, "/api/v1/cart", "")

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestPrivateGroupRejectsRevokedSession(t *testing.T) {
	cfg := testConfig()
	logg := logger.New(logger.Options{ServiceName: "router-test", Output: io.Discard})
	router := NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		SessionChecker: stubSessionChecker{ok: false},
		AuthService:    stubAuthService{},
		UsersService:   stubUsersService{},
		CatalogService: stubCatalogService{},
		OrdersService:  stubOrdersService{},
	})
	token := buildToken(t, cfg, enums.RoleCustomer, "buyer@example.in")

	rec := doRequest(router, http.MethodGet, "/api/v1/orders", token)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestSellerGroupRequiresSellerRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	customer := buildToken(t, cfg, enums.RoleCustomer, "buyer@example.in")
	rec := doRequest(router, http.MethodGet, "/api/v1/seller/products", customer)
	require.Equal(t, http.StatusForbidden, rec.Code)

	seller := buildToken(t, cfg, enums.RoleSeller, "seller@example.in")
	rec = doRequest(router, http.MethodGet, "/api/v1/seller/products", seller)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Data []catalog.ProductDTO `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.Empty(t, body.Data)
}

func TestAdminGroupRequiresAdminRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	seller := buildToken(t, cfg, enums.RoleSeller, "seller@example.in")
	rec := doRequest(router, http.MethodGet, "/api/v1/admin/users", seller)
	require.Equal(t, http.StatusForbidden, rec.Code)

	admin := buildToken(t, cfg, enums.RoleAdmin, "admin@example.in")
	rec = doRequest(router, http.MethodGet, "/api/v1/admin/users", admin)
	require.Equal(t, http.StatusOK, rec.Code)
}

func TestSellerOrdersVisibleToAdmin(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(t, cfg)

	admin := buildToken(t, cfg, enums.RoleAdmin, "admin@example.in")
	rec := doRequest(router, http.MethodGet, "/api/v1/seller/orders", admin)
	require.Equal(t, http.StatusOK, rec.Code)
}
