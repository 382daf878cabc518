package routes

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	internalauth "github.com/nairmotors/dealerbook-backend/internal/auth"
	"github.com/nairmotors/dealerbook-backend/internal/capital"
	"github.com/nairmotors/dealerbook-backend/internal/parties"
	"github.com/nairmotors/dealerbook-backend/internal/purchases"
	"github.com/nairmotors/dealerbook-backend/internal/sales"
	pkgauth "github.com/nairmotors/dealerbook-backend/pkg/auth"
	"github.com/nairmotors/dealerbook-backend/pkg/config"
	"github.com/nairmotors/dealerbook-backend/pkg/db/models"
	"github.com/nairmotors/dealerbook-backend/pkg/enums"
	"github.com/nairmotors/dealerbook-backend/pkg/logger"
	"github.com/shopspring/decimal"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubAuthService struct{}

func (stubAuthService) Login(context.Context, internalauth.LoginRequest) (*internalauth.LoginResponse, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubPurchasesService struct{}

func (stubPurchasesService) Record(context.Context, purchases.RecordPurchaseInput) (*purchases.PurchaseResult, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubPurchasesService) Get(context.Context, uuid.UUID) (*models.Purchase, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubPurchasesService) List(context.Context, int, int) ([]models.Purchase, error) {
	return []models.Purchase{}, nil
}
func (stubPurchasesService) NextOrderNumber(context.Context) (int64, error) { return 42, nil }

type stubCapitalService struct{}

func (stubCapitalService) Debit(context.Context, *gorm.DB, enums.CapitalType, decimal.Decimal, *uuid.UUID, *int64) error {
	return nil
}
func (stubCapitalService) Credit(context.Context, *gorm.DB, enums.CapitalType, decimal.Decimal, *uuid.UUID, *int64) error {
	return nil
}
func (stubCapitalService) Adjust(context.Context, capital.AdjustInput) (*models.CapitalAccount, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubCapitalService) SetBalance(context.Context, capital.SetBalanceInput) (*models.CapitalAccount, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubCapitalService) SetInitial(context.Context, capital.SetInitialInput) (*models.CapitalAccount, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubCapitalService) Balance(context.Context, enums.CapitalType) (decimal.Decimal, error) {
	return decimal.Zero, nil
}
func (stubCapitalService) Entries(context.Context, enums.CapitalType, int) ([]models.CapitalEntry, error) {
	return nil, nil
}

type stubSalesService struct{}

func (stubSalesService) RecordPayment(context.Context, sales.RecordPaymentInput) (*models.PersonTransaction, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubPartiesService struct{}

func (stubPartiesService) CreateParty(context.Context, parties.CreatePartyInput) (*models.Party, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubPartiesService) Get(context.Context, uuid.UUID) (*models.Party, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubPartiesService) ListByKind(context.Context, enums.PersonType) ([]models.Party, error) {
	return nil, nil
}
func (stubPartiesService) Transactions(context.Context, uuid.UUID, int) ([]models.PersonTransaction, error) {
	return nil, nil
}
func (stubPartiesService) PurchaseTransactions(context.Context, uuid.UUID) ([]models.PersonTransaction, error) {
	return nil, nil
}
func (stubPartiesService) TransactionByNo(context.Context, int64) (*models.PersonTransaction, error) {
	return nil, fmt.Errorf("not implemented")
}

type stubInventoryService struct{}

func (stubInventoryService) Brand(context.Context, uuid.UUID) (*models.Brand, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubInventoryService) BrandDetail(context.Context, uuid.UUID) (*models.Brand, []models.BrandVehicle, error) {
	return nil, nil, fmt.Errorf("not implemented")
}
func (stubInventoryService) ListBrands(context.Context) ([]models.Brand, error) {
	return []models.Brand{}, nil
}
func (stubInventoryService) CreateBrand(context.Context, string, []string) (*models.Brand, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubInventoryService) UpsertBrandVehicle(context.Context, *gorm.DB, uuid.UUID, string, string, string) error {
	return nil
}
func (stubInventoryService) CreateChassis(context.Context, *gorm.DB, string) (*models.Chassis, error) {
	return nil, fmt.Errorf("not implemented")
}
func (stubInventoryService) CreateVehicle(context.Context, *gorm.DB, *models.Vehicle) error {
	return nil
}
func (stubInventoryService) Vehicle(context.Context, uuid.UUID) (*models.Vehicle, error) {
	return nil, fmt.Errorf("not implemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{Secret: "secret", Issuer: "dealerbook", ExpirationMinutes: 30},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(
		cfg,
		logg,
		stubPinger{},
		nil,
		nil,
		Services{
			Auth:      stubAuthService{},
			Purchases: stubPurchasesService{},
			Capital:   stubCapitalService{},
			Sales:     stubSalesService{},
			Parties:   stubPartiesService{},
			Inventory: stubInventoryService{},
		},
	)
}

func buildToken(t *testing.T, cfg *config.Config) string {
	return buildRoleToken(t, cfg, "staff")
}

func buildRoleToken(t *testing.T, cfg *config.Config, role string) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), uuid.New(), role+"@dealerbook.in", role)
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLive(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPublicPingNeedsNoToken(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/public/ping", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestPrivateGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	for _, path := range []string{
		"/api/v1/ping",
		"/api/v1/purchases",
		"/api/v1/capital",
		"/api/v1/purchases/next-order-number",
	} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401 for %s without token got %d", path, resp.Code)
		}
	}
}

func TestPrivateGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/ping", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 with token got %d", resp.Code)
	}
}

func TestNextOrderNumberRoute(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/purchases/next-order-number", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if body := resp.Body.String(); !strings.Contains(body, "42") {
		t.Fatalf("expected advisory number in body, got %s", body)
	}
}

func TestManualCapitalEditsAreAdminOnly(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	req := httptest.NewRequest(http.MethodPost, "/api/v1/capital/cash/adjust", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+buildRoleToken(t, cfg, "staff"))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for staff got %d", resp.Code)
	}

	// Admins pass the guard; the empty body then fails validation.
	req = httptest.NewRequest(http.MethodPost, "/api/v1/capital/cash/adjust", strings.NewReader(`{}`))
	req.Header.Set("Authorization", "Bearer "+buildRoleToken(t, cfg, "admin"))
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for admin with empty body got %d", resp.Code)
	}
}

func TestUnknownCapitalTypeRejected(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/capital/gold/entries", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
}
