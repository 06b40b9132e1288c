package routes

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/RoyceColton/Maintenance-Inventory-System/internal/auth"
	ordersvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/orders"
	partsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/parts"
	reportsvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/reports"
	tasksvc "github.com/RoyceColton/Maintenance-Inventory-System/internal/turntasks"
	"github.com/RoyceColton/Maintenance-Inventory-System/internal/users"
	pkgauth "github.com/RoyceColton/Maintenance-Inventory-System/pkg/auth"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/auth/session"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/config"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/enums"
	"github.com/RoyceColton/Maintenance-Inventory-System/pkg/logger"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubSessionManager struct{}

func (stubSessionManager) HasSession(ctx context.Context, accessID string) (bool, error) {
	return true, nil
}

func (stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (string, string, error) {
	return "", "", nil
}

func (stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	return nil
}

type stubAuthService struct{}

func (stubAuthService) Login(ctx context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Refresh(ctx context.Context, req auth.RefreshRequest) (*auth.RefreshResponse, error) {
	panic("unimplemented")
}

func (stubAuthService) Logout(ctx context.Context, accessID string) error {
	return nil
}

func (stubAuthService) Register(ctx context.Context, actorID uuid.UUID, req auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: uuid.New()}, nil
}

type stubPartsService struct{}

func (stubPartsService) CreatePart(ctx context.Context, actorID uuid.UUID, input partsvc.CreatePartInput) (*partsvc.PartDTO, error) {
	panic("unimplemented")
}

func (stubPartsService) GetPart(ctx context.Context, partID uuid.UUID) (*partsvc.PartDTO, error) {
	panic("unimplemented")
}

func (stubPartsService) ListParts(ctx context.Context, filter partsvc.ListFilter) ([]partsvc.PartDTO, error) {
	return []partsvc.PartDTO{}, nil
}

func (stubPartsService) UpdatePart(ctx context.Context, actorID, partID uuid.UUID, input partsvc.UpdatePartInput) (*partsvc.PartDTO, error) {
	panic("unimplemented")
}

func (stubPartsService) DeletePart(ctx context.Context, actorID, partID uuid.UUID) error {
	panic("unimplemented")
}

func (stubPartsService) AdjustCount(ctx context.Context, actorID, partID uuid.UUID, delta int) (*partsvc.PartDTO, error) {
	panic("unimplemented")
}

type stubOrdersService struct{}

func (stubOrdersService) RecordPurchase(ctx context.Context, actorID, partID uuid.UUID, input ordersvc.RecordPurchaseInput) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) MarkDelivered(ctx context.Context, actorID, orderID uuid.UUID) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) EditPendingOrder(ctx context.Context, actorID, orderID uuid.UUID, input ordersvc.EditOrderInput) (*ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

func (stubOrdersService) Combined(ctx context.Context) (*ordersvc.CombinedView, error) {
	return &ordersvc.CombinedView{}, nil
}

func (stubOrdersService) ListForPart(ctx context.Context, partID uuid.UUID) ([]ordersvc.OrderDTO, error) {
	panic("unimplemented")
}

type stubReportsService struct{}

func (stubReportsService) MonthlyHistory(ctx context.Context, year int) (*reportsvc.MonthlyHistoryDTO, error) {
	return &reportsvc.MonthlyHistoryDTO{Year: year}, nil
}

func (stubReportsService) BudgetByCategory(ctx context.Context, quarter int) (*reportsvc.BudgetReportDTO, error) {
	panic("unimplemented")
}

func (stubReportsService) OverallBudget(ctx context.Context) (*reportsvc.OverallBudgetDTO, error) {
	panic("unimplemented")
}

func (stubReportsService) UsageTrends(ctx context.Context) (*reportsvc.UsageTrendsDTO, error) {
	panic("unimplemented")
}

type stubTasksService struct{}

func (stubTasksService) CreateTask(ctx context.Context, actorID uuid.UUID, input tasksvc.CreateTaskInput) (*tasksvc.TaskDTO, error) {
	panic("unimplemented")
}

func (stubTasksService) GetTask(ctx context.Context, id uuid.UUID) (*tasksvc.TaskDTO, error) {
	panic("unimplemented")
}

func (stubTasksService) ListTasks(ctx context.Context, filter tasksvc.ListFilter) ([]tasksvc.TaskDTO, error) {
	return []tasksvc.TaskDTO{}, nil
}

func (stubTasksService) UpdateTask(ctx context.Context, actorID, id uuid.UUID, input tasksvc.UpdateTaskInput) (*tasksvc.TaskDTO, error) {
	panic("unimplemented")
}

func (stubTasksService) CompleteItem(ctx context.Context, actorID, id uuid.UUID, item string) (*tasksvc.TaskDTO, error) {
	panic("unimplemented")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		JWT: config.JWTConfig{
			Secret:            "secret",
			Issuer:            "issuer",
			ExpirationMinutes: 60,
		},
	}
}

func newTestRouter(cfg *config.Config) http.Handler {
	logg := logger.New(logger.Options{ServiceName: "test-routing", Level: logger.ParseLevel("debug"), Output: io.Discard})
	return NewRouter(Deps{
		Config:         cfg,
		Logger:         logg,
		DB:             stubPinger{},
		Redis:          nil,
		Sheets:         stubPinger{},
		SessionManager: stubSessionManager{},
		AuthService:    stubAuthService{},
		PartsService:   stubPartsService{},
		OrdersService:  stubOrdersService{},
		ReportsService: stubReportsService{},
		TasksService:   stubTasksService{},
	})
}

func buildToken(t *testing.T, cfg *config.Config, role enums.UserRole) string {
	t.Helper()
	token, err := pkgauth.MintAccessToken(cfg.JWT, time.Now(), pkgauth.AccessTokenPayload{
		UserID: uuid.New(),
		Role:   role,
		JTI:    session.NewAccessID(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	return token
}

func TestHealthLiveIsPublic(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestProtectedGroupRejectsMissingJWT(t *testing.T) {
	router := newTestRouter(testConfig())
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token got %d", resp.Code)
	}
}

func TestProtectedGroupSucceedsWithJWT(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/parts", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleRegular))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestWardenGroupRequiresWardenRole(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)

	regular := httptest.NewRequest(http.MethodGet, "/api/v1/audit", nil)
	regular.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleRegular))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, regular)
	if resp.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for regular got %d", resp.Code)
	}
}

func TestRoomsCatalogAvailableToRegulars(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rooms", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleRegular))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}

func TestReportsHistoryRoute(t *testing.T) {
	cfg := testConfig()
	router := newTestRouter(cfg)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/reports/history?year=2026", nil)
	req.Header.Set("Authorization", "Bearer "+buildToken(t, cfg, enums.UserRoleRegular))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
}
