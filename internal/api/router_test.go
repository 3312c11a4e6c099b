package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/prysm/crm-system/internal/api/handler"
	"github.com/prysm/crm-system/internal/core/domain"
	"github.com/prysm/crm-system/internal/core/ports"
	"github.com/prysm/crm-system/internal/infrastructure/http/handlers"
)

const testSecret = "router-test-secret"

// Fixed-response service stubs: the routing tests only care about which
// middleware chain and error mapping a request travels through, not about
// business logic (the service tests cover that). The error fields are
// mutable so individual tests can force a failure path; the router itself
// is built once because the prometheus middleware registers collectors in
// the default registry.

type fixedAuthService struct{}

func (fixedAuthService) Register(context.Context, string, string, string, domain.Role) (*domain.User, error) {
	return &domain.User{ID: 1, Name: "Alice", Email: "alice@prysm.dev", Role: domain.RoleAdmin}, nil
}

func (fixedAuthService) Login(context.Context, string, string) (string, *domain.User, error) {
	return "", nil, domain.ErrInvalidCredentials
}

type fixedCustomerService struct {
	createErr error
}

func (s *fixedCustomerService) Create(_ context.Context, in ports.CreateCustomerInput) (*domain.Customer, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &domain.Customer{ID: 7, Name: in.Name, Email: in.Email, Phone: in.Phone}, nil
}

func (*fixedCustomerService) List(context.Context, ports.ListCustomersInput) (*ports.ListCustomersResult, error) {
	return &ports.ListCustomersResult{Page: 1, Limit: 10, Data: []*domain.Customer{}}, nil
}

func (*fixedCustomerService) Get(context.Context, int64) (*domain.Customer, error) {
	return nil, domain.ErrCustomerNotFound
}

func (*fixedCustomerService) Delete(context.Context, int64) error {
	return nil
}

type fixedTaskService struct {
	updateErr error
}

func (*fixedTaskService) Create(_ context.Context, _ domain.Identity, in ports.CreateTaskInput) (*ports.TaskDetail, error) {
	return &ports.TaskDetail{ID: 1, Title: in.Title, Status: domain.StatusPending}, nil
}

func (*fixedTaskService) List(context.Context, domain.Identity) ([]*ports.TaskDetail, error) {
	return []*ports.TaskDetail{}, nil
}

func (*fixedTaskService) Get(context.Context, domain.Identity, int64) (*ports.TaskDetail, error) {
	return nil, domain.ErrTaskNotFound
}

func (s *fixedTaskService) UpdateStatus(context.Context, domain.Identity, int64, domain.TaskStatus) (*ports.TaskDetail, error) {
	if s.updateErr != nil {
		return nil, s.updateErr
	}
	return &ports.TaskDetail{ID: 1, Status: domain.StatusCompleted}, nil
}

func (*fixedTaskService) Activity(context.Context, domain.Identity, int64) ([]*domain.TaskActivity, error) {
	return []*domain.TaskActivity{}, nil
}

type fixedUserService struct{}

func (fixedUserService) List(context.Context) ([]*domain.User, error) {
	return []*domain.User{}, nil
}

func (fixedUserService) Get(context.Context, int64) (*domain.User, error) {
	return nil, domain.ErrUserNotFound
}

func (fixedUserService) UpdateRole(context.Context, int64, domain.Role) (*domain.User, error) {
	return nil, domain.ErrInvalidRole
}

var (
	stubCustomer = &fixedCustomerService{}
	stubTask     = &fixedTaskService{}

	routerOnce sync.Once
	testRouter http.Handler
)

func router() http.Handler {
	routerOnce.Do(func() {
		h := Handlers{
			Auth:     handler.NewAuthHandler(fixedAuthService{}),
			Customer: handler.NewCustomerHandler(stubCustomer),
			Task:     handler.NewTaskHandler(stubTask),
			User:     handler.NewUserHandler(fixedUserService{}),
			Health:   handlers.NewHealthHandler(),
			Ready:    handlers.NewHealthDependenciesHandler(nil, nil),
		}
		testRouter = NewRouter(h, testSecret, zerolog.Nop())
	})
	return testRouter
}

func bearerToken(t *testing.T, userID int64, role string) string {
	t.Helper()
	claims := jwt.MapClaims{
		"user_id": userID,
		"email":   "someone@prysm.dev",
		"role":    role,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return "Bearer " + token
}

func doRequest(r http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRouter_HealthIsOpen(t *testing.T) {
	rec := doRequest(router(), http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("liveness must not require auth, got %d", rec.Code)
	}
}

func TestRouter_ProtectedRoutesRequireToken(t *testing.T) {
	for _, path := range []string{"/api/customers", "/api/tasks", "/api/users"} {
		rec := doRequest(router(), http.MethodGet, path, "", "")
		if rec.Code != http.StatusUnauthorized {
			t.Errorf("GET %s without token: expected 401, got %d", path, rec.Code)
		}
	}
}

func TestRouter_EmployeeDeniedAdminRoutes(t *testing.T) {
	token := bearerToken(t, 5, "EMPLOYEE")

	cases := []struct {
		method, path, body string
	}{
		{http.MethodPost, "/api/customers", `{"name":"Acme","email":"a@b.c","phone":"1"}`},
		{http.MethodDelete, "/api/customers/1", ""},
		{http.MethodPost, "/api/tasks", `{"title":"T","assigned_to_id":1,"customer_id":1}`},
		{http.MethodGet, "/api/users", ""},
		{http.MethodGet, "/api/users/1", ""},
		{http.MethodPatch, "/api/users/1", `{"role":"ADMIN"}`},
	}
	for _, tc := range cases {
		rec := doRequest(router(), tc.method, tc.path, token, tc.body)
		if rec.Code != http.StatusForbidden {
			t.Errorf("%s %s as employee: expected 403, got %d", tc.method, tc.path, rec.Code)
		}
	}
}

func TestRouter_EmployeeAllowedSharedRoutes(t *testing.T) {
	token := bearerToken(t, 5, "EMPLOYEE")

	for _, path := range []string{"/api/customers", "/api/tasks"} {
		rec := doRequest(router(), http.MethodGet, path, token, "")
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s as employee: expected 200, got %d", path, rec.Code)
		}
	}
}

func TestRouter_AdminCreatesCustomer(t *testing.T) {
	token := bearerToken(t, 1, "ADMIN")

	rec := doRequest(router(), http.MethodPost, "/api/customers", token,
		`{"name":"Acme Corp","email":"ops@acme.test","phone":"555-0100"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_DuplicateCustomerMapsToConflict(t *testing.T) {
	stubCustomer.createErr = domain.ErrCustomerExists
	defer func() { stubCustomer.createErr = nil }()
	token := bearerToken(t, 1, "ADMIN")

	rec := doRequest(router(), http.MethodPost, "/api/customers", token,
		`{"name":"Acme Corp","email":"ops@acme.test","phone":"555-0100"}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid error envelope: %v", err)
	}
	if resp["error"] == "" {
		t.Error("error envelope must carry a message")
	}
}

func TestRouter_ForbiddenUpdateMapsTo403(t *testing.T) {
	stubTask.updateErr = domain.ErrForbidden
	defer func() { stubTask.updateErr = nil }()
	token := bearerToken(t, 5, "EMPLOYEE")

	rec := doRequest(router(), http.MethodPatch, "/api/tasks/1/status", token, `{"status":"COMPLETED"}`)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestRouter_InvalidStatusMapsTo422(t *testing.T) {
	stubTask.updateErr = domain.ErrInvalidStatus
	defer func() { stubTask.updateErr = nil }()
	token := bearerToken(t, 1, "ADMIN")

	rec := doRequest(router(), http.MethodPatch, "/api/tasks/1/status", token, `{"status":"ARCHIVED"}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestRouter_MissingTaskMapsTo404(t *testing.T) {
	token := bearerToken(t, 1, "ADMIN")

	rec := doRequest(router(), http.MethodGet, "/api/tasks/42", token, "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}
