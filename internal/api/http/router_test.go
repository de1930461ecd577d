package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	nethttp "net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/tasky-suite/workspace-service/internal/api/http/handlers"
	"github.com/tasky-suite/workspace-service/internal/auth"
	"github.com/tasky-suite/workspace-service/internal/config"
	"github.com/tasky-suite/workspace-service/internal/domain"
	"github.com/tasky-suite/workspace-service/internal/observability"
	"github.com/tasky-suite/workspace-service/internal/projects"
	"github.com/tasky-suite/workspace-service/internal/repository"
	"github.com/tasky-suite/workspace-service/internal/service"
)

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*domain.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User)}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repository.ErrDuplicateEmail
		}
	}
	user.ID = uuid.NewString()
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	r.users[user.ID] = &clone
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user, ok := r.users[id]; ok {
		clone := *user
		return &clone, nil
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (r *memoryUserRepo) CountByRole(_ context.Context, role domain.Role) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	count := 0
	for _, user := range r.users {
		if user.Role == role {
			count++
		}
	}
	return count, nil
}

const testSecret = "pipeline-test-secret"

func newTestApp(t *testing.T) (*fiber.App, *service.AuthService) {
	t.Helper()

	logger := zap.NewNop()
	authCfg := config.AuthConfig{
		JWTSecret:       testSecret,
		SessionTTLHours: 1,
		BcryptCost:      bcrypt.MinCost,
		CookieName:      "token",
	}

	authService := service.NewAuthService(authCfg, newMemoryUserRepo(), nil)
	store := projects.NewStore(context.Background(), nil, logger)
	projectService := service.NewProjectService(store, nil)

	app := fiber.New()
	RegisterMiddlewares(app, logger, observability.NewMetrics(), 0)
	RegisterRoutes(app, RouteConfig{
		Health:   handlers.NewHealthHandler("test", "dev", nil, nil),
		Auth:     handlers.NewAuthHandler(authService, "token"),
		Projects: handlers.NewProjectsHandler(projectService),
		Session:  auth.NewSessionMiddleware(authService.TokenManager(), "token"),
	})
	return app, authService
}

func issueToken(t *testing.T, authService *service.AuthService, role domain.Role) string {
	t.Helper()
	token, _, err := authService.TokenManager().Issue(&domain.User{
		ID:    "u-" + string(role),
		Email: string(role) + "@example.com",
		Role:  role,
	})
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

type authPayload struct {
	OK      bool             `json:"ok"`
	Message string           `json:"message"`
	User    *domain.Identity `json:"user"`
}

func doRequest(t *testing.T, app *fiber.App, method, path, token string, body []byte) (*nethttp.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.AddCookie(&nethttp.Cookie{Name: "token", Value: token})
	}

	resp, err := app.Test(req, 5000)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return resp, raw
}

func decodeAuth(t *testing.T, raw []byte) authPayload {
	t.Helper()
	var payload authPayload
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return payload
}

func TestSessionVerifierRejections(t *testing.T) {
	app, authService := newTestApp(t)

	t.Run("no cookie", func(t *testing.T) {
		resp, raw := doRequest(t, app, "GET", "/api/auth/user", "", nil)
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		payload := decodeAuth(t, raw)
		if payload.OK || payload.Message != "Access Denied: No token provided" {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})

	t.Run("expired token with valid signature", func(t *testing.T) {
		claims := &auth.SessionClaims{
			Email: "old@example.com",
			Role:  domain.RoleUser,
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "u-old",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			t.Fatalf("sign: %v", err)
		}

		resp, raw := doRequest(t, app, "GET", "/api/auth/user", token, nil)
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		payload := decodeAuth(t, raw)
		if payload.OK || payload.Message != "Token is invalid or expired" {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})

	t.Run("tampered signature", func(t *testing.T) {
		forger := auth.NewTokenManager("wrong-secret", time.Hour)
		token, _, err := forger.Issue(&domain.User{ID: "u-1", Email: "x@example.com", Role: domain.RoleAdmin})
		if err != nil {
			t.Fatalf("issue: %v", err)
		}

		_, raw := doRequest(t, app, "GET", "/api/auth/user", token, nil)
		if payload := decodeAuth(t, raw); payload.OK {
			t.Errorf("forged token accepted: %+v", payload)
		}
	})

	t.Run("valid token", func(t *testing.T) {
		token := issueToken(t, authService, domain.RoleUser)
		_, raw := doRequest(t, app, "GET", "/api/auth/user", token, nil)
		payload := decodeAuth(t, raw)
		if !payload.OK || payload.User == nil || payload.User.Role != domain.RoleUser {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})
}

func TestAdminGate(t *testing.T) {
	app, authService := newTestApp(t)

	t.Run("user role rejected", func(t *testing.T) {
		token := issueToken(t, authService, domain.RoleUser)
		resp, raw := doRequest(t, app, "GET", "/api/checkadmin", token, nil)
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		payload := decodeAuth(t, raw)
		if payload.OK || payload.Message != "Only Admin can access this page" {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		token := issueToken(t, authService, domain.RoleAdmin)
		_, raw := doRequest(t, app, "GET", "/api/checkadmin", token, nil)
		if payload := decodeAuth(t, raw); !payload.OK {
			t.Errorf("admin rejected: %+v", payload)
		}
	})

	t.Run("no identity short-circuits before the gate", func(t *testing.T) {
		_, raw := doRequest(t, app, "GET", "/api/checkadmin", "", nil)
		payload := decodeAuth(t, raw)
		if payload.OK || payload.Message != "Access Denied: No token provided" {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})
}

func TestRegisterLoginFlow(t *testing.T) {
	app, _ := newTestApp(t)

	body := []byte(`{"firstName":"Dana","lastName":"Reed","email":"dana@example.com","password":"hunter22"}`)
	resp, _ := doRequest(t, app, "POST", "/api/register", "", body)
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("register status = %d, want 201", resp.StatusCode)
	}

	var sessionCookie string
	for _, cookie := range resp.Cookies() {
		if cookie.Name == "token" {
			sessionCookie = cookie.Value
			if !cookie.HttpOnly {
				t.Error("session cookie must be HttpOnly")
			}
		}
	}
	if sessionCookie == "" {
		t.Fatal("register did not set the session cookie")
	}

	t.Run("cookie works against the session probe", func(t *testing.T) {
		_, raw := doRequest(t, app, "GET", "/api/auth/user", sessionCookie, nil)
		payload := decodeAuth(t, raw)
		if !payload.OK || payload.User == nil || payload.User.Email != "dana@example.com" {
			t.Errorf("unexpected payload: %+v", payload)
		}
	})

	t.Run("duplicate email conflicts", func(t *testing.T) {
		resp, _ := doRequest(t, app, "POST", "/api/register", "", body)
		if resp.StatusCode != nethttp.StatusConflict {
			t.Errorf("status = %d, want 409", resp.StatusCode)
		}
	})

	t.Run("wrong password keeps the legacy rejection shape", func(t *testing.T) {
		resp, raw := doRequest(t, app, "POST", "/api/login", "", []byte(`{"email":"dana@example.com","password":"nope"}`))
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if payload := decodeAuth(t, raw); payload.OK {
			t.Errorf("bad login accepted: %+v", payload)
		}
	})

	t.Run("login succeeds", func(t *testing.T) {
		resp, raw := doRequest(t, app, "POST", "/api/login", "", []byte(`{"email":"dana@example.com","password":"hunter22"}`))
		if resp.StatusCode != nethttp.StatusOK {
			t.Fatalf("status = %d, want 200", resp.StatusCode)
		}
		if payload := decodeAuth(t, raw); !payload.OK {
			t.Errorf("login rejected: %+v", payload)
		}
	})
}

func TestProjectRoutesRequireAuthentication(t *testing.T) {
	app, authService := newTestApp(t)

	resp, raw := doRequest(t, app, "GET", "/api/projects", "", nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if payload := decodeAuth(t, raw); payload.OK {
		t.Errorf("anonymous access allowed: %+v", payload)
	}

	token := issueToken(t, authService, domain.RoleUser)
	resp, raw = doRequest(t, app, "GET", "/api/projects", token, nil)
	if resp.StatusCode != nethttp.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var listed struct {
		Data []domain.Project `json:"data"`
	}
	if err := json.Unmarshal(raw, &listed); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(listed.Data) != len(projects.SeedProjects()) {
		t.Errorf("got %d projects, want the seed dataset", len(listed.Data))
	}
}

func TestTaskMutationThroughPipeline(t *testing.T) {
	app, authService := newTestApp(t)
	token := issueToken(t, authService, domain.RoleUser)

	resp, raw := doRequest(t, app, "POST", "/api/projects/p-3/tasks", token,
		[]byte(`{"title":"Write runbooks","assignee":"Zoe","status":"Completed"}`))
	if resp.StatusCode != nethttp.StatusCreated {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var created struct {
		Data struct {
			Task    domain.Task    `json:"task"`
			Project domain.Project `json:"project"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// Seed p-3 had one Todo task; adding a completed one makes it 1/2.
	if created.Data.Project.Progress != 50 || created.Data.Project.Status != domain.ProjectStatusInProgress {
		t.Errorf("derived fields not recomputed: %+v", created.Data.Project)
	}

	resp, raw = doRequest(t, app, "POST", "/api/projects/missing/tasks", token, []byte(`{"title":"x"}`))
	if resp.StatusCode != nethttp.StatusNotFound {
		t.Errorf("status = %d, want 404 (body %s)", resp.StatusCode, raw)
	}
}
