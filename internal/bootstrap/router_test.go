package bootstrap_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yen-network/internal/auth"
	"yen-network/internal/bootstrap"
	"yen-network/internal/domain"
	"yen-network/internal/repository"
	"yen-network/internal/repository/mocks"
	"yen-network/internal/service"
)

type routerFixture struct {
	router *gin.Engine
	tokens *auth.TokenIssuer
	users  *mocks.UserRepository
	ideas  *mocks.IdeaRepository
	conns  *mocks.ConnectionRepository
	notifs *mocks.NotificationRepository
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	return newRouterFixtureWithOrigins(t, []string{"http://localhost:3000"})
}

func newRouterFixtureWithOrigins(t *testing.T, origins []string) *routerFixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := &routerFixture{
		tokens: auth.NewTokenIssuer("test-secret", time.Hour),
		users:  mocks.NewUserRepository(t),
		ideas:  mocks.NewIdeaRepository(t),
		conns:  mocks.NewConnectionRepository(t),
		notifs: mocks.NewNotificationRepository(t),
	}
	svc := bootstrap.Services{
		Auth:          service.NewAuthService(f.users, f.tokens, []string{"admin@yen.africa"}),
		Ideas:         service.NewIdeaService(f.ideas, f.users, service.NopNotifier{}),
		Connections:   service.NewConnectionService(f.conns, f.users, service.NopNotifier{}, service.ResolveError),
		Users:         service.NewUserService(f.users),
		Notifications: service.NewNotificationService(f.notifs, nil),
		Reports:       service.NewReportService(f.users, f.ideas, f.conns),
	}
	f.router = bootstrap.NewRouter(svc, bootstrap.RouterOptions{
		Tokens:      f.tokens,
		CORSOrigins: origins,
	})
	return f
}

func (f *routerFixture) token(t *testing.T, userID string, role domain.Role) string {
	t.Helper()
	tok, err := f.tokens.Issue(userID, role)
	require.NoError(t, err)
	return tok
}

func (f *routerFixture) do(method, target, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(http.MethodGet, "/health", "", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "OK", body["status"])
	assert.Equal(t, "YEN Server is running", body["message"])
	_, err := time.Parse(time.RFC3339, body["timestamp"].(string))
	assert.NoError(t, err)
}

func TestUnknownRouteIsJSON404(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(http.MethodGet, "/api/nope", "", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Route not found", decode(t, w)["error"])
}

func TestCORSPreflight(t *testing.T) {
	f := newRouterFixture(t)
	req := httptest.NewRequest(http.MethodOptions, "/api/ideas", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSWithoutOriginListEchoesOrigin(t *testing.T) {
	f := newRouterFixtureWithOrigins(t, nil)
	req := httptest.NewRequest(http.MethodOptions, "/api/ideas", nil)
	req.Header.Set("Origin", "https://yen.example.org")
	req.Header.Set("Access-Control-Request-Method", "POST")
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://yen.example.org", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRegisterThenMe(t *testing.T) {
	f := newRouterFixture(t)
	f.users.On("FindByEmail", mock.Anything, "amaka@example.com").Return(nil, repository.ErrUserNotFound).Once()
	f.users.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.User).ID = "amaka-1" }).
		Return(nil).Once()

	w := f.do(http.MethodPost, "/api/auth/register", "", map[string]string{
		"name":     "Amaka",
		"email":    "Amaka@Example.com",
		"password": "secret123",
		"role":     "entrepreneur",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "amaka@example.com", user["email"])
	assert.NotContains(t, user, "password")
	token := body["token"].(string)

	f.users.On("FindByID", mock.Anything, "amaka-1").
		Return(&domain.User{ID: "amaka-1", Name: "Amaka", Email: "amaka@example.com", Role: domain.RoleEntrepreneur}, nil).Once()
	w = f.do(http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, decode(t, w)["capabilities"], string(domain.CapPitchIdeas))
}

func TestRegisterValidation(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(http.MethodPost, "/api/auth/register", "", map[string]string{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.NotEmpty(t, decode(t, w)["errors"])
}

func TestCreateIdeaShortTitle(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(http.MethodPost, "/api/ideas", f.token(t, "amaka-1", domain.RoleEntrepreneur), map[string]any{
		"title":       "App",
		"description": "Connect smallholder farmers directly to buyers in Lagos markets.",
		"category":    "agritech",
		"fundingGoal": 5000,
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, decode(t, w)["errors"], "Title must be at least 5 characters")
}

func TestCreateIdeaRequiresToken(t *testing.T) {
	f := newRouterFixture(t)
	w := f.do(http.MethodPost, "/api/ideas", "", map[string]any{"title": "Farm link"})

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "No token provided or invalid format", decode(t, w)["error"])
}

func TestListIdeasAnonymousOmitsLikedByMe(t *testing.T) {
	f := newRouterFixture(t)
	f.ideas.On("List", mock.Anything).Return([]domain.Idea{{
		ID:          "idea-1",
		UserID:      "amaka-1",
		Owner:       domain.User{ID: "amaka-1", Name: "Amaka"},
		Title:       "Farm to market",
		FundingGoal: 5000,
	}}, nil).Once()

	w := f.do(http.MethodGet, "/api/ideas", "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var ideas []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &ideas))
	require.Len(t, ideas, 1)
	assert.Equal(t, "Amaka", ideas[0]["userName"])
	assert.NotContains(t, ideas[0], "likedByMe")
}

func TestMentorsArePublic(t *testing.T) {
	f := newRouterFixture(t)
	f.users.On("ListByRole", mock.Anything, domain.RoleMentor).
		Return([]domain.User{{ID: "m1", Name: "Kofi", Role: domain.RoleMentor, Password: "hash"}}, nil).Once()

	w := f.do(http.MethodGet, "/api/users/mentors", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var users []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &users))
	require.Len(t, users, 1)
	assert.NotContains(t, users[0], "password")
	assert.Equal(t, []any{}, users[0]["expertise"])
}

func TestAdminRoutes(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(http.MethodGet, "/api/admin/stats", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.do(http.MethodGet, "/api/admin/stats", f.token(t, "u1", domain.RoleInvestor), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "Admins only", decode(t, w)["error"])

	f.users.On("ListAll", mock.Anything).Return([]domain.User{{ID: "u1", Role: domain.RoleInvestor}}, nil).Once()
	w = f.do(http.MethodGet, "/api/admin/users", f.token(t, "admin-1", domain.RoleAdmin), nil)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestRouterRecoversPanics(t *testing.T) {
	f := newRouterFixture(t)
	f.users.On("ListByRole", mock.Anything, domain.RoleInvestor).Panic("boom").Maybe()

	w := f.do(http.MethodGet, "/api/users/investors", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Something went wrong on the server. Please try again later.", decode(t, w)["error"])
}
