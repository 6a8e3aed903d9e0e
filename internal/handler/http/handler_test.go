package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"yen-network/internal/domain"
	httpHandler "yen-network/internal/handler/http"
	"yen-network/internal/middleware"
	"yen-network/internal/repository"
	"yen-network/internal/repository/mocks"
	"yen-network/internal/service"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// asUser stands in for the Auth middleware.
func asUser(userID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if userID != "" {
			c.Set(middleware.ContextUserID, userID)
		}
		c.Next()
	}
}

func serve(r http.Handler, method, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func body(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func connectionRouter(t *testing.T, userID string, policy service.ResolvePolicy) (*gin.Engine, *mocks.ConnectionRepository, *mocks.UserRepository) {
	conns := mocks.NewConnectionRepository(t)
	users := mocks.NewUserRepository(t)
	h := httpHandler.NewConnectionHandler(service.NewConnectionService(conns, users, service.NopNotifier{}, policy))

	r := gin.New()
	r.Use(asUser(userID))
	r.POST("/connections", h.Create)
	r.PATCH("/connections/:id/accept", h.Accept)
	r.PATCH("/connections/:id/reject", h.Reject)
	return r, conns, users
}

func TestConnectionCreate(t *testing.T) {
	r, conns, users := connectionRouter(t, "amaka", service.ResolveError)
	users.On("FindByID", mock.Anything, "kofi").Return(&domain.User{ID: "kofi", Role: domain.RoleInvestor}, nil).Once()
	conns.On("FindBetween", mock.Anything, "amaka", "kofi").Return(nil, repository.ErrConnectionNotFound).Once()
	conns.On("Create", mock.Anything, mock.AnythingOfType("*domain.Connection")).
		Run(func(args mock.Arguments) { args.Get(1).(*domain.Connection).ID = "conn-1" }).
		Return(nil).Once()

	w := serve(r, http.MethodPost, "/connections", `{"toUserId":"kofi","type":"investor","message":"Would love your input"}`)

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	out := body(t, w)
	assert.Equal(t, "Connection request sent!", out["message"])
	conn := out["connection"].(map[string]any)
	assert.Equal(t, "conn-1", conn["id"])
	assert.Equal(t, "pending", conn["status"])
}

func TestConnectionCreateWithSelf(t *testing.T) {
	r, _, _ := connectionRouter(t, "amaka", service.ResolveError)

	w := serve(r, http.MethodPost, "/connections", `{"toUserId":"amaka","type":"partner"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "You cannot connect with yourself", body(t, w)["error"])
}

func TestConnectionCreateValidation(t *testing.T) {
	r, _, _ := connectionRouter(t, "amaka", service.ResolveError)

	w := serve(r, http.MethodPost, "/connections", `{"toUserId":"kofi","type":"friend"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Type must be mentor, investor, or partner"}, body(t, w)["errors"])
}

func TestConnectionResolveForbiddenMessages(t *testing.T) {
	pending := &domain.Connection{ID: "conn-1", SenderID: "amaka", ReceiverID: "kofi", Status: domain.StatusPending}

	for action, want := range map[string]string{
		"accept": "You are not authorized to accept this request",
		"reject": "You are not authorized to reject this request",
	} {
		t.Run(action, func(t *testing.T) {
			r, conns, _ := connectionRouter(t, "amaka", service.ResolveError)
			conns.On("FindByID", mock.Anything, "conn-1").Return(pending, nil).Once()

			w := serve(r, http.MethodPatch, "/connections/conn-1/"+action, "")

			assert.Equal(t, http.StatusForbidden, w.Code)
			assert.Equal(t, want, body(t, w)["error"])
		})
	}
}

func TestConnectionAcceptTwice(t *testing.T) {
	accepted := &domain.Connection{ID: "conn-1", SenderID: "amaka", ReceiverID: "kofi", Status: domain.StatusAccepted}

	r, conns, _ := connectionRouter(t, "kofi", service.ResolveError)
	conns.On("FindByID", mock.Anything, "conn-1").Return(accepted, nil).Once()
	w := serve(r, http.MethodPatch, "/connections/conn-1/accept", "")
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Connection request has already been resolved", body(t, w)["error"])

	r, conns, _ = connectionRouter(t, "kofi", service.ResolveNoop)
	conns.On("FindByID", mock.Anything, "conn-1").Return(accepted, nil).Once()
	w = serve(r, http.MethodPatch, "/connections/conn-1/accept", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "accepted", body(t, w)["status"])
}

func ideaRouter(t *testing.T, userID string) (*gin.Engine, *mocks.IdeaRepository) {
	ideas := mocks.NewIdeaRepository(t)
	users := mocks.NewUserRepository(t)
	h := httpHandler.NewIdeaHandler(service.NewIdeaService(ideas, users, service.NopNotifier{}))

	r := gin.New()
	r.Use(asUser(userID))
	r.POST("/ideas/:id/fund", h.Fund)
	r.POST("/ideas/:id/like", h.Like)
	return r, ideas
}

func TestFundValidation(t *testing.T) {
	r, _ := ideaRouter(t, "kofi")

	for payload, want := range map[string]string{
		`{}`:                "Amount is required",
		`{"amount":"lots"}`: "Amount must be a number",
		`{"amount":0}`:      "Amount must be greater than 0",
	} {
		w := serve(r, http.MethodPost, "/ideas/idea-1/fund", payload)
		require.Equal(t, http.StatusBadRequest, w.Code, payload)
		assert.Equal(t, []any{want}, body(t, w)["errors"], payload)
	}
}

func TestFundClampsAtGoal(t *testing.T) {
	r, ideas := ideaRouter(t, "kofi")
	ideas.On("AddFunding", mock.Anything, "idea-1", 500.0).
		Return(&domain.Idea{ID: "idea-1", UserID: "amaka", FundingGoal: 1000, CurrentFunding: 1000}, 900.0, nil).Once()

	w := serve(r, http.MethodPost, "/ideas/idea-1/fund", `{"amount":500}`)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	out := body(t, w)
	assert.Equal(t, "Funding added successfully!", out["message"])
	assert.Equal(t, 1000.0, out["currentFunding"])
	assert.Equal(t, 1000.0, out["fundingGoal"])
}

func TestFundUnknownIdea(t *testing.T) {
	r, ideas := ideaRouter(t, "kofi")
	ideas.On("AddFunding", mock.Anything, "missing", 10.0).Return(nil, 0.0, repository.ErrIdeaNotFound).Once()

	w := serve(r, http.MethodPost, "/ideas/missing/fund", `{"amount":10}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Idea not found", body(t, w)["error"])
}

func TestMalformedBody(t *testing.T) {
	r, _ := ideaRouter(t, "kofi")

	w := serve(r, http.MethodPost, "/ideas/idea-1/fund", `{"amount":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, []any{"Invalid request body"}, body(t, w)["errors"])
}

func TestLikeRequiresIdentity(t *testing.T) {
	r, _ := ideaRouter(t, "")

	w := serve(r, http.MethodPost, "/ideas/idea-1/like", "")

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndNotFound(t *testing.T) {
	r := gin.New()
	r.GET("/health", httpHandler.Health)
	r.NoRoute(httpHandler.NotFound)

	w := serve(r, http.MethodGet, "/health", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", body(t, w)["status"])

	w = serve(r, http.MethodGet, "/missing", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.True(t, bytes.Contains(w.Body.Bytes(), []byte("Route not found")))
}
