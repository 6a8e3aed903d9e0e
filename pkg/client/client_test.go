package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"yen-network/pkg/client"
)

const testToken = "tok-amaka"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func authorized(r *http.Request) bool {
	return r.Header.Get("Authorization") == "Bearer "+testToken
}

func newAPI(t *testing.T, requests *int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "secret123" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid email or password"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"user":    map[string]string{"id": "amaka-1", "name": "Amaka", "email": body["email"], "role": "entrepreneur"},
			"token":   testToken,
		})
	})
	mux.HandleFunc("/api/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if !authorized(r) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "Invalid token. Please login again."})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"success":      true,
			"user":         map[string]any{"id": "amaka-1", "name": "Amaka", "role": "entrepreneur", "location": "Lagos"},
			"capabilities": []string{"ideas:pitch", "ideas:fund", "connections:create"},
		})
	})
	mux.HandleFunc("/api/ideas", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			writeJSON(w, http.StatusBadRequest, map[string]any{"errors": []string{"Title must be at least 5 characters"}})
			return
		}
		liked := authorized(r)
		writeJSON(w, http.StatusOK, []map[string]any{{"id": "idea-1", "title": "Farm to market", "fundingGoal": 100, "currentFunding": 100, "likedByMe": liked}})
	})
	mux.HandleFunc("/api/ideas/idea-1/fund", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Funding added successfully!", "currentFunding": 100, "fundingGoal": 100})
	})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests != nil {
			atomic.AddInt32(requests, 1)
		}
		mux.ServeHTTP(w, r)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func newClient(t *testing.T, srv *httptest.Server) *client.Client {
	t.Helper()
	c, err := client.New(client.Config{BaseURL: srv.URL + "/api/"})
	require.NoError(t, err)
	return c
}

func TestLoginLoadsSessionFromMe(t *testing.T) {
	c := newClient(t, newAPI(t, nil))

	user, err := c.Login(context.Background(), "amaka@example.com", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "Lagos", user.Location)
	s := c.Session()
	assert.True(t, s.LoggedIn())
	assert.Equal(t, testToken, s.Token())
	assert.True(t, s.Can("ideas:pitch"))
	assert.False(t, s.Can("admin:view"))
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	c := newClient(t, newAPI(t, nil))

	_, err := c.Login(context.Background(), "amaka@example.com", "wrong")
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.False(t, c.Session().LoggedIn())
	assert.Nil(t, c.Session().User())
}

func TestRefreshWithStaleTokenClearsSession(t *testing.T) {
	c := newClient(t, newAPI(t, nil))
	c.Session().Restore("stale")

	err := c.Refresh(context.Background())
	require.Error(t, err)
	assert.True(t, client.IsUnauthorized(err))
	assert.False(t, c.Session().LoggedIn())
}

func TestAuthenticatedCallWithoutSessionSendsNothing(t *testing.T) {
	var requests int32
	c := newClient(t, newAPI(t, &requests))

	_, err := c.FundIdea(context.Background(), "idea-1", 50)
	assert.ErrorIs(t, err, client.ErrNotLoggedIn)
	assert.Zero(t, atomic.LoadInt32(&requests))
}

func TestIdeasSendsOptionalIdentity(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newAPI(t, nil))

	ideas, err := c.Ideas(ctx)
	require.NoError(t, err)
	require.Len(t, ideas, 1)
	require.NotNil(t, ideas[0].LikedByMe)
	assert.False(t, *ideas[0].LikedByMe)
	assert.True(t, ideas[0].FullyFunded())

	_, err = c.Login(ctx, "amaka@example.com", "secret123")
	require.NoError(t, err)
	ideas, err = c.Ideas(ctx)
	require.NoError(t, err)
	assert.True(t, *ideas[0].LikedByMe)

	res, err := c.FundIdea(ctx, "idea-1", 500)
	require.NoError(t, err)
	assert.Equal(t, 100.0, res.CurrentFunding)
}

func TestValidationErrorsAreExposed(t *testing.T) {
	ctx := context.Background()
	c := newClient(t, newAPI(t, nil))
	_, err := c.Login(ctx, "amaka@example.com", "secret123")
	require.NoError(t, err)

	_, err = c.CreateIdea(ctx, client.CreateIdeaRequest{Title: "App"})
	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, []string{"Title must be at least 5 characters"}, apiErr.Messages)
	assert.Contains(t, apiErr.Error(), "Title must be at least 5 characters")
}

func TestNetworkError(t *testing.T) {
	srv := newAPI(t, nil)
	c := newClient(t, srv)
	srv.Close()

	_, err := c.Mentors(context.Background())
	assert.ErrorIs(t, err, client.ErrNetwork)
}

func TestBaseURLFromEnv(t *testing.T) {
	t.Setenv("YEN_API_URL", "")
	assert.Equal(t, client.DefaultBaseURL, client.BaseURLFromEnv())

	t.Setenv("YEN_API_URL", "https://api.yen.africa/api")
	assert.Equal(t, "https://api.yen.africa/api", client.BaseURLFromEnv())
}
