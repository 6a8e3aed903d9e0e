// Package client is a typed client for the YEN API.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"
)

// DefaultBaseURL is used when neither an explicit URL nor YEN_API_URL is set.
const DefaultBaseURL = "http://localhost:5000/api"

// BaseURLFromEnv returns YEN_API_URL or DefaultBaseURL.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("YEN_API_URL")); v != "" {
		return v
	}
	return DefaultBaseURL
}

// Config configures New.
type Config struct {
	// BaseURL includes the /api prefix. Empty means BaseURLFromEnv.
	BaseURL string
	// HTTPClient is used for all requests. Nil means a client with a 15s timeout.
	HTTPClient *http.Client
}

// Client calls the API on behalf of one Session.
type Client struct {
	baseURL    string
	httpClient *http.Client
	session    *Session
}

// New creates a logged out Client.
func New(cfg Config) (*Client, error) {
	base := cfg.BaseURL
	if base == "" {
		base = BaseURLFromEnv()
	}
	if _, err := url.Parse(base); err != nil {
		return nil, fmt.Errorf("client: invalid base URL %q: %w", base, err)
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{
		baseURL:    strings.TrimRight(base, "/"),
		httpClient: httpClient,
		session:    newSession(),
	}, nil
}

// Session returns the client's session.
func (c *Client) Session() *Session { return c.session }

type authResponse struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type meResponse struct {
	User         User     `json:"user"`
	Capabilities []string `json:"capabilities"`
}

// Register creates an account and logs in as it.
func (c *Client) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, "/auth/register", false, req, &resp); err != nil {
		return nil, err
	}
	return c.startSession(ctx, resp)
}

// Login authenticates and stores the session.
func (c *Client) Login(ctx context.Context, email, password string) (*User, error) {
	var resp authResponse
	body := map[string]string{"email": email, "password": password}
	if err := c.do(ctx, http.MethodPost, "/auth/login", false, body, &resp); err != nil {
		return nil, err
	}
	return c.startSession(ctx, resp)
}

func (c *Client) startSession(ctx context.Context, resp authResponse) (*User, error) {
	c.session.set(resp.Token, &resp.User, nil)
	if err := c.Refresh(ctx); err != nil && IsUnauthorized(err) {
		return nil, err
	}
	return c.session.User(), nil
}

// Logout forgets the session. The token stays valid until it expires.
func (c *Client) Logout() {
	c.session.Clear()
}

// Refresh reloads the session user and capabilities from /auth/me. A 401
// clears the session.
func (c *Client) Refresh(ctx context.Context) error {
	var resp meResponse
	if err := c.do(ctx, http.MethodGet, "/auth/me", true, nil, &resp); err != nil {
		if IsUnauthorized(err) {
			c.session.Clear()
		}
		return err
	}
	c.session.update(&resp.User, resp.Capabilities)
	return nil
}

// Ideas lists ideas newest first. LikedByMe is set when logged in.
func (c *Client) Ideas(ctx context.Context) ([]Idea, error) {
	var ideas []Idea
	err := c.do(ctx, http.MethodGet, "/ideas", false, nil, &ideas)
	return ideas, err
}

// Idea returns one idea.
func (c *Client) Idea(ctx context.Context, id string) (*Idea, error) {
	var idea Idea
	if err := c.do(ctx, http.MethodGet, "/ideas/"+url.PathEscape(id), false, nil, &idea); err != nil {
		return nil, err
	}
	return &idea, nil
}

// IdeasByUser lists the ideas a user owns.
func (c *Client) IdeasByUser(ctx context.Context, userID string) ([]Idea, error) {
	var ideas []Idea
	err := c.do(ctx, http.MethodGet, "/ideas/user/"+url.PathEscape(userID), false, nil, &ideas)
	return ideas, err
}

// CreateIdea pitches an idea as the session user.
func (c *Client) CreateIdea(ctx context.Context, req CreateIdeaRequest) (*Idea, error) {
	var resp struct {
		Idea Idea `json:"idea"`
	}
	if err := c.do(ctx, http.MethodPost, "/ideas", true, req, &resp); err != nil {
		return nil, err
	}
	return &resp.Idea, nil
}

// LikeIdea toggles the session user's like.
func (c *Client) LikeIdea(ctx context.Context, id string) (*LikeResult, error) {
	var res LikeResult
	if err := c.do(ctx, http.MethodPost, "/ideas/"+url.PathEscape(id)+"/like", true, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// FundIdea adds amount to the idea's funding.
func (c *Client) FundIdea(ctx context.Context, id string, amount float64) (*FundResult, error) {
	var res FundResult
	body := map[string]float64{"amount": amount}
	if err := c.do(ctx, http.MethodPost, "/ideas/"+url.PathEscape(id)+"/fund", true, body, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// Connections lists the connections of userID.
func (c *Client) Connections(ctx context.Context, userID string) ([]Connection, error) {
	var conns []Connection
	err := c.do(ctx, http.MethodGet, "/connections/"+url.PathEscape(userID), true, nil, &conns)
	return conns, err
}

// RequestConnection sends a connection request from the session user and
// returns the new request id.
func (c *Client) RequestConnection(ctx context.Context, req ConnectionRequest) (string, error) {
	var resp struct {
		Connection struct {
			ID string `json:"id"`
		} `json:"connection"`
	}
	if err := c.do(ctx, http.MethodPost, "/connections", true, req, &resp); err != nil {
		return "", err
	}
	return resp.Connection.ID, nil
}

// AcceptConnection accepts a request addressed to the session user.
func (c *Client) AcceptConnection(ctx context.Context, id string) (string, error) {
	return c.resolveConnection(ctx, id, "accept")
}

// RejectConnection rejects a request addressed to the session user.
func (c *Client) RejectConnection(ctx context.Context, id string) (string, error) {
	return c.resolveConnection(ctx, id, "reject")
}

func (c *Client) resolveConnection(ctx context.Context, id, action string) (string, error) {
	var resp struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, http.MethodPatch, "/connections/"+url.PathEscape(id)+"/"+action, true, nil, &resp); err != nil {
		return "", err
	}
	return resp.Status, nil
}

// Mentors lists mentor profiles.
func (c *Client) Mentors(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/users/mentors", false, nil, &users)
	return users, err
}

// Investors lists investor profiles.
func (c *Client) Investors(ctx context.Context) ([]User, error) {
	var users []User
	err := c.do(ctx, http.MethodGet, "/users/investors", false, nil, &users)
	return users, err
}

// Profile returns a public profile.
func (c *Client) Profile(ctx context.Context, userID string) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(userID), false, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile edits the session user's profile and refreshes the session.
func (c *Client) UpdateProfile(ctx context.Context, update ProfileUpdate) (*User, error) {
	var resp struct {
		User User `json:"user"`
	}
	if err := c.do(ctx, http.MethodPut, "/users/profile", true, update, &resp); err != nil {
		return nil, err
	}
	if err := c.Refresh(ctx); err != nil {
		return nil, err
	}
	return &resp.User, nil
}

// Notifications lists the session user's notifications.
func (c *Client) Notifications(ctx context.Context) ([]Notification, error) {
	var items []Notification
	err := c.do(ctx, http.MethodGet, "/notifications", true, nil, &items)
	return items, err
}

// MarkNotificationRead marks one notification read.
func (c *Client) MarkNotificationRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPatch, "/notifications/"+url.PathEscape(id)+"/read", true, nil, nil)
}

// AdminStats returns platform statistics. Admin only.
func (c *Client) AdminStats(ctx context.Context) (*PlatformStats, error) {
	var resp struct {
		Stats PlatformStats `json:"stats"`
	}
	if err := c.do(ctx, http.MethodGet, "/admin/stats", true, nil, &resp); err != nil {
		return nil, err
	}
	return &resp.Stats, nil
}

// FundingReport downloads the funding report PDF. Admin only.
func (c *Client) FundingReport(ctx context.Context) ([]byte, error) {
	return c.raw(ctx, http.MethodGet, "/admin/reports/funding.pdf")
}

// do sends body as JSON and decodes a 2xx response into out. When
// requireAuth is set a missing session fails before any request is made.
// Optional identity is sent whenever a session exists.
func (c *Client) do(ctx context.Context, method, path string, requireAuth bool, body, out any) error {
	token := c.session.Token()
	if requireAuth && token == "" {
		return ErrNotLoggedIn
	}

	var bodyReader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("client: encode request body: %w", err)
		}
		bodyReader = bytes.NewReader(encoded)
	}

	responseBody, err := c.send(ctx, method, path, token, bodyReader)
	if err != nil {
		return err
	}
	if out == nil || len(responseBody) == 0 {
		return nil
	}
	if err := json.Unmarshal(responseBody, out); err != nil {
		return fmt.Errorf("client: decode %s %s response: %w", method, path, err)
	}
	return nil
}

func (c *Client) raw(ctx context.Context, method, path string) ([]byte, error) {
	token := c.session.Token()
	if token == "" {
		return nil, ErrNotLoggedIn
	}
	return c.send(ctx, method, path, token, nil)
}

func (c *Client) send(ctx context.Context, method, path, token string, body io.Reader) ([]byte, error) {
	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("client: create request: %w", err)
	}
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w (%s %s: %v)", ErrNetwork, method, path, err)
	}
	defer response.Body.Close()

	responseBody, err := io.ReadAll(io.LimitReader(response.Body, 10<<20))
	if err != nil {
		return nil, fmt.Errorf("client: read response body: %w", err)
	}
	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return responseBody, nil
	}

	apiErr := &APIError{StatusCode: response.StatusCode}
	_ = json.Unmarshal(responseBody, apiErr)
	return nil, apiErr
}
