package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/gauru07/fullstack-dating-app/internal/model"
)

const defaultTimeout = 15 * time.Second

// Config holds the client-side view of the core backend.
type Config struct {
	BaseURL string        // e.g. http://localhost:3001
	Timeout time.Duration // per-request timeout, defaultTimeout when zero
}

// Client is the single typed integration layer against the StreamMatch core
// backend. Calls are credentialed with the backend's session cookie (kept in
// a per-client jar) plus an optional bearer token fallback captured at login.
// One Client serves one user session; it is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *zap.Logger

	mu    sync.RWMutex
	token string
}

// New builds a client with its own cookie jar.
func New(cfg Config, logger *zap.Logger) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("backend: base URL is required")
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("backend: create cookie jar: %w", err)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: cfg.BaseURL,
		http:    &http.Client{Jar: jar, Timeout: timeout},
		logger:  logger,
	}, nil
}

// SetToken installs the bearer token used as the cookie fallback credential.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

func (c *Client) bearer() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// -----------------------------------------------------------------
// Auth
// -----------------------------------------------------------------

// LoginResult is the /login response body. The backend may or may not echo
// the user; when it does, callers can adopt it without a second round trip.
type LoginResult struct {
	Message string             `json:"message"`
	Token   string             `json:"token"`
	User    *model.BackendUser `json:"user"`
}

// Login exchanges credentials for a session. The backend session cookie
// lands in the client's jar; a token in the body is kept as bearer fallback.
func (c *Client) Login(ctx context.Context, emailID, password string) (*LoginResult, error) {
	body := map[string]string{"emailId": emailID, "password": password}

	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/login", body, &result); err != nil {
		return nil, err
	}

	if result.Token != "" {
		c.SetToken(result.Token)
	}

	return &result, nil
}

// Signup forwards a raw signup payload unchanged.
func (c *Client) Signup(ctx context.Context, payload json.RawMessage) (*LoginResult, error) {
	var result LoginResult
	if err := c.doJSON(ctx, http.MethodPost, "/signup", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Logout revokes the backend session.
func (c *Client) Logout(ctx context.Context) error {
	return c.doJSON(ctx, http.MethodPost, "/logout", nil, nil)
}

// CheckAuth validates the current session and returns the authenticated user.
func (c *Client) CheckAuth(ctx context.Context) (*model.BackendUser, error) {
	var envelope struct {
		User *model.BackendUser `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/check-auth", nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.User == nil {
		return nil, fmt.Errorf("%w: check-auth returned no user", ErrInvalidResponse)
	}
	return envelope.User, nil
}

// -----------------------------------------------------------------
// Discovery and requests
// -----------------------------------------------------------------

// SwipeResult is the response to a like. Match is server-confirmed mutual
// interest; nil means the backend did not report an outcome.
type SwipeResult struct {
	Match   *bool  `json:"match"`
	Message string `json:"message"`
}

// Feed fetches the discovery candidates. The backend has shipped both a bare
// array and a {data: [...]} envelope over time; both are accepted.
func (c *Client) Feed(ctx context.Context) ([]model.BackendUser, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/feed", nil, &raw); err != nil {
		return nil, err
	}
	return decodeUserList(raw)
}

// Connections fetches the established matches.
func (c *Client) Connections(ctx context.Context) ([]model.BackendUser, error) {
	var raw json.RawMessage
	if err := c.doJSON(ctx, http.MethodGet, "/user/connections", nil, &raw); err != nil {
		return nil, err
	}
	return decodeUserList(raw)
}

// SendInterested posts a like signal for the candidate.
func (c *Client) SendInterested(ctx context.Context, userID string) (*SwipeResult, error) {
	var result SwipeResult
	path := "/request/send/interested/" + url.PathEscape(userID)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// SendIgnored posts a pass signal for the candidate.
func (c *Client) SendIgnored(ctx context.Context, userID string) error {
	path := "/request/send/ignored/" + url.PathEscape(userID)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}

// ReceivedRequests fetches pending inbound requests. Entries stay raw
// because two historical shapes are in circulation; the inbox decodes them.
func (c *Client) ReceivedRequests(ctx context.Context) ([]json.RawMessage, error) {
	var envelope struct {
		Data []json.RawMessage `json:"data"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/user/request/received", nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Data, nil
}

// Review verdicts.
const (
	VerdictAccepted = "accepted"
	VerdictRejected = "rejected"
)

// ReviewRequest resolves a pending request with the given verdict.
func (c *Client) ReviewRequest(ctx context.Context, verdict, requestID string) error {
	if verdict != VerdictAccepted && verdict != VerdictRejected {
		return fmt.Errorf("backend: unknown review verdict %q", verdict)
	}
	path := "/request/review/" + verdict + "/" + url.PathEscape(requestID)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil)
}

// -----------------------------------------------------------------
// Profile
// -----------------------------------------------------------------

// Profile fetches the authenticated user's own record.
func (c *Client) Profile(ctx context.Context) (*model.BackendUser, error) {
	var envelope struct {
		Data *model.BackendUser `json:"data"`
		User *model.BackendUser `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodGet, "/profile/view", nil, &envelope); err != nil {
		return nil, err
	}
	switch {
	case envelope.Data != nil:
		return envelope.Data, nil
	case envelope.User != nil:
		return envelope.User, nil
	default:
		return nil, fmt.Errorf("%w: profile view returned no user", ErrInvalidResponse)
	}
}

// UpdateProfile forwards a raw profile patch unchanged.
func (c *Client) UpdateProfile(ctx context.Context, patch json.RawMessage) error {
	return c.doJSON(ctx, http.MethodPut, "/profile/update", patch, nil)
}

// UploadPhotos proxies a multipart body straight through to the backend.
func (c *Client) UploadPhotos(ctx context.Context, contentType string, body io.Reader) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/profile/upload-photos", body)
	if err != nil {
		return fmt.Errorf("backend: build upload request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}
	return nil
}

// DeletePhoto removes a previously uploaded photo by its URL.
func (c *Client) DeletePhoto(ctx context.Context, photoURL string) error {
	path := "/profile/delete-photo/" + url.PathEscape(photoURL)
	return c.doJSON(ctx, http.MethodDelete, path, nil, nil)
}

// -----------------------------------------------------------------
// Plumbing
// -----------------------------------------------------------------

// doJSON runs one request. body may be nil, a json.RawMessage, or any
// marshalable value; out may be nil when the response body is irrelevant.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		switch b := body.(type) {
		case json.RawMessage:
			reader = bytes.NewReader(b)
		default:
			encoded, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("backend: encode request body: %w", err)
			}
			reader = bytes.NewReader(encoded)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("backend: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	if token := c.bearer(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.logger.Debug("backend call failed",
			zap.String("method", method),
			zap.String("path", path),
			zap.Error(err),
		)
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out == nil {
		io.Copy(io.Discard, resp.Body)
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

// decodeAPIError extracts the server-supplied message from an error response.
// Both {"error": "..."} and {"message": "..."} envelopes are in use.
func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{Status: resp.StatusCode}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return apiErr
	}

	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil {
		if envelope.Error != "" {
			apiErr.Message = envelope.Error
		} else {
			apiErr.Message = envelope.Message
		}
	}

	return apiErr
}

// decodeUserList accepts both list shapes the backend has shipped: a bare
// array and a {data: [...]} envelope.
func decodeUserList(raw json.RawMessage) ([]model.BackendUser, error) {
	var users []model.BackendUser
	if err := json.Unmarshal(raw, &users); err == nil {
		return users, nil
	}

	var envelope struct {
		Data []model.BackendUser `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("%w: unexpected user list shape", ErrInvalidResponse)
	}
	return envelope.Data, nil
}
