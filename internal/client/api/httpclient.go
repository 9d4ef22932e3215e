package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/accountcli/internal/client/models"
	"github.com/dmitrijs2005/accountcli/internal/logging"
)

// DefaultRequestTimeout bounds every request-response round trip.
const DefaultRequestTimeout = 10 * time.Second

// HTTPClient implements Client against a fixed backend origin speaking JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  TokenSource
	log     logging.Logger

	mu             sync.Mutex
	registerGen    uint64
	cancelRegister context.CancelCauseFunc
}

// NewHTTPClient constructs a client for the given base URL. A zero timeout
// falls back to DefaultRequestTimeout. tokens may be nil for token-less use.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, log logging.Logger) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultRequestTimeout
	}
	return &HTTPClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.With("component", "api"),
	}
}

// Register sends the signup request. If an earlier Register is still in
// flight, it is canceled and resolves with ErrSuperseded; only the newest
// call's outcome is surfaced.
func (c *HTTPClient) Register(ctx context.Context, data models.RegisterData) (*models.AuthResponse, error) {
	runCtx, cancel := context.WithCancelCause(ctx)

	c.mu.Lock()
	if c.cancelRegister != nil {
		c.cancelRegister(ErrSuperseded)
		c.log.Debug(ctx, "canceled previous register request")
	}
	c.registerGen++
	gen := c.registerGen
	c.cancelRegister = cancel
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		if c.registerGen == gen {
			c.cancelRegister = nil
		}
		c.mu.Unlock()
		cancel(nil)
	}()

	var out models.AuthResponse
	if err := c.do(runCtx, http.MethodPost, "/signup", data, &out); err != nil {
		if errors.Is(context.Cause(runCtx), ErrSuperseded) {
			return nil, ErrSuperseded
		}
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Login(ctx context.Context, credentials models.LoginData) (*models.AuthResponse, error) {
	var out models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/login", credentials, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) GetProfile(ctx context.Context) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodGet, "/profile", nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, data models.UpdateProfileData) (*models.User, error) {
	var out models.User
	if err := c.do(ctx, http.MethodPut, "/profile", data, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Logout(ctx context.Context) error {
	return c.do(ctx, http.MethodPost, "/logout", nil, nil)
}

// do runs a single round trip: marshal body, attach headers and the bearer
// token, send, and either decode into out or normalize the failure.
func (c *HTTPClient) do(ctx context.Context, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			// Mirror of the source interceptor: the request proceeds
			// unauthenticated rather than failing outright.
			c.log.Warn(ctx, "token retrieval failed", "error", err)
		} else if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug(ctx, "request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return c.normalizeTransportError(err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &Error{Message: msgNetworkError}
	}

	if resp.StatusCode >= 400 {
		apiErr := normalizeServerError(resp.StatusCode, data)
		c.log.Debug(ctx, "server error", "method", method, "path", path,
			"request_id", requestID, "status", resp.StatusCode, "message", apiErr.Message)
		return apiErr
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil
}

// normalizeTransportError maps failures that never produced a server
// response: timeouts, unreachable hosts, canceled contexts.
func (c *HTTPClient) normalizeTransportError(err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}

	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &Error{Message: msgRequestTimeout}
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return &Error{Message: msgNetworkError}
	}
	if errors.As(err, new(*net.DNSError)) {
		return &Error{Message: msgNetworkError}
	}

	return &Error{Message: msgUnexpected}
}

// errorBody is the error shape the backend uses for 4xx/5xx responses.
type errorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// normalizeServerError prefers body.error, then body.message, then a
// generic "Server error (<status>)".
func normalizeServerError(status int, body []byte) *Error {
	var eb errorBody
	_ = json.Unmarshal(body, &eb)

	switch {
	case eb.Error != "":
		return &Error{Status: status, Message: eb.Error}
	case eb.Message != "":
		return &Error{Status: status, Message: eb.Message}
	default:
		return &Error{Status: status, Message: "Server error (" + strconv.Itoa(status) + ")"}
	}
}
