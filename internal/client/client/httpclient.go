package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophsession/internal/common"
	"github.com/dmitrijs2005/gophsession/internal/logging"
)

const (
	pathCheckEmail    = "/api/users/check-email"
	pathCheckNickname = "/api/users/check-nickname"
	pathLogin         = "/api/users/login"
	pathRegister      = "/api/users/post"

	maxErrorBody = 4 << 10
)

// HTTPClient talks to the account service over HTTP/JSON.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	log     logging.Logger
}

func NewHTTPClient(baseURL string, timeout time.Duration, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log.With("component", "account-client"),
	}
}

type existsResponse struct {
	Exists bool `json:"exists"`
}

type authResponse struct {
	Success bool        `json:"success"`
	Token   string      `json:"token"`
	User    *RemoteUser `json:"user"`
	Message string      `json:"message"`
}

type loginRequest struct {
	Email string `json:"email"`
}

func (c *HTTPClient) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var resp existsResponse
	q := url.Values{"email": {email}}
	if err := c.do(ctx, http.MethodGet, pathCheckEmail+"?"+q.Encode(), "", nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) NicknameExists(ctx context.Context, nickname string) (bool, error) {
	var resp existsResponse
	q := url.Values{"nickname": {nickname}}
	if err := c.do(ctx, http.MethodGet, pathCheckNickname+"?"+q.Encode(), "", nil, &resp); err != nil {
		return false, err
	}
	return resp.Exists, nil
}

func (c *HTTPClient) Login(ctx context.Context, providerToken string, email string) (*AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, pathLogin, providerToken, loginRequest{Email: email}, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}
	return resp.result("login")
}

func (c *HTTPClient) Register(ctx context.Context, providerToken string, r Registration) (*AuthResult, error) {
	var resp authResponse
	if err := c.do(ctx, http.MethodPost, pathRegister, providerToken, r, &resp); err != nil {
		return nil, fmt.Errorf("registration: %w", err)
	}
	return resp.result("registration")
}

func (r *authResponse) result(op string) (*AuthResult, error) {
	if !r.Success {
		if r.Message != "" {
			return nil, fmt.Errorf("%s: %w: %s", op, ErrRequestFailed, r.Message)
		}
		return nil, fmt.Errorf("%s: %w", op, ErrRequestFailed)
	}
	if r.User == nil {
		return nil, fmt.Errorf("%s: %w: missing user", op, ErrInvalidResponse)
	}
	return &AuthResult{Token: r.Token, User: *r.User}, nil
}

func (c *HTTPClient) do(ctx context.Context, method, path, bearer string, body any, out any) error {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rd)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	reqID := uuid.NewString()
	req.Header.Set(common.RequestIDHeaderName, reqID)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set(common.AuthorizationHeaderName, "Bearer "+bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn(ctx, "account service unreachable", "path", path, "request_id", reqID, "error", err)
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.mapStatus(ctx, resp, path, reqID)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return nil
}

func (c *HTTPClient) mapStatus(ctx context.Context, resp *http.Response, path, reqID string) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var body struct {
		Message string `json:"message"`
	}
	_ = json.Unmarshal(raw, &body)
	msg := body.Message
	if msg == "" {
		msg = resp.Status
	}

	c.log.Warn(ctx, "account service rejected request", "path", path, "request_id", reqID, "status", resp.StatusCode)

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrUnauthorized, msg)
	case resp.StatusCode >= 500:
		return fmt.Errorf("%w: %s", ErrUnavailable, msg)
	default:
		return fmt.Errorf("%w: %s", ErrRequestFailed, msg)
	}
}
