package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/dmitrijs2005/useradmin/internal/client/models"
	"github.com/dmitrijs2005/useradmin/internal/common"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const DefaultTimeout = 10 * time.Second

type HTTPClient struct {
	baseURL string
	timeout time.Duration
	tokens  TokenSource
	http    *http.Client
}

type Option func(*HTTPClient)

// WithHTTPClient replaces the underlying *http.Client.
func WithHTTPClient(c *http.Client) Option {
	return func(h *HTTPClient) { h.http = c }
}

func NewHTTPClient(baseURL string, timeout time.Duration, tokens TokenSource, opts ...Option) *HTTPClient {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	c := &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: timeout,
		tokens:  tokens,
		http:    &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport)},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

type apiMessage struct {
	Message string `json:"message"`
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Errors  []apiMessage    `json:"errors"`
}

type userData struct {
	User *models.User `json:"user"`
}

type identityData struct {
	User *models.Identity `json:"user"`
}

func unavailable(err error) error {
	return fmt.Errorf("%w: %w", ErrUnavailable, err)
}

func (c *HTTPClient) newRequest(ctx context.Context, method, path string, query url.Values, body any) (*http.Request, error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		r = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, r)
	if err != nil {
		return nil, unavailable(err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set(common.RequestIDHeaderName, uuid.NewString())

	if c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("read token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// do performs one API call and decodes the envelope's data into out.
func (c *HTTPClient) do(ctx context.Context, method, path string, query url.Values, body any, out any) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, method, path, query, body)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable(err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return unavailable(err)
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return unavailable(fmt.Errorf("status %d: undecodable body: %w", resp.StatusCode, err))
	}

	return decodeEnvelope(resp.StatusCode, &env, out)
}

func decodeEnvelope(status int, env *envelope, out any) error {
	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			msgs = append(msgs, e.Message)
		}
		return common.NewValidationError(msgs...)
	}

	ok := status >= 200 && status < 300
	if ok && env.Success {
		if out == nil {
			return nil
		}
		if len(env.Data) == 0 || string(env.Data) == "null" {
			return fmt.Errorf("%w: response has no data", ErrRejected)
		}
		if err := json.Unmarshal(env.Data, out); err != nil {
			return unavailable(fmt.Errorf("decode data: %w", err))
		}
		return nil
	}

	msg := env.Message
	if msg == "" {
		msg = "HTTP " + strconv.Itoa(status)
	}

	switch status {
	case http.StatusNotFound:
		return fmt.Errorf("%s: %w", msg, common.ErrorNotFound)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%s: %w", msg, ErrUnauthorized)
	default:
		return fmt.Errorf("%w: %s", ErrRejected, msg)
	}
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}

func (c *HTTPClient) Login(ctx context.Context, login, password string) (*models.LoginResult, error) {
	body := map[string]string{"login": login, "password": password}

	var res models.LoginResult
	if err := c.do(ctx, http.MethodPost, "/auth/login", nil, body, &res); err != nil {
		if IsUnavailable(err) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", common.ErrInvalidCredentials, err)
	}
	if res.User == nil || res.Token == "" {
		return nil, fmt.Errorf("%w: incomplete login response", common.ErrInvalidCredentials)
	}
	return &res, nil
}

func (c *HTTPClient) CurrentUser(ctx context.Context) (*models.Identity, error) {
	var d identityData
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, nil, &d); err != nil {
		return nil, err
	}
	if d.User == nil {
		return nil, fmt.Errorf("%w: response has no user", ErrRejected)
	}
	return d.User, nil
}

func (c *HTTPClient) ListUsers(ctx context.Context, filter models.ListFilter) (*models.UserPage, error) {
	var page models.UserPage
	if err := c.do(ctx, http.MethodGet, "/users", filter.Query(), nil, &page); err != nil {
		return nil, err
	}
	if page.Users == nil {
		page.Users = []models.User{}
	}
	return &page, nil
}

func (c *HTTPClient) userCall(ctx context.Context, method, path string, body any) (*models.User, error) {
	var d userData
	if err := c.do(ctx, method, path, nil, body, &d); err != nil {
		return nil, err
	}
	if d.User == nil {
		return nil, fmt.Errorf("%w: response has no user", ErrRejected)
	}
	return d.User, nil
}

func (c *HTTPClient) GetUser(ctx context.Context, id int64) (*models.User, error) {
	return c.userCall(ctx, http.MethodGet, userPath(id), nil)
}

func (c *HTTPClient) CreateUser(ctx context.Context, data models.CreateUserData) (*models.User, error) {
	return c.userCall(ctx, http.MethodPost, "/users", data)
}

func (c *HTTPClient) UpdateUser(ctx context.Context, id int64, data models.UpdateUserData) (*models.User, error) {
	return c.userCall(ctx, http.MethodPut, userPath(id), data)
}

func (c *HTTPClient) DeleteUser(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, userPath(id), nil, nil, nil)
}

// Ping probes GET /health. Anything but a 2xx answer is ErrUnavailable.
func (c *HTTPClient) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.newRequest(ctx, http.MethodGet, "/health", nil, nil)
	if err != nil {
		return unavailable(err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return unavailable(err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: health status %d", ErrUnavailable, resp.StatusCode)
	}
	return nil
}
