// Package client talks to the registry API and turns every failure into an
// *Error carrying a message that can be shown to the user as is.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"asset-registry-api/internal/model"
	"asset-registry-api/pkg/upload"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Op names a client operation.
type Op string

const (
	OpListEmployees  Op = "list employees"
	OpGetEmployee    Op = "get employee"
	OpCreateEmployee Op = "create employee"
	OpUpdateEmployee Op = "update employee"
	OpDeleteEmployee Op = "delete employee"
	OpListSystems    Op = "list systems"
	OpGetSystem      Op = "get system"
	OpCreateSystem   Op = "create system"
	OpUpdateSystem   Op = "update system"
	OpDeleteSystem   Op = "delete system"
)

var fallbackMessages = map[Op]string{
	OpListEmployees:  "Error fetching employee data. Please try again.",
	OpGetEmployee:    "Something went wrong while fetching employee data.",
	OpCreateEmployee: "Failed to create employee. Please try again.",
	OpUpdateEmployee: "Failed to update employee. Please try again.",
	OpDeleteEmployee: "Something went wrong while deleting the employee.",
	OpListSystems:    "Failed to fetch systems",
	OpGetSystem:      "Failed to fetch system",
	OpCreateSystem:   "Failed to save system",
	OpUpdateSystem:   "Failed to save system",
	OpDeleteSystem:   "Failed to delete system",
}

// FallbackMessage returns the message shown when the server gives none.
func FallbackMessage(op Op) string {
	return fallbackMessages[op]
}

// Error is returned by every Client method.
type Error struct {
	Op      Op
	Message string
	// StatusCode is zero when no response was received.
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a 404 answer from the server.
func IsNotFound(err error) bool {
	var cerr *Error
	return errors.As(err, &cerr) && cerr.StatusCode == http.StatusNotFound
}

const (
	employeePath = "/api/employee"
	systemPath   = "/api/systems"
)

// Client is a registry API client.
type Client struct {
	BaseURL  string
	HTTP     *http.Client
	Uploader upload.Uploader
	logger   *zap.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets the HTTP client used for API calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTP = hc }
}

// WithUploader sets the image uploader used by the Submit methods.
func WithUploader(u upload.Uploader) Option {
	return func(c *Client) { c.Uploader = u }
}

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(c *Client) { c.logger = l }
}

// New creates a Client for the API served at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		HTTP:    &http.Client{Timeout: 30 * time.Second},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListEmployees returns every employee.
func (c *Client) ListEmployees(ctx context.Context) ([]model.Employee, error) {
	return call[[]model.Employee](ctx, c, OpListEmployees, http.MethodGet, employeePath, nil)
}

// GetEmployee returns the employee with the given id.
func (c *Client) GetEmployee(ctx context.Context, id uuid.UUID) (model.Employee, error) {
	return call[model.Employee](ctx, c, OpGetEmployee, http.MethodGet, employeePath+"/"+id.String(), nil)
}

// CreateEmployee stores a new employee and returns it as stored.
func (c *Client) CreateEmployee(ctx context.Context, e model.Employee) (model.Employee, error) {
	return call[model.Employee](ctx, c, OpCreateEmployee, http.MethodPost, employeePath, e)
}

// UpdateEmployee replaces the employee with the given id.
func (c *Client) UpdateEmployee(ctx context.Context, id uuid.UUID, e model.Employee) (model.Employee, error) {
	return call[model.Employee](ctx, c, OpUpdateEmployee, http.MethodPut, employeePath+"/"+id.String(), e)
}

// DeleteEmployee removes the employee with the given id.
func (c *Client) DeleteEmployee(ctx context.Context, id uuid.UUID) error {
	_, err := call[json.RawMessage](ctx, c, OpDeleteEmployee, http.MethodDelete, employeePath+"/"+id.String(), nil)
	return err
}

// ListSystems returns every system.
func (c *Client) ListSystems(ctx context.Context) ([]model.System, error) {
	return call[[]model.System](ctx, c, OpListSystems, http.MethodGet, systemPath, nil)
}

// GetSystem returns the system with the given id.
func (c *Client) GetSystem(ctx context.Context, id uuid.UUID) (model.System, error) {
	return call[model.System](ctx, c, OpGetSystem, http.MethodGet, systemPath+"/"+id.String(), nil)
}

// CreateSystem stores a new system and returns it as stored.
func (c *Client) CreateSystem(ctx context.Context, s model.System) (model.System, error) {
	return call[model.System](ctx, c, OpCreateSystem, http.MethodPost, systemPath, s)
}

// UpdateSystem replaces the system with the given id.
func (c *Client) UpdateSystem(ctx context.Context, id uuid.UUID, s model.System) (model.System, error) {
	return call[model.System](ctx, c, OpUpdateSystem, http.MethodPut, systemPath+"/"+id.String(), s)
}

// DeleteSystem removes the system with the given id.
func (c *Client) DeleteSystem(ctx context.Context, id uuid.UUID) error {
	_, err := call[json.RawMessage](ctx, c, OpDeleteSystem, http.MethodDelete, systemPath+"/"+id.String(), nil)
	return err
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
}

func call[T any](ctx context.Context, c *Client, op Op, method, path string, body interface{}) (T, error) {
	var zero T

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, c.fail(op, 0, "", fmt.Errorf("failed to encode request: %w", err))
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, reader)
	if err != nil {
		return zero, c.fail(op, 0, "", fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return zero, c.fail(op, 0, "", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return zero, c.fail(op, resp.StatusCode, "", fmt.Errorf("failed to read response: %w", err))
	}

	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return zero, c.fail(op, resp.StatusCode, "", fmt.Errorf("unexpected response (status %d): %w", resp.StatusCode, err))
	}

	if resp.StatusCode >= 400 || !env.Success {
		detail := env.Error
		if detail == "" {
			detail = fmt.Sprintf("request failed with status %d", resp.StatusCode)
		}
		return zero, c.fail(op, resp.StatusCode, env.Message, errors.New(detail))
	}

	if len(env.Data) == 0 || string(env.Data) == "null" {
		return zero, nil
	}
	var out T
	if err := json.Unmarshal(env.Data, &out); err != nil {
		return zero, c.fail(op, resp.StatusCode, "", fmt.Errorf("failed to decode data: %w", err))
	}
	return out, nil
}

// fail builds the *Error for op, preferring the server's message.
func (c *Client) fail(op Op, status int, message string, err error) *Error {
	if message == "" {
		message = FallbackMessage(op)
	}
	c.logger.Warn("API request failed",
		zap.String("op", string(op)),
		zap.Int("status", status),
		zap.Error(err),
	)
	return &Error{Op: op, Message: message, StatusCode: status, Err: err}
}
