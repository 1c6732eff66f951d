package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
)

const (
	ActionLicenseDetails = "API_REPORT_LICENSE_DETAILS"
	ActionClientList     = "API_GET_CLIENT_LIST"

	formContentType = "application/x-www-form-urlencoded; charset=UTF-8"
)

// DateRange is an inclusive report window (YYYY-MM-DD). Empty bounds are not sent.
type DateRange struct {
	From string `json:"date_from,omitempty"`
	To   string `json:"date_to,omitempty"`
}

// Client talks to the remote reporting API.
type Client struct {
	baseURL  string
	token    string
	password string
	id       string
	timeout  time.Duration
}

// NewClient creates a client from the configuration.
func NewClient(cfg Config) *Client {
	timeout := cfg.TimeoutSeconds
	if timeout <= 0 {
		timeout = 30
	}
	return &Client{
		baseURL:  cfg.BaseURL,
		token:    cfg.Token,
		password: cfg.Password,
		id:       cfg.ID,
		timeout:  time.Duration(timeout) * time.Second,
	}
}

// FetchLicensePage fetches one page of the license details report.
// A missing or malformed record container yields an empty page, not an error.
func (c *Client) FetchLicensePage(ctx context.Context, page int, window DateRange) ([]json.RawMessage, error) {
	form := map[string]string{
		"action":   ActionLicenseDetails,
		"output":   "JSON",
		"token":    c.token,
		"password": c.password,
		"id":       c.id,
		"page":     strconv.Itoa(page),
	}
	if window.From != "" {
		form["date_from"] = window.From
	}
	if window.To != "" {
		form["date_to"] = window.To
	}

	body, err := c.post(ctx, ActionLicenseDetails, form, nil)
	if err != nil {
		return nil, err
	}
	return extractRecords(body, "message", "licenses", "license"), nil
}

// FetchClientList fetches the client directory. The endpoint is not paged and
// expects the token as a header.
func (c *Client) FetchClientList(ctx context.Context) ([]json.RawMessage, error) {
	form := map[string]string{
		"action":   ActionClientList,
		"output":   "JSON",
		"password": c.password,
	}
	headers := map[string]string{"token": c.token}

	body, err := c.post(ctx, ActionClientList, form, headers)
	if err != nil {
		return nil, err
	}
	return extractRecords(body, "message", "clients", "client"), nil
}

// post sends a form-encoded request with fiber's HTTP client.
// The client has no context support, so ctx is only checked before sending.
func (c *Client) post(ctx context.Context, op string, form, headers map[string]string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}

	args := fiber.AcquireArgs()
	defer fiber.ReleaseArgs(args)
	for k, v := range form {
		args.Set(k, v)
	}

	agent := fiber.Post(c.baseURL)
	agent.Form(args)
	agent.ContentType(formContentType)
	for k, v := range headers {
		agent.Set(k, v)
	}
	agent.Timeout(c.timeout)

	if err := agent.Parse(); err != nil {
		return nil, &TransportError{Op: op, Err: fmt.Errorf("invalid request: %w", err)}
	}

	code, body, errs := agent.Bytes()
	if len(errs) > 0 {
		return nil, &TransportError{Op: op, Err: errors.Join(errs...)}
	}
	if code < 200 || code > 299 {
		return nil, &TransportError{Op: op, StatusCode: code, Err: errors.New(truncate(body, 200))}
	}
	return body, nil
}

// extractRecords walks path through nested objects and returns the array found there.
// Anything unexpected along the way (not JSON, missing key, not an array) is nil.
func extractRecords(body []byte, path ...string) []json.RawMessage {
	current := json.RawMessage(body)
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil {
			return nil
		}
		next, ok := obj[key]
		if !ok {
			return nil
		}
		current = next
	}

	var records []json.RawMessage
	if err := json.Unmarshal(current, &records); err != nil {
		return nil
	}
	return records
}

func truncate(body []byte, n int) string {
	if len(body) <= n {
		return string(body)
	}
	return string(body[:n]) + "..."
}
