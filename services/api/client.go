// Package apisvc is the HTTP+JSON client of the tutoring backend.
package apisvc

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/trezcool/mentorhub/core"
	"github.com/trezcool/mentorhub/core/session"
)

const (
	maxErrBodyLen = 200
	maxBodyLen    = 10 << 20
)

// Client issues single-attempt requests; it never retries.
type Client struct {
	baseURL string
	http    *http.Client
	logger  core.Logger

	newRequestID func() string // mockable
}

func NewClient(conf *core.Config, logger core.Logger) *Client {
	return New(conf.API.BaseURL, &http.Client{Timeout: conf.API.Timeout}, logger)
}

func New(baseURL string, httpClient *http.Client, logger core.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = core.NopLogger
	}
	return &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		http:         httpClient,
		logger:       logger,
		newRequestID: uuid.NewString,
	}
}

func (c *Client) BaseURL() string { return c.baseURL }

// Do sends one request for sess (which may be empty for anonymous endpoints).
//   - body, when non-nil, is sent as JSON.
//   - a 2xx response is decoded into out: JSON by default, raw text when out is a *string.
//     An empty body succeeds and leaves out untouched.
//   - a non-2xx response returns a *core.APIError.
//   - a request that got no response returns a *core.NetworkError, or the context's error when cancelled.
func (c *Client) Do(ctx context.Context, sess session.Session, method, path string, body, out interface{}) error {
	op := method + " " + path

	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return errors.Wrapf(err, "encoding %s body", op)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return errors.Wrapf(err, "building %s", op)
	}
	reqID := c.newRequestID()
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", reqID)
	if sess.Token != "" {
		req.Header.Set("Authorization", "Bearer "+sess.Token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return core.NewNetworkError(op, err)
	}
	//goland:noinspection GoUnhandledErrorResult
	defer resp.Body.Close()

	data, err := ioutil.ReadAll(io.LimitReader(resp.Body, maxBodyLen))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		return core.NewNetworkError(op, errors.Wrap(err, "reading response"))
	}
	c.logger.Debug("api call", map[string]interface{}{
		"op":        op,
		"status":    resp.StatusCode,
		"requestId": reqID,
		"took":      time.Since(start).String(),
	})

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return core.NewAPIError(resp.StatusCode, errorMessage(data))
	}
	return decode(data, out, op)
}

func decode(data []byte, out interface{}, op string) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if s, ok := out.(*string); ok {
		*s = string(data)
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return errors.Wrapf(err, "decoding %s response", op)
	}
	return nil
}

// errorMessage digs the server-supplied message out of an error body.
func errorMessage(data []byte) string {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(data, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
		return ""
	}
	msg := string(data)
	if len(msg) > maxErrBodyLen {
		msg = msg[:maxErrBodyLen] + "…"
	}
	return msg
}
