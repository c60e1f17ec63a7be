package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/blog3d/techblog-client/internal/dto"
	"github.com/blog3d/techblog-client/internal/transport"
	"go.uber.org/zap"
)

var ErrRequestFailed = errors.New("request to backend failed")

// APIError is a non-2xx (or success=false) answer from the backend; the
// message is the backend's, verbatim, so callers can surface it to the
// user untouched.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client is a typed client over the backend REST surface. The injected
// http.Client is expected to carry the request decoration layer.
type Client struct {
	origin     string
	httpClient *http.Client
	logger     *zap.Logger
}

func New(origin string, httpClient *http.Client, logger *zap.Logger) *Client {
	return &Client{
		origin:     strings.TrimRight(origin, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// doEnveloped performs a call against an endpoint answering with the
// standard `{success, data, message}` envelope and decodes data into out.
func (c *Client) doEnveloped(ctx context.Context, method string, path string, body interface{}, creds *transport.Credentials, out interface{}) error {
	respBody, status, err := c.do(ctx, method, path, body, creds)
	if err != nil {
		return err
	}

	var envelope dto.APIResponse
	if err := json.Unmarshal(respBody, &envelope); err != nil {
		if status < 200 || status >= 300 {
			return &APIError{Status: status}
		}
		c.logger.Sugar().Errorf("failed to decode response from %s: %s", path, err.Error())
		return ErrRequestFailed
	}

	if status < 200 || status >= 300 || !envelope.Success {
		return &APIError{Status: status, Message: envelope.Message}
	}

	if out != nil && len(envelope.Data) > 0 {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			c.logger.Sugar().Errorf("failed to decode data from %s: %s", path, err.Error())
			return ErrRequestFailed
		}
	}

	return nil
}

// doJSON performs a call against an endpoint answering with a bare JSON
// object (the auth endpoints predate the envelope).
func (c *Client) doJSON(ctx context.Context, method string, path string, body interface{}, creds *transport.Credentials, out interface{}) error {
	respBody, status, err := c.do(ctx, method, path, body, creds)
	if err != nil {
		return err
	}

	if status < 200 || status >= 300 {
		var envelope dto.APIResponse
		_ = json.Unmarshal(respBody, &envelope)
		return &APIError{Status: status, Message: envelope.Message}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.logger.Sugar().Errorf("failed to decode response from %s: %s", path, err.Error())
			return ErrRequestFailed
		}
	}

	return nil
}

func (c *Client) do(ctx context.Context, method string, path string, body interface{}, creds *transport.Credentials) ([]byte, int, error) {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			c.logger.Sugar().Errorf("failed to encode request body for %s: %s", path, err.Error())
			return nil, 0, ErrRequestFailed
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.origin+path, reqBody)
	if err != nil {
		c.logger.Sugar().Errorf("failed to create request for %s: %s", path, err.Error())
		return nil, 0, ErrRequestFailed
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if creds != nil {
		creds.Apply(req.Header)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Sugar().Errorf("request to %s failed: %s", path, err.Error())
		return nil, 0, ErrRequestFailed
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Sugar().Errorf("failed to read response body from %s: %s", path, err.Error())
		return nil, 0, ErrRequestFailed
	}

	return respBody, resp.StatusCode, nil
}
