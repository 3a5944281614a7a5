package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"poscore/internal/domain/model"
	"poscore/internal/domain/repository"

	"go.uber.org/zap"
)

// HTTPTransport implements the backend request collaborator over HTTP.
// Payloads pass through opaque; any transport failure surfaces as a network
// failure with the last-good value left to the caller.
type HTTPTransport struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

var _ repository.Transport = (*HTTPTransport)(nil)

func NewHTTPTransport(baseURL string, client *http.Client, logger *zap.Logger) *HTTPTransport {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPTransport{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		logger:  logger,
	}
}

func (t *HTTPTransport) Do(ctx context.Context, req repository.Request) (repository.Response, error) {
	u := t.baseURL + "/" + strings.TrimLeft(req.URL, "/")
	if len(req.Params) > 0 {
		q := url.Values{}
		for k, v := range req.Params {
			q.Set(k, v)
		}
		u += "?" + q.Encode()
	}

	var body io.Reader
	if req.Data != nil {
		data, err := json.Marshal(req.Data)
		if err != nil {
			return repository.Response{}, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(data)
	}

	method := req.Method
	if method == "" {
		method = http.MethodGet
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return repository.Response{}, fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := t.client.Do(httpReq)
	if err != nil {
		t.logger.Warn("Backend request failed", zap.String("url", req.URL), zap.Error(err))
		return repository.Response{}, fmt.Errorf("%w: %v", model.ErrNetworkFailure, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			t.logger.Error("Failed to close response body", zap.Error(err))
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return repository.Response{}, fmt.Errorf("%w: %v", model.ErrNetworkFailure, err)
	}

	return repository.Response{
		Success: resp.StatusCode >= 200 && resp.StatusCode < 300,
		Status:  resp.StatusCode,
		Data:    data,
	}, nil
}
