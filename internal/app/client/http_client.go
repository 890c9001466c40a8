package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/exp/slog"

	"admingrid/internal/app/client/config"
	"admingrid/internal/domain/collection"
	"admingrid/internal/domain/grid"
)

type httpClient struct {
	client    *http.Client
	config    *config.Config
	log       *slog.Logger
	baseURL   string
	userAgent string
}

func NewHTTPClient(cfg *config.Config, log *slog.Logger) (*httpClient, error) {
	client := &http.Client{
		Timeout: 30 * time.Second,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			IdleConnTimeout:     90 * time.Second,
			MaxIdleConnsPerHost: 10,
		},
	}

	scheme := "http://"
	if cfg.EnableTLS {
		scheme = "https://"
	}

	return &httpClient{
		client:    client,
		config:    cfg,
		log:       log.With("component", "http_client"),
		baseURL:   scheme + cfg.ServerAddress,
		userAgent: "admingrid/1.0",
	}, nil
}

// Health checks backend availability.
func (h *httpClient) Health(ctx context.Context) error {
	resp, err := h.doRequest(ctx, http.MethodGet, "/api/health", nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// ListRows fetches the full row collection. Rows are always replaced
// wholesale on reload; there is no incremental fetch.
func (h *httpClient) ListRows(ctx context.Context, col collection.Config) ([]grid.Row, error) {
	resp, err := h.doRequest(ctx, http.MethodGet, col.Path, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &collection.NetworkError{Op: "read response", Err: err}
	}
	if err := h.checkStatus(resp.StatusCode, body); err != nil {
		return nil, err
	}
	return collection.DecodeList(body)
}

// UpdateRow pushes one normalized payload, using the method and body shape
// the collection's backend expects.
func (h *httpClient) UpdateRow(ctx context.Context, col collection.Config, id string, payload map[string]any) error {
	var body any = payload
	if col.WrapData {
		body = map[string]any{"data": payload}
	}
	resp, err := h.doRequest(ctx, col.UpdateMethod, col.Path+"/"+id, body)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// CreateRow posts a new row.
func (h *httpClient) CreateRow(ctx context.Context, col collection.Config, payload map[string]any) error {
	resp, err := h.doRequest(ctx, http.MethodPost, col.Path, payload)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

// DeleteRow removes one row.
func (h *httpClient) DeleteRow(ctx context.Context, col collection.Config, id string) error {
	resp, err := h.doRequest(ctx, http.MethodDelete, col.Path+"/"+id, nil)
	if err != nil {
		return err
	}
	return h.parseResponse(resp, nil)
}

func (h *httpClient) doRequest(ctx context.Context, method, path string, body any) (*http.Response, error) {
	var reqBody io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, h.baseURL+path, reqBody)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", h.userAgent)
	switch h.config.AuthScheme {
	case config.AuthBearer:
		if h.config.Token != "" {
			req.Header.Set("Authorization", "Bearer "+h.config.Token)
		}
	case config.AuthBasic:
		req.SetBasicAuth(h.config.Username, h.config.Password)
	}

	h.log.Debug("sending request",
		"method", method,
		"url", req.URL.String(),
	)

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, &collection.NetworkError{Op: method + " " + path, Err: err}
	}

	return resp, nil
}

func (h *httpClient) parseResponse(resp *http.Response, result any) error {
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return &collection.NetworkError{Op: "read response", Err: err}
	}

	h.log.Debug("received response",
		"status", resp.StatusCode,
		"bytes", len(body),
	)

	if err := h.checkStatus(resp.StatusCode, body); err != nil {
		return err
	}

	if result != nil {
		if err := json.Unmarshal(body, result); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
	}

	return nil
}

func (h *httpClient) checkStatus(status int, body []byte) error {
	switch {
	case status == http.StatusUnauthorized:
		return collection.ErrUnauthorized
	case status >= 400:
		return &collection.APIError{StatusCode: status, Message: collection.ErrorMessage(body)}
	}
	return nil
}
