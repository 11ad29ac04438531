package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	defaultTimeout    = 15 * time.Second
	defaultRetryCount = 2
	retryBackoff      = 250 * time.Millisecond
)

var ErrEmptyBaseURL = errors.New("api base url is required")

// TokenSource supplies the bearer token attached to authenticated requests.
// An empty token means the request goes out unauthenticated.
type TokenSource interface {
	Token() string
}

type Config struct {
	BaseURL    string
	Timeout    time.Duration
	RetryCount int
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
	retryCount int
	log        *slog.Logger
}

func NewClient(cfg Config, tokens TokenSource, log *slog.Logger) (*Client, error) {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		return nil, ErrEmptyBaseURL
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	retryCount := cfg.RetryCount
	if retryCount < 0 {
		retryCount = defaultRetryCount
	}
	if log == nil {
		log = slog.Default()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		tokens:     tokens,
		retryCount: retryCount,
		log:        log,
	}, nil
}

func (client *Client) BaseURL() string {
	return client.baseURL
}

func (client *Client) newRequest(ctx context.Context, method string, path string, query url.Values, body any) (*http.Request, error) {
	endpoint := client.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, &buf)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())
	if client.tokens != nil {
		if token := client.tokens.Token(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}
	return req, nil
}

// doJSON performs the request with bounded retries. Only transport
// failures and 5xx responses are retried; 4xx responses are final.
func (client *Client) doJSON(ctx context.Context, method string, path string, query url.Values, body any, out any) error {
	var lastErr error
	for attempt := 0; attempt <= client.retryCount; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(retryBackoff * time.Duration(attempt)):
			}
		}

		req, err := client.newRequest(ctx, method, path, query, body)
		if err != nil {
			return err
		}

		lastErr = client.doOnce(req, out)
		if lastErr == nil {
			return nil
		}
		if !isRetryable(lastErr) {
			return lastErr
		}
		client.log.Warn("api request retrying",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("attempt", attempt+1),
			slog.String("error", lastErr.Error()))
	}
	return lastErr
}

func (client *Client) doOnce(req *http.Request, out any) error {
	resp, err := client.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("perform request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return responseError(resp, req.Header.Get("X-Request-ID"))
	}
	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response body: %w", err)
	}
	return nil
}

func responseError(resp *http.Response, requestID string) *APIError {
	message := readErrorMessage(resp.Body)
	if message == "" {
		message = resp.Status
	}
	return &APIError{
		Kind:      ClassifyStatus(resp.StatusCode),
		Status:    resp.StatusCode,
		Message:   message,
		RequestID: requestID,
	}
}

func readErrorMessage(body io.Reader) string {
	payload := struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}{}
	if err := json.NewDecoder(io.LimitReader(body, 4096)).Decode(&payload); err != nil {
		return ""
	}
	if strings.TrimSpace(payload.Error) != "" {
		return strings.TrimSpace(payload.Error)
	}
	return strings.TrimSpace(payload.Message)
}

func isRetryable(err error) bool {
	var apiError *APIError
	if errors.As(err, &apiError) {
		return apiError.Kind == ErrorKindServer
	}
	return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}
