package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// Config controls how the client reaches the schedule page.
type Config struct {
	HTTPClient *http.Client
	UserAgent  string
	Timeout    time.Duration
	MaxBody    int64
}

// Client performs conditional GETs. It keeps no state between calls.
type Client struct {
	httpClient httpDoer
	userAgent  string
	timeout    time.Duration
	maxBody    int64
}

// NewClient constructs a client with the provided configuration.
func NewClient(cfg Config) *Client {
	return &Client{
		httpClient: resolveHTTPClient(cfg.HTTPClient),
		userAgent:  resolveUserAgent(cfg.UserAgent),
		timeout:    resolveTimeout(cfg.Timeout),
		maxBody:    resolveMaxBody(cfg.MaxBody),
	}
}

// Fetch issues a GET for url, sending the validator as conditional headers.
// A 304 yields an unchanged result; any 2xx yields the body and fresh validators.
func (c *Client) Fetch(ctx context.Context, url string, validator Validator) (Result, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := c.buildRequest(ctx, url, validator)
	if err != nil {
		return Result{}, &FetchError{URL: url, Reason: ReasonRequest, Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, &FetchError{URL: url, Reason: ReasonTransport, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotModified {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, errorBodyPreview))
		return Result{Changed: false, Validator: validator}, nil
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		preview, _ := io.ReadAll(io.LimitReader(resp.Body, errorBodyPreview))
		var detail error
		if text := strings.TrimSpace(string(preview)); text != "" {
			detail = errors.New(text)
		}
		return Result{}, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: ReasonStatus, Err: detail}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBody+1))
	if err != nil {
		return Result{}, &FetchError{URL: url, StatusCode: resp.StatusCode, Reason: ReasonBody, Err: err}
	}
	if int64(len(body)) > c.maxBody {
		return Result{}, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Reason:     ReasonBody,
			Err:        fmt.Errorf("body exceeds %d bytes", c.maxBody),
		}
	}

	return Result{
		Changed: true,
		Body:    body,
		Validator: Validator{
			ETag:         resp.Header.Get(headerETag),
			LastModified: resp.Header.Get(headerLastModified),
		},
	}, nil
}

func (c *Client) buildRequest(ctx context.Context, url string, validator Validator) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set(headerUserAgent, c.userAgent)
	if validator.ETag != "" {
		req.Header.Set(headerIfNoneMatch, validator.ETag)
	}
	if validator.LastModified != "" {
		req.Header.Set(headerIfModifiedSince, validator.LastModified)
	}
	return req, nil
}
