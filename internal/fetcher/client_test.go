package fetcher

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"
)

func TestFetchSendsValidatorsAndUserAgent(t *testing.T) {
	var captured http.Header
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		captured = req.Header.Clone()
		return &http.Response{
			StatusCode: http.StatusNotModified,
			Body:       io.NopCloser(strings.NewReader("")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}, UserAgent: "matches-test/1"})
	prev := Validator{ETag: `"abc"`, LastModified: "Mon, 02 Feb 2026 10:00:00 GMT"}

	res, err := client.Fetch(context.Background(), "http://example.com/rungtynes", prev)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if res.Changed || res.Body != nil {
		t.Fatalf("expected unchanged result, got %+v", res)
	}
	if res.Validator != prev {
		t.Fatalf("expected validator echoed, got %+v", res.Validator)
	}
	if captured.Get("If-None-Match") != `"abc"` {
		t.Fatalf("expected If-None-Match header, got %q", captured.Get("If-None-Match"))
	}
	if captured.Get("If-Modified-Since") != prev.LastModified {
		t.Fatalf("expected If-Modified-Since header, got %q", captured.Get("If-Modified-Since"))
	}
	if captured.Get("User-Agent") != "matches-test/1" {
		t.Fatalf("expected user agent, got %q", captured.Get("User-Agent"))
	}
}

func TestFetchFirstCallOmitsConditionalHeaders(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		if req.Header.Get("If-None-Match") != "" || req.Header.Get("If-Modified-Since") != "" {
			t.Fatalf("expected no conditional headers on first fetch")
		}
		h := make(http.Header)
		h.Set("ETag", `"v1"`)
		h.Set("Last-Modified", "Tue, 03 Feb 2026 10:00:00 GMT")
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader("<html></html>")),
			Header:     h,
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	res, err := client.Fetch(context.Background(), "http://example.com", Validator{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !res.Changed || string(res.Body) != "<html></html>" {
		t.Fatalf("unexpected result %+v", res)
	}
	if res.Validator.ETag != `"v1"` || res.Validator.LastModified == "" {
		t.Fatalf("expected new validator, got %+v", res.Validator)
	}
}

func TestFetchHandlesNon2xx(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusBadGateway,
			Body:       io.NopCloser(strings.NewReader("boom")),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	_, err := client.Fetch(context.Background(), "http://example.com", Validator{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusBadGateway || fetchErr.Reason != ReasonStatus {
		t.Fatalf("unexpected fetch error %+v", fetchErr)
	}
	if !strings.Contains(err.Error(), "boom") {
		t.Fatalf("expected body preview in error, got %v", err)
	}
}

func TestFetchWrapsTransportErrors(t *testing.T) {
	sentinel := errors.New("dial failed")
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return nil, sentinel
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}})
	_, err := client.Fetch(context.Background(), "http://example.com", Validator{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Reason != ReasonTransport {
		t.Fatalf("expected transport FetchError, got %v", err)
	}
	if !errors.Is(err, sentinel) {
		t.Fatalf("expected wrapped sentinel error")
	}
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusOK,
			Body:       io.NopCloser(strings.NewReader(strings.Repeat("x", 32))),
			Header:     make(http.Header),
		}, nil
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}, MaxBody: 16})
	_, err := client.Fetch(context.Background(), "http://example.com", Validator{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Reason != ReasonBody {
		t.Fatalf("expected body FetchError, got %v", err)
	}
}

func TestFetchAppliesTimeout(t *testing.T) {
	rt := roundTripperFunc(func(req *http.Request) (*http.Response, error) {
		<-req.Context().Done()
		return nil, req.Context().Err()
	})

	client := NewClient(Config{HTTPClient: &http.Client{Transport: rt}, Timeout: 10 * time.Millisecond})
	_, err := client.Fetch(context.Background(), "http://example.com", Validator{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestFetchRejectsInvalidURL(t *testing.T) {
	client := NewClient(Config{})
	_, err := client.Fetch(context.Background(), "://bad", Validator{})

	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) || fetchErr.Reason != ReasonRequest {
		t.Fatalf("expected request FetchError, got %v", err)
	}
}

func TestFetchErrorFormatting(t *testing.T) {
	err := &FetchError{URL: "http://x", StatusCode: 500, Reason: ReasonStatus}
	if err.Error() != "fetch http://x: status (status=500)" {
		t.Fatalf("unexpected error string %q", err.Error())
	}
	if err.Unwrap() != nil {
		t.Fatalf("expected nil unwrap")
	}
}

func TestValidatorIsZero(t *testing.T) {
	if !(Validator{}).IsZero() {
		t.Fatalf("expected zero validator")
	}
	if (Validator{LastModified: "x"}).IsZero() {
		t.Fatalf("expected non-zero validator")
	}
}

type roundTripperFunc func(req *http.Request) (*http.Response, error)

func (f roundTripperFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}
