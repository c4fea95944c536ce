package fetcher

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestIsValidProxyAddress(t *testing.T) {
	t.Parallel()

	tests := []struct {
		address string
		valid   bool
	}{
		{"127.0.0.1:9050", true},
		{"proxy.internal:1080", true},
		{"[::1]:1080", true},
		{"127.0.0.1", false},
		{":9050", false},
		{"127.0.0.1:0", false},
		{"127.0.0.1:70000", false},
		{"127.0.0.1:abc", false},
	}

	for _, tt := range tests {
		t.Run(tt.address, func(t *testing.T) {
			t.Parallel()

			if got := isValidProxyAddress(tt.address); got != tt.valid {
				t.Errorf("expected %v, got %v", tt.valid, got)
			}
		})
	}
}

func TestNewWithProxy(t *testing.T) {
	t.Parallel()

	if _, err := New(WithProxy("not-an-address")); !errors.Is(err, ErrInvalidProxyAddress) {
		t.Errorf("expected ErrInvalidProxyAddress, got %v", err)
	}
	if _, err := New(WithProxy("127.0.0.1:1080")); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestHeaderInjectingTransport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Echo-Cookie", r.Header.Get("Cookie"))
		w.Header().Set("X-Echo-Token", r.Header.Get("X-Site-Token"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := &http.Client{Transport: &headerInjectingTransport{
		base:    http.DefaultTransport,
		cookie:  "session=abc",
		headers: map[string]string{"X-Site-Token": "42"},
	}}

	req, err := http.NewRequest(http.MethodGet, server.URL, nil)
	if err != nil {
		t.Fatalf("failed to create request: %v", err)
	}
	req.Header.Set("Cookie", "lang=en")

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	_ = resp.Body.Close()

	gotCookie := resp.Header.Get("X-Echo-Cookie")
	gotHeader := resp.Header.Get("X-Echo-Token")
	if gotCookie != "lang=en; session=abc" {
		t.Errorf("expected merged cookie, got %q", gotCookie)
	}
	if gotHeader != "42" {
		t.Errorf("expected injected header, got %q", gotHeader)
	}
	if req.Header.Get("Cookie") != "lang=en" {
		t.Errorf("expected original request to be untouched, got %q", req.Header.Get("Cookie"))
	}
}
