package restapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"go.uber.org/zap"
)

func newTestClient(url string) *Client {
	return NewClient(url, 2*time.Second, zap.NewNop())
}

func TestGetDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/ping" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "x" {
			t.Errorf("query q = %q, want x", got)
		}
		w.Write([]byte(`{"success":true,"message":"pong"}`))
	}))
	defer srv.Close()

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	err := newTestClient(srv.URL).Get(context.Background(), "/api/ping", url.Values{"q": []string{"x"}}, &out)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !out.Success || out.Message != "pong" {
		t.Fatalf("decoded %+v", out)
	}
}

func TestNon2xxBecomesAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"success":false,"message":"Product not found"}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Get(context.Background(), "/api/products/nope", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T (%v)", err, err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "Product not found" {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestNonJSONErrorBodyFallsBackToStatusText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Post(context.Background(), "/api/orders/create", map[string]string{}, nil)

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != http.StatusText(http.StatusInternalServerError) {
		t.Errorf("message = %q", apiErr.Message)
	}
}

func TestTransportFailureIsNotAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // nothing listening anymore

	err := newTestClient(srv.URL).Get(context.Background(), "/api/products", nil, nil)
	if err == nil {
		t.Fatal("expected error")
	}

	var apiErr *APIError
	if errors.As(err, &apiErr) {
		t.Fatalf("transport failure should not be an APIError: %v", err)
	}
}
