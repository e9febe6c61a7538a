package geocode_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"hotel_portal/internal/adapters/geocode"
	"hotel_portal/internal/domain"
)

func TestClient_Geocode_RetriesThenSuccess(t *testing.T) {
	var hits int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search" || r.URL.Query().Get("q") != "Rua Nova 1, Porto" {
			t.Errorf("unexpected request %s", r.URL)
		}
		if r.Header.Get("User-Agent") != "hotel-test" {
			t.Errorf("missing user agent")
		}
		switch atomic.AddInt32(&hits, 1) {
		case 1:
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusTooManyRequests)
		case 2:
			w.WriteHeader(http.StatusBadGateway)
		default:
			_, _ = w.Write([]byte(`[{"lat":"41.1496","lon":"-8.6109","display_name":"Porto"}]`))
		}
	}))
	defer ts.Close()

	cl, err := geocode.New(ts.URL, "", "hotel-test", 100) // high RPS for tests
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	c, err := cl.Geocode(ctx, "Rua Nova 1, Porto")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if c.Lat != 41.1496 || c.Lon != -8.6109 {
		t.Fatalf("unexpected coords: %+v", c)
	}
	if atomic.LoadInt32(&hits) != 3 {
		t.Fatalf("expected 3 calls due to retries, got %d", hits)
	}
}

func TestClient_Geocode_NoMatch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	cl, _ := geocode.New(ts.URL, "", "", 100)
	if _, err := cl.Geocode(context.Background(), "nowhere"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestClient_Geocode_Forbidden(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "key revoked", http.StatusForbidden)
	}))
	defer ts.Close()

	cl, _ := geocode.New(ts.URL, "k", "", 100)
	_, err := cl.Geocode(context.Background(), "x")
	var se *geocode.StatusError
	if !errors.As(err, &se) || se.StatusCode() != http.StatusForbidden || se.Body != "key revoked" {
		t.Fatalf("unexpected error: %v", err)
	}
}
