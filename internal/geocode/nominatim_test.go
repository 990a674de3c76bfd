package geocode

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func TestParseReverseItem(t *testing.T) {
	addr, err := parseReverseItem(nominatimReverseItem{DisplayName: "Abay Ave 12, Astana, Kazakhstan"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if addr != "Abay Ave 12, Astana, Kazakhstan" {
		t.Fatalf("unexpected address: %s", addr)
	}
}

func TestParseReverseItemNotFound(t *testing.T) {
	if _, err := parseReverseItem(nominatimReverseItem{Error: "Unable to geocode"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := parseReverseItem(nominatimReverseItem{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for empty item, got %v", err)
	}
}

func TestReverseUsesCache(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.Write([]byte(`{"display_name":"Main St 1, Astana"}`))
	}))
	defer srv.Close()

	g := &NominatimGeocoder{BaseURL: srv.URL, MinInterval: time.Millisecond}
	for i := 0; i < 3; i++ {
		addr, err := g.Reverse(context.Background(), 51.16050, 71.47040)
		if err != nil {
			t.Fatalf("reverse failed: %v", err)
		}
		if addr != "Main St 1, Astana" {
			t.Fatalf("unexpected address: %s", addr)
		}
	}
	if atomic.LoadInt32(&calls) != 1 {
		t.Fatalf("expected a single upstream call, got %d", calls)
	}
}

func TestReverseHTTPError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	g := &NominatimGeocoder{BaseURL: srv.URL, MinInterval: time.Millisecond}
	if _, err := g.Reverse(context.Background(), 51.1, 71.4); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}
