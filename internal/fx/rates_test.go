package fx

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/PLN" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"result":"success","rates":{"PLN":1,"USD":4.0,"EUR":4.35}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	table, err := client.Fetch(context.Background(), "PLN")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if table.Base() != "PLN" {
		t.Errorf("Base() = %q, want PLN", table.Base())
	}
	if table.Len() != 3 {
		t.Errorf("Len() = %d, want 3", table.Len())
	}

	rate, ok := table.Lookup("USD")
	if !ok {
		t.Fatal("expected USD in table")
	}
	if !rate.Equal(decimal.NewFromInt(4)) {
		t.Errorf("USD rate = %s, want 4", rate)
	}

	if _, ok := table.Lookup("GBP"); ok {
		t.Error("expected GBP lookup to miss")
	}
}

func TestFetchServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down for maintenance", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	if _, err := client.Fetch(context.Background(), "PLN"); err == nil {
		t.Fatal("expected error on 500 response")
	}
}

func TestFetchMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`not json at all`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	if _, err := client.Fetch(context.Background(), "PLN"); err == nil {
		t.Fatal("expected error on malformed body")
	}
}

func TestFetchEmptyRates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":"success","rates":{}}`))
	}))
	defer srv.Close()

	client := NewClientWithBaseURL(srv.URL, srv.Client())
	if _, err := client.Fetch(context.Background(), "PLN"); err == nil {
		t.Fatal("expected error when response has no rates")
	}
}

func TestNilTableLookup(t *testing.T) {
	var table *Table

	if _, ok := table.Lookup("USD"); ok {
		t.Error("nil table lookup should miss")
	}
	if table.Len() != 0 {
		t.Errorf("nil table Len() = %d, want 0", table.Len())
	}
	if table.Base() != "" {
		t.Errorf("nil table Base() = %q, want empty", table.Base())
	}
}
