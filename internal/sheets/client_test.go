package sheets

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func TestBustCache(t *testing.T) {
	now := time.UnixMilli(1781548200000)
	raw := "https://docs.google.com/spreadsheets/d/e/abc/pub?gid=1&single=true&output=csv"

	got, err := BustCache(raw, now)
	if err != nil {
		t.Fatalf("BustCache returned unexpected error: %v", err)
	}
	u, err := url.Parse(got)
	if err != nil {
		t.Fatalf("result is not a URL: %v", err)
	}
	q := u.Query()
	for _, kept := range []string{"gid", "single", "output"} {
		if q.Get(kept) == "" {
			t.Errorf("original parameter %q was dropped", kept)
		}
	}
	if q.Get("_t") != "1781548200000" || q.Get("cachebust") != "1781548200000" {
		t.Errorf("_t = %q, cachebust = %q; want 1781548200000", q.Get("_t"), q.Get("cachebust"))
	}
	if q.Get("_r") == "" || q.Get("_uuid") == "" {
		t.Error("random and uuid parameters missing")
	}

	again, _ := BustCache(raw, now)
	if again == got {
		t.Error("two requests at the same instant produced identical URLs")
	}
}

func TestClient_Fetch(t *testing.T) {
	var gotQuery url.Values
	var gotCookie string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		gotCookie = r.Header.Get("Cookie")
		w.Header().Set("Content-Type", "text/csv")
		w.Write([]byte("siglas,porcentaje\nPP,\"35,2\"\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), nil, nil)
	body, err := c.Fetch(context.Background(), Source{Name: SourceVotes, URL: srv.URL + "/pub?output=csv"})
	if err != nil {
		t.Fatalf("Fetch returned unexpected error: %v", err)
	}
	if body != "siglas,porcentaje\nPP,\"35,2\"\n" {
		t.Errorf("body = %q", body)
	}
	if gotQuery.Get("output") != "csv" || gotQuery.Get("_uuid") == "" {
		t.Errorf("query = %v, want original + cache-busting parameters", gotQuery)
	}
	if gotCookie != "" {
		t.Errorf("Cookie header = %q, want none", gotCookie)
	}
}

func TestClient_FetchNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), nil, nil)
	_, err := c.Fetch(context.Background(), Source{Name: SourceSeats, URL: srv.URL})

	var he *HTTPError
	if !errors.As(err, &he) {
		t.Fatalf("error = %v, want *HTTPError", err)
	}
	if he.StatusCode != http.StatusNotFound || he.Source != SourceSeats {
		t.Errorf("HTTPError = %+v, want 404 for %s", he, SourceSeats)
	}
}

func TestClient_FetchCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("a\n1\n"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(srv.Client(), NewLimiter(60, 1), nil)
	if _, err := c.Fetch(ctx, Source{Name: SourceStatus, URL: srv.URL}); err == nil {
		t.Fatal("Fetch with cancelled context succeeded, want error")
	}
}

func TestClient_FetchOversizedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("siglas,porcentaje\nPP,\"35,2\"\n"))
	}))
	defer srv.Close()

	c := NewClient(srv.Client(), nil, nil)
	c.maxBody = 8
	body, err := c.Fetch(context.Background(), Source{Name: SourceVotes, URL: srv.URL})
	if body != "" {
		t.Errorf("body = %q, want nothing from a truncated export", body)
	}
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("error = %v, want ErrTooLarge", err)
	}
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Source != SourceVotes {
		t.Errorf("error = %#v, want *ParseError for %s", err, SourceVotes)
	}

	c.maxBody = int64(len("siglas,porcentaje\nPP,\"35,2\"\n"))
	if _, err := c.Fetch(context.Background(), Source{Name: SourceVotes, URL: srv.URL}); err != nil {
		t.Errorf("body exactly at the limit: unexpected error %v", err)
	}
}
