package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/nordvik/glance/internal/recall"
)

func TestEntriesQueryParams(t *testing.T) {
	var gotQuery map[string][]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"entries":[],"total":0,"page":2,"limit":20,"has_more":false}`))
	}))
	defer srv.Close()

	c := New(srv.URL)
	start := int64(100)
	resp, err := c.Entries(context.Background(), EntriesQuery{Page: 2, Limit: 20, StartDate: &start, App: "Code"})
	if err != nil {
		t.Fatalf("Entries: %v", err)
	}
	if resp.Page != 2 || resp.HasMore {
		t.Errorf("resp = %+v", resp)
	}

	if got := gotQuery["page"]; len(got) != 1 || got[0] != "2" {
		t.Errorf("page param = %v", got)
	}
	if got := gotQuery["start_date"]; len(got) != 1 || got[0] != "100" {
		t.Errorf("start_date param = %v", got)
	}
	// Absent optional params must be omitted entirely.
	if _, present := gotQuery["end_date"]; present {
		t.Error("end_date should be omitted when unset")
	}
}

func TestEntriesOmitsAllOptionalParams(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "" {
			t.Errorf("query = %q, want empty", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"entries":[],"total":0,"page":1,"limit":50,"has_more":false}`))
	}))
	defer srv.Close()

	if _, err := New(srv.URL).Entries(context.Background(), EntriesQuery{}); err != nil {
		t.Fatalf("Entries: %v", err)
	}
}

func TestHTTPErrorCarriesStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Entry not found"}`, http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := New(srv.URL).Entry(context.Background(), 42)
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("err = %v, want *HTTPError", err)
	}
	if httpErr.Status != http.StatusNotFound {
		t.Errorf("status = %d, want 404", httpErr.Status)
	}
}

func TestParseErrorOnMalformedBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	}))
	defer srv.Close()

	_, err := New(srv.URL).Status(context.Background())
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err = %v, want *ParseError", err)
	}
}

func TestNetworkErrorIsNotTyped(t *testing.T) {
	// Point at a closed server.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := New(srv.URL).Stats(context.Background())
	if err == nil {
		t.Fatal("expected error from closed server")
	}
	var httpErr *HTTPError
	var parseErr *ParseError
	if errors.As(err, &httpErr) || errors.As(err, &parseErr) {
		t.Errorf("network failure misclassified: %v", err)
	}
}

func TestSearchDefaultsLimit(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("limit"); got != "20" {
			t.Errorf("limit = %q, want 20", got)
		}
		if got := r.URL.Query().Get("q"); got != "meeting notes" {
			t.Errorf("q = %q", got)
		}
		_, _ = w.Write([]byte(`{"query":"meeting notes","results":[{"id":1,"app":"Slack","similarity_score":0.91}],"total":1}`))
	}))
	defer srv.Close()

	resp, err := New(srv.URL).Search(context.Background(), "meeting notes", 0)
	if err != nil {
		t.Fatalf("Search: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].SimilarityScore != 0.91 {
		t.Errorf("results = %+v", resp.Results)
	}
}

func TestBearerTokenSent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sesame" {
			t.Errorf("Authorization = %q", got)
		}
		_, _ = w.Write([]byte(`{"status":"active","recording":true,"paused":false,"last_capture":null,"version":"dev"}`))
	}))
	defer srv.Close()

	st, err := New(srv.URL, WithToken("sesame")).Status(context.Background())
	if err != nil {
		t.Fatalf("Status: %v", err)
	}
	if st.Bucket() != recall.BucketActive {
		t.Errorf("bucket = %q, want active", st.Bucket())
	}
}

func TestAppsUnwrapsEnvelope(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"apps":[{"name":"Code","count":5,"category":"Development"},{"name":"Mystery","count":1,"category":null}]}`))
	}))
	defer srv.Close()

	apps, err := New(srv.URL).Apps(context.Background())
	if err != nil {
		t.Fatalf("Apps: %v", err)
	}
	if len(apps) != 2 {
		t.Fatalf("len(apps) = %d, want 2", len(apps))
	}
	if apps[0].Category == nil || *apps[0].Category != "Development" {
		t.Errorf("apps[0].Category = %v", apps[0].Category)
	}
	if apps[1].Category != nil {
		t.Errorf("apps[1].Category = %v, want nil", apps[1].Category)
	}
}
