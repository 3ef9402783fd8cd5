package jobsource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

const listingBody = `{
	"job-count": 2,
	"jobs": [
		{
			"id": 1001,
			"url": "https://jobs.example/1001",
			"title": "Backend Engineer",
			"company_name": "Acme",
			"company_logo": "https://jobs.example/logo.png",
			"category": "Software Development",
			"job_type": "full_time",
			"publication_date": "2024-03-01T09:30:00",
			"candidate_required_location": "Worldwide",
			"salary": "$90k",
			"description": "<p>Go and Postgres</p>"
		},
		{
			"id": 1002,
			"url": "https://jobs.example/1002",
			"title": "Data Engineer",
			"company_name": "Globex",
			"company_logo": "",
			"category": "Data",
			"job_type": "contract",
			"publication_date": "not-a-date",
			"candidate_required_location": "",
			"salary": "",
			"description": "Python pipelines"
		}
	]
}`

func TestFetchCandidates(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/remote-jobs" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, nil)
	docs, err := src.FetchCandidates(context.Background(), Query{Search: "engineer", Limit: 25})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(docs))
	}

	first := docs[0]
	if first.ExternalID != "1001" || first.Title != "Backend Engineer" || first.Company != "Acme" {
		t.Fatalf("unexpected mapping: %+v", first)
	}
	if first.Location != "Worldwide" {
		t.Fatalf("expected location from candidate_required_location, got %q", first.Location)
	}
	if first.PublishedAt.Year() != 2024 {
		t.Fatalf("expected parsed publication date, got %v", first.PublishedAt)
	}
	if first.ID == docs[1].ID {
		t.Fatalf("expected distinct internal ids")
	}

	q, _ := http.NewRequest(http.MethodGet, "http://x/?"+gotQuery, nil)
	if q.URL.Query().Get("limit") != "25" || q.URL.Query().Get("search") != "engineer" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
}

func TestFetchCandidates_LimitBounds(t *testing.T) {
	var gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`{"job-count": 0, "jobs": []}`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, nil)

	if _, err := src.FetchCandidates(context.Background(), Query{}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotLimit != "50" {
		t.Fatalf("expected default limit 50, got %s", gotLimit)
	}

	if _, err := src.FetchCandidates(context.Background(), Query{Limit: 500}); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if gotLimit != "100" {
		t.Fatalf("expected limit clamped to 100, got %s", gotLimit)
	}
}

func TestFetchCandidates_UpstreamError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewHTTPSource(srv.URL, nil).FetchCandidates(context.Background(), Query{}); err == nil {
		t.Fatalf("expected error on upstream failure")
	}
}

func TestFetchByExternalID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(listingBody))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL, nil)

	doc, found, err := src.FetchByExternalID(context.Background(), "1002")
	if err != nil || !found {
		t.Fatalf("expected hit, got found=%v err=%v", found, err)
	}
	if doc.Title != "Data Engineer" {
		t.Fatalf("unexpected document: %+v", doc)
	}

	_, found, err = src.FetchByExternalID(context.Background(), "9999")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if found {
		t.Fatalf("expected miss for unknown id")
	}
}
