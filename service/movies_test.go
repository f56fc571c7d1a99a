package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestListMovies_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.RawQuery != "page=1&size=1000000" {
			t.Fatalf("unexpected query: %s", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "payload": [
    {"movieId": 1, "title": "Inception", "year": 2010, "rating": 8.8, "category": {"categoryId": 2, "name": "Sci-Fi"}},
    {"movieId": 2, "title": "Heat", "year": 1995, "rating": 8.3, "category": {"categoryId": 3, "name": "Crime"}}
  ],
  "status": "OK",
  "message": ""
}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, nil)

	resp, err := client.ListMovies(context.Background(), 1, 1000000)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if !resp.OK() {
		t.Fatalf("unexpected status: %s", resp.Status)
	}
	if len(resp.Payload) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(resp.Payload))
	}
	if resp.Payload[0].Category.Name != "Sci-Fi" {
		t.Fatalf("unexpected category: %s", resp.Payload[0].Category.Name)
	}
}

func TestMoviesByCategory_QueryKeyedByName(t *testing.T) {
	var gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/categories" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payload":[{"movieId":1,"title":"Heat"}],"status":"OK","message":""}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, nil)

	resp, err := client.MoviesByCategory(context.Background(), "Crime", 1, 50)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	// The backend keys the filter parameter by the category name itself.
	if gotQuery != "Crime=Action&page=1&size=50" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
	if len(resp.Payload) != 1 {
		t.Fatalf("expected 1 movie, got %d", len(resp.Payload))
	}
}

func TestMoviesByCategory_EmptyName(t *testing.T) {
	client := NewClient(nil, "http://example.invalid", nil)
	if _, err := client.MoviesByCategory(context.Background(), "  ", 1, 10); err == nil {
		t.Fatal("expected error for empty category name")
	}
}

func TestGetMovie_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movies/7" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
  "payload": {
    "movieId": 7,
    "title": "Alien",
    "year": 1979,
    "directorName": "Ridley Scott",
    "castMembers": [{"castId": 1, "name": "Sigourney Weaver"}]
  },
  "status": "OK",
  "message": ""
}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, nil)

	resp, err := client.GetMovie(context.Background(), 7)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if resp.Payload.MovieId != 7 {
		t.Fatalf("unexpected movie id: %d", resp.Payload.MovieId)
	}
	if len(resp.Payload.CastMembers) != 1 {
		t.Fatalf("expected 1 cast member, got %d", len(resp.Payload.CastMembers))
	}
}

func TestToggleFavorite_PatchWithStatus(t *testing.T) {
	var gotMethod, gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payload":[],"status":"OK","message":""}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, nil)

	if _, err := client.ToggleFavorite(context.Background(), 7, true); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if gotMethod != http.MethodPatch {
		t.Fatalf("unexpected method: %s", gotMethod)
	}
	if gotPath != "/movies/7/favorite" {
		t.Fatalf("unexpected path: %s", gotPath)
	}
	if gotQuery != "status=true" {
		t.Fatalf("unexpected query: %s", gotQuery)
	}
}

func TestListCategories_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/categories" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payload":[{"categoryId":1,"name":"Action"},{"categoryId":2,"name":"Drama"}],"status":"OK","message":""}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, nil)

	resp, err := client.ListCategories(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(resp.Payload) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(resp.Payload))
	}
}

func TestListCast_OK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/cast-members" {
			t.Fatalf("unexpected path: %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"payload":[{"castId":1,"name":"Al Pacino"}],"status":"OK","message":""}`))
	}))
	defer server.Close()

	client := NewClient(server.Client(), server.URL, nil)

	resp, err := client.ListCast(context.Background(), 1, 100)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if len(resp.Payload) != 1 || resp.Payload[0].Name != "Al Pacino" {
		t.Fatalf("unexpected payload: %+v", resp.Payload)
	}
}
