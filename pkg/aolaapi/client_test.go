package aolaapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/vmoranv/aolachart/pkg/cache"
)

func TestNewClientNormalizesBaseURL(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"http://api.example", "http://api.example"},
		{"https://api.example/", "https://api.example"},
		{"api.example:8080", "http://api.example:8080"},
		{" 192.168.1.10:5000/ ", "http://192.168.1.10:5000"},
	}
	for _, tt := range tests {
		c := NewClient(tt.in, cache.NewNullCache(), 0)
		if got := c.BaseURL(); got != tt.want {
			t.Errorf("NewClient(%q) base URL = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFetchAttributes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/skill-attributes" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"success": true, "data": [{"id": 1, "name": "grass"}, {"id": 30, "name": "super fire"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), 0)
	attrs, err := c.FetchAttributes(context.Background())
	if err != nil {
		t.Fatalf("FetchAttributes error: %v", err)
	}
	if len(attrs) != 2 || attrs[0].Name != "grass" || attrs[1].ID != 30 {
		t.Errorf("unexpected catalogue: %v", attrs)
	}
}

func TestFetchRelations(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/attribute-relations/5" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"success": true, "data": {"2": "3", "22": "1/2"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), 0)
	relations, err := c.FetchRelations(context.Background(), 5)
	if err != nil {
		t.Fatalf("FetchRelations error: %v", err)
	}
	if relations["2"] != "3" || relations["22"] != "1/2" {
		t.Errorf("unexpected relations: %v", relations)
	}
}

func TestFetchActivitiesBareArray(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/existing-activities" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`[{"name": "spring event", "packet": "eyJ9"}]`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), 0)
	activities, err := c.FetchActivities(context.Background())
	if err != nil {
		t.Fatalf("FetchActivities error: %v", err)
	}
	if len(activities) != 1 || activities[0].Name != "spring event" {
		t.Errorf("unexpected activities: %v", activities)
	}
}

func TestEnvelopeFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success": false, "data": null}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), 0)
	if _, err := c.FetchAttributes(context.Background()); !errors.Is(err, ErrUnavailable) {
		t.Errorf("expected ErrUnavailable, got %v", err)
	}
}

func TestNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(http.NotFound))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), 0)
	if _, err := c.FetchRelations(context.Background(), 77); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestResponsesAreCached(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewMemoryCache(), time.Hour)
	for i := 0; i < 3; i++ {
		if _, err := c.FetchAttributes(context.Background()); err != nil {
			t.Fatalf("FetchAttributes error: %v", err)
		}
	}
	if got := requests.Load(); got != 1 {
		t.Errorf("expected 1 origin request, got %d", got)
	}
}

func TestUserAgent(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("User-Agent")
		w.Write([]byte(`{"success": true, "data": []}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, cache.NewNullCache(), 0)
	if _, err := c.FetchAttributes(context.Background()); err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(got, "aolachart/") {
		t.Errorf("unexpected User-Agent: %q", got)
	}
}
