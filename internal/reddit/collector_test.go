package reddit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

type child struct {
	Kind string         `json:"kind"`
	Data map[string]any `json:"data"`
}

func writeListing(w http.ResponseWriter, after string, children []child) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"kind": "Listing",
		"data": map[string]any{"after": after, "children": children},
	})
}

func comment(body, permalink string, score int) child {
	return child{Kind: "t1", Data: map[string]any{"body": body, "permalink": permalink, "score": score}}
}

func submission(title, selftext, permalink string, score int) child {
	return child{Kind: "t3", Data: map[string]any{"title": title, "selftext": selftext, "permalink": permalink, "score": score}}
}

func TestFetch(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/hiker/comments", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("sort") != "top" || q.Get("t") != "all" {
			t.Errorf("comments query = %v, want sort=top&t=all", q)
		}
		writeListing(w, "", []child{
			comment("I love hiking", "/r/hiking/comments/1/a/c1/", 50),
			comment("[deleted]", "/r/hiking/comments/1/a/c2/", 40),
			comment("Boots matter", "/r/hiking/comments/1/a/c3/", 30),
		})
	})
	mux.HandleFunc("/user/hiker/submitted", func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, "", []child{
			submission("Gear?", "", "/r/hiking/comments/2/gear/", 12),
			submission("", "", "/r/hiking/comments/3/empty/", 1),
		})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newCollector(srv.Client().Transport, nil, srv.URL, DefaultLimit, time.Minute)
	got := c.Fetch(context.Background(), "hiker")
	if got.Err != nil {
		t.Fatalf("Fetch() Err = %v", got.Err)
	}

	if len(got.Comments) != 2 {
		t.Fatalf("comments = %d, want 2 (tombstone dropped)", len(got.Comments))
	}
	if got.Comments[0].Body != "I love hiking" || got.Comments[1].Body != "Boots matter" {
		t.Errorf("comments out of listing order: %+v", got.Comments)
	}
	if got.Comments[0].SourceURL != "https://reddit.com/r/hiking/comments/1/a/c1/" {
		t.Errorf("SourceURL = %q", got.Comments[0].SourceURL)
	}
	if got.Comments[0].Score != 50 {
		t.Errorf("Score = %d, want 50", got.Comments[0].Score)
	}

	if len(got.Posts) != 1 {
		t.Fatalf("posts = %d, want 1 (textless post dropped)", len(got.Posts))
	}
	if got.Posts[0].Title != "Gear?" || got.Posts[0].Kind != KindPost {
		t.Errorf("post = %+v", got.Posts[0])
	}
}

func TestFetch_Pagination(t *testing.T) {
	var mu sync.Mutex
	var limits []string
	mux := http.NewServeMux()
	mux.HandleFunc("/user/busy/comments", func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		limits = append(limits, r.URL.Query().Get("limit"))
		mu.Unlock()

		// Serve three pages of 100; the collector should stop after 150 items.
		after := r.URL.Query().Get("after")
		page := 0
		if after != "" {
			page, _ = strconv.Atoi(after)
		}
		n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
		var children []child
		for i := 0; i < n; i++ {
			id := page*100 + i
			children = append(children, comment(fmt.Sprintf("comment %d", id), fmt.Sprintf("/c/%d/", id), 1000-id))
		}
		next := ""
		if page < 2 {
			next = strconv.Itoa(page + 1)
		}
		writeListing(w, next, children)
	})
	mux.HandleFunc("/user/busy/submitted", func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, "", nil)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newCollector(srv.Client().Transport, nil, srv.URL, 150, time.Minute)
	got := c.Fetch(context.Background(), "busy")
	if got.Err != nil {
		t.Fatalf("Fetch() Err = %v", got.Err)
	}
	if len(got.Comments) != 150 {
		t.Fatalf("comments = %d, want 150", len(got.Comments))
	}
	if got.Comments[149].Body != "comment 149" {
		t.Errorf("last comment = %q, want %q", got.Comments[149].Body, "comment 149")
	}
	if len(limits) != 2 || limits[0] != "100" || limits[1] != "50" {
		t.Errorf("page limits = %v, want [100 50]", limits)
	}
}

func TestFetch_UserNotFound(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/user/ghost/comments", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message": "Not Found", "error": 404}`, http.StatusNotFound)
	})
	mux.HandleFunc("/user/ghost/submitted", func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, "", []child{submission("A post", "", "/p/1/", 1)})
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c := newCollector(srv.Client().Transport, nil, srv.URL, DefaultLimit, time.Minute)
	got := c.Fetch(context.Background(), "ghost")
	if !got.Empty() {
		t.Errorf("expected empty collection on failure, got %d comments %d posts", len(got.Comments), len(got.Posts))
	}
	var apiErr *APIError
	if !errors.As(got.Err, &apiErr) {
		t.Fatalf("Err = %v, want *APIError", got.Err)
	}
	if !apiErr.NotFound() {
		t.Errorf("NotFound() = false for status %d", apiErr.StatusCode)
	}
}

func TestFetch_NoContent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeListing(w, "", nil)
	}))
	defer srv.Close()

	c := newCollector(srv.Client().Transport, nil, srv.URL, DefaultLimit, time.Minute)
	got := c.Fetch(context.Background(), "quiet")
	if !got.Empty() || got.Err != nil {
		t.Errorf("Fetch() = %+v, want empty collection with nil Err", got)
	}
}

func TestFetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	c := newCollector(srv.Client().Transport, nil, srv.URL, DefaultLimit, 50*time.Millisecond)
	got := c.Fetch(context.Background(), "slow")
	if !got.Empty() {
		t.Error("expected empty collection on timeout")
	}
	if !errors.Is(got.Err, context.DeadlineExceeded) {
		t.Errorf("Err = %v, want context.DeadlineExceeded", got.Err)
	}
}

func TestNewCollector_DefaultLimit(t *testing.T) {
	c := newCollector(http.DefaultTransport, nil, "http://example.com/", 0, time.Minute)
	if c.limit != DefaultLimit {
		t.Errorf("limit = %d, want %d", c.limit, DefaultLimit)
	}
	if c.baseURL != "http://example.com" {
		t.Errorf("baseURL = %q, trailing slash not trimmed", c.baseURL)
	}
}

func TestUserPath(t *testing.T) {
	if got := userPath("a b", "comments"); got != "/user/a%20b/comments" {
		t.Errorf("userPath() = %q", got)
	}
}
