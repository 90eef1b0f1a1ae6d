package reddit

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/sync/errgroup"
)

const (
	DefaultLimit = 200
	pageSize     = 100 // Reddit's maximum listing page
)

// APIError is returned when the Reddit API answers with a non-200 status.
type APIError struct {
	Endpoint   string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("reddit %s returned status %d: %s", e.Endpoint, e.StatusCode, e.Body)
}

// NotFound reports whether the user does not exist or is suspended.
func (e *APIError) NotFound() bool {
	return e.StatusCode == http.StatusNotFound || e.StatusCode == http.StatusForbidden
}

// Collector fetches a Reddit user's top comments and posts.
type Collector struct {
	transport http.RoundTripper
	auth      *clientcredentials.Config // nil when transport needs no token
	baseURL   string
	limit     int
	timeout   time.Duration
}

// NewCollector returns a Collector authenticated with the given application
// credentials. limit bounds the number of comments and, separately, posts;
// timeout bounds a whole Fetch, token exchange included.
func NewCollector(creds Credentials, limit int, timeout time.Duration) *Collector {
	transport := &userAgentTransport{base: http.DefaultTransport, userAgent: creds.UserAgent}
	return newCollector(transport, newCredentialsConfig(creds, tokenURL), apiBaseURL, limit, timeout)
}

func newCollector(transport http.RoundTripper, auth *clientcredentials.Config, baseURL string, limit int, timeout time.Duration) *Collector {
	if limit < 1 {
		limit = DefaultLimit
	}
	return &Collector{
		transport: transport,
		auth:      auth,
		baseURL:   strings.TrimSuffix(baseURL, "/"),
		limit:     limit,
		timeout:   timeout,
	}
}

// Fetch collects the user's top-ranked comments and posts in Reddit's own
// score order. Any failure yields an empty Collection with Err set; it never
// returns a partial result.
func (c *Collector) Fetch(ctx context.Context, username string) Collection {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	client, err := c.httpClient(ctx)
	if err != nil {
		return Collection{Err: err}
	}

	var comments, posts []ContentItem
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		slog.Info("fetching top comments", "username", username, "limit", c.limit)
		var err error
		comments, err = fetchListing(gCtx, c, client, userPath(username, "comments"), commentItem)
		if err != nil {
			return fmt.Errorf("fetching comments: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("fetching top posts", "username", username, "limit", c.limit)
		var err error
		posts, err = fetchListing(gCtx, c, client, userPath(username, "submitted"), postItem)
		if err != nil {
			return fmt.Errorf("fetching posts: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		return Collection{Err: err}
	}

	slog.Info("fetched reddit content", "username", username, "comments", len(comments), "posts", len(posts))
	return Collection{Comments: comments, Posts: posts}
}

func userPath(username, listing string) string {
	return "/user/" + url.PathEscape(username) + "/" + listing
}

// fetchListing pages through a top/all listing until the collector's limit
// is reached or the listing ends. Entries without usable text are skipped
// but still count toward the limit.
func fetchListing[T any](ctx context.Context, c *Collector, client *http.Client, endpoint string, convert func(T) (ContentItem, error)) ([]ContentItem, error) {
	var items []ContentItem
	after := ""
	seen := 0
	for seen < c.limit {
		q := url.Values{}
		q.Set("sort", "top")
		q.Set("t", "all")
		q.Set("raw_json", "1")
		q.Set("limit", strconv.Itoa(min(pageSize, c.limit-seen)))
		if after != "" {
			q.Set("after", after)
		}

		var page listing[T]
		if err := c.get(ctx, client, endpoint, q, &page); err != nil {
			return nil, err
		}

		for _, child := range page.Data.Children {
			if seen >= c.limit {
				break
			}
			seen++
			item, err := convert(child.Data)
			if err != nil {
				slog.Debug("skipping reddit entry", "endpoint", endpoint, "error", err)
				continue
			}
			items = append(items, item)
		}

		if page.Data.After == "" || len(page.Data.Children) == 0 {
			break
		}
		after = page.Data.After
	}
	return items, nil
}

func (c *Collector) get(ctx context.Context, client *http.Client, endpoint string, q url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("creating request for %s: %w", endpoint, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("requesting %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &APIError{Endpoint: endpoint, StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decoding %s: %w", endpoint, err)
	}
	return nil
}

func commentItem(d commentData) (ContentItem, error) {
	body := d.Body
	if tombstone(body) {
		body = ""
	}
	return NewComment(body, permalinkURL(d.Permalink), d.Score)
}

func postItem(d submissionData) (ContentItem, error) {
	body := d.Selftext
	if tombstone(body) {
		body = ""
	}
	return NewPost(d.Title, body, permalinkURL(d.Permalink), d.Score)
}

func permalinkURL(permalink string) string {
	if permalink == "" {
		return ""
	}
	return siteURL + permalink
}
