package reddit

import (
	"errors"
	"strings"
)

// Kind distinguishes the two sources of user content.
type Kind int

const (
	KindComment Kind = iota
	KindPost
)

func (k Kind) String() string {
	switch k {
	case KindComment:
		return "Comment"
	case KindPost:
		return "Post"
	default:
		return "Unknown"
	}
}

// ContentItem is one normalized comment or post.
type ContentItem struct {
	Kind      Kind
	Body      string
	Title     string // posts only
	SourceURL string
	Score     int
}

var (
	errNoText      = errors.New("content item has no text")
	errNoSourceURL = errors.New("content item has no source URL")
)

// NewComment builds a comment item. The body must contain text.
func NewComment(body, sourceURL string, score int) (ContentItem, error) {
	if strings.TrimSpace(body) == "" {
		return ContentItem{}, errNoText
	}
	if sourceURL == "" {
		return ContentItem{}, errNoSourceURL
	}
	return ContentItem{Kind: KindComment, Body: body, SourceURL: sourceURL, Score: score}, nil
}

// NewPost builds a post item. Link posts have no self-text, so either the
// body or the title must contain text.
func NewPost(title, body, sourceURL string, score int) (ContentItem, error) {
	if strings.TrimSpace(body) == "" && strings.TrimSpace(title) == "" {
		return ContentItem{}, errNoText
	}
	if sourceURL == "" {
		return ContentItem{}, errNoSourceURL
	}
	return ContentItem{Kind: KindPost, Body: body, Title: title, SourceURL: sourceURL, Score: score}, nil
}

// DisplayText returns the text shown for the item: the body, falling back to
// the title for posts. The result is trimmed and may be empty.
func (c ContentItem) DisplayText() string {
	if text := strings.TrimSpace(c.Body); text != "" {
		return text
	}
	if c.Kind == KindPost {
		return strings.TrimSpace(c.Title)
	}
	return ""
}

// Collection holds the content fetched for one user.
//
// Err records why the collection is empty when a query failed. An empty
// collection with a nil Err means the user has no public content.
type Collection struct {
	Comments []ContentItem
	Posts    []ContentItem
	Err      error
}

// Items returns comments followed by posts, each in listing order.
func (c Collection) Items() []ContentItem {
	items := make([]ContentItem, 0, len(c.Comments)+len(c.Posts))
	items = append(items, c.Comments...)
	return append(items, c.Posts...)
}

// Empty reports whether no items were collected.
func (c Collection) Empty() bool {
	return len(c.Comments) == 0 && len(c.Posts) == 0
}

// listing is the envelope Reddit wraps around paginated results.
type listing[T any] struct {
	Kind string `json:"kind"`
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string `json:"kind"`
			Data T      `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type commentData struct {
	Body      string `json:"body"`
	Permalink string `json:"permalink"`
	Score     int    `json:"score"`
}

type submissionData struct {
	Title     string `json:"title"`
	Selftext  string `json:"selftext"`
	Permalink string `json:"permalink"`
	Score     int    `json:"score"`
}

// tombstone reports whether a body is Reddit's placeholder for deleted or
// moderator-removed text.
func tombstone(body string) bool {
	switch strings.TrimSpace(body) {
	case "[deleted]", "[removed]":
		return true
	}
	return false
}
