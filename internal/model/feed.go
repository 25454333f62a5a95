package model

import (
	"fmt"
	"time"
)

// Article represents a single news item of the distribution feed
type Article struct {
	Link        string    `json:"link"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	DisplayDate string    `json:"displayDate"`
	Author      string    `json:"author"`
	Content     string    `json:"content"`
	Comments    string    `json:"comments,omitempty"`
}

// NewsCache is the persisted record used to decide whether news are new
type NewsCache struct {
	Date      *int64  `json:"date"`    // unix milliseconds of the newest article
	Content   *string `json:"content"` // content hash of the newest article
	Dismissed bool    `json:"dismissed"`
}

// IsEmpty reports whether no article has been recorded yet
func (c NewsCache) IsEmpty() bool {
	return c.Date == nil || c.Content == nil
}

// NewNewsCache builds a cache record for the given article date and hash
func NewNewsCache(date time.Time, hash string) NewsCache {
	ms := date.UnixMilli()
	return NewsCache{Date: &ms, Content: &hash}
}

// DateTime returns the cached date as time, zero if unset
func (c NewsCache) DateTime() time.Time {
	if c.Date == nil {
		return time.Time{}
	}
	return time.UnixMilli(*c.Date)
}

// Feed is the loaded set of articles with a cursor for paging through them
type Feed struct {
	Articles  []*Article
	current   int
	FetchedAt time.Time
}

// NewFeed creates a feed positioned on the first (newest) article
func NewFeed(articles []*Article) *Feed {
	return &Feed{
		Articles:  articles,
		FetchedAt: time.Now(),
	}
}

// Len returns the number of articles
func (f *Feed) Len() int {
	return len(f.Articles)
}

// IsEmpty reports whether the feed has no articles
func (f *Feed) IsEmpty() bool {
	return len(f.Articles) == 0
}

// Latest returns the newest article or nil
func (f *Feed) Latest() *Article {
	if f.IsEmpty() {
		return nil
	}
	return f.Articles[0]
}

// Current returns the article under the cursor or nil
func (f *Feed) Current() *Article {
	if f.IsEmpty() {
		return nil
	}
	return f.Articles[f.current]
}

// Index returns the zero based cursor position
func (f *Feed) Index() int {
	return f.current
}

// Next moves the cursor forward, wrapping to the first article
func (f *Feed) Next() *Article {
	if f.IsEmpty() {
		return nil
	}
	if f.current >= len(f.Articles)-1 {
		f.current = 0
	} else {
		f.current++
	}
	return f.Current()
}

// Previous moves the cursor backward, wrapping to the last article
func (f *Feed) Previous() *Article {
	if f.IsEmpty() {
		return nil
	}
	if f.current <= 0 {
		f.current = len(f.Articles) - 1
	} else {
		f.current--
	}
	return f.Current()
}

// Position returns the "i of n" navigation text
func (f *Feed) Position(of string) string {
	if f.IsEmpty() {
		return ""
	}
	return fmt.Sprintf("%d %s %d", f.current+1, of, len(f.Articles))
}
