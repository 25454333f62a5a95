// Package news loads the distribution news feed and decides whether the
// newest article should raise the news alert.
package news

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/lestrrat-go/strftime"
	"github.com/mmcdole/gofeed"

	"github.com/farfania/oblivion-launcher/internal/model"
)

// DefaultTimeout bounds a feed fetch
const DefaultTimeout = 2500 * time.Millisecond

// DisplayDateFormat renders dates like "Jan 2, 2006, 3:04 PM"
const DisplayDateFormat = "%b %e, %Y, %l:%M %p"

var (
	srcAttr     = regexp.MustCompile(`src="([^"]+)"`)
	displayDate = mustPattern(DisplayDateFormat)
)

func mustPattern(p string) *strftime.Strftime {
	f, err := strftime.New(p)
	if err != nil {
		panic(err)
	}
	return f
}

// HTTPClient is the minimal HTTP client the loader needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Loader fetches and parses an RSS feed
type Loader struct {
	httpClient HTTPClient
	timeout    time.Duration
	location   *time.Location
}

// NewLoader creates a loader. A zero timeout uses DefaultTimeout.
func NewLoader(httpClient HTTPClient, timeout time.Duration) *Loader {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Loader{httpClient: httpClient, timeout: timeout, location: time.Local}
}

// Load fetches feedURL and returns its articles, newest first as listed
func (l *Loader) Load(ctx context.Context, feedURL string) (*model.Feed, error) {
	origin, err := Origin(feedURL)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, l.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return nil, fmt.Errorf("news: build request: %w", err)
	}
	resp, err := l.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("news: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("news: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("news: read body: %w", err)
	}

	parsed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("news: parse feed: %w", err)
	}

	articles := make([]*model.Article, 0, len(parsed.Items))
	for _, item := range parsed.Items {
		articles = append(articles, l.article(item, origin))
	}
	return model.NewFeed(articles), nil
}

func (l *Loader) article(item *gofeed.Item, origin string) *model.Article {
	a := &model.Article{
		Link:    item.Link,
		Title:   item.Title,
		Content: RewriteRelativeSources(item.Content, origin),
		Author:  author(item),
	}
	if item.PublishedParsed != nil {
		a.Date = *item.PublishedParsed
		a.DisplayDate = FormatDate(a.Date.In(l.location))
	} else {
		a.DisplayDate = item.Published
	}
	return a
}

func author(item *gofeed.Item) string {
	if item.DublinCoreExt != nil && len(item.DublinCoreExt.Creator) > 0 {
		return item.DublinCoreExt.Creator[0]
	}
	if len(item.Authors) > 0 && item.Authors[0] != nil {
		return item.Authors[0].Name
	}
	return ""
}

// Origin returns scheme://host of a feed address
func Origin(feedURL string) (string, error) {
	u, err := url.Parse(feedURL)
	if err != nil {
		return "", fmt.Errorf("news: invalid feed url: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("news: feed url %q is not absolute", feedURL)
	}
	return u.Scheme + "://" + u.Host, nil
}

// RewriteRelativeSources makes every src="..." attribute that is not an
// http(s) address absolute against origin
func RewriteRelativeSources(content, origin string) string {
	return srcAttr.ReplaceAllStringFunc(content, func(attr string) string {
		src := srcAttr.FindStringSubmatch(attr)[1]
		if strings.HasPrefix(src, "http://") || strings.HasPrefix(src, "https://") {
			return attr
		}
		return `src="` + origin + "/" + strings.TrimPrefix(src, "/") + `"`
	})
}

// FormatDate renders an article date for display
func FormatDate(t time.Time) string {
	// %e and %l pad with spaces
	return strings.Join(strings.Fields(displayDate.FormatString(t)), " ")
}
