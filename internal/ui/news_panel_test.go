package ui

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/news"
	"github.com/farfania/oblivion-launcher/internal/presence"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0"
	xmlns:content="http://purl.org/rss/1.0/modules/content/"
	xmlns:dc="http://purl.org/dc/elements/1.1/">
<channel>
	<title>Oblivion</title>
	<item>
		<title>Season two</title>
		<link>https://oblivion.example.net/season-two</link>
		<pubDate>Tue, 14 May 2024 18:30:00 +0000</pubDate>
		<dc:creator>Aldara</dc:creator>
		<content:encoded><![CDATA[<p>New <b>map</b></p><p>Join us<br>tonight</p>]]></content:encoded>
	</item>
	<item>
		<title>Maintenance</title>
		<link>https://oblivion.example.net/maintenance</link>
		<pubDate>Mon, 06 May 2024 09:05:00 +0000</pubDate>
		<dc:creator>Bren</dc:creator>
		<content:encoded><![CDATA[<p>Down for an hour</p>]]></content:encoded>
	</item>
</channel>
</rss>`

type newsStore struct {
	mu    sync.Mutex
	cache model.NewsCache
}

func (s *newsStore) GetNewsCache() model.NewsCache {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache
}

func (s *newsStore) SetNewsCache(c model.NewsCache) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = c
}

type detailsRecorder struct {
	presence.Nop
	mu      sync.Mutex
	details []string
}

func (r *detailsRecorder) UpdateDetails(d string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.details = append(r.details, d)
}

func (r *detailsRecorder) last() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.details) == 0 {
		return ""
	}
	return r.details[len(r.details)-1]
}

type alertRecorder struct {
	mu    sync.Mutex
	shown []bool
}

func (a *alertRecorder) set(shown bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.shown = append(a.shown, shown)
}

func (a *alertRecorder) last() (bool, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.shown) == 0 {
		return false, false
	}
	return a.shown[len(a.shown)-1], true
}

func newTestNewsPanel(t *testing.T, body string, status int) (*NewsPanel, *newsStore, *detailsRecorder, *alertRecorder, string) {
	t.Helper()
	test.NewApp()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	store := &newsStore{}
	svc := news.NewService(news.NewLoader(srv.Client(), 0), store, zaptest.NewLogger(t))
	rec := &detailsRecorder{}
	alerts := &alertRecorder{}
	url := srv.URL + "/feed.xml"

	p := NewNewsPanel(svc, locale.NewLocalization(), rec, func() string { return url }, zaptest.NewLogger(t))
	p.SetOnAlert(alerts.set)
	return p, store, rec, alerts, url
}

func TestNewsPanel_LoadAndDismiss(t *testing.T) {
	p, store, rec, alerts, _ := newTestNewsPanel(t, testFeed, http.StatusOK)

	p.Load(context.Background())
	require.Equal(t, NewsReady, p.State())

	shown, ok := alerts.last()
	require.True(t, ok)
	require.True(t, shown, "first load of a feed raises the alert")
	require.False(t, store.GetNewsCache().IsEmpty())

	require.Eventually(t, func() bool {
		return p.titleLabel.Text == "Season two" &&
			p.positionLabel.Text == "1 of 2" &&
			p.bodyLabel.Text == "New map\n\nJoin us\ntonight" &&
			p.article.Visible()
	}, time.Second, 5*time.Millisecond)

	p.Open()
	require.True(t, p.IsOpen())
	require.Equal(t, "Reading the news...", rec.last())
	require.True(t, store.GetNewsCache().Dismissed)
	shown, _ = alerts.last()
	require.False(t, shown)

	p.Close()
	require.False(t, p.IsOpen())
	require.Equal(t, "Ready to play!", rec.last())

	// The dismissed feed stays quiet on reload
	p.Load(context.Background())
	shown, _ = alerts.last()
	require.False(t, shown)
}

func TestNewsPanel_Navigation(t *testing.T) {
	p, _, _, _, _ := newTestNewsPanel(t, testFeed, http.StatusOK)

	// Navigation before a load is a no-op
	p.Next()
	require.Equal(t, NewsIdle, p.State())

	p.Load(context.Background())

	p.Next()
	require.Eventually(t, func() bool {
		return p.titleLabel.Text == "Maintenance" && p.positionLabel.Text == "2 of 2"
	}, time.Second, 5*time.Millisecond)

	p.Next()
	require.Eventually(t, func() bool { return p.positionLabel.Text == "1 of 2" }, time.Second, 5*time.Millisecond)

	p.Previous()
	require.Eventually(t, func() bool { return p.titleLabel.Text == "Maintenance" }, time.Second, 5*time.Millisecond)

	p.onSwipe(SwipeRight)
	require.Eventually(t, func() bool { return p.titleLabel.Text == "Season two" }, time.Second, 5*time.Millisecond)
}

func TestNewsPanel_Failure(t *testing.T) {
	p, store, _, alerts, _ := newTestNewsPanel(t, "boom", http.StatusInternalServerError)

	p.Load(context.Background())
	require.Equal(t, NewsFailed, p.State())
	require.True(t, store.GetNewsCache().IsEmpty())

	shown, ok := alerts.last()
	require.True(t, ok)
	require.False(t, shown)
	require.Eventually(t, func() bool {
		return p.statusLabel.Text == "Failed to load news" && p.retryBtn.Visible()
	}, time.Second, 5*time.Millisecond)
}

func TestNewsPanel_NoFeedURL(t *testing.T) {
	test.NewApp()
	svc := news.NewService(news.NewLoader(nil, 0), &newsStore{}, nil)
	p := NewNewsPanel(svc, locale.NewLocalization(), nil, func() string { return "" }, nil)

	p.Load(context.Background())
	require.Equal(t, NewsFailed, p.State())
}

func TestNewsPanel_Empty(t *testing.T) {
	p, store, _, _, _ := newTestNewsPanel(t, `<?xml version="1.0"?><rss version="2.0"><channel><title>x</title></channel></rss>`, http.StatusOK)

	p.Load(context.Background())
	require.Equal(t, NewsEmpty, p.State())
	require.True(t, store.GetNewsCache().IsEmpty())
	require.Eventually(t, func() bool { return p.statusLabel.Text == "No news" }, time.Second, 5*time.Millisecond)
}

func TestArticleText(t *testing.T) {
	tests := []struct {
		content  string
		expected string
	}{
		{"<p>Hello <b>world</b></p><p>Second<br>line</p>", "Hello world\n\nSecond\nline"},
		{"<ul><li>one</li><li>two</li></ul>", "one\n\ntwo"},
		{"plain text", "plain text"},
		{"<p> </p>", ""},
	}

	for _, test := range tests {
		if got := articleText(test.content); got != test.expected {
			t.Errorf("articleText(%q) = %q, expected %q", test.content, got, test.expected)
		}
	}
}

func TestArticleMeta(t *testing.T) {
	loc := locale.NewLocalization()

	a := &model.Article{Author: "Aldara", DisplayDate: "May 14, 2024, 6:30 PM"}
	if got := articleMeta(loc, a); got != "by Aldara · May 14, 2024, 6:30 PM" {
		t.Errorf("Unexpected meta: %s", got)
	}
	if got := articleMeta(loc, &model.Article{DisplayDate: "May 14"}); got != "May 14" {
		t.Errorf("Expected date only, got %s", got)
	}
}
