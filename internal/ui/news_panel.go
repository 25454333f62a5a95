package ui

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/news"
	"github.com/farfania/oblivion-launcher/internal/platform"
	"github.com/farfania/oblivion-launcher/internal/presence"
	"github.com/farfania/oblivion-launcher/internal/progress"
)

// NewsState is what the news panel currently displays
type NewsState int

const (
	NewsIdle NewsState = iota
	NewsLoading
	NewsFailed
	NewsEmpty
	NewsReady
)

var (
	errNoFeed = errors.New("distribution has no news feed")
	lineBreak = regexp.MustCompile(`(?i)<br\s*/?>`)
)

// NewsPanel shows the distribution news one article at a time
type NewsPanel struct {
	service  *news.Service
	loc      *locale.Localization
	presence presence.Presence
	feedURL  func() string
	logger   *zap.Logger

	// onAlert raises or lowers the alert on the news button
	onAlert func(shown bool)

	titleLabel    *widget.Label
	metaLabel     *widget.Label
	bodyLabel     *widget.Label
	positionLabel *widget.Label
	statusLabel   *widget.Label
	prevBtn       *widget.Button
	nextBtn       *widget.Button
	retryBtn      *widget.Button
	linkBtn       *widget.Button
	article       *fyne.Container
	container     *fyne.Container

	mu    sync.Mutex
	state NewsState
	open  bool
}

// NewNewsPanel creates the news panel. feedURL is read on every load.
func NewNewsPanel(service *news.Service, loc *locale.Localization, p presence.Presence, feedURL func() string, logger *zap.Logger) *NewsPanel {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = presence.Nop{}
	}
	n := &NewsPanel{
		service:  service,
		loc:      loc,
		presence: p,
		feedURL:  feedURL,
		logger:   logger,
	}
	n.createUI()
	return n
}

func (n *NewsPanel) createUI() {
	n.titleLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	n.titleLabel.Wrapping = fyne.TextWrapWord
	n.metaLabel = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Italic: true})
	n.bodyLabel = widget.NewLabel("")
	n.bodyLabel.Wrapping = fyne.TextWrapWord
	n.positionLabel = widget.NewLabel("")
	n.statusLabel = widget.NewLabelWithStyle("", fyne.TextAlignCenter, fyne.TextStyle{})

	n.prevBtn = widget.NewButton(IconPrevious, func() { n.Previous() })
	n.nextBtn = widget.NewButton(IconNext, func() { n.Next() })
	n.retryBtn = widget.NewButton(n.loc.GetText(locale.KeyRetry), func() {
		go n.Load(context.Background())
	})
	n.retryBtn.Hide()
	n.linkBtn = widget.NewButton(IconFolder, n.openLink)
	n.linkBtn.Importance = widget.LowImportance

	header := container.NewBorder(nil, nil, nil, n.linkBtn, container.NewVBox(n.titleLabel, n.metaLabel))
	body := container.NewVScroll(n.bodyLabel)
	body.SetMinSize(fyne.NewSize(0, NewsMinHeight))
	nav := container.NewHBox(n.prevBtn, n.positionLabel, n.nextBtn)

	n.article = container.NewBorder(header, container.NewCenter(nav), nil, nil, NewSwipeArea(body, n.onSwipe))
	n.article.Hide()

	n.container = container.NewStack(
		n.article,
		container.NewCenter(container.NewVBox(n.statusLabel, container.NewCenter(n.retryBtn))),
	)
}

// Container returns the news panel canvas object
func (n *NewsPanel) Container() fyne.CanvasObject {
	return n.container
}

// SetOnAlert sets the callback toggling the news alert indicator
func (n *NewsPanel) SetOnAlert(fn func(shown bool)) {
	n.onAlert = fn
}

// State returns what the panel currently displays
func (n *NewsPanel) State() NewsState {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.state
}

// Load fetches the feed and renders the newest article. Concurrent calls
// while a load is running are ignored.
func (n *NewsPanel) Load(ctx context.Context) {
	n.mu.Lock()
	if n.state == NewsLoading {
		n.mu.Unlock()
		return
	}
	n.state = NewsLoading
	n.mu.Unlock()

	fyne.Do(func() {
		n.article.Hide()
		n.retryBtn.Hide()
	})
	ticker := progress.StartDotTicker(n.loc.GetText(locale.KeyCheckingNews), progress.DotInterval, n.setStatus)

	var (
		result news.Result
		err    error
	)
	if url := n.feedURL(); url == "" {
		err = errNoFeed
	} else {
		result, err = n.service.Refresh(ctx, url)
	}
	ticker.Stop()

	switch {
	case err != nil:
		n.logger.Warn("news unavailable", zap.Error(err))
		n.setState(NewsFailed)
		n.setStatus(n.loc.GetText(locale.KeyNewsFailed))
		fyne.Do(func() { n.retryBtn.Show() })
		n.raiseAlert(false)
	case result.Feed.IsEmpty():
		n.setState(NewsEmpty)
		n.setStatus(n.loc.GetText(locale.KeyNoNews))
		n.raiseAlert(false)
	default:
		n.setState(NewsReady)
		n.setStatus("")
		n.render(result.Feed)
		n.raiseAlert(result.IsNew)
		n.mu.Lock()
		open := n.open
		n.mu.Unlock()
		if open {
			n.dismiss()
		}
	}
}

// Open is called when the panel becomes visible. An alert raised by the
// last load is dismissed and remembered.
func (n *NewsPanel) Open() {
	n.mu.Lock()
	n.open = true
	n.mu.Unlock()

	n.presence.UpdateDetails(n.loc.GetText(locale.KeyPresenceNews))
	n.dismiss()
}

// Close is called when the panel is hidden
func (n *NewsPanel) Close() {
	n.mu.Lock()
	n.open = false
	n.mu.Unlock()

	n.presence.UpdateDetails(n.loc.GetText(locale.KeyPresenceReady))
}

// IsOpen reports whether the panel is visible
func (n *NewsPanel) IsOpen() bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.open
}

// Next shows the next (older) article, wrapping around
func (n *NewsPanel) Next() {
	n.step(func(f *model.Feed) { f.Next() })
}

// Previous shows the previous (newer) article, wrapping around
func (n *NewsPanel) Previous() {
	n.step(func(f *model.Feed) { f.Previous() })
}

// RefreshTexts re-applies localized labels after a language change
func (n *NewsPanel) RefreshTexts() {
	n.retryBtn.SetText(n.loc.GetText(locale.KeyRetry))
	if feed := n.service.Feed(); feed != nil && n.State() == NewsReady {
		n.render(feed)
	}
}

func (n *NewsPanel) step(move func(*model.Feed)) {
	if n.State() != NewsReady {
		return
	}
	feed := n.service.Feed()
	if feed == nil || feed.IsEmpty() {
		return
	}
	n.mu.Lock()
	move(feed)
	n.mu.Unlock()
	n.render(feed)
}

func (n *NewsPanel) onSwipe(d SwipeDirection) {
	switch d {
	case SwipeLeft:
		n.Next()
	case SwipeRight:
		n.Previous()
	}
}

func (n *NewsPanel) render(feed *model.Feed) {
	n.mu.Lock()
	a := feed.Current()
	position := feed.Position(n.loc.GetText(locale.KeyOf))
	n.mu.Unlock()
	if a == nil {
		return
	}

	title := a.Title
	meta := articleMeta(n.loc, a)
	body := articleText(a.Content)
	fyne.Do(func() {
		n.titleLabel.SetText(title)
		n.metaLabel.SetText(meta)
		n.bodyLabel.SetText(body)
		n.positionLabel.SetText(position)
		n.article.Show()
	})
}

func (n *NewsPanel) openLink() {
	feed := n.service.Feed()
	if feed == nil {
		return
	}
	n.mu.Lock()
	a := feed.Current()
	n.mu.Unlock()
	if a == nil || a.Link == "" {
		return
	}
	if err := platform.OpenURL(a.Link); err != nil {
		n.logger.Warn("failed to open article", zap.String("link", a.Link), zap.Error(err))
	}
}

func (n *NewsPanel) dismiss() {
	if n.service.Dismiss() {
		n.raiseAlert(false)
	}
}

func (n *NewsPanel) raiseAlert(shown bool) {
	if n.onAlert != nil {
		n.onAlert(shown)
	}
}

func (n *NewsPanel) setState(s NewsState) {
	n.mu.Lock()
	n.state = s
	n.mu.Unlock()
}

func (n *NewsPanel) setStatus(text string) {
	fyne.Do(func() {
		n.statusLabel.SetText(text)
	})
}

// articleMeta is "by Author · date"
func articleMeta(loc *locale.Localization, a *model.Article) string {
	parts := make([]string, 0, 2)
	if a.Author != "" {
		parts = append(parts, loc.GetText(locale.KeyBy)+" "+a.Author)
	}
	if a.DisplayDate != "" {
		parts = append(parts, a.DisplayDate)
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// articleText renders article HTML as plain paragraphs
func articleText(content string) string {
	content = lineBreak.ReplaceAllString(content, "\n")
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return content
	}

	var paragraphs []string
	doc.Find("p, li, h1, h2, h3, h4").Each(func(_ int, s *goquery.Selection) {
		if text := strings.TrimSpace(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) == 0 {
		return strings.TrimSpace(doc.Text())
	}
	return strings.Join(paragraphs, "\n\n")
}
