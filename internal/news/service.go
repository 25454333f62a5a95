package news

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/model"
)

// CacheStore persists the news cache record
type CacheStore interface {
	GetNewsCache() model.NewsCache
	SetNewsCache(model.NewsCache)
}

// Result is the outcome of a news refresh
type Result struct {
	Feed  *model.Feed
	IsNew bool
}

// Service loads the feed and tracks the news alert
type Service struct {
	loader *Loader
	store  CacheStore
	logger *zap.Logger

	mu         sync.Mutex
	feed       *model.Feed
	alertShown bool
}

// NewService creates a news service
func NewService(loader *Loader, store CacheStore, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{loader: loader, store: store, logger: logger}
}

// Refresh loads feedURL and updates the persisted cache. A fetch failure is
// returned so the caller can offer a retry.
func (s *Service) Refresh(ctx context.Context, feedURL string) (Result, error) {
	feed, err := s.loader.Load(ctx, feedURL)
	if err != nil {
		s.logger.Warn("failed to load news", zap.String("url", feedURL), zap.Error(err))
		return Result{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.feed = feed

	if feed.IsEmpty() {
		s.store.SetNewsCache(model.NewsCache{})
		s.alertShown = false
		return Result{Feed: feed}, nil
	}

	newest := feed.Latest()
	hash := ContentHash(newest.Content)
	isNew := IsNew(s.store.GetNewsCache(), newest, hash)
	if isNew {
		s.store.SetNewsCache(model.NewNewsCache(newest.Date, hash))
	}
	s.alertShown = isNew

	s.logger.Debug("news loaded", zap.Int("articles", feed.Len()), zap.Bool("new", isNew))
	return Result{Feed: feed, IsNew: isNew}, nil
}

// Feed returns the last loaded feed or nil
func (s *Service) Feed() *model.Feed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feed
}

// AlertShown reports whether the news alert is currently raised
func (s *Service) AlertShown() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alertShown
}

// Dismiss lowers the alert when the news panel is opened and records the
// dismissal. It returns false if no alert was shown.
func (s *Service) Dismiss() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.alertShown {
		return false
	}
	s.alertShown = false
	cache := s.store.GetNewsCache()
	cache.Dismissed = true
	s.store.SetNewsCache(cache)
	return true
}
