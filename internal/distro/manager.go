// Package distro fetches the distribution index describing the servers the
// launcher can play, keeping a copy on disk for offline starts.
package distro

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/farfania/oblivion-launcher/internal/jsonx"
	"github.com/farfania/oblivion-launcher/internal/model"
	"go.uber.org/zap"
)

const (
	// CacheFileName is the on-disk copy of the last fetched index
	CacheFileName = "distribution.json"
	// DevFileName is read instead of the remote index in dev mode
	DevFileName = "distribution_dev.json"

	defaultTTL     = 10 * time.Minute
	defaultTimeout = 15 * time.Second
)

// ErrNoDistribution is returned when neither a remote nor a cached index is available
var ErrNoDistribution = errors.New("distribution index unavailable")

// HTTPClient is the minimal HTTP client the manager needs
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Manager
type Option func(*Manager)

// WithURL sets the remote index address
func WithURL(url string) Option {
	return func(m *Manager) {
		if url != "" {
			m.url = url
		}
	}
}

// WithHTTPClient sets the HTTP client
func WithHTTPClient(h HTTPClient) Option {
	return func(m *Manager) {
		if h != nil {
			m.httpClient = h
		}
	}
}

// WithTTL sets how long a fetched index counts as fresh
func WithTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.ttl = ttl
		}
	}
}

// WithDevMode reads the index from DevFileName instead of the network
func WithDevMode(dev bool) Option {
	return func(m *Manager) {
		m.devMode = dev
	}
}

// WithLogger sets the logger
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// Manager owns the current distribution index
type Manager struct {
	url        string
	dir        string
	httpClient HTTPClient
	ttl        time.Duration
	devMode    bool
	logger     *zap.Logger

	mu        sync.RWMutex
	current   *model.Distribution
	fetchedAt time.Time
}

// NewManager creates a manager caching the index in dir
func NewManager(dir string, opts ...Option) *Manager {
	m := &Manager{
		dir:        dir,
		httpClient: &http.Client{Timeout: defaultTimeout},
		ttl:        defaultTTL,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Distribution returns the current index, nil before the first successful load
func (m *Manager) Distribution() *model.Distribution {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// IsDevMode reports whether the index is read from the local dev file
func (m *Manager) IsDevMode() bool {
	return m.devMode
}

// PullRemote fetches the index and replaces the current one on success
func (m *Manager) PullRemote(ctx context.Context) (*model.Distribution, error) {
	var (
		data []byte
		err  error
	)
	if m.devMode {
		data, err = os.ReadFile(filepath.Join(m.dir, DevFileName))
		if err != nil {
			return nil, fmt.Errorf("distro: read dev index: %w", err)
		}
	} else {
		data, err = m.fetch(ctx)
		if err != nil {
			return nil, err
		}
	}

	distribution, err := parse(data)
	if err != nil {
		return nil, err
	}

	if !m.devMode {
		if err := m.writeCache(data); err != nil {
			m.logger.Warn("failed to write distribution cache", zap.Error(err))
		}
	}

	m.mu.Lock()
	m.current = distribution
	m.fetchedAt = time.Now()
	m.mu.Unlock()

	m.logger.Info("distribution index loaded",
		zap.String("version", distribution.Version),
		zap.Int("servers", len(distribution.Servers)))
	return distribution, nil
}

// PullRemoteIfOutdated returns the current index when it is still fresh,
// otherwise pulls it again. When the pull fails the on-disk copy is loaded
// if nothing is in memory yet, and the pull error is returned either way.
func (m *Manager) PullRemoteIfOutdated(ctx context.Context) (*model.Distribution, error) {
	m.mu.RLock()
	current, fetchedAt := m.current, m.fetchedAt
	m.mu.RUnlock()

	if current != nil && !fetchedAt.IsZero() && time.Since(fetchedAt) < m.ttl {
		return current, nil
	}

	distribution, err := m.PullRemote(ctx)
	if err == nil {
		return distribution, nil
	}

	if m.Distribution() == nil {
		if _, localErr := m.PullLocal(); localErr != nil {
			m.logger.Warn("no cached distribution index", zap.Error(localErr))
		}
	}
	return m.Distribution(), err
}

// PullLocal loads the on-disk copy of the index
func (m *Manager) PullLocal() (*model.Distribution, error) {
	data, err := os.ReadFile(filepath.Join(m.dir, CacheFileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoDistribution
		}
		return nil, fmt.Errorf("distro: read cache: %w", err)
	}
	distribution, err := parse(data)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.current = distribution
	m.mu.Unlock()
	return distribution, nil
}

func (m *Manager) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, m.url, nil)
	if err != nil {
		return nil, fmt.Errorf("distro: build request: %w", err)
	}

	resp, err := m.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("distro: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("distro: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("distro: read body: %w", err)
	}
	return body, nil
}

func (m *Manager) writeCache(data []byte) error {
	if err := os.MkdirAll(m.dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(m.dir, "distribution-*.tmp")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), filepath.Join(m.dir, CacheFileName))
}

func parse(data []byte) (*model.Distribution, error) {
	var distribution model.Distribution
	if err := jsonx.Unmarshal(data, &distribution); err != nil {
		return nil, fmt.Errorf("distro: decode index: %w", err)
	}
	return &distribution, nil
}
