package launch

import (
	"context"

	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/game"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/platform"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

// WorkerForker forks worker processes described by cfg
func WorkerForker(cfg worker.Config) Forker {
	return func(ctx context.Context, role ...string) (Worker, error) {
		p, err := worker.Fork(ctx, cfg, role...)
		if err != nil {
			return nil, err
		}
		return p, nil
	}
}

// gameRunner starts games built from the current game options
type gameRunner struct {
	options func() game.Options
	logger  *zap.Logger
}

// NewGameRunner returns a GameRunner. options is read on every start so
// settings changes apply to the next launch.
func NewGameRunner(options func() game.Options, logger *zap.Logger) GameRunner {
	return &gameRunner{options: options, logger: logger}
}

func (r *gameRunner) builder() *game.Builder {
	return game.NewBuilder(r.options())
}

func (r *gameRunner) Start(s *model.Session, onLine func(string)) (GameProcess, error) {
	cmd, err := r.builder().Build(s)
	if err != nil {
		return nil, err
	}
	p, err := game.Start(cmd, onLine, r.logger)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *gameRunner) CrashReportsDir(serverID string) string {
	return r.builder().CrashReportsDir(serverID)
}

func (r *gameRunner) LatestLog(serverID string) string {
	return r.builder().LatestLog(serverID)
}

// PlatformOpener opens files with the desktop environment
type PlatformOpener struct{}

func (PlatformOpener) OpenPath(path string) error         { return platform.OpenPath(path) }
func (PlatformOpener) ShowItemInFolder(path string) error { return platform.ShowItemInFolder(path) }

// consoleRunner mirrors game output into a console when enabled
type consoleRunner struct {
	GameRunner
	enabled func() bool
	open    func()
	sink    func(line string)
}

// WithConsole wraps runner so that, when enabled reports true at game start,
// open is called and every game line is also handed to sink
func WithConsole(runner GameRunner, enabled func() bool, open func(), sink func(string)) GameRunner {
	return &consoleRunner{GameRunner: runner, enabled: enabled, open: open, sink: sink}
}

func (r *consoleRunner) Start(s *model.Session, onLine func(string)) (GameProcess, error) {
	if !r.enabled() {
		return r.GameRunner.Start(s, onLine)
	}
	r.open()
	return r.GameRunner.Start(s, func(line string) {
		r.sink(line)
		onLine(line)
	})
}
