package launch

import (
	"context"

	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

// Action is a labelled overlay button
type Action struct {
	Label string
	Run   func()
}

// Overlay is a modal dialog. Dismiss is optional.
type Overlay struct {
	Title       string
	Description string
	Accept      Action
	Dismiss     *Action
}

// View is the set of landing UI sinks driven by a launch. Implementations
// must be safe to call from any goroutine and must not call back into the
// orchestrator synchronously.
type View interface {
	SetDetails(text string)
	SetProgress(value, max int64, percent int)
	SetOSProgress(value float64)
	ToggleLaunchArea(loading bool)
	SetLaunchEnabled(enabled bool)
	SetLastPlayed(text string)
	ShowOverlay(o Overlay)
	HideOverlay()
	ShowServerSelection()
}

// Settings is the user configuration a launch reads and updates
type Settings interface {
	GetSelectedServer() string
	GetSelectedAccount() *model.Account
	GetJavaExecutable() string
	SetJavaExecutable(path string)
	GetDataDirectory() string
	GetCommonDirectory() string
	HasServerCode(code string) bool
}

// DistroSource provides the distribution index
type DistroSource interface {
	Distribution() *model.Distribution
	PullRemoteIfOutdated(ctx context.Context) (*model.Distribution, error)
	IsDevMode() bool
}

// JavaValidator checks a configured Java executable
type JavaValidator interface {
	Validate(ctx context.Context, path string) bool
}

// Worker is a forked helper process speaking the worker protocol
type Worker interface {
	Send(cmd worker.Command) error
	Messages() <-chan worker.Message
	Disconnect()
	Done() <-chan struct{}
	ExitCode() int
}

// Forker starts a worker with role arguments
type Forker func(ctx context.Context, role ...string) (Worker, error)

// GameProcess is a running game
type GameProcess interface {
	Kill() error
	Done() <-chan struct{}
	ExitCode() int
}

// GameRunner builds and starts the game for a validated session
type GameRunner interface {
	Start(s *model.Session, onLine func(line string)) (GameProcess, error)
	CrashReportsDir(serverID string) string
	LatestLog(serverID string) string
}

// Opener reveals files to the user
type Opener interface {
	OpenPath(path string) error
	ShowItemInFolder(path string) error
}
