// Package launch drives a launch from the play button to a running game.
//
// A launch validates Java through a JavaGuard worker, validates and
// downloads the server files through an AssetGuard worker, then spawns the
// game and follows its log. Every state change happens under one lock and
// every failure ends in the same overlay path. A failure never takes the
// launcher down.
package launch

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/logging"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/presence"
	"github.com/farfania/oblivion-launcher/internal/progress"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

// MinLinger is the shortest time the progress area stays up after the game
// was spawned
const MinLinger = 5 * time.Second

var (
	ErrLaunchInProgress = errors.New("a launch is already in progress")
	ErrNoAccount        = errors.New("no account selected")
	ErrNoServer         = errors.New("no server selected")
	ErrRestrictedServer = errors.New("server requires a code the user does not have")
	ErrNoDistribution   = errors.New("distribution index is not loaded")
)

// Deps are the collaborators of an Orchestrator
type Deps struct {
	View     View
	Presence presence.Presence
	Settings Settings
	Distro   DistroSource
	Java     JavaValidator
	Fork     Forker
	Game     GameRunner
	Opener   Opener
	Locale   *locale.Localization
	Logger   *zap.Logger
}

// Orchestrator runs one launch session at a time
type Orchestrator struct {
	view     View
	presence presence.Presence
	settings Settings
	distro   DistroSource
	java     JavaValidator
	fork     Forker
	game     GameRunner
	opener   Opener
	loc      *locale.Localization

	logger    *zap.Logger
	suiteLog  *zap.Logger
	sysLog    *zap.Logger
	gameLog   *zap.Logger
	minLinger time.Duration
	dotEvery  time.Duration

	mu      sync.Mutex
	ctx     context.Context
	session *model.Session
	worker  Worker
	ticker  *progress.DotTicker
	run     *gameRun
	wg      sync.WaitGroup
}

// New creates an orchestrator
func New(d Deps) *Orchestrator {
	logger := d.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	p := d.Presence
	if p == nil {
		p = presence.Nop{}
	}
	loc := d.Locale
	if loc == nil {
		loc = locale.NewLocalization()
	}
	return &Orchestrator{
		view:      d.View,
		presence:  p,
		settings:  d.Settings,
		distro:    d.Distro,
		java:      d.Java,
		fork:      d.Fork,
		game:      d.Game,
		opener:    d.Opener,
		loc:       loc,
		logger:    logging.Component(logger, logging.Landing),
		suiteLog:  logging.Component(logger, logging.LaunchSuite),
		sysLog:    logging.Component(logger, logging.SysAEx),
		gameLog:   logging.Component(logger, logging.Game),
		minLinger: MinLinger,
		dotEvery:  progress.DotInterval,
		ctx:       context.Background(),
	}
}

// State returns the state of the current session, Idle if there is none
func (o *Orchestrator) State() model.LaunchState {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.session == nil {
		return model.LaunchStateIdle
	}
	return o.session.State
}

// Wait blocks until every goroutine started by the orchestrator returned
func (o *Orchestrator) Wait() {
	o.wg.Wait()
}

// Launch starts a session for the selected server. It validates the
// configured Java executable, scanning the system when there is none or it
// is unusable. ctx bounds the workers of the session.
func (o *Orchestrator) Launch(ctx context.Context) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.begin(ctx, true)
	if err != nil {
		return err
	}
	o.logger.Info("launching game", zap.String("session", s.ID), zap.String("server", s.Server.ID))
	o.setState(s, model.LaunchStateJavaCheck)
	o.view.SetLaunchEnabled(false)

	if s.JavaExecutable == "" {
		o.systemScan(s, true)
		return nil
	}

	o.view.SetDetails(o.loc.GetText(locale.KeyPleaseWait))
	o.view.ToggleLaunchArea(true)
	o.view.SetProgress(0, 100, 0)

	javaExe := s.JavaExecutable
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		valid := o.java.Validate(ctx, javaExe)

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.session != s || s.State != model.LaunchStateJavaCheck {
			return
		}
		if valid {
			o.downloadAndLaunch(s, true)
		} else {
			o.logger.Info("configured java is not usable, scanning", zap.String("java", javaExe))
			o.systemScan(s, true)
		}
	}()
	return nil
}

// SystemScan starts a session that only looks for a usable Java, then
// downloads and launches when launchAfter is set
func (o *Orchestrator) SystemScan(ctx context.Context, launchAfter bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.begin(ctx, false)
	if err != nil {
		return err
	}
	o.setState(s, model.LaunchStateJavaCheck)
	o.view.SetLaunchEnabled(false)
	o.systemScan(s, launchAfter)
	return nil
}

// DownloadAndLaunch starts a session that skips the Java check. With login
// unset only the server files are validated and the game is not started.
func (o *Orchestrator) DownloadAndLaunch(ctx context.Context, login bool) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	s, err := o.begin(ctx, false)
	if err != nil {
		return err
	}
	if login && s.Account == nil {
		o.session = nil
		return ErrNoAccount
	}
	o.view.SetLaunchEnabled(false)
	o.downloadAndLaunch(s, login)
	return nil
}

// CheckCurrentServer reports whether the selected server may be launched,
// showing the restricted server overlay when it may not and showOverlay is
// set. Without a selected server it reports false.
func (o *Orchestrator) CheckCurrentServer(showOverlay bool) bool {
	id := o.settings.GetSelectedServer()
	if id == "" {
		return false
	}
	server := o.distro.Distribution().GetServer(id)
	if server == nil {
		return true
	}
	return o.checkServer(server, showOverlay)
}

// Shutdown disconnects the active worker and stops background work. A
// running game is left alone.
func (o *Orchestrator) Shutdown() {
	o.mu.Lock()
	if o.worker != nil {
		o.release(o.worker)
	}
	o.stopTicker()
	var watcher *CrashWatcher
	if o.run != nil {
		watcher = o.run.watcher
		o.run.watcher = nil
	}
	o.mu.Unlock()
	_ = watcher.Close()
}

func (o *Orchestrator) begin(ctx context.Context, checkCode bool) (*model.Session, error) {
	if o.session != nil && o.session.State.IsLaunching() {
		return nil, ErrLaunchInProgress
	}
	d := o.distro.Distribution()
	if d == nil {
		return nil, ErrNoDistribution
	}
	server := d.GetServer(o.settings.GetSelectedServer())
	if server == nil {
		return nil, ErrNoServer
	}
	if checkCode && !o.checkServer(server, true) {
		return nil, ErrRestrictedServer
	}
	if ctx == nil {
		ctx = context.Background()
	}

	s := model.NewSession(server, o.settings.GetSelectedAccount(), o.settings.GetJavaExecutable())
	o.session = s
	o.ctx = ctx
	return s, nil
}

func (o *Orchestrator) checkServer(server *model.Server, showOverlay bool) bool {
	if !server.RequiresCode() || o.settings.HasServerCode(server.ServerCode) {
		return true
	}
	if showOverlay {
		o.view.ShowOverlay(Overlay{
			Title:       o.loc.GetText(locale.KeyRestrictedTitle),
			Description: o.loc.GetText(locale.KeyRestrictedDesc),
			Accept: Action{
				Label: o.loc.GetText(locale.KeyChangeServer),
				Run: func() {
					o.view.HideOverlay()
					o.view.ShowServerSelection()
				},
			},
			Dismiss: &Action{
				Label: o.loc.GetText(locale.KeyCancel),
				Run:   o.view.HideOverlay,
			},
		})
	}
	return false
}

// consume feeds messages of w to handle while w is the active worker. If
// the active worker exits before the launch handed over to the game, with
// any exit code, the launch fails. Workers released by a handler are no
// longer active and end silently.
func (o *Orchestrator) consume(s *model.Session, w Worker, handle func(worker.Message)) {
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		for msg := range w.Messages() {
			o.mu.Lock()
			if o.worker == w && o.session == s {
				handle(msg)
			}
			o.mu.Unlock()
		}
		<-w.Done()

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.worker != w {
			return
		}
		o.worker = nil
		code := w.ExitCode()
		if o.session == s && s.State.IsLaunching() && s.State != model.LaunchStateLaunching {
			o.suiteLog.Error("worker exited unexpectedly", zap.Int("code", code), zap.Stringer("state", s.State))
			o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, o.loc.GetText(locale.KeyLaunchErrorDesc))
		}
	}()
}

// release disconnects w and forgets it if it is the active worker
func (o *Orchestrator) release(w Worker) {
	w.Disconnect()
	if o.worker == w {
		o.worker = nil
	}
}

func (o *Orchestrator) setState(s *model.Session, next model.LaunchState) {
	prev := s.State
	if err := s.SetState(next); err != nil {
		o.logger.Warn("invalid launch transition", zap.String("session", s.ID), zap.Error(err))
		return
	}
	if prev != next {
		o.logger.Debug("launch state changed",
			zap.String("session", s.ID),
			zap.Stringer("from", prev),
			zap.Stringer("to", next))
	}
}

func (o *Orchestrator) startTicker(key string) {
	if o.ticker != nil {
		return
	}
	o.ticker = progress.StartDotTicker(o.loc.GetText(key), o.dotEvery, o.view.SetDetails)
}

func (o *Orchestrator) stopTicker() {
	o.ticker.Stop()
	o.ticker = nil
}

// setDownloadPercentage shows download progress with the amount received
// under the label of labelKey, e.g. "Downloading files.. (12 MB / 80 MB)"
func (o *Orchestrator) setDownloadPercentage(p worker.Progress, labelKey string) {
	percent := p.Percent
	if percent == 0 && p.Total > 0 {
		percent = progress.Percent(p.Value, p.Total)
	}
	o.view.SetOSProgress(progress.Fraction(p.Value, p.Total))
	o.view.SetProgress(p.Value, p.Total, percent)
	if p.Total > 0 {
		o.view.SetDetails(downloadDetails(o.loc.GetText(labelKey), p.Value, p.Total))
	}
	o.presence.UpdateDetails(o.loc.Format(locale.KeyPresenceDownloading, strconv.Itoa(percent)))
}

func downloadDetails(label string, value, total int64) string {
	return fmt.Sprintf("%s (%s)", label, progress.Bytes(value, total))
}

// reset returns the landing view to its idle look and ends s
func (o *Orchestrator) reset(s *model.Session) {
	o.stopTicker()
	o.view.ToggleLaunchArea(false)
	o.view.SetLaunchEnabled(true)
	o.setState(s, model.LaunchStateIdle)
}

// showLaunchFailure is the single failure path of a session
func (o *Orchestrator) showLaunchFailure(s *model.Session, titleKey, desc string) {
	o.stopTicker()
	s.Fail(desc)
	o.suiteLog.Warn("launch failed", zap.String("session", s.ID), zap.String("reason", desc))

	o.view.ShowOverlay(Overlay{
		Title:       o.loc.GetText(titleKey),
		Description: desc,
		Accept: Action{
			Label: o.loc.GetText(locale.KeyOkay),
			Run:   o.view.HideOverlay,
		},
	})
	o.view.ToggleLaunchArea(false)
	o.view.SetLaunchEnabled(true)
}
