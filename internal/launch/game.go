package launch

import (
	"time"

	"github.com/hako/durafmt"
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
)

// gameRun is the state of one spawned game
type gameRun struct {
	session *model.Session
	proc    GameProcess
	scanner *LogScanner
	watcher *CrashWatcher
	linger  *time.Timer
	exited  bool
}

func (o *Orchestrator) startGame(s *model.Session) {
	o.view.SetDetails(o.loc.GetText(locale.KeyLaunchingGame))
	o.setState(s, model.LaunchStateLaunching)

	run := &gameRun{session: s, scanner: NewLogScanner(s.Account.DisplayName)}
	proc, err := o.game.Start(s, func(line string) {
		o.onGameLine(run, line)
	})
	if err != nil {
		o.suiteLog.Error("error during launch", zap.Error(err))
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, o.loc.GetText(locale.KeyLaunchErrorDesc))
		return
	}
	s.GameStartedAt = time.Now()
	run.proc = proc
	o.run = run
	o.view.SetDetails(o.loc.GetText(locale.KeyReady))

	o.wg.Add(1)
	go o.waitGame(run)
}

func (o *Orchestrator) onGameLine(run *gameRun, line string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	s := run.session
	switch run.scanner.Feed(line) {
	case EventLoaded:
		o.scheduleLoadComplete(run)

	case EventJoined:
		o.presence.UpdateDetails(o.loc.GetText(locale.KeyPresenceJoined))
		o.presence.ResetTime()

	case EventLeft:
		o.presence.UpdateDetails(o.loc.GetText(locale.KeyPresencePlaying))

	case EventLaunchWrapperMissing:
		o.gameLog.Error("game launch failed, LaunchWrapper was not downloaded properly")
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, o.loc.GetText(locale.KeyLaunchWrapperDesc))
		o.kill(run)

	case EventEarlyCrash:
		o.gameLog.Error("game crashed before it could open a window")
		latest := o.game.LatestLog(s.Server.ID)
		s.Fail("early crash")
		o.view.ShowOverlay(Overlay{
			Title:       o.loc.GetText(locale.KeyEarlyCrashTitle),
			Description: o.loc.GetText(locale.KeyEarlyCrashDesc),
			Accept: Action{
				Label: o.loc.GetText(locale.KeyAccept),
				Run:   o.view.HideOverlay,
			},
			Dismiss: &Action{
				Label: o.loc.GetText(locale.KeyOpenLatestLog),
				Run:   func() { o.openPath(latest) },
			},
		})
		o.view.ToggleLaunchArea(false)
		o.view.SetLaunchEnabled(true)
		o.kill(run)
	}
}

func (o *Orchestrator) scheduleLoadComplete(run *gameRun) {
	elapsed := time.Since(run.session.GameStartedAt)
	if elapsed < o.minLinger {
		run.linger = time.AfterFunc(o.minLinger-elapsed, func() {
			o.mu.Lock()
			defer o.mu.Unlock()
			o.onLoadComplete(run)
		})
		return
	}
	o.onLoadComplete(run)
}

func (o *Orchestrator) onLoadComplete(run *gameRun) {
	if run.exited || run.scanner.State().Terminal() {
		return
	}
	s := run.session
	o.setState(s, model.LaunchStateRunning)
	o.view.ToggleLaunchArea(false)
	o.view.SetLaunchEnabled(true)
	o.presence.UpdateDetails(o.loc.GetText(locale.KeyPresencePlaying))
	o.presence.ResetTime()

	dir := o.game.CrashReportsDir(s.Server.ID)
	watcher, err := WatchCrashReports(dir, func(path string) {
		o.onCrashReport(run, path)
	}, o.gameLog)
	if err != nil {
		o.gameLog.Warn("crash reports are not watched", zap.String("dir", dir), zap.Error(err))
		return
	}
	run.watcher = watcher
}

func (o *Orchestrator) onCrashReport(run *gameRun, path string) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if run.exited || run.scanner.CrashReport() != EventCrashed {
		return
	}
	o.setState(run.session, model.LaunchStateCrashed)
	if o.opener != nil {
		if err := o.opener.ShowItemInFolder(path); err != nil {
			o.gameLog.Warn("failed to reveal crash report", zap.Error(err))
		}
	}
	o.view.ShowOverlay(Overlay{
		Title:       o.loc.GetText(locale.KeyCrashTitle),
		Description: o.loc.Format(locale.KeyCrashDesc, path),
		Accept: Action{
			Label: o.loc.GetText(locale.KeyCrashAccept),
			Run:   o.view.HideOverlay,
		},
		Dismiss: &Action{
			Label: o.loc.GetText(locale.KeyOpenCrashReport),
			Run:   func() { o.openPath(path) },
		},
	})
}

func (o *Orchestrator) waitGame(run *gameRun) {
	defer o.wg.Done()
	<-run.proc.Done()

	o.mu.Lock()
	run.exited = true
	if run.linger != nil {
		run.linger.Stop()
	}
	watcher := run.watcher
	run.watcher = nil

	s := run.session
	if s.State == model.LaunchStateLaunching && o.session == s {
		// Exited before it finished loading
		o.view.ToggleLaunchArea(false)
		o.view.SetLaunchEnabled(true)
	}
	if s.State.CanTransition(model.LaunchStateClosed) {
		o.setState(s, model.LaunchStateClosed)
	}
	played := durafmt.Parse(s.PlayTime()).LimitFirstN(2).String()
	o.gameLog.Info("game closed",
		zap.String("session", s.ID),
		zap.Int("code", run.proc.ExitCode()),
		zap.String("played", played))
	// A game killed during a failed startup was never played
	if s.State != model.LaunchStateFailed {
		o.view.SetLastPlayed(o.loc.Format(locale.KeyPlayedFor, played))
	}
	o.presence.UpdateDetails(o.loc.GetText(locale.KeyPresenceReady))
	o.presence.ResetTime()
	if o.run == run {
		o.run = nil
	}
	o.mu.Unlock()

	if err := watcher.Close(); err != nil {
		o.gameLog.Debug("failed to close crash watcher", zap.Error(err))
	}
}

func (o *Orchestrator) kill(run *gameRun) {
	if run.proc == nil {
		return
	}
	if err := run.proc.Kill(); err != nil {
		o.gameLog.Warn("failed to kill game", zap.Error(err))
	}
}

func (o *Orchestrator) openPath(path string) {
	if o.opener == nil {
		return
	}
	if err := o.opener.OpenPath(path); err != nil {
		o.gameLog.Warn("failed to open path", zap.String("path", path), zap.Error(err))
	}
}
