package launch

import (
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/progress"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

// managedJavaQueue is the worker download queue of a managed Java runtime
var managedJavaQueue = []worker.DownloadQueue{{ID: "java", Limit: 1}}

func (o *Orchestrator) systemScan(s *model.Session, launchAfter bool) {
	o.view.SetDetails(o.loc.GetText(locale.KeyCheckingSystem))
	o.view.ToggleLaunchArea(true)
	o.view.SetProgress(0, 100, 0)

	w, err := o.fork(o.ctx, worker.RoleJavaGuard, s.Server.MinecraftVersion)
	if err != nil {
		o.sysLog.Error("failed to start java scan", zap.Error(err))
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, err.Error())
		return
	}
	o.worker = w
	o.consume(s, w, func(msg worker.Message) {
		o.handleScanMessage(s, w, msg, launchAfter)
	})

	if err := w.Send(worker.Execute(worker.FuncValidateJava, o.settings.GetDataDirectory())); err != nil {
		o.sysLog.Error("failed to request java scan", zap.Error(err))
		o.release(w)
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, err.Error())
	}
}

func (o *Orchestrator) handleScanMessage(s *model.Session, w Worker, msg worker.Message, launchAfter bool) {
	switch m := msg.(type) {
	case worker.ValidateJava:
		if m.Result == nil {
			o.sysLog.Info("no compatible java found")
			o.showNoJava(s, w, launchAfter)
			return
		}
		o.sysLog.Info("java found", zap.String("path", *m.Result))
		o.settings.SetJavaExecutable(*m.Result)
		s.JavaExecutable = *m.Result
		o.release(w)
		o.afterScan(s, launchAfter)

	case worker.EnqueueOpenJDK:
		if m.Result {
			o.setState(s, model.LaunchStateJavaInstall)
			o.view.SetDetails(o.loc.GetText(locale.KeyDownloadingJava))
			if err := w.Send(worker.Execute(worker.FuncProcessDlQueues, managedJavaQueue)); err != nil {
				o.release(w)
				o.showLaunchFailure(s, locale.KeyJavaDownloadFailTitle, err.Error())
			}
			return
		}
		o.release(w)
		o.view.ShowOverlay(Overlay{
			Title:       o.loc.GetText(locale.KeyJavaDownloadFailTitle),
			Description: o.loc.GetText(locale.KeyJavaDownloadFailDesc),
			Accept: Action{
				Label: o.loc.GetText(locale.KeyUnderstood),
				Run: func() {
					o.mu.Lock()
					defer o.mu.Unlock()
					o.view.HideOverlay()
					if o.session == s {
						o.reset(s)
					}
				},
			},
		})

	case worker.Progress:
		if m.Data == worker.DataDownload {
			o.setDownloadPercentage(m, locale.KeyDownloadingJava)
		}

	case worker.Complete:
		switch m.Data {
		case worker.DataDownload:
			o.view.SetOSProgress(progress.OSProgressIndeterminate)
			o.setState(s, model.LaunchStateExtract)
			o.startTicker(locale.KeyExtracting)
		case worker.DataJava:
			o.view.SetOSProgress(progress.OSProgressNone)
			if len(m.Args) > 0 && m.Args[0] != "" {
				o.settings.SetJavaExecutable(m.Args[0])
				s.JavaExecutable = m.Args[0]
			} else {
				o.sysLog.Warn("java install reported no executable")
			}
			o.stopTicker()
			o.view.SetDetails(o.loc.GetText(locale.KeyJavaInstalled))
			o.release(w)
			o.afterScan(s, launchAfter)
		}

	case worker.Error:
		o.sysLog.Error("java scan error", zap.String("data", m.Data), zap.Any("error", m.Err))

	default:
		o.sysLog.Debug("ignoring worker message", zap.String("context", msg.Context()))
	}
}

func (o *Orchestrator) afterScan(s *model.Session, launchAfter bool) {
	if launchAfter {
		o.downloadAndLaunch(s, true)
		return
	}
	o.reset(s)
}

func (o *Orchestrator) showNoJava(s *model.Session, w Worker, launchAfter bool) {
	o.view.ShowOverlay(Overlay{
		Title:       o.loc.GetText(locale.KeyNoJavaTitle),
		Description: o.loc.Format(locale.KeyNoJavaDesc, s.Server.RequiredJavaMajor()),
		Accept: Action{
			Label: o.loc.GetText(locale.KeyInstallJava),
			Run: func() {
				o.mu.Lock()
				defer o.mu.Unlock()
				o.view.HideOverlay()
				if o.worker != w {
					return
				}
				o.installJava(s, w)
			},
		},
		Dismiss: &Action{
			Label: o.loc.GetText(locale.KeyInstallManually),
			Run: func() {
				o.mu.Lock()
				defer o.mu.Unlock()
				o.showJavaRequired(s, w, launchAfter)
			},
		},
	})
}

func (o *Orchestrator) showJavaRequired(s *model.Session, w Worker, launchAfter bool) {
	o.view.ShowOverlay(Overlay{
		Title:       o.loc.GetText(locale.KeyJavaRequiredTitle),
		Description: o.loc.GetText(locale.KeyJavaRequiredDesc),
		Accept: Action{
			Label: o.loc.GetText(locale.KeyUnderstood),
			Run: func() {
				o.mu.Lock()
				defer o.mu.Unlock()
				o.view.HideOverlay()
				o.release(w)
				if o.session == s {
					o.reset(s)
				}
			},
		},
		Dismiss: &Action{
			Label: o.loc.GetText(locale.KeyGoBack),
			Run: func() {
				o.mu.Lock()
				defer o.mu.Unlock()
				o.view.HideOverlay()
				o.release(w)
				if o.session == s && s.State == model.LaunchStateJavaCheck {
					o.systemScan(s, launchAfter)
				}
			},
		},
	})
}

func (o *Orchestrator) installJava(s *model.Session, w Worker) {
	o.view.SetDetails(o.loc.GetText(locale.KeyPreparingJava))
	cmds := []worker.Command{
		worker.ChangeContext(worker.RoleAssetGuard, o.settings.GetCommonDirectory(), o.settings.GetJavaExecutable()),
		worker.Execute(worker.FuncEnqueueOpenJDK, o.settings.GetDataDirectory()),
	}
	for _, cmd := range cmds {
		if err := w.Send(cmd); err != nil {
			o.sysLog.Error("failed to request java install", zap.Error(err))
			o.release(w)
			o.showLaunchFailure(s, locale.KeyJavaDownloadFailTitle, err.Error())
			return
		}
	}
}
