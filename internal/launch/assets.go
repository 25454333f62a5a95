package launch

import (
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/progress"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

// validateStage is the progress shown when a validation stage finished
type validateStage struct {
	percent int
	next    string
}

var validateStages = map[string]validateStage{
	worker.DataDistribution: {20, locale.KeyLoadingVersionInfo},
	worker.DataVersion:      {40, locale.KeyValidatingAssets},
	worker.DataAssets:       {60, locale.KeyValidatingLibs},
	worker.DataLibraries:    {80, locale.KeyValidatingMisc},
	worker.DataFiles:        {100, locale.KeyDownloadingFiles},
}

func (o *Orchestrator) downloadAndLaunch(s *model.Session, login bool) {
	if login && s.Account == nil {
		o.suiteLog.Error("you must be logged into an account")
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, o.loc.GetText(locale.KeyNoAccountSelected))
		return
	}

	o.view.SetDetails(o.loc.GetText(locale.KeyPleaseWait))
	o.view.ToggleLaunchArea(true)
	o.view.SetProgress(0, 100, 0)

	w, err := o.fork(o.ctx, worker.RoleAssetGuard, o.settings.GetCommonDirectory(), s.JavaExecutable)
	if err != nil {
		o.suiteLog.Error("error during launch", zap.Error(err))
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, err.Error())
		return
	}
	o.worker = w
	o.setState(s, model.LaunchStateDistroValidate)
	o.consume(s, w, func(msg worker.Message) {
		o.handleAssetMessage(s, w, msg, login)
	})

	o.validateServerInformation(s, w)
}

func (o *Orchestrator) validateServerInformation(s *model.Session, w Worker) {
	o.view.SetDetails(o.loc.GetText(locale.KeyLoadingServerInfo))
	o.presence.UpdateDetails(o.loc.GetText(locale.KeyPresenceLoading))

	ctx := o.ctx
	o.wg.Add(1)
	go func() {
		defer o.wg.Done()
		d, err := o.distro.PullRemoteIfOutdated(ctx)

		o.mu.Lock()
		defer o.mu.Unlock()
		if o.worker != w || o.session != s {
			return
		}
		if err != nil {
			o.suiteLog.Warn("could not refresh distribution index", zap.Error(err))
		}
		if d == nil {
			o.suiteLog.Error("no distribution index available")
			o.release(w)
			o.showLaunchFailure(s, locale.KeyFatalTitle, o.loc.GetText(locale.KeyFatalDistroDesc))
			return
		}
		if server := d.GetServer(s.Server.ID); server != nil {
			s.Server = server
		}

		cmd := worker.Execute(worker.FuncValidateEverything, s.Server.ID, o.distro.IsDevMode())
		if err := w.Send(cmd); err != nil {
			o.suiteLog.Error("failed to request validation", zap.Error(err))
			o.release(w)
			o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, err.Error())
		}
	}()
}

func (o *Orchestrator) handleAssetMessage(s *model.Session, w Worker, msg worker.Message, login bool) {
	switch m := msg.(type) {
	case worker.Validate:
		stage, ok := validateStages[m.Data]
		if !ok {
			o.suiteLog.Debug("ignoring validation stage", zap.String("data", m.Data))
			return
		}
		o.suiteLog.Info("validated", zap.String("stage", m.Data))
		o.view.SetProgress(int64(stage.percent), 100, stage.percent)
		o.view.SetDetails(o.loc.GetText(stage.next))
		if m.Data == worker.DataFiles {
			o.setState(s, model.LaunchStateAssetDownload)
		}

	case worker.Progress:
		switch m.Data {
		case worker.DataAssets:
			p := progress.AssetPercent(m.Value, m.Total)
			o.view.SetProgress(int64(p), 100, p)
		case worker.DataDownload:
			o.setState(s, model.LaunchStateAssetDownload)
			o.setDownloadPercentage(m, locale.KeyDownloadingFiles)
		case worker.DataExtract:
			o.setState(s, model.LaunchStateExtract)
			o.view.SetOSProgress(progress.OSProgressIndeterminate)
			o.startTicker(locale.KeyExtractingLibs)
		}

	case worker.Complete:
		if m.Data == worker.DataDownload {
			o.view.SetOSProgress(progress.OSProgressNone)
			o.stopTicker()
			o.view.SetDetails(o.loc.GetText(locale.KeyPreparingLaunch))
		}

	case worker.Error:
		if m.Data != worker.DataDownload {
			o.suiteLog.Error("worker error", zap.String("data", m.Data), zap.Any("error", m.Err))
			return
		}
		o.suiteLog.Error("error while downloading", zap.Any("error", m.Err))
		desc := o.loc.GetText(locale.KeyDownloadErrorDesc)
		if m.Err != nil && m.Err.Code == worker.ErrorCodeNotFound {
			desc = o.loc.GetText(locale.KeyDownloadErrorConnDesc)
		}
		o.showLaunchFailure(s, locale.KeyDownloadErrorTitle, desc)
		o.view.SetOSProgress(progress.OSProgressNone)
		o.release(w)

	case worker.ValidateEverything:
		o.onValidated(s, w, m.Result, login)

	default:
		o.suiteLog.Debug("ignoring worker message", zap.String("context", msg.Context()))
	}
}

func (o *Orchestrator) onValidated(s *model.Session, w Worker, result model.ValidationResult, login bool) {
	defer o.release(w)

	if !result.Complete() {
		o.suiteLog.Error("error during validation", zap.ByteString("error", result.Error))
		o.showLaunchFailure(s, locale.KeyLaunchErrorTitle, o.loc.GetText(locale.KeyValidationErrorDesc))
		return
	}
	s.ForgeData = result.ForgeData
	s.VersionData = result.VersionData

	if !login {
		o.suiteLog.Info("validation complete", zap.String("server", s.Server.ID))
		o.reset(s)
		return
	}
	o.startGame(s)
}
