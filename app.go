package main

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/config"
	"github.com/farfania/oblivion-launcher/internal/distro"
	"github.com/farfania/oblivion-launcher/internal/game"
	"github.com/farfania/oblivion-launcher/internal/launch"
	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/logging"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/news"
	"github.com/farfania/oblivion-launcher/internal/platform"
	"github.com/farfania/oblivion-launcher/internal/presence"
	"github.com/farfania/oblivion-launcher/internal/status"
	"github.com/farfania/oblivion-launcher/internal/ui"
	"github.com/farfania/oblivion-launcher/internal/worker"
)

// launcher owns the services behind the landing window
type launcher struct {
	app      fyne.App
	window   fyne.Window
	cfg      config.Launcher
	base     *zap.Logger
	logger   *zap.Logger
	settings *config.Settings
	loc      *locale.Localization

	distro   *distro.Manager
	presence *presence.Switch
	root     *ui.RootUI
	console  *ui.Console
	orch     *launch.Orchestrator

	serverPoller  *status.Poller[model.ServerStatus]
	mojangPoller  *status.Poller[status.MojangSummary]
	networkPoller *status.Poller[status.NetworkStatus]

	ctx    context.Context
	cancel context.CancelFunc
	once   sync.Once
}

func newLauncher(app fyne.App, window fyne.Window, launcherDir string, cfg config.Launcher, logger *zap.Logger) *launcher {
	ctx, cancel := context.WithCancel(context.Background())
	l := &launcher{
		app:    app,
		window: window,
		cfg:    cfg,
		base:   logger,
		logger: logging.Component(logger, logging.Landing),
		ctx:    ctx,
		cancel: cancel,
	}

	l.settings = config.NewSettings(app, launcherDir)
	l.loc = locale.NewLocalization()
	l.loc.SetLanguage(l.settings.GetLanguage())

	for _, dir := range []string{l.settings.GetDataDirectory(), l.settings.GetCommonDirectory(), l.settings.GetInstanceDirectory()} {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			l.logger.Warn("failed to ensure data dir", zap.String("dir", dir), zap.Error(err))
		}
	}

	l.distro = distro.NewManager(launcherDir,
		distro.WithURL(cfg.DistributionURL),
		distro.WithDevMode(cfg.DevMode),
		distro.WithLogger(logger),
	)
	l.presence = presence.NewSwitch(presence.Nop{})

	newsSvc := news.NewService(news.NewLoader(nil, cfg.NewsTimeout()), l.settings, logger)
	l.root = ui.NewRootUI(window, l.settings, l.loc, l.distro, newsSvc, l.presence, logger)
	l.console = ui.NewConsole(app, l.loc)

	runner := launch.NewGameRunner(l.gameOptions, logger)
	l.orch = launch.New(launch.Deps{
		View:     l.root.Landing(),
		Presence: l.presence,
		Settings: l.settings,
		Distro:   l.distro,
		Java:     game.JavaProbe{Timeout: game.DefaultProbeTimeout},
		Fork: launch.WorkerForker(worker.Config{
			Command:     cfg.WorkerCommand,
			Args:        cfg.WorkerArgs,
			Dir:         launcherDir,
			LauncherDir: launcherDir,
			Channel:     worker.DefaultChannel(),
			Logger:      logger,
		}),
		Game:   launch.WithConsole(runner, l.settings.GetConsoleOnLaunch, l.console.Show, l.console.Append),
		Opener: launch.PlatformOpener{},
		Locale: l.loc,
		Logger: logger,
	})

	l.setupPollers()
	l.root.SetCallbacks(ui.Callbacks{
		Play:          l.onPlay,
		Refresh:       l.onRefresh,
		OpenInstance:  l.onOpenInstance,
		ServerChanged: l.onServerChanged,
		SettingsSaved: l.onSettingsSaved,
	})
	return l
}

func (l *launcher) setupPollers() {
	statusLog := logging.Component(l.base, logging.Status)
	pinger := status.NewSLPPinger(0)
	bar := l.root.StatusBar()

	l.serverPoller = status.NewPoller("server", l.cfg.ServerInterval(),
		status.ServerFetcher(pinger, l.selectedServer),
		bar.SetServer, model.ServerStatus{}, statusLog)

	l.mojangPoller = status.NewPoller("mojang", l.cfg.MojangInterval(),
		status.MojangFetcher(status.NewMojangClient(l.cfg.MojangStatusURL, nil)),
		bar.SetMojang, status.MojangSummary{Color: model.StatusGrey}, statusLog)

	network := status.NewNetwork(pinger, l.cfg.PingConcurrency, statusLog)
	l.networkPoller = status.NewPoller("network", l.cfg.NetworkInterval(),
		status.NetworkFetcher(network, l.networkServers),
		bar.SetNetwork, status.NetworkStatus{Color: model.StatusGrey}, statusLog)
}

// start loads the distribution in the background and brings the landing up
func (l *launcher) start() {
	l.mojangPoller.Start(l.ctx)

	go func() {
		dist, err := l.distro.PullRemoteIfOutdated(l.ctx)
		if dist == nil {
			l.logger.Error("no distribution available", zap.Error(err))
			l.showFatal()
			return
		}
		if err != nil {
			l.logger.Warn("using cached distribution", zap.Error(err))
		}
		l.onDistribution(dist)
	}()
}

func (l *launcher) onDistribution(dist *model.Distribution) {
	server := dist.GetServer(l.settings.GetSelectedServer())
	if server == nil {
		server = dist.MainServer()
		if server != nil {
			l.settings.SetSelectedServer(server.ID)
		}
	}
	l.root.Landing().SetSelectedServer(server)
	l.orch.CheckCurrentServer(true)

	l.connectPresence(dist, server)

	l.serverPoller.Start(l.ctx)
	l.networkPoller.Start(l.ctx)
	go l.root.News().Load(l.ctx)
}

// connectPresence opens a Discord session when enabled and configured, and
// drops it otherwise
func (l *launcher) connectPresence(dist *model.Distribution, server *model.Server) {
	if !l.settings.GetDiscordIntegration() || l.cfg.DiscordToken == "" || dist == nil || dist.Discord == nil {
		l.presence.Set(nil)
		return
	}
	activity := presence.Activity{
		Details: l.loc.GetText(locale.KeyPresenceReady),
		Meta:    dist.Discord,
	}
	if server != nil {
		activity.State = l.loc.Format(locale.KeyPresenceState, server.Name)
	}
	d, err := presence.Connect(l.cfg.DiscordToken, activity, logging.Component(l.base, logging.Presence))
	if err != nil {
		l.logger.Warn("discord presence unavailable", zap.Error(err))
		l.presence.Set(nil)
		return
	}
	l.presence.Set(d)
}

func (l *launcher) showFatal() {
	landing := l.root.Landing()
	landing.ShowOverlay(launch.Overlay{
		Title:       l.loc.GetText(locale.KeyFatalTitle),
		Description: l.loc.GetText(locale.KeyFatalDistroDesc),
		Accept: launch.Action{
			Label: l.loc.GetText(locale.KeyOkay),
			Run:   func() { fyne.Do(l.app.Quit) },
		},
	})
}

func (l *launcher) selectedServer() *model.Server {
	return l.distro.Distribution().GetServer(l.settings.GetSelectedServer())
}

func (l *launcher) networkServers() ([]*model.Server, error) {
	dist := l.distro.Distribution()
	if dist == nil {
		return nil, distro.ErrNoDistribution
	}
	return dist.Servers, nil
}

func (l *launcher) gameOptions() game.Options {
	return game.Options{
		JavaExecutable: l.settings.GetJavaExecutable(),
		CommonDir:      l.settings.GetCommonDirectory(),
		InstanceDir:    l.settings.GetInstanceDirectory(),
		MaxRAM:         l.settings.GetMaxRAM(),
	}
}

func (l *launcher) onPlay() {
	go func() {
		if err := l.orch.Launch(l.ctx); err != nil {
			l.logger.Info("launch not started", zap.Error(err))
		}
	}()
}

// onRefresh runs off the UI thread
func (l *launcher) onRefresh() {
	landing := l.root.Landing()
	dist, err := l.distro.PullRemote(l.ctx)
	if err != nil || dist == nil {
		l.logger.Warn("distribution refresh failed", zap.Error(err))
		desc := l.loc.Format(locale.KeyRefreshFailDesc, errorText(err))
		landing.ShowOverlay(launch.Overlay{
			Title:       l.loc.GetText(locale.KeyRefreshFailTitle),
			Description: desc,
			Accept:      launch.Action{Label: l.loc.GetText(locale.KeyOkay), Run: landing.HideOverlay},
		})
		return
	}

	landing.SetSelectedServer(dist.GetServer(l.settings.GetSelectedServer()))
	l.serverPoller.Trigger()
	l.networkPoller.Trigger()
	landing.ShowOverlay(launch.Overlay{
		Title:       l.loc.GetText(locale.KeyRefreshedTitle),
		Description: l.loc.GetText(locale.KeyRefreshedDesc),
		Accept:      launch.Action{Label: l.loc.GetText(locale.KeyOkay), Run: landing.HideOverlay},
	})
}

func (l *launcher) onOpenInstance() {
	candidates := []string{l.settings.GetInstanceDirectory(), l.settings.GetDataDirectory()}
	if server := l.selectedServer(); server != nil {
		candidates = append([]string{game.NewBuilder(l.gameOptions()).GameDir(server.ID)}, candidates...)
	}
	target := platform.FirstExisting(candidates...)
	if target == "" {
		return
	}
	if err := platform.OpenPath(target); err != nil {
		l.logger.Warn("failed to open instance directory", zap.String("path", target), zap.Error(err))
	}
}

func (l *launcher) onServerChanged(server *model.Server) {
	l.serverPoller.Trigger()
	if server != nil {
		l.presence.UpdateState(l.loc.Format(locale.KeyPresenceState, server.Name))
	}
}

func (l *launcher) onSettingsSaved() {
	go l.connectPresence(l.distro.Distribution(), l.selectedServer())
}

// shutdown stops background work once the window closed
func (l *launcher) shutdown() {
	l.once.Do(func() {
		l.cancel()
		l.serverPoller.Stop()
		l.mojangPoller.Stop()
		l.networkPoller.Stop()
		l.orch.Shutdown()
		if err := l.presence.Close(); err != nil {
			l.logger.Debug("presence close", zap.Error(err))
		}
	})
}

func errorText(err error) string {
	if err == nil {
		return distro.ErrNoDistribution.Error()
	}
	return err.Error()
}
