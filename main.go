package main

import (
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"github.com/farfania/oblivion-launcher/internal/config"
	"github.com/farfania/oblivion-launcher/internal/logging"
	"github.com/farfania/oblivion-launcher/internal/platform"
	"github.com/farfania/oblivion-launcher/internal/ui"
)

// Version is set during build via -ldflags "-X main.version=X.Y.Z"
var version = "dev"

const (
	AppID   = "net.farfania.oblivion-launcher"
	AppName = "Oblivion Launcher"
)

func main() {
	launcherDir, err := platform.DefaultLauncherDir()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to resolve launcher dir: %v\n", err)
		os.Exit(1)
	}
	if err := platform.CreateDirectoryIfNotExists(launcherDir); err != nil {
		fmt.Fprintf(os.Stderr, "failed to ensure launcher dir: %v\n", err)
	}

	cfg, err := config.LoadLauncher(launcherDir)
	if err != nil {
		// A broken launcher.toml falls back to the built-in defaults
		fmt.Fprintf(os.Stderr, "failed to load launcher config: %v\n", err)
		cfg = config.DefaultLauncher()
	}

	logger, err := logging.New(cfg.Debug)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	logger.Sugar().Infof("%s v%s starting...", AppName, version)

	// Create new Fyne app
	myApp := app.NewWithID(AppID)
	myApp.Settings().SetTheme(ui.NewLauncherTheme())
	if icon, err := ui.LoadLogoResource(); err == nil {
		myApp.SetIcon(icon)
	}

	// The root UI replaces the title with the localized one
	myWindow := myApp.NewWindow(AppName)
	myWindow.Resize(fyne.NewSize(ui.WindowWidth, ui.WindowHeight))

	l := newLauncher(myApp, myWindow, launcherDir, cfg, logger)
	l.start()

	// Show and run
	myWindow.ShowAndRun()

	l.shutdown()
}
