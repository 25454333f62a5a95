package ui

import (
	"fmt"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"github.com/farfania/oblivion-launcher/internal/launch"
	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/progress"
)

// ServerSource provides the servers offered in the server selection
type ServerSource interface {
	Distribution() *model.Distribution
}

// ServerSettings is the part of the user settings the server selection uses
type ServerSettings interface {
	GetSelectedServer() string
	SetSelectedServer(id string)
	HasServerCode(code string) bool
}

// Landing is the launch area of the landing page. It implements launch.View;
// every method records the state and applies it on the Fyne thread.
type Landing struct {
	window   fyne.Window
	loc      *locale.Localization
	servers  ServerSource
	settings ServerSettings

	onPlay           func()
	onServerSelected func(*model.Server)

	detailsLabel    *widget.Label
	progressBar     *widget.ProgressBar
	launchBtn       *widget.Button
	serverBtn       *widget.Button
	lastPlayedLabel *widget.Label
	loadingArea     *fyne.Container
	readyArea       *fyne.Container
	container       *fyne.Container

	mu            sync.Mutex
	details       string
	value, max    int64
	percent       int
	osProgress    float64
	loading       bool
	launchEnabled bool
	lastPlayed    string
	overlay       *launch.Overlay

	// Fyne thread only
	popUp    *widget.PopUp
	selector *widget.PopUp
}

var _ launch.View = (*Landing)(nil)

// NewLanding creates the launch area
func NewLanding(window fyne.Window, loc *locale.Localization, servers ServerSource, settings ServerSettings) *Landing {
	l := &Landing{
		window:        window,
		loc:           loc,
		servers:       servers,
		settings:      settings,
		osProgress:    progress.OSProgressNone,
		launchEnabled: true,
	}
	l.createUI()
	return l
}

func (l *Landing) createUI() {
	l.detailsLabel = widget.NewLabel(l.loc.GetText(locale.KeyPleaseWait))
	l.progressBar = widget.NewProgressBar()
	l.progressBar.TextFormatter = func() string {
		l.mu.Lock()
		defer l.mu.Unlock()
		return progress.Label(l.percent)
	}

	l.launchBtn = widget.NewButton(l.loc.GetText(locale.KeyPlay), l.onPlayTapped)
	l.launchBtn.Importance = widget.HighImportance
	l.serverBtn = widget.NewButton(l.loc.GetText(locale.KeyNoServerSelected), l.ShowServerSelection)
	l.serverBtn.Importance = widget.LowImportance
	l.lastPlayedLabel = widget.NewLabel("")

	l.readyArea = container.NewVBox(
		container.NewHBox(l.launchBtn, l.serverBtn),
		l.lastPlayedLabel,
	)
	l.loadingArea = container.NewVBox(l.detailsLabel, l.progressBar)
	l.loadingArea.Hide()

	l.container = container.NewStack(l.readyArea, l.loadingArea)
}

// Container returns the launch area canvas object
func (l *Landing) Container() fyne.CanvasObject {
	return l.container
}

// SetCallbacks sets the play and server selection handlers
func (l *Landing) SetCallbacks(onPlay func(), onServerSelected func(*model.Server)) {
	l.onPlay = onPlay
	l.onServerSelected = onServerSelected
}

func (l *Landing) onPlayTapped() {
	if l.onPlay != nil {
		l.onPlay()
	}
}

// SetDetails implements launch.View
func (l *Landing) SetDetails(text string) {
	l.mu.Lock()
	l.details = text
	l.mu.Unlock()
	fyne.Do(func() { l.detailsLabel.SetText(text) })
}

// SetProgress implements launch.View
func (l *Landing) SetProgress(value, max int64, percent int) {
	l.mu.Lock()
	l.value, l.max, l.percent = value, max, percent
	l.mu.Unlock()

	barMax := float64(max)
	if barMax <= 0 {
		barMax = 1
	}
	fyne.Do(func() {
		l.progressBar.Max = barMax
		l.progressBar.SetValue(float64(value))
	})
}

// SetOSProgress implements launch.View. The window title carries the
// progress since Fyne exposes no taskbar progress.
func (l *Landing) SetOSProgress(value float64) {
	l.mu.Lock()
	l.osProgress = value
	l.mu.Unlock()

	title := osProgressTitle(l.loc.GetText(locale.KeyAppTitle), value)
	fyne.Do(func() { l.window.SetTitle(title) })
}

// ToggleLaunchArea implements launch.View
func (l *Landing) ToggleLaunchArea(loading bool) {
	l.mu.Lock()
	l.loading = loading
	l.mu.Unlock()

	fyne.Do(func() {
		if loading {
			l.readyArea.Hide()
			l.loadingArea.Show()
		} else {
			l.loadingArea.Hide()
			l.readyArea.Show()
		}
	})
}

// SetLaunchEnabled implements launch.View
func (l *Landing) SetLaunchEnabled(enabled bool) {
	l.mu.Lock()
	l.launchEnabled = enabled
	l.mu.Unlock()

	fyne.Do(func() {
		if enabled {
			l.launchBtn.Enable()
		} else {
			l.launchBtn.Disable()
		}
	})
}

// SetLastPlayed implements launch.View
func (l *Landing) SetLastPlayed(text string) {
	l.mu.Lock()
	l.lastPlayed = text
	l.mu.Unlock()
	fyne.Do(func() { l.lastPlayedLabel.SetText(text) })
}

// ShowOverlay implements launch.View. A shown overlay replaces the previous one.
func (l *Landing) ShowOverlay(o launch.Overlay) {
	l.mu.Lock()
	l.overlay = &o
	l.mu.Unlock()

	fyne.Do(func() {
		if l.popUp != nil {
			l.popUp.Hide()
		}
		l.popUp = widget.NewModalPopUp(overlayContent(o), l.window.Canvas())
		l.popUp.Resize(fyne.NewSize(OverlayWidth, l.popUp.MinSize().Height))
		l.popUp.Show()
	})
}

// HideOverlay implements launch.View
func (l *Landing) HideOverlay() {
	l.mu.Lock()
	l.overlay = nil
	l.mu.Unlock()

	fyne.Do(func() {
		if l.popUp != nil {
			l.popUp.Hide()
			l.popUp = nil
		}
	})
}

// ShowServerSelection implements launch.View
func (l *Landing) ShowServerSelection() {
	servers := selectableServers(l.servers.Distribution(), l.settings.HasServerCode)
	fyne.Do(func() {
		l.showSelector(servers)
	})
}

func (l *Landing) showSelector(servers []*model.Server) {
	if l.selector != nil {
		l.selector.Hide()
	}
	list := widget.NewList(
		func() int { return len(servers) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(serverEntryText(servers[id]))
		},
	)
	list.OnSelected = func(id widget.ListItemID) {
		l.SelectServer(servers[id].ID)
		if l.selector != nil {
			l.selector.Hide()
		}
	}

	title := widget.NewLabelWithStyle(l.loc.GetText(locale.KeySelectServer), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	cancel := widget.NewButton(l.loc.GetText(locale.KeyCancel), func() {
		if l.selector != nil {
			l.selector.Hide()
		}
	})
	content := container.NewBorder(title, container.NewCenter(cancel), nil, nil, list)

	l.selector = widget.NewModalPopUp(content, l.window.Canvas())
	l.selector.Resize(fyne.NewSize(ServerListWidth, ServerListH))
	l.selector.Show()
}

// SelectServer stores id as the selected server and updates the server button
func (l *Landing) SelectServer(id string) {
	server := l.servers.Distribution().GetServer(id)
	if server == nil {
		return
	}
	l.settings.SetSelectedServer(server.ID)
	l.SetSelectedServer(server)
	if l.onServerSelected != nil {
		l.onServerSelected(server)
	}
}

// SetSelectedServer shows server on the server button, nil shows the
// no-server text
func (l *Landing) SetSelectedServer(server *model.Server) {
	text := l.loc.GetText(locale.KeyNoServerSelected)
	if server != nil {
		text = IconAlert + " " + server.Name
	}
	fyne.Do(func() { l.serverBtn.SetText(text) })
}

// RefreshTexts re-applies localized labels after a language change
func (l *Landing) RefreshTexts() {
	l.launchBtn.SetText(l.loc.GetText(locale.KeyPlay))
	l.SetSelectedServer(l.servers.Distribution().GetServer(l.settings.GetSelectedServer()))
}

// Details returns the last details text
func (l *Landing) Details() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.details
}

// Progress returns the last progress value, maximum and percent
func (l *Landing) Progress() (value, max int64, percent int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.value, l.max, l.percent
}

// OSProgress returns the last OS progress value
func (l *Landing) OSProgress() float64 {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.osProgress
}

// IsLoading reports whether the progress area is shown
func (l *Landing) IsLoading() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.loading
}

// LaunchEnabled reports whether the play button is enabled
func (l *Landing) LaunchEnabled() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.launchEnabled
}

// LastPlayed returns the last played text
func (l *Landing) LastPlayed() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastPlayed
}

// Overlay returns the overlay on screen, if any
func (l *Landing) Overlay() (launch.Overlay, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.overlay == nil {
		return launch.Overlay{}, false
	}
	return *l.overlay, true
}

func overlayContent(o launch.Overlay) fyne.CanvasObject {
	title := widget.NewLabelWithStyle(o.Title, fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	title.Wrapping = fyne.TextWrapWord
	desc := widget.NewLabel(o.Description)
	desc.Wrapping = fyne.TextWrapWord

	accept := widget.NewButton(o.Accept.Label, o.Accept.Run)
	accept.Importance = widget.HighImportance
	buttons := container.NewHBox(layout.NewSpacer(), accept)
	if o.Dismiss != nil {
		dismiss := widget.NewButton(o.Dismiss.Label, o.Dismiss.Run)
		dismiss.Importance = widget.LowImportance
		buttons.Add(dismiss)
	}
	buttons.Add(layout.NewSpacer())

	return container.NewVBox(title, desc, buttons)
}

// selectableServers lists the servers the user may pick: every public server
// plus the restricted ones whose code was entered
func selectableServers(d *model.Distribution, hasCode func(string) bool) []*model.Server {
	if d == nil {
		return nil
	}
	servers := make([]*model.Server, 0, len(d.Servers))
	for _, s := range d.Servers {
		if s.RequiresCode() && !hasCode(s.ServerCode) {
			continue
		}
		servers = append(servers, s)
	}
	return servers
}

func serverEntryText(s *model.Server) string {
	if s.Description == "" {
		return fmt.Sprintf("%s (%s)", s.Name, s.MinecraftVersion)
	}
	return fmt.Sprintf("%s (%s)%s%s", s.Name, s.MinecraftVersion, MiddleDotSeparator, s.Description)
}

// osProgressTitle is the window title carrying the OS progress value
func osProgressTitle(base string, value float64) string {
	switch {
	case value < 0:
		return base
	case value > 1:
		return base + " " + DashPlaceholder
	default:
		return fmt.Sprintf("%s (%d%%)", base, int(value*100+0.5))
	}
}
