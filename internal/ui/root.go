package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/farfania/oblivion-launcher/internal/config"
	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/news"
	"github.com/farfania/oblivion-launcher/internal/presence"
)

// Callbacks are the landing actions handled outside the UI
type Callbacks struct {
	Play          func()
	Refresh       func()
	OpenInstance  func()
	ServerChanged func(*model.Server)
	SettingsSaved func()
}

// RootUI represents the main UI structure
type RootUI struct {
	window   fyne.Window
	settings *config.Settings
	loc      *locale.Localization
	servers  ServerSource
	presence presence.Presence
	logger   *zap.Logger

	landing   *Landing
	status    *StatusBar
	newsPanel *NewsPanel
	newsBtn   *widget.Button

	refreshBtn  *widget.Button
	folderBtn   *widget.Button
	settingsBtn *widget.Button
	heading     *widget.Label
	home        *fyne.Container
	newsView    *fyne.Container

	callbacks Callbacks
	newsAlert bool
}

// NewRootUI creates and initializes the main UI
func NewRootUI(window fyne.Window, settings *config.Settings, loc *locale.Localization, servers ServerSource, newsSvc *news.Service, p presence.Presence, logger *zap.Logger) *RootUI {
	if logger == nil {
		logger = zap.NewNop()
	}
	if p == nil {
		p = presence.Nop{}
	}

	ui := &RootUI{
		window:   window,
		settings: settings,
		loc:      loc,
		servers:  servers,
		presence: p,
		logger:   logger,
	}

	// Set window title
	window.SetTitle(loc.GetText(locale.KeyAppTitle))

	ui.landing = NewLanding(window, loc, servers, settings)
	ui.status = NewStatusBar(window, loc)
	ui.newsPanel = NewNewsPanel(newsSvc, loc, p, ui.feedURL, logger)
	ui.newsPanel.SetOnAlert(ui.setNewsAlert)

	ui.setupUI()
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.refreshBtn = widget.NewButton(IconRefresh, ui.onRefresh)
	ui.refreshBtn.Importance = widget.LowImportance
	ui.folderBtn = widget.NewButton(IconFolder, ui.onOpenInstance)
	ui.folderBtn.Importance = widget.LowImportance
	ui.settingsBtn = widget.NewButton(IconSettings, ui.onShowSettings)
	ui.settingsBtn.Importance = widget.LowImportance

	var left fyne.CanvasObject = layout.NewSpacer()
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		img.FillMode = canvas.ImageFillContain
		left = img
	}
	topPanel := container.NewHBox(left, layout.NewSpacer(), ui.refreshBtn, ui.folderBtn, ui.settingsBtn)

	ui.heading = widget.NewLabelWithStyle(ui.loc.GetText(locale.KeyAppTitle), fyne.TextAlignCenter, fyne.TextStyle{Bold: true})
	ui.home = container.NewCenter(ui.heading)
	ui.newsView = container.NewPadded(ui.newsPanel.Container())
	ui.newsView.Hide()

	ui.newsBtn = widget.NewButton(ui.newsButtonText(), ui.ToggleNews)
	ui.newsBtn.Importance = widget.LowImportance

	bottom := container.NewVBox(
		container.NewBorder(nil, nil, ui.status.Container(), nil, container.NewHBox(layout.NewSpacer(), ui.landing.Container())),
		container.NewCenter(ui.newsBtn),
	)

	content := container.NewBorder(
		topPanel, // top
		bottom,   // bottom
		nil,      // left
		nil,      // right
		container.NewStack(ui.home, ui.newsView),
	)
	ui.window.SetContent(content)
	ui.window.Canvas().SetOnTypedKey(ui.onTypedKey)

	ui.logger.Debug("UI setup completed")
}

// Landing returns the launch area
func (ui *RootUI) Landing() *Landing {
	return ui.landing
}

// StatusBar returns the status indicators
func (ui *RootUI) StatusBar() *StatusBar {
	return ui.status
}

// News returns the news panel
func (ui *RootUI) News() *NewsPanel {
	return ui.newsPanel
}

// SetCallbacks sets the landing action handlers
func (ui *RootUI) SetCallbacks(cb Callbacks) {
	ui.callbacks = cb
	ui.landing.SetCallbacks(cb.Play, cb.ServerChanged)
}

// ToggleNews shows or hides the news panel
func (ui *RootUI) ToggleNews() {
	if ui.newsPanel.IsOpen() {
		ui.newsView.Hide()
		ui.home.Show()
		ui.newsPanel.Close()
		return
	}
	ui.home.Hide()
	ui.newsView.Show()
	ui.newsPanel.Open()
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem(ui.loc.GetText(locale.KeySettings), ui.onShowSettings)
	refreshItem := fyne.NewMenuItem(ui.loc.GetText(locale.KeyRefresh), ui.onRefresh)
	folderItem := fyne.NewMenuItem(ui.loc.GetText(locale.KeyOpenInstance), ui.onOpenInstance)

	// Language submenu
	languageMenu := fyne.NewMenu(ui.loc.GetText(locale.KeyLanguage))
	for code, name := range ui.loc.GetAvailableLanguages() {
		langCode := code // Capture for closure
		langItem := fyne.NewMenuItem(name, func() {
			ui.onLanguageChange(langCode)
		})
		if ui.loc.GetCurrentLanguage() == code {
			langItem.Checked = true
		}
		languageMenu.Items = append(languageMenu.Items, langItem)
	}

	mainMenu := fyne.NewMainMenu(
		fyne.NewMenu(ui.loc.GetText(locale.KeyAppTitle), refreshItem, folderItem, settingsItem),
		languageMenu,
	)
	ui.window.SetMainMenu(mainMenu)
}

// onLanguageChange handles language change
func (ui *RootUI) onLanguageChange(langCode string) {
	ui.loc.SetLanguage(langCode)
	ui.settings.SetLanguage(langCode)
	ui.refreshUITexts()

	// Recreate menu to update checkmarks
	ui.createMenu()
}

// refreshUITexts updates all UI texts with current language
func (ui *RootUI) refreshUITexts() {
	ui.window.SetTitle(ui.loc.GetText(locale.KeyAppTitle))
	ui.heading.SetText(ui.loc.GetText(locale.KeyAppTitle))
	ui.newsBtn.SetText(ui.newsButtonText())
	ui.landing.RefreshTexts()
	ui.status.RefreshTexts()
	ui.newsPanel.RefreshTexts()
}

func (ui *RootUI) onTypedKey(ev *fyne.KeyEvent) {
	if !ui.newsPanel.IsOpen() {
		return
	}
	switch ev.Name {
	case fyne.KeyLeft:
		ui.newsPanel.Previous()
	case fyne.KeyRight:
		ui.newsPanel.Next()
	case fyne.KeyEscape:
		ui.ToggleNews()
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	ui.presence.UpdateDetails(ui.loc.GetText(locale.KeyPresenceSettings))
	sd := ShowSettingsDialog(ui.window, ui.settings, ui.loc, func() {
		ui.loc.SetLanguage(ui.settings.GetLanguage())
		ui.refreshUITexts()
		ui.createMenu()
		if ui.callbacks.SettingsSaved != nil {
			ui.callbacks.SettingsSaved()
		}
	})
	sd.SetOnClosed(func() {
		ui.presence.UpdateDetails(ui.loc.GetText(locale.KeyPresenceReady))
	})
}

func (ui *RootUI) onRefresh() {
	if ui.callbacks.Refresh != nil {
		go ui.callbacks.Refresh()
	}
}

func (ui *RootUI) onOpenInstance() {
	if ui.callbacks.OpenInstance != nil {
		ui.callbacks.OpenInstance()
	}
}

func (ui *RootUI) feedURL() string {
	if d := ui.servers.Distribution(); d != nil {
		return d.RSS
	}
	return ""
}

// setNewsAlert is called by the news panel from any goroutine
func (ui *RootUI) setNewsAlert(shown bool) {
	fyne.Do(func() {
		ui.newsAlert = shown
		ui.newsBtn.SetText(ui.newsButtonText())
	})
}

func (ui *RootUI) newsButtonText() string {
	text := ui.loc.GetText(locale.KeyNews)
	if ui.newsAlert {
		text += " " + IconAlert
	}
	return text
}
