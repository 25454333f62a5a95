package ui

import (
	"sort"
	"strconv"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/farfania/oblivion-launcher/internal/config"
	"github.com/farfania/oblivion-launcher/internal/locale"
)

// SettingsDialog represents the settings configuration dialog
type SettingsDialog struct {
	settings *config.Settings
	loc      *locale.Localization
	window   fyne.Window
	dialog   *dialog.ConfirmDialog
	onSaved  func()

	// UI components
	javaEntry        *widget.Entry
	dataDirEntry     *widget.Entry
	maxRAMEntry      *widget.Entry
	serverCodesEntry *widget.Entry
	discordCheck     *widget.Check
	consoleCheck     *widget.Check
	languageSelect   *widget.Select
}

// ShowSettingsDialog creates and shows the settings dialog
func ShowSettingsDialog(window fyne.Window, settings *config.Settings, loc *locale.Localization, onSaved func()) *SettingsDialog {
	sd := NewSettingsDialog(settings, loc, window, onSaved)
	sd.Show()
	return sd
}

// NewSettingsDialog creates a new settings dialog
func NewSettingsDialog(settings *config.Settings, loc *locale.Localization, window fyne.Window, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings: settings,
		loc:      loc,
		window:   window,
		onSaved:  onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

// SetOnClosed sets a callback run however the dialog is closed
func (sd *SettingsDialog) SetOnClosed(fn func()) {
	sd.dialog.SetOnClosed(fn)
}

// createUI creates the settings dialog UI
func (sd *SettingsDialog) createUI() {
	sd.javaEntry = widget.NewEntry()
	sd.javaEntry.SetPlaceHolder("java")
	browseJavaBtn := widget.NewButton(sd.loc.GetText(locale.KeyBrowse), sd.onBrowseJava)
	javaRow := container.NewBorder(nil, nil, nil, browseJavaBtn, sd.javaEntry)

	sd.dataDirEntry = widget.NewEntry()
	browseDirBtn := widget.NewButton(sd.loc.GetText(locale.KeyBrowse), sd.onBrowseDirectory)
	dataDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.dataDirEntry)

	sd.maxRAMEntry = widget.NewEntry()
	sd.maxRAMEntry.SetPlaceHolder(strconv.Itoa(config.MinMaxRAM) + "-" + strconv.Itoa(config.MaxMaxRAM))

	sd.serverCodesEntry = widget.NewEntry()
	sd.serverCodesEntry.SetPlaceHolder("code1, code2")

	sd.discordCheck = widget.NewCheck(sd.loc.GetText(locale.KeyDiscordEnabled), nil)
	sd.consoleCheck = widget.NewCheck(sd.loc.GetText(locale.KeyConsoleOnLaunch), nil)

	// Language selection
	languageOptions := []string{}
	for code := range sd.settings.GetLanguageOptions() {
		languageOptions = append(languageOptions, code)
	}
	sort.Strings(languageOptions)
	sd.languageSelect = widget.NewSelect(languageOptions, nil)

	form := container.NewVBox(
		widget.NewLabel(sd.loc.GetText(locale.KeyJavaExecutable)+":"),
		javaRow,

		widget.NewLabel(sd.loc.GetText(locale.KeyMaxRAM)+":"),
		sd.maxRAMEntry,

		widget.NewLabel(sd.loc.GetText(locale.KeyDataDirectory)+":"),
		dataDirRow,

		widget.NewLabel(sd.loc.GetText(locale.KeyServerCodes)+":"),
		sd.serverCodesEntry,

		widget.NewSeparator(),
		sd.discordCheck,
		sd.consoleCheck,

		widget.NewLabel(sd.loc.GetText(locale.KeyLanguage)+":"),
		sd.languageSelect,
	)

	sd.dialog = dialog.NewCustomConfirm(
		sd.loc.GetText(locale.KeySettings),
		sd.loc.GetText(locale.KeySave),
		sd.loc.GetText(locale.KeyCancel),
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(520, 480))
}

// loadCurrentSettings loads current settings into the UI
func (sd *SettingsDialog) loadCurrentSettings() {
	sd.javaEntry.SetText(sd.settings.GetJavaExecutable())
	sd.dataDirEntry.SetText(sd.settings.GetDataDirectory())
	sd.maxRAMEntry.SetText(strconv.Itoa(sd.settings.GetMaxRAM()))
	sd.serverCodesEntry.SetText(strings.Join(sd.settings.GetServerCodes(), ", "))
	sd.discordCheck.SetChecked(sd.settings.GetDiscordIntegration())
	sd.consoleCheck.SetChecked(sd.settings.GetConsoleOnLaunch())
	sd.languageSelect.SetSelected(sd.settings.GetLanguage())
}

func (sd *SettingsDialog) onBrowseJava() {
	dialog.ShowFileOpen(func(rc fyne.URIReadCloser, err error) {
		if err != nil || rc == nil {
			return
		}
		defer rc.Close()
		sd.javaEntry.SetText(rc.URI().Path())
	}, sd.window)
}

// onBrowseDirectory handles directory browsing
func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.dataDirEntry.SetText(uri.Path())
	}, sd.window)
}

// onSave handles saving the settings
func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}

	// Empty clears the executable so the next launch scans the system
	sd.settings.SetJavaExecutable(sd.javaEntry.Text)

	if dir := strings.TrimSpace(sd.dataDirEntry.Text); dir != "" {
		sd.settings.SetDataDirectory(dir)
	}

	if ramStr := strings.TrimSpace(sd.maxRAMEntry.Text); ramStr != "" {
		if ram, err := strconv.Atoi(ramStr); err == nil {
			sd.settings.SetMaxRAM(ram)
		}
	}

	sd.settings.SetServerCodes(strings.Split(sd.serverCodesEntry.Text, ","))
	sd.settings.SetDiscordIntegration(sd.discordCheck.Checked)
	sd.settings.SetConsoleOnLaunch(sd.consoleCheck.Checked)

	if sd.languageSelect.Selected != "" {
		sd.settings.SetLanguage(sd.languageSelect.Selected)
	}

	if sd.onSaved != nil {
		sd.onSaved()
	}

	dialog.ShowInformation(sd.loc.GetText(locale.KeySettings), sd.loc.GetText(locale.KeySettingsSaved), sd.window)
}
