package ui

import (
	"fmt"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"github.com/farfania/oblivion-launcher/internal/locale"
	"github.com/farfania/oblivion-launcher/internal/model"
	"github.com/farfania/oblivion-launcher/internal/status"
)

// StatusBar shows the selected server population and the Mojang and network
// indicators. Its Set methods are poller sinks and may be called from any
// goroutine.
type StatusBar struct {
	loc    *locale.Localization
	window fyne.Window

	serverLabel *widget.Label
	mojangDot   *canvas.Circle
	mojangBtn   *widget.Button
	networkDot  *canvas.Circle
	networkBtn  *widget.Button
	container   *fyne.Container

	mu      sync.Mutex
	mojang  status.MojangSummary
	network status.NetworkStatus
}

// NewStatusBar creates the status bar with every indicator grey
func NewStatusBar(window fyne.Window, loc *locale.Localization) *StatusBar {
	b := &StatusBar{loc: loc, window: window}

	b.serverLabel = widget.NewLabelWithStyle(serverText(loc, model.ServerStatus{}), fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	b.mojangDot = canvas.NewCircle(statusColor(model.StatusGrey))
	b.networkDot = canvas.NewCircle(statusColor(model.StatusGrey))
	b.mojangBtn = widget.NewButton(loc.GetText(locale.KeyMojangStatus), b.showMojangDetails)
	b.mojangBtn.Importance = widget.LowImportance
	b.networkBtn = widget.NewButton(loc.GetText(locale.KeyNetworkStatus), b.showNetworkDetails)
	b.networkBtn.Importance = widget.LowImportance

	dotSize := fyne.NewSize(StatusDotSize, StatusDotSize)
	b.container = container.NewHBox(
		b.serverLabel,
		widget.NewSeparator(),
		container.NewCenter(container.NewGridWrap(dotSize, b.mojangDot)),
		b.mojangBtn,
		container.NewCenter(container.NewGridWrap(dotSize, b.networkDot)),
		b.networkBtn,
	)
	return b
}

// Container returns the status bar canvas object
func (b *StatusBar) Container() fyne.CanvasObject {
	return b.container
}

// SetServer displays the selected server ping result
func (b *StatusBar) SetServer(st model.ServerStatus) {
	text := serverText(b.loc, st)
	fyne.Do(func() {
		b.serverLabel.SetText(text)
	})
}

// SetMojang displays the Mojang services summary
func (b *StatusBar) SetMojang(summary status.MojangSummary) {
	b.mu.Lock()
	b.mojang = summary
	b.mu.Unlock()

	fill := statusColor(summary.Color)
	fyne.Do(func() {
		b.mojangDot.FillColor = fill
		b.mojangDot.Refresh()
	})
}

// SetNetwork displays the status of every distribution server
func (b *StatusBar) SetNetwork(n status.NetworkStatus) {
	b.mu.Lock()
	b.network = n
	b.mu.Unlock()

	fill := statusColor(n.Color)
	fyne.Do(func() {
		b.networkDot.FillColor = fill
		b.networkDot.Refresh()
	})
}

// RefreshTexts re-applies localized labels after a language change
func (b *StatusBar) RefreshTexts() {
	b.mojangBtn.SetText(b.loc.GetText(locale.KeyMojangStatus))
	b.networkBtn.SetText(b.loc.GetText(locale.KeyNetworkStatus))
}

func (b *StatusBar) showMojangDetails() {
	b.mu.Lock()
	summary := b.mojang
	b.mu.Unlock()
	dialog.ShowInformation(b.loc.GetText(locale.KeyMojangStatus), mojangDetails(b.loc, summary), b.window)
}

func (b *StatusBar) showNetworkDetails() {
	b.mu.Lock()
	n := b.network
	b.mu.Unlock()
	dialog.ShowInformation(b.loc.GetText(locale.KeyNetworkStatus), networkDetails(b.loc, n), b.window)
}

// serverText is "PLAYERS n/max" for an online server, "SERVER OFFLINE" otherwise
func serverText(loc *locale.Localization, st model.ServerStatus) string {
	if !st.Online {
		return loc.GetText(locale.KeyServer) + " " + loc.GetText(locale.KeyOffline)
	}
	return loc.GetText(locale.KeyPlayers) + " " + st.PlayersText("")
}

func mojangDetails(loc *locale.Localization, summary status.MojangSummary) string {
	var b strings.Builder
	writeServices := func(titleKey string, services []model.ServiceStatus) {
		b.WriteString(loc.GetText(titleKey))
		b.WriteString("\n")
		for _, s := range services {
			fmt.Fprintf(&b, "%s %s (%s)\n", IconAlert, s.Name, s.Status)
		}
	}
	writeServices(locale.KeyEssential, summary.Essential)
	b.WriteString("\n")
	writeServices(locale.KeyNonEssential, summary.NonEssential)
	return strings.TrimRight(b.String(), "\n")
}

func networkDetails(loc *locale.Localization, n status.NetworkStatus) string {
	if n.IsEmpty() {
		return loc.GetText(locale.KeyNoServers)
	}
	lines := make([]string, 0, len(n.Servers))
	for _, s := range n.Servers {
		lines = append(lines, s.Name+": "+s.PlayersText(loc.GetText(locale.KeyRestarting)))
	}
	return strings.Join(lines, "\n")
}
