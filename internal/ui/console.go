package ui

import (
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/farfania/oblivion-launcher/internal/locale"
)

// ConsoleMaxLines bounds the game output kept by the console
const ConsoleMaxLines = 500

// Console is a secondary window following the game output
type Console struct {
	app fyne.App
	loc *locale.Localization
	max int

	mu    sync.Mutex
	lines []string

	// Fyne thread only
	window fyne.Window
	text   *widget.Label
	scroll *container.Scroll
}

// NewConsole creates a console. Lines are kept even while the window is closed.
func NewConsole(app fyne.App, loc *locale.Localization) *Console {
	return &Console{app: app, loc: loc, max: ConsoleMaxLines}
}

// Show opens the console window, or focuses it when already open
func (c *Console) Show() {
	fyne.Do(c.show)
}

func (c *Console) show() {
	if c.window != nil {
		c.window.RequestFocus()
		return
	}
	c.text = widget.NewLabelWithStyle(c.Text(), fyne.TextAlignLeading, fyne.TextStyle{Monospace: true})
	c.scroll = container.NewVScroll(c.text)

	w := c.app.NewWindow(c.loc.GetText(locale.KeyAppTitle) + MiddleDotSeparator + "Console")
	w.SetContent(c.scroll)
	w.Resize(fyne.NewSize(WindowWidth*0.8, WindowHeight))
	w.SetOnClosed(func() {
		c.window = nil
		c.text = nil
		c.scroll = nil
	})
	c.window = w
	w.Show()
	c.scroll.ScrollToBottom()
}

// Append adds a game output line. Safe to call from any goroutine.
func (c *Console) Append(line string) {
	c.mu.Lock()
	c.lines = append(c.lines, line)
	if len(c.lines) > c.max {
		c.lines = append(c.lines[:0], c.lines[len(c.lines)-c.max:]...)
	}
	c.mu.Unlock()

	fyne.Do(func() {
		if c.text == nil {
			return
		}
		c.text.SetText(c.Text())
		c.scroll.ScrollToBottom()
	})
}

// Text returns the kept lines joined by newlines
func (c *Console) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return strings.Join(c.lines, "\n")
}

// Clear drops the kept lines
func (c *Console) Clear() {
	c.mu.Lock()
	c.lines = nil
	c.mu.Unlock()

	fyne.Do(func() {
		if c.text != nil {
			c.text.SetText("")
		}
	})
}
