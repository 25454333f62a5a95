package ui

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/theme"

	"github.com/farfania/oblivion-launcher/internal/model"
)

// LauncherTheme is a dark theme using the status palette for semantic colours
type LauncherTheme struct{}

// NewLauncherTheme creates the launcher theme
func NewLauncherTheme() fyne.Theme {
	return &LauncherTheme{}
}

// Color returns theme colors. The launcher is always dark.
func (t *LauncherTheme) Color(name fyne.ThemeColorName, _ fyne.ThemeVariant) color.Color {
	switch name {
	case theme.ColorNameSuccess:
		return statusColor(model.StatusGreen)
	case theme.ColorNameError:
		return statusColor(model.StatusRed)
	case theme.ColorNameWarning:
		return statusColor(model.StatusYellow)
	case theme.ColorNamePrimary:
		return color.NRGBA{R: 0x7a, G: 0x4f, B: 0xc4, A: 0xff}
	case theme.ColorNameBackground:
		return color.NRGBA{R: 0x14, G: 0x12, B: 0x1c, A: 0xff}
	case theme.ColorNameOverlayBackground:
		return color.NRGBA{R: 0x1e, G: 0x1b, B: 0x2a, A: 0xff}
	case theme.ColorNameForeground:
		return color.NRGBA{R: 0xf2, G: 0xf2, B: 0xf2, A: 0xff}
	}
	return theme.DefaultTheme().Color(name, theme.VariantDark)
}

// Font returns theme fonts
func (t *LauncherTheme) Font(style fyne.TextStyle) fyne.Resource {
	return theme.DefaultTheme().Font(style)
}

// Icon returns theme icons
func (t *LauncherTheme) Icon(name fyne.ThemeIconName) fyne.Resource {
	return theme.DefaultTheme().Icon(name)
}

// Size returns theme sizes, slightly tighter than the default
func (t *LauncherTheme) Size(name fyne.ThemeSizeName) float32 {
	switch name {
	case theme.SizeNamePadding:
		return 3
	case theme.SizeNameInnerPadding:
		return 6
	case theme.SizeNameText:
		return 13
	case theme.SizeNameHeadingText:
		return 20
	case theme.SizeNameCaptionText:
		return 10
	}
	return theme.DefaultTheme().Size(name)
}

// statusColor converts a status value into a drawable colour
func statusColor(c model.StatusColor) color.NRGBA {
	return parseHex(c.Hex())
}

// parseHex parses "#rrggbb". Malformed input yields opaque grey.
func parseHex(s string) color.NRGBA {
	grey := color.NRGBA{R: 0x84, G: 0x84, B: 0x84, A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return grey
	}
	var rgb [3]uint8
	for i := range rgb {
		hi, ok1 := hexNibble(s[1+2*i])
		lo, ok2 := hexNibble(s[2+2*i])
		if !ok1 || !ok2 {
			return grey
		}
		rgb[i] = hi<<4 | lo
	}
	return color.NRGBA{R: rgb[0], G: rgb[1], B: rgb[2], A: 0xff}
}

func hexNibble(c byte) (uint8, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}
