package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
	IconRefresh  = "⟳"
	IconPrevious = "◀"
	IconNext     = "▶"
	IconAlert    = "●"
)

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
)

// Layout sizing
const (
	WindowWidth  float32 = 980
	WindowHeight float32 = 552

	StatusDotSize   float32 = 10
	OverlayWidth    float32 = 460
	ServerListWidth float32 = 420
	ServerListH     float32 = 300
	NewsMinHeight   float32 = 320
	LogoSize        float32 = 48
)

// Swipe detection on the news panel
const (
	SwipeThreshold float32 = 60
)
