package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

// SwipeDirection is the direction of a completed horizontal drag
type SwipeDirection int

const (
	SwipeNone SwipeDirection = iota
	SwipeLeft
	SwipeRight
)

// SwipeArea wraps content and reports horizontal swipes made with the mouse
// or a touch screen
type SwipeArea struct {
	widget.BaseWidget

	content   fyne.CanvasObject
	onSwipe   func(SwipeDirection)
	threshold float32

	dx, dy float32
}

// NewSwipeArea creates a swipe area around content
func NewSwipeArea(content fyne.CanvasObject, onSwipe func(SwipeDirection)) *SwipeArea {
	s := &SwipeArea{content: content, onSwipe: onSwipe, threshold: SwipeThreshold}
	s.ExtendBaseWidget(s)
	return s
}

// CreateRenderer implements fyne.Widget
func (s *SwipeArea) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.content)
}

// Dragged accumulates the drag distance
func (s *SwipeArea) Dragged(e *fyne.DragEvent) {
	s.dx += e.Dragged.DX
	s.dy += e.Dragged.DY
}

// DragEnd reports the swipe, if any, and resets tracking
func (s *SwipeArea) DragEnd() {
	direction := detectSwipe(s.dx, s.dy, s.threshold)
	s.dx, s.dy = 0, 0
	if direction != SwipeNone && s.onSwipe != nil {
		s.onSwipe(direction)
	}
}

// detectSwipe classifies a drag. Mostly vertical or short drags are not swipes.
func detectSwipe(dx, dy, threshold float32) SwipeDirection {
	absDx := dx
	if absDx < 0 {
		absDx = -absDx
	}
	absDy := dy
	if absDy < 0 {
		absDy = -absDy
	}

	if absDx < threshold || absDx <= absDy {
		return SwipeNone
	}
	if dx > 0 {
		return SwipeRight
	}
	return SwipeLeft
}
