package ui

// Package ui contains the Fyne-based desktop user interface for the launcher.
// It renders the landing page with its launch area, the server and Mojang
// status indicators, the news panel and the settings. The launch area is the
// sink a launch.Orchestrator drives. All UI strings are localized via locale.
