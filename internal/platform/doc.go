package platform

// Package platform wraps OS integration used by the launcher: opening paths
// and URLs, revealing files in the file manager and default directories.
