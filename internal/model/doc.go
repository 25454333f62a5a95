package model

// Package model defines domain data structures used across the launcher: launch
// sessions and their states, distribution servers, accounts, news articles and
// the persisted news cache. Structures are designed for direct binding in the UI
// and explicit state transitions.
