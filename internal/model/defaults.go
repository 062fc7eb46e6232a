package model

import "time"

// Shared defaults used by the CLI and the TUI.
const (
	DefaultStartScreen    = "map"
	DefaultPxPerColumn    = 8.0
	DefaultPxPerRow       = 16.0
	DefaultSwipeThreshold = 100.0
	DefaultRotationPerPx  = 0.1
	DefaultFadeDistance   = 300.0
	DefaultSettleDelay    = 300 * time.Millisecond
	DefaultRearmDelay     = 100 * time.Millisecond
	DefaultNotifyDuration = 3 * time.Second
	DefaultQueryTimeout   = 5 * time.Second
)
