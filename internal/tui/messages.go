package tui

import (
	"github.com/agentstation/ultrasearch/pkg/catalog"
	"github.com/agentstation/ultrasearch/pkg/observations"
)

// ViewType identifies which view is active.
type ViewType int

const (
	// ViewTargets lists the unique targets of a catalog.
	ViewTargets ViewType = iota
	// ViewResults lists the runs found around one target.
	ViewResults
)

// SnapshotLoaded carries the current catalog of an instrument.
type SnapshotLoaded struct {
	Snapshot *catalog.Snapshot
	Err      error
}

// SearchCompleted carries the runs found around a target.
type SearchCompleted struct {
	Target  observations.TargetIdentity
	Matches []observations.MatchResult
}
