package catalog

import (
	"sync"
	"time"

	"github.com/agentstation/ultrasearch/pkg/observations"
	"github.com/agentstation/ultrasearch/pkg/search"
	"github.com/agentstation/ultrasearch/pkg/targets"
)

// Snapshot is one fully loaded catalog. It is never modified after
// construction; a reload produces a new Snapshot. Slices returned by its
// methods are shared and must be treated as read-only.
type Snapshot struct {
	Instrument Instrument
	Source     string
	Generation uint64
	LoadedAt   time.Time

	records []observations.ObservationRecord

	resolveOnce sync.Once
	targets     []observations.TargetIdentity
}

// NewSnapshot wraps records loaded from source.
func NewSnapshot(instrument Instrument, source string, generation uint64, records []observations.ObservationRecord) *Snapshot {
	if records == nil {
		records = []observations.ObservationRecord{}
	}
	return &Snapshot{
		Instrument: instrument,
		Source:     source,
		Generation: generation,
		LoadedAt:   time.Now().UTC(),
		records:    records,
	}
}

// Records returns the catalog in file order.
func (s *Snapshot) Records() []observations.ObservationRecord {
	return s.records
}

// Len returns the number of records.
func (s *Snapshot) Len() int {
	return len(s.records)
}

// Targets returns the unique targets, resolving them on first use.
func (s *Snapshot) Targets() []observations.TargetIdentity {
	s.resolveOnce.Do(func() {
		s.targets = targets.Resolve(s.records)
	})
	return s.targets
}

// Search runs a proximity query over the snapshot.
func (s *Snapshot) Search(q observations.Query) []observations.MatchResult {
	return search.Search(s.records, q)
}

// Info summarises a snapshot for listings.
type Info struct {
	Instrument Instrument `json:"instrument" yaml:"instrument"`
	Source     string     `json:"source" yaml:"source"`
	Records    int        `json:"records" yaml:"records"`
	Targets    int        `json:"targets" yaml:"targets"`
	Generation uint64     `json:"generation" yaml:"generation"`
	LoadedAt   time.Time  `json:"loaded_at" yaml:"loaded_at"`
}

// Info returns the snapshot summary.
func (s *Snapshot) Info() Info {
	return Info{
		Instrument: s.Instrument,
		Source:     s.Source,
		Records:    s.Len(),
		Targets:    len(s.Targets()),
		Generation: s.Generation,
		LoadedAt:   s.LoadedAt,
	}
}
