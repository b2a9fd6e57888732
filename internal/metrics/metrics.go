package metrics

import (
	"sync"
	"time"
)

type operationStats struct {
	calls       int
	errors      int
	lastLatency time.Duration
}

// Recorder captures lightweight, in-memory metrics about league operations and
// snapshot saves, and forwards them to OpenTelemetry when configured.
type Recorder struct {
	mu         sync.Mutex
	operations map[string]*operationStats
	snapshots  map[string]*operationStats
	issues     int
	otel       *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		operations: make(map[string]*operationStats),
		snapshots:  make(map[string]*operationStats),
		otel:       otel,
	}
}

// RecordOperation counts a league operation (add_team, add_match, ...) and whether it was rejected.
func (r *Recorder) RecordOperation(operation string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.track(r.operations, operation, duration, err)
	if r.otel != nil {
		r.otel.recordOperation(operation, duration, err)
	}
}

// RecordSnapshot counts a snapshot save against the given backend.
func (r *Recorder) RecordSnapshot(backend string, duration time.Duration, err error) {
	if r == nil {
		return
	}
	r.track(r.snapshots, backend, duration, err)
	if r.otel != nil {
		r.otel.recordSnapshot(backend, duration, err)
	}
}

// RecordConsistencyIssues stores the size of the latest consistency report.
func (r *Recorder) RecordConsistencyIssues(count int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.issues = count
	r.mu.Unlock()
	if r.otel != nil {
		r.otel.recordIssues(count)
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// Snapshot returns a copy of the current stats for an operation or backend.
type Snapshot struct {
	Calls       int
	Errors      int
	LastLatency time.Duration
}

// Operation returns the stats recorded for a league operation.
func (r *Recorder) Operation(operation string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.operations, operation)
}

// SnapshotSaves returns the stats recorded for a snapshot backend.
func (r *Recorder) SnapshotSaves(backend string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	return r.snapshot(r.snapshots, backend)
}

// ConsistencyIssues returns the size of the latest consistency report.
func (r *Recorder) ConsistencyIssues() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.issues
}

func (r *Recorder) track(table map[string]*operationStats, key string, duration time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := table[key]
	if !ok {
		stats = &operationStats{}
		table[key] = stats
	}
	stats.calls++
	stats.lastLatency = duration
	if err != nil {
		stats.errors++
	}
}

func (r *Recorder) snapshot(table map[string]*operationStats, key string) Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	if stats, ok := table[key]; ok && stats != nil {
		return Snapshot{Calls: stats.calls, Errors: stats.errors, LastLatency: stats.lastLatency}
	}
	return Snapshot{}
}
