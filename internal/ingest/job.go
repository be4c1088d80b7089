package ingest

import (
	"context"
	"sync"
	"time"
)

// Kind is the submission kind of a job, fixed at creation.
type Kind string

const (
	KindFile       Kind = "file"
	KindFolder     Kind = "folder"
	KindSources    Kind = "structured-sources"
	KindRepository Kind = "repository"
)

// Status is the lifecycle state of a job.
type Status string

const (
	StatusPending    Status = "pending"
	StatusValidating Status = "validating"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusPartial    Status = "partially-completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether s is a final state.
func (s Status) Terminal() bool {
	switch s {
	case StatusCompleted, StatusPartial, StatusFailed:
		return true
	}
	return false
}

// ItemResult is the per-item outcome record appended to a job.
type ItemResult struct {
	ItemName   string `json:"item_name"`
	Status     string `json:"status"` // "success" or "failure"
	DocumentID string `json:"document_id,omitempty"`
	ChunkCount int    `json:"chunk_count,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JobError is one entry of a job's error list. Item is empty for
// whole-job failures.
type JobError struct {
	Item    string  `json:"item,omitempty"`
	Kind    ErrKind `json:"kind"`
	Message string  `json:"message"`
}

// Job is the tracked unit of one ingestion submission. It is owned by the
// orchestrator; callers only ever see snapshots.
type Job struct {
	mu sync.Mutex

	id        string
	kind      Kind
	submitter string
	status    Status
	total     int
	processed int
	failed    int
	startedAt time.Time
	endedAt   time.Time
	results   []ItemResult
	errors    []JobError
	metadata  map[string]string

	cancel    context.CancelFunc
	cancelled bool
}

// Snapshot is a point-in-time copy of a job, safe to hold and serialize.
type Snapshot struct {
	ID        string            `json:"id"`
	Kind      Kind              `json:"kind"`
	Submitter string            `json:"submitter"`
	Status    Status            `json:"status"`
	Total     int               `json:"total"`
	Processed int               `json:"processed"`
	Failed    int               `json:"failed"`
	StartedAt time.Time         `json:"started_at"`
	EndedAt   time.Time         `json:"ended_at"`
	Results   []ItemResult      `json:"results"`
	Errors    []JobError        `json:"errors"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// Snapshot returns a deep copy of the job's current state.
func (j *Job) Snapshot() Snapshot {
	j.mu.Lock()
	defer j.mu.Unlock()

	snap := Snapshot{
		ID:        j.id,
		Kind:      j.kind,
		Submitter: j.submitter,
		Status:    j.status,
		Total:     j.total,
		Processed: j.processed,
		Failed:    j.failed,
		StartedAt: j.startedAt,
		EndedAt:   j.endedAt,
		Results:   make([]ItemResult, len(j.results)),
		Errors:    make([]JobError, len(j.errors)),
	}
	copy(snap.Results, j.results)
	copy(snap.Errors, j.errors)
	if j.metadata != nil {
		snap.Metadata = make(map[string]string, len(j.metadata))
		for k, v := range j.metadata {
			snap.Metadata[k] = v
		}
	}
	return snap
}

func (j *Job) setCancel(cancel context.CancelFunc) {
	j.mu.Lock()
	j.cancel = cancel
	j.mu.Unlock()
}

func (j *Job) setStatus(s Status) {
	j.mu.Lock()
	if !j.status.Terminal() {
		j.status = s
	}
	j.mu.Unlock()
}

func (j *Job) setTotal(n int) {
	j.mu.Lock()
	j.total = n
	j.mu.Unlock()
}

func (j *Job) isCancelled() bool {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.cancelled
}

// recordSuccess appends a success outcome and bumps the processed counter.
func (j *Job) recordSuccess(item, docID string, chunks int) {
	j.mu.Lock()
	j.processed++
	j.results = append(j.results, ItemResult{
		ItemName:   item,
		Status:     "success",
		DocumentID: docID,
		ChunkCount: chunks,
	})
	j.mu.Unlock()
}

// recordFailure appends a failure outcome plus an error entry and bumps the
// failed counter. A single item's failure never aborts the batch.
func (j *Job) recordFailure(item string, kind ErrKind, msg string) {
	j.mu.Lock()
	j.failed++
	j.results = append(j.results, ItemResult{
		ItemName: item,
		Status:   "failure",
		Error:    msg,
	})
	j.errors = append(j.errors, JobError{Item: item, Kind: kind, Message: msg})
	j.mu.Unlock()
}

// recordRejection notes a validation rejection. Rejected items never reach
// processing, so they get an error entry and a failed count but no outcome
// record.
func (j *Job) recordRejection(item string, msg string) {
	j.mu.Lock()
	j.failed++
	j.errors = append(j.errors, JobError{Item: item, Kind: ErrValidationRejected, Message: msg})
	j.mu.Unlock()
}

// fail terminates the job with a single aggregate error.
func (j *Job) fail(kind ErrKind, msg string) {
	j.mu.Lock()
	if j.status.Terminal() {
		j.mu.Unlock()
		return
	}
	j.status = StatusFailed
	j.errors = append(j.errors, JobError{Kind: kind, Message: msg})
	j.endedAt = time.Now()
	j.mu.Unlock()
}

// finalize derives the terminal state from the counters. A cancelled job is
// already terminal and keeps its state.
func (j *Job) finalize() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.status.Terminal() {
		return
	}
	switch {
	case j.total == 0, j.failed == 0 && j.processed == j.total:
		j.status = StatusCompleted
	case j.processed > 0:
		j.status = StatusPartial
	default:
		j.status = StatusFailed
	}
	j.endedAt = time.Now()
}

// cancelNow transitions a non-terminal job to failed with a cancellation
// error and signals in-flight work through the job's context. Returns false
// without side effects when the job is already terminal.
func (j *Job) cancelNow() bool {
	j.mu.Lock()
	if j.status.Terminal() {
		j.mu.Unlock()
		return false
	}
	j.cancelled = true
	j.status = StatusFailed
	j.errors = append(j.errors, JobError{Kind: ErrCancelled, Message: "cancelled by submitter"})
	j.endedAt = time.Now()
	cancel := j.cancel
	j.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	return true
}
