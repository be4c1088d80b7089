package ingest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
)

// jobIDLen is the width of a job identifier in hex characters.
const jobIDLen = 16

// newJobID derives a job identifier from submitter identity and submission
// time. When the truncated hash is already taken, the seed is re-hashed with
// a counter suffix until a free identifier is found.
func newJobID(submitter string, ts time.Time, taken func(string) bool) string {
	seed := fmt.Sprintf("%s|%d", submitter, ts.UnixNano())
	for n := 0; ; n++ {
		input := seed
		if n > 0 {
			input = fmt.Sprintf("%s|%d", seed, n)
		}
		sum := sha256.Sum256([]byte(input))
		id := hex.EncodeToString(sum[:])[:jobIDLen]
		if taken == nil || !taken(id) {
			return id
		}
	}
}

// Registry is the bounded in-memory job store. When capacity is exceeded
// the least recently touched job is evicted.
type Registry struct {
	mu    sync.Mutex
	cache *lru.Cache[string, *Job]
}

// NewRegistry creates a registry holding at most capacity jobs.
func NewRegistry(capacity int) (*Registry, error) {
	cache, err := lru.New[string, *Job](capacity)
	if err != nil {
		return nil, fmt.Errorf("create job registry: %w", err)
	}
	return &Registry{cache: cache}, nil
}

// Create mints a collision-free identifier, stores a new pending job under
// it, and returns the job.
func (r *Registry) Create(kind Kind, submitter string, metadata map[string]string) *Job {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now()
	id := newJobID(submitter, now, r.cache.Contains)

	var meta map[string]string
	if metadata != nil {
		meta = make(map[string]string, len(metadata))
		for k, v := range metadata {
			meta[k] = v
		}
	}

	job := &Job{
		id:        id,
		kind:      kind,
		submitter: submitter,
		status:    StatusPending,
		startedAt: now,
		metadata:  meta,
	}
	r.cache.Add(id, job)
	return job
}

// Get returns the job stored under id.
func (r *Registry) Get(id string) (*Job, bool) {
	return r.cache.Get(id)
}

// All returns every job currently retained, oldest first.
func (r *Registry) All() []*Job {
	return r.cache.Values()
}

// Len returns the number of retained jobs.
func (r *Registry) Len() int {
	return r.cache.Len()
}
