package ingest

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewJobID_Deterministic(t *testing.T) {
	ts := time.Unix(1700000000, 42)
	a := newJobID("alice", ts, nil)
	b := newJobID("alice", ts, nil)
	assert.Equal(t, a, b)
	assert.Len(t, a, jobIDLen)

	c := newJobID("bob", ts, nil)
	assert.NotEqual(t, a, c)
}

func TestNewJobID_CollisionSuffix(t *testing.T) {
	ts := time.Unix(1700000000, 42)
	plain := newJobID("alice", ts, nil)

	// Pretend the plain identifier is taken; the counter-suffixed re-hash
	// must produce a different, free identifier.
	resolved := newJobID("alice", ts, func(id string) bool { return id == plain })
	assert.NotEqual(t, plain, resolved)
	assert.Len(t, resolved, jobIDLen)
}

func TestRegistry_CreateAndGet(t *testing.T) {
	r, err := NewRegistry(8)
	require.NoError(t, err)

	job := r.Create(KindFile, "alice", map[string]string{"origin": "test"})
	snap := job.Snapshot()
	assert.Equal(t, StatusPending, snap.Status)
	assert.Equal(t, "alice", snap.Submitter)
	assert.Len(t, snap.ID, jobIDLen)
	assert.False(t, snap.StartedAt.IsZero())

	got, ok := r.Get(snap.ID)
	require.True(t, ok)
	assert.Same(t, job, got)
}

func TestRegistry_EvictsOldestBeyondCapacity(t *testing.T) {
	r, err := NewRegistry(2)
	require.NoError(t, err)

	first := r.Create(KindFile, "alice", nil)
	second := r.Create(KindFile, "alice", nil)
	third := r.Create(KindFile, "alice", nil)

	assert.Equal(t, 2, r.Len())
	_, ok := r.Get(first.Snapshot().ID)
	assert.False(t, ok)
	_, ok = r.Get(second.Snapshot().ID)
	assert.True(t, ok)
	_, ok = r.Get(third.Snapshot().ID)
	assert.True(t, ok)
}

func TestSnapshot_IsACopy(t *testing.T) {
	r, err := NewRegistry(2)
	require.NoError(t, err)

	job := r.Create(KindFile, "alice", nil)
	snap := job.Snapshot()
	snap.Results = append(snap.Results, ItemResult{ItemName: "x"})
	snap.Metadata = map[string]string{"mutated": "yes"}

	fresh := job.Snapshot()
	assert.Empty(t, fresh.Results)
	assert.Empty(t, fresh.Metadata)
}
