// Package ingest is the orchestration core: it accepts one of four
// submission kinds (files, folder, structured sources, repository), drives
// discovery, validation, extraction, and indexing, tracks each job through
// its lifecycle, and answers status and statistics queries. Per-item
// failures are recorded and recovered; a submission always returns a job
// snapshot describing what happened.
package ingest

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/quarrylabs/quarry/internal/bibsource"
	"github.com/quarrylabs/quarry/internal/discover"
	"github.com/quarrylabs/quarry/internal/extract"
	"github.com/quarrylabs/quarry/internal/gitrepo"
	"github.com/quarrylabs/quarry/internal/validate"
	"github.com/quarrylabs/quarry/internal/vector"
)

// Config carries the plain configuration values the orchestrator needs.
// Zero values fall back to defaults.
type Config struct {
	MaxFileSize      int64          // per-file ceiling in bytes
	MaxRepoSize      int64          // whole-repository ceiling in bytes
	BatchSize        int            // items dispatched concurrently per batch
	ItemTimeout      time.Duration  // per-item processing deadline
	RegistryCapacity int            // bounded job registry size
	Formats          validate.Table // extension -> category
	IgnoreDirs       []string       // ignored directory names
}

// Orchestrator owns the job registry and coordinates the pipeline
// components. Safe for concurrent use.
type Orchestrator struct {
	cfg    Config
	agents *extract.Registry
	index  vector.Index
	repo   *gitrepo.Processor
	store  *Registry
	pool   *ants.Pool
	logger *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithRepoProcessor overrides the repository processor.
func WithRepoProcessor(p *gitrepo.Processor) Option {
	return func(o *Orchestrator) { o.repo = p }
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// New creates an orchestrator around the given extraction agents and vector
// index.
func New(cfg Config, agents *extract.Registry, index vector.Index, opts ...Option) (*Orchestrator, error) {
	if agents == nil {
		return nil, fmt.Errorf("nil agent registry")
	}
	if index == nil {
		return nil, fmt.Errorf("nil vector index")
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 10
	}
	if cfg.RegistryCapacity <= 0 {
		cfg.RegistryCapacity = 1024
	}
	if cfg.Formats == nil {
		cfg.Formats = validate.DefaultTable()
	}
	if cfg.IgnoreDirs == nil {
		cfg.IgnoreDirs = discover.DefaultIgnoreDirs()
	}

	store, err := NewRegistry(cfg.RegistryCapacity)
	if err != nil {
		return nil, err
	}
	pool, err := ants.NewPool(cfg.BatchSize)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}

	o := &Orchestrator{
		cfg:    cfg,
		agents: agents,
		index:  index,
		repo:   gitrepo.NewProcessor(),
		store:  store,
		pool:   pool,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o, nil
}

// Close releases the worker pool.
func (o *Orchestrator) Close() {
	o.pool.Release()
}

// FileItem is one in-memory file handed to SubmitFiles. Size defaults to
// len(Data) when zero, so tests can declare a size without allocating it.
type FileItem struct {
	Name string
	Data []byte
	Size int64
}

func (f FileItem) size() int64 {
	if f.Size > 0 {
		return f.Size
	}
	return int64(len(f.Data))
}

// workItem is one unit queued for processing after validation.
type workItem struct {
	name        string
	path        string
	data        []byte
	size        int64
	category    validate.Category
	contentType string
	extra       map[string]string
}

// SubmitFiles ingests in-memory files for submitter. The call returns once
// the job is terminal; it fails fast only on an empty item list.
func (o *Orchestrator) SubmitFiles(ctx context.Context, submitter string, items []FileItem, metadata map[string]string) (Snapshot, error) {
	if len(items) == 0 {
		return Snapshot{}, fmt.Errorf("no items submitted")
	}

	job := o.store.Create(KindFile, submitter, metadata)
	jobCtx, cancel := context.WithCancel(ctx)
	job.setCancel(cancel)
	defer cancel()

	o.logger.Info("ingest.files.start", "job", job.id, "submitter", submitter, "items", len(items))

	job.setTotal(len(items))
	job.setStatus(StatusValidating)

	var accepted []workItem
	for _, item := range items {
		res := validate.Validate(validate.Item{Name: item.Name, Size: item.size()}, o.cfg.MaxFileSize, o.cfg.Formats)
		if !res.Accepted {
			job.recordRejection(item.Name, res.Reason)
			continue
		}
		accepted = append(accepted, workItem{
			name:        item.Name,
			data:        item.Data,
			size:        res.Size,
			category:    res.Category,
			contentType: res.Extension,
		})
	}

	job.setStatus(StatusProcessing)
	o.processSequential(jobCtx, job, accepted)
	job.finalize()

	snap := job.Snapshot()
	o.logJobEnd("ingest.files.done", snap)
	return snap, nil
}

// SubmitFolder discovers files under path and ingests them in concurrent
// batches. A missing or unreadable path fails the whole job.
func (o *Orchestrator) SubmitFolder(ctx context.Context, submitter, path string, recursive bool, metadata map[string]string) (Snapshot, error) {
	job := o.store.Create(KindFolder, submitter, mergeMeta(metadata,
		"path", path,
		"recursive", strconv.FormatBool(recursive),
	))
	jobCtx, cancel := context.WithCancel(ctx)
	job.setCancel(cancel)
	defer cancel()

	o.logger.Info("ingest.folder.start", "job", job.id, "submitter", submitter, "path", path, "recursive", recursive)

	job.setStatus(StatusValidating)

	paths, err := discover.Walk(path, discover.Options{
		AllowedExtensions: o.cfg.Formats.Extensions(),
		Recursive:         recursive,
		IgnoreDirs:        o.cfg.IgnoreDirs,
		Logger:            o.logger,
	})
	if err != nil {
		job.fail(ErrDiscoveryFailed, err.Error())
		snap := job.Snapshot()
		o.logJobEnd("ingest.folder.done", snap)
		return snap, nil
	}

	job.setTotal(len(paths))

	var accepted []workItem
	for _, p := range paths {
		info, statErr := os.Stat(p)
		if statErr != nil {
			job.recordRejection(p, fmt.Sprintf("unreadable: %v", statErr))
			continue
		}
		res := validate.Validate(validate.Item{Name: p, Size: info.Size()}, o.cfg.MaxFileSize, o.cfg.Formats)
		if !res.Accepted {
			job.recordRejection(p, res.Reason)
			continue
		}
		accepted = append(accepted, workItem{
			name:        p,
			path:        p,
			size:        res.Size,
			category:    res.Category,
			contentType: res.Extension,
		})
	}

	job.setStatus(StatusProcessing)
	o.processBatches(jobCtx, job, accepted)
	job.finalize()

	snap := job.Snapshot()
	o.logJobEnd("ingest.folder.done", snap)
	return snap, nil
}

// SubmitSources parses structured bibliographic text and ingests each
// record sequentially. Text with no parseable blocks fails the job with a
// single aggregate error.
func (o *Orchestrator) SubmitSources(ctx context.Context, submitter, text, sourceName string, metadata map[string]string) (Snapshot, error) {
	job := o.store.Create(KindSources, submitter, mergeMeta(metadata, "source_name", sourceName))
	jobCtx, cancel := context.WithCancel(ctx)
	job.setCancel(cancel)
	defer cancel()

	o.logger.Info("ingest.sources.start", "job", job.id, "submitter", submitter, "source_name", sourceName)

	job.setStatus(StatusValidating)

	records := bibsource.Parse(text)
	if len(records) == 0 {
		job.fail(ErrParseFailed, "no structured source blocks found")
		snap := job.Snapshot()
		o.logJobEnd("ingest.sources.done", snap)
		return snap, nil
	}

	job.setTotal(len(records))

	items := make([]workItem, 0, len(records))
	for _, rec := range records {
		body := []byte(rec.Text())
		items = append(items, workItem{
			name:        rec.Name(),
			data:        body,
			size:        int64(len(body)),
			category:    validate.CategoryDocuments,
			contentType: ".txt",
			extra: map[string]string{
				"source_name": sourceName,
				"type":        rec.Type,
				"title":       rec.Title,
				"year":        rec.Year,
				"document":    rec.Document,
			},
		})
	}

	job.setStatus(StatusProcessing)
	o.processSequential(jobCtx, job, items)
	job.finalize()

	snap := job.Snapshot()
	o.logJobEnd("ingest.sources.done", snap)
	return snap, nil
}

// RepoOptions control repository enumeration.
type RepoOptions struct {
	Include     []string
	Exclude     []string
	DocsOnly    bool
	ExcludeCode bool
}

// SubmitRepository analyzes, fetches, and ingests a remote repository. The
// pre-flight analysis and the size ceiling are checked before any transfer;
// the temporary working copy is removed on every path.
func (o *Orchestrator) SubmitRepository(ctx context.Context, submitter, reference, branch string, opts RepoOptions, metadata map[string]string) (Snapshot, error) {
	ref, err := gitrepo.ParseReference(reference)
	if err != nil {
		return Snapshot{}, err
	}

	job := o.store.Create(KindRepository, submitter, mergeMeta(metadata,
		"repository", ref.String(),
		"branch", branch,
	))
	jobCtx, cancel := context.WithCancel(ctx)
	job.setCancel(cancel)
	defer cancel()

	o.logger.Info("ingest.repo.start", "job", job.id, "submitter", submitter, "repo", ref.String(), "branch", branch)

	job.setStatus(StatusValidating)

	analysis := o.repo.Analyze(jobCtx, ref.Owner, ref.Name, branch)
	if !analysis.Valid {
		job.fail(ErrRepositoryInvalid, analysis.Reason)
		snap := job.Snapshot()
		o.logJobEnd("ingest.repo.done", snap)
		return snap, nil
	}
	if o.cfg.MaxRepoSize > 0 && analysis.SizeBytes > o.cfg.MaxRepoSize {
		job.fail(ErrRepositoryTooLarge, fmt.Sprintf(
			"repository size %d bytes exceeds limit of %d bytes", analysis.SizeBytes, o.cfg.MaxRepoSize))
		snap := job.Snapshot()
		o.logJobEnd("ingest.repo.done", snap)
		return snap, nil
	}

	workingCopy, err := o.repo.Fetch(jobCtx, ref, analysis.Branch)
	if err != nil {
		job.fail(ErrDiscoveryFailed, err.Error())
		snap := job.Snapshot()
		o.logJobEnd("ingest.repo.done", snap)
		return snap, nil
	}
	defer func() {
		if cleanupErr := workingCopy.Cleanup(); cleanupErr != nil {
			o.logger.Warn("ingest.repo.cleanup_failed", "job", job.id, "error", cleanupErr)
		}
	}()

	files, err := o.repo.Enumerate(workingCopy, gitrepo.EnumerateOptions{
		Include:     opts.Include,
		Exclude:     opts.Exclude,
		MaxFileSize: o.cfg.MaxFileSize,
		Formats:     o.cfg.Formats,
		DocsOnly:    opts.DocsOnly,
		ExcludeCode: opts.ExcludeCode,
		IgnoreDirs:  o.cfg.IgnoreDirs,
	})
	if err != nil {
		job.fail(ErrDiscoveryFailed, err.Error())
		snap := job.Snapshot()
		o.logJobEnd("ingest.repo.done", snap)
		return snap, nil
	}

	job.setTotal(len(files))

	items := make([]workItem, 0, len(files))
	for _, f := range files {
		items = append(items, workItem{
			name:        f.Path,
			path:        f.FullPath,
			size:        f.Size,
			category:    f.Category,
			contentType: ext(f.Name),
			extra:       map[string]string{"repository": ref.String(), "branch": analysis.Branch},
		})
	}

	job.setStatus(StatusProcessing)
	o.processBatches(jobCtx, job, items)
	job.finalize()

	snap := job.Snapshot()
	o.logJobEnd("ingest.repo.done", snap)
	return snap, nil
}

// GetJob returns a snapshot of the job stored under id.
func (o *Orchestrator) GetJob(id string) (Snapshot, bool) {
	job, ok := o.store.Get(id)
	if !ok {
		return Snapshot{}, false
	}
	return job.Snapshot(), true
}

// ListJobs returns the submitter's jobs sorted by start time, newest first.
func (o *Orchestrator) ListJobs(submitter string) []Snapshot {
	var snaps []Snapshot
	for _, job := range o.store.All() {
		snap := job.Snapshot()
		if snap.Submitter == submitter {
			snaps = append(snaps, snap)
		}
	}
	sortByStartDesc(snaps)
	return snaps
}

// Cancel requests cooperative cancellation of a non-terminal job. In-flight
// items of the current batch observe the cancelled context; no further
// batches are started. Returns false when the job is unknown or already
// terminal.
func (o *Orchestrator) Cancel(id string) bool {
	job, ok := o.store.Get(id)
	if !ok {
		return false
	}
	cancelled := job.cancelNow()
	if cancelled {
		o.logger.Info("ingest.cancel", "job", id)
	}
	return cancelled
}

// processSequential runs items one at a time, stopping between items when
// the job is cancelled.
func (o *Orchestrator) processSequential(ctx context.Context, job *Job, items []workItem) {
	for _, item := range items {
		if job.isCancelled() {
			return
		}
		o.processItem(ctx, job, item)
	}
}

// processBatches dispatches items in fixed-size concurrent batches. Batches
// are strictly sequential; cancellation is checked between them.
func (o *Orchestrator) processBatches(ctx context.Context, job *Job, items []workItem) {
	for start := 0; start < len(items); start += o.cfg.BatchSize {
		if job.isCancelled() {
			return
		}
		end := min(start+o.cfg.BatchSize, len(items))

		var wg sync.WaitGroup
		for _, item := range items[start:end] {
			wg.Add(1)
			task := func() {
				defer wg.Done()
				o.processItem(ctx, job, item)
			}
			if err := o.pool.Submit(task); err != nil {
				// Pool released; degrade to inline execution.
				task()
			}
		}
		wg.Wait()
	}
}

// processItem runs one item through extraction and indexing under its own
// deadline. Failures are recorded, never propagated.
func (o *Orchestrator) processItem(ctx context.Context, job *Job, item workItem) {
	itemCtx := ctx
	if o.cfg.ItemTimeout > 0 {
		var cancel context.CancelFunc
		itemCtx, cancel = context.WithTimeout(ctx, o.cfg.ItemTimeout)
		defer cancel()
	}

	agent, err := o.agents.ForCategory(item.category)
	if err != nil {
		job.recordFailure(item.name, ErrExtractionFailed, err.Error())
		return
	}

	chunks, err := agent.Extract(itemCtx, extract.Item{
		Name:        item.name,
		Path:        item.path,
		Data:        item.data,
		Category:    item.category,
		ContentType: item.contentType,
	})
	if err != nil {
		job.recordFailure(item.name, ErrExtractionFailed, err.Error())
		return
	}

	docID, count, err := o.index.Index(itemCtx, item.name, chunks, vector.Metadata{
		Submitter:   job.submitter,
		Category:    string(item.category),
		ContentType: item.contentType,
		Size:        item.size,
		IngestedAt:  time.Now(),
		Extra:       item.extra,
	})
	if err != nil {
		job.recordFailure(item.name, ErrIndexingFailed, err.Error())
		return
	}

	job.recordSuccess(item.name, docID, count)
}

func (o *Orchestrator) logJobEnd(msg string, snap Snapshot) {
	o.logger.Info(msg,
		"job", snap.ID,
		"status", snap.Status,
		"total", snap.Total,
		"processed", snap.Processed,
		"failed", snap.Failed,
	)
}

// mergeMeta copies base and overlays the given key/value pairs.
func mergeMeta(base map[string]string, kv ...string) map[string]string {
	out := make(map[string]string, len(base)+len(kv)/2)
	for k, v := range base {
		out[k] = v
	}
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i]] = kv[i+1]
	}
	return out
}

func ext(name string) string {
	return strings.ToLower(filepath.Ext(name))
}
