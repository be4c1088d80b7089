package ingest

// ErrKind classifies every failure an ingestion job can record.
type ErrKind string

const (
	// ErrValidationRejected marks an item rejected for size or type.
	// Recorded per item, never fatal to the job.
	ErrValidationRejected ErrKind = "validation-rejected"
	// ErrExtractionFailed marks an extraction-agent failure. Per item.
	ErrExtractionFailed ErrKind = "extraction-failed"
	// ErrIndexingFailed marks a vector-index failure. Per item.
	ErrIndexingFailed ErrKind = "indexing-failed"
	// ErrDiscoveryFailed marks a missing or inaccessible source path.
	// Fatal to the whole job.
	ErrDiscoveryFailed ErrKind = "discovery-failed"
	// ErrParseFailed marks structured text with no parseable blocks. Fatal.
	ErrParseFailed ErrKind = "parse-failed"
	// ErrRepositoryInvalid marks a failed pre-flight analysis. Fatal, no
	// fetch is attempted.
	ErrRepositoryInvalid ErrKind = "repository-invalid"
	// ErrRepositoryTooLarge marks a repository over the size ceiling.
	// Fatal, no fetch is attempted.
	ErrRepositoryTooLarge ErrKind = "repository-too-large"
	// ErrCancelled marks a submitter-initiated cancellation. Fatal.
	ErrCancelled ErrKind = "cancelled"
)
