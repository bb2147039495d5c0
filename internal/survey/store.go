package survey

import "context"

// Store is the persistence collaborator of the engine. Implementations
// own all transactional concerns; the engine never retries and surfaces
// storage failures unchanged.
type Store interface {
	PutTest(ctx context.Context, t Test) error
	// GetTest serves respondents: published tests only, with the
	// correct-answer flags and reference answers stripped.
	GetTest(ctx context.Context, id string) (Test, error)
	// GetTestAdmin returns the full test regardless of publish state,
	// for authors and for scoring.
	GetTestAdmin(ctx context.Context, id string) (Test, error)
	ListPublishedTests(ctx context.Context) ([]TestSummary, error)
	ListTestsByAuthor(ctx context.Context, userID string) ([]TestSummary, error)
	// DeleteTest removes the test and, in the same transaction, every
	// result that references it.
	DeleteTest(ctx context.Context, id string) error

	SaveResult(ctx context.Context, r Result) (string, error)
	GetResult(ctx context.Context, id string) (Result, error)
	ListResults(ctx context.Context, testID string) ([]Result, error)
}
