package survey

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/anketa-app/anketa/internal/grading"
)

// Service ties the evaluator, the codec and the store together. All
// operations are request-scoped and stateless; the store owns every
// transactional concern.
type Service struct {
	store Store
	ev    grading.Evaluator
	log   *slog.Logger
	now   func() time.Time
}

func NewService(store Store, ev grading.Evaluator, log *slog.Logger) *Service {
	if log == nil {
		log = slog.Default()
	}
	return &Service{store: store, ev: ev, log: log, now: time.Now}
}

// SubmitRequest is one respondent attempt at a test.
type SubmitRequest struct {
	TestID     string
	Respondent RespondentInfo
	Answers    Submission
}

// SubmitTest validates required respondent fields, scores the submission
// against the test's questions and persists the result. Validation runs
// before any evaluation; on failure nothing is stored.
func (s *Service) SubmitTest(ctx context.Context, req SubmitRequest) (Result, error) {
	t, err := s.store.GetTestAdmin(ctx, req.TestID)
	if err != nil {
		return Result{}, err
	}
	if !t.Published {
		return Result{}, ErrTestNotFound
	}

	if err := ValidateRequiredFields(t, req.Respondent); err != nil {
		return Result{}, err
	}

	score, maxScore := ComputeScore(t, req.Answers, s.ev)

	r := Result{
		ID:          uuid.NewString(),
		TestID:      t.ID,
		UserName:    req.Respondent.UserName,
		Group:       req.Respondent.Group,
		Age:         req.Respondent.Age,
		CompletedAt: s.now().Unix(),
		Score:       score,
		MaxScore:    maxScore,
		AnswersJSON: EncodeAnswers(req.Answers),
	}
	if _, err := s.store.SaveResult(ctx, r); err != nil {
		return Result{}, err
	}
	s.log.Info("result saved", "test_id", t.ID, "result_id", r.ID, "score", score, "max_score", maxScore)
	return r, nil
}

// ResultDetail loads a stored result and rebuilds its per-question
// breakdown against the test's current question definitions.
func (s *Service) ResultDetail(ctx context.Context, resultID string) (ResultDetail, error) {
	r, err := s.store.GetResult(ctx, resultID)
	if err != nil {
		return ResultDetail{}, err
	}
	t, err := s.store.GetTestAdmin(ctx, r.TestID)
	if err != nil {
		return ResultDetail{}, err
	}
	return BuildResultDetail(r, t, s.ev), nil
}

// CreateTest assigns ids and ordering and stores a new test. Question
// order is 1..n in authoring order; option ids are 1..n per question.
func (s *Service) CreateTest(ctx context.Context, t Test, authorID string) (Test, error) {
	t.ID = uuid.NewString()
	t.CreatedBy = authorID
	t.CreatedAt = s.now().Unix()
	t.Published = true
	numberQuestions(&t)
	if err := s.store.PutTest(ctx, t); err != nil {
		return Test{}, err
	}
	s.log.Info("test created", "test_id", t.ID, "author", authorID, "questions", len(t.Questions))
	return t, nil
}

// UpdateTest replaces the question list wholesale, keeping the test id
// and authorship. Stored results keep their original payloads; their
// detail views will follow the edited definitions.
func (s *Service) UpdateTest(ctx context.Context, id string, t Test, authorID string) (Test, error) {
	existing, err := s.store.GetTestAdmin(ctx, id)
	if err != nil {
		return Test{}, err
	}
	if existing.CreatedBy != authorID {
		return Test{}, ErrTestNotFound
	}
	t.ID = existing.ID
	t.CreatedBy = existing.CreatedBy
	t.CreatedAt = existing.CreatedAt
	t.Published = existing.Published
	numberQuestions(&t)
	if err := s.store.PutTest(ctx, t); err != nil {
		return Test{}, err
	}
	s.log.Info("test updated", "test_id", t.ID)
	return t, nil
}

func (s *Service) DeleteTest(ctx context.Context, id, authorID string) error {
	existing, err := s.store.GetTestAdmin(ctx, id)
	if err != nil {
		return err
	}
	if existing.CreatedBy != authorID {
		return ErrTestNotFound
	}
	if err := s.store.DeleteTest(ctx, id); err != nil {
		return err
	}
	s.log.Info("test deleted", "test_id", id)
	return nil
}

func (s *Service) PublishedTests(ctx context.Context) ([]TestSummary, error) {
	return s.store.ListPublishedTests(ctx)
}

func (s *Service) TestsByAuthor(ctx context.Context, authorID string) ([]TestSummary, error) {
	return s.store.ListTestsByAuthor(ctx, authorID)
}

// TestForTaking serves a published test with answer keys stripped.
func (s *Service) TestForTaking(ctx context.Context, id string) (Test, error) {
	return s.store.GetTest(ctx, id)
}

func (s *Service) ResultsForTest(ctx context.Context, testID, authorID string) ([]Result, error) {
	t, err := s.store.GetTestAdmin(ctx, testID)
	if err != nil {
		return nil, err
	}
	if t.CreatedBy != authorID {
		return nil, ErrTestNotFound
	}
	return s.store.ListResults(ctx, testID)
}

func numberQuestions(t *Test) {
	for i := range t.Questions {
		q := &t.Questions[i]
		if q.ID == "" {
			q.ID = uuid.NewString()
		}
		q.TestID = t.ID
		q.Order = i + 1
		for j := range q.Options {
			q.Options[j].ID = j + 1
		}
	}
}
