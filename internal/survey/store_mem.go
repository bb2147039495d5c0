package survey

import (
	"context"
	"sort"
	"sync"
)

type memoryStore struct {
	mu      sync.RWMutex
	tests   map[string]Test
	results map[string]Result
}

// NewInMemoryStore returns a Store backed by process memory, for tests
// and local development.
func NewInMemoryStore() Store {
	return &memoryStore{
		tests:   map[string]Test{},
		results: map[string]Result{},
	}
}

func (m *memoryStore) PutTest(_ context.Context, t Test) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tests[t.ID] = t
	return nil
}

func (m *memoryStore) GetTest(_ context.Context, id string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok || !t.Published {
		return Test{}, ErrTestNotFound
	}
	t = cloneTest(t)
	for i := range t.Questions {
		t.Questions[i].CorrectText = ""
		for j := range t.Questions[i].Options {
			t.Questions[i].Options[j].Correct = false
		}
	}
	return t, nil
}

func (m *memoryStore) GetTestAdmin(_ context.Context, id string) (Test, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.tests[id]
	if !ok {
		return Test{}, ErrTestNotFound
	}
	return cloneTest(t), nil
}

func (m *memoryStore) ListPublishedTests(_ context.Context) ([]TestSummary, error) {
	return m.list(func(t Test) bool { return t.Published })
}

func (m *memoryStore) ListTestsByAuthor(_ context.Context, userID string) ([]TestSummary, error) {
	return m.list(func(t Test) bool { return t.CreatedBy == userID })
}

func (m *memoryStore) list(keep func(Test) bool) ([]TestSummary, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []TestSummary{}
	for _, t := range m.tests {
		if !keep(t) {
			continue
		}
		out = append(out, TestSummary{
			ID:            t.ID,
			Title:         t.Title,
			Description:   t.Description,
			CreatedAt:     t.CreatedAt,
			Published:     t.Published,
			QuestionCount: len(t.Questions),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt > out[j].CreatedAt })
	return out, nil
}

func (m *memoryStore) DeleteTest(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tests[id]; !ok {
		return ErrTestNotFound
	}
	delete(m.tests, id)
	for rid, r := range m.results {
		if r.TestID == id {
			delete(m.results, rid)
		}
	}
	return nil
}

func (m *memoryStore) SaveResult(_ context.Context, r Result) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.tests[r.TestID]; !ok {
		return "", ErrTestNotFound
	}
	m.results[r.ID] = r
	return r.ID, nil
}

func (m *memoryStore) GetResult(_ context.Context, id string) (Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.results[id]
	if !ok {
		return Result{}, ErrResultNotFound
	}
	return r, nil
}

func (m *memoryStore) ListResults(_ context.Context, testID string) ([]Result, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Result{}
	for _, r := range m.results {
		if r.TestID == testID {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CompletedAt > out[j].CompletedAt })
	return out, nil
}

func cloneTest(t Test) Test {
	qs := make([]Question, len(t.Questions))
	copy(qs, t.Questions)
	for i := range qs {
		opts := make([]AnswerOption, len(qs[i].Options))
		copy(opts, qs[i].Options)
		qs[i].Options = opts
	}
	t.Questions = qs
	return t
}
