package storage

import (
	"context"
	"sort"
	"sync"

	"ecotype/internal/model"
)

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	evaluations map[string]model.EvaluationRecord
	order       []string
	summaries   map[string]model.EnvironmentSummary
	history     map[string][]float64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.evaluations = make(map[string]model.EvaluationRecord)
	s.order = nil
	s.summaries = make(map[string]model.EnvironmentSummary)
	s.history = make(map[string][]float64)
	return nil
}

func (s *MemoryStore) Reset(ctx context.Context) error {
	return s.Init(ctx)
}

func (s *MemoryStore) SaveEvaluation(_ context.Context, record model.EvaluationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.evaluations[record.ID]; !exists {
		s.order = append(s.order, record.ID)
	}
	record.Scores = append([]model.FactorScore(nil), record.Scores...)
	s.evaluations[record.ID] = record
	return nil
}

func (s *MemoryStore) GetEvaluation(_ context.Context, id string) (model.EvaluationRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, ok := s.evaluations[id]
	if !ok {
		return model.EvaluationRecord{}, false, nil
	}
	record.Scores = append([]model.FactorScore(nil), record.Scores...)
	return record, true, nil
}

// ListEvaluations returns records in insertion order, newest last. An empty
// environment selects all records; limit <= 0 means no limit.
func (s *MemoryStore) ListEvaluations(_ context.Context, environment string, limit int) ([]model.EvaluationRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.EvaluationRecord, 0, len(s.order))
	for _, id := range s.order {
		record := s.evaluations[id]
		if environment != "" && record.Environment != environment {
			continue
		}
		record.Scores = append([]model.FactorScore(nil), record.Scores...)
		out = append(out, record)
	}
	if limit > 0 && len(out) > limit {
		out = out[len(out)-limit:]
	}
	return out, nil
}

func (s *MemoryStore) SaveEnvironmentSummary(_ context.Context, summary model.EnvironmentSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.summaries[summary.Name] = summary
	return nil
}

func (s *MemoryStore) GetEnvironmentSummary(_ context.Context, name string) (model.EnvironmentSummary, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summary, ok := s.summaries[name]
	return summary, ok, nil
}

func (s *MemoryStore) ListEnvironmentSummaries(_ context.Context) ([]model.EnvironmentSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.EnvironmentSummary, 0, len(s.summaries))
	for _, summary := range s.summaries {
		out = append(out, summary)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

func (s *MemoryStore) SaveFitnessHistory(_ context.Context, environment string, history []float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.history[environment] = append([]float64(nil), history...)
	return nil
}

func (s *MemoryStore) GetFitnessHistory(_ context.Context, environment string) ([]float64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	history, ok := s.history[environment]
	if !ok {
		return nil, false, nil
	}
	return append([]float64(nil), history...), true, nil
}
