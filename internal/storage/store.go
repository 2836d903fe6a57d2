package storage

import (
	"context"

	"ecotype/internal/model"
)

// Store defines persistence operations for evaluation outcomes.
type Store interface {
	Init(ctx context.Context) error
	SaveEvaluation(ctx context.Context, record model.EvaluationRecord) error
	GetEvaluation(ctx context.Context, id string) (model.EvaluationRecord, bool, error)
	ListEvaluations(ctx context.Context, environment string, limit int) ([]model.EvaluationRecord, error)
	SaveEnvironmentSummary(ctx context.Context, summary model.EnvironmentSummary) error
	GetEnvironmentSummary(ctx context.Context, name string) (model.EnvironmentSummary, bool, error)
	ListEnvironmentSummaries(ctx context.Context) ([]model.EnvironmentSummary, error)
	SaveFitnessHistory(ctx context.Context, environment string, history []float64) error
	GetFitnessHistory(ctx context.Context, environment string) ([]float64, bool, error)
}

// Resetter is implemented by stores that can drop all persisted state.
type Resetter interface {
	Reset(ctx context.Context) error
}
