// Package ecotype is the public facade over the evaluation platform. It
// owns store construction and converts between wire-friendly request types
// and the internal platform types.
package ecotype

import (
	"context"
	"fmt"

	"ecotype/internal/metrics"
	"ecotype/internal/model"
	"ecotype/internal/platform"
	"ecotype/internal/storage"
	"ecotype/internal/trace"
)

const defaultDBPath = "ecotype.db"

type Options struct {
	StoreKind string
	DBPath    string
	Observer  trace.Observer
	Metrics   *metrics.Collector
}

type Client struct {
	store storage.Store
	biome *platform.Biome
}

// EnvironmentSpec mirrors platform.EnvironmentSpec for callers.
type EnvironmentSpec struct {
	Name        string
	Description string
	Factors     map[string]float64
}

type ProfileEntry struct {
	Factor string
	Shape  string
	Trait  float64
}

type EvaluateRequest struct {
	ID          string
	Environment string
	Blend       string
	Profile     []ProfileEntry
}

type FactorScore struct {
	Factor   string
	Shape    string
	Trait    float64
	Observed float64
	Fitness  float64
}

type EvaluateSummary struct {
	ID           string
	Environment  string
	Blend        string
	Fitness      float64
	Scores       []FactorScore
	CreatedAtUTC string
}

type EnvironmentSummaryItem struct {
	Name        string
	Description string
	BestFitness float64
	Evaluations int
}

func New(opts Options) (*Client, error) {
	storeKind := opts.StoreKind
	if storeKind == "" {
		storeKind = storage.DefaultStoreKind()
	}
	dbPath := opts.DBPath
	if dbPath == "" {
		dbPath = defaultDBPath
	}

	store, err := storage.NewStore(storeKind, dbPath)
	if err != nil {
		return nil, err
	}

	biome := platform.NewBiome(platform.Config{
		Store:    store,
		Observer: opts.Observer,
		Metrics:  opts.Metrics,
	})
	if err := biome.Init(context.Background()); err != nil {
		_ = storage.CloseIfSupported(store)
		return nil, err
	}

	return &Client{store: store, biome: biome}, nil
}

func (c *Client) Close() error {
	c.biome.Stop()
	return storage.CloseIfSupported(c.store)
}

func (c *Client) Reset(ctx context.Context) error {
	return c.biome.Reset(ctx)
}

func (c *Client) RegisterEnvironment(spec EnvironmentSpec) error {
	return c.biome.RegisterEnvironment(platform.EnvironmentSpec{
		Name:        spec.Name,
		Description: spec.Description,
		Factors:     spec.Factors,
	})
}

func (c *Client) Environments() []string {
	return c.biome.Environments()
}

func (c *Client) Evaluate(ctx context.Context, req EvaluateRequest) (EvaluateSummary, error) {
	if req.Environment == "" {
		return EvaluateSummary{}, fmt.Errorf("environment is required")
	}

	profile := make([]platform.ProfileEntry, 0, len(req.Profile))
	for _, entry := range req.Profile {
		profile = append(profile, platform.ProfileEntry{
			Factor: entry.Factor,
			Shape:  entry.Shape,
			Trait:  entry.Trait,
		})
	}

	result, err := c.biome.Evaluate(ctx, platform.EvaluationRequest{
		ID:          req.ID,
		Environment: req.Environment,
		Blend:       req.Blend,
		Profile:     profile,
	})
	if err != nil {
		return EvaluateSummary{}, err
	}
	return toEvaluateSummary(result.Record), nil
}

// History returns an environment's blended fitness scores in evaluation
// order; limit <= 0 returns everything.
func (c *Client) History(ctx context.Context, environment string, limit int) ([]float64, error) {
	if environment == "" {
		return nil, fmt.Errorf("environment is required")
	}
	history, ok, err := c.store.GetFitnessHistory(ctx, environment)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("no history for environment: %s", environment)
	}
	if limit > 0 && len(history) > limit {
		history = history[len(history)-limit:]
	}
	return history, nil
}

func (c *Client) Evaluations(ctx context.Context, environment string, limit int) ([]EvaluateSummary, error) {
	records, err := c.store.ListEvaluations(ctx, environment, limit)
	if err != nil {
		return nil, err
	}
	out := make([]EvaluateSummary, 0, len(records))
	for _, record := range records {
		out = append(out, toEvaluateSummary(record))
	}
	return out, nil
}

func (c *Client) Summaries(ctx context.Context) ([]EnvironmentSummaryItem, error) {
	summaries, err := c.store.ListEnvironmentSummaries(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]EnvironmentSummaryItem, 0, len(summaries))
	for _, summary := range summaries {
		out = append(out, EnvironmentSummaryItem{
			Name:        summary.Name,
			Description: summary.Description,
			BestFitness: summary.BestFitness,
			Evaluations: summary.Evaluations,
		})
	}
	return out, nil
}

func toEvaluateSummary(record model.EvaluationRecord) EvaluateSummary {
	scores := make([]FactorScore, 0, len(record.Scores))
	for _, score := range record.Scores {
		scores = append(scores, FactorScore(score))
	}
	return EvaluateSummary{
		ID:           record.ID,
		Environment:  record.Environment,
		Blend:        record.Blend,
		Fitness:      record.Fitness,
		Scores:       scores,
		CreatedAtUTC: record.CreatedAtUTC,
	}
}
