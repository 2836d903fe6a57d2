// Package platform hosts the Biome, the service that evaluates adaptation
// profiles against registered environments and persists the outcomes.
package platform

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"ecotype/internal/eco"
	"ecotype/internal/fitness"
	"ecotype/internal/metrics"
	"ecotype/internal/model"
	"ecotype/internal/storage"
	"ecotype/internal/trace"
)

type Config struct {
	Store        storage.Store
	Observer     trace.Observer
	Metrics      *metrics.Collector
	Environments []EnvironmentSpec
}

// EnvironmentSpec is a named scalar environment snapshot.
type EnvironmentSpec struct {
	Name        string
	Description string
	Factors     map[string]float64
}

func (s EnvironmentSpec) environment() eco.Environment[float64] {
	env := make(eco.Environment[float64], len(s.Factors))
	for name, value := range s.Factors {
		env[name] = eco.EcoFactor[float64]{Factor: eco.Factor{Name: name}, Value: value}
	}
	return env
}

// ProfileEntry declares one adaptation of an organism's profile: the
// factor it responds to, a registered shape name and the trait value
// bound into the shape.
type ProfileEntry struct {
	Factor string
	Shape  string
	Trait  float64
}

type EvaluationRequest struct {
	ID          string
	Environment string
	Blend       string
	Profile     []ProfileEntry
}

type EvaluationResult struct {
	Record model.EvaluationRecord
}

type Biome struct {
	store    storage.Store
	observer trace.Observer
	metrics  *metrics.Collector

	mu           sync.RWMutex
	environments map[string]EnvironmentSpec
	started      bool

	// evalMu serializes the persistence section of Evaluate: history and
	// summary updates are read-modify-write over the store.
	evalMu sync.Mutex

	config Config
}

func NewBiome(cfg Config) *Biome {
	observer := cfg.Observer
	if observer == nil {
		observer = trace.Nop{}
	}
	return &Biome{
		store:        cfg.Store,
		observer:     observer,
		metrics:      cfg.Metrics,
		environments: make(map[string]EnvironmentSpec),
		config:       cfg,
	}
}

func (b *Biome) Init(ctx context.Context) error {
	if b.store == nil {
		return fmt.Errorf("store is required")
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.started {
		return nil
	}
	if err := b.store.Init(ctx); err != nil {
		return err
	}

	for i, spec := range b.config.Environments {
		if err := validateEnvironmentSpec(spec); err != nil {
			b.environments = make(map[string]EnvironmentSpec)
			return fmt.Errorf("environment at index %d: %w", i, err)
		}
		if _, exists := b.environments[spec.Name]; exists {
			b.environments = make(map[string]EnvironmentSpec)
			return fmt.Errorf("duplicate environment: %s", spec.Name)
		}
		b.environments[spec.Name] = cloneEnvironmentSpec(spec)
	}

	b.started = true
	return nil
}

func (b *Biome) Reset(ctx context.Context) error {
	b.Stop()
	if resetter, ok := b.store.(storage.Resetter); ok {
		if err := resetter.Reset(ctx); err != nil {
			return err
		}
	}
	return b.Init(ctx)
}

func (b *Biome) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.started = false
	b.environments = make(map[string]EnvironmentSpec)
}

func (b *Biome) Started() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.started
}

func (b *Biome) RegisterEnvironment(spec EnvironmentSpec) error {
	if err := validateEnvironmentSpec(spec); err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.started {
		return fmt.Errorf("biome is not initialized")
	}
	b.environments[spec.Name] = cloneEnvironmentSpec(spec)
	return nil
}

func (b *Biome) GetEnvironment(name string) (EnvironmentSpec, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	spec, ok := b.environments[name]
	if !ok {
		return EnvironmentSpec{}, false
	}
	return cloneEnvironmentSpec(spec), true
}

func (b *Biome) Environments() []string {
	b.mu.RLock()
	defer b.mu.RUnlock()

	names := make([]string, 0, len(b.environments))
	for name := range b.environments {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Evaluate scores one profile against a registered environment, records
// the outcome and updates the environment's running summary and fitness
// history. A failed evaluation persists nothing.
func (b *Biome) Evaluate(ctx context.Context, req EvaluationRequest) (EvaluationResult, error) {
	b.mu.RLock()
	spec, ok := b.environments[req.Environment]
	started := b.started
	b.mu.RUnlock()

	if !started {
		return EvaluationResult{}, fmt.Errorf("biome is not initialized")
	}
	if !ok {
		return EvaluationResult{}, fmt.Errorf("environment not registered: %s", req.Environment)
	}
	if len(req.Profile) == 0 {
		return EvaluationResult{}, fmt.Errorf("profile is empty")
	}

	adaptatype, err := buildAdaptatype(req.Profile)
	if err != nil {
		return EvaluationResult{}, err
	}

	blendName := req.Blend
	if blendName == "" {
		blendName = fitness.MultiplicativeBlender{}.Name()
	}
	blender, err := fitness.ResolveBlender(blendName)
	if err != nil {
		return EvaluationResult{}, err
	}

	recorder := newScoreRecorder(req.Profile)
	score, err := adaptatype.FitnessObserved(spec.environment(), blender, trace.Tee(recorder, b.observer))
	if err != nil {
		b.metrics.ObserveEvaluation(req.Environment, metrics.StatusError, 0)
		return EvaluationResult{}, err
	}

	record := model.EvaluationRecord{
		VersionedRecord: model.VersionedRecord{
			SchemaVersion: storage.CurrentSchemaVersion,
			CodecVersion:  storage.CurrentCodecVersion,
		},
		ID:           req.ID,
		Environment:  req.Environment,
		Blend:        blendName,
		Fitness:      score.Value(),
		Scores:       recorder.scores,
		CreatedAtUTC: time.Now().UTC().Format(time.RFC3339),
	}
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	b.evalMu.Lock()
	defer b.evalMu.Unlock()

	if err := b.store.SaveEvaluation(ctx, record); err != nil {
		b.metrics.ObserveEvaluation(req.Environment, metrics.StatusError, 0)
		return EvaluationResult{}, err
	}
	if err := b.appendFitnessHistory(ctx, req.Environment, score.Value()); err != nil {
		b.metrics.ObserveEvaluation(req.Environment, metrics.StatusError, 0)
		return EvaluationResult{}, err
	}
	if err := b.updateEnvironmentSummary(ctx, spec, score.Value()); err != nil {
		b.metrics.ObserveEvaluation(req.Environment, metrics.StatusError, 0)
		return EvaluationResult{}, err
	}

	b.metrics.ObserveEvaluation(req.Environment, metrics.StatusOK, score.Value())
	return EvaluationResult{Record: record}, nil
}

func buildAdaptatype(profile []ProfileEntry) (eco.Adaptatype[float64], error) {
	adaptations := make([]eco.Adaptation[float64], 0, len(profile))
	for i, entry := range profile {
		if entry.Factor == "" {
			return eco.Adaptatype[float64]{}, fmt.Errorf("profile entry %d: factor is required", i)
		}
		shape, err := eco.ResolveScalarShape(entry.Shape)
		if err != nil {
			return eco.Adaptatype[float64]{}, fmt.Errorf("profile entry %d: %w", i, err)
		}
		adaptations = append(adaptations, eco.Adaptation[float64]{
			Factor: eco.Factor{Name: entry.Factor},
			Scorer: shape.Bind(entry.Trait),
		})
	}
	return eco.Adaptatype[float64]{Adaptations: adaptations}, nil
}

func (b *Biome) appendFitnessHistory(ctx context.Context, environment string, score float64) error {
	history, _, err := b.store.GetFitnessHistory(ctx, environment)
	if err != nil {
		return err
	}
	return b.store.SaveFitnessHistory(ctx, environment, append(history, score))
}

func (b *Biome) updateEnvironmentSummary(ctx context.Context, spec EnvironmentSpec, score float64) error {
	summary, ok, err := b.store.GetEnvironmentSummary(ctx, spec.Name)
	if err != nil {
		return err
	}
	if !ok {
		summary = model.EnvironmentSummary{
			VersionedRecord: model.VersionedRecord{
				SchemaVersion: storage.CurrentSchemaVersion,
				CodecVersion:  storage.CurrentCodecVersion,
			},
			Name:        spec.Name,
			Description: spec.Description,
		}
	}
	if score > summary.BestFitness {
		summary.BestFitness = score
	}
	summary.Evaluations++
	return b.store.SaveEnvironmentSummary(ctx, summary)
}

// scoreRecorder rebuilds per-factor score rows from trace events. Trait
// values are not visible in events (they are bound into capabilities), so
// it carries a per-factor queue taken from the profile in order.
type scoreRecorder struct {
	traits map[string][]float64
	scores []model.FactorScore
}

func newScoreRecorder(profile []ProfileEntry) *scoreRecorder {
	traits := make(map[string][]float64, len(profile))
	for _, entry := range profile {
		traits[entry.Factor] = append(traits[entry.Factor], entry.Trait)
	}
	return &scoreRecorder{traits: traits}
}

func (r *scoreRecorder) Observe(event trace.Event) {
	if event.Stage != trace.StageScore {
		return
	}
	var trait float64
	if queue := r.traits[event.Factor]; len(queue) > 0 {
		trait = queue[0]
		r.traits[event.Factor] = queue[1:]
	}
	// The platform evaluates scalar environments only, so score events
	// carry float64 values; anything else records as zero.
	observed, _ := event.Value.(float64)
	r.scores = append(r.scores, model.FactorScore{
		Factor:   event.Factor,
		Shape:    event.Shape,
		Trait:    trait,
		Observed: observed,
		Fitness:  event.Fitness,
	})
}

func validateEnvironmentSpec(spec EnvironmentSpec) error {
	if spec.Name == "" {
		return fmt.Errorf("environment name is required")
	}
	if len(spec.Factors) == 0 {
		return fmt.Errorf("environment %s has no factors", spec.Name)
	}
	return nil
}

func cloneEnvironmentSpec(spec EnvironmentSpec) EnvironmentSpec {
	factors := make(map[string]float64, len(spec.Factors))
	for name, value := range spec.Factors {
		factors[name] = value
	}
	spec.Factors = factors
	return spec
}
