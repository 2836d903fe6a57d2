package eco

import (
	"fmt"

	"ecotype/internal/fitness"
	"ecotype/internal/trace"
)

// Adaptatype is an organism's full phenotype response profile: an ordered
// sequence of adaptations, owned by value.
type Adaptatype[X any] struct {
	Adaptations []Adaptation[X]
}

// FactorNames returns the profile's expected factor names in adaptation
// order, duplicates included.
func (at Adaptatype[X]) FactorNames() []string {
	names := make([]string, 0, len(at.Adaptations))
	for _, a := range at.Adaptations {
		names = append(names, a.Factor.Name)
	}
	return names
}

type matchedPair[X any] struct {
	adaptation Adaptation[X]
	ecoFactor  EcoFactor[X]
}

// Fitness scores the profile against an environment snapshot and folds
// the matched results through the blend strategy. A nil blend falls back
// to the multiplicative reference blend.
func (at Adaptatype[X]) Fitness(env Environment[X], blend fitness.Blender) (fitness.Fitness, error) {
	return at.FitnessObserved(env, blend, trace.Nop{})
}

// FitnessObserved is Fitness with an injected trace sink. The observer
// receives intermediate values synchronously and cannot alter the result.
//
// Matching preserves adaptation order and drops unmatched adaptations.
// Zero matches fail with *NoMatchingFactorsError. Scoring is fail-fast and
// all-or-nothing: the first capability failure surfaces as an
// *EvaluationError and no partial score is returned.
func (at Adaptatype[X]) FitnessObserved(env Environment[X], blend fitness.Blender, observer trace.Observer) (fitness.Fitness, error) {
	if blend == nil {
		blend = fitness.MultiplicativeBlender{}
	}
	if observer == nil {
		observer = trace.Nop{}
	}

	matched := make([]matchedPair[X], 0, len(at.Adaptations))
	for _, adaptation := range at.Adaptations {
		ef, ok := env[adaptation.Factor.Name]
		if !ok {
			continue
		}
		matched = append(matched, matchedPair[X]{adaptation: adaptation, ecoFactor: ef})
		observer.Observe(trace.Event{
			Stage:  trace.StageMatch,
			Factor: adaptation.Factor.Name,
			Shape:  adaptation.Shape(),
			Value:  ef.Value,
		})
	}

	if len(matched) == 0 {
		return fitness.Fitness{}, &NoMatchingFactorsError{
			EnvironmentKeys: env.Keys(),
			ExpectedFactors: at.FactorNames(),
		}
	}

	scores := make([]fitness.Fitness, 0, len(matched))
	for _, pair := range matched {
		score, err := pair.adaptation.Fitness(pair.ecoFactor)
		if err != nil {
			return fitness.Fitness{}, &EvaluationError{Factor: pair.adaptation.Factor.Name, Err: err}
		}
		scores = append(scores, score)
		observer.Observe(trace.Event{
			Stage:   trace.StageScore,
			Factor:  pair.adaptation.Factor.Name,
			Shape:   pair.adaptation.Shape(),
			Value:   pair.ecoFactor.Value,
			Fitness: score.Value(),
		})
	}

	blended, err := blend.Blend(scores)
	if err != nil {
		return fitness.Fitness{}, fmt.Errorf("blend %s: %w", blend.Name(), err)
	}
	observer.Observe(trace.Event{
		Stage:   trace.StageBlend,
		Fitness: blended.Value(),
		Detail:  blend.Name(),
	})
	return blended, nil
}
