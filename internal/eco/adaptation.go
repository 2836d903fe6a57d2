package eco

import "ecotype/internal/fitness"

// EcoFitness is the capability at the center of the model: given one
// environmental datum, attempt to produce a fitness score. Failure is a
// first-class result, never a panic escaping the evaluation pipeline.
type EcoFitness[X any] interface {
	Fitness(ef EcoFactor[X]) (fitness.Fitness, error)
}

// EcoFitnessFunc lifts a plain function into an EcoFitness capability.
type EcoFitnessFunc[X any] func(ef EcoFactor[X]) (fitness.Fitness, error)

func (f EcoFitnessFunc[X]) Fitness(ef EcoFactor[X]) (fitness.Fitness, error) {
	return f(ef)
}

// Shaped is implemented by capabilities that carry a shape label, such as
// the result of ShapedFunc.Bind. Used only for tracing and records.
type Shaped interface {
	Shape() string
}

// Adaptation binds one factor to the capability scoring it. The caller is
// responsible for matching the EcoFactor's factor name before invoking;
// the adaptation delegates unchecked.
type Adaptation[X any] struct {
	Factor Factor
	Scorer EcoFitness[X]
}

func (a Adaptation[X]) Fitness(ef EcoFactor[X]) (fitness.Fitness, error) {
	return a.Scorer.Fitness(ef)
}

// Shape reports the scorer's shape label when it carries one.
func (a Adaptation[X]) Shape() string {
	if shaped, ok := a.Scorer.(Shaped); ok {
		return shaped.Shape()
	}
	return ""
}
