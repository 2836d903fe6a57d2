package eco

import (
	"cmp"
	"errors"

	"ecotype/internal/fitness"
)

const (
	ShapeThreshold        = "threshold"
	ShapeInverseThreshold = "inverse_threshold"
)

// ShapedFunc pairs a descriptive shape label with a pure scoring function
// over (trait value, environment value). The function must return an error
// for inputs outside its domain rather than panic.
type ShapedFunc[T, X any] struct {
	Shape string
	Fn    func(trait T, env X) (fitness.Fitness, error)
}

// Bind fixes the organism's trait value, turning the shaped function into
// an EcoFitness capability for a single adaptation.
func (f ShapedFunc[T, X]) Bind(trait T) EcoFitness[X] {
	return boundShape[T, X]{shape: f, trait: trait}
}

type boundShape[T, X any] struct {
	shape ShapedFunc[T, X]
	trait T
}

func (b boundShape[T, X]) Fitness(ef EcoFactor[X]) (fitness.Fitness, error) {
	if b.shape.Fn == nil {
		return fitness.Fitness{}, errors.New("shaped function is not set")
	}
	return b.shape.Fn(b.trait, ef.Value)
}

func (b boundShape[T, X]) Shape() string {
	return b.shape.Shape
}

// Threshold scores full fitness when the trait value meets or exceeds the
// environment value, zero otherwise.
func Threshold[V cmp.Ordered]() ShapedFunc[V, V] {
	return ShapedFunc[V, V]{
		Shape: ShapeThreshold,
		Fn: func(trait, env V) (fitness.Fitness, error) {
			if trait >= env {
				return fitness.Full(), nil
			}
			return fitness.Zero(), nil
		},
	}
}

// InverseThreshold is the exact complement of Threshold: full fitness only
// when the trait value is strictly below the environment value.
func InverseThreshold[V cmp.Ordered]() ShapedFunc[V, V] {
	return ShapedFunc[V, V]{
		Shape: ShapeInverseThreshold,
		Fn: func(trait, env V) (fitness.Fitness, error) {
			if trait < env {
				return fitness.Full(), nil
			}
			return fitness.Zero(), nil
		},
	}
}
