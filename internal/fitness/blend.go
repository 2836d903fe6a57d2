package fitness

import (
	"errors"
	"fmt"
)

var ErrEmptyBlend = errors.New("blend requires at least one fitness value")

// Blender folds an ordered sequence of per-factor scores into one overall
// score. Implementations must be pure: same input, same output, no state.
type Blender interface {
	Name() string
	Blend(scores []Fitness) (Fitness, error)
}

// MultiplicativeBlender is the reference blend: scores compound by
// iterated multiplication, so a single poorly matched factor drags the
// overall score toward zero.
type MultiplicativeBlender struct{}

func (MultiplicativeBlender) Name() string {
	return "multiplicative"
}

func (MultiplicativeBlender) Blend(scores []Fitness) (Fitness, error) {
	if len(scores) == 0 {
		return Fitness{}, ErrEmptyBlend
	}
	out := Full()
	for _, score := range scores {
		out = out.Combine(score)
	}
	return out, nil
}

// MinimumBlender scores an organism by its weakest adaptation.
type MinimumBlender struct{}

func (MinimumBlender) Name() string {
	return "minimum"
}

func (MinimumBlender) Blend(scores []Fitness) (Fitness, error) {
	if len(scores) == 0 {
		return Fitness{}, ErrEmptyBlend
	}
	out := scores[0]
	for _, score := range scores[1:] {
		if score.Value() < out.Value() {
			out = score
		}
	}
	return out, nil
}

// WeightedMeanBlender averages scores under per-position weights. Weights
// are normalized by their sum; an empty weight list means uniform weights.
type WeightedMeanBlender struct {
	Weights []float64
}

func (WeightedMeanBlender) Name() string {
	return "weighted_mean"
}

func (b WeightedMeanBlender) Blend(scores []Fitness) (Fitness, error) {
	if len(scores) == 0 {
		return Fitness{}, ErrEmptyBlend
	}
	weights := b.Weights
	if len(weights) == 0 {
		weights = make([]float64, len(scores))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(scores) {
		return Fitness{}, fmt.Errorf("weight count mismatch: got=%d want=%d", len(weights), len(scores))
	}

	var total, sum float64
	for i, score := range scores {
		if weights[i] < 0 {
			return Fitness{}, fmt.Errorf("negative weight at index %d: %v", i, weights[i])
		}
		total += weights[i]
		sum += weights[i] * score.Value()
	}
	if total == 0 {
		return Fitness{}, errors.New("weights sum to zero")
	}
	return New(sum / total)
}

// Func lifts a plain blend function into a named Blender.
func Func(name string, fn func([]Fitness) (Fitness, error)) Blender {
	return funcBlender{name: name, fn: fn}
}

type funcBlender struct {
	name string
	fn   func([]Fitness) (Fitness, error)
}

func (b funcBlender) Name() string {
	return b.name
}

func (b funcBlender) Blend(scores []Fitness) (Fitness, error) {
	return b.fn(scores)
}
