package fitness

import (
	"fmt"
	"math"
)

// Fitness is a viability score bounded to [0,1]. The zero value is a valid
// score of zero; out-of-range values are rejected at construction so an
// invalid Fitness can never reach an evaluation pipeline.
type Fitness struct {
	value float64
}

// DomainError reports an attempt to construct a Fitness outside [0,1].
type DomainError struct {
	Value float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("fitness value out of range [0,1]: %v", e.Value)
}

func New(value float64) (Fitness, error) {
	if math.IsNaN(value) || value < 0 || value > 1 {
		return Fitness{}, &DomainError{Value: value}
	}
	return Fitness{value: value}, nil
}

// Zero is the lowest viability score.
func Zero() Fitness {
	return Fitness{}
}

// Full is the highest viability score.
func Full() Fitness {
	return Fitness{value: 1}
}

func (f Fitness) Value() float64 {
	return f.value
}

// Combine multiplies two scores. The product of two values in [0,1] stays
// in [0,1], so the result needs no revalidation.
func (f Fitness) Combine(other Fitness) Fitness {
	return Fitness{value: f.value * other.value}
}
