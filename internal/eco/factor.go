// Package eco models how an organism's adaptation profile is scored
// against a snapshot of its environment.
package eco

// Factor names one category of environmental influence, e.g. temperature.
// The name uniquely identifies the category within one environment.
type Factor struct {
	Name string
}

// EcoFactor is a concrete environmental datum: a factor paired with the
// value it takes in one environment snapshot.
type EcoFactor[X any] struct {
	Factor Factor
	Value  X
}

// Environment maps factor names to their snapshot values. Keys must equal
// the named factor of each entry; the map's key uniqueness is what makes
// duplicate environment factors impossible.
type Environment[X any] map[string]EcoFactor[X]

// NewEnvironment builds an environment keyed by each entry's factor name.
// Later entries overwrite earlier ones with the same factor.
func NewEnvironment[X any](factors ...EcoFactor[X]) Environment[X] {
	env := make(Environment[X], len(factors))
	for _, ef := range factors {
		env[ef.Factor.Name] = ef
	}
	return env
}

// Keys returns the environment's factor names in sorted order.
func (env Environment[X]) Keys() []string {
	return sortedKeys(env)
}
