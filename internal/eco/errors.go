package eco

import (
	"fmt"
	"sort"
	"strings"
)

// NoMatchingFactorsError reports an evaluation whose adaptation profile
// shares no factor names with the supplied environment. Evaluating an
// organism against a wholly unrelated environment is a programming error,
// not a valid score of zero.
type NoMatchingFactorsError struct {
	EnvironmentKeys []string
	ExpectedFactors []string
}

func (e *NoMatchingFactorsError) Error() string {
	return fmt.Sprintf("no matching factors: environment=[%s] expected=[%s]",
		strings.Join(e.EnvironmentKeys, ","), strings.Join(e.ExpectedFactors, ","))
}

// EvaluationError reports one adaptation's capability failing for its
// matched factor. It wraps the underlying cause.
type EvaluationError struct {
	Factor string
	Err    error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluate factor %s: %v", e.Factor, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}

func sortedKeys[X any](env Environment[X]) []string {
	keys := make([]string, 0, len(env))
	for key := range env {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
