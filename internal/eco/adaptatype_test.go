package eco

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"ecotype/internal/fitness"
	"ecotype/internal/trace"
)

func scalarEnv(values map[string]float64) Environment[float64] {
	env := make(Environment[float64], len(values))
	for name, value := range values {
		env[name] = EcoFactor[float64]{Factor: Factor{Name: name}, Value: value}
	}
	return env
}

func thresholdAdaptation(factor string, trait float64) Adaptation[float64] {
	return Adaptation[float64]{
		Factor: Factor{Name: factor},
		Scorer: Threshold[float64]().Bind(trait),
	}
}

func TestFitnessSingleMatchingThreshold(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 10})

	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{thresholdAdaptation("temperature", 12)}}
	got, err := at.Fitness(env, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 1 {
		t.Fatalf("trait 12 vs env 10: got=%v want=1", got.Value())
	}

	at = Adaptatype[float64]{Adaptations: []Adaptation[float64]{thresholdAdaptation("temperature", 8)}}
	got, err = at.Fitness(env, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 0 {
		t.Fatalf("trait 8 vs env 10: got=%v want=0", got.Value())
	}
}

func TestFitnessBlendsMatchedScoresMultiplicatively(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1, "humidity": 1})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{
		constantAdaptation("temperature", 0.5),
		constantAdaptation("humidity", 0.4),
	}}

	got, err := at.Fitness(env, fitness.MultiplicativeBlender{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got.Value()-0.2) > 1e-9 {
		t.Fatalf("unexpected blended fitness: got=%v want=0.2", got.Value())
	}
}

func TestFitnessDisjointFactorsFail(t *testing.T) {
	env := scalarEnv(map[string]float64{"humidity": 0.4})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{thresholdAdaptation("temperature", 5)}}

	_, err := at.Fitness(env, nil)
	var noMatch *NoMatchingFactorsError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected *NoMatchingFactorsError, got %v", err)
	}
	if len(noMatch.EnvironmentKeys) != 1 || noMatch.EnvironmentKeys[0] != "humidity" {
		t.Fatalf("unexpected environment keys: %v", noMatch.EnvironmentKeys)
	}
	if len(noMatch.ExpectedFactors) != 1 || noMatch.ExpectedFactors[0] != "temperature" {
		t.Fatalf("unexpected expected factors: %v", noMatch.ExpectedFactors)
	}
}

func TestFitnessEmptyAdaptatypeFails(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 10})
	_, err := Adaptatype[float64]{}.Fitness(env, nil)
	var noMatch *NoMatchingFactorsError
	if !errors.As(err, &noMatch) {
		t.Fatalf("expected *NoMatchingFactorsError, got %v", err)
	}
}

func TestFitnessDropsUnmatchedAdaptations(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{
		constantAdaptation("temperature", 0.5),
		constantAdaptation("salinity", 0.1),
	}}

	got, err := at.Fitness(env, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 0.5 {
		t.Fatalf("unmatched adaptation leaked into blend: got=%v want=0.5", got.Value())
	}
}

func TestFitnessFailFastOnFirstCapabilityFailure(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1, "humidity": 1, "salinity": 1})
	cause := errors.New("sensor saturated")
	invoked := []string{}
	record := func(factor string, result fitness.Fitness, err error) Adaptation[float64] {
		return Adaptation[float64]{
			Factor: Factor{Name: factor},
			Scorer: EcoFitnessFunc[float64](func(EcoFactor[float64]) (fitness.Fitness, error) {
				invoked = append(invoked, factor)
				return result, err
			}),
		}
	}

	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{
		record("temperature", fitness.Full(), nil),
		record("humidity", fitness.Fitness{}, cause),
		record("salinity", fitness.Full(), nil),
	}}

	_, err := at.Fitness(env, nil)
	var evalErr *EvaluationError
	if !errors.As(err, &evalErr) {
		t.Fatalf("expected *EvaluationError, got %v", err)
	}
	if evalErr.Factor != "humidity" {
		t.Fatalf("unexpected failing factor: %s", evalErr.Factor)
	}
	if !errors.Is(err, cause) {
		t.Fatalf("expected wrapped cause, got %v", err)
	}
	if len(invoked) != 2 {
		t.Fatalf("expected fail-fast after second invocation, got %v", invoked)
	}
}

func TestFitnessDuplicateFactorsBothContribute(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{
		constantAdaptation("temperature", 0.5),
		constantAdaptation("temperature", 0.5),
	}}

	got, err := at.Fitness(env, fitness.MultiplicativeBlender{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if math.Abs(got.Value()-0.25) > 1e-9 {
		t.Fatalf("duplicate factors should both blend: got=%v want=0.25", got.Value())
	}
}

func TestFitnessCustomBlendStrategy(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1, "humidity": 1})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{
		constantAdaptation("temperature", 0.9),
		constantAdaptation("humidity", 0.1),
	}}

	got, err := at.Fitness(env, fitness.MinimumBlender{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Value() != 0.1 {
		t.Fatalf("unexpected minimum blend: got=%v want=0.1", got.Value())
	}
}

func TestFitnessObservedEmitsOrderedEvents(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1, "humidity": 1})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{
		constantAdaptation("temperature", 0.5),
		constantAdaptation("humidity", 0.4),
	}}

	var events []trace.Event
	sink := observerFunc(func(e trace.Event) { events = append(events, e) })
	got, err := at.FitnessObserved(env, nil, sink)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantStages := []string{trace.StageMatch, trace.StageMatch, trace.StageScore, trace.StageScore, trace.StageBlend}
	if len(events) != len(wantStages) {
		t.Fatalf("unexpected event count: got=%d want=%d", len(events), len(wantStages))
	}
	for i, want := range wantStages {
		if events[i].Stage != want {
			t.Fatalf("unexpected stage at %d: got=%s want=%s", i, events[i].Stage, want)
		}
	}
	if events[2].Factor != "temperature" || events[3].Factor != "humidity" {
		t.Fatalf("score events out of adaptation order: %v", events)
	}
	if math.Abs(events[4].Fitness-got.Value()) > 1e-12 {
		t.Fatalf("blend event mismatch: got=%v want=%v", events[4].Fitness, got.Value())
	}
	if events[4].Detail != "multiplicative" {
		t.Fatalf("unexpected blend strategy label: %s", events[4].Detail)
	}
}

func TestFitnessObserverCannotChangeResult(t *testing.T) {
	env := scalarEnv(map[string]float64{"temperature": 1})
	at := Adaptatype[float64]{Adaptations: []Adaptation[float64]{constantAdaptation("temperature", 0.5)}}

	silent, err := at.Fitness(env, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	observed, err := at.FitnessObserved(env, nil, observerFunc(func(trace.Event) {}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if silent.Value() != observed.Value() {
		t.Fatalf("observer changed result: got=%v want=%v", observed.Value(), silent.Value())
	}
}

func TestNoMatchingFactorsErrorMessage(t *testing.T) {
	err := &NoMatchingFactorsError{
		EnvironmentKeys: []string{"humidity"},
		ExpectedFactors: []string{"temperature"},
	}
	want := "no matching factors: environment=[humidity] expected=[temperature]"
	if err.Error() != want {
		t.Fatalf("unexpected message: got=%q want=%q", err.Error(), want)
	}
}

func TestEvaluationErrorWrapsCause(t *testing.T) {
	cause := fmt.Errorf("value absent")
	err := &EvaluationError{Factor: "temperature", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause to be unwrappable")
	}
}

func constantAdaptation(factor string, value float64) Adaptation[float64] {
	return Adaptation[float64]{
		Factor: Factor{Name: factor},
		Scorer: EcoFitnessFunc[float64](func(EcoFactor[float64]) (fitness.Fitness, error) {
			return fitness.New(value)
		}),
	}
}

type observerFunc func(trace.Event)

func (f observerFunc) Observe(e trace.Event) { f(e) }
