package storage

import (
	"context"
	"testing"

	"ecotype/internal/model"
)

func versioned() model.VersionedRecord {
	return model.VersionedRecord{SchemaVersion: CurrentSchemaVersion, CodecVersion: CurrentCodecVersion}
}

func sampleEvaluation(id, environment string, score float64) model.EvaluationRecord {
	return model.EvaluationRecord{
		VersionedRecord: versioned(),
		ID:              id,
		Environment:     environment,
		Blend:           "multiplicative",
		Fitness:         score,
		Scores: []model.FactorScore{
			{Factor: "temperature", Shape: "threshold", Trait: 12, Observed: 10, Fitness: score},
		},
		CreatedAtUTC: "2026-01-02T03:04:05Z",
	}
}

func TestMemoryStoreEvaluationRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	record := sampleEvaluation("eval-1", "tundra", 0.25)
	if err := store.SaveEvaluation(ctx, record); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.GetEvaluation(ctx, "eval-1")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.Fitness != 0.25 || got.Environment != "tundra" {
		t.Fatalf("unexpected record: %+v", got)
	}
	if len(got.Scores) != 1 || got.Scores[0].Factor != "temperature" {
		t.Fatalf("unexpected scores: %+v", got.Scores)
	}

	got.Scores[0].Fitness = 999
	again, _, _ := store.GetEvaluation(ctx, "eval-1")
	if again.Scores[0].Fitness == 999 {
		t.Fatal("expected stored scores to be isolated from returned slice")
	}
}

func TestMemoryStoreGetEvaluationMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	_, ok, err := store.GetEvaluation(ctx, "missing")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatal("expected missing evaluation")
	}
}

func TestMemoryStoreListEvaluationsFilterAndLimit(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	for i, spec := range []struct {
		id  string
		env string
	}{
		{"a", "tundra"}, {"b", "reef"}, {"c", "tundra"}, {"d", "tundra"},
	} {
		if err := store.SaveEvaluation(ctx, sampleEvaluation(spec.id, spec.env, float64(i)/10)); err != nil {
			t.Fatalf("save %s: %v", spec.id, err)
		}
	}

	all, err := store.ListEvaluations(ctx, "", 0)
	if err != nil {
		t.Fatalf("list all: %v", err)
	}
	if len(all) != 4 || all[0].ID != "a" || all[3].ID != "d" {
		t.Fatalf("unexpected full list: %+v", all)
	}

	tundra, err := store.ListEvaluations(ctx, "tundra", 2)
	if err != nil {
		t.Fatalf("list tundra: %v", err)
	}
	if len(tundra) != 2 || tundra[0].ID != "c" || tundra[1].ID != "d" {
		t.Fatalf("expected newest two tundra records, got %+v", tundra)
	}
}

func TestMemoryStoreSummaryRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	summary := model.EnvironmentSummary{
		VersionedRecord: versioned(),
		Name:            "tundra",
		Description:     "cold steppe snapshot",
		BestFitness:     0.8,
		Evaluations:     3,
	}
	if err := store.SaveEnvironmentSummary(ctx, summary); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, ok, err := store.GetEnvironmentSummary(ctx, "tundra")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got.BestFitness != 0.8 || got.Evaluations != 3 {
		t.Fatalf("unexpected summary: %+v", got)
	}

	if err := store.SaveEnvironmentSummary(ctx, model.EnvironmentSummary{VersionedRecord: versioned(), Name: "reef"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	list, err := store.ListEnvironmentSummaries(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 2 || list[0].Name != "reef" || list[1].Name != "tundra" {
		t.Fatalf("expected name-sorted summaries, got %+v", list)
	}
}

func TestMemoryStoreFitnessHistoryIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}

	history := []float64{0.1, 0.2}
	if err := store.SaveFitnessHistory(ctx, "tundra", history); err != nil {
		t.Fatalf("save: %v", err)
	}
	history[0] = 999

	got, ok, err := store.GetFitnessHistory(ctx, "tundra")
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got[0] != 0.1 || got[1] != 0.2 {
		t.Fatalf("stored history not isolated: %v", got)
	}

	if _, ok, _ := store.GetFitnessHistory(ctx, "reef"); ok {
		t.Fatal("expected missing history")
	}
}

func TestMemoryStoreReset(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	if err := store.Init(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := store.SaveEvaluation(ctx, sampleEvaluation("a", "tundra", 0.5)); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Reset(ctx); err != nil {
		t.Fatalf("reset: %v", err)
	}
	if _, ok, _ := store.GetEvaluation(ctx, "a"); ok {
		t.Fatal("expected reset to drop evaluations")
	}
}
