package model

// VersionedRecord captures schema and codec evolution for persistent data.
type VersionedRecord struct {
	SchemaVersion int `json:"schema_version"`
	CodecVersion  int `json:"codec_version"`
}

// FactorScore is one adaptation's contribution to an evaluation.
type FactorScore struct {
	Factor   string  `json:"factor"`
	Shape    string  `json:"shape"`
	Trait    float64 `json:"trait"`
	Observed float64 `json:"observed"`
	Fitness  float64 `json:"fitness"`
}

// EvaluationRecord is the persisted outcome of scoring one adaptation
// profile against one environment snapshot.
type EvaluationRecord struct {
	VersionedRecord
	ID           string        `json:"id"`
	Environment  string        `json:"environment"`
	Blend        string        `json:"blend"`
	Fitness      float64       `json:"fitness"`
	Scores       []FactorScore `json:"scores"`
	CreatedAtUTC string        `json:"created_at_utc"`
}

// EnvironmentSummary aggregates evaluation outcomes per environment.
type EnvironmentSummary struct {
	VersionedRecord
	Name        string  `json:"name"`
	Description string  `json:"description"`
	BestFitness float64 `json:"best_fitness"`
	Evaluations int     `json:"evaluations"`
}
