package storage

import (
	"encoding/json"
	"errors"

	"ecotype/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeEvaluation(record model.EvaluationRecord) ([]byte, error) {
	return json.Marshal(record)
}

func DecodeEvaluation(data []byte) (model.EvaluationRecord, error) {
	var record model.EvaluationRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.EvaluationRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.EvaluationRecord{}, err
	}
	return record, nil
}

func EncodeEnvironmentSummary(summary model.EnvironmentSummary) ([]byte, error) {
	return json.Marshal(summary)
}

func DecodeEnvironmentSummary(data []byte) (model.EnvironmentSummary, error) {
	var summary model.EnvironmentSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return model.EnvironmentSummary{}, err
	}
	if err := checkVersion(summary.VersionedRecord); err != nil {
		return model.EnvironmentSummary{}, err
	}
	return summary, nil
}

func EncodeFitnessHistory(history []float64) ([]byte, error) {
	return json.Marshal(history)
}

func DecodeFitnessHistory(data []byte) ([]float64, error) {
	var history []float64
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, err
	}
	return history, nil
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
