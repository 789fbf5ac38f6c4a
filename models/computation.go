package models

import (
	"encoding/json"
	"fmt"
	"time"

	"numkit/domain/core"

	"github.com/jmoiron/sqlx/types"
)

// ComputationKind groups computations by the domain package that produced them
type ComputationKind string

const (
	KindStatistics ComputationKind = "statistics"
	KindArithmetic ComputationKind = "arithmetic"
	KindGeometry   ComputationKind = "geometry"
	KindComplex    ComputationKind = "complex"
)

// Computation is one recorded invocation of a numkit operation
type Computation struct {
	ID        core.ID         `json:"id" db:"id"`
	Kind      ComputationKind `json:"kind" db:"kind"`
	Operation string          `json:"operation" db:"operation"`
	Label     string          `json:"label,omitempty" db:"label"`
	Input     types.JSONText  `json:"input" db:"input"`
	Result    types.JSONText  `json:"result" db:"result"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}

// NewComputation builds a record with a fresh time-ordered ID. Input and result
// are stored as JSON.
func NewComputation(kind ComputationKind, operation, label string, input, result interface{}) (*Computation, error) {
	in, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("encode %s input: %w", operation, err)
	}
	out, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode %s result: %w", operation, err)
	}
	return &Computation{
		ID:        core.NewID(),
		Kind:      kind,
		Operation: operation,
		Label:     label,
		Input:     types.JSONText(in),
		Result:    types.JSONText(out),
		CreatedAt: time.Now().UTC(),
	}, nil
}

// DecodeResult unmarshals the stored result into v
func (c *Computation) DecodeResult(v interface{}) error {
	return c.Result.Unmarshal(v)
}
