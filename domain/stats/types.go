package stats

import (
	"strings"

	"numkit/domain/core"
)

// Sample is an ordered, finite collection of integers owned by the caller.
// Every statistic requires a non-empty Sample.
type Sample []int

// Len returns the number of observations
func (s Sample) Len() int { return len(s) }

// IsEmpty reports whether the sample has no observations
func (s Sample) IsEmpty() bool { return len(s) == 0 }

// Floats converts the sample into a fresh float64 slice
func (s Sample) Floats() []float64 {
	out := make([]float64, len(s))
	for i, v := range s {
		out[i] = float64(v)
	}
	return out
}

// Quartiles holds the three quartile cut points of a sample. Q2 is the median.
type Quartiles struct {
	Q1 float64 `json:"q1"`
	Q2 float64 `json:"q2"`
	Q3 float64 `json:"q3"`
}

// Summary contains every descriptive statistic of a single sample
type Summary struct {
	Count              int       `json:"count"`
	Sum                int64     `json:"sum"`
	Min                int       `json:"min"`
	Max                int       `json:"max"`
	Range              int       `json:"range"`
	Mean               float64   `json:"mean"`
	Median             float64   `json:"median"`
	Variance           float64   `json:"variance"`
	StandardDeviation  float64   `json:"standard_deviation"`
	Modes              []int     `json:"modes"`
	Quartiles          Quartiles `json:"quartiles"`
	InterquartileRange float64   `json:"interquartile_range"`
}

// Column is a named sample, typically one spreadsheet column
type Column struct {
	Name   string `json:"name"`
	Sample Sample `json:"values"`
}

// ColumnSummary pairs a column name with its summary
type ColumnSummary struct {
	Name    string   `json:"name"`
	Summary *Summary `json:"summary"`
}

// Operation names a single scalar statistic
type Operation string

const (
	OperationMean              Operation = "mean"
	OperationMedian            Operation = "median"
	OperationVariance          Operation = "variance"
	OperationStandardDeviation Operation = "stddev"
	OperationRange             Operation = "range"
	OperationIQR               Operation = "iqr"
)

// Operations lists every scalar statistic in display order
func Operations() []Operation {
	return []Operation{
		OperationMean,
		OperationMedian,
		OperationVariance,
		OperationStandardDeviation,
		OperationRange,
		OperationIQR,
	}
}

// ParseOperation resolves an operation name. Matching is case-insensitive and
// accepts a few long-form aliases.
func ParseOperation(name string) (Operation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "mean", "average":
		return OperationMean, nil
	case "median":
		return OperationMedian, nil
	case "variance", "var":
		return OperationVariance, nil
	case "stddev", "std", "standard_deviation", "standard-deviation":
		return OperationStandardDeviation, nil
	case "range":
		return OperationRange, nil
	case "iqr", "interquartile_range":
		return OperationIQR, nil
	}
	return "", core.NewInvalidArgumentError("unknown statistic %q", name)
}
