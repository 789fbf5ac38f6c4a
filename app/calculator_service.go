package app

import (
	"context"
	"fmt"
	"math"

	"numkit/domain/arithmetic"
	"numkit/domain/complexnum"
	"numkit/domain/core"
	"numkit/domain/geometry"
	"numkit/domain/stats"
	"numkit/internal"
	"numkit/models"
	"numkit/ports"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// CalculatorService runs numkit operations and records each successful one in
// the computation history. The API, CLI and server all go through it.
type CalculatorService struct {
	history      ports.HistoryRepository
	logger       *internal.Logger
	columnSlots  int64
	historyLimit int
}

// Result is the outcome of a scalar operation
type Result struct {
	ComputationID core.ID `json:"computation_id,omitempty"`
	Operation     string  `json:"operation"`
	Value         float64 `json:"value"`
}

// SummaryResult is the outcome of summarizing one sample
type SummaryResult struct {
	ComputationID core.ID        `json:"computation_id,omitempty"`
	Label         string         `json:"label,omitempty"`
	Summary       *stats.Summary `json:"summary"`
}

// ComplexResult is the outcome of a complex-number operation
type ComplexResult struct {
	ComputationID core.ID             `json:"computation_id,omitempty"`
	Operation     string              `json:"operation"`
	Result        *complexnum.Outcome `json:"result"`
}

// NewCalculatorService creates a calculator. history may be nil to disable
// recording; maxConcurrentColumns bounds SummarizeColumns.
func NewCalculatorService(history ports.HistoryRepository, logger *internal.Logger, maxConcurrentColumns int) *CalculatorService {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	if maxConcurrentColumns < 1 {
		maxConcurrentColumns = 1
	}
	return &CalculatorService{
		history:      history,
		logger:       logger,
		columnSlots:  int64(maxConcurrentColumns),
		historyLimit: defaultHistoryLimit,
	}
}

// WithHistoryLimit sets the number of computations History returns when the
// caller does not ask for a limit
func (s *CalculatorService) WithHistoryLimit(n int) *CalculatorService {
	if n > 0 && n <= maxHistoryLimit {
		s.historyLimit = n
	}
	return s
}

// Statistic computes a single named statistic of the sample
func (s *CalculatorService) Statistic(ctx context.Context, op stats.Operation, sample stats.Sample) (*Result, error) {
	value, err := stats.Compute(op, sample)
	if err != nil {
		return nil, err
	}
	id := s.record(ctx, models.KindStatistics, string(op), "", sample, value)
	return &Result{ComputationID: id, Operation: string(op), Value: value}, nil
}

// Summarize computes every statistic of the sample
func (s *CalculatorService) Summarize(ctx context.Context, label string, sample stats.Sample) (*SummaryResult, error) {
	summary, err := stats.Summarize(sample)
	if err != nil {
		return nil, err
	}
	id := s.record(ctx, models.KindStatistics, "summary", label, sample, summary)
	return &SummaryResult{ComputationID: id, Label: label, Summary: summary}, nil
}

// SummarizeColumns summarizes each column concurrently. Results keep the input
// order. The first failing column cancels the rest and its error is returned.
func (s *CalculatorService) SummarizeColumns(ctx context.Context, columns []stats.Column) ([]stats.ColumnSummary, error) {
	if len(columns) == 0 {
		return nil, core.NewInvalidArgumentError("no columns to summarize")
	}

	results := make([]stats.ColumnSummary, len(columns))
	sem := semaphore.NewWeighted(s.columnSlots)
	g, gctx := errgroup.WithContext(ctx)

	for i, col := range columns {
		if err := sem.Acquire(gctx, 1); err != nil {
			break
		}
		i, col := i, col
		g.Go(func() error {
			defer sem.Release(1)

			summary, err := stats.Summarize(col.Sample)
			if err != nil {
				return fmt.Errorf("column %q: %w", col.Name, err)
			}
			results[i] = stats.ColumnSummary{Name: col.Name, Summary: summary}
			s.record(gctx, models.KindStatistics, "summary", col.Name, col.Sample, summary)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Debug("[CalculatorService] summarized %d columns", len(columns))
	return results, nil
}

// Arithmetic applies an integer operation
func (s *CalculatorService) Arithmetic(ctx context.Context, op arithmetic.Operation, a, b int64) (*Result, error) {
	value, err := arithmetic.Apply(op, a, b)
	if err != nil {
		return nil, err
	}
	input := map[string]int64{"a": a, "b": b}
	if op == arithmetic.OperationFactorial {
		input = map[string]int64{"n": a}
	}
	id := s.record(ctx, models.KindArithmetic, string(op), "", input, value)
	return &Result{ComputationID: id, Operation: string(op), Value: value}, nil
}

// Geometry evaluates a geometry measure. Results that overflow float64 are
// rejected.
func (s *CalculatorService) Geometry(ctx context.Context, m geometry.Measure, args []float64) (*Result, error) {
	value, err := geometry.Evaluate(m, args)
	if err != nil {
		return nil, err
	}
	if math.IsInf(value, 0) || math.IsNaN(value) {
		return nil, core.NewInvalidArgumentError("%s overflows for arguments %v", m, args)
	}
	id := s.record(ctx, models.KindGeometry, string(m), "", args, value)
	return &Result{ComputationID: id, Operation: string(m), Value: value}, nil
}

// Complex applies a complex-number operation to real and imaginary parts
func (s *CalculatorService) Complex(ctx context.Context, op complexnum.Operation, args []float64) (*ComplexResult, error) {
	outcome, err := complexnum.Evaluate(op, args)
	if err != nil {
		return nil, err
	}
	id := s.record(ctx, models.KindComplex, string(op), "", args, outcome)
	return &ComplexResult{ComputationID: id, Operation: string(op), Result: outcome}, nil
}

// History returns recent computations, newest first. limit is capped at 100;
// zero or negative means the configured default (20 unless overridden).
func (s *CalculatorService) History(ctx context.Context, limit int) ([]*models.Computation, error) {
	if s.history == nil {
		return []*models.Computation{}, nil
	}
	if limit <= 0 {
		limit = s.historyLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}
	return s.history.ListRecent(ctx, limit)
}

// Computation returns one recorded computation
func (s *CalculatorService) Computation(ctx context.Context, id core.ID) (*models.Computation, error) {
	if s.history == nil {
		return nil, core.NewComputationNotFoundError(id)
	}
	return s.history.Get(ctx, id)
}

// record stores a computation. Failures are logged and never surface to the
// caller; the returned id is empty when nothing was stored.
func (s *CalculatorService) record(ctx context.Context, kind models.ComputationKind, op, label string, input, result interface{}) core.ID {
	if s.history == nil {
		return ""
	}
	computation, err := models.NewComputation(kind, op, label, input, result)
	if err != nil {
		s.logger.Warn("[CalculatorService] could not encode %s %s: %v", kind, op, err)
		return ""
	}
	if err := s.history.Save(ctx, computation); err != nil {
		s.logger.Warn("[CalculatorService] failed to record %s %s: %v", kind, op, err)
		return ""
	}
	return computation.ID
}
