package stats

import (
	"fmt"
	"math"
	"slices"

	"numkit/domain/core"

	mstats "github.com/montanaflynn/stats"
)

// requireNonEmpty is the shared guard for every statistic
func requireNonEmpty(sample Sample) error {
	if sample.IsEmpty() {
		return core.ErrEmptySample
	}
	return nil
}

func invalid(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", core.ErrInvalidArgument, op, err)
}

// Mean returns the arithmetic mean of the sample
func Mean(sample Sample) (float64, error) {
	if err := requireNonEmpty(sample); err != nil {
		return 0, err
	}
	mean, err := mstats.Mean(sample.Floats())
	if err != nil {
		return 0, invalid("mean", err)
	}
	return mean, nil
}

// Median returns the middle value of the sorted sample, or the mean of the two
// middle values when the count is even. Sorting happens on a private copy.
func Median(sample Sample) (float64, error) {
	if err := requireNonEmpty(sample); err != nil {
		return 0, err
	}
	median, err := mstats.Median(sample.Floats())
	if err != nil {
		return 0, invalid("median", err)
	}
	return median, nil
}

// Variance returns the population variance (divides by n, not n-1)
func Variance(sample Sample) (float64, error) {
	if err := requireNonEmpty(sample); err != nil {
		return 0, err
	}
	variance, err := mstats.PopulationVariance(sample.Floats())
	if err != nil {
		return 0, invalid("variance", err)
	}
	return variance, nil
}

// StandardDeviation returns the square root of the population variance
func StandardDeviation(sample Sample) (float64, error) {
	variance, err := Variance(sample)
	if err != nil {
		return 0, err
	}
	return math.Sqrt(variance), nil
}

// Mode returns every value sharing the highest frequency, ascending
func Mode(sample Sample) ([]int, error) {
	if err := requireNonEmpty(sample); err != nil {
		return nil, err
	}

	counts := make(map[int]int, len(sample))
	best := 0
	for _, v := range sample {
		counts[v]++
		if counts[v] > best {
			best = counts[v]
		}
	}

	modes := make([]int, 0, 1)
	for v, n := range counts {
		if n == best {
			modes = append(modes, v)
		}
	}
	slices.Sort(modes)
	return modes, nil
}

// Range returns the difference between the largest and smallest values
func Range(sample Sample) (int, error) {
	if err := requireNonEmpty(sample); err != nil {
		return 0, err
	}
	return slices.Max(sample) - slices.Min(sample), nil
}

// QuartilesOf splits the sorted sample at its median. Q1 and Q3 are the medians
// of the lower and upper halves; the middle element of an odd-length sample
// belongs to neither half.
func QuartilesOf(sample Sample) (Quartiles, error) {
	if err := requireNonEmpty(sample); err != nil {
		return Quartiles{}, err
	}
	if sample.Len() == 1 {
		v := float64(sample[0])
		return Quartiles{Q1: v, Q2: v, Q3: v}, nil
	}
	q, err := mstats.Quartile(sample.Floats())
	if err != nil {
		return Quartiles{}, invalid("quartiles", err)
	}
	return Quartiles{Q1: q.Q1, Q2: q.Q2, Q3: q.Q3}, nil
}

// InterquartileRange returns Q3 - Q1
func InterquartileRange(sample Sample) (float64, error) {
	q, err := QuartilesOf(sample)
	if err != nil {
		return 0, err
	}
	return q.Q3 - q.Q1, nil
}

// Compute evaluates a single named statistic
func Compute(op Operation, sample Sample) (float64, error) {
	switch op {
	case OperationMean:
		return Mean(sample)
	case OperationMedian:
		return Median(sample)
	case OperationVariance:
		return Variance(sample)
	case OperationStandardDeviation:
		return StandardDeviation(sample)
	case OperationRange:
		r, err := Range(sample)
		return float64(r), err
	case OperationIQR:
		return InterquartileRange(sample)
	}
	return 0, core.NewInvalidArgumentError("unknown statistic %q", op)
}

// Summarize computes every statistic of the sample
func Summarize(sample Sample) (*Summary, error) {
	if err := requireNonEmpty(sample); err != nil {
		return nil, err
	}

	var sum int64
	for _, v := range sample {
		sum += int64(v)
	}

	mean, err := Mean(sample)
	if err != nil {
		return nil, err
	}
	median, err := Median(sample)
	if err != nil {
		return nil, err
	}
	variance, err := Variance(sample)
	if err != nil {
		return nil, err
	}
	modes, err := Mode(sample)
	if err != nil {
		return nil, err
	}
	quartiles, err := QuartilesOf(sample)
	if err != nil {
		return nil, err
	}

	minVal, maxVal := slices.Min(sample), slices.Max(sample)

	return &Summary{
		Count:              sample.Len(),
		Sum:                sum,
		Min:                minVal,
		Max:                maxVal,
		Range:              maxVal - minVal,
		Mean:               mean,
		Median:             median,
		Variance:           variance,
		StandardDeviation:  math.Sqrt(variance),
		Modes:              modes,
		Quartiles:          quartiles,
		InterquartileRange: quartiles.Q3 - quartiles.Q1,
	}, nil
}
