package fingerprint

import (
	"math"
	"math/bits"

	"github.com/turtacn/AtomSense/pkg/errors"
)

// Metric names a fingerprint comparison algorithm.
type Metric string

const (
	MetricTanimoto Metric = "tanimoto"
	MetricDice     Metric = "dice"
	MetricCosine   Metric = "cosine"
)

// IsValid reports whether the metric is one this package computes.
func (m Metric) IsValid() bool {
	switch m {
	case MetricTanimoto, MetricDice, MetricCosine:
		return true
	default:
		return false
	}
}

func (m Metric) String() string { return string(m) }

// ParseMetric reads a metric from its configuration spelling.  The empty
// string selects Tanimoto.
func ParseMetric(s string) (Metric, error) {
	if s == "" {
		return MetricTanimoto, nil
	}
	m := Metric(s)
	if m.IsValid() {
		return m, nil
	}
	return "", errors.InvalidParam("unsupported similarity metric").WithDetail(s)
}

// Calculator computes one similarity metric over two fingerprints of the
// same bit width.
type Calculator interface {
	Calculate(a, b *Fingerprint) (float64, error)
	Metric() Metric
}

// NewCalculator returns the calculator for a metric.
func NewCalculator(m Metric) (Calculator, error) {
	switch m {
	case MetricTanimoto:
		return &TanimotoCalculator{}, nil
	case MetricDice:
		return &DiceCalculator{}, nil
	case MetricCosine:
		return &CosineCalculator{}, nil
	default:
		return nil, errors.InvalidParam("unsupported similarity metric").WithDetail(string(m))
	}
}

func checkComparable(a, b *Fingerprint) error {
	if a == nil || b == nil {
		return errors.InvalidParam("similarity requires two fingerprints")
	}
	if a.Length != b.Length {
		return errors.InvalidParam("fingerprints must share one bit width")
	}
	return nil
}

// TanimotoCalculator scores |A∩B| / |A∪B|.
type TanimotoCalculator struct{}

func (c *TanimotoCalculator) Calculate(a, b *Fingerprint) (float64, error) {
	if err := checkComparable(a, b); err != nil {
		return 0, err
	}
	inter, union := 0, 0
	for i := range a.Bits {
		inter += bits.OnesCount8(a.Bits[i] & b.Bits[i])
		union += bits.OnesCount8(a.Bits[i] | b.Bits[i])
	}
	if union == 0 {
		return 0, nil
	}
	return float64(inter) / float64(union), nil
}

func (c *TanimotoCalculator) Metric() Metric { return MetricTanimoto }

// DiceCalculator scores 2|A∩B| / (|A|+|B|).
type DiceCalculator struct{}

func (c *DiceCalculator) Calculate(a, b *Fingerprint) (float64, error) {
	if err := checkComparable(a, b); err != nil {
		return 0, err
	}
	inter := 0
	for i := range a.Bits {
		inter += bits.OnesCount8(a.Bits[i] & b.Bits[i])
	}
	denom := a.OnBits + b.OnBits
	if denom == 0 {
		return 0, nil
	}
	return 2 * float64(inter) / float64(denom), nil
}

func (c *DiceCalculator) Metric() Metric { return MetricDice }

// CosineCalculator scores |A∩B| / sqrt(|A|·|B|).
type CosineCalculator struct{}

func (c *CosineCalculator) Calculate(a, b *Fingerprint) (float64, error) {
	if err := checkComparable(a, b); err != nil {
		return 0, err
	}
	if a.OnBits == 0 || b.OnBits == 0 {
		return 0, nil
	}
	inter := 0
	for i := range a.Bits {
		inter += bits.OnesCount8(a.Bits[i] & b.Bits[i])
	}
	return float64(inter) / math.Sqrt(float64(a.OnBits)*float64(b.OnBits)), nil
}

func (c *CosineCalculator) Metric() Metric { return MetricCosine }

// Tanimoto is the shorthand for the default metric.
func Tanimoto(a, b *Fingerprint) (float64, error) {
	return (&TanimotoCalculator{}).Calculate(a, b)
}

// Similarity grade boundaries for reporting.
const (
	ThresholdIdentical = 0.99
	ThresholdHigh      = 0.85
	ThresholdModerate  = 0.70
	ThresholdLow       = 0.50
)

// Grade buckets a similarity score into a report label.
func Grade(score float64) string {
	switch {
	case score >= ThresholdIdentical:
		return "identical"
	case score >= ThresholdHigh:
		return "high"
	case score >= ThresholdModerate:
		return "moderate"
	case score >= ThresholdLow:
		return "low"
	default:
		return "dissimilar"
	}
}
