package forecast

import "fmt"

// PadStrategy selects the value used to left-pad a short history.
type PadStrategy string

const (
	PadZero PadStrategy = "zero"
	PadMean PadStrategy = "mean"
)

// ParsePadStrategy validates a configured pad strategy.
func ParsePadStrategy(s string) (PadStrategy, error) {
	switch PadStrategy(s) {
	case PadZero, PadMean:
		return PadStrategy(s), nil
	}
	return "", fmt.Errorf("unknown history pad strategy %q (want %q or %q)", s, PadZero, PadMean)
}

// PadValue returns the fallback value for raw under strategy. The mean of an
// empty history is 0.
func PadValue(raw []float64, strategy PadStrategy) float64 {
	if strategy != PadMean || len(raw) == 0 {
		return 0
	}
	var sum float64
	for _, v := range raw {
		sum += v
	}
	return sum / float64(len(raw))
}

// Normalize returns exactly window values from raw, which must be ordered
// oldest first. Longer histories keep their last window entries; shorter ones
// are left-padded with pad. An empty history yields window copies of pad,
// a flat low-confidence baseline for products that have never sold.
func Normalize(raw []float64, window int, pad float64) []float64 {
	out := make([]float64, window)
	if len(raw) >= window {
		copy(out, raw[len(raw)-window:])
		return out
	}
	missing := window - len(raw)
	for i := 0; i < missing; i++ {
		out[i] = pad
	}
	copy(out[missing:], raw)
	return out
}
