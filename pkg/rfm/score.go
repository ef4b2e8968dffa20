package rfm

import (
	"fmt"
	"math"
	"sort"

	"rfm-segmentation/pkg/models"
)

// Frequency tiers are fixed policy, not derived from the data: ≤1 lowest,
// ≤2 mid, >2 highest.
const (
	freqLowThreshold  = 1
	freqHighThreshold = 2
)

// Thresholds are the per-metric segment boundaries for one run.
type Thresholds struct {
	RLow  float64 `json:"r_low"`
	RHigh float64 `json:"r_high"`
	FLow  float64 `json:"f_low"`
	FHigh float64 `json:"f_high"`
	MLow  float64 `json:"m_low"`
	MHigh float64 `json:"m_high"`
}

// quantile computes the q-th quantile with linear interpolation between
// order statistics, the method the original boundaries were derived with.
func quantile(values []float64, q float64) float64 {
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	h := q * float64(len(sorted)-1)
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// ComputeThresholds derives the 33rd/66th percentile boundaries for recency
// and monetary; frequency keeps its fixed tiers.
func ComputeThresholds(table []models.CustomerRFM) (Thresholds, error) {
	if len(table) < 3 {
		return Thresholds{}, ErrInsufficientData
	}
	rs := make([]float64, len(table))
	ms := make([]float64, len(table))
	for i, c := range table {
		rs[i] = float64(c.RecencyDays)
		ms[i] = c.Monetary
	}
	return Thresholds{
		RLow:  quantile(rs, .33),
		RHigh: quantile(rs, .66),
		FLow:  freqLowThreshold,
		FHigh: freqHighThreshold,
		MLow:  quantile(ms, .33),
		MHigh: quantile(ms, .66),
	}, nil
}

// scoreDirect: higher raw value, higher segment. A value sitting exactly on
// a boundary goes to the lower bucket.
func scoreDirect(x, low, high float64) int {
	switch {
	case x <= low:
		return 1
	case x <= high:
		return 2
	default:
		return 3
	}
}

// scoreInverted applies to recency only: a lower raw value means a more
// recent delivery, which is the better behavior.
func scoreInverted(x, low, high float64) int {
	switch {
	case x <= low:
		return 3
	case x <= high:
		return 2
	default:
		return 1
	}
}

// Score assigns the three segment digits and the concatenated R-F-M score
// string to every customer.
func Score(table []models.CustomerRFM) ([]models.CustomerRFM, Thresholds, error) {
	th, err := ComputeThresholds(table)
	if err != nil {
		return nil, Thresholds{}, err
	}
	out := make([]models.CustomerRFM, len(table))
	for i, c := range table {
		c.RSegment = scoreInverted(float64(c.RecencyDays), th.RLow, th.RHigh)
		c.FSegment = scoreDirect(float64(c.Frequency), th.FLow, th.FHigh)
		c.MSegment = scoreDirect(c.Monetary, th.MLow, th.MHigh)
		c.RFMScore = fmt.Sprintf("%d%d%d", c.RSegment, c.FSegment, c.MSegment)
		out[i] = c
	}
	return out, th, nil
}
