package rfm

import (
	"sort"

	"rfm-segmentation/pkg/models"
)

// Distribution counts customers per segment label, the Unclassified bucket
// included, with each bucket's share of the total. Buckets come back sorted
// by label so reruns produce identical tables. Percentages sum to 100
// within floating-point tolerance.
func Distribution(table []models.CustomerRFM) []models.SegmentBucket {
	if len(table) == 0 {
		return nil
	}
	counts := make(map[string]int)
	for _, c := range table {
		counts[c.CustomerType]++
	}
	labels := make([]string, 0, len(counts))
	for l := range counts {
		labels = append(labels, l)
	}
	sort.Strings(labels)

	total := float64(len(table))
	out := make([]models.SegmentBucket, 0, len(labels))
	for _, l := range labels {
		out = append(out, models.SegmentBucket{
			CustomerType: l,
			Customers:    counts[l],
			Percentage:   float64(counts[l]) * 100 / total,
		})
	}
	return out
}
