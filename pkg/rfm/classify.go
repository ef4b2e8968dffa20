package rfm

import (
	"rfm-segmentation/pkg/models"
)

// Segment labels assigned by the score→label policy table.
const (
	SegmentBest             = "Best Customers"
	SegmentBigSpenders      = "Big Spenders"
	SegmentLost             = "Lost Customers"
	SegmentLoyal            = "Loyal Customers"
	SegmentNew              = "New Customers"
	SegmentFormerlyFrequent = "Formerly Frequent"
	SegmentFormerlyLoyal    = "Formerly Loyal"
	SegmentOneTimers        = "Recent One-Timers"
	SegmentNormal           = "Normal Customers"
	SegmentAboutToChurn     = "About To Churn"

	// SegmentUnclassified marks scores the policy table does not cover. It
	// still gets its own bucket in the distribution.
	SegmentUnclassified = "Unclassified"
)

// segmentTable is the fixed score→label policy. It deliberately does not
// cover all 27 possible scores: "133" has no rule and lands in
// SegmentUnclassified rather than being given an invented mapping.
var segmentTable = map[string]string{
	"333": SegmentBest,
	"323": SegmentBest,

	"223": SegmentBigSpenders,
	"233": SegmentBigSpenders,

	"111": SegmentLost,
	"112": SegmentLost,
	"113": SegmentLost,

	"321": SegmentLoyal,
	"322": SegmentLoyal,
	"331": SegmentLoyal,
	"332": SegmentLoyal,

	"311": SegmentNew,
	"312": SegmentNew,
	"313": SegmentNew,

	"231": SegmentFormerlyFrequent,
	"232": SegmentFormerlyFrequent,

	"131": SegmentFormerlyLoyal,
	"132": SegmentFormerlyLoyal,

	"211": SegmentOneTimers,
	"212": SegmentOneTimers,
	"213": SegmentOneTimers,

	"221": SegmentNormal,
	"222": SegmentNormal,

	"121": SegmentAboutToChurn,
	"122": SegmentAboutToChurn,
	"123": SegmentAboutToChurn,
}

// ClassifyScore looks up the label for one score string. The boolean
// reports whether the policy table covers the score.
func ClassifyScore(score string) (string, bool) {
	label, ok := segmentTable[score]
	if !ok {
		return SegmentUnclassified, false
	}
	return label, true
}

// Classify fills CustomerType on every row. Pure lookup, no state.
func Classify(table []models.CustomerRFM) []models.CustomerRFM {
	out := make([]models.CustomerRFM, len(table))
	for i, c := range table {
		c.CustomerType, _ = ClassifyScore(c.RFMScore)
		out[i] = c
	}
	return out
}
