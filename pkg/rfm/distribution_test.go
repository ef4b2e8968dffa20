package rfm

import (
	"math"
	"testing"

	"rfm-segmentation/pkg/models"
)

func TestDistribution_CountsAndPercentages(t *testing.T) {
	table := []models.CustomerRFM{
		{CustomerID: "a", CustomerType: SegmentBest},
		{CustomerID: "b", CustomerType: SegmentBest},
		{CustomerID: "c", CustomerType: SegmentLost},
		{CustomerID: "d", CustomerType: SegmentLost},
	}
	got := Distribution(table)
	if len(got) != 2 {
		t.Fatalf("got %d buckets, want 2", len(got))
	}
	for _, b := range got {
		if b.Customers != 2 || b.Percentage != 50 {
			t.Fatalf("unexpected bucket: %+v", b)
		}
	}
}

func TestDistribution_PercentagesSumTo100(t *testing.T) {
	table := []models.CustomerRFM{
		{CustomerID: "a", CustomerType: SegmentBest},
		{CustomerID: "b", CustomerType: SegmentLost},
		{CustomerID: "c", CustomerType: SegmentLost},
		{CustomerID: "d", CustomerType: SegmentNormal},
		{CustomerID: "e", CustomerType: SegmentNormal},
		{CustomerID: "f", CustomerType: SegmentNormal},
		{CustomerID: "g", CustomerType: SegmentUnclassified},
	}
	sum := 0.0
	for _, b := range Distribution(table) {
		sum += b.Percentage
	}
	if math.Abs(sum-100) > 1e-6 {
		t.Fatalf("percentages sum to %v, want 100 within 1e-6", sum)
	}
}

func TestDistribution_UnclassifiedBucketIsVisible(t *testing.T) {
	table := []models.CustomerRFM{
		{CustomerID: "a", CustomerType: SegmentBest},
		{CustomerID: "b", CustomerType: SegmentUnclassified},
	}
	got := Distribution(table)
	found := false
	for _, b := range got {
		if b.CustomerType == SegmentUnclassified {
			found = true
			if b.Customers != 1 {
				t.Fatalf("unclassified count = %d, want 1", b.Customers)
			}
		}
	}
	if !found {
		t.Fatal("unclassified customers must appear in the distribution")
	}
}

func TestDistribution_Empty(t *testing.T) {
	if got := Distribution(nil); got != nil {
		t.Fatalf("got %v, want nil", got)
	}
}
