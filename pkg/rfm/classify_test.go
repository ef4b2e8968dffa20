package rfm

import (
	"fmt"
	"testing"

	"rfm-segmentation/pkg/models"
)

func TestClassifyScore_KnownLabels(t *testing.T) {
	cases := map[string]string{
		"333": SegmentBest,
		"323": SegmentBest,
		"233": SegmentBigSpenders,
		"111": SegmentLost,
		"331": SegmentLoyal,
		"312": SegmentNew,
		"232": SegmentFormerlyFrequent,
		"132": SegmentFormerlyLoyal,
		"213": SegmentOneTimers,
		"222": SegmentNormal,
		"121": SegmentAboutToChurn,
	}
	for score, want := range cases {
		got, ok := ClassifyScore(score)
		if !ok {
			t.Fatalf("score %q should be covered", score)
		}
		if got != want {
			t.Fatalf("score %q → %q, want %q", score, got, want)
		}
	}
}

func TestClassifyScore_GapIsExplicit(t *testing.T) {
	got, ok := ClassifyScore("133")
	if ok {
		t.Fatal(`"133" must not be covered by the policy table`)
	}
	if got != SegmentUnclassified {
		t.Fatalf(`"133" → %q, want %q`, got, SegmentUnclassified)
	}
}

func TestClassifyScore_AllPossibleScores(t *testing.T) {
	// Segments only take values 1..3, so exactly 27 scores are reachable.
	// Every one must resolve to some label, with "133" as the single gap.
	var unmapped []string
	for r := 1; r <= 3; r++ {
		for f := 1; f <= 3; f++ {
			for m := 1; m <= 3; m++ {
				score := fmt.Sprintf("%d%d%d", r, f, m)
				label, ok := ClassifyScore(score)
				if label == "" {
					t.Fatalf("score %q resolved to an empty label", score)
				}
				if !ok {
					unmapped = append(unmapped, score)
				}
			}
		}
	}
	if len(unmapped) != 1 || unmapped[0] != "133" {
		t.Fatalf("unmapped scores = %v, want [133]", unmapped)
	}
}

func TestClassify_FillsEveryRow(t *testing.T) {
	table := []models.CustomerRFM{
		{CustomerID: "a", RFMScore: "333"},
		{CustomerID: "b", RFMScore: "133"},
	}
	got := Classify(table)
	if got[0].CustomerType != SegmentBest {
		t.Fatalf("got %q, want %q", got[0].CustomerType, SegmentBest)
	}
	if got[1].CustomerType != SegmentUnclassified {
		t.Fatalf("got %q, want %q", got[1].CustomerType, SegmentUnclassified)
	}
}
