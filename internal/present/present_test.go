package present

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/abhisek/cropcast/internal/predict"
)

func TestConfidenceTier_Boundaries(t *testing.T) {
	tests := []struct {
		p    float64
		want Tier
	}{
		{100, TierHigh},
		{15, TierHigh},
		{14.999, TierMedium},
		{10, TierMedium},
		{9.999, TierLow},
		{0, TierLow},
		{-3, TierLow},
		{math.NaN(), TierLow},
	}
	for _, tt := range tests {
		if got := ConfidenceTier(tt.p); got != tt.want {
			t.Errorf("ConfidenceTier(%v) = %s, want %s", tt.p, got, tt.want)
		}
	}
}

func TestTierBadges(t *testing.T) {
	if TierHigh.Badge() != "Strong" || TierMedium.Badge() != "Moderate" || TierLow.Badge() != "Weak" {
		t.Errorf("unexpected badges: %s/%s/%s", TierHigh.Badge(), TierMedium.Badge(), TierLow.Badge())
	}
}

func TestRankLabel(t *testing.T) {
	want := []string{"1st", "2nd", "3rd", "4th", "5th", "Leaf", "Leaf"}
	for i, w := range want {
		if got := RankLabel(i); got != w {
			t.Errorf("RankLabel(%d) = %q, want %q", i, got, w)
		}
	}
	if got := RankLabel(-1); got != FallbackLabel {
		t.Errorf("RankLabel(-1) = %q, want fallback", got)
	}
}

func TestDisplayName(t *testing.T) {
	if KnownCrops() != 22 {
		t.Fatalf("expected 22 known crops, got %d", KnownCrops())
	}

	tests := map[string]string{
		"rice":          "Rice",
		"maize":         "Corn",
		"Maize":         "Corn",
		"  KIDNEYBEANS": "Bean",
		"pigeonpeas":    "Pea",
		"durian":        "Leaf",
		"":              "Leaf",
	}
	for crop, want := range tests {
		if got := DisplayName(crop); got != want {
			t.Errorf("DisplayName(%q) = %q, want %q", crop, got, want)
		}
	}
}

func TestPresent_ThreeTiers(t *testing.T) {
	preds := []predict.Prediction{
		{Crop: "rice", Probability: 18},
		{Crop: "maize", Probability: 12},
		{Crop: "cotton", Probability: 8},
	}

	got := Present(preds)
	want := []RankedView{
		{Rank: 1, RankLabel: "1st", Crop: "rice", DisplayName: "Rice", Probability: 18, Tier: TierHigh},
		{Rank: 2, RankLabel: "2nd", Crop: "maize", DisplayName: "Corn", Probability: 12, Tier: TierMedium},
		{Rank: 3, RankLabel: "3rd", Crop: "cotton", DisplayName: "Cotton", Probability: 8, Tier: TierLow},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Present mismatch (-want +got):\n%s", diff)
	}
}

func TestPresent_Empty(t *testing.T) {
	got := Present(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("Present(nil) = %#v, want empty non-nil slice", got)
	}
	got = Present([]predict.Prediction{})
	if got == nil || len(got) != 0 {
		t.Errorf("Present([]) = %#v, want empty non-nil slice", got)
	}
}

func TestPresent_BeyondFifthAndUnknownCrop(t *testing.T) {
	preds := []predict.Prediction{
		{Crop: "rice", Probability: 30},
		{Crop: "maize", Probability: 20},
		{Crop: "jute", Probability: 15},
		{Crop: "coffee", Probability: 10},
		{Crop: "apple", Probability: 9},
		{Crop: "durian", Probability: 1},
	}
	got := Present(preds)
	if len(got) != 6 {
		t.Fatalf("expected 6 rows, got %d", len(got))
	}
	last := got[5]
	if last.Rank != 6 || last.RankLabel != FallbackLabel || last.DisplayName != FallbackLabel {
		t.Errorf("unexpected sixth row: %+v", last)
	}
}

func TestPresent_PureAndIdempotent(t *testing.T) {
	preds := []predict.Prediction{
		{Crop: "Banana", Probability: 44.5},
		{Crop: "mango", Probability: 10},
	}
	snapshot := append([]predict.Prediction(nil), preds...)

	first := Present(preds)
	second := Present(preds)

	if diff := cmp.Diff(snapshot, preds); diff != "" {
		t.Errorf("input mutated (-before +after):\n%s", diff)
	}
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("Present not idempotent (-first +second):\n%s", diff)
	}
	if first[0].Crop != "Banana" {
		t.Errorf("crop id should be kept verbatim, got %q", first[0].Crop)
	}
}
