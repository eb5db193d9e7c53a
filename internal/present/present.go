// Package present turns a ranked prediction list into view rows.
package present

import (
	"strings"

	"github.com/abhisek/cropcast/internal/predict"
)

// Tier is the confidence classification of a probability.
type Tier int

const (
	TierLow Tier = iota
	TierMedium
	TierHigh
)

// Tier thresholds, inclusive at the lower bound.
const (
	HighThreshold   = 15.0
	MediumThreshold = 10.0
)

// FallbackLabel is used for unknown crops and ranks past the fifth.
const FallbackLabel = "Leaf"

func (t Tier) String() string {
	switch t {
	case TierHigh:
		return "High"
	case TierMedium:
		return "Medium"
	default:
		return "Low"
	}
}

// Badge returns the short strength word shown next to the tier.
func (t Tier) Badge() string {
	switch t {
	case TierHigh:
		return "Strong"
	case TierMedium:
		return "Moderate"
	default:
		return "Weak"
	}
}

// RankedView is one rendered row of the results list.
type RankedView struct {
	Rank        int
	RankLabel   string
	Crop        string
	DisplayName string
	Probability float64
	Tier        Tier
}

var rankLabels = [...]string{"1st", "2nd", "3rd", "4th", "5th"}

// cropLabels maps lower-case crop ids to their display label.
var cropLabels = map[string]string{
	"rice":        "Rice",
	"maize":       "Corn",
	"jute":        "Fiber",
	"cotton":      "Cotton",
	"coconut":     "Coconut",
	"papaya":      "Papaya",
	"orange":      "Orange",
	"apple":       "Apple",
	"muskmelon":   "Melon",
	"watermelon":  "Watermelon",
	"grapes":      "Grapes",
	"mango":       "Mango",
	"banana":      "Banana",
	"pomegranate": "Pomegranate",
	"lentil":      "Lentil",
	"blackgram":   "Bean",
	"mungbean":    "Mung",
	"mothbeans":   "Bean",
	"pigeonpeas":  "Pea",
	"kidneybeans": "Bean",
	"chickpea":    "Chickpea",
	"coffee":      "Coffee",
}

// KnownCrops returns the number of crops in the lookup table.
func KnownCrops() int {
	return len(cropLabels)
}

// RankLabel returns the ordinal for a 0-based index.
func RankLabel(i int) string {
	if i < 0 || i >= len(rankLabels) {
		return FallbackLabel
	}
	return rankLabels[i]
}

// ConfidenceTier classifies a probability percentage. High is checked
// first; NaN falls through to Low.
func ConfidenceTier(p float64) Tier {
	if p >= HighThreshold {
		return TierHigh
	}
	if p >= MediumThreshold {
		return TierMedium
	}
	return TierLow
}

// DisplayName maps a crop id to its label, case-insensitively.
func DisplayName(crop string) string {
	if label, ok := cropLabels[strings.ToLower(strings.TrimSpace(crop))]; ok {
		return label
	}
	return FallbackLabel
}

// Present maps predictions to view rows in rank order. It never modifies
// preds and always returns a non-nil slice.
func Present(preds []predict.Prediction) []RankedView {
	out := make([]RankedView, 0, len(preds))
	for i, p := range preds {
		out = append(out, RankedView{
			Rank:        i + 1,
			RankLabel:   RankLabel(i),
			Crop:        p.Crop,
			DisplayName: DisplayName(p.Crop),
			Probability: p.Probability,
			Tier:        ConfidenceTier(p.Probability),
		})
	}
	return out
}
