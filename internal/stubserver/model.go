package stubserver

import (
	"math"
	"sort"

	"github.com/abhisek/cropcast/internal/form"
	"github.com/abhisek/cropcast/internal/predict"
)

// TopN is the number of crops returned per prediction.
const TopN = 5

// temperature controls how sharply the score favours the closest profile.
const temperature = 0.05

// Profile is the typical growing condition of a crop, in canonical field order.
type Profile struct {
	Crop     string
	Features [form.NumFields]float64
}

// profiles are per-crop feature means of the public crop recommendation dataset.
var profiles = []Profile{
	{"rice", [7]float64{79.89, 47.58, 39.87, 23.69, 82.27, 6.43, 236.18}},
	{"maize", [7]float64{77.76, 48.44, 19.79, 22.39, 65.09, 6.25, 84.77}},
	{"chickpea", [7]float64{40.09, 67.79, 79.92, 18.87, 16.86, 7.34, 80.06}},
	{"kidneybeans", [7]float64{20.75, 67.54, 20.05, 20.12, 21.61, 5.75, 105.92}},
	{"pigeonpeas", [7]float64{20.73, 67.73, 20.29, 27.74, 48.06, 5.79, 149.46}},
	{"mothbeans", [7]float64{21.44, 48.01, 20.23, 28.19, 53.16, 6.83, 51.20}},
	{"mungbean", [7]float64{20.99, 47.28, 19.87, 28.53, 85.50, 6.72, 48.40}},
	{"blackgram", [7]float64{40.02, 67.47, 19.24, 29.97, 65.12, 7.13, 67.88}},
	{"lentil", [7]float64{18.77, 68.36, 19.41, 24.51, 64.80, 6.93, 45.68}},
	{"pomegranate", [7]float64{18.87, 18.75, 40.21, 21.84, 90.13, 6.43, 107.53}},
	{"banana", [7]float64{100.23, 82.01, 50.05, 27.38, 80.36, 5.98, 104.63}},
	{"mango", [7]float64{20.07, 27.18, 29.92, 31.21, 50.16, 5.77, 94.70}},
	{"grapes", [7]float64{23.18, 132.53, 200.11, 23.85, 81.88, 6.03, 69.61}},
	{"watermelon", [7]float64{99.42, 17.00, 50.22, 25.59, 85.16, 6.50, 50.79}},
	{"muskmelon", [7]float64{100.32, 17.72, 50.08, 28.66, 92.34, 6.36, 24.69}},
	{"apple", [7]float64{20.80, 134.22, 199.89, 22.63, 92.33, 5.93, 112.65}},
	{"orange", [7]float64{19.58, 16.55, 10.01, 22.77, 92.17, 7.02, 110.47}},
	{"papaya", [7]float64{49.88, 59.05, 50.04, 33.72, 92.40, 6.74, 142.63}},
	{"coconut", [7]float64{21.98, 16.93, 30.59, 27.41, 94.84, 5.98, 175.69}},
	{"cotton", [7]float64{117.77, 46.24, 19.56, 23.99, 79.84, 6.91, 80.40}},
	{"jute", [7]float64{78.40, 46.86, 39.99, 24.96, 79.64, 6.73, 174.79}},
	{"coffee", [7]float64{101.20, 28.74, 29.94, 25.54, 58.87, 6.79, 158.07}},
}

// Profiles returns a copy of the built-in crop profiles.
func Profiles() []Profile {
	return append([]Profile(nil), profiles...)
}

// Model scores a feature vector against a set of crop profiles.
type Model struct {
	profiles []Profile
	scale    [form.NumFields]float64
}

// NewModel builds a model over ps. Features are normalised by the width of
// each field's accepted range.
func NewModel(ps []Profile) *Model {
	m := &Model{profiles: append([]Profile(nil), ps...)}
	for i, s := range form.Specs() {
		m.scale[i] = s.Max - s.Min
	}
	return m
}

// Predict returns the n most likely crops with probabilities in percent,
// rounded to two decimals. Ties are broken by crop name.
func (m *Model) Predict(x [form.NumFields]float64, n int) []predict.Prediction {
	if len(m.profiles) == 0 || n <= 0 {
		return []predict.Prediction{}
	}

	dist := make([]float64, len(m.profiles))
	nearest := math.Inf(1)
	for i, p := range m.profiles {
		var sum float64
		for j := range x {
			d := (x[j] - p.Features[j]) / m.scale[j]
			sum += d * d
		}
		dist[i] = math.Sqrt(sum)
		nearest = math.Min(nearest, dist[i])
	}

	// Softmax over negative distance, shifted by the nearest so the best
	// weight is exactly 1.
	weights := make([]float64, len(dist))
	var total float64
	for i, d := range dist {
		weights[i] = math.Exp(-(d - nearest) / temperature)
		total += weights[i]
	}

	out := make([]predict.Prediction, len(m.profiles))
	for i, p := range m.profiles {
		out[i] = predict.Prediction{Crop: p.Crop, Probability: weights[i] / total * 100}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Probability != out[j].Probability {
			return out[i].Probability > out[j].Probability
		}
		return out[i].Crop < out[j].Crop
	})

	if n > len(out) {
		n = len(out)
	}
	out = out[:n]
	for i := range out {
		out[i].Probability = math.Round(out[i].Probability*100) / 100
	}
	return out
}
