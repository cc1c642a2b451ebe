package experiment

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

type Summary struct {
	Trials          int       `json:"trials"`
	FinalValues     []float64 `json:"final_values"`
	EndPositions    []float64 `json:"end_positions"`
	MeanFinalValue  float64   `json:"mean_final_value"`
	StdFinalValue   float64   `json:"std_final_value"`
	MedianFinal     float64   `json:"median_final_value"`
	MeanEndPosition float64   `json:"mean_end_position"`
	StdEndPosition  float64   `json:"std_end_position"`
	BestTrial       int       `json:"best_trial"`
	BestValue       int       `json:"best_value"`
}

// EndPosition. 1-based index of the first iteration whose value equals the final one, 0 for an empty trajectory.
func EndPosition(values []int) int {
	if len(values) == 0 {
		return 0
	}
	target := values[len(values)-1]
	for i, v := range values {
		if v == target {
			return i + 1
		}
	}
	return len(values)
}

/*
Summarize. population mean and standard deviation of the final values and end positions. ties for the best trial
go to the lowest trial index.
*/
func Summarize(trials []Trial) Summary {
	s := Summary{
		Trials:       len(trials),
		FinalValues:  make([]float64, len(trials)),
		EndPositions: make([]float64, len(trials)),
		BestTrial:    -1,
	}
	if len(trials) == 0 {
		return s
	}

	for i, t := range trials {
		s.FinalValues[i] = float64(t.FinalValue)
		s.EndPositions[i] = float64(t.EndPosition)
		if s.BestTrial == -1 || t.FinalValue < s.BestValue {
			s.BestTrial = t.Index
			s.BestValue = t.FinalValue
		}
	}

	s.MeanFinalValue, s.StdFinalValue = stat.PopMeanStdDev(s.FinalValues, nil)
	s.MeanEndPosition, s.StdEndPosition = stat.PopMeanStdDev(s.EndPositions, nil)

	sorted := make([]float64, len(s.FinalValues))
	copy(sorted, s.FinalValues)
	sort.Float64s(sorted)
	s.MedianFinal = stat.Quantile(0.5, stat.Empirical, sorted, nil)
	return s
}
