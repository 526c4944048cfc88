package speed

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

// DirectSpeed computes the speed between consecutive positions on the x/y plane.
// Transitions which take longer than maxGap or have no positive duration are
// dropped, as are transitions involving a NaN value.
func DirectSpeed(time, x, y []float64, maxGap float64) ([]float64, error) {
	if len(x) != len(time) || len(y) != len(time) {
		return nil, &model.ValidationError{
			Field:  "positions",
			Value:  fmt.Sprintf("%d/%d", len(x), len(y)),
			Reason: fmt.Sprintf("must match %d timestamps", len(time)),
		}
	}
	if maxGap <= 0 {
		return nil, &model.ValidationError{Field: "max gap", Value: maxGap, Reason: "must be positive"}
	}
	ret := make([]float64, 0, len(time))
	for i := 1; i < len(time); i++ {
		dt := time[i] - time[i-1]
		if !(dt > 0 && dt <= maxGap) {
			continue
		}
		s := math.Hypot((x[i]-x[i-1])/dt, (y[i]-y[i-1])/dt)
		if math.IsNaN(s) {
			continue
		}
		ret = append(ret, s)
	}
	if len(ret) == 0 {
		return nil, &model.DegeneracyError{Stage: StageDirect, Reason: "no valid transitions"}
	}
	return ret, nil
}

// RejectOutliers drops all samples deviating more than sigma standard
// deviations from the mean. Mean and deviation are those of the population.
func RejectOutliers(speeds []float64, sigma float64) ([]float64, error) {
	if sigma <= 0 {
		return nil, &model.ValidationError{Field: "outlier sigma", Value: sigma, Reason: "must be positive"}
	}
	if len(speeds) == 0 {
		return nil, &model.DegeneracyError{Stage: StageOutliers, Reason: "no samples"}
	}
	if floats.HasNaN(speeds) {
		return nil, &model.DegeneracyError{Stage: StageOutliers, Reason: "samples contain NaN"}
	}
	mean, std := stat.PopMeanStdDev(speeds, nil)
	ret := lo.Filter(speeds, func(s float64, _ int) bool {
		return math.Abs(s-mean) <= sigma*std
	})
	if len(ret) == 0 {
		return nil, &model.DegeneracyError{Stage: StageOutliers, Reason: "all samples rejected"}
	}
	return ret, nil
}

// Smooth averages every sample with the window-1 samples following it.
// Samples without a full window are dropped, so the result has
// len(speeds)-window+1 entries. A window of 1 returns a copy of speeds.
func Smooth(speeds []float64, window int) ([]float64, error) {
	if window < 1 {
		return nil, &model.ValidationError{Field: "window size", Value: window, Reason: "must be at least 1"}
	}
	if len(speeds) < window {
		return nil, &model.DegeneracyError{
			Stage:  StageSmoothing,
			Reason: fmt.Sprintf("%d samples are less than window size %d", len(speeds), window),
		}
	}
	if window == 1 {
		return slices.Clone(speeds), nil
	}
	ret := make([]float64, len(speeds)-window+1)
	for i := range ret {
		ret[i] = floats.Sum(speeds[i:i+window]) / float64(window)
	}
	return ret, nil
}
