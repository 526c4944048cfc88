package filter

import (
	"fmt"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/mpapenbr/socceranalyzer-go/pkg/config"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/util"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

type covariance struct {
	name     string
	frame    util.FrameKeys
	x, y     float64
	theta    float64
	useTheta bool
}

type CovarianceOption func(c *covariance)

func WithXThreshold(sdev float64) CovarianceOption {
	return func(c *covariance) {
		c.x = sdev
	}
}

func WithYThreshold(sdev float64) CovarianceOption {
	return func(c *covariance) {
		c.y = sdev
	}
}

// WithThetaThreshold is ignored by the ball filter
func WithThetaThreshold(sdev float64) CovarianceOption {
	return func(c *covariance) {
		c.theta = sdev
	}
}

func WithThresholds(cfg config.Covariance) CovarianceOption {
	return func(c *covariance) {
		c.x = cfg.X
		c.y = cfg.Y
		c.theta = cfg.Theta
	}
}

// SelfLocalization invalidates the position of the frame at prefix in every
// row where the reported standard deviation of x, y or theta exceeds its
// threshold (defaults 0.5, 0.5 and 0.6).
func SelfLocalization(prefix string, opts ...CovarianceOption) Func {
	def := config.DefaultConfig().Filter.SelfLocalization
	c := &covariance{
		name:     "self localization filter",
		frame:    util.NewFrameKeys(prefix),
		x:        def.X,
		y:        def.Y,
		theta:    def.Theta,
		useTheta: true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.apply
}

// Ball invalidates the ball position in every row where the reported
// standard deviation of x or y exceeds its threshold (defaults 0.5, 0.5).
func Ball(prefix string, opts ...CovarianceOption) Func {
	def := config.DefaultConfig().Filter.Ball
	c := &covariance{
		name:  "ball filter",
		frame: util.NewFrameKeys(prefix),
		x:     def.X,
		y:     def.Y,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c.apply
}

func (c *covariance) apply(t *table.Table) (*table.Table, error) {
	keys := []string{c.frame.Covariance(0), c.frame.Covariance(4)}
	limits := []float64{c.x, c.y}
	if c.useTheta {
		keys = append(keys, c.frame.Covariance(8))
		limits = append(limits, c.theta)
	}
	sdevs, err := t.Floats(keys...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.name, c.frame.Prefix, err)
	}
	positions, err := t.Floats(c.frame.Position()...)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", c.name, c.frame.Prefix, err)
	}

	// values equal to the threshold are still acceptable
	invalid := make([]bool, t.Len())
	for i := range invalid {
		for axis, sdev := range sdevs {
			if sdev[i] > limits[axis] {
				invalid[i] = true
				break
			}
		}
	}

	ret := t.Clone()
	if !lo.Contains(invalid, true) {
		return ret, nil
	}
	for axis, key := range c.frame.Position() {
		col := slices.Clone(positions[axis])
		for i, bad := range invalid {
			if bad {
				col[i] = math.NaN()
			}
		}
		if err := ret.SetFloat(key, col); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
