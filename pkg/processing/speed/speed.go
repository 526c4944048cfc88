// Package speed estimates the scalar speed of a player over a match.
//
// Leagues which log velocities get the norm of the reported velocity per
// cycle. For leagues logging poses only, speed is derived from consecutive
// footprint positions: transitions across a gap are dropped, outliers are
// rejected and the result is smoothed with a forward moving average.
package speed

import (
	"fmt"
	"math"

	"github.com/mpapenbr/socceranalyzer-go/log"
	"github.com/mpapenbr/socceranalyzer-go/pkg/config"
	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/filter"
	"github.com/mpapenbr/socceranalyzer-go/pkg/schema"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

// stage names reported by DegeneracyError
const (
	StageDirect    = "direct speed"
	StageOutliers  = "outlier rejection"
	StageSmoothing = "smoothing"
)

type Estimator struct {
	schema         schema.Schema
	maxGap         float64
	sigma          float64
	filterOutliers bool
	windowSize     int
	logger         *log.Logger
}

type Option func(e *Estimator)

func WithConfig(cfg config.Speed) Option {
	return func(e *Estimator) {
		e.maxGap = cfg.MaxGap
		e.sigma = cfg.OutlierSigma
		e.filterOutliers = cfg.FilterOutliers
		e.windowSize = cfg.WindowSize
	}
}

func WithWindowSize(n int) Option {
	return func(e *Estimator) {
		e.windowSize = n
	}
}

func WithOutlierFilter(enabled bool) Option {
	return func(e *Estimator) {
		e.filterOutliers = enabled
	}
}

func WithLogger(l *log.Logger) Option {
	return func(e *Estimator) {
		e.logger = l
	}
}

func NewEstimator(s schema.Schema, opts ...Option) *Estimator {
	e := &Estimator{schema: s}
	WithConfig(config.DefaultConfig().Speed)(e)
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = log.Default().Named("processing.speed")
	}
	return e
}

// Estimate returns the speed series of player p.
// The player is validated before anything else is done.
func (e *Estimator) Estimate(t *table.Table, p model.Player) ([]float64, error) {
	if err := e.schema.ValidatePlayer(p); err != nil {
		return nil, err
	}
	switch e.schema.SpeedSource() {
	case schema.SpeedVelocityReported:
		return e.reported(t, p)
	case schema.SpeedPositionDifferenced:
		return e.differenced(t, p)
	default:
		return nil, &model.SchemaError{
			Category: e.schema.Category().String(),
			Key:      "speed",
			Reason:   "speed not supported",
		}
	}
}

func (e *Estimator) reported(t *table.Table, p model.Player) ([]float64, error) {
	vx, vy, err := e.playerColumns(t, p, schema.PlayerVX, schema.PlayerVY)
	if err != nil {
		return nil, err
	}
	ret := make([]float64, len(vx))
	for i := range ret {
		ret[i] = math.Hypot(vx[i], vy[i])
	}
	return ret, nil
}

func (e *Estimator) differenced(t *table.Table, p model.Player) ([]float64, error) {
	playing, err := filter.Player(e.schema, p, filter.IncludeTime(), filter.NotPenalized())(t)
	if err != nil {
		return nil, err
	}
	timeKey, err := e.schema.Resolve(schema.GameTime)
	if err != nil {
		return nil, err
	}
	ts, err := playing.Float(timeKey)
	if err != nil {
		return nil, err
	}
	x, y, err := e.playerColumns(playing, p, schema.PlayerX, schema.PlayerY)
	if err != nil {
		return nil, err
	}

	speeds, err := DirectSpeed(ts, x, y, e.maxGap)
	if err != nil {
		return nil, err
	}
	direct := len(speeds)
	if e.filterOutliers {
		if speeds, err = RejectOutliers(speeds, e.sigma); err != nil {
			return nil, err
		}
	}
	kept := len(speeds)
	if speeds, err = Smooth(speeds, e.windowSize); err != nil {
		return nil, err
	}
	e.logger.Debug("speed estimated",
		log.String("player", p.String()),
		log.Int("rows", playing.Len()),
		log.Int("direct", direct),
		log.Int("outliers", direct-kept),
		log.Int("smoothed", len(speeds)),
	)
	return speeds, nil
}

//nolint:whitespace // can't make the linters happy
func (e *Estimator) playerColumns(
	t *table.Table, p model.Player, fx, fy schema.PlayerField,
) (x, y []float64, err error) {
	keyX, err := e.schema.ResolvePlayer(p, fx)
	if err != nil {
		return nil, nil, err
	}
	keyY, err := e.schema.ResolvePlayer(p, fy)
	if err != nil {
		return nil, nil, err
	}
	cols, err := t.Floats(keyX, keyY)
	if err != nil {
		return nil, nil, fmt.Errorf("speed %s: %w", p, err)
	}
	return cols[0], cols[1], nil
}
