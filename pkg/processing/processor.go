package processing

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"
	"sync"

	"github.com/aarondl/opt/omit"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/mpapenbr/socceranalyzer-go/log"
	"github.com/mpapenbr/socceranalyzer-go/pkg/config"
	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/filter"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/footprint"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/history"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/speed"
	"github.com/mpapenbr/socceranalyzer-go/pkg/schema"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

type Analysis int

const (
	AnalysisFootprint Analysis = iota
	AnalysisSpeed
	AnalysisPlayerHistory
	AnalysisBallHistory
	AnalysisStamina
)

// component names used in failure messages
var analysisNames = map[Analysis]string{
	AnalysisFootprint:     "BaseFootprint",
	AnalysisSpeed:         "Speed",
	AnalysisPlayerHistory: "ObjectHistory",
	AnalysisBallHistory:   "ObjectHistory",
	AnalysisStamina:       "Stamina",
}

func (a Analysis) String() string {
	if name, ok := analysisNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Analysis(%d)", int(a))
}

func AllAnalyses() []Analysis {
	return []Analysis{
		AnalysisFootprint, AnalysisSpeed, AnalysisPlayerHistory,
		AnalysisBallHistory, AnalysisStamina,
	}
}

// Failure describes an analysis which produced no data for a player
type Failure struct {
	Analysis Analysis
	Player   omit.Val[model.Player] // unset for match wide analyses
	Err      error
}

// AnalysisData holds the results of a match.
// A field is unset if the analysis was disabled or is not available for the
// category. Players whose analysis failed are missing from the maps.
type AnalysisData struct {
	Table         *table.Table // input table plus derived footprint columns
	Speed         omit.Val[map[model.Player][]float64]
	PlayerHistory omit.Val[map[model.Player]*history.History]
	BallHistory   omit.Val[*history.History]
	Stamina       omit.Val[map[model.Player][]float64]
	Failures      []Failure
}

type Processor struct {
	schema      schema.Schema
	cfg         *config.Config
	logger      *log.Logger
	debug       bool
	concurrency int
	analyses    []Analysis
	players     []model.Player
}

type ProcessorOption func(proc *Processor)

func WithSchema(s schema.Schema) ProcessorOption {
	return func(proc *Processor) {
		proc.schema = s
	}
}

// WithConfig sets the thresholds as well as debug and concurrency
func WithConfig(cfg *config.Config) ProcessorOption {
	return func(proc *Processor) {
		proc.cfg = cfg
		proc.debug = cfg.Processing.Debug
		proc.concurrency = cfg.Processing.Concurrency
	}
}

func WithLogger(l *log.Logger) ProcessorOption {
	return func(proc *Processor) {
		proc.logger = l
	}
}

// WithDebug propagates every analysis failure instead of logging it
func WithDebug(debug bool) ProcessorOption {
	return func(proc *Processor) {
		proc.debug = debug
	}
}

// WithAnalyses restricts the processor to the given analyses
func WithAnalyses(analyses ...Analysis) ProcessorOption {
	return func(proc *Processor) {
		proc.analyses = analyses
	}
}

// WithPlayers analyzes the given players instead of the schema's roster
func WithPlayers(players ...model.Player) ProcessorOption {
	return func(proc *Processor) {
		proc.players = players
	}
}

// WithConcurrency limits the number of analyses running in parallel.
// 0 means GOMAXPROCS.
func WithConcurrency(n int) ProcessorOption {
	return func(proc *Processor) {
		proc.concurrency = n
	}
}

func NewProcessor(opts ...ProcessorOption) *Processor {
	ret := &Processor{
		cfg:      config.DefaultConfig(),
		analyses: AllAnalyses(),
	}
	for _, opt := range opts {
		opt(ret)
	}
	if ret.logger == nil {
		ret.logger = log.Default().Named("processing")
	}
	if ret.concurrency <= 0 {
		ret.concurrency = runtime.GOMAXPROCS(0)
	}
	return ret
}

// Process runs the enabled analyses on t.
// Footprints are derived first, one player after another. The remaining
// analyses only read the resulting table and run concurrently.
// Schema and validation errors are returned, other failures are logged and
// recorded in AnalysisData.Failures unless debug is set.
// Roster players without any column in t are treated as failures of every
// per player analysis.
func (p *Processor) Process(ctx context.Context, t *table.Table) (*AnalysisData, error) {
	if p.schema == nil {
		return nil, &model.ValidationError{Field: "schema", Value: nil, Reason: "no schema configured"}
	}
	run := &matchRun{proc: p, data: &AnalysisData{Table: t}}
	if err := run.selectPlayers(p.roster()); err != nil {
		return nil, err
	}

	if p.enabled(AnalysisFootprint) && p.schema.FootprintSupported() {
		if err := run.footprints(ctx); err != nil {
			return nil, err
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)
	if p.enabled(AnalysisSpeed) && p.schema.SpeedSource() != schema.SpeedUnsupported {
		run.speeds(gctx, g)
	}
	if p.enabled(AnalysisPlayerHistory) {
		run.playerHistories(gctx, g)
	}
	if p.enabled(AnalysisBallHistory) {
		run.ballHistory(gctx, g)
	}
	if p.enabled(AnalysisStamina) {
		run.stamina(gctx, g)
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for _, finish := range run.finishers {
		finish()
	}
	return run.data, nil
}

func (p *Processor) enabled(a Analysis) bool {
	return slices.Contains(p.analyses, a)
}

// roster returns the players to analyze, by default both sides of the
// schema roster with the left side first
func (p *Processor) roster() []model.Player {
	if len(p.players) > 0 {
		return p.players
	}
	var ret []model.Player
	for _, side := range []model.Side{model.SideLeft, model.SideRight} {
		for _, num := range p.schema.Roster(side) {
			ret = append(ret, model.NewPlayer(side, num))
		}
	}
	return ret
}

// matchRun holds the state of a single Process call
type matchRun struct {
	proc    *Processor
	data    *AnalysisData
	players []model.Player
	// executed after all analyses succeeded, they publish the results
	finishers []func()
	mu        sync.Mutex
}

// handle decides whether err aborts the run.
// Non fatal errors are logged and recorded unless the processor runs in debug mode.
//
//nolint:whitespace // can't make the linters happy
func (r *matchRun) handle(
	a Analysis, player omit.Val[model.Player], err error,
) error {
	if err == nil {
		return nil
	}
	if model.IsFatal(err) || r.proc.debug ||
		errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	fields := []log.Field{
		log.String("category", r.proc.schema.Category().String()),
		log.ErrorField(err),
	}
	if pl, ok := player.Get(); ok {
		fields = append(fields, log.String("player", pl.String()))
	}
	var dErr *model.DegeneracyError
	if errors.As(err, &dErr) {
		fields = append(fields, log.String("stage", dErr.Stage))
	}
	r.proc.logger.Error(fmt.Sprintf("%s failed: %v", a, err), fields...)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.data.Failures = append(r.data.Failures, Failure{Analysis: a, Player: player, Err: err})
	return nil
}

// selectPlayers keeps the players with at least one column in the table.
// Absent players are handled as failures of the analyses they would take part in.
func (r *matchRun) selectPlayers(roster []model.Player) error {
	s := r.proc.schema
	keys := r.data.Table.Keys()
	for _, pl := range roster {
		prefix, err := s.ResolvePlayer(pl, schema.PlayerPrefix)
		if err != nil {
			return err
		}
		if lo.SomeBy(keys, func(k string) bool { return strings.HasPrefix(k, prefix) }) {
			r.players = append(r.players, pl)
			continue
		}
		absent := fmt.Errorf("%s: %w", pl, model.ErrPlayerAbsent)
		for _, a := range r.playerAnalyses(pl) {
			if err := r.handle(a, omit.From(pl), absent); err != nil {
				return err
			}
		}
	}
	return nil
}

// playerAnalyses returns the enabled per player analyses available for pl
func (r *matchRun) playerAnalyses(pl model.Player) []Analysis {
	s := r.proc.schema
	return lo.Filter(
		[]Analysis{AnalysisFootprint, AnalysisSpeed, AnalysisPlayerHistory, AnalysisStamina},
		func(a Analysis, _ int) bool {
			if !r.proc.enabled(a) {
				return false
			}
			switch a {
			case AnalysisFootprint, AnalysisPlayerHistory:
				return s.FootprintSupported()
			case AnalysisSpeed:
				return s.SpeedSource() != schema.SpeedUnsupported
			case AnalysisStamina:
				_, err := s.ResolvePlayer(pl, schema.PlayerStamina)
				return err == nil
			default:
				return false
			}
		})
}

func (r *matchRun) footprints(ctx context.Context) error {
	cur := r.data.Table
	for _, pl := range r.players {
		if err := ctx.Err(); err != nil {
			return err
		}
		frames, err := footprint.FramesFor(r.proc.schema, pl)
		if err != nil {
			return err
		}
		derived, err := footprint.Derive(cur, frames)
		if err := r.handle(AnalysisFootprint, omit.From(pl), err); err != nil {
			return err
		}
		if derived != nil {
			cur = derived
		}
	}
	r.data.Table = cur
	return nil
}

// perPlayer runs fn for every player. Players whose analysis failed get no
// entry in the map passed to store.
//
//nolint:whitespace // can't make the linters happy
func perPlayer[E any](
	ctx context.Context, g *errgroup.Group, r *matchRun, a Analysis,
	fn func(pl model.Player) (E, error),
	store func(map[model.Player]E),
) {
	results := make([]E, len(r.players))
	valid := make([]bool, len(r.players))
	for i, pl := range r.players {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := fn(pl)
			if err != nil {
				return r.handle(a, omit.From(pl), err)
			}
			results[i] = res
			valid[i] = true
			return nil
		})
	}
	r.finishers = append(r.finishers, func() {
		ret := make(map[model.Player]E, len(r.players))
		for i, pl := range r.players {
			if valid[i] {
				ret[pl] = results[i]
			}
		}
		store(ret)
	})
}

func (r *matchRun) speeds(ctx context.Context, g *errgroup.Group) {
	cfg := r.proc.cfg
	est := speed.NewEstimator(r.proc.schema,
		speed.WithConfig(cfg.Speed),
		speed.WithLogger(r.proc.logger.Named("speed")),
	)
	tbl := r.data.Table
	perPlayer(ctx, g, r, AnalysisSpeed,
		func(pl model.Player) ([]float64, error) {
			return est.Estimate(tbl, pl)
		},
		func(res map[model.Player][]float64) {
			r.data.Speed = omit.From(res)
		})
}

// player histories use the footprint frame, right side players are mirrored
func (r *matchRun) playerHistories(ctx context.Context, g *errgroup.Group) {
	s := r.proc.schema
	if !s.FootprintSupported() {
		return
	}
	timeKey, err := s.Resolve(schema.GameTime)
	if err != nil {
		return
	}
	tbl := r.data.Table
	perPlayer(ctx, g, r, AnalysisPlayerHistory,
		func(pl model.Player) (*history.History, error) {
			frame, err := s.ResolvePlayer(pl, schema.PlayerFootprint)
			if err != nil {
				return nil, err
			}
			return history.Extract(tbl, frame,
				history.WithFilter(filter.Player(s, pl, filter.IncludeTime(), filter.NotPenalized())),
				history.WithMirror(pl.Side.Mirrored()),
				history.WithTimeKey(timeKey),
			)
		},
		func(res map[model.Player]*history.History) {
			r.data.PlayerHistory = omit.From(res)
		})
}

func (r *matchRun) ballHistory(ctx context.Context, g *errgroup.Group) {
	s := r.proc.schema
	frame, err := s.Resolve(schema.BallFrame)
	if err != nil {
		return
	}
	timeKey, err := s.Resolve(schema.GameTime)
	if err != nil {
		return
	}
	tbl := r.data.Table
	var ball *history.History
	g.Go(func() error {
		if err := ctx.Err(); err != nil {
			return err
		}
		h, err := history.Extract(tbl, frame,
			history.WithFilter(filter.Ball(frame, filter.WithThresholds(r.proc.cfg.Filter.Ball))),
			history.WithTimeKey(timeKey),
		)
		if err != nil {
			return r.handle(AnalysisBallHistory, omit.Val[model.Player]{}, err)
		}
		ball = h
		return nil
	})
	r.finishers = append(r.finishers, func() {
		if ball != nil {
			r.data.BallHistory = omit.From(ball)
		}
	})
}

// stamina is only logged by the simulated league
func (r *matchRun) stamina(ctx context.Context, g *errgroup.Group) {
	s := r.proc.schema
	if len(r.players) == 0 {
		return
	}
	if _, err := s.ResolvePlayer(r.players[0], schema.PlayerStamina); err != nil {
		return
	}
	tbl := r.data.Table
	perPlayer(ctx, g, r, AnalysisStamina,
		func(pl model.Player) ([]float64, error) {
			key, err := s.ResolvePlayer(pl, schema.PlayerStamina)
			if err != nil {
				return nil, err
			}
			col, err := tbl.Float(key)
			if err != nil {
				return nil, err
			}
			return slices.Clone(col), nil
		},
		func(res map[model.Player][]float64) {
			r.data.Stamina = omit.From(res)
		})
}
