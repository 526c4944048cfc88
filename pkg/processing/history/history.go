// Package history extracts the pose of a frame over the course of a match.
package history

import (
	"fmt"
	"slices"

	"gonum.org/v1/gonum/num/quat"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/filter"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/util"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

// History is the pose series of a frame, one entry per table row.
// Rotations is empty if the frame has no rotation columns.
type History struct {
	Frame     string
	Time      []float64 // empty unless a time key was given
	Positions []model.Position
	Rotations []quat.Number
}

func (h *History) Len() int {
	return len(h.Positions)
}

func (h *History) HasRotation() bool {
	return len(h.Rotations) > 0
}

// Pose returns the pose of row i. The rotation is nil if the frame has none.
func (h *History) Pose(i int) model.Pose {
	ret := model.Pose{Position: h.Positions[i]}
	if h.HasRotation() {
		q := h.Rotations[i]
		ret.Rotation = &q
	}
	return ret
}

// Valid returns the rows whose position has no NaN component
func (h *History) Valid() *History {
	ret := &History{Frame: h.Frame}
	for i, p := range h.Positions {
		if p.IsNaN() {
			continue
		}
		ret.Positions = append(ret.Positions, p)
		if len(h.Time) > 0 {
			ret.Time = append(ret.Time, h.Time[i])
		}
		if h.HasRotation() {
			ret.Rotations = append(ret.Rotations, h.Rotations[i])
		}
	}
	return ret
}

type extractor struct {
	filter  filter.Func
	mirror  bool
	timeKey string
}

type Option func(e *extractor)

// WithFilter applies f to the table before extraction
func WithFilter(f filter.Func) Option {
	return func(e *extractor) {
		e.filter = f
	}
}

// WithMirror negates x and y of every position. Used to map the right
// team onto the coordinates of the left team.
func WithMirror(mirror bool) Option {
	return func(e *extractor) {
		e.mirror = mirror
	}
}

func WithTimeKey(key string) Option {
	return func(e *extractor) {
		e.timeKey = key
	}
}

// Extract returns the history of the frame at prefix.
// Missing position columns are an error, missing rotation columns are not.
func Extract(t *table.Table, frame string, opts ...Option) (*History, error) {
	e := &extractor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.filter != nil {
		var err error
		if t, err = e.filter(t); err != nil {
			return nil, fmt.Errorf("history %s: %w", frame, err)
		}
	}

	keys := util.NewFrameKeys(frame)
	pos, err := t.Floats(keys.Position()...)
	if err != nil {
		return nil, fmt.Errorf("history %s: %w", frame, err)
	}
	ret := &History{
		Frame:     frame,
		Positions: make([]model.Position, t.Len()),
	}
	for i := range ret.Positions {
		p := model.Position{X: pos[0][i], Y: pos[1][i], Z: pos[2][i]}
		if e.mirror {
			p = p.Mirror()
		}
		ret.Positions[i] = p
	}

	if keys.HasRotation(t) {
		rot, err := t.Floats(keys.Rotation()...)
		if err != nil {
			return nil, err
		}
		ret.Rotations = make([]quat.Number, t.Len())
		for i := range ret.Rotations {
			ret.Rotations[i] = quat.Number{
				Real: rot[0][i], Imag: rot[1][i], Jmag: rot[2][i], Kmag: rot[3][i],
			}
		}
	}

	if e.timeKey != "" {
		ts, err := t.Float(e.timeKey)
		if err != nil {
			return nil, fmt.Errorf("history %s: %w", frame, err)
		}
		ret.Time = slices.Clone(ts)
	}
	return ret, nil
}
