// Package footprint derives the ground projected pose of a legged robot
// (base_footprint, see ROS REP 120) from its sole and base_link frames.
//
// The position is the midpoint of both soles. The rotation is the yaw of
// base_link with roll and pitch set to zero.
package footprint

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/num/quat"

	"github.com/mpapenbr/socceranalyzer-go/pkg/kinematics"
	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
	"github.com/mpapenbr/socceranalyzer-go/pkg/processing/util"
	"github.com/mpapenbr/socceranalyzer-go/pkg/schema"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

// Frames holds the frame prefixes used for a derivation
type Frames struct {
	BaseLink  string
	LeftSole  string
	RightSole string
	Footprint string // prefix of the derived columns
}

// FramesFor resolves the frames of player p
func FramesFor(s schema.Schema, p model.Player) (Frames, error) {
	if !s.FootprintSupported() {
		return Frames{}, &model.SchemaError{
			Category: s.Category().String(),
			Key:      schema.PlayerFootprint.String(),
			Reason:   "footprint not supported",
		}
	}
	keys := make([]string, 4)
	for i, f := range []schema.PlayerField{
		schema.PlayerBaseLink,
		schema.PlayerLeftSole,
		schema.PlayerRightSole,
		schema.PlayerFootprint,
	} {
		key, err := s.ResolvePlayer(p, f)
		if err != nil {
			return Frames{}, err
		}
		keys[i] = key
	}
	return Frames{
		BaseLink:  keys[0],
		LeftSole:  keys[1],
		RightSole: keys[2],
		Footprint: keys[3],
	}, nil
}

// Derive returns a copy of t with the footprint position and rotation columns
// added. A NaN in any input of a row yields NaN outputs for that row.
func Derive(t *table.Table, f Frames) (*table.Table, error) {
	left := util.NewFrameKeys(f.LeftSole)
	right := util.NewFrameKeys(f.RightSole)
	base := util.NewFrameKeys(f.BaseLink)
	out := util.NewFrameKeys(f.Footprint)

	leftPos, err := t.Floats(left.Position()...)
	if err != nil {
		return nil, fmt.Errorf("footprint %s: %w", f.Footprint, err)
	}
	rightPos, err := t.Floats(right.Position()...)
	if err != nil {
		return nil, fmt.Errorf("footprint %s: %w", f.Footprint, err)
	}
	rot, err := t.Floats(base.Rotation()...)
	if err != nil {
		return nil, fmt.Errorf("footprint %s: %w", f.Footprint, err)
	}

	ret := t.Clone()
	for axis, key := range out.Position() {
		mid := make([]float64, t.Len())
		floats.AddTo(mid, leftPos[axis], rightPos[axis])
		floats.Scale(0.5, mid)
		if err := ret.SetFloat(key, mid); err != nil {
			return nil, err
		}
	}

	quats := [4][]float64{}
	for i := range quats {
		quats[i] = make([]float64, t.Len())
	}
	for row := range t.Len() {
		q := quat.Number{Real: rot[0][row], Imag: rot[1][row], Jmag: rot[2][row], Kmag: rot[3][row]}
		flat := quat.NaN()
		if !quat.IsNaN(q) {
			flat = kinematics.FlattenToYaw(q)
		}
		quats[0][row] = flat.Real
		quats[1][row] = flat.Imag
		quats[2][row] = flat.Jmag
		quats[3][row] = flat.Kmag
	}
	for i, key := range out.Rotation() {
		if err := ret.SetFloat(key, quats[i]); err != nil {
			return nil, err
		}
	}
	return ret, nil
}
