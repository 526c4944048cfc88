// Package basedata provides synthetic match logs for tests.
package basedata

import (
	"fmt"
	"log"
	"math"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

// CycleTime is the nominal game controller cycle of humanoid logs
const CycleTime = 0.016

// Walk describes a player moving with constant velocity on the field
type Walk struct {
	Player     model.Player
	StartX     float64
	StartY     float64
	VX         float64
	VY         float64
	Yaw        float64 // heading of base_link
	Tilt       float64 // roll of base_link, the footprint must ignore it
	FootOffset float64 // distance of each sole from the center, defaults to 0.05
}

func SampleMetadata() *model.Metadata {
	return &model.Metadata{
		Teams: map[string]model.TeamMetadata{
			"team1": {Name: "Bit-Bots", Players: map[int]model.PlayerMetadata{
				1: {ID: 11, Name: "amy"},
				2: {ID: 12, Name: "rory"},
			}},
			"team2": {Name: "Rhoban", Players: map[int]model.PlayerMetadata{
				1: {ID: 21, Name: "arya"},
				2: {ID: 22, Name: "tyrion"},
			}},
		},
	}
}

// Times returns n timestamps starting at 0 with step dt
func Times(n int, dt float64) []float64 {
	ret := make([]float64, n)
	for i := range ret {
		ret[i] = float64(i) * dt
	}
	return ret
}

// HumanoidRows returns one row per timestamp containing the game controller
// fields, the ball (resting at the center with small covariance) and all walks.
func HumanoidRows(times []float64, walks ...Walk) []map[string]any {
	rows := make([]map[string]any, len(times))
	for i, ts := range times {
		row := map[string]any{
			"time":                         ts,
			"game_control_data.game_state": "PLAYING",
			"teams.team1.score":            0,
			"teams.team2.score":            0,
			"teams.team1.penalty_shots":    0,
			"teams.team2.penalty_shots":    0,
		}
		SetFrame(row, "ball.frame.pose", 0, 0, 0.08)
		SetCovariance(row, "ball.frame.pose", 0.1, 0.1, 0.1)
		for _, w := range walks {
			w.apply(row, ts)
		}
		rows[i] = row
	}
	return rows
}

func (w Walk) apply(row map[string]any, ts float64) {
	offset := w.FootOffset
	if offset == 0 {
		offset = 0.05
	}
	prefix := fmt.Sprintf("teams.%s.player%d.", w.Player.Side.Team(), w.Player.Number)
	x := w.StartX + w.VX*ts
	y := w.StartY + w.VY*ts
	dx := -math.Sin(w.Yaw) * offset
	dy := math.Cos(w.Yaw) * offset

	SetFrame(row, prefix+"base_link", x, y, 0.45)
	SetRotation(row, prefix+"base_link", w.Tilt, 0, w.Yaw)
	SetFrame(row, prefix+"l_sole", x+dx, y+dy, 0)
	SetFrame(row, prefix+"r_sole", x-dx, y-dy, 0)
	row[prefix+"robot_info.secs_till_unpenalized"] = 0.0
}

func SetFrame(row map[string]any, prefix string, x, y, z float64) {
	row[prefix+".position.x"] = x
	row[prefix+".position.y"] = y
	row[prefix+".position.z"] = z
}

// SetRotation writes the quaternion of the sxyz Euler angles
func SetRotation(row map[string]any, prefix string, roll, pitch, yaw float64) {
	sr, cr := math.Sincos(roll / 2)
	sp, cp := math.Sincos(pitch / 2)
	sy, cy := math.Sincos(yaw / 2)
	row[prefix+".rotation.w"] = cr*cp*cy + sr*sp*sy
	row[prefix+".rotation.x"] = sr*cp*cy - cr*sp*sy
	row[prefix+".rotation.y"] = cr*sp*cy + sr*cp*sy
	row[prefix+".rotation.z"] = cr*cp*sy - sr*sp*cy
}

// SetCovariance writes the diagonal entries used by the covariance filters
func SetCovariance(row map[string]any, prefix string, x, y, theta float64) {
	row[prefix+".covariance.0"] = x
	row[prefix+".covariance.4"] = y
	row[prefix+".covariance.8"] = theta
}

// HumanoidTable returns a humanoid match with team1 player1 walking along x
// with 1 m/s and team2 player2 walking along y with 0.5 m/s.
func HumanoidTable(n int) *table.Table {
	return MustTable(HumanoidRows(Times(n, CycleTime),
		Walk{Player: model.NewPlayer(model.SideLeft, 1), StartX: -2, VX: 1},
		Walk{
			Player: model.NewPlayer(model.SideRight, 2),
			StartX: 2, VY: 0.5, Yaw: math.Pi / 2,
		},
	))
}

// Simulated2DRows returns rcssserver style rows. Every player of the roster
// moves with (vx, vy) = (0.3*number, 0.4*number) and stamina decreasing per cycle.
func Simulated2DRows(n, players int) []map[string]any {
	rows := make([]map[string]any, n)
	for i := range rows {
		row := map[string]any{
			"show_time":    i,
			"playmode":     "play_on",
			"ball_x":       0.0,
			"ball_y":       0.0,
			"ball_vx":      0.0,
			"ball_vy":      0.0,
			"team_name_l":  "HELIOS",
			"team_name_r":  "CYRUS",
			"team_score_l": 0,
			"team_score_r": 0,
		}
		for _, side := range []model.Side{model.SideLeft, model.SideRight} {
			for num := 1; num <= players; num++ {
				prefix := fmt.Sprintf("player_%s%d_", side, num)
				row[prefix+"x"] = float64(i) * 0.3 * float64(num)
				row[prefix+"y"] = float64(i) * 0.4 * float64(num)
				row[prefix+"vx"] = 0.3 * float64(num)
				row[prefix+"vy"] = 0.4 * float64(num)
				row[prefix+"body"] = 0.0
				row[prefix+"stamina"] = 8000.0 - float64(i)
			}
		}
		rows[i] = row
	}
	return rows
}

func MustTable(rows []map[string]any) *table.Table {
	t, err := table.FromRows(rows)
	if err != nil {
		log.Fatal(err)
	}
	return t
}
