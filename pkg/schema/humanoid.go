package schema

import (
	"fmt"

	"github.com/samber/lo"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

// humanoidKid maps the logs of the humanoid kid size league: game controller
// data plus the TF frames of each robot below "teams.<team>.player<N>".
type humanoidKid struct {
	base
	metadata *model.Metadata
}

func newHumanoidKid(md *model.Metadata) *humanoidKid {
	return &humanoidKid{
		base: base{
			category: HumanoidKid,
			first:    1,
			last:     4,
			fields: map[Field]string{
				GameTime:          "time",
				Playmode:          "game_control_data.game_state",
				BallX:             "ball.frame.pose.position.x",
				BallY:             "ball.frame.pose.position.y",
				BallZ:             "ball.frame.pose.position.z",
				BallFrame:         "ball.frame.pose",
				TeamLeftScore:     "teams.team1.score",
				TeamRightScore:    "teams.team2.score",
				PenaltyShotsLeft:  "teams.team1.penalty_shots",
				PenaltyShotsRight: "teams.team2.penalty_shots",
			},
		},
		metadata: md,
	}
}

var humanoidPlayerSuffix = map[PlayerField]string{
	PlayerX:              "base_footprint.position.x",
	PlayerY:              "base_footprint.position.y",
	PlayerPenaltySeconds: "robot_info.secs_till_unpenalized",
	PlayerBaseLink:       "base_link",
	PlayerLeftSole:       "l_sole",
	PlayerRightSole:      "r_sole",
	PlayerFootprint:      "base_footprint",
}

func (h *humanoidKid) ResolvePlayer(p model.Player, f PlayerField) (string, error) {
	if err := h.ValidatePlayer(p); err != nil {
		return "", err
	}
	prefix := fmt.Sprintf("teams.%s.player%d.", p.Side.Team(), p.Number)
	if f == PlayerPrefix {
		return prefix, nil
	}
	suffix, ok := humanoidPlayerSuffix[f]
	if !ok {
		return "", h.unmapped(f.String())
	}
	return prefix + suffix, nil
}

// Roster uses the players listed in the metadata if available
func (h *humanoidKid) Roster(side model.Side) []int {
	if h.metadata == nil {
		return h.base.Roster(side)
	}
	return lo.Filter(h.metadata.PlayerNumbers(side), func(n int, _ int) bool {
		return n >= h.first && n <= h.last
	})
}

func (h *humanoidKid) SpeedSource() SpeedSource {
	return SpeedPositionDifferenced
}

func (h *humanoidKid) FootprintSupported() bool {
	return true
}
