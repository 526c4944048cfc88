package schema

import (
	"fmt"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

// simulated2D maps the csv logs written by rcssserver
type simulated2D struct {
	base
}

func newSimulated2D() *simulated2D {
	return &simulated2D{base{
		category: Simulated2D,
		first:    1,
		last:     11,
		fields: map[Field]string{
			GameTime:       "show_time",
			Playmode:       "playmode",
			BallX:          "ball_x",
			BallY:          "ball_y",
			BallVX:         "ball_vx",
			BallVY:         "ball_vy",
			TeamLeft:       "team_name_l",
			TeamRight:      "team_name_r",
			TeamLeftScore:  "team_score_l",
			TeamRightScore: "team_score_r",
		},
	}}
}

var simulated2DPlayerSuffix = map[PlayerField]string{
	PlayerPrefix:  "",
	PlayerX:       "x",
	PlayerY:       "y",
	PlayerVX:      "vx",
	PlayerVY:      "vy",
	PlayerBody:    "body",
	PlayerStamina: "stamina",
}

func (s *simulated2D) ResolvePlayer(p model.Player, f PlayerField) (string, error) {
	if err := s.ValidatePlayer(p); err != nil {
		return "", err
	}
	suffix, ok := simulated2DPlayerSuffix[f]
	if !ok {
		return "", s.unmapped(f.String())
	}
	return fmt.Sprintf("player_%s%d_%s", p.Side, p.Number, suffix), nil
}

func (s *simulated2D) SpeedSource() SpeedSource {
	return SpeedVelocityReported
}

func (s *simulated2D) FootprintSupported() bool {
	return false
}
