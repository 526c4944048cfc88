package schema

import (
	"fmt"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

// wheeled covers the small and large size leagues. Only positions are mapped
// so far; speed and footprint are not supported.
type wheeled struct {
	base
}

func newWheeled(c Category, first, last int) *wheeled {
	return &wheeled{base{
		category: c,
		first:    first,
		last:     last,
		fields: map[Field]string{
			GameTime:       "time",
			BallX:          "ball.position.x",
			BallY:          "ball.position.y",
			TeamLeft:       "teams.team1.name",
			TeamRight:      "teams.team2.name",
			TeamLeftScore:  "teams.team1.score",
			TeamRightScore: "teams.team2.score",
		},
	}}
}

func (w *wheeled) ResolvePlayer(p model.Player, f PlayerField) (string, error) {
	if err := w.ValidatePlayer(p); err != nil {
		return "", err
	}
	prefix := fmt.Sprintf("teams.%s.robot%d.", p.Side.Team(), p.Number)
	switch f {
	case PlayerPrefix:
		return prefix, nil
	case PlayerX:
		return prefix + "position.x", nil
	case PlayerY:
		return prefix + "position.y", nil
	default:
		return "", w.unmapped(f.String())
	}
}

func (w *wheeled) SpeedSource() SpeedSource {
	return SpeedUnsupported
}

func (w *wheeled) FootprintSupported() bool {
	return false
}
