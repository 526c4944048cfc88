package model

import "fmt"

type Side string

const (
	SideLeft  Side = "l"
	SideRight Side = "r"
)

func ParseSide(s string) (Side, error) {
	side := Side(s)
	if !side.Valid() {
		return "", &ValidationError{Field: "side", Value: s, Reason: "must be 'l' or 'r'"}
	}
	return side, nil
}

func (s Side) Valid() bool {
	return s == SideLeft || s == SideRight
}

// Team returns the team key used by logs which number teams instead of sides.
// The left side is always team1.
func (s Side) Team() string {
	if s == SideRight {
		return "team2"
	}
	return "team1"
}

func (s Side) Mirrored() bool {
	return s == SideRight
}

type Player struct {
	Side   Side
	Number int
}

func NewPlayer(side Side, number int) Player {
	return Player{Side: side, Number: number}
}

func (p Player) String() string {
	return fmt.Sprintf("%s%d", p.Side, p.Number)
}
