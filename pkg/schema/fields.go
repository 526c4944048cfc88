package schema

import "fmt"

// Field is a canonical, match wide field
type Field int

const (
	GameTime Field = iota
	Playmode
	BallX
	BallY
	BallZ
	BallVX
	BallVY
	// prefix of the ball frame (position, rotation, covariance below it)
	BallFrame
	TeamLeft
	TeamRight
	TeamLeftScore
	TeamRightScore
	PenaltyShotsLeft
	PenaltyShotsRight
)

var fieldNames = []string{
	"GameTime",
	"Playmode",
	"BallX",
	"BallY",
	"BallZ",
	"BallVX",
	"BallVY",
	"BallFrame",
	"TeamLeft",
	"TeamRight",
	"TeamLeftScore",
	"TeamRightScore",
	"PenaltyShotsLeft",
	"PenaltyShotsRight",
}

func (f Field) String() string {
	if int(f) >= 0 && int(f) < len(fieldNames) {
		return fieldNames[f]
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

func Fields() []Field {
	ret := make([]Field, len(fieldNames))
	for i := range ret {
		ret[i] = Field(i)
	}
	return ret
}

// PlayerField is a canonical field of a single player
type PlayerField int

const (
	// selector for all columns of a player, including the trailing separator
	PlayerPrefix PlayerField = iota
	PlayerX
	PlayerY
	PlayerVX
	PlayerVY
	PlayerBody
	PlayerStamina
	// seconds until the player may rejoin the game, <= 0 while playing
	PlayerPenaltySeconds
	// frame prefixes
	PlayerBaseLink
	PlayerLeftSole
	PlayerRightSole
	PlayerFootprint
)

var playerFieldNames = []string{
	"PlayerPrefix",
	"PlayerX",
	"PlayerY",
	"PlayerVX",
	"PlayerVY",
	"PlayerBody",
	"PlayerStamina",
	"PlayerPenaltySeconds",
	"PlayerBaseLink",
	"PlayerLeftSole",
	"PlayerRightSole",
	"PlayerFootprint",
}

func (f PlayerField) String() string {
	if int(f) >= 0 && int(f) < len(playerFieldNames) {
		return playerFieldNames[f]
	}
	return fmt.Sprintf("PlayerField(%d)", int(f))
}

func PlayerFields() []PlayerField {
	ret := make([]PlayerField, len(playerFieldNames))
	for i := range ret {
		ret[i] = PlayerField(i)
	}
	return ret
}
