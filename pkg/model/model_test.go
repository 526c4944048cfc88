//nolint:thelper // ok for tests
package model

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSide(t *testing.T) {
	tests := []struct {
		in      string
		want    Side
		wantErr bool
	}{
		{in: "l", want: SideLeft},
		{in: "r", want: SideRight},
		{in: "left", wantErr: true},
		{in: "x", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseSide(tt.in)
			if tt.wantErr {
				var vErr *ValidationError
				assert.ErrorAs(t, err, &vErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSide_Team(t *testing.T) {
	assert.Equal(t, "team1", SideLeft.Team())
	assert.Equal(t, "team2", SideRight.Team())
	assert.Equal(t, "l3", NewPlayer(SideLeft, 3).String())
}

func TestIsFatal(t *testing.T) {
	assert.True(t, IsFatal(fmt.Errorf("wrapped: %w", MissingColumn("time"))))
	assert.True(t, IsFatal(&ValidationError{Field: "side", Value: "x"}))
	assert.False(t, IsFatal(&DegeneracyError{Stage: "outliers", Reason: "empty"}))
	assert.False(t, IsFatal(errors.New("other")))
	assert.False(t, IsFatal(fmt.Errorf("l2: %w", ErrPlayerAbsent)))
}

func TestErrorMessages(t *testing.T) {
	assert.Equal(t, "schema: HumanoidKid: BallZ: not mapped",
		(&SchemaError{Category: "HumanoidKid", Key: "BallZ"}).Error())
	assert.Equal(t, "schema: time: column not found", MissingColumn("time").Error())
	assert.Equal(t, "smoothing: no samples left",
		(&DegeneracyError{Stage: "smoothing", Reason: "no samples left"}).Error())
}

func TestPosition_Mirror(t *testing.T) {
	p := Position{X: 1, Y: -2, Z: 0.5}
	assert.Equal(t, Position{X: -1, Y: 2, Z: 0.5}, p.Mirror())
	assert.False(t, p.IsNaN())
	assert.True(t, Position{X: math.NaN()}.IsNaN())
}

func TestParseMetadata(t *testing.T) {
	data := []byte(`
teams:
  team1:
    name: Bit-Bots
    score: 2
    player1: {id: 7, name: Amy}
    player3: {id: 9}
  team2:
    name: Rhoban
    player2: {id: 4}
`)
	md, err := ParseMetadata(data)
	require.NoError(t, err)

	left, ok := md.Team(SideLeft)
	require.True(t, ok)
	assert.Equal(t, "Bit-Bots", left.Name)
	assert.Equal(t, PlayerMetadata{ID: 7, Name: "Amy"}, left.Players[1])
	assert.Equal(t, []int{1, 3}, md.PlayerNumbers(SideLeft))
	assert.Equal(t, []int{2}, md.PlayerNumbers(SideRight))
}

func TestParseMetadata_json(t *testing.T) {
	md, err := ParseMetadata([]byte(`{"teams": {"team2": {"name": "B", "player4": {"id": 1}}}}`))
	require.NoError(t, err)
	assert.Equal(t, []int{4}, md.PlayerNumbers(SideRight))
	assert.Nil(t, md.PlayerNumbers(SideLeft))
}

func TestParseMetadata_errors(t *testing.T) {
	_, err := ParseMetadata([]byte(`teams: {}`))
	var sErr *SchemaError
	assert.ErrorAs(t, err, &sErr)

	_, err = ParseMetadata([]byte(`teams: {team1: {playerX: {id: 1}}}`))
	assert.Error(t, err)
}
