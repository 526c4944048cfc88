//nolint:thelper,funlen // ok for tests
package schema

import (
	"errors"
	"testing"

	"gotest.tools/v3/assert"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

func mustNew(t *testing.T, c Category, opts ...Option) Schema {
	t.Helper()
	s, err := New(c, opts...)
	assert.NilError(t, err)
	return s
}

// every field either resolves to a non empty key or fails with a SchemaError
func TestResolve_allCategories(t *testing.T) {
	for _, c := range Categories() {
		t.Run(c.String(), func(t *testing.T) {
			s := mustNew(t, c)
			assert.Equal(t, c, s.Category())
			for _, f := range Fields() {
				key, err := s.Resolve(f)
				if err != nil {
					var sErr *model.SchemaError
					assert.Assert(t, errors.As(err, &sErr), "field %s", f)
					assert.Equal(t, c.String(), sErr.Category)
					assert.Equal(t, f.String(), sErr.Key)
					continue
				}
				assert.Assert(t, key != "", "field %s", f)
			}
			p := model.NewPlayer(model.SideLeft, 1)
			for _, f := range PlayerFields() {
				key, err := s.ResolvePlayer(p, f)
				if err != nil {
					var sErr *model.SchemaError
					assert.Assert(t, errors.As(err, &sErr), "player field %s", f)
					continue
				}
				assert.Assert(t, key != "", "player field %s", f)
			}
		})
	}
}

func TestResolve_keys(t *testing.T) {
	tests := []struct {
		category Category
		field    Field
		want     string
	}{
		{Simulated2D, GameTime, "show_time"},
		{Simulated2D, BallX, "ball_x"},
		{Simulated2D, TeamRightScore, "team_score_r"},
		{HumanoidKid, GameTime, "time"},
		{HumanoidKid, Playmode, "game_control_data.game_state"},
		{HumanoidKid, BallZ, "ball.frame.pose.position.z"},
		{HumanoidKid, TeamLeftScore, "teams.team1.score"},
		{SmallSize, BallY, "ball.position.y"},
	}
	for _, tt := range tests {
		t.Run(tt.category.String()+"/"+tt.field.String(), func(t *testing.T) {
			got, err := mustNew(t, tt.category).Resolve(tt.field)
			assert.NilError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_unmapped(t *testing.T) {
	_, err := mustNew(t, Simulated2D).Resolve(BallZ)
	var sErr *model.SchemaError
	assert.Assert(t, errors.As(err, &sErr))
	assert.Equal(t, "schema: Simulated2D: BallZ: not mapped", err.Error())

	_, err = mustNew(t, HumanoidKid).Resolve(TeamLeft)
	assert.Assert(t, errors.As(err, &sErr))

	_, err = mustNew(t, LargeSize).Resolve(Field(99))
	assert.ErrorContains(t, err, "Field(99)")
}

func TestResolvePlayer(t *testing.T) {
	tests := []struct {
		category Category
		player   model.Player
		field    PlayerField
		want     string
	}{
		{Simulated2D, model.NewPlayer(model.SideLeft, 1), PlayerVX, "player_l1_vx"},
		{Simulated2D, model.NewPlayer(model.SideRight, 11), PlayerPrefix, "player_r11_"},
		{HumanoidKid, model.NewPlayer(model.SideLeft, 2), PlayerPrefix, "teams.team1.player2."},
		{HumanoidKid, model.NewPlayer(model.SideRight, 4), PlayerBaseLink, "teams.team2.player4.base_link"},
		{
			HumanoidKid, model.NewPlayer(model.SideRight, 1), PlayerPenaltySeconds,
			"teams.team2.player1.robot_info.secs_till_unpenalized",
		},
		{SmallSize, model.NewPlayer(model.SideLeft, 0), PlayerX, "teams.team1.robot0.position.x"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			got, err := mustNew(t, tt.category).ResolvePlayer(tt.player, tt.field)
			assert.NilError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidatePlayer(t *testing.T) {
	tests := []struct {
		name     string
		category Category
		player   model.Player
		wantErr  bool
	}{
		{"2d lower bound", Simulated2D, model.NewPlayer(model.SideLeft, 1), false},
		{"2d upper bound", Simulated2D, model.NewPlayer(model.SideRight, 11), false},
		{"2d zero", Simulated2D, model.NewPlayer(model.SideLeft, 0), true},
		{"2d twelve", Simulated2D, model.NewPlayer(model.SideLeft, 12), true},
		{"kid four", HumanoidKid, model.NewPlayer(model.SideLeft, 4), false},
		{"kid five", HumanoidKid, model.NewPlayer(model.SideLeft, 5), true},
		{"bad side", HumanoidKid, model.Player{Side: "x", Number: 1}, true},
		{"long side", Simulated2D, model.Player{Side: "left", Number: 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustNew(t, tt.category)
			err := s.ValidatePlayer(tt.player)
			if !tt.wantErr {
				assert.NilError(t, err)
				return
			}
			var vErr *model.ValidationError
			assert.Assert(t, errors.As(err, &vErr))
			_, err = s.ResolvePlayer(tt.player, PlayerPrefix)
			assert.Assert(t, errors.As(err, &vErr))
		})
	}
}

func TestRoster(t *testing.T) {
	assert.DeepEqual(t, []int{1, 2, 3, 4}, mustNew(t, HumanoidKid).Roster(model.SideLeft))
	assert.Equal(t, 11, len(mustNew(t, Simulated2D).Roster(model.SideRight)))

	md := &model.Metadata{Teams: map[string]model.TeamMetadata{
		"team1": {Name: "A", Players: map[int]model.PlayerMetadata{3: {ID: 1}, 1: {ID: 2}, 7: {ID: 3}}},
	}}
	s := mustNew(t, HumanoidKid, WithMetadata(md))
	assert.DeepEqual(t, []int{1, 3}, s.Roster(model.SideLeft))
	assert.Equal(t, 0, len(s.Roster(model.SideRight)))
}

func TestSpeedSource(t *testing.T) {
	assert.Equal(t, SpeedVelocityReported, mustNew(t, Simulated2D).SpeedSource())
	assert.Equal(t, SpeedPositionDifferenced, mustNew(t, HumanoidKid).SpeedSource())
	assert.Equal(t, SpeedUnsupported, mustNew(t, SmallSize).SpeedSource())
	assert.Assert(t, mustNew(t, HumanoidKid).FootprintSupported())
	assert.Assert(t, !mustNew(t, LargeSize).FootprintSupported())
}

func TestParseCategory(t *testing.T) {
	for in, want := range map[string]Category{
		"Simulated2D": Simulated2D,
		"humanoidkid": HumanoidKid,
		"sim2d":       Simulated2D,
		"SSL":         SmallSize,
		"LargeSize":   LargeSize,
	} {
		got, err := ParseCategory(in)
		assert.NilError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseCategory("vss")
	var vErr *model.ValidationError
	assert.Assert(t, errors.As(err, &vErr))

	_, err = New(Category(42))
	assert.Assert(t, errors.As(err, &vErr))
}
