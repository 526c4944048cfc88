package filter

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
	"github.com/mpapenbr/socceranalyzer-go/pkg/schema"
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

type playerFilter struct {
	schema       schema.Schema
	player       model.Player
	includeTime  bool
	notPenalized bool
}

type PlayerOption func(f *playerFilter)

// IncludeTime keeps the game time column next to the player columns
func IncludeTime() PlayerOption {
	return func(f *playerFilter) {
		f.includeTime = true
	}
}

// NotPenalized drops all rows in which the player is penalized
func NotPenalized() PlayerOption {
	return func(f *playerFilter) {
		f.notPenalized = true
	}
}

// Player reduces a table to the columns of player p.
// The player is validated against s when the filter is applied.
func Player(s schema.Schema, p model.Player, opts ...PlayerOption) Func {
	f := &playerFilter{schema: s, player: p}
	for _, opt := range opts {
		opt(f)
	}
	return f.apply
}

func (f *playerFilter) apply(t *table.Table) (*table.Table, error) {
	prefix, err := f.schema.ResolvePlayer(f.player, schema.PlayerPrefix)
	if err != nil {
		return nil, err
	}
	timeKey := ""
	if f.includeTime {
		if timeKey, err = f.schema.Resolve(schema.GameTime); err != nil {
			return nil, err
		}
		if !t.Has(timeKey) {
			return nil, model.MissingColumn(timeKey)
		}
	}
	ret := t.SelectColumns(func(key string) bool {
		return strings.HasPrefix(key, prefix) || (f.includeTime && key == timeKey)
	})
	if !f.notPenalized {
		return ret, nil
	}

	key, err := f.schema.ResolvePlayer(f.player, schema.PlayerPenaltySeconds)
	if err != nil {
		return nil, err
	}
	secs, err := t.Float(key)
	if err != nil {
		return nil, fmt.Errorf("player filter %s: %w", f.player, err)
	}
	// NaN compares false and drops the row
	return ret.SelectRows(lo.Map(secs, func(v float64, _ int) bool { return v <= 0 }))
}
