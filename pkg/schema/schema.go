// Package schema maps the canonical field names used by the analysis onto the
// column keys of a league's log. Every other package resolves its columns
// through a Schema instead of checking the category.
package schema

import (
	"fmt"
	"strings"

	"github.com/samber/lo"

	"github.com/mpapenbr/socceranalyzer-go/pkg/model"
)

type Category int

const (
	Simulated2D Category = iota
	SmallSize
	LargeSize
	HumanoidKid
)

var categoryNames = map[Category]string{
	Simulated2D: "Simulated2D",
	SmallSize:   "SmallSize",
	LargeSize:   "LargeSize",
	HumanoidKid: "HumanoidKid",
}

// additional names accepted by ParseCategory
var categoryAliases = map[string]Category{
	"sim2d":  Simulated2D,
	"2d":     Simulated2D,
	"ssl":    SmallSize,
	"hlkid":  HumanoidKid,
	"hl_kid": HumanoidKid,
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return fmt.Sprintf("Category(%d)", int(c))
}

func Categories() []Category {
	return []Category{Simulated2D, SmallSize, LargeSize, HumanoidKid}
}

func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if strings.EqualFold(name, s) {
			return c, nil
		}
	}
	if c, ok := categoryAliases[strings.ToLower(s)]; ok {
		return c, nil
	}
	return 0, &model.ValidationError{Field: "category", Value: s, Reason: "unknown category"}
}

// SpeedSource tells how player speed can be obtained for a category
type SpeedSource int

const (
	SpeedUnsupported SpeedSource = iota
	// the log contains velocity columns
	SpeedVelocityReported
	// speed has to be derived from consecutive positions
	SpeedPositionDifferenced
)

type Schema interface {
	Category() Category
	// Resolve returns the column key of a match wide field
	Resolve(f Field) (string, error)
	// ResolvePlayer returns the column key (or column prefix for frame fields)
	// of a player field. The player is validated first.
	ResolvePlayer(p model.Player, f PlayerField) (string, error)
	ValidatePlayer(p model.Player) error
	PlayerRange() (minNum, maxNum int)
	// Roster returns the player numbers to analyze for side
	Roster(side model.Side) []int
	SpeedSource() SpeedSource
	FootprintSupported() bool
}

type Option func(*options)

type options struct {
	metadata *model.Metadata
}

// WithMetadata provides the match metadata. Used by leagues which ship the
// team composition outside of the log.
func WithMetadata(md *model.Metadata) Option {
	return func(o *options) {
		o.metadata = md
	}
}

// New returns the schema for category
func New(c Category, opts ...Option) (Schema, error) {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	switch c {
	case Simulated2D:
		return newSimulated2D(), nil
	case SmallSize:
		return newWheeled(SmallSize, 0, 15), nil
	case LargeSize:
		return newWheeled(LargeSize, 1, 5), nil
	case HumanoidKid:
		return newHumanoidKid(o.metadata), nil
	default:
		return nil, &model.ValidationError{Field: "category", Value: c, Reason: "unknown category"}
	}
}

// base holds the parts common to all leagues
type base struct {
	category Category
	fields   map[Field]string
	first, last int
}

func (b *base) Category() Category {
	return b.category
}

func (b *base) Resolve(f Field) (string, error) {
	if key, ok := b.fields[f]; ok {
		return key, nil
	}
	return "", b.unmapped(f.String())
}

func (b *base) PlayerRange() (minNum, maxNum int) {
	return b.first, b.last
}

func (b *base) ValidatePlayer(p model.Player) error {
	if !p.Side.Valid() {
		return &model.ValidationError{
			Field: "side", Value: string(p.Side), Reason: "must be 'l' or 'r'",
		}
	}
	if p.Number < b.first || p.Number > b.last {
		return &model.ValidationError{
			Field:  "player number",
			Value:  p.Number,
			Reason: fmt.Sprintf("must be between %d and %d for %s", b.first, b.last, b.category),
		}
	}
	return nil
}

func (b *base) Roster(side model.Side) []int {
	return lo.RangeFrom(b.first, b.last-b.first+1)
}

func (b *base) unmapped(key string) *model.SchemaError {
	return &model.SchemaError{Category: b.category.String(), Key: key}
}
