package util

import (
	"fmt"

	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

// FrameKeys composes the column keys of a pose frame like
// "teams.team1.player2.base_link" or "ball.frame.pose".
type FrameKeys struct {
	Prefix string
}

func NewFrameKeys(prefix string) FrameKeys {
	return FrameKeys{Prefix: prefix}
}

func (f FrameKeys) key(group, name string) string {
	return fmt.Sprintf("%s.%s.%s", f.Prefix, group, name)
}

func (f FrameKeys) PositionX() string { return f.key("position", "x") }
func (f FrameKeys) PositionY() string { return f.key("position", "y") }
func (f FrameKeys) PositionZ() string { return f.key("position", "z") }

// Position returns the x, y and z keys
func (f FrameKeys) Position() []string {
	return []string{f.PositionX(), f.PositionY(), f.PositionZ()}
}

// Rotation returns the w, x, y and z keys of the quaternion
func (f FrameKeys) Rotation() []string {
	return []string{
		f.key("rotation", "w"),
		f.key("rotation", "x"),
		f.key("rotation", "y"),
		f.key("rotation", "z"),
	}
}

// Covariance returns the key of the flattened 3x3 covariance entry at idx.
// The diagonal is 0 (x), 4 (y) and 8 (theta).
func (f FrameKeys) Covariance(idx int) string {
	return f.key("covariance", fmt.Sprint(idx))
}

// HasPosition reports whether t contains all position columns of the frame
func (f FrameKeys) HasPosition(t *table.Table) bool {
	return t.HasAll(f.Position()...)
}

// HasRotation reports whether t contains all rotation columns of the frame
func (f FrameKeys) HasRotation(t *table.Table) bool {
	return t.HasAll(f.Rotation()...)
}
