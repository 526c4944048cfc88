// Package filter contains transforms over a match table which null out or
// select rows and columns by validity criteria. Filters never change their
// input, they return a new table.
package filter

import (
	"github.com/mpapenbr/socceranalyzer-go/pkg/table"
)

// Func transforms t into a new table
type Func func(t *table.Table) (*table.Table, error)

// Chain applies fs from left to right
func Chain(fs ...Func) Func {
	return func(t *table.Table) (*table.Table, error) {
		var err error
		for _, f := range fs {
			if t, err = f(t); err != nil {
				return nil, err
			}
		}
		return t, nil
	}
}
