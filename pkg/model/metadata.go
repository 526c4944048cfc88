package model

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Metadata describes the teams of a match as shipped alongside humanoid logs.
// Teams are keyed by "team1" (left) and "team2" (right).
type Metadata struct {
	Teams map[string]TeamMetadata `yaml:"teams"`
}

type TeamMetadata struct {
	Name    string
	Players map[int]PlayerMetadata // keyed by the number N of the "playerN" entry
}

type PlayerMetadata struct {
	ID   int    `yaml:"id"`
	Name string `yaml:"name"`
}

// ParseMetadata decodes metadata in yaml or json format
func ParseMetadata(data []byte) (*Metadata, error) {
	var md Metadata
	if err := yaml.Unmarshal(data, &md); err != nil {
		return nil, fmt.Errorf("could not parse metadata: %w", err)
	}
	if len(md.Teams) == 0 {
		return nil, &SchemaError{Key: "teams", Reason: "metadata contains no teams"}
	}
	return &md, nil
}

// UnmarshalYAML collects all "playerN" entries of a team. Other keys are ignored.
func (t *TeamMetadata) UnmarshalYAML(value *yaml.Node) error {
	var raw map[string]yaml.Node
	if err := value.Decode(&raw); err != nil {
		return err
	}
	t.Players = make(map[int]PlayerMetadata)
	for key, node := range raw {
		if key == "name" {
			if err := node.Decode(&t.Name); err != nil {
				return err
			}
			continue
		}
		numStr, ok := strings.CutPrefix(key, "player")
		if !ok {
			continue
		}
		num, err := strconv.Atoi(numStr)
		if err != nil {
			return fmt.Errorf("invalid player key %q: %w", key, err)
		}
		var pm PlayerMetadata
		if err := node.Decode(&pm); err != nil {
			return fmt.Errorf("invalid player entry %q: %w", key, err)
		}
		t.Players[num] = pm
	}
	return nil
}

func (m *Metadata) Team(side Side) (TeamMetadata, bool) {
	t, ok := m.Teams[side.Team()]
	return t, ok
}

// PlayerNumbers returns the sorted player numbers listed for side
func (m *Metadata) PlayerNumbers(side Side) []int {
	t, ok := m.Team(side)
	if !ok {
		return nil
	}
	ret := make([]int, 0, len(t.Players))
	for num := range t.Players {
		ret = append(ret, num)
	}
	sort.Ints(ret)
	return ret
}
