package model

import (
	"fmt"
	"slices"
	"time"

	"gopkg.in/yaml.v3"
)

// timestampLayouts are the forms people type into a session file by hand.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04",
	"2006-01-02",
}

// ParseTimestamp parses s using the first layout that fits. Forms without a
// zone are read in local time.
func ParseTimestamp(s string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// normalizeTimes rewrites the named keys of a mapping node to RFC 3339 so
// the default time.Time decoding accepts any of the hand-typed forms.
func normalizeTimes(value *yaml.Node, keys ...string) error {
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		key, v := value.Content[i], value.Content[i+1]
		if !slices.Contains(keys, key.Value) || v.Kind != yaml.ScalarNode || v.Tag == "!!null" {
			continue
		}
		if v.Value == "" {
			v.Tag = "!!null"
			continue
		}
		t, err := ParseTimestamp(v.Value)
		if err != nil {
			return fmt.Errorf("line %d: %s: %w", v.Line, key.Value, err)
		}
		v.Tag, v.Value = "!!str", t.Format(time.RFC3339Nano)
	}
	return nil
}

func (p *Player) UnmarshalYAML(value *yaml.Node) error {
	if err := normalizeTimes(value, "activated_at"); err != nil {
		return err
	}
	type plain Player
	return value.Decode((*plain)(p))
}

func (m *Match) UnmarshalYAML(value *yaml.Node) error {
	if err := normalizeTimes(value, "started_at", "finished_at"); err != nil {
		return err
	}
	type plain Match
	return value.Decode((*plain)(m))
}
