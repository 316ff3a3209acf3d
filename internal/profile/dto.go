package profile

import "gopkg.in/yaml.v3"

// document mirrors the serialized configuration. Pointer fields tell an
// absent key apart from a zero value.
type document struct {
	Slicer              *string  `yaml:"slicer"`
	Extruder            *string  `yaml:"extruder"`
	Raft                *bool    `yaml:"raft"`
	Support             *bool    `yaml:"support"`
	Infill              *float64 `yaml:"infill"`
	LayerHeight         *float64 `yaml:"layer_height"`
	Shells              *count   `yaml:"shells"`
	ExtruderTemperature *count   `yaml:"extruder_temperature"`
	PlatformTemperature *count   `yaml:"platform_temperature"`
	TravelSpeed         *count   `yaml:"travel_speed"`
	PrintSpeed          *count   `yaml:"print_speed"`
	Path                any      `yaml:"path"`
}

// count holds a non-negative integer field. Negative input is kept rather than
// rejected here so the mapper can report it against its key.
type count struct {
	val uint64
	neg int64
}

func (c *count) UnmarshalYAML(n *yaml.Node) error {
	if err := n.Decode(&c.val); err == nil {
		return nil
	}
	var i int64
	if err := n.Decode(&i); err != nil {
		return err
	}
	c.neg = i
	return nil
}
