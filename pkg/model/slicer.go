package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Slicer identifies the slicing engine a configuration targets.
type Slicer int

const (
	SlicerMiracleGrue Slicer = iota
	SlicerSkeinforge
)

// slicerNames maps each engine to the name the slicer invocation expects.
var slicerNames = map[Slicer]string{
	SlicerMiracleGrue: "MIRACLEGRUE",
	SlicerSkeinforge:  "SKEINFORGE",
}

// Name returns the wire name of the engine, or "" for an unknown engine.
func (s Slicer) Name() string {
	return slicerNames[s]
}

// String returns the wire name of the engine.
func (s Slicer) String() string {
	if name := s.Name(); name != "" {
		return name
	}
	return fmt.Sprintf("Slicer(%d)", int(s))
}

// ParseSlicer looks up an engine by its wire name (case-insensitive).
func ParseSlicer(name string) (Slicer, bool) {
	for s, n := range slicerNames {
		if strings.EqualFold(n, name) {
			return s, true
		}
	}
	return 0, false
}

// Extruder selects the active extruder.
type Extruder int

const (
	ExtruderLeft Extruder = iota
	ExtruderRight
)

// Code returns the wire encoding: "1" for the left extruder, "0" otherwise.
func (e Extruder) Code() string {
	if e == ExtruderLeft {
		return "1"
	}
	return "0"
}

func (e Extruder) String() string {
	switch e {
	case ExtruderLeft:
		return "left"
	case ExtruderRight:
		return "right"
	}
	return fmt.Sprintf("Extruder(%d)", int(e))
}

// SlicerConfiguration holds the tunable parameters of one slicing pass.
// It is a plain value: copies are independent and == compares every field.
type SlicerConfiguration struct {
	slicer              Slicer
	extruder            Extruder
	raft                bool
	supports            bool
	infill              float64
	layerHeight         float64
	shells              uint
	extruderTemperature uint
	platformTemperature uint
	printSpeed          uint
	travelSpeed         uint
}

// DefaultSlicerConfiguration returns the baseline parameter set.
func DefaultSlicerConfiguration() SlicerConfiguration {
	return SlicerConfiguration{
		slicer:              SlicerMiracleGrue,
		extruder:            ExtruderRight,
		raft:                false,
		supports:            false,
		infill:              0.10,
		layerHeight:         0.2,
		shells:              3,
		extruderTemperature: 230,
		platformTemperature: 110,
		printSpeed:          80,
		travelSpeed:         150,
	}
}

// NewSlicerConfiguration creates a configuration from a persisted JSON value.
// The value is not read yet: the result always carries the defaults.
// Use profile.Decode to populate a configuration from JSON.
func NewSlicerConfiguration(json.RawMessage) *SlicerConfiguration {
	cfg := DefaultSlicerConfiguration()
	return &cfg
}

// ToJSON returns the serialized form consumed by the slicer invocation.
// "path" is always nil; the invoking side fills it with the output file.
func (c *SlicerConfiguration) ToJSON() map[string]any {
	return map[string]any{
		"slicer":               c.slicer.Name(),
		"extruder":             c.extruder.Code(),
		"raft":                 c.raft,
		"support":              c.supports,
		"infill":               c.infill,
		"layer_height":         c.layerHeight,
		"shells":               c.shells,
		"extruder_temperature": c.extruderTemperature,
		"platform_temperature": c.platformTemperature,
		"travel_speed":         c.travelSpeed,
		"print_speed":          c.printSpeed,
		"path":                 nil,
	}
}

// MarshalJSON implements json.Marshaler using the serialized form.
func (c SlicerConfiguration) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.ToJSON())
}

// Accessors return the stored values unmodified.

func (c *SlicerConfiguration) Slicer() Slicer { return c.slicer }
func (c *SlicerConfiguration) Extruder() Extruder { return c.extruder }
func (c *SlicerConfiguration) Raft() bool { return c.raft }
func (c *SlicerConfiguration) Supports() bool { return c.supports }
func (c *SlicerConfiguration) Infill() float64 { return c.infill }
func (c *SlicerConfiguration) LayerHeight() float64 { return c.layerHeight }
func (c *SlicerConfiguration) Shells() uint { return c.shells }
func (c *SlicerConfiguration) ExtruderTemperature() uint { return c.extruderTemperature }
func (c *SlicerConfiguration) PlatformTemperature() uint { return c.platformTemperature }
func (c *SlicerConfiguration) PrintSpeed() uint { return c.printSpeed }
func (c *SlicerConfiguration) TravelSpeed() uint { return c.travelSpeed }

// Mutators overwrite the stored value. No range checks are made.

func (c *SlicerConfiguration) SetSlicer(s Slicer) { c.slicer = s }
func (c *SlicerConfiguration) SetExtruder(e Extruder) { c.extruder = e }
func (c *SlicerConfiguration) SetRaft(raft bool) { c.raft = raft }
func (c *SlicerConfiguration) SetSupports(supports bool) { c.supports = supports }
func (c *SlicerConfiguration) SetInfill(infill float64) { c.infill = infill }
func (c *SlicerConfiguration) SetLayerHeight(h float64) { c.layerHeight = h }
func (c *SlicerConfiguration) SetShells(shells uint) { c.shells = shells }
func (c *SlicerConfiguration) SetExtruderTemperature(t uint) { c.extruderTemperature = t }
func (c *SlicerConfiguration) SetPlatformTemperature(t uint) { c.platformTemperature = t }
func (c *SlicerConfiguration) SetPrintSpeed(speed uint) { c.printSpeed = speed }
func (c *SlicerConfiguration) SetTravelSpeed(speed uint) { c.travelSpeed = speed }
