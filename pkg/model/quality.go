package model

import (
	"fmt"
	"strings"
)

// Quality selects one of the built-in slicing presets.
type Quality int

const (
	QualityLow Quality = iota
	QualityMedium
	QualityHigh
)

// Qualities lists the preset tiers in ascending order.
var Qualities = []Quality{QualityLow, QualityMedium, QualityHigh}

var qualityNames = map[Quality]string{
	QualityLow:    "low",
	QualityMedium: "medium",
	QualityHigh:   "high",
}

// String returns the lower-case tier name.
func (q Quality) String() string {
	if name, ok := qualityNames[q]; ok {
		return name
	}
	return fmt.Sprintf("Quality(%d)", int(q))
}

// MarshalText encodes the tier name so Quality can be used in JSON bodies.
func (q Quality) MarshalText() ([]byte, error) {
	return []byte(q.String()), nil
}

// UnmarshalText accepts a tier name.
func (q *Quality) UnmarshalText(text []byte) error {
	parsed, err := ParseQuality(string(text))
	if err != nil {
		return err
	}
	*q = parsed
	return nil
}

// ParseQuality converts a tier name (low, medium, high) to a Quality.
func ParseQuality(s string) (Quality, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for q, n := range qualityNames {
		if n == name {
			return q, nil
		}
	}
	return 0, NewValidationError(fmt.Sprintf("unknown quality %q", s),
		FieldError{Field: "quality", Message: "must be one of low, medium, high"})
}

// NewPreset returns a configuration tuned for the given quality tier.
// A Quality outside the defined tiers yields the plain defaults.
func NewPreset(q Quality) *SlicerConfiguration {
	cfg := NewSlicerConfiguration(nil)

	switch q {
	case QualityLow:
		cfg.SetSlicer(SlicerMiracleGrue)
		cfg.SetLayerHeight(0.34)
	case QualityMedium:
		cfg.SetSlicer(SlicerMiracleGrue)
		cfg.SetRaft(false)
		cfg.SetSupports(false)

		cfg.SetInfill(0.1)
		cfg.SetLayerHeight(0.27)
		cfg.SetShells(2)

		cfg.SetExtruderTemperature(230)

		cfg.SetPrintSpeed(80)
		cfg.SetTravelSpeed(100)
	case QualityHigh:
		cfg.SetSlicer(SlicerSkeinforge)
		cfg.SetLayerHeight(0.1)
	}
	return cfg
}
