package profile

import (
	"fmt"

	"github.com/me/slicecfg/pkg/model"
)

func mapDocument(doc document) (*model.SlicerConfiguration, error) {
	cfg := model.NewSlicerConfiguration(nil)

	if doc.Slicer != nil {
		s, ok := model.ParseSlicer(*doc.Slicer)
		if !ok {
			return nil, &DecodeError{Field: "slicer", Msg: fmt.Sprintf("unknown slicer %q", *doc.Slicer)}
		}
		cfg.SetSlicer(s)
	}

	if doc.Extruder != nil {
		switch *doc.Extruder {
		case "1":
			cfg.SetExtruder(model.ExtruderLeft)
		case "0":
			cfg.SetExtruder(model.ExtruderRight)
		default:
			return nil, &DecodeError{Field: "extruder", Msg: fmt.Sprintf(`expected "0" or "1", got %q`, *doc.Extruder)}
		}
	}

	if doc.Raft != nil {
		cfg.SetRaft(*doc.Raft)
	}
	if doc.Support != nil {
		cfg.SetSupports(*doc.Support)
	}
	if doc.Infill != nil {
		cfg.SetInfill(*doc.Infill)
	}
	if doc.LayerHeight != nil {
		cfg.SetLayerHeight(*doc.LayerHeight)
	}

	uints := []struct {
		key string
		val *count
		set func(uint)
	}{
		{"shells", doc.Shells, cfg.SetShells},
		{"extruder_temperature", doc.ExtruderTemperature, cfg.SetExtruderTemperature},
		{"platform_temperature", doc.PlatformTemperature, cfg.SetPlatformTemperature},
		{"travel_speed", doc.TravelSpeed, cfg.SetTravelSpeed},
		{"print_speed", doc.PrintSpeed, cfg.SetPrintSpeed},
	}
	for _, u := range uints {
		if u.val == nil {
			continue
		}
		if u.val.neg < 0 {
			return nil, &DecodeError{Field: u.key, Msg: fmt.Sprintf("must not be negative, got %d", u.val.neg)}
		}
		u.set(uint(u.val.val))
	}

	// path belongs to the slice job; a stored value is dropped.
	return cfg, nil
}
