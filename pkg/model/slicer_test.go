package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func defaultJSON() map[string]any {
	return map[string]any{
		"slicer":               "MIRACLEGRUE",
		"extruder":             "0",
		"raft":                 false,
		"support":              false,
		"infill":               0.10,
		"layer_height":         0.2,
		"shells":               uint(3),
		"extruder_temperature": uint(230),
		"platform_temperature": uint(110),
		"travel_speed":         uint(150),
		"print_speed":          uint(80),
		"path":                 nil,
	}
}

func merged(overrides map[string]any) map[string]any {
	out := defaultJSON()
	for k, v := range overrides {
		out[k] = v
	}
	return out
}

func TestDefaultSlicerConfiguration_ToJSON(t *testing.T) {
	cfg := DefaultSlicerConfiguration()
	got := cfg.ToJSON()
	if want := defaultJSON(); !reflect.DeepEqual(got, want) {
		t.Errorf("ToJSON() = %v, want %v", got, want)
	}
}

func TestNewSlicerConfiguration_IgnoresInput(t *testing.T) {
	inputs := []json.RawMessage{
		nil,
		json.RawMessage(`null`),
		json.RawMessage(`{"slicer":"SKEINFORGE","shells":9,"raft":true}`),
		json.RawMessage(`[1,2,3]`),
	}
	want := DefaultSlicerConfiguration()
	for _, raw := range inputs {
		if got := NewSlicerConfiguration(raw); *got != want {
			t.Errorf("NewSlicerConfiguration(%s) = %+v, want defaults", raw, *got)
		}
	}
}

func TestNewPreset_ToJSON(t *testing.T) {
	tests := []struct {
		quality Quality
		want    map[string]any
	}{
		{QualityLow, merged(map[string]any{
			"slicer":       "MIRACLEGRUE",
			"layer_height": 0.34,
		})},
		{QualityMedium, merged(map[string]any{
			"slicer":               "MIRACLEGRUE",
			"layer_height":         0.27,
			"raft":                 false,
			"support":              false,
			"infill":               0.1,
			"shells":               uint(2),
			"extruder_temperature": uint(230),
			"print_speed":          uint(80),
			"travel_speed":         uint(100),
		})},
		{QualityHigh, merged(map[string]any{
			"slicer":       "SKEINFORGE",
			"layer_height": 0.1,
		})},
	}
	for _, tt := range tests {
		t.Run(tt.quality.String(), func(t *testing.T) {
			got := NewPreset(tt.quality).ToJSON()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("NewPreset(%s).ToJSON() = %v, want %v", tt.quality, got, tt.want)
			}
		})
	}
}

func TestNewPreset_Medium(t *testing.T) {
	got := NewPreset(QualityMedium).ToJSON()
	if got["extruder_temperature"] != uint(230) {
		t.Errorf("extruder_temperature = %v, want 230", got["extruder_temperature"])
	}
	if got["shells"] != uint(2) {
		t.Errorf("shells = %v, want 2", got["shells"])
	}
	if got["layer_height"] != 0.27 {
		t.Errorf("layer_height = %v, want 0.27", got["layer_height"])
	}
}

func TestNewPreset_UnknownQualityFallsBackToDefaults(t *testing.T) {
	for _, q := range []Quality{Quality(-1), Quality(3), Quality(42)} {
		if got := NewPreset(q); *got != DefaultSlicerConfiguration() {
			t.Errorf("NewPreset(%d) = %+v, want defaults", int(q), *got)
		}
	}
}

func TestNewPreset_ReturnsIndependentValues(t *testing.T) {
	a := NewPreset(QualityLow)
	b := NewPreset(QualityLow)
	a.SetShells(7)
	if b.Shells() != 3 {
		t.Errorf("mutating one preset changed another: Shells() = %d", b.Shells())
	}
}

func TestSlicerConfiguration_SetGetRoundTrip(t *testing.T) {
	cfg := DefaultSlicerConfiguration()

	cfg.SetSlicer(SlicerSkeinforge)
	if got := cfg.Slicer(); got != SlicerSkeinforge {
		t.Errorf("Slicer() = %v, want %v", got, SlicerSkeinforge)
	}
	cfg.SetExtruder(ExtruderLeft)
	if got := cfg.Extruder(); got != ExtruderLeft {
		t.Errorf("Extruder() = %v, want %v", got, ExtruderLeft)
	}
	cfg.SetRaft(true)
	if !cfg.Raft() {
		t.Error("Raft() = false, want true")
	}
	cfg.SetSupports(true)
	if !cfg.Supports() {
		t.Error("Supports() = false, want true")
	}
	cfg.SetInfill(0.85)
	if got := cfg.Infill(); got != 0.85 {
		t.Errorf("Infill() = %v, want 0.85", got)
	}
	cfg.SetLayerHeight(0.15)
	if got := cfg.LayerHeight(); got != 0.15 {
		t.Errorf("LayerHeight() = %v, want 0.15", got)
	}
	cfg.SetShells(5)
	if got := cfg.Shells(); got != 5 {
		t.Errorf("Shells() = %d, want 5", got)
	}
	cfg.SetExtruderTemperature(245)
	if got := cfg.ExtruderTemperature(); got != 245 {
		t.Errorf("ExtruderTemperature() = %d, want 245", got)
	}
	cfg.SetPlatformTemperature(60)
	if got := cfg.PlatformTemperature(); got != 60 {
		t.Errorf("PlatformTemperature() = %d, want 60", got)
	}
	cfg.SetPrintSpeed(40)
	if got := cfg.PrintSpeed(); got != 40 {
		t.Errorf("PrintSpeed() = %d, want 40", got)
	}
	cfg.SetTravelSpeed(200)
	if got := cfg.TravelSpeed(); got != 200 {
		t.Errorf("TravelSpeed() = %d, want 200", got)
	}
}

func TestSlicerConfiguration_NoValidation(t *testing.T) {
	cfg := DefaultSlicerConfiguration()
	cfg.SetInfill(7.5)
	cfg.SetLayerHeight(-1)
	if cfg.Infill() != 7.5 || cfg.LayerHeight() != -1 {
		t.Errorf("setters altered out-of-range values: infill=%v layer_height=%v", cfg.Infill(), cfg.LayerHeight())
	}
}

func TestSlicerConfiguration_ExtruderEncoding(t *testing.T) {
	cfg := DefaultSlicerConfiguration()

	cfg.SetExtruder(ExtruderLeft)
	if got := cfg.ToJSON()["extruder"]; got != "1" {
		t.Errorf("extruder (left) = %v, want \"1\"", got)
	}
	cfg.SetExtruder(ExtruderRight)
	if got := cfg.ToJSON()["extruder"]; got != "0" {
		t.Errorf("extruder (right) = %v, want \"0\"", got)
	}
	cfg.SetExtruder(Extruder(9))
	if got := cfg.ToJSON()["extruder"]; got != "0" {
		t.Errorf("extruder (unknown) = %v, want \"0\"", got)
	}
}

func TestSlicerConfiguration_UnknownSlicerName(t *testing.T) {
	cfg := DefaultSlicerConfiguration()
	cfg.SetSlicer(Slicer(17))
	if got := cfg.ToJSON()["slicer"]; got != "" {
		t.Errorf("slicer = %q, want empty string", got)
	}
}

func TestSlicerConfiguration_PathAlwaysNull(t *testing.T) {
	configs := []*SlicerConfiguration{
		NewPreset(QualityLow),
		NewPreset(QualityMedium),
		NewPreset(QualityHigh),
	}
	mutated := DefaultSlicerConfiguration()
	mutated.SetRaft(true)
	mutated.SetSlicer(Slicer(5))
	configs = append(configs, &mutated)

	for _, cfg := range configs {
		out := cfg.ToJSON()
		path, ok := out["path"]
		if !ok {
			t.Fatalf("path key missing from %v", out)
		}
		if path != nil {
			t.Errorf("path = %v, want nil", path)
		}
	}
}

func TestSlicerConfiguration_ToJSONIdempotent(t *testing.T) {
	cfg := NewPreset(QualityMedium)
	first := cfg.ToJSON()
	second := cfg.ToJSON()
	if !reflect.DeepEqual(first, second) {
		t.Errorf("ToJSON() not idempotent: %v vs %v", first, second)
	}
}

func TestSlicerConfiguration_MarshalJSON(t *testing.T) {
	cfg := DefaultSlicerConfiguration()
	cfg.SetExtruder(ExtruderLeft)

	data, err := json.Marshal(cfg)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got map[string]any
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	checks := map[string]any{
		"slicer":               "MIRACLEGRUE",
		"extruder":             "1",
		"raft":                 false,
		"support":              false,
		"infill":               0.1,
		"layer_height":         0.2,
		"shells":               float64(3),
		"extruder_temperature": float64(230),
		"platform_temperature": float64(110),
		"travel_speed":         float64(150),
		"print_speed":          float64(80),
	}
	for key, want := range checks {
		if got[key] != want {
			t.Errorf("%s = %v (%T), want %v", key, got[key], got[key], want)
		}
	}
	if v, ok := got["path"]; !ok || v != nil {
		t.Errorf("path = %v (present=%v), want null", v, ok)
	}
	if len(got) != 12 {
		t.Errorf("key count = %d, want 12", len(got))
	}

	// Pointer and value marshal identically.
	ptrData, err := json.Marshal(&cfg)
	if err != nil {
		t.Fatalf("marshal pointer: %v", err)
	}
	if string(ptrData) != string(data) {
		t.Errorf("pointer encoding %s differs from value encoding %s", ptrData, data)
	}
}

func TestSlicerConfiguration_ValueEquality(t *testing.T) {
	a := DefaultSlicerConfiguration()
	b := *NewSlicerConfiguration(nil)
	if a != b {
		t.Error("configurations with identical fields compare unequal")
	}
	b.SetTravelSpeed(151)
	if a == b {
		t.Error("configurations with different fields compare equal")
	}
}

func TestParseSlicer(t *testing.T) {
	tests := []struct {
		name string
		want Slicer
		ok   bool
	}{
		{"MIRACLEGRUE", SlicerMiracleGrue, true},
		{"miraclegrue", SlicerMiracleGrue, true},
		{"SKEINFORGE", SlicerSkeinforge, true},
		{"Skeinforge", SlicerSkeinforge, true},
		{"cura", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseSlicer(tt.name)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseSlicer(%q) = (%v, %v), want (%v, %v)", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}
