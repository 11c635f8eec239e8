package scoring

import (
	"errors"
	"fmt"
)

// Sensor modes for temperature thresholds.
const (
	SensorModePrototypeLowTemp  = "prototype_low_temp"
	SensorModeShopfloorHighTemp = "shopfloor_high_temp"
)

// Machine types recognized by the engine.
const (
	MachineCNC      = "CNC"
	MachineEDM      = "EDM"
	MachineLathe    = "Lathe"
	MachineGrinding = "Grinding"
)

// MachineTypes lists the recognized machine types in a stable order.
var MachineTypes = []string{MachineCNC, MachineEDM, MachineLathe, MachineGrinding}

// Domain errors surfaced by the engine. Callers wrap or match with errors.Is.
var (
	ErrUnknownMachineType = errors.New("unknown machine type")
	ErrConfigIncomplete   = errors.New("threshold configuration incomplete")
	ErrMissingTemperature = errors.New("no temperature data available")
	ErrInvalidBand        = errors.New("invalid threshold band")
)

// Band holds the green/yellow breakpoints for one metric, with an optional
// red breakpoint (only temperature bands carry one).
// Invariant: 0 < Green < Yellow, and Red (when set) > Yellow.
type Band struct {
	Green  float64  `json:"green"`
	Yellow float64  `json:"yellow"`
	Red    *float64 `json:"red,omitempty"`
}

// Validate enforces the strictly-increasing, positive breakpoint invariant.
// Degenerate bands would divide by zero inside Subscore, so they are rejected
// at configuration-write time rather than defended against during scoring.
func (b Band) Validate() error {
	if b.Green <= 0 {
		return fmt.Errorf("%w: green breakpoint %g must be > 0", ErrInvalidBand, b.Green)
	}
	if b.Yellow <= b.Green {
		return fmt.Errorf("%w: yellow breakpoint %g must be > green %g", ErrInvalidBand, b.Yellow, b.Green)
	}
	if b.Red != nil && *b.Red <= b.Yellow {
		return fmt.Errorf("%w: red breakpoint %g must be > yellow %g", ErrInvalidBand, *b.Red, b.Yellow)
	}
	return nil
}

// Thresholds is the full configurable threshold table. Temperature bands are
// keyed either globally ("temperature" under PrototypeLowTemp) or per machine
// type (under ShopfloorHighTemp) depending on the active sensor mode; the
// remaining metrics are always keyed per machine type.
type Thresholds struct {
	PrototypeLowTemp  map[string]Band `json:"prototype_low_temp"`
	ShopfloorHighTemp map[string]Band `json:"shopfloor_high_temp"`
	Vibration         map[string]Band `json:"vibration"`
	FeedRate          map[string]Band `json:"feed_rate"`
	RunningHours      map[string]Band `json:"running_hours"`
}

// Validate checks every band in the table.
func (t Thresholds) Validate() error {
	groups := []struct {
		name  string
		bands map[string]Band
	}{
		{"prototype_low_temp", t.PrototypeLowTemp},
		{"shopfloor_high_temp", t.ShopfloorHighTemp},
		{"vibration", t.Vibration},
		{"feed_rate", t.FeedRate},
		{"running_hours", t.RunningHours},
	}
	for _, g := range groups {
		for key, band := range g.bands {
			if err := band.Validate(); err != nil {
				return fmt.Errorf("%s[%s]: %w", g.name, key, err)
			}
		}
	}
	return nil
}

// ResolvedSet is the concrete band per metric after resolving sensor mode and
// machine type. This is what the score calculation runs against and what gets
// echoed back to the caller as thresholds_used.
type ResolvedSet struct {
	Temperature  Band `json:"temperature"`
	Vibration    Band `json:"vibration"`
	FeedRate     Band `json:"feed_rate"`
	RunningHours Band `json:"running_hours"`
}

// KnownMachineType reports whether mt is one of the recognized machine types.
func KnownMachineType(mt string) bool {
	switch mt {
	case MachineCNC, MachineEDM, MachineLathe, MachineGrinding:
		return true
	}
	return false
}

// Resolve picks the applicable band for each metric. Lookups are strict: a
// missing key is an ErrConfigIncomplete naming the metric and machine type,
// never a silent fallback to a default band.
func Resolve(sensorMode string, t Thresholds, machineType string) (ResolvedSet, error) {
	if !KnownMachineType(machineType) {
		return ResolvedSet{}, fmt.Errorf("%w: %q", ErrUnknownMachineType, machineType)
	}

	var set ResolvedSet
	var ok bool

	if sensorMode == SensorModePrototypeLowTemp {
		set.Temperature, ok = t.PrototypeLowTemp["temperature"]
		if !ok {
			return ResolvedSet{}, fmt.Errorf("%w: no prototype_low_temp temperature band", ErrConfigIncomplete)
		}
	} else {
		set.Temperature, ok = t.ShopfloorHighTemp[machineType]
		if !ok {
			return ResolvedSet{}, fmt.Errorf("%w: no shopfloor_high_temp temperature band for %q", ErrConfigIncomplete, machineType)
		}
	}

	if set.Vibration, ok = t.Vibration[machineType]; !ok {
		return ResolvedSet{}, fmt.Errorf("%w: no vibration band for %q", ErrConfigIncomplete, machineType)
	}
	if set.FeedRate, ok = t.FeedRate[machineType]; !ok {
		return ResolvedSet{}, fmt.Errorf("%w: no feed_rate band for %q", ErrConfigIncomplete, machineType)
	}
	if set.RunningHours, ok = t.RunningHours[machineType]; !ok {
		return ResolvedSet{}, fmt.Errorf("%w: no running_hours band for %q", ErrConfigIncomplete, machineType)
	}

	return set, nil
}
