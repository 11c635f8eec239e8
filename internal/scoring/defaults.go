package scoring

// redPtr returns a pointer for optional red breakpoints in the default table.
func redPtr(v float64) *float64 { return &v }

// DefaultThresholds returns the built-in threshold table. A fresh copy is
// returned on every call so the defaults stay an immutable constant even if
// the caller edits the result before persisting it.
func DefaultThresholds() Thresholds {
	return Thresholds{
		PrototypeLowTemp: map[string]Band{
			"temperature": {Green: 40, Yellow: 45, Red: redPtr(120)},
		},
		ShopfloorHighTemp: map[string]Band{
			MachineCNC:      {Green: 75, Yellow: 95, Red: redPtr(120)},
			MachineEDM:      {Green: 70, Yellow: 90, Red: redPtr(120)},
			MachineLathe:    {Green: 70, Yellow: 90, Red: redPtr(120)},
			MachineGrinding: {Green: 65, Yellow: 85, Red: redPtr(120)},
		},
		Vibration: map[string]Band{
			MachineCNC:      {Green: 70, Yellow: 100},
			MachineEDM:      {Green: 60, Yellow: 90},
			MachineLathe:    {Green: 70, Yellow: 100},
			MachineGrinding: {Green: 50, Yellow: 80},
		},
		FeedRate: map[string]Band{
			MachineCNC:      {Green: 1500, Yellow: 2000},
			MachineEDM:      {Green: 500, Yellow: 700},
			MachineLathe:    {Green: 900, Yellow: 1200},
			MachineGrinding: {Green: 400, Yellow: 600},
		},
		RunningHours: map[string]Band{
			MachineCNC:      {Green: 10000, Yellow: 12000},
			MachineEDM:      {Green: 9000, Yellow: 11000},
			MachineLathe:    {Green: 11000, Yellow: 13000},
			MachineGrinding: {Green: 8000, Yellow: 10000},
		},
	}
}
