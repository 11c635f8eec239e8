package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Weights for combining the four metric subscores. They must sum to 1.0.
const (
	weightTemperature  = 0.35
	weightVibration    = 0.35
	weightFeedRate     = 0.15
	weightRunningHours = 0.15
)

// Condition levels returned by Score.
const (
	ConditionGood     = "Good"
	ConditionMedium   = "Medium"
	ConditionCritical = "Critical"
)

// Aggregate-score tier boundaries, applied alongside raw zone breaches.
const (
	scoreCritical = 70.0
	scoreMedium   = 35.0
)

// defaultTempRed caps temperature scoring when the resolved band carries no
// red breakpoint of its own.
const defaultTempRed = 120.0

// Fixed alert phrases per metric and severity.
const (
	alertTempRed      = "CRITICAL: Temperature exceeds safe limits"
	alertTempYellow   = "Temperature approaching limits"
	alertVibRed       = "Vibration exceeds normal range"
	alertVibYellow    = "Vibration caution"
	alertFeedRed      = "Feed rate too high"
	alertFeedYellow   = "Feed rate elevated"
	alertHoursRed     = "Service window exceeded"
	alertHoursYellow  = "Service window approaching"
	alertFallbackCrit = "Immediate repair recommended"
	alertFallbackMed  = "Schedule inspection"
	alertAllGood      = "All metrics within safe bands"
)

// Reading is one machine snapshot with the temperature already resolved
// (the caller substitutes the stored device temperature before scoring).
type Reading struct {
	MachineType  string
	RunningHours float64
	FeedingRate  float64
	Temperature  float64
	Vibration    float64
}

// Result is the complete engine output for one reading.
type Result struct {
	RiskScore      float64     `json:"risk_score"`
	ConditionLevel string      `json:"condition_level"`
	Explanation    string      `json:"explanation"`
	Alerts         []string    `json:"alerts"`
	Thresholds     ResolvedSet `json:"thresholds_used"`
}

// Score maps a reading plus its resolved threshold bands into a weighted risk
// score, a three-tier condition level, a per-metric narrative and alerts.
// Pure and deterministic; safe for concurrent use.
func Score(r Reading, set ResolvedSet) (Result, error) {
	if !KnownMachineType(r.MachineType) {
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownMachineType, r.MachineType)
	}

	// Temperature always scores against an effective red cap.
	tempBand := set.Temperature
	if tempBand.Red == nil {
		red := defaultTempRed
		tempBand.Red = &red
	}
	tempRed := *tempBand.Red

	risk := weightTemperature*Subscore(r.Temperature, tempBand) +
		weightVibration*Subscore(r.Vibration, Band{Green: set.Vibration.Green, Yellow: set.Vibration.Yellow}) +
		weightFeedRate*Subscore(r.FeedingRate, Band{Green: set.FeedRate.Green, Yellow: set.FeedRate.Yellow}) +
		weightRunningHours*Subscore(r.RunningHours, Band{Green: set.RunningHours.Green, Yellow: set.RunningHours.Yellow})

	// Tier comparisons run on the unrounded aggregate; rounding is for the
	// reported score only.
	riskScore := math.Round(risk*100) / 100

	// Phase one: per-metric zone narrative and alerts.
	var alerts []string
	var parts []string

	switch {
	case r.Temperature > tempRed:
		alerts = append(alerts, alertTempRed)
		parts = append(parts, fmt.Sprintf("Temperature %s°C is in RED zone (>%s°C)", num(r.Temperature), num(tempRed)))
	case r.Temperature > set.Temperature.Yellow:
		alerts = append(alerts, alertTempYellow)
		parts = append(parts, fmt.Sprintf("Temperature %s°C is in YELLOW zone (>%s°C)", num(r.Temperature), num(set.Temperature.Yellow)))
	default:
		parts = append(parts, fmt.Sprintf("Temperature %s°C is in GREEN zone (<=%s°C)", num(r.Temperature), num(set.Temperature.Green)))
	}

	switch {
	case r.Vibration > set.Vibration.Yellow:
		alerts = append(alerts, alertVibRed)
		parts = append(parts, fmt.Sprintf("Vibration %s µm is in RED zone (>%s µm)", num(r.Vibration), num(set.Vibration.Yellow)))
	case r.Vibration > set.Vibration.Green:
		alerts = append(alerts, alertVibYellow)
		parts = append(parts, fmt.Sprintf("Vibration %s µm is in YELLOW zone (>%s µm)", num(r.Vibration), num(set.Vibration.Green)))
	default:
		parts = append(parts, fmt.Sprintf("Vibration %s µm is in GREEN zone (<=%s µm)", num(r.Vibration), num(set.Vibration.Green)))
	}

	switch {
	case r.FeedingRate > set.FeedRate.Yellow:
		alerts = append(alerts, alertFeedRed)
		parts = append(parts, fmt.Sprintf("Feed rate %s mm/min is in RED zone (>%s mm/min)", num(r.FeedingRate), num(set.FeedRate.Yellow)))
	case r.FeedingRate > set.FeedRate.Green:
		alerts = append(alerts, alertFeedYellow)
		parts = append(parts, fmt.Sprintf("Feed rate %s mm/min is in YELLOW zone (>%s mm/min)", num(r.FeedingRate), num(set.FeedRate.Green)))
	default:
		parts = append(parts, fmt.Sprintf("Feed rate %s mm/min is in GREEN zone (<=%s mm/min)", num(r.FeedingRate), num(set.FeedRate.Green)))
	}

	switch {
	case r.RunningHours > set.RunningHours.Yellow:
		alerts = append(alerts, alertHoursRed)
		parts = append(parts, fmt.Sprintf("Running hours %s h is in RED zone (>%s h)", num(r.RunningHours), num(set.RunningHours.Yellow)))
	case r.RunningHours > set.RunningHours.Green:
		alerts = append(alerts, alertHoursYellow)
		parts = append(parts, fmt.Sprintf("Running hours %s h is in YELLOW zone (>%s h)", num(r.RunningHours), num(set.RunningHours.Green)))
	default:
		parts = append(parts, fmt.Sprintf("Running hours %s h is in GREEN zone (<=%s h)", num(r.RunningHours), num(set.RunningHours.Green)))
	}

	// Phase two: tier classification on raw zone breaches OR the aggregate
	// score, then the fallback alerts. A single metric deep in its red zone
	// forces Critical even when the weighted average stays low.
	hasRed := r.Temperature > tempRed ||
		r.Vibration > set.Vibration.Yellow ||
		r.FeedingRate > set.FeedRate.Yellow ||
		r.RunningHours > set.RunningHours.Yellow

	hasYellow := r.Temperature > set.Temperature.Yellow ||
		r.Vibration > set.Vibration.Green ||
		r.FeedingRate > set.FeedRate.Green ||
		r.RunningHours > set.RunningHours.Green

	var level string
	switch {
	case hasRed || risk >= scoreCritical:
		level = ConditionCritical
		if len(alerts) == 0 {
			alerts = append(alerts, alertFallbackCrit)
		}
	case hasYellow || risk >= scoreMedium:
		level = ConditionMedium
		if len(alerts) == 0 {
			alerts = append(alerts, alertFallbackMed)
		}
	default:
		level = ConditionGood
		alerts = []string{alertAllGood}
	}

	return Result{
		RiskScore:      riskScore,
		ConditionLevel: level,
		Explanation:    strings.Join(parts, ". ") + ".",
		Alerts:         alerts,
		Thresholds:     set,
	}, nil
}

// num renders a reading or breakpoint as a plain decimal with the fewest
// digits needed, never switching to exponent notation.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
