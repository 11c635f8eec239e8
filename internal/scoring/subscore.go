package scoring

import "math"

// Subscore breakpoints: 0–30 inside green, 30–70 between green and yellow,
// 70–100 beyond yellow.
const (
	greenCeil  = 30.0
	yellowCeil = 70.0
	scoreMax   = 100.0
)

// Subscore maps a raw metric value onto a 0–100 scale with a three-segment
// piecewise-linear curve over the band's breakpoints.
//
// Callers must supply a valid band (0 < green < yellow, red > yellow when
// present); degenerate bands are rejected at configuration-write time via
// Band.Validate, not here.
func Subscore(value float64, band Band) float64 {
	switch {
	case value <= band.Green:
		return value / band.Green * greenCeil
	case value <= band.Yellow:
		return greenCeil + (value-band.Green)/(band.Yellow-band.Green)*(yellowCeil-greenCeil)
	default:
		if band.Red != nil {
			// Position beyond the yellow→red span is clamped to the span, so
			// anything at or past red maps to exactly 100.
			span := *band.Red - band.Yellow
			position := math.Min(value-band.Yellow, span)
			return yellowCeil + position/span*(scoreMax-yellowCeil)
		}
		// No red tier: scale the overshoot relative to yellow itself and cap.
		overshoot := value - band.Yellow
		return math.Min(yellowCeil+overshoot/band.Yellow*(scoreMax-yellowCeil), scoreMax)
	}
}
