package scoring

import (
	"math"
	"testing"
)

func red(v float64) *float64 { return &v }

func TestSubscore_GreenSegment(t *testing.T) {
	band := Band{Green: 75, Yellow: 95, Red: red(120)}

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"zero maps to zero", 0, 0},
		{"midpoint of green", 37.5, 15},
		{"exactly green maps to 30", 75, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subscore(tt.value, band)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Subscore(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSubscore_GreenSegment_Monotonic(t *testing.T) {
	band := Band{Green: 100, Yellow: 200}
	prev := -1.0
	for v := 0.0; v <= 100; v += 5 {
		got := Subscore(v, band)
		if got < prev {
			t.Fatalf("Subscore not monotonic at %v: %v < %v", v, got, prev)
		}
		if want := v / 100 * 30; math.Abs(got-want) > 1e-9 {
			t.Fatalf("Subscore(%v) = %v, want %v", v, got, want)
		}
		prev = got
	}
}

func TestSubscore_YellowSegment(t *testing.T) {
	band := Band{Green: 70, Yellow: 100}

	if got := Subscore(85, band); math.Abs(got-50) > 1e-9 {
		t.Fatalf("midpoint of green→yellow = %v, want 50", got)
	}
	if got := Subscore(100, band); got != 70 {
		t.Fatalf("Subscore at yellow = %v, want exactly 70", got)
	}
}

func TestSubscore_RedSegment_Clamped(t *testing.T) {
	band := Band{Green: 75, Yellow: 95, Red: red(120)}

	tests := []struct {
		name  string
		value float64
		want  float64
	}{
		{"midpoint of yellow→red", 107.5, 85},
		{"exactly red maps to 100", 120, 100},
		{"beyond red stays 100", 500, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Subscore(tt.value, band)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Fatalf("Subscore(%v) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestSubscore_NoRed_OvershootCapped(t *testing.T) {
	band := Band{Green: 70, Yellow: 100}

	// Overshoot scales relative to yellow itself: 110 is 10% past yellow.
	if got, want := Subscore(110, band), 73.0; math.Abs(got-want) > 1e-9 {
		t.Fatalf("Subscore(110) = %v, want %v", got, want)
	}
	// Far overshoot is capped at 100.
	if got := Subscore(1000, band); got != 100 {
		t.Fatalf("Subscore(1000) = %v, want 100", got)
	}
}
