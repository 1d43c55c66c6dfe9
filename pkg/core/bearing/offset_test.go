package bearing

import (
	"math"
	"testing"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

const eps = 1e-9

func approx(a, b float64) bool { return math.Abs(a-b) < eps }

func approxPoint(a, b Point) bool { return approx(a.X, b.X) && approx(a.Y, b.Y) }

func TestOffsetCardinalDirections(t *testing.T) {
	tests := []struct {
		name    string
		bearing float64
		dir     poi.Direction
		want    Point
	}{
		{"from north", 0, poi.DirectionFrom, Point{0, -100}},
		{"from east", 90, poi.DirectionFrom, Point{100, 0}},
		{"from south", 180, poi.DirectionFrom, Point{0, 100}},
		{"from west", 270, poi.DirectionFrom, Point{-100, 0}},
		{"to north", 0, poi.DirectionTo, Point{0, 100}},
		{"to east", 90, poi.DirectionTo, Point{-100, 0}},
		{"to south", 180, poi.DirectionTo, Point{0, -100}},
		{"to west", 270, poi.DirectionTo, Point{100, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Offset(tt.bearing, 100, tt.dir, 0, 0)
			if !approxPoint(got, tt.want) {
				t.Errorf("Offset(%v, 100, %s) = %+v, want %+v", tt.bearing, tt.dir, got, tt.want)
			}
		})
	}
}

func TestOffsetMagnitude(t *testing.T) {
	for bearing := 0.0; bearing < 360; bearing += 7.5 {
		for _, dist := range []float64{0.5, 1, 37, 250} {
			for _, depths := range [][2]float64{{0, 0}, {10, 10}, {0, 20}, {100, 5}, {0, 1000}} {
				for _, dir := range []poi.Direction{poi.DirectionTo, poi.DirectionFrom} {
					got := Offset(bearing, dist, dir, depths[0], depths[1]).Len()
					if math.IsNaN(got) {
						t.Fatalf("Offset(%v, %v, %s, %v, %v) is NaN", bearing, dist, dir, depths[0], depths[1])
					}
					if got > dist+eps {
						t.Errorf("|Offset(%v, %v, %s, %v, %v)| = %v > distance", bearing, dist, dir, depths[0], depths[1], got)
					}
					if depths[0] == depths[1] && !approx(got, dist) {
						t.Errorf("|Offset(%v, %v, %s)| = %v, want %v at equal depth", bearing, dist, dir, got, dist)
					}
				}
			}
		}
	}
}

func TestOffsetDepthCorrection(t *testing.T) {
	// 3-4-5 triangle: 50m line of sight across a 30m depth change is 40m horizontally.
	got := Offset(90, 50, poi.DirectionFrom, 0, 30)
	if !approxPoint(got, Point{40, 0}) {
		t.Errorf("Offset = %+v, want {40 0}", got)
	}

	// Depth order does not matter.
	got = Offset(90, 50, poi.DirectionFrom, 30, 0)
	if !approxPoint(got, Point{40, 0}) {
		t.Errorf("Offset = %+v, want {40 0}", got)
	}
}

func TestOffsetClampsInconsistentDepth(t *testing.T) {
	got := Offset(45, 10, poi.DirectionTo, 0, 50)
	if got.X != 0 || got.Y != 0 || math.IsNaN(got.X) || math.IsNaN(got.Y) {
		t.Errorf("Offset with distance < depth delta = %+v, want zero", got)
	}
}

func TestOffsetToFromAreNegations(t *testing.T) {
	for bearing := 0.0; bearing < 360; bearing += 11 {
		to := Offset(bearing, 73, poi.DirectionTo, 5, 12)
		from := Offset(bearing, 73, poi.DirectionFrom, 12, 5)
		if !approxPoint(to, Point{-from.X, -from.Y}) {
			t.Errorf("bearing %v: to=%+v from=%+v are not negations", bearing, to, from)
		}
	}
}

func TestOffsetWrapsFlippedBearing(t *testing.T) {
	// 350 + 180 wraps to 170.
	a := Offset(350, 10, poi.DirectionTo, 0, 0)
	b := Offset(170, 10, poi.DirectionFrom, 0, 0)
	if !approxPoint(a, b) {
		t.Errorf("Offset(350,to) = %+v, Offset(170,from) = %+v", a, b)
	}
}

func TestBetweenInvertsOffset(t *testing.T) {
	points := []Point{{0, 0}, {120, -40}, {-35, 80}, {10, 10}, {-200, -1}}
	for _, a := range points {
		for _, b := range points {
			if a == b {
				continue
			}
			bearing, dist := Between(a, b)
			if bearing < 0 || bearing >= 360 {
				t.Fatalf("Between(%v, %v) bearing %v out of range", a, b, bearing)
			}

			// from-record on b referencing a
			if got := a.Add(Offset(bearing, dist, poi.DirectionFrom, 0, 0)); !approxPoint(got, b) {
				t.Errorf("from: a+Offset = %+v, want %+v", got, b)
			}
			// to-record on a referencing b
			if got := b.Add(Offset(bearing, dist, poi.DirectionTo, 0, 0)); !approxPoint(got, a) {
				t.Errorf("to: b+Offset = %+v, want %+v", got, a)
			}
		}
	}
}

func TestBetweenCardinal(t *testing.T) {
	tests := []struct {
		to   Point
		want float64
	}{
		{Point{0, -1}, 0},
		{Point{1, 0}, 90},
		{Point{0, 1}, 180},
		{Point{-1, 0}, 270},
	}
	for _, tt := range tests {
		if got, _ := Between(Point{}, tt.to); !approx(got, tt.want) {
			t.Errorf("Between(0, %v) = %v, want %v", tt.to, got, tt.want)
		}
	}
}

func TestNormalizeAndCompass(t *testing.T) {
	tests := []struct {
		in      float64
		norm    float64
		compass string
	}{
		{0, 0, "N"},
		{360, 0, "N"},
		{-90, 270, "W"},
		{400, 40, "NE"},
		{135, 135, "SE"},
		{200, 200, "S"},
		{337.6, 337.6, "N"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); !approx(got, tt.norm) {
			t.Errorf("Normalize(%v) = %v, want %v", tt.in, got, tt.norm)
		}
		if got := Compass(tt.in); got != tt.compass {
			t.Errorf("Compass(%v) = %q, want %q", tt.in, got, tt.compass)
		}
	}
}
