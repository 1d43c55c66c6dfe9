package bearing

import (
	"math"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

// Point is a position or displacement on the map plane.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Add returns p + q.
func (p Point) Add(q Point) Point { return Point{X: p.X + q.X, Y: p.Y + q.Y} }

// Sub returns p - q.
func (p Point) Sub(q Point) Point { return Point{X: p.X - q.X, Y: p.Y - q.Y} }

// Len returns the Euclidean length of p.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Of returns the position of a POI.
func Of(p poi.POI) Point { return Point{X: p.X, Y: p.Y} }

// Offset converts a compass observation into the planar displacement from
// the reference POI to the owning POI.
//
// distance is the straight-line 3-D distance; the horizontal component is
// sqrt(distance² - |toDepth-fromDepth|²), clamped to 0 when the depth
// difference exceeds the distance. With [poi.DirectionTo] the bearing points
// from the owner to the reference and is reversed before conversion.
//
// Offset is pure and never returns NaN for finite input.
func Offset(bearing, distance float64, dir poi.Direction, fromDepth, toDepth float64) Point {
	vertical := math.Abs(toDepth - fromDepth)
	horizontal := math.Sqrt(math.Max(0, distance*distance-vertical*vertical))

	if dir == poi.DirectionTo {
		bearing = math.Mod(bearing+180, 360)
	}

	angle := (90 - bearing) * math.Pi / 180
	return Point{
		X: math.Cos(angle) * horizontal,
		Y: -math.Sin(angle) * horizontal, // Y grows downward
	}
}

// RecordOffset applies [Offset] to a bearing record.
func RecordOffset(r poi.BearingRecord, fromDepth, toDepth float64) Point {
	return Offset(r.Bearing, r.Distance, r.Direction, fromDepth, toDepth)
}

// Between returns the compass bearing and horizontal distance of the vector
// from a to b. The bearing is normalized to [0, 360).
//
// A record with DirectionFrom, reference a and the returned values places its
// owner at b; a record with DirectionTo on a POI at a referencing b does the
// same for a.
func Between(a, b Point) (bearing, distance float64) {
	d := b.Sub(a)
	bearing = math.Atan2(d.X, -d.Y) * 180 / math.Pi
	if bearing < 0 {
		bearing += 360
	}
	if bearing >= 360 {
		bearing -= 360
	}
	return bearing, d.Len()
}

// Normalize maps any finite angle into [0, 360).
func Normalize(bearing float64) float64 {
	b := math.Mod(bearing, 360)
	if b < 0 {
		b += 360
	}
	if b >= 360 {
		b = 0
	}
	return b
}

// Compass returns the 8-point compass abbreviation for a bearing.
func Compass(bearing float64) string {
	directions := []string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}
	return directions[int((Normalize(bearing)+22.5)/45)%8]
}
