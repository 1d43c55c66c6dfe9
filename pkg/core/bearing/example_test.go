package bearing_test

import (
	"fmt"

	"github.com/matzehuels/poimap/pkg/core/bearing"
	"github.com/matzehuels/poimap/pkg/core/poi"
)

func ExampleResolve() {
	pois := poi.Index([]poi.POI{
		{ID: "lifeboat-5", X: 0, Y: 0, Depth: 0},
	})

	// "The lifeboat is due east of me, 100m away."
	records := []poi.BearingRecord{
		{ID: "b1", ReferencePOIID: "lifeboat-5", Bearing: 90, Distance: 100, Direction: poi.DirectionTo},
	}

	p, _, err := bearing.Resolve(records, pois, 0)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("x=%.1f y=%.1f\n", p.X, p.Y)
	// Output:
	// x=-100.0 y=0.0
}

func ExampleValidate() {
	pois := []poi.POI{{ID: "lifeboat-5"}}
	records := []poi.BearingRecord{
		{ReferencePOIID: "lifeboat-5", Bearing: 400, Distance: -5},
	}

	for _, msg := range bearing.Validate(records, pois) {
		fmt.Println(msg)
	}
	// Output:
	// Distance must be positive, got -5
	// Bearing must be between 0-359 degrees, got 400
}

func ExampleBetween() {
	b, d := bearing.Between(bearing.Point{X: 0, Y: 0}, bearing.Point{X: 30, Y: -40})
	fmt.Printf("%.1f° %s, %.0fm\n", b, bearing.Compass(b), d)
	// Output:
	// 36.9° NE, 50m
}
