package depgraph_test

import (
	"fmt"

	"github.com/matzehuels/poimap/pkg/core/depgraph"
	"github.com/matzehuels/poimap/pkg/core/poi"
)

func ExampleOrder() {
	ref := func(id string) []poi.BearingRecord {
		return []poi.BearingRecord{{ReferencePOIID: id, Distance: 50, Bearing: 90, Direction: poi.DirectionTo}}
	}
	pois := []poi.POI{
		{ID: "cave", DefinitionMode: poi.ModeBearings, BearingRecords: ref("wreck")},
		{ID: "wreck", DefinitionMode: poi.ModeBearings, BearingRecords: ref("lifeboat-5")},
		{ID: "lifeboat-5", DefinitionMode: poi.ModeCoordinates},
	}

	g := depgraph.Build(pois)
	fmt.Println(depgraph.Order(g))
	// Output:
	// [lifeboat-5 wreck cave]
}

func ExampleDetectCycles() {
	pois := []poi.POI{
		{ID: "A", DefinitionMode: poi.ModeBearings, BearingRecords: []poi.BearingRecord{{ReferencePOIID: "B"}}},
		{ID: "B", DefinitionMode: poi.ModeBearings, BearingRecords: []poi.BearingRecord{{ReferencePOIID: "A"}}},
	}

	g := depgraph.Build(pois)
	fmt.Println(depgraph.DetectCycles(g))
	fmt.Println(len(depgraph.Order(g)))
	// Output:
	// [[A B]]
	// 0
}
