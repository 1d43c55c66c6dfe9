package bearing

import (
	"math"
	"strings"
	"testing"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

var validatePOIs = []poi.POI{
	{ID: "L", Category: poi.CategoryLifeboat, DefinitionMode: poi.ModeCoordinates},
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		record   poi.BearingRecord
		contains []string
	}{
		{
			name:   "valid",
			record: poi.BearingRecord{ReferencePOIID: "L", Distance: 10, Bearing: 359.9},
		},
		{
			name:     "negative distance",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: -5, Bearing: 10},
			contains: []string{"Distance"},
		},
		{
			name:     "zero distance",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: 0, Bearing: 10},
			contains: []string{"Distance"},
		},
		{
			name:     "bearing too large",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: 5, Bearing: 400},
			contains: []string{"Bearing"},
		},
		{
			name:     "bearing 360",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: 5, Bearing: 360},
			contains: []string{"Bearing"},
		},
		{
			name:     "negative bearing",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: 5, Bearing: -1},
			contains: []string{"Bearing"},
		},
		{
			name:     "unknown reference",
			record:   poi.BearingRecord{ReferencePOIID: "ghost", Distance: 5, Bearing: 5},
			contains: []string{"ghost"},
		},
		{
			name:     "nan distance",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: math.NaN(), Bearing: 10},
			contains: []string{"Distance"},
		},
		{
			name:     "infinite distance",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: math.Inf(1), Bearing: 10},
			contains: []string{"Distance"},
		},
		{
			name:     "nan bearing",
			record:   poi.BearingRecord{ReferencePOIID: "L", Distance: 5, Bearing: math.NaN()},
			contains: []string{"Bearing"},
		},
		{
			name:     "everything wrong",
			record:   poi.BearingRecord{ReferencePOIID: "ghost", Distance: -1, Bearing: 720},
			contains: []string{"ghost", "Distance", "Bearing"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := Validate([]poi.BearingRecord{tt.record}, validatePOIs)
			if len(errs) != len(tt.contains) {
				t.Fatalf("Validate() = %v, want %d errors", errs, len(tt.contains))
			}
			for i, want := range tt.contains {
				if !strings.Contains(errs[i], want) {
					t.Errorf("error %d = %q, want it to mention %q", i, errs[i], want)
				}
			}
		})
	}
}

func TestValidateReportsEveryRecord(t *testing.T) {
	records := []poi.BearingRecord{
		{ReferencePOIID: "L", Distance: -5, Bearing: 10},
		{ReferencePOIID: "L", Distance: 5, Bearing: 400},
	}
	errs := Validate(records, validatePOIs)
	if len(errs) != 2 {
		t.Fatalf("Validate() = %v, want 2 errors", errs)
	}
	if !strings.Contains(errs[0], "-5") || !strings.Contains(errs[1], "400") {
		t.Errorf("messages do not include values: %v", errs)
	}
}

func TestValidatePOI(t *testing.T) {
	tests := []struct {
		name     string
		poi      poi.POI
		contains []string
	}{
		{
			name: "valid coordinates",
			poi:  poi.POI{ID: "p", Category: poi.CategoryWreck, DefinitionMode: poi.ModeCoordinates},
		},
		{
			name: "valid bearings",
			poi: poi.POI{ID: "p", Category: poi.CategoryCave, DefinitionMode: poi.ModeBearings,
				BearingRecords: []poi.BearingRecord{{ID: "r", ReferencePOIID: "L", Distance: 10, Bearing: 10, Direction: poi.DirectionTo}}},
		},
		{
			name:     "bad category and depth",
			poi:      poi.POI{ID: "p", Category: "submarine", Depth: -3, DefinitionMode: poi.ModeCoordinates},
			contains: []string{"submarine", "Depth"},
		},
		{
			name:     "non-finite coordinates",
			poi:      poi.POI{ID: "p", Category: poi.CategoryWreck, X: math.NaN(), Y: math.Inf(1), DefinitionMode: poi.ModeCoordinates},
			contains: []string{"X must be a finite", "Y must be a finite"},
		},
		{
			name:     "negative infinite depth",
			poi:      poi.POI{ID: "p", Category: poi.CategoryWreck, Depth: math.Inf(-1), DefinitionMode: poi.ModeCoordinates},
			contains: []string{"Depth must be a finite"},
		},
		{
			name:     "unknown mode",
			poi:      poi.POI{ID: "p", Category: poi.CategoryCave, DefinitionMode: "gps"},
			contains: []string{"gps"},
		},
		{
			name: "self reference and bad direction",
			poi: poi.POI{ID: "p", Category: poi.CategoryCave, DefinitionMode: poi.ModeBearings,
				BearingRecords: []poi.BearingRecord{{ID: "r", ReferencePOIID: "p", Distance: 10, Bearing: 10, Direction: "sideways"}}},
			contains: []string{"own POI", "sideways", "p does not exist"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidatePOI(tt.poi, validatePOIs)
			if len(errs) != len(tt.contains) {
				t.Fatalf("ValidatePOI() = %v, want %d errors", errs, len(tt.contains))
			}
			for i, want := range tt.contains {
				if !strings.Contains(errs[i], want) {
					t.Errorf("error %d = %q, want it to mention %q", i, errs[i], want)
				}
			}
		})
	}
}
