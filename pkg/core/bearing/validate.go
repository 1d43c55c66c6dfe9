package bearing

import (
	"fmt"
	"math"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

// Validate checks bearing records against the POIs of a map and returns one
// message per problem found. An empty result means the records are usable.
//
// Each record is checked for an unknown reference, a distance that is not a
// positive finite number and a bearing outside [0, 360). NaN fails both.
func Validate(records []poi.BearingRecord, pois []poi.POI) []string {
	ids := make(map[string]bool, len(pois))
	for _, p := range pois {
		ids[p.ID] = true
	}

	var errs []string
	for _, r := range records {
		if !ids[r.ReferencePOIID] {
			errs = append(errs, fmt.Sprintf("Target POI %s does not exist", r.ReferencePOIID))
		}
		if !(r.Distance > 0) || math.IsInf(r.Distance, 1) {
			errs = append(errs, fmt.Sprintf("Distance must be positive, got %g", r.Distance))
		}
		if !(r.Bearing >= 0 && r.Bearing < 360) {
			errs = append(errs, fmt.Sprintf("Bearing must be between 0-359 degrees, got %g", r.Bearing))
		}
	}
	return errs
}

// ValidatePOI runs [Validate] on p's records and additionally reports
// problems with the POI itself: unknown category, non-finite coordinates,
// negative depth, an unknown definition mode, records referencing p itself
// and records with an unknown direction.
func ValidatePOI(p poi.POI, pois []poi.POI) []string {
	var errs []string
	if !p.Category.Valid() {
		errs = append(errs, fmt.Sprintf("Unknown POI type %q", p.Category))
	}
	for _, c := range []struct {
		name string
		v    float64
	}{{"X", p.X}, {"Y", p.Y}, {"Depth", p.Depth}} {
		if math.IsNaN(c.v) || math.IsInf(c.v, 0) {
			errs = append(errs, fmt.Sprintf("%s must be a finite number, got %g", c.name, c.v))
		}
	}
	if p.Depth < 0 && !math.IsInf(p.Depth, -1) {
		errs = append(errs, fmt.Sprintf("Depth must not be negative, got %g", p.Depth))
	}
	switch p.DefinitionMode {
	case poi.ModeCoordinates:
		return errs
	case poi.ModeBearings:
	default:
		return append(errs, fmt.Sprintf("Unknown definition mode %q", p.DefinitionMode))
	}

	for _, r := range p.BearingRecords {
		if r.ReferencePOIID == p.ID {
			errs = append(errs, fmt.Sprintf("Bearing record %s references its own POI", r.ID))
		}
		if !r.Direction.Valid() {
			errs = append(errs, fmt.Sprintf("Direction must be \"to\" or \"from\", got %q", r.Direction))
		}
	}
	return append(errs, Validate(p.BearingRecords, pois)...)
}
