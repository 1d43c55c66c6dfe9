package bearing

import (
	"fmt"

	"github.com/matzehuels/poimap/pkg/core/poi"
	"github.com/matzehuels/poimap/pkg/errors"
)

// Diagnostic describes a record or POI that was skipped or left unchanged.
// Diagnostics never abort a calculation; they are returned so the caller can
// log or display them.
type Diagnostic struct {
	POIID       string      `json:"poiId,omitempty"`
	RecordID    string      `json:"recordId,omitempty"`
	ReferenceID string      `json:"referenceId,omitempty"`
	Code        errors.Code `json:"code"`
	Message     string      `json:"message"`
}

// String implements fmt.Stringer.
func (d Diagnostic) String() string {
	if d.POIID != "" {
		return fmt.Sprintf("%s: POI %s: %s", d.Code, d.POIID, d.Message)
	}
	return fmt.Sprintf("%s: %s", d.Code, d.Message)
}

// Resolve computes a position from a POI's bearing records.
//
// pois maps ids to the current state of every POI on the map and depth is the
// owning POI's depth. Each record yields the estimate
// reference + RecordOffset(record, reference.Depth, depth).
//
// Errors:
//   - [errors.ErrCodeNoBearingData] when records is empty
//   - [errors.ErrCodeUnknownReference] when the only record's reference is missing
//   - [errors.ErrCodeNoValidReferences] when every one of several records is missing
//
// With several records, missing references are skipped and returned as
// diagnostics; the result is the mean of the remaining estimates.
func Resolve(records []poi.BearingRecord, pois map[string]poi.POI, depth float64) (Point, []Diagnostic, error) {
	switch len(records) {
	case 0:
		return Point{}, nil, errors.New(errors.ErrCodeNoBearingData, "cannot calculate coordinates without bearing records")
	case 1:
		p, err := estimate(records[0], pois, depth)
		return p, nil, err
	}
	return triangulate(records, pois, depth)
}

func estimate(r poi.BearingRecord, pois map[string]poi.POI, depth float64) (Point, error) {
	ref, ok := pois[r.ReferencePOIID]
	if !ok {
		return Point{}, errors.New(errors.ErrCodeUnknownReference, "target POI %s not found", r.ReferencePOIID)
	}
	return Of(ref).Add(RecordOffset(r, ref.Depth, depth)), nil
}

// triangulate averages one estimate per record.
func triangulate(records []poi.BearingRecord, pois map[string]poi.POI, depth float64) (Point, []Diagnostic, error) {
	var (
		sum   Point
		n     int
		diags []Diagnostic
	)
	for _, r := range records {
		p, err := estimate(r, pois, depth)
		if err != nil {
			diags = append(diags, Diagnostic{
				RecordID:    r.ID,
				ReferenceID: r.ReferencePOIID,
				Code:        errors.GetCode(err),
				Message:     fmt.Sprintf("target POI %s not found, skipping bearing record", r.ReferencePOIID),
			})
			continue
		}
		sum = sum.Add(p)
		n++
	}

	if n == 0 {
		return Point{}, diags, errors.New(errors.ErrCodeNoValidReferences, "no valid bearing records found for triangulation")
	}
	return Point{X: sum.X / float64(n), Y: sum.Y / float64(n)}, diags, nil
}
