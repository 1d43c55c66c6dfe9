package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/poimap/pkg/core/poi"
)

// keyVersion is mixed into every key. Bump it when the resolution engine
// changes its output for the same input.
const keyVersion = 1

// Keyer builds cache keys. Implementations must be deterministic: equal
// inputs always produce equal keys. An empty key means the input cannot be
// keyed and must not be cached.
type Keyer interface {
	// RecalcKey identifies the recalculation result for a POI set.
	RecalcKey(pois []poi.POI) string

	// GraphKey identifies a rendered dependency graph of a POI set.
	GraphKey(pois []poi.POI, opts GraphKeyOpts) string
}

// GraphKeyOpts holds the rendering options that change graph output.
type GraphKeyOpts struct {
	Format string `json:"format"`
	Labels bool   `json:"labels"`
}

// DefaultKeyer hashes the positional content of each POI.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return DefaultKeyer{}
}

// keyPOI is the subset of a POI that influences resolution. Timestamps,
// record ids, names and notes are excluded so that cosmetic edits keep hitting.
type keyPOI struct {
	ID      string             `json:"id"`
	X       float64            `json:"x"`
	Y       float64            `json:"y"`
	Depth   float64            `json:"d"`
	Mode    poi.DefinitionMode `json:"m"`
	Records []keyRecord        `json:"r,omitempty"`
}

type keyRecord struct {
	Ref       string        `json:"ref"`
	Distance  float64       `json:"dist"`
	Bearing   float64       `json:"brg"`
	Direction poi.Direction `json:"dir"`
}

func keyPOIs(pois []poi.POI) []keyPOI {
	out := make([]keyPOI, len(pois))
	for i, p := range pois {
		out[i] = keyPOI{ID: p.ID, X: p.X, Y: p.Y, Depth: p.Depth, Mode: p.DefinitionMode}
		for _, r := range p.BearingRecords {
			out[i].Records = append(out[i].Records, keyRecord{
				Ref:       r.ReferencePOIID,
				Distance:  r.Distance,
				Bearing:   r.Bearing,
				Direction: r.Direction,
			})
		}
	}
	return out
}

// RecalcKey hashes the positional content of pois.
func (DefaultKeyer) RecalcKey(pois []poi.POI) string {
	return hashKey("recalc", keyPOIs(pois))
}

// GraphKey hashes pois together with the rendering options. Names and
// categories are included because they appear in the rendered output.
func (DefaultKeyer) GraphKey(pois []poi.POI, opts GraphKeyOpts) string {
	labels := make([]string, len(pois))
	for i, p := range pois {
		labels[i] = p.Name + "\x00" + string(p.Category)
	}
	return hashKey("graph", keyPOIs(pois), labels, opts)
}

// hashKey returns prefix:sha256(version, parts...). Struct field order keeps
// the encoding stable. Parts that fail to encode, such as NaN or infinite
// coordinates, yield "".
func hashKey(prefix string, parts ...any) string {
	data, err := json.Marshal(append([]any{keyVersion}, parts...))
	if err != nil {
		return ""
	}
	return prefix + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
