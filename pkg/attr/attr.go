// Package attr implements the attribute relation engine: classification of
// raw damage-multiplier codes into semantic categories, the cross-family
// override rules between origin and super attributes, and the text report
// over the classified result.
//
// # Families
//
// Attributes split into two families purely by numeric id: ids up to and
// including 22 are "origin" attributes, ids above 22 are "super" attributes.
// Two synthetic ids exist for display only: 999 stands for the aggregated
// super family and 1000 for the aggregated origin family. They never appear
// in the catalogue and never participate in family-membership checks.
//
// # Multiplier codes
//
// The upstream API encodes each pairwise relation as a short string:
//
//	""    normal damage (1x)
//	"1/2" weak damage (1/2x)
//	"-1"  immune (no damage)
//	"2"   effective (2x)
//	"3"   super effective (3x)
//
// Anything else classifies as normal rather than failing.
package attr

// Attribute is one elemental damage-type category from the catalogue.
type Attribute struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Sentinel display ids for aggregated cross-family markers.
// These are display-only: they never appear in the catalogue.
const (
	SuperFamilyID  = 999
	OriginFamilyID = 1000
)

// Aggregated family display labels. Sentinel entries always render with
// these literals, never with their numeric id.
const (
	SuperFamilyLabel  = "super family"
	OriginFamilyLabel = "origin family"
)

// superFamilyMinID is the first super-family attribute id.
// Id 22 is the last origin attribute; 23 is the first super attribute.
const superFamilyMinID = 23

// IsSuper reports whether id belongs to the super family.
func IsSuper(id int) bool {
	return id >= superFamilyMinID
}

// Class is the five-way semantic classification of a multiplier code.
type Class int

const (
	// ClassNormal is 1x damage, the default for blank or unrecognized codes.
	ClassNormal Class = iota
	// ClassWeak is 1/2x damage.
	ClassWeak
	// ClassImmune is no damage.
	ClassImmune
	// ClassStrong is 2x damage.
	ClassStrong
	// ClassSuper is 3x damage.
	ClassSuper
)

// String returns the category name used in bucket ordering and logs.
func (c Class) String() string {
	switch c {
	case ClassSuper:
		return "super"
	case ClassStrong:
		return "strong"
	case ClassWeak:
		return "weak"
	case ClassImmune:
		return "immune"
	default:
		return "normal"
	}
}

// Multiplier returns the damage ratio for the class. Immunity is the
// conventional -1 rather than 0, matching the upstream encoding.
func (c Class) Multiplier() float64 {
	switch c {
	case ClassSuper:
		return 3.0
	case ClassStrong:
		return 2.0
	case ClassWeak:
		return 0.5
	case ClassImmune:
		return -1.0
	default:
		return 1.0
	}
}

// ParseMultiplier converts a raw multiplier code to its class. This is the
// single parsing boundary: downstream code never re-interprets raw codes.
// Unrecognized codes yield ClassNormal; no code is an error.
func ParseMultiplier(code string) Class {
	switch code {
	case "3":
		return ClassSuper
	case "2":
		return ClassStrong
	case "1/2":
		return ClassWeak
	case "-1":
		return ClassImmune
	default:
		return ClassNormal
	}
}

// RawRelations is one attribute's raw relation map as returned by the API:
// target attribute id (as a decimal string key) to multiplier code.
type RawRelations map[string]string
