package attr

import "strconv"

// Entry is one classified relation: a display name plus the display id used
// to resolve its icon. The id is either a real attribute id or one of the
// family sentinels.
type Entry struct {
	Name string
	ID   int
}

// BucketSet groups classified entries by class for one direction of analysis
// (attacking or defending). Within a bucket, entries keep the order they were
// classified in; a real attribute appears in at most one bucket and a family
// sentinel at most once per bucket.
type BucketSet map[Class][]Entry

// DisplayOrder is the fixed category order used by both the text report and
// the chart. The chart renders only the first four; the report also shows
// ClassNormal.
var DisplayOrder = []Class{ClassSuper, ClassStrong, ClassWeak, ClassImmune, ClassNormal}

// NewBucketSet returns a BucketSet with all five buckets present and empty.
func NewBucketSet() BucketSet {
	return BucketSet{
		ClassSuper:  nil,
		ClassStrong: nil,
		ClassWeak:   nil,
		ClassImmune: nil,
		ClassNormal: nil,
	}
}

// Empty reports whether every bucket is empty.
func (b BucketSet) Empty() bool {
	for _, entries := range b {
		if len(entries) > 0 {
			return false
		}
	}
	return true
}

func (b BucketSet) contains(class Class, id int) bool {
	for _, e := range b[class] {
		if e.ID == id {
			return true
		}
	}
	return false
}

func (b BucketSet) add(class Class, name string, id int) {
	b[class] = append(b[class], Entry{Name: name, ID: id})
}

// addSentinel appends an aggregated family marker, deduplicated per bucket.
func (b BucketSet) addSentinel(class Class, name string, id int) {
	if !b.contains(class, id) {
		b.add(class, name, id)
	}
}

// ClassifyAttack classifies the subject's raw relation map into attack-side
// buckets. idToName is the catalogue index; targets absent from it (or with
// unparseable id keys) are skipped.
//
// Cross-family pairs never consult the multiplier code: an origin subject
// attacking any super target collapses into a single ("super family", 999)
// entry in the weak bucket, and a super subject attacking any origin target
// collapses into ("origin family", 1000) in the strong bucket.
func ClassifyAttack(subjectID int, relations RawRelations, idToName map[int]string) BucketSet {
	buckets := NewBucketSet()
	subjectSuper := IsSuper(subjectID)

	for targetKey, code := range relations {
		targetID, err := strconv.Atoi(targetKey)
		if err != nil {
			continue
		}
		targetName, ok := idToName[targetID]
		if !ok {
			continue
		}

		switch targetSuper := IsSuper(targetID); {
		case !subjectSuper && targetSuper:
			buckets.addSentinel(ClassWeak, SuperFamilyLabel, SuperFamilyID)
		case subjectSuper && !targetSuper:
			buckets.addSentinel(ClassStrong, OriginFamilyLabel, OriginFamilyID)
		default:
			buckets.add(ParseMultiplier(code), targetName, targetID)
		}
	}
	return buckets
}

// RelationLookup resolves another attribute's raw relation map from whatever
// cache the caller maintains. ok=false means the map has not been loaded;
// the attribute is then skipped entirely rather than treated as all-normal.
type RelationLookup func(id int) (RawRelations, bool)

// ClassifyDefend classifies the defend side: for every other attribute in the
// catalogue, the code that attribute deals to the subject. The direction of
// the cross-family rules mirrors the attacker: a super attacker versus an
// origin subject forces ("super family", 999) into the strong bucket, an
// origin attacker versus a super subject forces ("origin family", 1000) into
// the weak bucket.
//
// Correctness depends on lookup having been populated for every other
// attribute beforehand (see Repository.PreloadRelations); ClassifyDefend does
// not trigger fetches itself and silently yields sparse results when maps are
// missing.
func ClassifyDefend(subjectID int, catalogue []Attribute, lookup RelationLookup) BucketSet {
	buckets := NewBucketSet()
	subjectSuper := IsSuper(subjectID)
	subjectKey := strconv.Itoa(subjectID)

	for _, other := range catalogue {
		if other.ID == subjectID {
			continue
		}
		relations, ok := lookup(other.ID)
		if !ok {
			continue
		}

		switch otherSuper := IsSuper(other.ID); {
		case otherSuper && !subjectSuper:
			buckets.addSentinel(ClassStrong, SuperFamilyLabel, SuperFamilyID)
		case !otherSuper && subjectSuper:
			buckets.addSentinel(ClassWeak, OriginFamilyLabel, OriginFamilyID)
		default:
			buckets.add(ParseMultiplier(relations[subjectKey]), other.Name, other.ID)
		}
	}
	return buckets
}
