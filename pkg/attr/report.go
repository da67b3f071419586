package attr

import (
	"fmt"
	"strings"
)

// normalDisplayCap bounds how many normal-category entries the report lists
// before collapsing the remainder into a summary line. Only the normal bucket
// is capped; the other categories are small by construction.
const normalDisplayCap = 10

// categoryHeading maps each class to its report heading.
var categoryHeading = map[Class]string{
	ClassSuper:  "Super effective (3x damage):",
	ClassStrong: "Effective (2x damage):",
	ClassWeak:   "Weak (1/2 damage):",
	ClassImmune: "Immune (no damage):",
	ClassNormal: "Normal (1x damage):",
}

// uniformDamageLine is emitted when every bucket of a direction is empty.
const uniformDamageLine = "  Normal (1x) damage against all attributes"

var legendLines = []string{
	"",
	"Legend:",
	"   - 3 = super effective (3x damage)",
	"   - 2 = effective (2x damage)",
	"   - 1/2 = weak (1/2 damage)",
	"   - -1 = immune (no damage)",
	"   - blank = normal (1x damage)",
}

// FormatReport renders the attack and defend bucket sets as a plain-text
// report. Categories appear in DisplayOrder, empty categories are omitted,
// and a direction with no entries at all collapses to a single uniform-damage
// line. Sentinel entries render with their aggregated family label.
func FormatReport(subject Attribute, attack, defend BucketSet) string {
	var lines []string
	lines = append(lines,
		fmt.Sprintf("Relations for %s:", subject.Name),
		"",
		"Attacking (this attribute attacking others):",
	)
	lines = appendDirection(lines, attack)
	lines = append(lines, "", "Defending (other attributes attacking this one):")
	lines = appendDirection(lines, defend)
	lines = append(lines, legendLines...)
	return strings.Join(lines, "\n")
}

func appendDirection(lines []string, buckets BucketSet) []string {
	empty := true
	for _, class := range DisplayOrder {
		entries := buckets[class]
		if len(entries) == 0 {
			continue
		}
		empty = false
		lines = append(lines, "  "+categoryHeading[class])

		shown := entries
		if class == ClassNormal && len(entries) > normalDisplayCap {
			shown = entries[:normalDisplayCap]
		}
		for _, e := range shown {
			lines = append(lines, "     - "+e.Name)
		}
		if rest := len(entries) - len(shown); rest > 0 {
			lines = append(lines, fmt.Sprintf("     ... %d more", rest))
		}
	}
	if empty {
		lines = append(lines, uniformDamageLine)
	}
	return lines
}

// FormatList renders the attribute catalogue as a numbered list with a count
// footer.
func FormatList(attrs []Attribute) string {
	if len(attrs) == 0 {
		return "No attributes available"
	}
	var b strings.Builder
	b.WriteString("Attributes:\n")
	for _, a := range attrs {
		fmt.Fprintf(&b, "%3d. %s\n", a.ID, a.Name)
	}
	fmt.Fprintf(&b, "\nTotal: %d attributes", len(attrs))
	return b.String()
}
