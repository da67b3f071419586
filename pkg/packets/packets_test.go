package packets

import (
	"fmt"
	"strings"
	"testing"

	"github.com/vmoranv/aolachart/pkg/aolaapi"
)

func manyActivities(n int) []aolaapi.Activity {
	activities := make([]aolaapi.Activity, n)
	for i := range activities {
		activities[i] = aolaapi.Activity{Name: fmt.Sprintf("activity %d", i+1), Packet: "eyJ9"}
	}
	return activities
}

func TestFormatPage(t *testing.T) {
	out := FormatPage(manyActivities(45), 0)

	for _, want := range []string{
		"Found 45 packets, showing 1-20:",
		"1. activity 1",
		"20. activity 20",
		"Page 1/3",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "21. activity 21") {
		t.Error("entries past the page size should not appear")
	}
}

func TestFormatPageLastAndClamped(t *testing.T) {
	activities := manyActivities(45)

	out := FormatPage(activities, 2)
	if !strings.Contains(out, "showing 41-45") || !strings.Contains(out, "Page 3/3") {
		t.Errorf("unexpected last page:\n%s", out)
	}

	// Out-of-range pages clamp instead of erroring.
	if got := FormatPage(activities, 99); !strings.Contains(got, "Page 3/3") {
		t.Errorf("page should clamp high:\n%s", got)
	}
	if got := FormatPage(activities, -5); !strings.Contains(got, "Page 1/3") {
		t.Errorf("page should clamp low:\n%s", got)
	}
}

func TestFormatPageEmpty(t *testing.T) {
	if got := FormatPage(nil, 0); got != "No activity packets available" {
		t.Errorf("empty list output: %q", got)
	}
}

func TestFormatPageUnnamed(t *testing.T) {
	out := FormatPage([]aolaapi.Activity{{Name: "", Packet: "abc"}}, 0)
	if !strings.Contains(out, "(unnamed)") {
		t.Errorf("unnamed activity should get a placeholder:\n%s", out)
	}
}

func TestPreview(t *testing.T) {
	short := "short packet"
	if got := Preview(short); got != short {
		t.Errorf("short packet should pass through: %q", got)
	}

	long := strings.Repeat("x", 80)
	got := Preview(long)
	if len(got) != 53 || !strings.HasSuffix(got, "...") {
		t.Errorf("long packet should truncate to 50+ellipsis, got %d chars", len(got))
	}
}

func TestSearch(t *testing.T) {
	activities := []aolaapi.Activity{
		{Name: "Spring Festival"},
		{Name: "Summer Beach"},
		{Name: "spring cleanup"},
	}

	// Case-insensitive substring matches all containing names.
	got := Search(activities, "SPRING")
	if len(got) != 2 {
		t.Fatalf("expected 2 substring matches, got %v", got)
	}

	// No substring match: nearest by edit distance.
	got = Search(activities, "sumer beach")
	if len(got) != 1 || got[0].Name != "Summer Beach" {
		t.Errorf("fuzzy search = %v", got)
	}

	// Too far for fuzzy.
	if got := Search(activities, "completely different"); got != nil {
		t.Errorf("expected no match, got %v", got)
	}

	if got := Search(activities, "  "); got != nil {
		t.Errorf("blank query should match nothing, got %v", got)
	}
}
