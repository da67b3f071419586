// Package packets lists and searches the activity packet catalogue exposed
// by the data API. The list is fetched once and cached for the process
// lifetime; pagination and search operate on the cached slice.
package packets

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/agnivade/levenshtein"

	"github.com/vmoranv/aolachart/pkg/aolaapi"
)

const (
	// PageSize is the number of packets shown per page.
	PageSize = 20

	// previewLen truncates packet payloads in list output.
	previewLen = 50

	// fuzzyMaxDistance bounds how far a fuzzy name match may drift before
	// the search reports no result instead.
	fuzzyMaxDistance = 5
)

// Service fetches and caches the activity list.
type Service struct {
	client *aolaapi.Client

	mu     sync.Mutex
	cached []aolaapi.Activity
}

// NewService creates a packet service over the given API client.
func NewService(client *aolaapi.Client) *Service {
	return &Service{client: client}
}

// Activities returns the activity list, fetching it on first call.
func (s *Service) Activities(ctx context.Context) ([]aolaapi.Activity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cached != nil {
		return s.cached, nil
	}
	activities, err := s.client.FetchActivities(ctx)
	if err != nil {
		return nil, err
	}
	s.cached = activities
	return activities, nil
}

// FormatPage renders one page (0-based) of the activity list with packet
// previews and a page footer.
func FormatPage(activities []aolaapi.Activity, page int) string {
	if len(activities) == 0 {
		return "No activity packets available"
	}

	totalPages := (len(activities) + PageSize - 1) / PageSize
	if page < 0 {
		page = 0
	}
	if page >= totalPages {
		page = totalPages - 1
	}
	start := page * PageSize
	end := min(start+PageSize, len(activities))

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d packets, showing %d-%d:\n\n", len(activities), start+1, end)
	for i, a := range activities[start:end] {
		name := a.Name
		if name == "" {
			name = "(unnamed)"
		}
		fmt.Fprintf(&b, "%d. %s\n", start+i+1, name)
		if preview := Preview(a.Packet); preview != "" {
			fmt.Fprintf(&b, "   packet: %s\n", preview)
		}
	}
	fmt.Fprintf(&b, "\nPage %d/%d", page+1, totalPages)
	return b.String()
}

// Preview truncates a packet payload for list display.
func Preview(packet string) string {
	if len(packet) <= previewLen {
		return packet
	}
	return packet[:previewLen] + "..."
}

// Search finds activities whose name contains query (case-insensitive).
// When nothing matches, it falls back to the single nearest name by edit
// distance, within fuzzyMaxDistance.
func Search(activities []aolaapi.Activity, query string) []aolaapi.Activity {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return nil
	}

	var matches []aolaapi.Activity
	for _, a := range activities {
		if strings.Contains(strings.ToLower(a.Name), query) {
			matches = append(matches, a)
		}
	}
	if len(matches) > 0 {
		return matches
	}

	best := -1
	bestDist := fuzzyMaxDistance + 1
	for i, a := range activities {
		if d := levenshtein.ComputeDistance(query, strings.ToLower(a.Name)); d < bestDist {
			best, bestDist = i, d
		}
	}
	if best < 0 {
		return nil
	}
	return []aolaapi.Activity{activities[best]}
}
