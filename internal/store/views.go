package store

import "github.com/contentdeskhq/contentdesk/internal/models"

// Filtered returns the posts matching the given status and platform. Empty
// arguments match everything.
func (s *Store) Filtered(status, platform string) []*models.ContentPost {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []*models.ContentPost
	for _, p := range s.posts {
		if status != "" && p.Status != status {
			continue
		}
		if platform != "" && p.Platform != platform {
			continue
		}
		out = append(out, p)
	}
	return out
}

// ByDate groups the filtered posts under their ISO scheduled date. Posts keep
// the insertion order of the filtered list inside each bucket; buckets are
// not further sorted.
func (s *Store) ByDate(status, platform string) map[string][]*models.ContentPost {
	grouped := make(map[string][]*models.ContentPost)
	for _, p := range s.Filtered(status, platform) {
		day := p.ScheduledTime.Format("2006-01-02")
		grouped[day] = append(grouped[day], p)
	}
	return grouped
}

// StatusCounts returns aggregate counts per workflow status.
func (s *Store) StatusCounts() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[string]int)
	for _, p := range s.posts {
		counts[p.Status]++
	}
	return counts
}
