package careers

import (
	"context"
	"fmt"
)

// CountByJob counts applications per job id.
func CountByJob(jobIDs []string) map[string]int {
	counts := make(map[string]int)
	for _, id := range jobIDs {
		counts[id]++
	}
	return counts
}

// ApplicationStats returns the number of applications per job, computed from
// the full application set on every call.
func (s *Service) ApplicationStats(ctx context.Context) (map[string]int, error) {
	ids, err := s.store.ListApplicationJobIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load application stats: %w", err)
	}
	return CountByJob(ids), nil
}
