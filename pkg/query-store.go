/*
 * This file is part of research-engine.
 *
 * research-engine is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * research-engine is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with research-engine.  If not, see <http://www.gnu.org/licenses/>.
 *
 */

package pkg

import (
	"sort"
	"sync"
	"time"
)

// QueryStore is keyed storage for query results. Reads of unknown ids return
// (nil, nil); only the processor writes. The processing log is append-only:
// AppendLogEntry is the single way to grow it, and patches cannot touch it.
type QueryStore interface {
	CreateQuery(result QueryResult) error
	UpdateQuery(queryID string, patch QueryPatch) error
	AppendLogEntry(queryID string, entry LogEntry) error
	GetQueryStatus(queryID string) (*QueryStatus, error)
	GetQueryResult(queryID string) (*QueryResult, error)
	GetQueryResults(researcherID string) ([]QueryResult, error)
	Close() error
}

// MemoryQueryStore keeps query results in process memory. Suitable for tests and
// single-node demo deployments; BadgerQueryStore is the durable alternative.
type MemoryQueryStore struct {
	mu      sync.RWMutex
	queries map[string]QueryResult
	now     func() time.Time
}

func NewMemoryQueryStore() *MemoryQueryStore {
	return &MemoryQueryStore{
		queries: map[string]QueryResult{},
		now:     time.Now,
	}
}

func (s *MemoryQueryStore) CreateQuery(result QueryResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queries[result.QueryID] = copyResult(result)
	return nil
}

func (s *MemoryQueryStore) UpdateQuery(queryID string, patch QueryPatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.queries[queryID]
	if !ok {
		return ErrQueryNotFound
	}
	applyPatch(&result, patch, s.now())
	s.queries[queryID] = result
	return nil
}

func (s *MemoryQueryStore) AppendLogEntry(queryID string, entry LogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	result, ok := s.queries[queryID]
	if !ok {
		return ErrQueryNotFound
	}
	result.ProcessingLog = append(result.ProcessingLog, entry)
	s.queries[queryID] = result
	return nil
}

func (s *MemoryQueryStore) GetQueryStatus(queryID string) (*QueryStatus, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.queries[queryID]
	if !ok {
		return nil, nil
	}
	status := result.QueryStatus
	return &status, nil
}

func (s *MemoryQueryStore) GetQueryResult(queryID string) (*QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result, ok := s.queries[queryID]
	if !ok {
		return nil, nil
	}
	copied := copyResult(result)
	return &copied, nil
}

func (s *MemoryQueryStore) GetQueryResults(researcherID string) ([]QueryResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	results := []QueryResult{}
	for _, result := range s.queries {
		if result.ResearcherID == researcherID {
			results = append(results, copyResult(result))
		}
	}
	sortBySubmittedDesc(results)
	return results, nil
}

func (s *MemoryQueryStore) Close() error {
	return nil
}

// copyResult deep-copies the log slice so callers cannot mutate stored state.
func copyResult(result QueryResult) QueryResult {
	copied := result
	copied.ProcessingLog = append([]LogEntry{}, result.ProcessingLog...)
	if result.DatasetSummary != nil {
		summary := *result.DatasetSummary
		summary.DataTypes = append([]string{}, result.DatasetSummary.DataTypes...)
		summary.AnonymizationMethods = append([]string{}, result.DatasetSummary.AnonymizationMethods...)
		copied.DatasetSummary = &summary
	}
	return copied
}

func applyPatch(result *QueryResult, patch QueryPatch, now time.Time) {
	if patch.Status != nil {
		result.Status = *patch.Status
	}
	if patch.Progress != nil {
		result.Progress = *patch.Progress
	}
	if patch.CurrentStep != nil {
		result.CurrentStep = *patch.CurrentStep
	}
	if patch.EstimatedTimeRemaining != nil {
		result.EstimatedTimeRemaining = *patch.EstimatedTimeRemaining
	}
	if patch.ErrorMessage != nil {
		result.ErrorMessage = *patch.ErrorMessage
	}
	if patch.CompletedAt != nil {
		completedAt := *patch.CompletedAt
		result.CompletedAt = &completedAt
	}
	if patch.DatasetSummary != nil {
		summary := *patch.DatasetSummary
		result.DatasetSummary = &summary
	}
	if patch.DownloadURL != nil {
		result.DownloadURL = *patch.DownloadURL
	}
	if patch.ExpiresAt != nil {
		expiresAt := *patch.ExpiresAt
		result.ExpiresAt = &expiresAt
	}
	if patch.SummaryReport != nil {
		result.SummaryReport = *patch.SummaryReport
	}
	result.LastUpdated = now
}

func sortBySubmittedDesc(results []QueryResult) {
	sort.Slice(results, func(i, j int) bool {
		return results[i].SubmittedAt.After(results[j].SubmittedAt)
	})
}
