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
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const (
	queryKeyPrefix = "query:"
	ownerKeyPrefix = "owner:"
)

// BadgerQueryStore persists query results in BadgerDB, one JSON value per query
// under "query:<id>" plus an owner index entry "owner:<researcherId>:<id>" for
// GetQueryResults. An empty path opens an in-memory database.
type BadgerQueryStore struct {
	db  *badger.DB
	now func() time.Time
}

func NewBadgerQueryStore(path string) (*BadgerQueryStore, error) {
	opts := badger.DefaultOptions(path)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	opts = opts.WithLogger(logger())

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("could not open query store at %q: %w", path, err)
	}
	return &BadgerQueryStore{db: db, now: time.Now}, nil
}

func queryKey(queryID string) []byte {
	return []byte(queryKeyPrefix + queryID)
}

func ownerKey(researcherID, queryID string) []byte {
	return []byte(ownerKeyPrefix + researcherID + ":" + queryID)
}

func (s *BadgerQueryStore) CreateQuery(result QueryResult) error {
	value, err := json.Marshal(result)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		if err := txn.Set(queryKey(result.QueryID), value); err != nil {
			return err
		}
		return txn.Set(ownerKey(result.ResearcherID, result.QueryID), nil)
	})
}

func (s *BadgerQueryStore) UpdateQuery(queryID string, patch QueryPatch) error {
	return s.mutate(queryID, func(result *QueryResult) {
		applyPatch(result, patch, s.now())
	})
}

func (s *BadgerQueryStore) AppendLogEntry(queryID string, entry LogEntry) error {
	return s.mutate(queryID, func(result *QueryResult) {
		result.ProcessingLog = append(result.ProcessingLog, entry)
	})
}

// mutate runs a read-modify-write cycle in a single transaction so concurrent
// writers of different queries never interleave on the same value.
func (s *BadgerQueryStore) mutate(queryID string, change func(*QueryResult)) error {
	return s.db.Update(func(txn *badger.Txn) error {
		item, err := txn.Get(queryKey(queryID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrQueryNotFound
		}
		if err != nil {
			return err
		}
		var result QueryResult
		if err := item.Value(func(value []byte) error {
			return json.Unmarshal(value, &result)
		}); err != nil {
			return err
		}
		change(&result)
		value, err := json.Marshal(result)
		if err != nil {
			return err
		}
		return txn.Set(queryKey(queryID), value)
	})
}

func (s *BadgerQueryStore) GetQueryStatus(queryID string) (*QueryStatus, error) {
	result, err := s.GetQueryResult(queryID)
	if result == nil || err != nil {
		return nil, err
	}
	status := result.QueryStatus
	return &status, nil
}

func (s *BadgerQueryStore) GetQueryResult(queryID string) (*QueryResult, error) {
	var result *QueryResult
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(queryKey(queryID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(value []byte) error {
			result = &QueryResult{}
			return json.Unmarshal(value, result)
		})
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *BadgerQueryStore) GetQueryResults(researcherID string) ([]QueryResult, error) {
	queryIDs := []string{}
	prefix := []byte(ownerKeyPrefix + researcherID + ":")
	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().Key()
			queryIDs = append(queryIDs, string(key[len(prefix):]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	results := []QueryResult{}
	for _, queryID := range queryIDs {
		result, err := s.GetQueryResult(queryID)
		if err != nil {
			return nil, err
		}
		if result != nil {
			results = append(results, *result)
		}
	}
	sortBySubmittedDesc(results)
	return results, nil
}

func (s *BadgerQueryStore) Close() error {
	return s.db.Close()
}
