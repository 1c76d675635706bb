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

	uuid "github.com/satori/go.uuid"
)

// expiringSoonWindow is the lookahead used by IsConsentExpiringSoon.
const expiringSoonWindow = 30 * 24 * time.Hour

type consentTuple struct {
	PatientID        string
	DataType         string
	ResearchCategory string
}

// ConsentLedger holds one current ConsentRecord per (patient, dataType,
// researchCategory) tuple and an immutable version log per patient. It is shared
// process-wide state and safe for concurrent use.
type ConsentLedger struct {
	mu      sync.RWMutex
	current map[consentTuple]ConsentRecord
	history map[string][]ConsentRecord
	now     func() time.Time
}

func NewConsentLedger() *ConsentLedger {
	return &ConsentLedger{
		current: map[consentTuple]ConsentRecord{},
		history: map[string][]ConsentRecord{},
		now:     time.Now,
	}
}

// UpdateConsent records a consent decision. A new tuple gets version 1; an existing
// tuple is overwritten in place with version+1. When update.ExpectedVersion is set
// it must equal the stored version, otherwise ErrVersionConflict is returned and
// nothing changes. Every accepted update also appends an immutable copy to the
// patient's history.
func (l *ConsentLedger) UpdateConsent(update ConsentUpdate) (*ConsentRecord, error) {
	if update.PatientID == "" || update.DataType == "" || update.ResearchCategory == "" {
		return nil, validationError("consent-tuple", "patientId, dataType and researchCategory are required")
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	key := consentTuple{update.PatientID, update.DataType, update.ResearchCategory}
	record, exists := l.current[key]

	if exists {
		if update.ExpectedVersion != nil && *update.ExpectedVersion != record.Version {
			logger().Warnf("consent update conflict for patient %s: expected version %d, have %d",
				update.PatientID, *update.ExpectedVersion, record.Version)
			return nil, ErrVersionConflict
		}
		record.ConsentGranted = update.ConsentGranted
		record.ExpiryDate = update.ExpiryDate
		record.LastUpdated = l.now()
		record.Version++
	} else {
		if update.ExpectedVersion != nil && *update.ExpectedVersion != 0 {
			return nil, ErrVersionConflict
		}
		record = ConsentRecord{
			ConsentID:        uuid.NewV4().String(),
			PatientID:        update.PatientID,
			DataType:         update.DataType,
			ResearchCategory: update.ResearchCategory,
			ConsentGranted:   update.ConsentGranted,
			ExpiryDate:       update.ExpiryDate,
			LastUpdated:      l.now(),
			Version:          1,
		}
	}

	l.current[key] = record
	l.history[update.PatientID] = append(l.history[update.PatientID], record)

	result := record
	return &result, nil
}

// GetPatientConsents returns the current records for a patient. Unknown patients
// yield an empty slice, not an error.
func (l *ConsentLedger) GetPatientConsents(patientID string) []ConsentRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := []ConsentRecord{}
	for key, record := range l.current {
		if key.PatientID == patientID {
			records = append(records, record)
		}
	}
	sortByLastUpdatedDesc(records)
	return records
}

// GetConsentHistory returns every version ever recorded for a patient, newest
// first. An empty dataType matches all data types.
func (l *ConsentLedger) GetConsentHistory(patientID string, dataType string) []ConsentRecord {
	l.mu.RLock()
	defer l.mu.RUnlock()

	records := []ConsentRecord{}
	for _, record := range l.history[patientID] {
		if dataType != "" && record.DataType != dataType {
			continue
		}
		records = append(records, record)
	}
	sortByLastUpdatedDesc(records)
	return records
}

// IsConsentExpiringSoon reports whether the record expires within the next 30 days.
func (l *ConsentLedger) IsConsentExpiringSoon(record ConsentRecord) bool {
	return !record.ExpiryDate.After(l.now().Add(expiringSoonWindow))
}

// GetExpiringConsents returns the patient's current records that expire within the
// next 30 days, soonest first.
func (l *ConsentLedger) GetExpiringConsents(patientID string) []ConsentRecord {
	records := []ConsentRecord{}
	for _, record := range l.GetPatientConsents(patientID) {
		if l.IsConsentExpiringSoon(record) {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].ExpiryDate.Before(records[j].ExpiryDate)
	})
	return records
}

// EligiblePatients returns the patients whose data may be included for the given
// requirements: a patient qualifies only if a current, granted, non-expired record
// exists for every (dataType, researchCategory) pair requested. The result is
// sorted for deterministic summaries.
func (l *ConsentLedger) EligiblePatients(dataTypes, researchCategories []string) []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	now := l.now()
	patients := map[string]bool{}
	for key := range l.current {
		patients[key.PatientID] = true
	}

	eligible := []string{}
	for patient := range patients {
		if l.coversAllPairs(patient, dataTypes, researchCategories, now) {
			eligible = append(eligible, patient)
		}
	}
	sort.Strings(eligible)
	return eligible
}

// PatientCount returns the number of patients with at least one current record.
func (l *ConsentLedger) PatientCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()

	patients := map[string]bool{}
	for key := range l.current {
		patients[key.PatientID] = true
	}
	return len(patients)
}

func (l *ConsentLedger) coversAllPairs(patientID string, dataTypes, researchCategories []string, now time.Time) bool {
	for _, dataType := range dataTypes {
		for _, category := range researchCategories {
			record, ok := l.current[consentTuple{patientID, dataType, category}]
			if !ok || !record.ConsentGranted || !record.ExpiryDate.After(now) {
				return false
			}
		}
	}
	return true
}

func sortByLastUpdatedDesc(records []ConsentRecord) {
	sort.Slice(records, func(i, j int) bool {
		if records[i].LastUpdated.Equal(records[j].LastUpdated) {
			return records[i].Version > records[j].Version
		}
		return records[i].LastUpdated.After(records[j].LastUpdated)
	})
}
