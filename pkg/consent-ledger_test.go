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
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func grantedUpdate(patientID, dataType, category string) ConsentUpdate {
	return ConsentUpdate{
		PatientID:        patientID,
		DataType:         dataType,
		ResearchCategory: category,
		ConsentGranted:   true,
		ExpiryDate:       time.Now().Add(365 * 24 * time.Hour),
	}
}

func TestConsentLedger_UpdateConsent(t *testing.T) {
	t.Run("the first update of a tuple creates version 1", func(t *testing.T) {
		ledger := NewConsentLedger()

		record, err := ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))

		assert.NoError(t, err)
		assert.Equal(t, uint(1), record.Version)
		assert.NotEmpty(t, record.ConsentID)
		assert.True(t, record.ConsentGranted)
	})

	t.Run("versions increase by exactly one per accepted update", func(t *testing.T) {
		ledger := NewConsentLedger()

		for expected := uint(1); expected <= 4; expected++ {
			record, err := ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
			assert.NoError(t, err)
			assert.Equal(t, expected, record.Version)
		}
	})

	t.Run("the consentId is stable across updates of the same tuple", func(t *testing.T) {
		ledger := NewConsentLedger()

		first, _ := ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
		second, _ := ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))

		assert.Equal(t, first.ConsentID, second.ConsentID)
	})

	t.Run("a matching expected version is accepted", func(t *testing.T) {
		ledger := NewConsentLedger()
		first, _ := ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))

		update := grantedUpdate("patient-1", "vitals", "cardiology")
		update.ExpectedVersion = &first.Version
		record, err := ledger.UpdateConsent(update)

		assert.NoError(t, err)
		assert.Equal(t, uint(2), record.Version)
	})

	t.Run("a stale expected version is rejected without a version bump", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))

		stale := uint(1)
		update := grantedUpdate("patient-1", "vitals", "cardiology")
		update.ExpectedVersion = &stale
		record, err := ledger.UpdateConsent(update)

		assert.Nil(t, record)
		assert.ErrorIs(t, err, ErrVersionConflict)

		current := ledger.GetPatientConsents("patient-1")
		assert.Len(t, current, 1)
		assert.Equal(t, uint(2), current[0].Version)
	})

	t.Run("an incomplete tuple is a validation error", func(t *testing.T) {
		ledger := NewConsentLedger()

		_, err := ledger.UpdateConsent(ConsentUpdate{PatientID: "patient-1"})

		assert.True(t, IsValidationError(err))
	})
}

func TestConsentLedger_GetPatientConsents(t *testing.T) {
	t.Run("an unknown patient yields an empty list, not an error", func(t *testing.T) {
		ledger := NewConsentLedger()

		assert.Empty(t, ledger.GetPatientConsents("nobody"))
	})

	t.Run("only the patient's current records are returned", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
		ledger.UpdateConsent(grantedUpdate("patient-1", "labs", "oncology"))
		ledger.UpdateConsent(grantedUpdate("patient-2", "vitals", "cardiology"))

		records := ledger.GetPatientConsents("patient-1")

		assert.Len(t, records, 2)
		for _, record := range records {
			assert.Equal(t, "patient-1", record.PatientID)
		}
	})
}

func TestConsentLedger_GetConsentHistory(t *testing.T) {
	t.Run("every version is kept, newest first", func(t *testing.T) {
		ledger := NewConsentLedger()
		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		tick := 0
		ledger.now = func() time.Time {
			tick++
			return base.Add(time.Duration(tick) * time.Minute)
		}

		for i := 0; i < 3; i++ {
			ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
		}

		history := ledger.GetConsentHistory("patient-1", "")
		assert.Len(t, history, 3)
		assert.Equal(t, uint(3), history[0].Version)
		assert.Equal(t, uint(2), history[1].Version)
		assert.Equal(t, uint(1), history[2].Version)
	})

	t.Run("the dataType filter narrows the history", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
		ledger.UpdateConsent(grantedUpdate("patient-1", "labs", "cardiology"))

		history := ledger.GetConsentHistory("patient-1", "labs")

		assert.Len(t, history, 1)
		assert.Equal(t, "labs", history[0].DataType)
	})

	t.Run("a rejected update leaves no history entry", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))

		stale := uint(7)
		update := grantedUpdate("patient-1", "vitals", "cardiology")
		update.ExpectedVersion = &stale
		ledger.UpdateConsent(update)

		assert.Len(t, ledger.GetConsentHistory("patient-1", ""), 1)
	})
}

func TestConsentLedger_IsConsentExpiringSoon(t *testing.T) {
	ledger := NewConsentLedger()

	t.Run("expiry in 15 days counts as expiring soon", func(t *testing.T) {
		record := ConsentRecord{ExpiryDate: time.Now().Add(15 * 24 * time.Hour)}
		assert.True(t, ledger.IsConsentExpiringSoon(record))
	})

	t.Run("expiry in a year does not", func(t *testing.T) {
		record := ConsentRecord{ExpiryDate: time.Now().Add(365 * 24 * time.Hour)}
		assert.False(t, ledger.IsConsentExpiringSoon(record))
	})
}

func TestConsentLedger_EligiblePatients(t *testing.T) {
	t.Run("a patient with full granted coverage is eligible", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))
		ledger.UpdateConsent(grantedUpdate("patient-1", "labs", "cardiology"))

		eligible := ledger.EligiblePatients([]string{"vitals", "labs"}, []string{"cardiology"})

		assert.Equal(t, []string{"patient-1"}, eligible)
	})

	t.Run("a missing pair excludes the patient", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-1", "vitals", "cardiology"))

		eligible := ledger.EligiblePatients([]string{"vitals", "labs"}, []string{"cardiology"})

		assert.Empty(t, eligible)
	})

	t.Run("denied consent excludes the patient", func(t *testing.T) {
		ledger := NewConsentLedger()
		update := grantedUpdate("patient-1", "vitals", "cardiology")
		update.ConsentGranted = false
		ledger.UpdateConsent(update)

		assert.Empty(t, ledger.EligiblePatients([]string{"vitals"}, []string{"cardiology"}))
	})

	t.Run("expired consent excludes the patient", func(t *testing.T) {
		ledger := NewConsentLedger()
		update := grantedUpdate("patient-1", "vitals", "cardiology")
		update.ExpiryDate = time.Now().Add(-time.Hour)
		ledger.UpdateConsent(update)

		assert.Empty(t, ledger.EligiblePatients([]string{"vitals"}, []string{"cardiology"}))
	})

	t.Run("the result is sorted by patient id", func(t *testing.T) {
		ledger := NewConsentLedger()
		ledger.UpdateConsent(grantedUpdate("patient-b", "vitals", "cardiology"))
		ledger.UpdateConsent(grantedUpdate("patient-a", "vitals", "cardiology"))

		eligible := ledger.EligiblePatients([]string{"vitals"}, []string{"cardiology"})

		assert.Equal(t, []string{"patient-a", "patient-b"}, eligible)
	})
}

func TestConsentLedger_GetExpiringConsents(t *testing.T) {
	ledger := NewConsentLedger()
	soon := grantedUpdate("patient-1", "vitals", "cardiology")
	soon.ExpiryDate = time.Now().Add(10 * 24 * time.Hour)
	ledger.UpdateConsent(soon)
	ledger.UpdateConsent(grantedUpdate("patient-1", "labs", "cardiology"))

	expiring := ledger.GetExpiringConsents("patient-1")

	assert.Len(t, expiring, 1)
	assert.Equal(t, "vitals", expiring[0].DataType)
}
