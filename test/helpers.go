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

package test

import (
	"time"

	"github.com/caredata-foundation/research-engine/pkg"
)

// ValidResearchQuery returns a query that passes every validation rule. Tests
// tweak single fields to probe individual rules.
func ValidResearchQuery() pkg.ResearchQuery {
	return pkg.ResearchQuery{
		ResearcherID:     "researcher-001",
		StudyTitle:       "Cardiovascular outcomes in adults",
		StudyDescription: "A longitudinal observational study of cardiovascular outcomes in adults with elevated blood pressure.",
		DataRequirements: pkg.DataRequirements{
			DataTypes:          []string{"vitals"},
			ResearchCategories: []string{"cardiology"},
			DataRetentionDays:  365,
		},
		EthicalApprovalID: "IRB-2024-1234",
	}
}

// GrantedConsent returns an update granting a tuple for a year.
func GrantedConsent(patientID, dataType, category string) pkg.ConsentUpdate {
	return pkg.ConsentUpdate{
		PatientID:        patientID,
		DataType:         dataType,
		ResearchCategory: category,
		ConsentGranted:   true,
		ExpiryDate:       time.Now().Add(365 * 24 * time.Hour),
	}
}
