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
	"fmt"
)

// stageAggregateRecords is the consent-to-dataset join: the dataset may only
// contain patients holding a current, granted, non-expired consent record for
// every (dataType, researchCategory) pair the query requests.
func (p *QueryProcessor) stageAggregateRecords(run *queryRun) (string, error) {
	requirements := run.query.DataRequirements
	run.eligible = p.ledger.EligiblePatients(requirements.DataTypes, requirements.ResearchCategories)
	run.knownPatients = p.ledger.PatientCount()
	return fmt.Sprintf("Matched %d of %d patients with full consent coverage for the requested combinations",
		len(run.eligible), run.knownPatients), nil
}
