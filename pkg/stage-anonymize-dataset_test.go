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

	"github.com/stretchr/testify/assert"
)

func TestStageAnonymizeDataset(t *testing.T) {
	processor := NewQueryProcessor(NewMemoryQueryStore(), NewConsentLedger(), NewQueryValidator(), DefaultProcessorConfig())
	defer processor.Shutdown()

	t.Run("the defaults apply when nothing is requested", func(t *testing.T) {
		run := &queryRun{query: validQuery()}

		details, err := processor.stageAnonymizeDataset(run)

		assert.NoError(t, err)
		assert.Equal(t, []string{"k-anonymity", "generalization", "suppression"}, run.methods)
		assert.Contains(t, details, "k-anonymity")
	})

	t.Run("requested methods win but k-anonymity is always kept", func(t *testing.T) {
		query := validQuery()
		query.PrivacyRequirements = &PrivacyRequirements{AnonymizationMethods: []string{"suppression"}}
		run := &queryRun{query: query}

		_, err := processor.stageAnonymizeDataset(run)

		assert.NoError(t, err)
		assert.Equal(t, []string{"suppression", "k-anonymity"}, run.methods)
	})
}
