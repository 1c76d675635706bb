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

// stageValidateQuery re-runs the full rule set against the stored request. The
// submission already validated it, so a failure here means the rules changed
// between acceptance and scheduling; the run then ends in failed.
func (p *QueryProcessor) stageValidateQuery(run *queryRun) (string, error) {
	if err := p.validator.Validate(run.query); err != nil {
		return "", fmt.Errorf("query no longer passes validation: %w", err)
	}
	requirements := run.query.DataRequirements
	return fmt.Sprintf("Verified ethical approval %s covering %d data type(s) and %d research category(ies)",
		run.query.EthicalApprovalID, len(requirements.DataTypes), len(requirements.ResearchCategories)), nil
}
