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
	"strings"
)

// defaultAnonymizationMethods is applied when the researcher does not request
// specific methods.
var defaultAnonymizationMethods = []string{"k-anonymity", "generalization", "suppression"}

// stageAnonymizeDataset settles which anonymization methods the released dataset
// will carry. Requested methods win; k-anonymity is always included because the
// privacy metrics are expressed in terms of it.
func (p *QueryProcessor) stageAnonymizeDataset(run *queryRun) (string, error) {
	methods := defaultAnonymizationMethods
	if requirements := run.query.PrivacyRequirements; requirements != nil && len(requirements.AnonymizationMethods) > 0 {
		methods = append([]string{}, requirements.AnonymizationMethods...)
		if !contains(methods, "k-anonymity") {
			methods = append(methods, "k-anonymity")
		}
	}
	run.methods = methods
	return fmt.Sprintf("Applied anonymization methods: %s", strings.Join(methods, ", ")), nil
}

func contains(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
