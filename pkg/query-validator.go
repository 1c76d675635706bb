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
	"reflect"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

const (
	// maxRetentionDays is seven years, the longest retention period an ethics
	// board will sign off on.
	maxRetentionDays = 2555

	// minDescriptionLength keeps study descriptions meaningful enough for review.
	minDescriptionLength = 50
)

var ethicalApprovalIDPattern = regexp.MustCompile(`^(IRB|REB|EC)-\d{4}-\d{3,6}$`)

// QueryValidator checks a ResearchQuery structurally first and then against the
// business rules, in declaration order. It fails fast: the returned error carries
// the first violated rule's message only.
type QueryValidator struct {
	validate *validator.Validate
}

func NewQueryValidator() *QueryValidator {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &QueryValidator{validate: validate}
}

// Validate returns nil for an acceptable query and a *ValidationError describing
// the first violation otherwise.
func (v *QueryValidator) Validate(query ResearchQuery) error {
	if err := v.validate.Struct(query); err != nil {
		fieldErrors, ok := err.(validator.ValidationErrors)
		if !ok || len(fieldErrors) == 0 {
			return validationError("structure", "invalid query structure")
		}
		return validationError("structure", "Missing required field: %s", fieldErrors[0].Field())
	}

	requirements := query.DataRequirements
	if len(requirements.DataTypes) == 0 {
		return validationError("data-types", "At least one data type must be selected")
	}
	if len(requirements.ResearchCategories) == 0 {
		return validationError("research-categories", "At least one research category must be selected")
	}
	if !ethicalApprovalIDPattern.MatchString(query.EthicalApprovalID) {
		return validationError("ethical-approval-id",
			"Invalid ethical approval ID format, expected IRB-, REB- or EC- followed by year and number")
	}
	if requirements.DataRetentionDays > maxRetentionDays {
		return validationError("retention-limit",
			"Data retention period cannot exceed %d days", maxRetentionDays)
	}
	if utf8.RuneCountInString(query.StudyDescription) < minDescriptionLength {
		return validationError("description-length",
			"Study description must be at least %d characters", minDescriptionLength)
	}
	return nil
}
