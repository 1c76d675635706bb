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
	"errors"
	"fmt"
)

// ErrVersionConflict is returned by the consent ledger when an update carries an
// ExpectedVersion that no longer matches the stored record.
var ErrVersionConflict = errors.New("consent record version conflict")

// ErrEngineBusy is returned when the processor's in-flight limit is reached.
var ErrEngineBusy = errors.New("too many queries in flight")

// ErrQueryNotFound is returned by store operations that require an existing query.
// Read operations return nil instead, per the external contract.
var ErrQueryNotFound = errors.New("query not found")

// ValidationError is a declared business rule violated by caller input. Its message
// is safe to surface verbatim.
type ValidationError struct {
	Rule    string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func validationError(rule, format string, args ...interface{}) *ValidationError {
	return &ValidationError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}

// IsValidationError reports whether err stems from caller input rather than the
// engine itself.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
