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

package api

// Response is the envelope every endpoint answers with. Data is always present so
// "unknown id" is an explicit null, never an error.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
	Error   string      `json:"error,omitempty"`
}

// SubmitQueryResponse is the envelope for query submission.
type SubmitQueryResponse struct {
	Success bool   `json:"success"`
	QueryID string `json:"queryId,omitempty"`
	Error   string `json:"error,omitempty"`
}

// CancelResult reports whether a pending run was stopped.
type CancelResult struct {
	Cancelled bool `json:"cancelled"`
}

func ok(data interface{}) Response {
	return Response{Success: true, Data: data}
}

func fail(message string) Response {
	return Response{Success: false, Error: message}
}
