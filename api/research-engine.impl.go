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

import (
	"errors"
	"net/http"

	"github.com/deepmap/oapi-codegen/pkg/runtime"
	"github.com/labstack/echo/v4"

	"github.com/caredata-foundation/research-engine/pkg"
)

// ServerInterface lists the HTTP operations of the engine.
type ServerInterface interface {
	SubmitQuery(ctx echo.Context) error
	CancelQuery(ctx echo.Context) error
	GetQueryStatus(ctx echo.Context) error
	GetQueryResult(ctx echo.Context) error
	GetQueryResults(ctx echo.Context) error
	UpdateConsent(ctx echo.Context) error
	GetPatientConsents(ctx echo.Context) error
	GetConsentHistory(ctx echo.Context) error
	GetExpiringConsents(ctx echo.Context) error
}

// RegisterHandlers binds the operations to their routes.
func RegisterHandlers(router runtime.EchoRouter, si ServerInterface) {
	router.POST("/api/v1/query", si.SubmitQuery)
	router.DELETE("/api/v1/query/:id", si.CancelQuery)
	router.GET("/api/v1/query/:id/status", si.GetQueryStatus)
	router.GET("/api/v1/query/:id/result", si.GetQueryResult)
	router.GET("/api/v1/queries/:researcherId", si.GetQueryResults)
	router.PUT("/api/v1/consent", si.UpdateConsent)
	router.GET("/api/v1/consent/:patientId", si.GetPatientConsents)
	router.GET("/api/v1/consent/:patientId/history", si.GetConsentHistory)
	router.GET("/api/v1/consent/:patientId/expiring", si.GetExpiringConsents)
}

// Wrapper implements ServerInterface on top of a ResearchEngineClient. Validation
// errors pass through verbatim, every other failure is logged and remapped to a
// generic message.
type Wrapper struct {
	Re pkg.ResearchEngineClient
}

// SubmitQuery accepts a research query for asynchronous processing. A validation
// failure blocks submission entirely; an accepted query answers 202 with its id.
func (w Wrapper) SubmitQuery(ctx echo.Context) error {
	query := new(pkg.ResearchQuery)
	if err := ctx.Bind(query); err != nil {
		ctx.Logger().Error("could not unmarshal json body:", err)
		return ctx.JSON(http.StatusBadRequest, SubmitQueryResponse{Success: false, Error: "Invalid request body"})
	}

	queryID, err := w.Re.SubmitQuery(ctx.Request().Context(), *query)
	if err != nil {
		if pkg.IsValidationError(err) {
			return ctx.JSON(http.StatusBadRequest, SubmitQueryResponse{Success: false, Error: err.Error()})
		}
		ctx.Logger().Error("query submission failed:", err)
		status := http.StatusInternalServerError
		if errors.Is(err, pkg.ErrEngineBusy) {
			status = http.StatusServiceUnavailable
		}
		return ctx.JSON(status, SubmitQueryResponse{Success: false, Error: "Failed to submit query"})
	}
	return ctx.JSON(http.StatusAccepted, SubmitQueryResponse{Success: true, QueryID: queryID})
}

func (w Wrapper) CancelQuery(ctx echo.Context) error {
	cancelled := w.Re.CancelQuery(ctx.Param("id"))
	return ctx.JSON(http.StatusOK, ok(CancelResult{Cancelled: cancelled}))
}

func (w Wrapper) GetQueryStatus(ctx echo.Context) error {
	status, err := w.Re.GetQueryStatus(ctx.Param("id"))
	if err != nil {
		ctx.Logger().Error("could not read query status:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to get query status"))
	}
	if status == nil {
		return ctx.JSON(http.StatusOK, ok(nil))
	}
	return ctx.JSON(http.StatusOK, ok(status))
}

func (w Wrapper) GetQueryResult(ctx echo.Context) error {
	result, err := w.Re.GetQueryResult(ctx.Param("id"))
	if err != nil {
		ctx.Logger().Error("could not read query result:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to get query result"))
	}
	if result == nil {
		return ctx.JSON(http.StatusOK, ok(nil))
	}
	return ctx.JSON(http.StatusOK, ok(result))
}

func (w Wrapper) GetQueryResults(ctx echo.Context) error {
	results, err := w.Re.GetQueryResults(ctx.Param("researcherId"))
	if err != nil {
		ctx.Logger().Error("could not list query results:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to get query results"))
	}
	return ctx.JSON(http.StatusOK, ok(results))
}

// UpdateConsent records a consent decision. A stale expectedVersion answers 409 so
// the caller can re-read and retry.
func (w Wrapper) UpdateConsent(ctx echo.Context) error {
	update := new(pkg.ConsentUpdate)
	if err := ctx.Bind(update); err != nil {
		ctx.Logger().Error("could not unmarshal json body:", err)
		return ctx.JSON(http.StatusBadRequest, fail("Invalid request body"))
	}

	record, err := w.Re.UpdateConsent(*update)
	if err != nil {
		if errors.Is(err, pkg.ErrVersionConflict) {
			return ctx.JSON(http.StatusConflict, fail("Consent record was changed by a concurrent update"))
		}
		if pkg.IsValidationError(err) {
			return ctx.JSON(http.StatusBadRequest, fail(err.Error()))
		}
		ctx.Logger().Error("consent update failed:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to update consent"))
	}
	return ctx.JSON(http.StatusOK, ok(record))
}

func (w Wrapper) GetPatientConsents(ctx echo.Context) error {
	records, err := w.Re.GetPatientConsents(ctx.Param("patientId"))
	if err != nil {
		ctx.Logger().Error("could not list patient consents:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to get patient consents"))
	}
	return ctx.JSON(http.StatusOK, ok(records))
}

func (w Wrapper) GetConsentHistory(ctx echo.Context) error {
	records, err := w.Re.GetConsentHistory(ctx.Param("patientId"), ctx.QueryParam("dataType"))
	if err != nil {
		ctx.Logger().Error("could not read consent history:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to get consent history"))
	}
	return ctx.JSON(http.StatusOK, ok(records))
}

// GetExpiringConsents lists the patient's current records that expire within the
// renewal window, so portal operators can prompt for renewal in time.
func (w Wrapper) GetExpiringConsents(ctx echo.Context) error {
	records, err := w.Re.GetExpiringConsents(ctx.Param("patientId"))
	if err != nil {
		ctx.Logger().Error("could not list expiring consents:", err)
		return ctx.JSON(http.StatusInternalServerError, fail("Failed to get expiring consents"))
	}
	return ctx.JSON(http.StatusOK, ok(records))
}
