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
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/thedevsaddam/gojsonq.v2"

	"github.com/caredata-foundation/research-engine/mock"
	"github.com/caredata-foundation/research-engine/pkg"
	"github.com/caredata-foundation/research-engine/test"
)

type apiTestContext struct {
	ctrl     *gomock.Controller
	client   *mock.MockResearchEngineClient
	wrapper  Wrapper
	echo     *echo.Echo
	recorder *httptest.ResponseRecorder
}

func newAPITestContext(t *testing.T) *apiTestContext {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)
	client := mock.NewMockResearchEngineClient(ctrl)
	return &apiTestContext{
		ctrl:     ctrl,
		client:   client,
		wrapper:  Wrapper{Re: client},
		echo:     echo.New(),
		recorder: httptest.NewRecorder(),
	}
}

func (tc *apiTestContext) jsonContext(method, target string, body interface{}) echo.Context {
	var reader *strings.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = strings.NewReader(string(data))
	} else {
		reader = strings.NewReader("")
	}
	request := httptest.NewRequest(method, target, reader)
	request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	return tc.echo.NewContext(request, tc.recorder)
}

func (tc *apiTestContext) body() *gojsonq.JSONQ {
	return gojsonq.New().FromString(tc.recorder.Body.String())
}

func TestWrapper_SubmitQuery(t *testing.T) {
	t.Run("an accepted query answers 202 with its id", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().SubmitQuery(gomock.Any(), gomock.Any()).Return("query-1", nil)

		ctx := tc.jsonContext(http.MethodPost, "/api/v1/query", test.ValidResearchQuery())
		require.NoError(t, tc.wrapper.SubmitQuery(ctx))

		assert.Equal(t, http.StatusAccepted, tc.recorder.Code)
		assert.Equal(t, true, tc.body().Find("success"))
		assert.Equal(t, "query-1", tc.body().Find("queryId"))
	})

	t.Run("a validation failure answers 400 with the rule's message", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().SubmitQuery(gomock.Any(), gomock.Any()).
			Return("", &pkg.ValidationError{Rule: "data-types", Message: "At least one data type must be selected"})

		ctx := tc.jsonContext(http.MethodPost, "/api/v1/query", test.ValidResearchQuery())
		require.NoError(t, tc.wrapper.SubmitQuery(ctx))

		assert.Equal(t, http.StatusBadRequest, tc.recorder.Code)
		assert.Equal(t, false, tc.body().Find("success"))
		assert.Equal(t, "At least one data type must be selected", tc.body().Find("error"))
	})

	t.Run("a full engine answers 503 without leaking internals", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().SubmitQuery(gomock.Any(), gomock.Any()).Return("", pkg.ErrEngineBusy)

		ctx := tc.jsonContext(http.MethodPost, "/api/v1/query", test.ValidResearchQuery())
		require.NoError(t, tc.wrapper.SubmitQuery(ctx))

		assert.Equal(t, http.StatusServiceUnavailable, tc.recorder.Code)
		assert.Equal(t, "Failed to submit query", tc.body().Find("error"))
	})

	t.Run("an unexpected engine error answers 500 with the generic message", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().SubmitQuery(gomock.Any(), gomock.Any()).Return("", errors.New("disk full"))

		ctx := tc.jsonContext(http.MethodPost, "/api/v1/query", test.ValidResearchQuery())
		require.NoError(t, tc.wrapper.SubmitQuery(ctx))

		assert.Equal(t, http.StatusInternalServerError, tc.recorder.Code)
		assert.Equal(t, "Failed to submit query", tc.body().Find("error"))
	})

	t.Run("a malformed body answers 400", func(t *testing.T) {
		tc := newAPITestContext(t)

		request := httptest.NewRequest(http.MethodPost, "/api/v1/query", strings.NewReader("{not json"))
		request.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		ctx := tc.echo.NewContext(request, tc.recorder)
		require.NoError(t, tc.wrapper.SubmitQuery(ctx))

		assert.Equal(t, http.StatusBadRequest, tc.recorder.Code)
		assert.Equal(t, "Invalid request body", tc.body().Find("error"))
	})
}

func TestWrapper_CancelQuery(t *testing.T) {
	tc := newAPITestContext(t)
	tc.client.EXPECT().CancelQuery("query-1").Return(true)

	ctx := tc.jsonContext(http.MethodDelete, "/api/v1/query/query-1", nil)
	ctx.SetParamNames("id")
	ctx.SetParamValues("query-1")
	require.NoError(t, tc.wrapper.CancelQuery(ctx))

	assert.Equal(t, http.StatusOK, tc.recorder.Code)
	assert.Equal(t, true, tc.body().Find("data.cancelled"))
}

func TestWrapper_GetQueryStatus(t *testing.T) {
	t.Run("a known query returns its status", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().GetQueryStatus("query-1").
			Return(&pkg.QueryStatus{QueryID: "query-1", Status: pkg.StateProcessing, Progress: 60}, nil)

		ctx := tc.jsonContext(http.MethodGet, "/api/v1/query/query-1/status", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues("query-1")
		require.NoError(t, tc.wrapper.GetQueryStatus(ctx))

		assert.Equal(t, http.StatusOK, tc.recorder.Code)
		assert.Equal(t, "processing", tc.body().Find("data.status"))
		assert.Equal(t, float64(60), tc.body().Find("data.progress"))
	})

	t.Run("an unknown query returns success with empty data", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().GetQueryStatus("missing").Return(nil, nil)

		ctx := tc.jsonContext(http.MethodGet, "/api/v1/query/missing/status", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues("missing")
		require.NoError(t, tc.wrapper.GetQueryStatus(ctx))

		assert.Equal(t, http.StatusOK, tc.recorder.Code)
		assert.Equal(t, true, tc.body().Find("success"))
		assert.Nil(t, tc.body().Find("data"))
	})

	t.Run("a store failure answers 500", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().GetQueryStatus("query-1").Return(nil, errors.New("disk full"))

		ctx := tc.jsonContext(http.MethodGet, "/api/v1/query/query-1/status", nil)
		ctx.SetParamNames("id")
		ctx.SetParamValues("query-1")
		require.NoError(t, tc.wrapper.GetQueryStatus(ctx))

		assert.Equal(t, http.StatusInternalServerError, tc.recorder.Code)
		assert.Equal(t, "Failed to get query status", tc.body().Find("error"))
	})
}

func TestWrapper_GetQueryResults(t *testing.T) {
	tc := newAPITestContext(t)
	tc.client.EXPECT().GetQueryResults("researcher-001").
		Return([]pkg.QueryResult{{QueryStatus: pkg.QueryStatus{QueryID: "query-1"}, ResearcherID: "researcher-001"}}, nil)

	ctx := tc.jsonContext(http.MethodGet, "/api/v1/queries/researcher-001", nil)
	ctx.SetParamNames("researcherId")
	ctx.SetParamValues("researcher-001")
	require.NoError(t, tc.wrapper.GetQueryResults(ctx))

	assert.Equal(t, http.StatusOK, tc.recorder.Code)
	assert.Equal(t, "query-1", tc.body().Find("data.[0].queryId"))
}

func TestWrapper_UpdateConsent(t *testing.T) {
	t.Run("a recorded update returns the new version", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().UpdateConsent(gomock.Any()).
			Return(&pkg.ConsentRecord{PatientID: "patient-1", Version: 2}, nil)

		ctx := tc.jsonContext(http.MethodPut, "/api/v1/consent", pkg.ConsentUpdate{
			PatientID:        "patient-1",
			DataType:         "vitals",
			ResearchCategory: "cardiology",
			ConsentGranted:   true,
		})
		require.NoError(t, tc.wrapper.UpdateConsent(ctx))

		assert.Equal(t, http.StatusOK, tc.recorder.Code)
		assert.Equal(t, float64(2), tc.body().Find("data.version"))
	})

	t.Run("a version conflict answers 409", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().UpdateConsent(gomock.Any()).Return(nil, pkg.ErrVersionConflict)

		ctx := tc.jsonContext(http.MethodPut, "/api/v1/consent", pkg.ConsentUpdate{PatientID: "patient-1"})
		require.NoError(t, tc.wrapper.UpdateConsent(ctx))

		assert.Equal(t, http.StatusConflict, tc.recorder.Code)
		assert.Equal(t, "Consent record was changed by a concurrent update", tc.body().Find("error"))
	})

	t.Run("an incomplete tuple answers 400", func(t *testing.T) {
		tc := newAPITestContext(t)
		tc.client.EXPECT().UpdateConsent(gomock.Any()).
			Return(nil, &pkg.ValidationError{Rule: "consent-tuple", Message: "patientId, dataType and researchCategory are required"})

		ctx := tc.jsonContext(http.MethodPut, "/api/v1/consent", pkg.ConsentUpdate{PatientID: "patient-1"})
		require.NoError(t, tc.wrapper.UpdateConsent(ctx))

		assert.Equal(t, http.StatusBadRequest, tc.recorder.Code)
		assert.Equal(t, "patientId, dataType and researchCategory are required", tc.body().Find("error"))
	})
}

func TestWrapper_GetConsentHistory(t *testing.T) {
	tc := newAPITestContext(t)
	tc.client.EXPECT().GetConsentHistory("patient-1", "vitals").
		Return([]pkg.ConsentRecord{{PatientID: "patient-1", DataType: "vitals", Version: 2}}, nil)

	request := httptest.NewRequest(http.MethodGet, "/api/v1/consent/patient-1/history?dataType=vitals", nil)
	ctx := tc.echo.NewContext(request, tc.recorder)
	ctx.SetParamNames("patientId")
	ctx.SetParamValues("patient-1")
	require.NoError(t, tc.wrapper.GetConsentHistory(ctx))

	assert.Equal(t, http.StatusOK, tc.recorder.Code)
	assert.Equal(t, float64(2), tc.body().Find("data.[0].version"))
}

func TestWrapper_GetExpiringConsents(t *testing.T) {
	tc := newAPITestContext(t)
	tc.client.EXPECT().GetExpiringConsents("patient-1").
		Return([]pkg.ConsentRecord{{PatientID: "patient-1", DataType: "vitals"}}, nil)

	ctx := tc.jsonContext(http.MethodGet, "/api/v1/consent/patient-1/expiring", nil)
	ctx.SetParamNames("patientId")
	ctx.SetParamValues("patient-1")
	require.NoError(t, tc.wrapper.GetExpiringConsents(ctx))

	assert.Equal(t, http.StatusOK, tc.recorder.Code)
	assert.Equal(t, "vitals", tc.body().Find("data.[0].dataType"))
}

func TestRegisterHandlers(t *testing.T) {
	tc := newAPITestContext(t)

	RegisterHandlers(tc.echo, tc.wrapper)

	routes := map[string]bool{}
	for _, route := range tc.echo.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	for _, expected := range []string{
		"POST /api/v1/query",
		"DELETE /api/v1/query/:id",
		"GET /api/v1/query/:id/status",
		"GET /api/v1/query/:id/result",
		"GET /api/v1/queries/:researcherId",
		"PUT /api/v1/consent",
		"GET /api/v1/consent/:patientId",
		"GET /api/v1/consent/:patientId/history",
		"GET /api/v1/consent/:patientId/expiring",
	} {
		assert.True(t, routes[expected], expected)
	}
}
