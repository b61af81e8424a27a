/*
 * Copyright (c) 2025, WSO2 LLC. (http://www.wso2.com).
 *
 * WSO2 LLC. licenses this file to you under the Apache License,
 * Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.
 * You may obtain a copy of the License at
 *
 * http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing,
 * software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
 * KIND, either express or implied.  See the License for the
 * specific language governing permissions and limitations
 * under the License.
 */

package utils

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	customerrors "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	os.Exit(m.Run())
}

func TestExtractPathSuffixID(t *testing.T) {
	cases := []struct {
		path   string
		marker string
		want   string
	}{
		{"/api/v1/leads/lead-1/dispatch", "leads", "lead-1"},
		{"/leads/lead-2", "leads", "lead-2"},
		{"/distribution-rules/rule-1/history", "distribution-rules", "rule-1"},
		{"/leads", "leads", ""},
		{"/offices/office-1", "leads", ""},
	}

	for _, tc := range cases {
		r := httptest.NewRequest(http.MethodGet, tc.path, nil)
		assert.Equal(t, tc.want, ExtractPathSuffixID(r, tc.marker), "path: %s", tc.path)
	}
}

func TestHandleError_ClientErrorStatusAndBody(t *testing.T) {
	w := httptest.NewRecorder()
	err := customerrors.NewClientError(customerrors.ErrorMessage{
		Code:        "LDS-11001",
		Message:     "Bad request",
		Description: "something is off",
	}, http.StatusBadRequest)

	HandleError(w, err)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Body.String(), "LDS-11001")
}

func TestHandleError_ServerErrorHidesDetails(t *testing.T) {
	w := httptest.NewRecorder()
	err := customerrors.NewServerError(customerrors.ErrorMessage{
		Code:        "LDS-15002",
		Message:     "Query failed",
		Description: "secret internals",
	}, assert.AnError)

	HandleError(w, err)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "secret internals")
}

func TestRespondJSON_WritesPayload(t *testing.T) {
	w := httptest.NewRecorder()

	RespondJSON(w, http.StatusCreated, map[string]string{"id": "r-1"})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.JSONEq(t, `{"id":"r-1"}`, w.Body.String())
}

func TestRespondJSON_NilPayloadWritesNoBody(t *testing.T) {
	w := httptest.NewRecorder()

	RespondJSON(w, http.StatusNoContent, nil)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}
