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

package service

import (
	"net/http"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditmodel "github.com/studylane/lead-distribution-service/internal/audit/model"
	"github.com/studylane/lead-distribution-service/internal/dispatch/model"
	leadmodel "github.com/studylane/lead-distribution-service/internal/leads/model"
	"github.com/studylane/lead-distribution-service/internal/system/config"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
	"github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

func TestMain(m *testing.M) {
	_ = log.Init("ERROR")
	config.OverrideLDSRuntime(config.Config{
		Dispatch: config.DispatchConfig{
			MaxRulePriority:   100,
			SelectionStrategy: "first_member",
		},
	})
	os.Exit(m.Run())
}

// ---------------------------------------------------------------------------
// validateDispatchRequest – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestValidateDispatchRequest_UnknownMode_Rejected(t *testing.T) {
	err := validateDispatchRequest(model.DispatchRequest{Mode: "semi-automatic"})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.INVALID_DISPATCH_MODE.Code, clientErr.ErrorMessage.Code)
}

func TestValidateDispatchRequest_EmptyMode_Rejected(t *testing.T) {
	err := validateDispatchRequest(model.DispatchRequest{})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors.INVALID_DISPATCH_MODE.Code, clientErr.ErrorMessage.Code)
}

func TestValidateDispatchRequest_AutomaticWithTarget_Rejected(t *testing.T) {
	err := validateDispatchRequest(model.DispatchRequest{
		Mode:     constants.DispatchModeAutomatic,
		OfficeId: "office-1",
	})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestValidateDispatchRequest_ManualWithoutOffice_Rejected(t *testing.T) {
	err := validateDispatchRequest(model.DispatchRequest{
		Mode:         constants.DispatchModeManual,
		ConsultantId: "consultant-1",
	})
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
}

func TestValidateDispatchRequest_ValidModes_Accepted(t *testing.T) {
	assert.NoError(t, validateDispatchRequest(model.DispatchRequest{
		Mode: constants.DispatchModeAutomatic,
	}))
	assert.NoError(t, validateDispatchRequest(model.DispatchRequest{
		Mode:     constants.DispatchModeManual,
		OfficeId: "office-1",
	}))
}

// ---------------------------------------------------------------------------
// Audit entry construction
// ---------------------------------------------------------------------------

func TestBuildAssignmentEntry_AutomaticMode(t *testing.T) {
	lead := &leadmodel.Lead{
		LeadId:               "lead-1",
		OfficeId:             "office-old",
		AssignedConsultantId: "consultant-old",
	}
	request := model.DispatchRequest{
		Mode:           constants.DispatchModeAutomatic,
		IdempotencyKey: "key-1",
	}

	entry := buildAssignmentEntry(lead, request, "actor-1", "office-new", "consultant-new", "rule-1")

	assert.Equal(t, constants.AuditActionAutoAssigned, entry.Action)
	assert.Equal(t, "lead-1", entry.LeadId)
	assert.Equal(t, "rule-1", entry.RuleId)
	assert.Equal(t, "actor-1", entry.ActorId)
	assert.Equal(t, "key-1", entry.IdempotencyKey)
	assert.Equal(t, "office-old", entry.Details["previous_office_id"])
	assert.Equal(t, "consultant-old", entry.Details["previous_consultant_id"])
	assert.Equal(t, "office-new", entry.Details["office_id"])
	assert.Equal(t, "consultant-new", entry.Details["consultant_id"])
	assert.NotEmpty(t, entry.EntryId)
	assert.NotZero(t, entry.RecordedAt)
}

func TestBuildAssignmentEntry_ManualMode_RecordsReassignment(t *testing.T) {
	lead := &leadmodel.Lead{LeadId: "lead-2"}
	request := model.DispatchRequest{Mode: constants.DispatchModeManual, OfficeId: "office-1"}

	entry := buildAssignmentEntry(lead, request, "actor-2", "office-1", "", "")

	assert.Equal(t, constants.AuditActionReassigned, entry.Action)
	assert.Empty(t, entry.RuleId)
}

// ---------------------------------------------------------------------------
// Idempotent replay
// ---------------------------------------------------------------------------

func TestReplayResult_RebuildsOutcomeFromEntryDetails(t *testing.T) {
	entry := &auditmodel.AuditEntry{
		Details: map[string]interface{}{
			"rule_id":                "rule-1",
			"office_id":              "office-1",
			"consultant_id":          "consultant-1",
			"previous_office_id":     "office-0",
			"previous_consultant_id": "consultant-0",
		},
	}

	result := replayResult("lead-1", entry)

	assert.Equal(t, model.OutcomeReplayed, result.Outcome)
	assert.Equal(t, "lead-1", result.LeadId)
	assert.Equal(t, "rule-1", result.RuleId)
	assert.Equal(t, "office-1", result.OfficeId)
	assert.Equal(t, "consultant-1", result.ConsultantId)
	assert.Equal(t, "office-0", result.PreviousOfficeId)
	assert.Equal(t, "consultant-0", result.PreviousConsultantId)
}

func TestReplayResult_ToleratesMissingDetails(t *testing.T) {
	entry := &auditmodel.AuditEntry{Details: map[string]interface{}{}}

	result := replayResult("lead-1", entry)

	assert.Equal(t, model.OutcomeReplayed, result.Outcome)
	assert.Empty(t, result.OfficeId)
	assert.Empty(t, result.RuleId)
}
