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

	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
	"github.com/studylane/lead-distribution-service/internal/system/config"
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
// validateRule – early-return validation (no DB required)
// ---------------------------------------------------------------------------

func TestValidateRule_PriorityTooLow_Rejected(t *testing.T) {
	rule := model.DistributionRule{
		Priority:       0,
		TargetOfficeId: "office-1",
	}
	err := validateRule(rule)
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.INVALID_RULE_PRIORITY.Code, clientErr.ErrorMessage.Code)
}

func TestValidateRule_PriorityAboveConfiguredMax_Rejected(t *testing.T) {
	rule := model.DistributionRule{
		Priority:       101,
		TargetOfficeId: "office-1",
	}
	err := validateRule(rule)
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors.INVALID_RULE_PRIORITY.Code, clientErr.ErrorMessage.Code)
}

func TestValidateRule_UnknownLeadSource_Rejected(t *testing.T) {
	rule := model.DistributionRule{
		Priority:       10,
		Criteria:       model.RuleCriteria{LeadSource: "carrier_pigeon"},
		TargetOfficeId: "office-1",
	}
	err := validateRule(rule)
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, http.StatusBadRequest, clientErr.StatusCode)
	assert.Equal(t, errors.INVALID_LEAD_SOURCE.Code, clientErr.ErrorMessage.Code)
}

func TestValidateRule_MissingTargetOffice_Rejected(t *testing.T) {
	rule := model.DistributionRule{
		Priority: 10,
	}
	err := validateRule(rule)
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok, "expected a ClientError")
	assert.Equal(t, errors.TARGET_OFFICE_NOT_FOUND.Code, clientErr.ErrorMessage.Code)
}

// ---------------------------------------------------------------------------
// ruleSnapshot
// ---------------------------------------------------------------------------

func TestRuleSnapshot_CarriesFullDefinition(t *testing.T) {
	rule := model.DistributionRule{
		RuleId:   "rule-1",
		Priority: 7,
		Criteria: model.RuleCriteria{
			StudyDestination: "Canada",
			LeadSource:       "online",
		},
		TargetOfficeId:     "office-9",
		TargetConsultantId: "consultant-3",
	}

	snapshot := ruleSnapshot(rule)
	assert.Equal(t, "rule-1", snapshot["rule_id"])
	assert.Equal(t, 7, snapshot["priority"])
	assert.Equal(t, "Canada", snapshot["criteria_destination"])
	assert.Equal(t, "online", snapshot["criteria_lead_source"])
	assert.Equal(t, "office-9", snapshot["target_office_id"])
	assert.Equal(t, "consultant-3", snapshot["target_consultant_id"])
}
