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

package integration

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditstore "github.com/studylane/lead-distribution-service/internal/audit/store"
	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
	ruleservice "github.com/studylane/lead-distribution-service/internal/distribution_rules/service"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/errors"
)

func seedOffice(t *testing.T, officeId, name string, consultants ...string) {
	t.Helper()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)

	_, err = dbClient.ExecuteQuery(
		`INSERT INTO offices (office_id, office_name) VALUES ($1, $2)
		 ON CONFLICT (office_id) DO NOTHING`, officeId, name)
	require.NoError(t, err)

	for _, consultant := range consultants {
		_, err = dbClient.ExecuteQuery(
			`INSERT INTO office_consultants (office_id, consultant_id) VALUES ($1, $2)
			 ON CONFLICT (office_id, consultant_id) DO NOTHING`, officeId, consultant)
		require.NoError(t, err)
	}
}

func TestRuleLifecycle_CreatePatchDelete(t *testing.T) {
	seedOffice(t, "office-rl-1", "Colombo", "consultant-rl-1")
	svc := ruleservice.GetDistributionRuleService()

	created, err := svc.AddDistributionRule(model.DistributionRuleAPIRequest{
		Priority:           10,
		Criteria:           model.RuleCriteria{LeadSource: constants.LeadSourceOnline},
		TargetOfficeId:     "office-rl-1",
		TargetConsultantId: "consultant-rl-1",
	}, "admin")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, 10, created.Priority)
	assert.Equal(t, "office-rl-1", created.TargetOfficeId)

	newPriority := 5
	patched, err := svc.PatchDistributionRule(created.RuleId, model.DistributionRuleUpdateRequest{
		Priority: &newPriority,
	}, "admin")
	require.NoError(t, err)
	assert.Equal(t, 5, patched.Priority)
	assert.Equal(t, "consultant-rl-1", patched.TargetConsultantId, "untouched fields survive a patch")

	require.NoError(t, svc.DeleteDistributionRule(created.RuleId, "admin"))

	_, err = svc.GetDistributionRule(created.RuleId)
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)

	// History survives the delete, with one entry per mutation.
	entries, err := auditstore.GetEntriesForRule(created.RuleId)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, constants.AuditActionRuleCreated, entries[0].Action)
	assert.Equal(t, constants.AuditActionRuleUpdated, entries[1].Action)
	assert.Equal(t, constants.AuditActionRuleDeleted, entries[2].Action)
	assert.NotEmpty(t, entries[2].Details["target_office_id"], "deleted entry keeps the last definition")
}

func TestAddRule_TargetOfficeMissing_Rejected(t *testing.T) {
	svc := ruleservice.GetDistributionRuleService()

	_, err := svc.AddDistributionRule(model.DistributionRuleAPIRequest{
		Priority:       10,
		TargetOfficeId: "office-does-not-exist",
	}, "admin")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, errors.TARGET_OFFICE_NOT_FOUND.Code, clientErr.ErrorMessage.Code)
}

func TestAddRule_ConsultantNotInOffice_Rejected(t *testing.T) {
	seedOffice(t, "office-rm-1", "Kandy", "consultant-rm-1")
	svc := ruleservice.GetDistributionRuleService()

	_, err := svc.AddDistributionRule(model.DistributionRuleAPIRequest{
		Priority:           10,
		TargetOfficeId:     "office-rm-1",
		TargetConsultantId: "consultant-elsewhere",
	}, "admin")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, errors.INVALID_MEMBERSHIP.Code, clientErr.ErrorMessage.Code)
}

func TestGetRules_OrderedByPriorityThenInsertion(t *testing.T) {
	seedOffice(t, "office-ord-1", "Galle")
	svc := ruleservice.GetDistributionRuleService()

	first, err := svc.AddDistributionRule(model.DistributionRuleAPIRequest{
		Priority:       30,
		Criteria:       model.RuleCriteria{StudyDestination: "ordering-test"},
		TargetOfficeId: "office-ord-1",
	}, "admin")
	require.NoError(t, err)
	second, err := svc.AddDistributionRule(model.DistributionRuleAPIRequest{
		Priority:       30,
		Criteria:       model.RuleCriteria{StudyDestination: "ordering-test"},
		TargetOfficeId: "office-ord-1",
	}, "admin")
	require.NoError(t, err)

	rules, err := svc.GetDistributionRules()
	require.NoError(t, err)

	firstIdx, secondIdx := -1, -1
	for i, r := range rules {
		if r.RuleId == first.RuleId {
			firstIdx = i
		}
		if r.RuleId == second.RuleId {
			secondIdx = i
		}
	}
	require.NotEqual(t, -1, firstIdx)
	require.NotEqual(t, -1, secondIdx)
	assert.Less(t, firstIdx, secondIdx, "equal priorities list in insertion order")
}

func TestAddRule_AuditUnavailable_NoPartialWrite(t *testing.T) {
	seedOffice(t, "office-atomic-1", "Matara")
	svc := ruleservice.GetDistributionRuleService()

	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)

	// Hide the audit table so the audit append inside the mutation fails.
	_, err = dbClient.ExecuteQuery("ALTER TABLE assignment_audit RENAME TO assignment_audit_hidden")
	require.NoError(t, err)
	defer func() {
		_, err := dbClient.ExecuteQuery("ALTER TABLE assignment_audit_hidden RENAME TO assignment_audit")
		require.NoError(t, err)
	}()

	countBefore := countRules(t)

	_, err = svc.AddDistributionRule(model.DistributionRuleAPIRequest{
		Priority:       10,
		Criteria:       model.RuleCriteria{StudyDestination: "atomicity-test"},
		TargetOfficeId: "office-atomic-1",
	}, "admin")
	require.Error(t, err, "audit append failure fails the whole mutation")

	assert.Equal(t, countBefore, countRules(t), "failed mutation leaves no rule behind")
}

func countRules(t *testing.T) int64 {
	t.Helper()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)

	results, err := dbClient.ExecuteQuery("SELECT count(*) AS total FROM distribution_rules")
	require.NoError(t, err)
	require.Len(t, results, 1)

	total, ok := results[0]["total"].(int64)
	require.True(t, ok)
	return total
}
