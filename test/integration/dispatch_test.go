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
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	auditstore "github.com/studylane/lead-distribution-service/internal/audit/store"
	dispatchmodel "github.com/studylane/lead-distribution-service/internal/dispatch/model"
	dispatchservice "github.com/studylane/lead-distribution-service/internal/dispatch/service"
	rulemodel "github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
	ruleservice "github.com/studylane/lead-distribution-service/internal/distribution_rules/service"
	leadstore "github.com/studylane/lead-distribution-service/internal/leads/store"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/errors"
)

func seedLead(t *testing.T, leadId, source, destination string) {
	t.Helper()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	require.NoError(t, err)

	now := time.Now().UTC().Unix()
	_, err = dbClient.ExecuteQuery(
		`INSERT INTO leads (lead_id, source, study_destination, status, created_at, updated_at)
		 VALUES ($1, $2, $3, 'new', $4, $4)`, leadId, source, destination, now)
	require.NoError(t, err)
}

func TestDispatch_Automatic_AssignsByFirstMatch(t *testing.T) {
	seedOffice(t, "office-d1", "Colombo", "consultant-d1a", "consultant-d1b")
	rules := ruleservice.GetDistributionRuleService()
	_, err := rules.AddDistributionRule(rulemodel.DistributionRuleAPIRequest{
		Priority:       1,
		Criteria:       rulemodel.RuleCriteria{StudyDestination: "dispatch-auto"},
		TargetOfficeId: "office-d1",
	}, "admin")
	require.NoError(t, err)

	leadId := "lead-" + uuid.New().String()
	seedLead(t, leadId, constants.LeadSourceOnline, "dispatch-auto")

	result, err := dispatchservice.GetDispatchService().DispatchLead(leadId,
		dispatchmodel.DispatchRequest{Mode: constants.DispatchModeAutomatic}, "dispatcher")
	require.NoError(t, err)

	assert.Equal(t, dispatchmodel.OutcomeAssigned, result.Outcome)
	assert.Equal(t, "office-d1", result.OfficeId)
	assert.Equal(t, "consultant-d1a", result.ConsultantId, "first_member strategy picks the first consultant")

	lead, err := leadstore.GetLead(leadId)
	require.NoError(t, err)
	require.NotNil(t, lead)
	assert.Equal(t, "office-d1", lead.OfficeId)
	assert.Equal(t, int64(1), lead.Version, "assignment write bumps the version")

	entries, err := auditstore.GetEntriesForLead(leadId)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, constants.AuditActionAutoAssigned, entries[0].Action)
}

func TestDispatch_Automatic_NoMatch_LeavesLeadUntouched(t *testing.T) {
	leadId := "lead-" + uuid.New().String()
	seedLead(t, leadId, constants.LeadSourceWalkIn, "no-rule-matches-this")

	result, err := dispatchservice.GetDispatchService().DispatchLead(leadId,
		dispatchmodel.DispatchRequest{Mode: constants.DispatchModeAutomatic}, "dispatcher")
	require.NoError(t, err)

	assert.Equal(t, dispatchmodel.OutcomeUnassigned, result.Outcome)

	lead, err := leadstore.GetLead(leadId)
	require.NoError(t, err)
	assert.Empty(t, lead.OfficeId)
	assert.Equal(t, int64(0), lead.Version, "no write happens when nothing matches")

	entries, err := auditstore.GetEntriesForLead(leadId)
	require.NoError(t, err)
	assert.Empty(t, entries, "no audit entry for a no-match dispatch")
}

func TestDispatch_Automatic_AlreadyAssigned_RequiresReevaluate(t *testing.T) {
	seedOffice(t, "office-d3", "Jaffna", "consultant-d3")
	rules := ruleservice.GetDistributionRuleService()
	_, err := rules.AddDistributionRule(rulemodel.DistributionRuleAPIRequest{
		Priority:       1,
		Criteria:       rulemodel.RuleCriteria{StudyDestination: "dispatch-locked"},
		TargetOfficeId: "office-d3",
	}, "admin")
	require.NoError(t, err)

	leadId := "lead-" + uuid.New().String()
	seedLead(t, leadId, constants.LeadSourceOnline, "dispatch-locked")
	svc := dispatchservice.GetDispatchService()

	_, err = svc.DispatchLead(leadId,
		dispatchmodel.DispatchRequest{Mode: constants.DispatchModeAutomatic}, "dispatcher")
	require.NoError(t, err)

	_, err = svc.DispatchLead(leadId,
		dispatchmodel.DispatchRequest{Mode: constants.DispatchModeAutomatic}, "dispatcher")
	require.Error(t, err)
	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, clientErr.StatusCode)
	assert.Equal(t, errors.LEAD_ALREADY_ASSIGNED.Code, clientErr.ErrorMessage.Code)

	result, err := svc.DispatchLead(leadId, dispatchmodel.DispatchRequest{
		Mode:       constants.DispatchModeAutomatic,
		Reevaluate: true,
	}, "dispatcher")
	require.NoError(t, err)
	assert.Equal(t, dispatchmodel.OutcomeReassigned, result.Outcome)
}

func TestDispatch_Manual_OverridesAndAudits(t *testing.T) {
	seedOffice(t, "office-d4", "Negombo", "consultant-d4")

	leadId := "lead-" + uuid.New().String()
	seedLead(t, leadId, constants.LeadSourceReferral, "dispatch-manual")

	result, err := dispatchservice.GetDispatchService().DispatchLead(leadId,
		dispatchmodel.DispatchRequest{
			Mode:         constants.DispatchModeManual,
			OfficeId:     "office-d4",
			ConsultantId: "consultant-d4",
		}, "supervisor")
	require.NoError(t, err)

	assert.Equal(t, dispatchmodel.OutcomeAssigned, result.Outcome)
	assert.Empty(t, result.RuleId, "manual dispatch bypasses the rule set")

	entries, err := auditstore.GetEntriesForLead(leadId)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, constants.AuditActionReassigned, entries[0].Action)
	assert.Equal(t, "supervisor", entries[0].ActorId)
}

func TestDispatch_Manual_ConsultantOutsideOffice_Rejected(t *testing.T) {
	seedOffice(t, "office-d5", "Matara", "consultant-d5")

	leadId := "lead-" + uuid.New().String()
	seedLead(t, leadId, constants.LeadSourceOnline, "dispatch-membership")

	_, err := dispatchservice.GetDispatchService().DispatchLead(leadId,
		dispatchmodel.DispatchRequest{
			Mode:         constants.DispatchModeManual,
			OfficeId:     "office-d5",
			ConsultantId: "consultant-from-another-office",
		}, "supervisor")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, errors.INVALID_MEMBERSHIP.Code, clientErr.ErrorMessage.Code)
}

func TestDispatch_IdempotencyKey_ReplaysPriorOutcome(t *testing.T) {
	seedOffice(t, "office-d6", "Kurunegala", "consultant-d6")

	leadId := "lead-" + uuid.New().String()
	seedLead(t, leadId, constants.LeadSourceOnline, "dispatch-idem")
	svc := dispatchservice.GetDispatchService()

	request := dispatchmodel.DispatchRequest{
		Mode:           constants.DispatchModeManual,
		OfficeId:       "office-d6",
		ConsultantId:   "consultant-d6",
		IdempotencyKey: "idem-" + uuid.New().String(),
	}

	first, err := svc.DispatchLead(leadId, request, "supervisor")
	require.NoError(t, err)
	assert.Equal(t, dispatchmodel.OutcomeAssigned, first.Outcome)

	second, err := svc.DispatchLead(leadId, request, "supervisor")
	require.NoError(t, err)
	assert.Equal(t, dispatchmodel.OutcomeReplayed, second.Outcome)
	assert.Equal(t, first.OfficeId, second.OfficeId)
	assert.Equal(t, first.ConsultantId, second.ConsultantId)

	entries, err := auditstore.GetEntriesForLead(leadId)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "a replay appends no second entry")
}

func TestDispatch_LeadNotFound(t *testing.T) {
	_, err := dispatchservice.GetDispatchService().DispatchLead("lead-missing-"+uuid.New().String(),
		dispatchmodel.DispatchRequest{Mode: constants.DispatchModeAutomatic}, "dispatcher")
	require.Error(t, err)

	clientErr, ok := err.(*errors.ClientError)
	require.True(t, ok)
	assert.Equal(t, http.StatusNotFound, clientErr.StatusCode)
	assert.Equal(t, errors.LEAD_NOT_FOUND.Code, clientErr.ErrorMessage.Code)
}
