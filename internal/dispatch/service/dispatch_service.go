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
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	auditmodel "github.com/studylane/lead-distribution-service/internal/audit/model"
	auditstore "github.com/studylane/lead-distribution-service/internal/audit/store"
	"github.com/studylane/lead-distribution-service/internal/dispatch/model"
	rulestore "github.com/studylane/lead-distribution-service/internal/distribution_rules/store"
	leadmodel "github.com/studylane/lead-distribution-service/internal/leads/model"
	leadstore "github.com/studylane/lead-distribution-service/internal/leads/store"
	"github.com/studylane/lead-distribution-service/internal/matcher"
	membership "github.com/studylane/lead-distribution-service/internal/membership/service"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
	"github.com/studylane/lead-distribution-service/internal/system/database/lock"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
	"github.com/studylane/lead-distribution-service/internal/system/workers"
)

// Dispatches of different leads run in parallel; two dispatches of the
// same lead contend on a per-lead advisory lock.
var leadLock lock.DistributedLock = lock.NewPostgresLock()

type DispatchServiceInterface interface {
	DispatchLead(leadId string, request model.DispatchRequest, actorId string) (*model.AssignmentResult, error)
}

// DispatchService is the default implementation of the DispatchServiceInterface.
type DispatchService struct{}

// GetDispatchService creates a new instance of DispatchService.
func GetDispatchService() DispatchServiceInterface {

	return &DispatchService{}
}

// DispatchLead routes a lead to an office and consultant. Automatic mode
// evaluates the rule set; manual mode assigns the caller's target. The
// assignment write and its audit entry commit in one transaction.
func (ds *DispatchService) DispatchLead(leadId string, request model.DispatchRequest,
	actorId string) (*model.AssignmentResult, error) {

	if err := validateDispatchRequest(request); err != nil {
		return nil, err
	}

	lockKey := constants.LeadLockKeyPrefix + leadId
	acquired, err := leadLock.Acquire(lockKey)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONCURRENT_MODIFICATION.Code,
			Message:     errors2.CONCURRENT_MODIFICATION.Message,
			Description: fmt.Sprintf("Another dispatch is in progress for lead: %s", leadId),
		}, http.StatusConflict)
	}
	defer func() { _ = leadLock.Release(lockKey) }()

	if request.IdempotencyKey != "" {
		prior, err := auditstore.GetEntryByIdempotencyKey(leadId, request.IdempotencyKey)
		if err != nil {
			return nil, err
		}
		if prior != nil {
			log.GetLogger().Info("Replaying prior dispatch for idempotency key",
				log.String("leadId", leadId), log.String("idempotencyKey", request.IdempotencyKey))
			return replayResult(leadId, prior), nil
		}
	}

	lead, err := leadstore.GetLead(leadId)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.LEAD_NOT_FOUND.Code,
			Message:     errors2.LEAD_NOT_FOUND.Message,
			Description: fmt.Sprintf("No lead found for lead_id: %s", leadId),
		}, http.StatusNotFound)
	}

	if request.Mode == constants.DispatchModeAutomatic && lead.IsAssigned() && !request.Reevaluate {
		return nil, errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.LEAD_ALREADY_ASSIGNED.Code,
			Message: errors2.LEAD_ALREADY_ASSIGNED.Message,
			Description: fmt.Sprintf("Lead %s is already assigned to office %s; "+
				"set reevaluate to overwrite", leadId, lead.OfficeId),
		}, http.StatusConflict)
	}

	var officeId, consultantId, ruleId string
	if request.Mode == constants.DispatchModeAutomatic {
		rules, err := rulestore.GetDistributionRules()
		if err != nil {
			return nil, err
		}
		matched := matcher.Match(matcher.LeadSnapshot{
			Source:           lead.Source,
			StudyDestination: lead.StudyDestination,
			OfficeId:         lead.OfficeId,
		}, rules)
		if matched == nil {
			// No rule matched. The lead stays as it is; nothing is
			// written and no audit entry is appended.
			return &model.AssignmentResult{
				LeadId:  leadId,
				Outcome: model.OutcomeUnassigned,
			}, nil
		}
		officeId = matched.TargetOfficeId
		consultantId = matched.TargetConsultantId
		ruleId = matched.RuleId
	} else {
		officeId = request.OfficeId
		consultantId = request.ConsultantId
	}

	consultantId, err = resolveConsultant(officeId, consultantId)
	if err != nil {
		return nil, err
	}

	entry := buildAssignmentEntry(lead, request, actorId, officeId, consultantId, ruleId)
	if err := commitAssignment(lead, officeId, consultantId, entry); err != nil {
		return nil, err
	}
	workers.EnqueueArchive(entry)

	outcome := model.OutcomeAssigned
	if lead.IsAssigned() {
		outcome = model.OutcomeReassigned
	}
	return &model.AssignmentResult{
		LeadId:               leadId,
		Outcome:              outcome,
		RuleId:               ruleId,
		OfficeId:             officeId,
		ConsultantId:         consultantId,
		PreviousOfficeId:     lead.OfficeId,
		PreviousConsultantId: lead.AssignedConsultantId,
	}, nil
}

func validateDispatchRequest(request model.DispatchRequest) error {

	switch request.Mode {
	case constants.DispatchModeAutomatic:
		if request.OfficeId != "" || request.ConsultantId != "" {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.BAD_REQUEST.Code,
				Message:     errors2.BAD_REQUEST.Message,
				Description: "Automatic dispatch must not name a target office or consultant",
			}, http.StatusBadRequest)
		}
	case constants.DispatchModeManual:
		if request.OfficeId == "" {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:        errors2.BAD_REQUEST.Code,
				Message:     errors2.BAD_REQUEST.Message,
				Description: "Manual dispatch requires a target office",
			}, http.StatusBadRequest)
		}
	default:
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_DISPATCH_MODE.Code,
			Message:     errors2.INVALID_DISPATCH_MODE.Message,
			Description: fmt.Sprintf("Dispatch mode must be automatic or manual, got '%s'", request.Mode),
		}, http.StatusBadRequest)
	}
	return nil
}

// resolveConsultant validates the target office and settles on a
// consultant. Membership is checked at dispatch time even when a rule named
// the consultant: staff move between offices independently of rule edits.
func resolveConsultant(officeId, consultantId string) (string, error) {

	membershipService := membership.GetMembershipService()

	exists, err := membershipService.OfficeExists(officeId)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TARGET_OFFICE_NOT_FOUND.Code,
			Message:     errors2.TARGET_OFFICE_NOT_FOUND.Message,
			Description: fmt.Sprintf("Office '%s' does not exist", officeId),
		}, http.StatusBadRequest)
	}

	if consultantId != "" {
		isMember, err := membershipService.IsMember(consultantId, officeId)
		if err != nil {
			return "", err
		}
		if !isMember {
			return "", errors2.NewClientError(errors2.ErrorMessage{
				Code:    errors2.INVALID_MEMBERSHIP.Code,
				Message: errors2.INVALID_MEMBERSHIP.Message,
				Description: fmt.Sprintf("Consultant '%s' is not a member of office '%s'",
					consultantId, officeId),
			}, http.StatusConflict)
		}
		return consultantId, nil
	}

	members, err := membershipService.MembersOf(officeId)
	if err != nil {
		return "", err
	}
	if len(members) == 0 {
		// Office-only assignment; a consultant can be attached later.
		return "", nil
	}
	return configuredSelector().Select(officeId, members), nil
}

func buildAssignmentEntry(lead *leadmodel.Lead, request model.DispatchRequest, actorId,
	officeId, consultantId, ruleId string) auditmodel.AuditEntry {

	action := constants.AuditActionAutoAssigned
	if request.Mode == constants.DispatchModeManual {
		action = constants.AuditActionReassigned
	}

	return auditmodel.AuditEntry{
		EntryId: uuid.New().String(),
		LeadId:  lead.LeadId,
		RuleId:  ruleId,
		ActorId: actorId,
		Action:  action,
		Details: map[string]interface{}{
			"mode":                   request.Mode,
			"office_id":              officeId,
			"consultant_id":          consultantId,
			"rule_id":                ruleId,
			"previous_office_id":     lead.OfficeId,
			"previous_consultant_id": lead.AssignedConsultantId,
		},
		IdempotencyKey: request.IdempotencyKey,
		RecordedAt:     time.Now().UTC().Unix(),
	}
}

// commitAssignment writes the assignment and its audit entry in a single
// transaction, guarded by the version read before the transaction began.
func commitAssignment(lead *leadmodel.Lead, officeId, consultantId string,
	entry auditmodel.AuditEntry) error {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for dispatching lead: %s", lead.LeadId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	tx, err := dbClient.BeginTx()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to begin transaction for dispatching lead: %s", lead.LeadId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_LEAD_ASSIGNMENT.Code,
			Message:     errors2.UPDATE_LEAD_ASSIGNMENT.Message,
			Description: errorMsg,
		}, err)
	}

	updated, err := leadstore.UpdateAssignmentTx(tx, lead.LeadId, officeId, consultantId, lead.Version)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	if !updated {
		_ = tx.Rollback()
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.CONCURRENT_MODIFICATION.Code,
			Message: errors2.CONCURRENT_MODIFICATION.Message,
			Description: fmt.Sprintf("Lead %s changed while the dispatch was in flight; "+
				"retry with the current state", lead.LeadId),
		}, http.StatusConflict)
	}

	if err := auditstore.AppendEntryTx(tx, entry); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit dispatch transaction for lead: %s", lead.LeadId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_LEAD_ASSIGNMENT.Code,
			Message:     errors2.UPDATE_LEAD_ASSIGNMENT.Message,
			Description: errorMsg,
		}, err)
	}

	actionId := log.ActionAutoAssignLead
	if entry.Action == constants.AuditActionReassigned {
		actionId = log.ActionReassignLead
	}
	logger.Audit(log.AuditEvent{
		InitiatorID:   entry.ActorId,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      lead.LeadId,
		TargetType:    log.TargetTypeLead,
		ActionID:      actionId,
	})
	return nil
}

// replayResult rebuilds the outcome of a prior dispatch from its audit
// entry, so a retried request observes the original result without a
// second write.
func replayResult(leadId string, entry *auditmodel.AuditEntry) *model.AssignmentResult {

	return &model.AssignmentResult{
		LeadId:               leadId,
		Outcome:              model.OutcomeReplayed,
		RuleId:               detailString(entry.Details, "rule_id"),
		OfficeId:             detailString(entry.Details, "office_id"),
		ConsultantId:         detailString(entry.Details, "consultant_id"),
		PreviousOfficeId:     detailString(entry.Details, "previous_office_id"),
		PreviousConsultantId: detailString(entry.Details, "previous_consultant_id"),
	}
}

func detailString(details map[string]interface{}, key string) string {

	if value, ok := details[key].(string); ok {
		return value
	}
	return ""
}
