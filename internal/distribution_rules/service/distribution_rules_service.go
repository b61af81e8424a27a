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
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	auditmodel "github.com/studylane/lead-distribution-service/internal/audit/model"
	auditstore "github.com/studylane/lead-distribution-service/internal/audit/store"
	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
	"github.com/studylane/lead-distribution-service/internal/distribution_rules/store"
	"github.com/studylane/lead-distribution-service/internal/matcher"
	membership "github.com/studylane/lead-distribution-service/internal/membership/service"
	"github.com/studylane/lead-distribution-service/internal/system/config"
	"github.com/studylane/lead-distribution-service/internal/system/constants"
	"github.com/studylane/lead-distribution-service/internal/system/database/lock"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// Mutations on the rule set are serialized through a single advisory lock
// so concurrent priority edits cannot interleave into a partial order.
var ruleStoreLock lock.DistributedLock = lock.NewPostgresLock()

type DistributionRuleServiceInterface interface {
	AddDistributionRule(request model.DistributionRuleAPIRequest, actorId string) (*model.DistributionRule, error)
	GetDistributionRules() ([]model.DistributionRule, error)
	GetDistributionRule(ruleId string) (*model.DistributionRule, error)
	PatchDistributionRule(ruleId string, request model.DistributionRuleUpdateRequest, actorId string) (*model.DistributionRule, error)
	DeleteDistributionRule(ruleId string, actorId string) error
	PreviewMatch(snapshot matcher.LeadSnapshot) (*model.DistributionRule, error)
}

// DistributionRuleService is the default implementation of the DistributionRuleServiceInterface.
type DistributionRuleService struct{}

// GetDistributionRuleService creates a new instance of DistributionRuleService.
func GetDistributionRuleService() DistributionRuleServiceInterface {

	return &DistributionRuleService{}
}

// AddDistributionRule validates and creates a new distribution rule, and
// appends a rule_created audit entry carrying the rule definition.
func (drs *DistributionRuleService) AddDistributionRule(request model.DistributionRuleAPIRequest,
	actorId string) (*model.DistributionRule, error) {

	now := time.Now().UTC().Unix()
	rule := model.DistributionRule{
		RuleId:             uuid.New().String(),
		Priority:           request.Priority,
		Criteria:           request.Criteria,
		TargetOfficeId:     request.TargetOfficeId,
		TargetConsultantId: request.TargetConsultantId,
		CreatedAt:          now,
		UpdatedAt:          now,
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	if err := acquireRuleStoreLock(); err != nil {
		return nil, err
	}
	defer releaseRuleStoreLock()

	entry := auditmodel.AuditEntry{
		EntryId:    uuid.New().String(),
		RuleId:     rule.RuleId,
		ActorId:    actorId,
		Action:     constants.AuditActionRuleCreated,
		Details:    ruleSnapshot(rule),
		RecordedAt: time.Now().UTC().Unix(),
	}
	if err := commitRuleChange(rule.RuleId, errors2.ADD_DISTRIBUTION_RULE, entry, func(tx *sql.Tx) error {
		return store.AddDistributionRuleTx(tx, rule)
	}); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actorId,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      rule.RuleId,
		TargetType:    log.TargetTypeDistributionRule,
		ActionID:      log.ActionAddDistributionRule,
	})
	return store.GetDistributionRule(rule.RuleId)
}

// GetDistributionRules fetches all rules in evaluation order.
func (drs *DistributionRuleService) GetDistributionRules() ([]model.DistributionRule, error) {

	return store.GetDistributionRules()
}

// GetDistributionRule fetches a specific rule.
func (drs *DistributionRuleService) GetDistributionRule(ruleId string) (*model.DistributionRule, error) {

	rule, err := store.GetDistributionRule(ruleId)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, ruleNotFoundError(ruleId)
	}
	return rule, nil
}

// PatchDistributionRule applies a partial update on a rule, revalidates the
// result, and appends a rule_updated audit entry with the previous and new
// definitions.
func (drs *DistributionRuleService) PatchDistributionRule(ruleId string,
	request model.DistributionRuleUpdateRequest, actorId string) (*model.DistributionRule, error) {

	if err := acquireRuleStoreLock(); err != nil {
		return nil, err
	}
	defer releaseRuleStoreLock()

	existing, err := store.GetDistributionRule(ruleId)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ruleNotFoundError(ruleId)
	}

	updated := *existing
	if request.Priority != nil {
		updated.Priority = *request.Priority
	}
	if request.Criteria != nil {
		updated.Criteria = *request.Criteria
	}
	if request.TargetOfficeId != nil {
		updated.TargetOfficeId = *request.TargetOfficeId
	}
	if request.TargetConsultantId != nil {
		updated.TargetConsultantId = *request.TargetConsultantId
	}
	updated.UpdatedAt = time.Now().UTC().Unix()

	if err := validateRule(updated); err != nil {
		return nil, err
	}

	details := ruleSnapshot(updated)
	details["previous"] = ruleSnapshot(*existing)
	entry := auditmodel.AuditEntry{
		EntryId:    uuid.New().String(),
		RuleId:     ruleId,
		ActorId:    actorId,
		Action:     constants.AuditActionRuleUpdated,
		Details:    details,
		RecordedAt: time.Now().UTC().Unix(),
	}
	if err := commitRuleChange(ruleId, errors2.UPDATE_DISTRIBUTION_RULE, entry, func(tx *sql.Tx) error {
		return store.UpdateDistributionRuleTx(tx, updated)
	}); err != nil {
		return nil, err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actorId,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeDistributionRule,
		ActionID:      log.ActionUpdateDistributionRule,
	})
	return store.GetDistributionRule(ruleId)
}

// DeleteDistributionRule removes a rule from the active set. The appended
// rule_deleted entry carries the last definition, so rule history stays
// self-contained after the hard delete.
func (drs *DistributionRuleService) DeleteDistributionRule(ruleId string, actorId string) error {

	if err := acquireRuleStoreLock(); err != nil {
		return err
	}
	defer releaseRuleStoreLock()

	existing, err := store.GetDistributionRule(ruleId)
	if err != nil {
		return err
	}
	if existing == nil {
		return ruleNotFoundError(ruleId)
	}

	entry := auditmodel.AuditEntry{
		EntryId:    uuid.New().String(),
		RuleId:     ruleId,
		ActorId:    actorId,
		Action:     constants.AuditActionRuleDeleted,
		Details:    ruleSnapshot(*existing),
		RecordedAt: time.Now().UTC().Unix(),
	}
	if err := commitRuleChange(ruleId, errors2.DELETE_DISTRIBUTION_RULE, entry, func(tx *sql.Tx) error {
		return store.DeleteDistributionRuleTx(tx, ruleId)
	}); err != nil {
		return err
	}

	log.GetLogger().Audit(log.AuditEvent{
		InitiatorID:   actorId,
		InitiatorType: log.InitiatorTypeUser,
		TargetID:      ruleId,
		TargetType:    log.TargetTypeDistributionRule,
		ActionID:      log.ActionDeleteDistributionRule,
	})
	return nil
}

// PreviewMatch runs the matcher against the current rule set without
// writing anything. Used by the operator UI to preview routing.
func (drs *DistributionRuleService) PreviewMatch(snapshot matcher.LeadSnapshot) (*model.DistributionRule, error) {

	rules, err := store.GetDistributionRules()
	if err != nil {
		return nil, err
	}
	return matcher.Match(snapshot, rules), nil
}

// validateRule enforces the rule invariants: priority within the configured
// bound, a recognized lead source criteria, an existing target office, and
// a target consultant that currently serves it.
func validateRule(rule model.DistributionRule) error {

	maxPriority := config.GetLDSRuntime().Config.Dispatch.MaxRulePriority
	if rule.Priority < constants.MinRulePriority || rule.Priority > maxPriority {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:    errors2.INVALID_RULE_PRIORITY.Code,
			Message: errors2.INVALID_RULE_PRIORITY.Message,
			Description: fmt.Sprintf("Priority must be between %d and %d, got %d",
				constants.MinRulePriority, maxPriority, rule.Priority),
		}, http.StatusBadRequest)
	}

	if rule.Criteria.LeadSource != "" && !constants.AllowedLeadSources[rule.Criteria.LeadSource] {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.INVALID_LEAD_SOURCE.Code,
			Message:     errors2.INVALID_LEAD_SOURCE.Message,
			Description: fmt.Sprintf("Unknown lead source '%s' in rule criteria", rule.Criteria.LeadSource),
		}, http.StatusBadRequest)
	}

	membershipService := membership.GetMembershipService()

	if rule.TargetOfficeId == "" {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TARGET_OFFICE_NOT_FOUND.Code,
			Message:     errors2.TARGET_OFFICE_NOT_FOUND.Message,
			Description: "target_office_id is required",
		}, http.StatusBadRequest)
	}
	exists, err := membershipService.OfficeExists(rule.TargetOfficeId)
	if err != nil {
		return err
	}
	if !exists {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.TARGET_OFFICE_NOT_FOUND.Code,
			Message:     errors2.TARGET_OFFICE_NOT_FOUND.Message,
			Description: fmt.Sprintf("Office '%s' does not exist", rule.TargetOfficeId),
		}, http.StatusBadRequest)
	}

	if rule.TargetConsultantId != "" {
		// Membership is re-checked at dispatch time as well; staff
		// assignments change independently of rules.
		isMember, err := membershipService.IsMember(rule.TargetConsultantId, rule.TargetOfficeId)
		if err != nil {
			return err
		}
		if !isMember {
			return errors2.NewClientError(errors2.ErrorMessage{
				Code:    errors2.INVALID_MEMBERSHIP.Code,
				Message: errors2.INVALID_MEMBERSHIP.Message,
				Description: fmt.Sprintf("Consultant '%s' is not a member of office '%s'",
					rule.TargetConsultantId, rule.TargetOfficeId),
			}, http.StatusBadRequest)
		}
	}

	return nil
}

func ruleSnapshot(rule model.DistributionRule) map[string]interface{} {

	return map[string]interface{}{
		"rule_id":              rule.RuleId,
		"priority":             rule.Priority,
		"criteria_office_id":   rule.Criteria.OfficeId,
		"criteria_destination": rule.Criteria.StudyDestination,
		"criteria_lead_source": rule.Criteria.LeadSource,
		"target_office_id":     rule.TargetOfficeId,
		"target_consultant_id": rule.TargetConsultantId,
	}
}

// commitRuleChange writes a rule mutation and its audit entry in a single
// transaction. A failed audit append rolls the rule change back, so a rule
// never exists without its history.
func commitRuleChange(ruleId string, opError errors2.ErrorMessage, entry auditmodel.AuditEntry,
	mutate func(tx *sql.Tx) error) error {

	logger := log.GetLogger()
	dbClient, err := provider.NewDBProvider().GetDBClient()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for mutating distribution rule: %s", ruleId)
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
		errorMsg := fmt.Sprintf("Failed to begin transaction for mutating distribution rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        opError.Code,
			Message:     opError.Message,
			Description: errorMsg,
		}, err)
	}

	if err := mutate(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := auditstore.AppendEntryTx(tx, entry); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		errorMsg := fmt.Sprintf("Failed to commit mutation transaction for distribution rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        opError.Code,
			Message:     opError.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

func acquireRuleStoreLock() error {

	acquired, err := ruleStoreLock.Acquire(constants.RuleStoreLockKey)
	if err != nil {
		return err
	}
	if !acquired {
		return errors2.NewClientError(errors2.ErrorMessage{
			Code:        errors2.CONCURRENT_MODIFICATION.Code,
			Message:     errors2.CONCURRENT_MODIFICATION.Message,
			Description: "Another rule mutation is in progress; retry shortly",
		}, http.StatusConflict)
	}
	return nil
}

func releaseRuleStoreLock() {

	_ = ruleStoreLock.Release(constants.RuleStoreLockKey)
}

func ruleNotFoundError(ruleId string) error {

	return errors2.NewClientError(errors2.ErrorMessage{
		Code:        errors2.RULE_NOT_FOUND.Code,
		Message:     errors2.RULE_NOT_FOUND.Message,
		Description: fmt.Sprintf("No distribution rule found for rule_id: %s", ruleId),
	}, http.StatusNotFound)
}
