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

package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/database/scripts"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// AddDistributionRuleTx inserts a new distribution rule inside the caller's
// transaction, so the rule and its audit entry commit together.
func AddDistributionRuleTx(tx *sql.Tx, rule model.DistributionRule) error {

	logger := log.GetLogger()

	query := scripts.InsertDistributionRule[provider.NewDBProvider().GetDBType()]
	_, err := tx.Exec(query, rule.RuleId, rule.Priority,
		nullable(rule.Criteria.OfficeId), nullable(rule.Criteria.StudyDestination),
		nullable(rule.Criteria.LeadSource), rule.TargetOfficeId,
		nullable(rule.TargetConsultantId), rule.CreatedAt, rule.UpdatedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while adding distribution rule: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.ADD_DISTRIBUTION_RULE.Code,
			Message:     errors2.ADD_DISTRIBUTION_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info(fmt.Sprintf("Distribution rule : %s added successfully", rule.RuleId))
	return nil
}

// GetDistributionRules fetches all distribution rules in evaluation order:
// priority ascending, insertion order breaking ties.
func GetDistributionRules() ([]model.DistributionRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching distribution rules"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetDistributionRules[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query)
	if err != nil {
		errorMsg := "Failed in fetching all distribution rules"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_DISTRIBUTION_RULE.Code,
			Message:     errors2.GET_DISTRIBUTION_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	var rules []model.DistributionRule
	for _, row := range results {
		rules = append(rules, ruleFromRow(row))
	}
	return rules, nil
}

// GetDistributionRule fetches a specific distribution rule by its id.
// Returns nil when no rule exists for the id.
func GetDistributionRule(ruleId string) (*model.DistributionRule, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching distribution rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetDistributionRule[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, ruleId)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug(fmt.Sprintf("No distribution rule found for rule_id: %s", ruleId))
			return nil, nil
		}
		errorMsg := fmt.Sprintf("Failed in fetching distribution rule with rule_id: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_DISTRIBUTION_RULE.Code,
			Message:     errors2.GET_DISTRIBUTION_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No distribution rule found for rule_id: %s", ruleId))
		return nil, nil
	}

	rule := ruleFromRow(results[0])
	return &rule, nil
}

// UpdateDistributionRuleTx replaces the mutable fields of a rule inside the
// caller's transaction. RuleSeq is never touched, so an updated rule keeps
// its place in the tie-break order.
func UpdateDistributionRuleTx(tx *sql.Tx, rule model.DistributionRule) error {

	logger := log.GetLogger()

	query := scripts.UpdateDistributionRule[provider.NewDBProvider().GetDBType()]
	_, err := tx.Exec(query, rule.Priority,
		nullable(rule.Criteria.OfficeId), nullable(rule.Criteria.StudyDestination),
		nullable(rule.Criteria.LeadSource), rule.TargetOfficeId,
		nullable(rule.TargetConsultantId), rule.UpdatedAt, rule.RuleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating distribution rule for rule_id: %s", rule.RuleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_DISTRIBUTION_RULE.Code,
			Message:     errors2.UPDATE_DISTRIBUTION_RULE.Message,
			Description: errorMsg,
		}, err)
	}

	logger.Info("Successfully updated distribution rule for rule_id: " + rule.RuleId)
	return nil
}

// DeleteDistributionRuleTx deletes a distribution rule by its id inside the
// caller's transaction. The rule's audit history is retained by the audit
// store.
func DeleteDistributionRuleTx(tx *sql.Tx, ruleId string) error {

	logger := log.GetLogger()

	query := scripts.DeleteDistributionRule[provider.NewDBProvider().GetDBType()]
	_, err := tx.Exec(query, ruleId)
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to delete distribution rule: %s", ruleId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DELETE_DISTRIBUTION_RULE.Code,
			Message:     errors2.DELETE_DISTRIBUTION_RULE.Message,
			Description: errorMsg,
		}, err)
	}
	logger.Info("Successfully deleted distribution rule with rule_id: " + ruleId)
	return nil
}

func ruleFromRow(row map[string]interface{}) model.DistributionRule {

	return model.DistributionRule{
		RuleId:   asString(row["rule_id"]),
		Priority: int(asInt64(row["priority"])),
		Criteria: model.RuleCriteria{
			OfficeId:         asString(row["criteria_office_id"]),
			StudyDestination: asString(row["criteria_study_destination"]),
			LeadSource:       asString(row["criteria_lead_source"]),
		},
		TargetOfficeId:     asString(row["target_office_id"]),
		TargetConsultantId: asString(row["target_consultant_id"]),
		RuleSeq:            asInt64(row["rule_seq"]),
		CreatedAt:          asInt64(row["created_at"]),
		UpdatedAt:          asInt64(row["updated_at"]),
	}
}

func nullable(value string) sql.NullString {

	if value == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: value, Valid: true}
}

func asString(value interface{}) string {

	switch v := value.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return ""
	}
}

func asInt64(value interface{}) int64 {

	switch v := value.(type) {
	case int64:
		return v
	case int:
		return int64(v)
	default:
		return 0
	}
}
