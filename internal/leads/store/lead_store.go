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
	"time"

	_ "github.com/lib/pq"

	"github.com/studylane/lead-distribution-service/internal/leads/model"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/database/scripts"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// GetLead fetches a lead by its id. Returns nil when no lead exists.
func GetLead(leadId string) (*model.Lead, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to get database client for fetching lead: %s", leadId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	query := scripts.GetLeadById[provider.NewDBProvider().GetDBType()]
	results, err := dbClient.ExecuteQuery(query, leadId)
	if err != nil {
		if err == sql.ErrNoRows {
			logger.Debug(fmt.Sprintf("No lead found for lead_id: %s", leadId))
			return nil, nil
		}
		errorMsg := fmt.Sprintf("Failed in fetching lead with lead_id: %s", leadId)
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_LEAD.Code,
			Message:     errors2.GET_LEAD.Message,
			Description: errorMsg,
		}, err)
	}

	if len(results) == 0 {
		logger.Debug(fmt.Sprintf("No lead found for lead_id: %s", leadId))
		return nil, nil
	}

	lead := leadFromRow(results[0])
	return &lead, nil
}

// UpdateAssignmentTx writes a lead's assignment inside the caller's
// transaction, guarded by the version the caller read. Returns false when
// the guard failed, meaning another dispatch committed in between.
func UpdateAssignmentTx(tx *sql.Tx, leadId, officeId, consultantId string, version int64) (bool, error) {

	logger := log.GetLogger()
	query := scripts.UpdateLeadAssignment[provider.NewDBProvider().GetDBType()]

	result, err := tx.Exec(query, nullable(officeId), nullable(consultantId),
		time.Now().UTC().Unix(), leadId, version)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while updating assignment for lead_id: %s", leadId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_LEAD_ASSIGNMENT.Code,
			Message:     errors2.UPDATE_LEAD_ASSIGNMENT.Message,
			Description: errorMsg,
		}, err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		errorMsg := fmt.Sprintf("Failed to read rows affected for lead_id: %s", leadId)
		logger.Debug(errorMsg, log.Error(err))
		return false, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.UPDATE_LEAD_ASSIGNMENT.Code,
			Message:     errors2.UPDATE_LEAD_ASSIGNMENT.Message,
			Description: errorMsg,
		}, err)
	}
	return affected == 1, nil
}

func leadFromRow(row map[string]interface{}) model.Lead {

	return model.Lead{
		LeadId:               asString(row["lead_id"]),
		Source:               asString(row["source"]),
		StudyDestination:     asString(row["study_destination"]),
		Status:               asString(row["status"]),
		OfficeId:             asString(row["office_id"]),
		AssignedConsultantId: asString(row["assigned_consultant_id"]),
		Version:              asInt64(row["version"]),
		CreatedAt:            asInt64(row["created_at"]),
		UpdatedAt:            asInt64(row["updated_at"]),
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
