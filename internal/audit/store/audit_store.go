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
	"encoding/json"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/studylane/lead-distribution-service/internal/audit/model"
	"github.com/studylane/lead-distribution-service/internal/system/database/provider"
	"github.com/studylane/lead-distribution-service/internal/system/database/scripts"
	errors2 "github.com/studylane/lead-distribution-service/internal/system/errors"
	"github.com/studylane/lead-distribution-service/internal/system/log"
)

// AppendEntryTx appends an audit entry inside the caller's transaction.
// Dispatches and rule mutations use this so the domain write and the audit
// append commit together.
func AppendEntryTx(tx *sql.Tx, entry model.AuditEntry) error {

	logger := log.GetLogger()

	detailsJSON, err := marshalDetails(entry.Details)
	if err != nil {
		return err
	}

	query := scripts.InsertAuditEntry[provider.NewDBProvider().GetDBType()]
	_, err = tx.Exec(query, entry.EntryId, nullable(entry.LeadId), nullable(entry.RuleId),
		entry.ActorId, entry.Action, detailsJSON, nullable(entry.IdempotencyKey), entry.RecordedAt)
	if err != nil {
		errorMsg := fmt.Sprintf("Error occurred while appending audit entry in transaction: %s", entry.EntryId)
		logger.Debug(errorMsg, log.Error(err))
		return errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.APPEND_AUDIT_ENTRY.Code,
			Message:     errors2.APPEND_AUDIT_ENTRY.Message,
			Description: errorMsg,
		}, err)
	}
	return nil
}

// GetEntriesForLead fetches the full audit history of a lead, oldest first.
func GetEntriesForLead(leadId string) ([]model.AuditEntry, error) {

	query := scripts.GetAuditEntriesForLead[provider.NewDBProvider().GetDBType()]
	return queryEntries(query, leadId)
}

// GetEntriesForRule fetches the full audit history of a rule, oldest first.
// The rule itself may no longer exist; entries are self-contained snapshots.
func GetEntriesForRule(ruleId string) ([]model.AuditEntry, error) {

	query := scripts.GetAuditEntriesForRule[provider.NewDBProvider().GetDBType()]
	return queryEntries(query, ruleId)
}

// GetEntryByIdempotencyKey looks up a prior dispatch attempt for the lead.
// Returns nil when no entry carries the key.
func GetEntryByIdempotencyKey(leadId, idempotencyKey string) (*model.AuditEntry, error) {

	query := scripts.GetAuditEntryByIdempotencyKey[provider.NewDBProvider().GetDBType()]
	entries, err := queryEntries(query, leadId, idempotencyKey)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}
	return &entries[0], nil
}

func queryEntries(query string, args ...interface{}) ([]model.AuditEntry, error) {

	dbClient, err := provider.NewDBProvider().GetDBClient()
	logger := log.GetLogger()
	if err != nil {
		errorMsg := "Failed to get database client for fetching audit entries"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.DB_CLIENT_INIT.Code,
			Message:     errors2.DB_CLIENT_INIT.Message,
			Description: errorMsg,
		}, err)
	}
	defer dbClient.Close()

	results, err := dbClient.ExecuteQuery(query, args...)
	if err != nil {
		errorMsg := "Failed in fetching audit entries"
		logger.Debug(errorMsg, log.Error(err))
		return nil, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.GET_AUDIT_ENTRIES.Code,
			Message:     errors2.GET_AUDIT_ENTRIES.Message,
			Description: errorMsg,
		}, err)
	}

	var entries []model.AuditEntry
	for _, row := range results {
		entry := model.AuditEntry{
			EntryId:        asString(row["entry_id"]),
			EntrySeq:       asInt64(row["entry_seq"]),
			LeadId:         asString(row["lead_id"]),
			RuleId:         asString(row["rule_id"]),
			ActorId:        asString(row["actor_id"]),
			Action:         asString(row["action"]),
			IdempotencyKey: asString(row["idempotency_key"]),
			RecordedAt:     asInt64(row["recorded_at"]),
		}
		if detailsRaw := asString(row["details"]); detailsRaw != "" {
			details := map[string]interface{}{}
			if err := json.Unmarshal([]byte(detailsRaw), &details); err != nil {
				logger.Debug("Failed to unmarshal audit entry details", log.Error(err))
			} else {
				entry.Details = details
			}
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func marshalDetails(details map[string]interface{}) (sql.NullString, error) {

	if details == nil {
		return sql.NullString{Valid: false}, nil
	}
	bytes, err := json.Marshal(details)
	if err != nil {
		logger := log.GetLogger()
		errorMsg := "Failed to marshal audit entry details to JSON for storing in database."
		logger.Debug(errorMsg, log.Error(err))
		return sql.NullString{}, errors2.NewServerError(errors2.ErrorMessage{
			Code:        errors2.MARSHAL_JSON.Code,
			Message:     errors2.MARSHAL_JSON.Message,
			Description: errorMsg,
		}, err)
	}
	return sql.NullString{String: string(bytes), Valid: true}, nil
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
