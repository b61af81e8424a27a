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

package scripts

var InsertDistributionRule = map[string]string{
	"postgres": `INSERT INTO distribution_rules
	(rule_id, priority, criteria_office_id, criteria_study_destination, criteria_lead_source,
	 target_office_id, target_consultant_id, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
}

// Listing order is priority first, then insertion order. rule_seq is a
// BIGSERIAL assigned at insert time, so ties on priority resolve to the
// order rules were created in.
var GetDistributionRules = map[string]string{
	"postgres": `SELECT rule_id, priority, criteria_office_id, criteria_study_destination,
	 criteria_lead_source, target_office_id, target_consultant_id, rule_seq, created_at, updated_at
	 FROM distribution_rules ORDER BY priority ASC, rule_seq ASC`,
}

var GetDistributionRule = map[string]string{
	"postgres": `SELECT rule_id, priority, criteria_office_id, criteria_study_destination,
	 criteria_lead_source, target_office_id, target_consultant_id, rule_seq, created_at, updated_at
	 FROM distribution_rules WHERE rule_id = $1`,
}

var UpdateDistributionRule = map[string]string{
	"postgres": `UPDATE distribution_rules
	 SET priority = $1,
	     criteria_office_id = $2,
	     criteria_study_destination = $3,
	     criteria_lead_source = $4,
	     target_office_id = $5,
	     target_consultant_id = $6,
	     updated_at = $7
	 WHERE rule_id = $8`,
}

var DeleteDistributionRule = map[string]string{
	"postgres": `DELETE FROM distribution_rules WHERE rule_id = $1`,
}

var GetLeadById = map[string]string{
	"postgres": `SELECT lead_id, source, study_destination, status, office_id,
	 assigned_consultant_id, version, created_at, updated_at FROM leads WHERE lead_id = $1`,
}

// The version predicate is the optimistic guard for concurrent dispatches of
// the same lead. Zero rows updated means another dispatch committed first.
var UpdateLeadAssignment = map[string]string{
	"postgres": `UPDATE leads
	 SET office_id = $1,
	     assigned_consultant_id = $2,
	     version = version + 1,
	     updated_at = $3
	 WHERE lead_id = $4 AND version = $5`,
}

var GetOfficeById = map[string]string{
	"postgres": `SELECT office_id, office_name, max_consultants, max_appointments
	 FROM offices WHERE office_id = $1`,
}

var GetOfficeConsultants = map[string]string{
	"postgres": `SELECT consultant_id FROM office_consultants
	 WHERE office_id = $1 ORDER BY member_seq ASC`,
}

var CheckOfficeMembership = map[string]string{
	"postgres": `SELECT 1 FROM office_consultants WHERE consultant_id = $1 AND office_id = $2`,
}

var InsertAuditEntry = map[string]string{
	"postgres": `INSERT INTO assignment_audit
	(entry_id, lead_id, rule_id, actor_id, action, details, idempotency_key, recorded_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
}

var GetAuditEntriesForLead = map[string]string{
	"postgres": `SELECT entry_id, entry_seq, lead_id, rule_id, actor_id, action, details::text,
	 idempotency_key, recorded_at FROM assignment_audit
	 WHERE lead_id = $1 ORDER BY recorded_at ASC, entry_seq ASC`,
}

var GetAuditEntriesForRule = map[string]string{
	"postgres": `SELECT entry_id, entry_seq, lead_id, rule_id, actor_id, action, details::text,
	 idempotency_key, recorded_at FROM assignment_audit
	 WHERE rule_id = $1 ORDER BY recorded_at ASC, entry_seq ASC`,
}

var GetAuditEntryByIdempotencyKey = map[string]string{
	"postgres": `SELECT entry_id, entry_seq, lead_id, rule_id, actor_id, action, details::text,
	 idempotency_key, recorded_at FROM assignment_audit
	 WHERE lead_id = $1 AND idempotency_key = $2`,
}
