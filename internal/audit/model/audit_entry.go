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

package model

// AuditEntry is an immutable record of an assignment or rule-change event.
// Details carry a self-contained snapshot of the affected entity, so history
// stays queryable after the referenced rule or lead is gone.
type AuditEntry struct {
	EntryId        string                 `json:"entry_id" bson:"entry_id"`
	EntrySeq       int64                  `json:"entry_seq" bson:"entry_seq"`
	LeadId         string                 `json:"lead_id,omitempty" bson:"lead_id,omitempty"`
	RuleId         string                 `json:"rule_id,omitempty" bson:"rule_id,omitempty"`
	ActorId        string                 `json:"actor_id" bson:"actor_id"`
	Action         string                 `json:"action" bson:"action"`
	Details        map[string]interface{} `json:"details,omitempty" bson:"details,omitempty"`
	IdempotencyKey string                 `json:"idempotency_key,omitempty" bson:"idempotency_key,omitempty"`
	RecordedAt     int64                  `json:"recorded_at" bson:"recorded_at"`
}
