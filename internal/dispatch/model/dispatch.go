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

// Dispatch outcomes reported to the caller.
const (
	OutcomeAssigned   = "assigned"
	OutcomeReassigned = "reassigned"
	OutcomeUnassigned = "unassigned"
	OutcomeReplayed   = "replayed"
)

// DispatchRequest asks the engine to route a lead. In automatic mode the
// rule set decides the target and OfficeId/ConsultantId must be empty. In
// manual mode the caller names the target directly. Reevaluate lets an
// automatic dispatch overwrite an existing assignment.
type DispatchRequest struct {
	Mode           string `json:"mode"`
	OfficeId       string `json:"office_id,omitempty"`
	ConsultantId   string `json:"consultant_id,omitempty"`
	Reevaluate     bool   `json:"reevaluate,omitempty"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// AssignmentResult reports what a dispatch did. Previous fields are only
// set when the dispatch replaced an existing assignment.
type AssignmentResult struct {
	LeadId               string `json:"lead_id"`
	Outcome              string `json:"outcome"`
	RuleId               string `json:"rule_id,omitempty"`
	OfficeId             string `json:"office_id,omitempty"`
	ConsultantId         string `json:"consultant_id,omitempty"`
	PreviousOfficeId     string `json:"previous_office_id,omitempty"`
	PreviousConsultantId string `json:"previous_consultant_id,omitempty"`
}
