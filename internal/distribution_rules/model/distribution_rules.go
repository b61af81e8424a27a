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

// RuleCriteria are the matching fields of a distribution rule. An empty
// field acts as a wildcard; a rule with all-empty criteria matches every
// lead.
type RuleCriteria struct {
	OfficeId         string `json:"office_id,omitempty"`
	StudyDestination string `json:"study_destination,omitempty"`
	LeadSource       string `json:"lead_source,omitempty"`
}

// IsEmpty reports whether every criteria field is a wildcard.
func (c RuleCriteria) IsEmpty() bool {
	return c.OfficeId == "" && c.StudyDestination == "" && c.LeadSource == ""
}

// DistributionRule routes matching leads to a target office, and optionally
// to a specific consultant in it. Rules with a lower priority value are
// evaluated first; ties resolve to insertion order (RuleSeq).
type DistributionRule struct {
	RuleId             string       `json:"rule_id"`
	Priority           int          `json:"priority"`
	Criteria           RuleCriteria `json:"criteria"`
	TargetOfficeId     string       `json:"target_office_id"`
	TargetConsultantId string       `json:"target_consultant_id,omitempty"`
	RuleSeq            int64        `json:"-"`
	CreatedAt          int64        `json:"created_at"`
	UpdatedAt          int64        `json:"updated_at"`
}
