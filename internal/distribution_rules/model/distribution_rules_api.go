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

// DistributionRuleAPIRequest is the payload for creating a rule.
type DistributionRuleAPIRequest struct {
	Priority           int          `json:"priority"`
	Criteria           RuleCriteria `json:"criteria"`
	TargetOfficeId     string       `json:"target_office_id"`
	TargetConsultantId string       `json:"target_consultant_id,omitempty"`
}

// DistributionRuleUpdateRequest is the payload for a partial rule update.
// Nil fields are left unchanged.
type DistributionRuleUpdateRequest struct {
	Priority           *int          `json:"priority,omitempty"`
	Criteria           *RuleCriteria `json:"criteria,omitempty"`
	TargetOfficeId     *string       `json:"target_office_id,omitempty"`
	TargetConsultantId *string       `json:"target_consultant_id,omitempty"`
}

// DistributionRuleAPIResponse is the wire shape of a rule.
type DistributionRuleAPIResponse struct {
	RuleId             string       `json:"rule_id"`
	Priority           int          `json:"priority"`
	Criteria           RuleCriteria `json:"criteria"`
	TargetOfficeId     string       `json:"target_office_id"`
	TargetConsultantId string       `json:"target_consultant_id,omitempty"`
}

// MatchPreviewRequest carries a lead snapshot for a dry-run match.
type MatchPreviewRequest struct {
	Source           string `json:"source,omitempty"`
	StudyDestination string `json:"study_destination,omitempty"`
	OfficeId         string `json:"office_id,omitempty"`
}

// MatchPreviewResponse reports the rule a snapshot would match, if any.
type MatchPreviewResponse struct {
	Matched bool                         `json:"matched"`
	Rule    *DistributionRuleAPIResponse `json:"rule,omitempty"`
}
