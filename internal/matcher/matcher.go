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

// Package matcher implements first-match rule evaluation over the
// priority-ordered rule set. It is pure: no I/O, no clock, no
// configuration reads.
package matcher

import (
	"sort"

	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
)

// LeadSnapshot is the projection of a lead the matcher evaluates rules
// against.
type LeadSnapshot struct {
	Source           string
	StudyDestination string
	OfficeId         string
}

// Match returns the first rule whose criteria accept the snapshot, or nil
// when no rule matches. Rules are evaluated in ascending priority order;
// ties between equal priorities resolve to insertion order, so two calls
// over the same rule set always pick the same rule. The input slice is not
// modified.
func Match(lead LeadSnapshot, rules []model.DistributionRule) *model.DistributionRule {

	ordered := make([]model.DistributionRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Priority != ordered[j].Priority {
			return ordered[i].Priority < ordered[j].Priority
		}
		return ordered[i].RuleSeq < ordered[j].RuleSeq
	})

	for i := range ordered {
		if Accepts(ordered[i].Criteria, lead) {
			rule := ordered[i]
			return &rule
		}
	}
	return nil
}

// Accepts reports whether the criteria accept the snapshot. Empty criteria
// fields are wildcards; set fields require a case-sensitive exact match.
func Accepts(criteria model.RuleCriteria, lead LeadSnapshot) bool {

	if criteria.LeadSource != "" && criteria.LeadSource != lead.Source {
		return false
	}
	if criteria.StudyDestination != "" && criteria.StudyDestination != lead.StudyDestination {
		return false
	}
	if criteria.OfficeId != "" && criteria.OfficeId != lead.OfficeId {
		return false
	}
	return true
}
