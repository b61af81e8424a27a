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

package matcher

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studylane/lead-distribution-service/internal/distribution_rules/model"
)

func rule(id string, priority int, seq int64, criteria model.RuleCriteria) model.DistributionRule {
	return model.DistributionRule{
		RuleId:         id,
		Priority:       priority,
		Criteria:       criteria,
		TargetOfficeId: "office-" + id,
		RuleSeq:        seq,
	}
}

func TestMatch_NoRules_ReturnsNil(t *testing.T) {
	result := Match(LeadSnapshot{Source: "online"}, nil)
	assert.Nil(t, result)
}

func TestMatch_NoRuleMatches_ReturnsNil(t *testing.T) {
	rules := []model.DistributionRule{
		rule("r1", 1, 1, model.RuleCriteria{LeadSource: "walk_in"}),
		rule("r2", 2, 2, model.RuleCriteria{StudyDestination: "Canada"}),
	}
	result := Match(LeadSnapshot{Source: "online", StudyDestination: "Australia"}, rules)
	assert.Nil(t, result)
}

func TestMatch_LowestPriorityWins(t *testing.T) {
	rules := []model.DistributionRule{
		rule("broad", 50, 1, model.RuleCriteria{}),
		rule("specific", 5, 2, model.RuleCriteria{LeadSource: "online"}),
	}
	result := Match(LeadSnapshot{Source: "online"}, rules)
	require.NotNil(t, result)
	assert.Equal(t, "specific", result.RuleId)
}

func TestMatch_FirstMatchShadowsLaterRules(t *testing.T) {
	// Both rules match; the lower priority one shadows the other even
	// though the second is more specific.
	rules := []model.DistributionRule{
		rule("general", 1, 1, model.RuleCriteria{}),
		rule("specific", 10, 2, model.RuleCriteria{LeadSource: "referral", StudyDestination: "UK"}),
	}
	result := Match(LeadSnapshot{Source: "referral", StudyDestination: "UK"}, rules)
	require.NotNil(t, result)
	assert.Equal(t, "general", result.RuleId)
}

func TestMatch_EqualPriority_InsertionOrderBreaksTie(t *testing.T) {
	rules := []model.DistributionRule{
		rule("second", 3, 20, model.RuleCriteria{LeadSource: "online"}),
		rule("first", 3, 10, model.RuleCriteria{LeadSource: "online"}),
	}
	result := Match(LeadSnapshot{Source: "online"}, rules)
	require.NotNil(t, result)
	assert.Equal(t, "first", result.RuleId)
}

func TestMatch_AllCriteriaMustHold(t *testing.T) {
	rules := []model.DistributionRule{
		rule("r1", 1, 1, model.RuleCriteria{LeadSource: "online", StudyDestination: "Canada", OfficeId: "office-7"}),
	}

	matched := Match(LeadSnapshot{Source: "online", StudyDestination: "Canada", OfficeId: "office-7"}, rules)
	require.NotNil(t, matched)

	missed := Match(LeadSnapshot{Source: "online", StudyDestination: "Canada", OfficeId: "office-8"}, rules)
	assert.Nil(t, missed)
}

func TestMatch_EmptyCriteriaMatchesEverything(t *testing.T) {
	rules := []model.DistributionRule{
		rule("catchall", 100, 1, model.RuleCriteria{}),
	}
	result := Match(LeadSnapshot{}, rules)
	require.NotNil(t, result)
	assert.Equal(t, "catchall", result.RuleId)
}

func TestMatch_DoesNotReorderInput(t *testing.T) {
	rules := []model.DistributionRule{
		rule("b", 2, 2, model.RuleCriteria{}),
		rule("a", 1, 1, model.RuleCriteria{}),
	}
	_ = Match(LeadSnapshot{}, rules)
	assert.Equal(t, "b", rules[0].RuleId)
	assert.Equal(t, "a", rules[1].RuleId)
}

func TestAccepts_CaseSensitiveExactMatch(t *testing.T) {
	criteria := model.RuleCriteria{StudyDestination: "Canada"}
	assert.True(t, Accepts(criteria, LeadSnapshot{StudyDestination: "Canada"}))
	assert.False(t, Accepts(criteria, LeadSnapshot{StudyDestination: "canada"}))
	assert.False(t, Accepts(criteria, LeadSnapshot{StudyDestination: ""}))
}

func TestAccepts_EmptyFieldIsWildcard(t *testing.T) {
	criteria := model.RuleCriteria{LeadSource: "online"}
	assert.True(t, Accepts(criteria, LeadSnapshot{Source: "online", StudyDestination: "anything", OfficeId: "any"}))
}
