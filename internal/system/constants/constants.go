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

package constants

const ApiBasePath = "/api/v1"
const DistributionRulesApiPath = "distribution-rules"
const LeadsApiPath = "leads"
const AuditApiPath = "audit"
const HealthApiPath = "health"

type contextKey string

const TraceIDContextKey contextKey = "traceId"
const ActorIDContextKey contextKey = "actorId"

// Lead sources recognized by the intake surface.
const (
	LeadSourceWalkIn   = "walk_in"
	LeadSourceOnline   = "online"
	LeadSourceReferral = "referral"
	LeadSourceGoogle   = "google_oauth"
	LeadSourceFacebook = "facebook_oauth"
)

var AllowedLeadSources = map[string]bool{
	LeadSourceWalkIn:   true,
	LeadSourceOnline:   true,
	LeadSourceReferral: true,
	LeadSourceGoogle:   true,
	LeadSourceFacebook: true,
}

// Lead statuses.
const (
	LeadStatusNew        = "new"
	LeadStatusInProgress = "in_progress"
	LeadStatusConverted  = "converted"
	LeadStatusLost       = "lost"
)

// Audit entry actions. Entries are immutable once written.
const (
	AuditActionAutoAssigned = "auto_assigned"
	AuditActionReassigned   = "reassigned"
	AuditActionRuleCreated  = "rule_created"
	AuditActionRuleUpdated  = "rule_updated"
	AuditActionRuleDeleted  = "rule_deleted"
)

// Dispatch modes.
const (
	DispatchModeAutomatic = "automatic"
	DispatchModeManual    = "manual"
)

// Consultant selection strategies for rules without a target consultant.
const (
	SelectionFirstMember = "first_member"
	SelectionRoundRobin  = "round_robin"
)

var AllowedSelectionStrategies = map[string]bool{
	SelectionFirstMember: true,
	SelectionRoundRobin:  true,
}

// Advisory lock key prefixes.
const (
	RuleStoreLockKey  = "distribution-rules"
	LeadLockKeyPrefix = "lead:"
	MinRulePriority   = 1
)
